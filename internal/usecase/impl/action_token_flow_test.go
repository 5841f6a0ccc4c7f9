package impl

import (
	"context"
	"testing"
	"time"

	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/repository"
	mockRepo "cookbook/internal/mocks/repository"
	mockSvc "cookbook/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActionTokenFlow_Issue_Success(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenRepo := mockRepo.NewMockActionTokenRepository(t)
	flow := newActionTokenFlow(entity.PurposeVerifyEmail, time.Hour, hasher)

	tokenRepo.EXPECT().
		FindActionToken(ctx, userID, entity.PurposeVerifyEmail).
		Return(nil, repository.ErrActionTokenNotFound)
	hasher.EXPECT().Hash(mock.AnythingOfType("string")).Return("hashed_token", nil)
	tokenRepo.EXPECT().
		SaveActionToken(ctx, mock.AnythingOfType("*entity.ActionToken")).
		Run(func(ctx context.Context, token *entity.ActionToken) {
			assert.Equal(t, userID, token.UserID)
			assert.Equal(t, entity.PurposeVerifyEmail, token.Purpose)
			assert.Equal(t, "hashed_token", token.TokenHash)
			assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, time.Minute)
		}).
		Return(nil)

	raw, err := flow.issue(ctx, tokenRepo, userID)

	require.NoError(t, err)
	// 32 random bytes come back as 64 hex characters.
	assert.Len(t, raw, 64)
}

func TestActionTokenFlow_Issue_LiveTokenBlocksReissue(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenRepo := mockRepo.NewMockActionTokenRepository(t)
	flow := newActionTokenFlow(entity.PurposeResetPassword, time.Hour, hasher)

	tokenRepo.EXPECT().
		FindActionToken(ctx, userID, entity.PurposeResetPassword).
		Return(&entity.ActionToken{
			UserID:    userID,
			Purpose:   entity.PurposeResetPassword,
			ExpiresAt: time.Now().Add(30 * time.Minute),
		}, nil)

	raw, err := flow.issue(ctx, tokenRepo, userID)

	assert.Empty(t, raw)
	assert.True(t, errors.Is(err, errActionTokenActive))
}

func TestActionTokenFlow_Issue_ExpiredTokenIsReplaced(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenRepo := mockRepo.NewMockActionTokenRepository(t)
	flow := newActionTokenFlow(entity.PurposeDeleteAccount, 15*time.Minute, hasher)

	tokenRepo.EXPECT().
		FindActionToken(ctx, userID, entity.PurposeDeleteAccount).
		Return(&entity.ActionToken{
			UserID:    userID,
			Purpose:   entity.PurposeDeleteAccount,
			ExpiresAt: time.Now().Add(-time.Minute),
		}, nil)
	hasher.EXPECT().Hash(mock.AnythingOfType("string")).Return("hashed_token", nil)
	tokenRepo.EXPECT().
		SaveActionToken(ctx, mock.AnythingOfType("*entity.ActionToken")).
		Return(nil)

	raw, err := flow.issue(ctx, tokenRepo, userID)

	require.NoError(t, err)
	assert.Len(t, raw, 64)
}

func TestActionTokenFlow_Validate_AllFailuresLookAlike(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("missing token", func(t *testing.T) {
		hasher := mockSvc.NewMockPasswordHasher(t)
		tokenRepo := mockRepo.NewMockActionTokenRepository(t)
		flow := newActionTokenFlow(entity.PurposeVerifyEmail, time.Hour, hasher)

		tokenRepo.EXPECT().
			FindActionToken(ctx, userID, entity.PurposeVerifyEmail).
			Return(nil, repository.ErrActionTokenNotFound)

		err := flow.validate(ctx, tokenRepo, userID, "whatever")
		assert.True(t, errors.Is(err, domainerrors.ErrActionTokenInvalid))
	})

	t.Run("expired token", func(t *testing.T) {
		hasher := mockSvc.NewMockPasswordHasher(t)
		tokenRepo := mockRepo.NewMockActionTokenRepository(t)
		flow := newActionTokenFlow(entity.PurposeVerifyEmail, time.Hour, hasher)

		tokenRepo.EXPECT().
			FindActionToken(ctx, userID, entity.PurposeVerifyEmail).
			Return(&entity.ActionToken{ExpiresAt: time.Now().Add(-time.Second)}, nil)

		err := flow.validate(ctx, tokenRepo, userID, "whatever")
		assert.True(t, errors.Is(err, domainerrors.ErrActionTokenInvalid))
	})

	t.Run("wrong plaintext", func(t *testing.T) {
		hasher := mockSvc.NewMockPasswordHasher(t)
		tokenRepo := mockRepo.NewMockActionTokenRepository(t)
		flow := newActionTokenFlow(entity.PurposeVerifyEmail, time.Hour, hasher)

		tokenRepo.EXPECT().
			FindActionToken(ctx, userID, entity.PurposeVerifyEmail).
			Return(&entity.ActionToken{
				TokenHash: "stored_hash",
				ExpiresAt: time.Now().Add(time.Hour),
			}, nil)
		hasher.EXPECT().Check("wrong", "stored_hash").Return(false)

		err := flow.validate(ctx, tokenRepo, userID, "wrong")
		assert.True(t, errors.Is(err, domainerrors.ErrActionTokenInvalid))
	})
}

func TestActionTokenFlow_Validate_Success(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenRepo := mockRepo.NewMockActionTokenRepository(t)
	flow := newActionTokenFlow(entity.PurposeVerifyEmail, time.Hour, hasher)

	tokenRepo.EXPECT().
		FindActionToken(ctx, userID, entity.PurposeVerifyEmail).
		Return(&entity.ActionToken{
			TokenHash: "stored_hash",
			ExpiresAt: time.Now().Add(time.Hour),
		}, nil)
	hasher.EXPECT().Check("the_token", "stored_hash").Return(true)

	err := flow.validate(ctx, tokenRepo, userID, "the_token")
	assert.NoError(t, err)
}

func TestActionTokenFlow_Consume(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	hasher := mockSvc.NewMockPasswordHasher(t)
	flow := newActionTokenFlow(entity.PurposeVerifyEmail, time.Hour, hasher)

	t.Run("removes the token", func(t *testing.T) {
		tokenRepo := mockRepo.NewMockActionTokenRepository(t)
		tokenRepo.EXPECT().
			DeleteActionToken(ctx, userID, entity.PurposeVerifyEmail).
			Return(nil)

		assert.NoError(t, flow.consume(ctx, tokenRepo, userID))
	})

	t.Run("already consumed", func(t *testing.T) {
		tokenRepo := mockRepo.NewMockActionTokenRepository(t)
		tokenRepo.EXPECT().
			DeleteActionToken(ctx, userID, entity.PurposeVerifyEmail).
			Return(repository.ErrActionTokenNotFound)

		err := flow.consume(ctx, tokenRepo, userID)
		assert.True(t, errors.Is(err, domainerrors.ErrActionTokenInvalid))
	})
}
