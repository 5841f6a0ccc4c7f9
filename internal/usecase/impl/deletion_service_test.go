package impl

import (
	"context"
	"testing"
	"time"

	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/repository"
	"cookbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// expectCascade registers the full satellite-data teardown for userID.
func (f *accountServiceFixture) expectCascade(ctx context.Context, userID uuid.UUID, reviews int64) {
	f.tokenRepo.EXPECT().DeleteActionTokensByUserID(ctx, userID).Return(nil)
	f.refreshRepo.EXPECT().DeleteRefreshTokensByUserID(ctx, userID).Return(nil)
	f.reviewRepo.EXPECT().DeleteReviewsByAuthorID(ctx, userID).Return(reviews, nil)
	f.cookbookRepo.EXPECT().DeleteCookbookByUserID(ctx, userID).Return(nil)
	f.authRepo.EXPECT().DeleteAuthenticationsByUserID(ctx, userID).Return(nil)
	f.userRepo.EXPECT().Delete(ctx, userID).Return(nil)
}

// expectDeletionTokenIssued registers the happy-path token issuance plus the
// confirmation mail for userID.
func (f *accountServiceFixture) expectDeletionTokenIssued(t *testing.T, ctx context.Context, userID uuid.UUID, email string) {
	f.tokenRepo.EXPECT().
		FindActionToken(ctx, userID, entity.PurposeDeleteAccount).
		Return(nil, repository.ErrActionTokenNotFound)
	f.hasher.EXPECT().Hash(mock.AnythingOfType("string")).Return("hashed_token", nil)
	f.tokenRepo.EXPECT().
		SaveActionToken(ctx, mock.AnythingOfType("*entity.ActionToken")).
		Run(func(ctx context.Context, token *entity.ActionToken) {
			assert.Equal(t, entity.PurposeDeleteAccount, token.Purpose)
		}).
		Return(nil)
	f.mailer.EXPECT().
		Send(ctx, email, mock.Anything, mock.Anything).
		Return(nil)
}

func TestAccountService_DeleteAccount_AmbiguousCredentials(t *testing.T) {
	ctx := context.Background()
	f := createTestAccountService(t)
	userID := uuid.New()

	output, err := f.service.DeleteAccount(ctx, &usecase.DeleteAccountInput{
		TargetUserID: userID,
		ActorUserID:  userID,
		Password:     "password123",
		DeleteToken:  "some_token",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrDeletionCredentialAmbiguous)
}

func TestAccountService_DeleteAccount_WrongActor(t *testing.T) {
	ctx := context.Background()
	f := createTestAccountService(t)

	output, err := f.service.DeleteAccount(ctx, &usecase.DeleteAccountInput{
		TargetUserID: uuid.New(),
		ActorUserID:  uuid.New(),
		Password:     "password123",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestAccountService_DeleteAccount_PasswordPath_SendsConfirmation(t *testing.T) {
	ctx := context.Background()
	f := createTestAccountService(t)
	userID := uuid.New()

	f.expectTx()
	f.userRepo.EXPECT().
		FindByID(ctx, userID).
		Return(&entity.User{ID: userID, Username: "alice", Email: "alice@example.com"}, nil)
	f.authRepo.EXPECT().
		FindAuthenticationByUserID(ctx, userID, entity.ProviderTypeEmail).
		Return(&entity.Authentication{UserID: userID, PasswordHash: "stored_hash"}, nil)
	f.hasher.EXPECT().Check("password123", "stored_hash").Return(true).Once()
	f.expectDeletionTokenIssued(t, ctx, userID, "alice@example.com")

	output, err := f.service.DeleteAccount(ctx, &usecase.DeleteAccountInput{
		TargetUserID: userID,
		ActorUserID:  userID,
		Password:     "password123",
	})

	require.NoError(t, err)
	assert.True(t, output.ConfirmationSent)
	assert.False(t, output.Deleted)
}

func TestAccountService_DeleteAccount_PasswordPath_Anonymous(t *testing.T) {
	ctx := context.Background()
	f := createTestAccountService(t)

	output, err := f.service.DeleteAccount(ctx, &usecase.DeleteAccountInput{
		TargetUserID: uuid.New(),
		ActorUserID:  uuid.Nil,
		Password:     "password123",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrDeletionCredentialMissing)
}

func TestAccountService_DeleteAccount_PasswordPath_WrongPassword(t *testing.T) {
	ctx := context.Background()
	f := createTestAccountService(t)
	userID := uuid.New()

	f.expectTx()
	f.userRepo.EXPECT().
		FindByID(ctx, userID).
		Return(&entity.User{ID: userID, Email: "alice@example.com"}, nil)
	f.authRepo.EXPECT().
		FindAuthenticationByUserID(ctx, userID, entity.ProviderTypeEmail).
		Return(&entity.Authentication{UserID: userID, PasswordHash: "stored_hash"}, nil)
	f.hasher.EXPECT().Check("wrongPassword", "stored_hash").Return(false)

	output, err := f.service.DeleteAccount(ctx, &usecase.DeleteAccountInput{
		TargetUserID: userID,
		ActorUserID:  userID,
		Password:     "wrongPassword",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAccountService_DeleteAccount_PasswordPath_GoogleOnlyAccount(t *testing.T) {
	ctx := context.Background()
	f := createTestAccountService(t)
	userID := uuid.New()

	f.expectTx()
	f.userRepo.EXPECT().
		FindByID(ctx, userID).
		Return(&entity.User{ID: userID, Email: "alice@example.com"}, nil)
	f.authRepo.EXPECT().
		FindAuthenticationByUserID(ctx, userID, entity.ProviderTypeEmail).
		Return(nil, repository.ErrAuthNotFound)

	output, err := f.service.DeleteAccount(ctx, &usecase.DeleteAccountInput{
		TargetUserID: userID,
		ActorUserID:  userID,
		Password:     "password123",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAccountService_DeleteAccount_GoogleSessionPath_SendsConfirmation(t *testing.T) {
	ctx := context.Background()
	f := createTestAccountService(t)
	userID := uuid.New()

	f.expectTx()
	f.userRepo.EXPECT().
		FindByID(ctx, userID).
		Return(&entity.User{ID: userID, Username: "bob", Email: "bob@example.com"}, nil)
	f.expectDeletionTokenIssued(t, ctx, userID, "bob@example.com")

	output, err := f.service.DeleteAccount(ctx, &usecase.DeleteAccountInput{
		TargetUserID:    userID,
		ActorUserID:     userID,
		ActorAuthMethod: entity.ProviderTypeGoogle,
	})

	require.NoError(t, err)
	assert.True(t, output.ConfirmationSent)
	assert.False(t, output.Deleted)
}

func TestAccountService_DeleteAccount_EmailSessionWithoutPassword(t *testing.T) {
	ctx := context.Background()
	f := createTestAccountService(t)
	userID := uuid.New()

	f.expectTx()
	f.userRepo.EXPECT().
		FindByID(ctx, userID).
		Return(&entity.User{ID: userID, Email: "alice@example.com"}, nil)

	output, err := f.service.DeleteAccount(ctx, &usecase.DeleteAccountInput{
		TargetUserID:    userID,
		ActorUserID:     userID,
		ActorAuthMethod: entity.ProviderTypeEmail,
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrDeletionCredentialMissing)
}

func TestAccountService_DeleteAccount_ConfirmationRequest_LiveTokenSuppressed(t *testing.T) {
	ctx := context.Background()
	f := createTestAccountService(t)
	userID := uuid.New()

	f.expectTx()
	f.userRepo.EXPECT().
		FindByID(ctx, userID).
		Return(&entity.User{ID: userID, Username: "bob", Email: "bob@example.com"}, nil)
	f.tokenRepo.EXPECT().
		FindActionToken(ctx, userID, entity.PurposeDeleteAccount).
		Return(&entity.ActionToken{ExpiresAt: time.Now().Add(10 * time.Minute)}, nil)

	output, err := f.service.DeleteAccount(ctx, &usecase.DeleteAccountInput{
		TargetUserID:    userID,
		ActorUserID:     userID,
		ActorAuthMethod: entity.ProviderTypeGoogle,
	})

	// The earlier mail still stands; no second token, no second mail.
	require.NoError(t, err)
	assert.True(t, output.ConfirmationSent)
}

func TestAccountService_DeleteAccount_ConfirmationRequest_UnknownUser(t *testing.T) {
	ctx := context.Background()
	f := createTestAccountService(t)
	userID := uuid.New()

	f.expectTx()
	f.userRepo.EXPECT().
		FindByID(ctx, userID).
		Return(nil, repository.ErrUserNotFound)

	output, err := f.service.DeleteAccount(ctx, &usecase.DeleteAccountInput{
		TargetUserID:    userID,
		ActorUserID:     userID,
		ActorAuthMethod: entity.ProviderTypeGoogle,
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAccountService_DeleteAccount_TokenPath_Anonymous(t *testing.T) {
	ctx := context.Background()
	f := createTestAccountService(t)
	userID := uuid.New()

	f.expectTx()
	f.userRepo.EXPECT().
		FindByID(ctx, userID).
		Return(&entity.User{ID: userID, Username: "alice", Email: "alice@example.com"}, nil)
	f.tokenRepo.EXPECT().
		FindActionToken(ctx, userID, entity.PurposeDeleteAccount).
		Return(&entity.ActionToken{TokenHash: "stored_hash", ExpiresAt: time.Now().Add(10 * time.Minute)}, nil)
	f.hasher.EXPECT().Check("the_token", "stored_hash").Return(true)
	f.expectCascade(ctx, userID, 7)
	f.mailer.EXPECT().
		Send(ctx, "alice@example.com", mock.Anything, mock.Anything).
		Return(nil)

	output, err := f.service.DeleteAccount(ctx, &usecase.DeleteAccountInput{
		TargetUserID: userID,
		ActorUserID:  uuid.Nil,
		DeleteToken:  "the_token",
	})

	require.NoError(t, err)
	assert.True(t, output.Deleted)
	assert.Equal(t, int64(7), output.ReviewsRemoved)
}

func TestAccountService_DeleteAccount_TokenPath_UnknownUser(t *testing.T) {
	ctx := context.Background()
	f := createTestAccountService(t)
	userID := uuid.New()

	f.expectTx()
	f.userRepo.EXPECT().
		FindByID(ctx, userID).
		Return(nil, repository.ErrUserNotFound)

	output, err := f.service.DeleteAccount(ctx, &usecase.DeleteAccountInput{
		TargetUserID: userID,
		DeleteToken:  "the_token",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAccountService_DeleteAccount_TokenPath_InvalidTokenClearsToken(t *testing.T) {
	ctx := context.Background()
	f := createTestAccountService(t)
	userID := uuid.New()

	f.expectTx()
	f.userRepo.EXPECT().
		FindByID(ctx, userID).
		Return(&entity.User{ID: userID, Email: "alice@example.com"}, nil)
	f.tokenRepo.EXPECT().
		FindActionToken(ctx, userID, entity.PurposeDeleteAccount).
		Return(nil, repository.ErrActionTokenNotFound)

	// The stored token is dropped in a follow-up transaction so the
	// protocol restarts from scratch.
	f.expectTx()
	f.tokenRepo.EXPECT().
		DeleteActionToken(ctx, userID, entity.PurposeDeleteAccount).
		Return(nil)

	output, err := f.service.DeleteAccount(ctx, &usecase.DeleteAccountInput{
		TargetUserID: userID,
		DeleteToken:  "expired_or_bogus",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrActionTokenInvalid)
}

func TestAccountService_DeleteAccount_TokenPath_WrongPlaintextClearsToken(t *testing.T) {
	ctx := context.Background()
	f := createTestAccountService(t)
	userID := uuid.New()

	f.expectTx()
	f.userRepo.EXPECT().
		FindByID(ctx, userID).
		Return(&entity.User{ID: userID, Email: "alice@example.com"}, nil)
	f.tokenRepo.EXPECT().
		FindActionToken(ctx, userID, entity.PurposeDeleteAccount).
		Return(&entity.ActionToken{TokenHash: "stored_hash", ExpiresAt: time.Now().Add(10 * time.Minute)}, nil)
	f.hasher.EXPECT().Check("wrong_token", "stored_hash").Return(false)

	f.expectTx()
	f.tokenRepo.EXPECT().
		DeleteActionToken(ctx, userID, entity.PurposeDeleteAccount).
		Return(nil)

	output, err := f.service.DeleteAccount(ctx, &usecase.DeleteAccountInput{
		TargetUserID: userID,
		DeleteToken:  "wrong_token",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrActionTokenInvalid)
}

func TestAccountService_DeleteAccount_TokenPath_MissingCookbookTolerated(t *testing.T) {
	ctx := context.Background()
	f := createTestAccountService(t)
	userID := uuid.New()

	f.expectTx()
	f.userRepo.EXPECT().
		FindByID(ctx, userID).
		Return(&entity.User{ID: userID, Email: "alice@example.com"}, nil)
	f.tokenRepo.EXPECT().
		FindActionToken(ctx, userID, entity.PurposeDeleteAccount).
		Return(&entity.ActionToken{TokenHash: "stored_hash", ExpiresAt: time.Now().Add(10 * time.Minute)}, nil)
	f.hasher.EXPECT().Check("the_token", "stored_hash").Return(true)

	f.tokenRepo.EXPECT().DeleteActionTokensByUserID(ctx, userID).Return(nil)
	f.refreshRepo.EXPECT().DeleteRefreshTokensByUserID(ctx, userID).Return(nil)
	f.reviewRepo.EXPECT().DeleteReviewsByAuthorID(ctx, userID).Return(int64(0), nil)
	// An unverified account never got a cookbook; deletion still completes.
	f.cookbookRepo.EXPECT().DeleteCookbookByUserID(ctx, userID).Return(repository.ErrCookbookNotFound)
	f.authRepo.EXPECT().DeleteAuthenticationsByUserID(ctx, userID).Return(nil)
	f.userRepo.EXPECT().Delete(ctx, userID).Return(nil)
	f.mailer.EXPECT().
		Send(ctx, "alice@example.com", mock.Anything, mock.Anything).
		Return(nil)

	output, err := f.service.DeleteAccount(ctx, &usecase.DeleteAccountInput{
		TargetUserID: userID,
		DeleteToken:  "the_token",
	})

	require.NoError(t, err)
	assert.True(t, output.Deleted)
}

func TestAccountService_DeleteAccount_ConfirmationRequest_Anonymous(t *testing.T) {
	ctx := context.Background()
	f := createTestAccountService(t)

	output, err := f.service.DeleteAccount(ctx, &usecase.DeleteAccountInput{
		TargetUserID: uuid.New(),
		ActorUserID:  uuid.Nil,
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrDeletionCredentialMissing)
}
