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
	"cookbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// accountServiceFixture bundles the account service under test with its mocks.
type accountServiceFixture struct {
	txManager    *mockRepo.MockTransactionManager
	factory      *mockRepo.MockRepositoryFactory
	userRepo     *mockRepo.MockUserRepository
	authRepo     *mockRepo.MockAuthRepository
	tokenRepo    *mockRepo.MockActionTokenRepository
	refreshRepo  *mockRepo.MockRefreshTokenRepository
	cookbookRepo *mockRepo.MockCookbookRepository
	reviewRepo   *mockRepo.MockReviewRepository
	hasher       *mockSvc.MockPasswordHasher
	mailer       *mockSvc.MockMailSender
	service      usecase.AccountUsecase
}

func createTestAccountService(t *testing.T) *accountServiceFixture {
	f := &accountServiceFixture{
		txManager:    mockRepo.NewMockTransactionManager(t),
		factory:      mockRepo.NewMockRepositoryFactory(t),
		userRepo:     mockRepo.NewMockUserRepository(t),
		authRepo:     mockRepo.NewMockAuthRepository(t),
		tokenRepo:    mockRepo.NewMockActionTokenRepository(t),
		refreshRepo:  mockRepo.NewMockRefreshTokenRepository(t),
		cookbookRepo: mockRepo.NewMockCookbookRepository(t),
		reviewRepo:   mockRepo.NewMockReviewRepository(t),
		hasher:       mockSvc.NewMockPasswordHasher(t),
		mailer:       mockSvc.NewMockMailSender(t),
	}

	f.factory.EXPECT().NewUserRepository().Return(f.userRepo).Maybe()
	f.factory.EXPECT().NewAuthRepository().Return(f.authRepo).Maybe()
	f.factory.EXPECT().NewActionTokenRepository().Return(f.tokenRepo).Maybe()
	f.factory.EXPECT().NewRefreshTokenRepository().Return(f.refreshRepo).Maybe()
	f.factory.EXPECT().NewCookbookRepository().Return(f.cookbookRepo).Maybe()
	f.factory.EXPECT().NewReviewRepository().Return(f.reviewRepo).Maybe()

	f.service = NewAccountService(AccountServiceParams{
		TxManager:    f.txManager,
		TokenService: mockSvc.NewMockTokenService(t),
		Hasher:       f.hasher,
		Mailer:       f.mailer,
		Config:       newTestConfig(),
		Logger:       newDiscardLogger(),
	})

	return f
}

// expectTx wires one transaction to run its closure against the mock factory.
func (f *accountServiceFixture) expectTx() {
	f.txManager.EXPECT().
		Execute(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(f.factory)
		}).
		Once()
}

func TestAccountService_Register_Success(t *testing.T) {
	ctx := context.Background()
	f := createTestAccountService(t)
	userID := uuid.New()

	input := &usecase.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	}

	f.hasher.EXPECT().Hash("password123").Return("hashed_pw", nil).Once()

	f.expectTx()
	f.userRepo.EXPECT().
		FindByUsername(ctx, "alice").
		Return(nil, repository.ErrUserNotFound)
	f.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(ctx context.Context, user *entity.User) {
			assert.Equal(t, "alice@example.com", user.Email)
			assert.Equal(t, "alice", user.Username)
			assert.False(t, user.Verified)
			user.ID = userID
		}).
		Return(nil)
	f.authRepo.EXPECT().
		CreateAuthentication(ctx, mock.AnythingOfType("*entity.Authentication")).
		Run(func(ctx context.Context, auth *entity.Authentication) {
			assert.Equal(t, userID, auth.UserID)
			assert.Equal(t, entity.ProviderTypeEmail, auth.Provider)
			assert.Equal(t, "alice@example.com", auth.ProviderUserID)
			assert.Equal(t, "hashed_pw", auth.PasswordHash)
		}).
		Return(nil)
	f.tokenRepo.EXPECT().
		FindActionToken(ctx, userID, entity.PurposeVerifyEmail).
		Return(nil, repository.ErrActionTokenNotFound)
	f.hasher.EXPECT().Hash(mock.AnythingOfType("string")).Return("hashed_token", nil).Once()
	f.tokenRepo.EXPECT().
		SaveActionToken(ctx, mock.AnythingOfType("*entity.ActionToken")).
		Return(nil)

	f.mailer.EXPECT().
		Send(ctx, "alice@example.com", mock.Anything, mock.Anything).
		Return(nil)

	output, err := f.service.Register(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, userID, output.User.ID)
	assert.False(t, output.User.Verified)
}

func TestAccountService_Register_EmailTaken(t *testing.T) {
	ctx := context.Background()
	f := createTestAccountService(t)

	f.hasher.EXPECT().Hash("password123").Return("hashed_pw", nil)
	f.expectTx()
	f.userRepo.EXPECT().
		FindByUsername(ctx, "alice").
		Return(nil, repository.ErrUserNotFound)
	f.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Return(repository.ErrEmailTaken)

	output, err := f.service.Register(ctx, &usecase.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestAccountService_Register_UsernameTaken(t *testing.T) {
	ctx := context.Background()
	f := createTestAccountService(t)

	f.hasher.EXPECT().Hash("password123").Return("hashed_pw", nil)
	f.expectTx()
	f.userRepo.EXPECT().
		FindByUsername(ctx, "alice").
		Return(&entity.User{ID: uuid.New(), Username: "alice"}, nil)

	output, err := f.service.Register(ctx, &usecase.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrUsernameTaken)
}

func TestAccountService_Register_UsernameRaceCaughtByConstraint(t *testing.T) {
	ctx := context.Background()
	f := createTestAccountService(t)

	f.hasher.EXPECT().Hash("password123").Return("hashed_pw", nil)
	f.expectTx()
	// The pre-check misses the concurrent insert; the constraint does not.
	f.userRepo.EXPECT().
		FindByUsername(ctx, "alice").
		Return(nil, repository.ErrUserNotFound)
	f.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Return(repository.ErrUsernameTaken)

	output, err := f.service.Register(ctx, &usecase.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrUsernameTaken)
}

func TestAccountService_Register_MailFailureDoesNotFail(t *testing.T) {
	ctx := context.Background()
	f := createTestAccountService(t)
	userID := uuid.New()

	f.hasher.EXPECT().Hash("password123").Return("hashed_pw", nil).Once()
	f.expectTx()
	f.userRepo.EXPECT().
		FindByUsername(ctx, "alice").
		Return(nil, repository.ErrUserNotFound)
	f.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(ctx context.Context, user *entity.User) { user.ID = userID }).
		Return(nil)
	f.authRepo.EXPECT().
		CreateAuthentication(ctx, mock.AnythingOfType("*entity.Authentication")).
		Return(nil)
	f.tokenRepo.EXPECT().
		FindActionToken(ctx, userID, entity.PurposeVerifyEmail).
		Return(nil, repository.ErrActionTokenNotFound)
	f.hasher.EXPECT().Hash(mock.AnythingOfType("string")).Return("hashed_token", nil).Once()
	f.tokenRepo.EXPECT().
		SaveActionToken(ctx, mock.AnythingOfType("*entity.ActionToken")).
		Return(nil)
	f.mailer.EXPECT().
		Send(ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(assert.AnError)

	output, err := f.service.Register(ctx, &usecase.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, userID, output.User.ID)
}

func TestAccountService_ConfirmAccount_Success(t *testing.T) {
	ctx := context.Background()
	f := createTestAccountService(t)
	userID := uuid.New()

	user := &entity.User{ID: userID, Username: "alice", Email: "alice@example.com"}

	// First transaction verifies the account, second provisions the cookbook.
	f.expectTx()
	f.expectTx()

	f.userRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)
	f.tokenRepo.EXPECT().
		FindActionToken(ctx, userID, entity.PurposeVerifyEmail).
		Return(&entity.ActionToken{
			TokenHash: "stored_hash",
			ExpiresAt: time.Now().Add(time.Hour),
		}, nil)
	f.hasher.EXPECT().Check("the_token", "stored_hash").Return(true)
	f.userRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(ctx context.Context, updated *entity.User) {
			assert.True(t, updated.Verified)
		}).
		Return(nil)
	f.tokenRepo.EXPECT().
		DeleteActionToken(ctx, userID, entity.PurposeVerifyEmail).
		Return(nil)

	f.cookbookRepo.EXPECT().
		CreateCookbook(ctx, mock.AnythingOfType("*entity.Cookbook")).
		Run(func(ctx context.Context, cookbook *entity.Cookbook) {
			assert.Equal(t, userID, cookbook.UserID)
			assert.Len(t, cookbook.ShareSlug, 12)
			assert.Contains(t, cookbook.Title, "alice")
		}).
		Return(nil)

	output, err := f.service.ConfirmAccount(ctx, &usecase.ConfirmAccountInput{
		UserID: userID,
		Token:  "the_token",
	})

	require.NoError(t, err)
	assert.True(t, output.User.Verified)
}

func TestAccountService_ConfirmAccount_UnknownUser(t *testing.T) {
	ctx := context.Background()
	f := createTestAccountService(t)
	userID := uuid.New()

	f.expectTx()
	f.userRepo.EXPECT().FindByID(ctx, userID).Return(nil, repository.ErrUserNotFound)

	output, err := f.service.ConfirmAccount(ctx, &usecase.ConfirmAccountInput{
		UserID: userID,
		Token:  "the_token",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrActionTokenInvalid)
}

func TestAccountService_ConfirmAccount_InvalidToken(t *testing.T) {
	ctx := context.Background()
	f := createTestAccountService(t)
	userID := uuid.New()

	f.expectTx()
	f.userRepo.EXPECT().
		FindByID(ctx, userID).
		Return(&entity.User{ID: userID, Username: "alice"}, nil)
	f.tokenRepo.EXPECT().
		FindActionToken(ctx, userID, entity.PurposeVerifyEmail).
		Return(nil, repository.ErrActionTokenNotFound)

	output, err := f.service.ConfirmAccount(ctx, &usecase.ConfirmAccountInput{
		UserID: userID,
		Token:  "the_token",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrActionTokenInvalid)
}

func TestAccountService_ConfirmAccount_CookbookProvisionFails(t *testing.T) {
	ctx := context.Background()
	f := createTestAccountService(t)
	userID := uuid.New()

	f.expectTx()
	f.expectTx()

	f.userRepo.EXPECT().
		FindByID(ctx, userID).
		Return(&entity.User{ID: userID, Username: "alice"}, nil)
	f.tokenRepo.EXPECT().
		FindActionToken(ctx, userID, entity.PurposeVerifyEmail).
		Return(&entity.ActionToken{TokenHash: "stored_hash", ExpiresAt: time.Now().Add(time.Hour)}, nil)
	f.hasher.EXPECT().Check("the_token", "stored_hash").Return(true)
	f.userRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	f.tokenRepo.EXPECT().
		DeleteActionToken(ctx, userID, entity.PurposeVerifyEmail).
		Return(nil)
	f.cookbookRepo.EXPECT().
		CreateCookbook(ctx, mock.AnythingOfType("*entity.Cookbook")).
		Return(assert.AnError)

	output, err := f.service.ConfirmAccount(ctx, &usecase.ConfirmAccountInput{
		UserID: userID,
		Token:  "the_token",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrCookbookProvisionFailed)
}

func TestAccountService_ConfirmAccount_CookbookAlreadyExists(t *testing.T) {
	ctx := context.Background()
	f := createTestAccountService(t)
	userID := uuid.New()

	f.expectTx()
	f.expectTx()

	f.userRepo.EXPECT().
		FindByID(ctx, userID).
		Return(&entity.User{ID: userID, Username: "alice"}, nil)
	f.tokenRepo.EXPECT().
		FindActionToken(ctx, userID, entity.PurposeVerifyEmail).
		Return(&entity.ActionToken{TokenHash: "stored_hash", ExpiresAt: time.Now().Add(time.Hour)}, nil)
	f.hasher.EXPECT().Check("the_token", "stored_hash").Return(true)
	f.userRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	f.tokenRepo.EXPECT().
		DeleteActionToken(ctx, userID, entity.PurposeVerifyEmail).
		Return(nil)
	f.cookbookRepo.EXPECT().
		CreateCookbook(ctx, mock.AnythingOfType("*entity.Cookbook")).
		Return(repository.ErrCookbookAlreadyExists)

	output, err := f.service.ConfirmAccount(ctx, &usecase.ConfirmAccountInput{
		UserID: userID,
		Token:  "the_token",
	})

	require.NoError(t, err)
	assert.True(t, output.User.Verified)
}

func TestAccountService_ResendVerification_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	f := createTestAccountService(t)

	f.expectTx()
	f.userRepo.EXPECT().
		FindByEmail(ctx, "ghost@example.com").
		Return(nil, repository.ErrUserNotFound)

	err := f.service.ResendVerification(ctx, &usecase.ResendVerificationInput{Email: "ghost@example.com"})

	assert.NoError(t, err)
}

func TestAccountService_ResendVerification_AlreadyVerified(t *testing.T) {
	ctx := context.Background()
	f := createTestAccountService(t)

	f.expectTx()
	f.userRepo.EXPECT().
		FindByEmail(ctx, "alice@example.com").
		Return(&entity.User{ID: uuid.New(), Email: "alice@example.com", Verified: true}, nil)

	err := f.service.ResendVerification(ctx, &usecase.ResendVerificationInput{Email: "alice@example.com"})

	assert.NoError(t, err)
}

func TestAccountService_ResendVerification_LiveTokenSuppressed(t *testing.T) {
	ctx := context.Background()
	f := createTestAccountService(t)
	userID := uuid.New()

	f.expectTx()
	f.userRepo.EXPECT().
		FindByEmail(ctx, "alice@example.com").
		Return(&entity.User{ID: userID, Email: "alice@example.com"}, nil)
	f.tokenRepo.EXPECT().
		FindActionToken(ctx, userID, entity.PurposeVerifyEmail).
		Return(&entity.ActionToken{ExpiresAt: time.Now().Add(time.Hour)}, nil)

	err := f.service.ResendVerification(ctx, &usecase.ResendVerificationInput{Email: "alice@example.com"})

	assert.NoError(t, err)
}

func TestAccountService_ResendVerification_Success(t *testing.T) {
	ctx := context.Background()
	f := createTestAccountService(t)
	userID := uuid.New()

	f.expectTx()
	f.userRepo.EXPECT().
		FindByEmail(ctx, "alice@example.com").
		Return(&entity.User{ID: userID, Username: "alice", Email: "alice@example.com"}, nil)
	f.tokenRepo.EXPECT().
		FindActionToken(ctx, userID, entity.PurposeVerifyEmail).
		Return(nil, repository.ErrActionTokenNotFound)
	f.hasher.EXPECT().Hash(mock.AnythingOfType("string")).Return("hashed_token", nil)
	f.tokenRepo.EXPECT().
		SaveActionToken(ctx, mock.AnythingOfType("*entity.ActionToken")).
		Return(nil)
	f.mailer.EXPECT().
		Send(ctx, "alice@example.com", mock.Anything, mock.Anything).
		Return(nil)

	err := f.service.ResendVerification(ctx, &usecase.ResendVerificationInput{Email: "alice@example.com"})

	assert.NoError(t, err)
}
