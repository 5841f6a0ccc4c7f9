package impl

import (
	"context"
	"testing"
	"time"

	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/repository"
	"cookbook/internal/domain/service"
	mockRepo "cookbook/internal/mocks/repository"
	mockSvc "cookbook/internal/mocks/service"
	"cookbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// sessionServiceFixture bundles the session service under test with its mocks.
type sessionServiceFixture struct {
	txManager    *mockRepo.MockTransactionManager
	factory      *mockRepo.MockRepositoryFactory
	userRepo     *mockRepo.MockUserRepository
	authRepo     *mockRepo.MockAuthRepository
	cookbookRepo *mockRepo.MockCookbookRepository
	refreshRepo  *mockRepo.MockRefreshTokenRepository
	tokenRepo    *mockRepo.MockActionTokenRepository
	tokenService *mockSvc.MockTokenService
	hasher       *mockSvc.MockPasswordHasher
	googleAuth   *mockSvc.MockOAuthAuthService
	service      usecase.SessionUsecase
}

func createTestSessionService(t *testing.T) *sessionServiceFixture {
	f := &sessionServiceFixture{
		txManager:    mockRepo.NewMockTransactionManager(t),
		factory:      mockRepo.NewMockRepositoryFactory(t),
		userRepo:     mockRepo.NewMockUserRepository(t),
		authRepo:     mockRepo.NewMockAuthRepository(t),
		cookbookRepo: mockRepo.NewMockCookbookRepository(t),
		refreshRepo:  mockRepo.NewMockRefreshTokenRepository(t),
		tokenRepo:    mockRepo.NewMockActionTokenRepository(t),
		tokenService: mockSvc.NewMockTokenService(t),
		hasher:       mockSvc.NewMockPasswordHasher(t),
		googleAuth:   mockSvc.NewMockOAuthAuthService(t),
	}

	f.factory.EXPECT().NewUserRepository().Return(f.userRepo).Maybe()
	f.factory.EXPECT().NewAuthRepository().Return(f.authRepo).Maybe()
	f.factory.EXPECT().NewCookbookRepository().Return(f.cookbookRepo).Maybe()
	f.factory.EXPECT().NewRefreshTokenRepository().Return(f.refreshRepo).Maybe()
	f.factory.EXPECT().NewActionTokenRepository().Return(f.tokenRepo).Maybe()

	f.service = NewSessionService(SessionServiceParams{
		TxManager:    f.txManager,
		TokenService: f.tokenService,
		Hasher:       f.hasher,
		GoogleAuth:   f.googleAuth,
		Logger:       newDiscardLogger(),
	})

	return f
}

func (f *sessionServiceFixture) expectTx() {
	f.txManager.EXPECT().
		Execute(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(f.factory)
		}).
		Once()
}

// expectSession registers the token pair issued after a successful login.
func (f *sessionServiceFixture) expectSession(ctx context.Context, userID uuid.UUID, authMethod string, expiresAt time.Time) {
	f.tokenService.EXPECT().
		IssueAccessToken(userID, authMethod).
		Return("access_token", expiresAt, nil)
	f.tokenService.EXPECT().
		IssueRefreshToken(ctx, userID, authMethod).
		Return("refresh_token", nil)
}

func TestSessionService_Login_Success(t *testing.T) {
	ctx := context.Background()
	f := createTestSessionService(t)
	userID := uuid.New()
	expiresAt := time.Now().Add(15 * time.Minute)

	f.expectTx()
	f.authRepo.EXPECT().
		FindAuthentication(ctx, entity.ProviderTypeEmail, "alice@example.com").
		Return(&entity.Authentication{UserID: userID, PasswordHash: "stored_hash"}, nil)
	f.hasher.EXPECT().Check("password123", "stored_hash").Return(true)
	f.userRepo.EXPECT().
		FindByID(ctx, userID).
		Return(&entity.User{ID: userID, Email: "alice@example.com", Verified: true}, nil)
	f.refreshRepo.EXPECT().DeleteExpiredRefreshTokens(ctx).Return(nil)
	f.tokenRepo.EXPECT().DeleteExpiredActionTokens(ctx).Return(nil)
	f.refreshRepo.EXPECT().CountActiveSessionsByUserID(ctx, userID).Return(2, nil)
	f.expectSession(ctx, userID, entity.ProviderTypeEmail, expiresAt)

	output, err := f.service.Login(ctx, &usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, "access_token", output.AccessToken)
	assert.Equal(t, "refresh_token", output.RefreshToken)
	assert.Equal(t, expiresAt, output.AccessTokenExpiresAt)
	assert.Equal(t, userID, output.User.ID)
}

func TestSessionService_Login_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	f := createTestSessionService(t)

	f.expectTx()
	f.authRepo.EXPECT().
		FindAuthentication(ctx, entity.ProviderTypeEmail, "ghost@example.com").
		Return(nil, repository.ErrAuthNotFound)

	output, err := f.service.Login(ctx, &usecase.LoginInput{
		Email:    "ghost@example.com",
		Password: "password123",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestSessionService_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()
	f := createTestSessionService(t)
	userID := uuid.New()

	f.expectTx()
	f.authRepo.EXPECT().
		FindAuthentication(ctx, entity.ProviderTypeEmail, "alice@example.com").
		Return(&entity.Authentication{UserID: userID, PasswordHash: "stored_hash"}, nil)
	f.hasher.EXPECT().Check("wrongPassword", "stored_hash").Return(false)

	output, err := f.service.Login(ctx, &usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "wrongPassword",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestSessionService_Login_UnverifiedAccount(t *testing.T) {
	ctx := context.Background()
	f := createTestSessionService(t)
	userID := uuid.New()

	f.expectTx()
	f.authRepo.EXPECT().
		FindAuthentication(ctx, entity.ProviderTypeEmail, "alice@example.com").
		Return(&entity.Authentication{UserID: userID, PasswordHash: "stored_hash"}, nil)
	f.hasher.EXPECT().Check("password123", "stored_hash").Return(true)
	f.userRepo.EXPECT().
		FindByID(ctx, userID).
		Return(&entity.User{ID: userID, Verified: false}, nil)

	output, err := f.service.Login(ctx, &usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "password123",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestSessionService_Login_ExpiredRowSweepFailure(t *testing.T) {
	ctx := context.Background()
	f := createTestSessionService(t)
	userID := uuid.New()

	f.expectTx()
	f.authRepo.EXPECT().
		FindAuthentication(ctx, entity.ProviderTypeEmail, "alice@example.com").
		Return(&entity.Authentication{UserID: userID, PasswordHash: "stored_hash"}, nil)
	f.hasher.EXPECT().Check("password123", "stored_hash").Return(true)
	f.userRepo.EXPECT().
		FindByID(ctx, userID).
		Return(&entity.User{ID: userID, Verified: true}, nil)
	f.refreshRepo.EXPECT().DeleteExpiredRefreshTokens(ctx).Return(assert.AnError)

	output, err := f.service.Login(ctx, &usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "password123",
	})

	assert.Nil(t, output)
	assert.Error(t, err)
}

func TestSessionService_Refresh_Success(t *testing.T) {
	ctx := context.Background()
	f := createTestSessionService(t)
	userID := uuid.New()
	expiresAt := time.Now().Add(15 * time.Minute)

	f.tokenService.EXPECT().
		ValidateRefreshToken(ctx, "live_refresh_token").
		Return(&service.Claims{UserID: userID, AuthMethod: entity.ProviderTypeEmail}, nil)
	f.tokenService.EXPECT().
		IssueAccessToken(userID, entity.ProviderTypeEmail).
		Return("fresh_access_token", expiresAt, nil)

	output, err := f.service.Refresh(ctx, &usecase.RefreshInput{RefreshToken: "live_refresh_token"})

	require.NoError(t, err)
	assert.Equal(t, "fresh_access_token", output.AccessToken)
	assert.Equal(t, expiresAt, output.AccessTokenExpiresAt)
}

func TestSessionService_Refresh_InvalidToken(t *testing.T) {
	ctx := context.Background()
	f := createTestSessionService(t)

	f.tokenService.EXPECT().
		ValidateRefreshToken(ctx, "revoked_token").
		Return(nil, assert.AnError)

	output, err := f.service.Refresh(ctx, &usecase.RefreshInput{RefreshToken: "revoked_token"})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestSessionService_Logout_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := createTestSessionService(t)

	t.Run("live session", func(t *testing.T) {
		f.tokenService.EXPECT().
			RevokeRefreshToken(ctx, "live_token").
			Return(true, nil)

		assert.NoError(t, f.service.Logout(ctx, &usecase.LogoutInput{RefreshToken: "live_token"}))
	})

	t.Run("already revoked", func(t *testing.T) {
		f.tokenService.EXPECT().
			RevokeRefreshToken(ctx, "gone_token").
			Return(false, nil)

		assert.NoError(t, f.service.Logout(ctx, &usecase.LogoutInput{RefreshToken: "gone_token"}))
	})
}

func TestSessionService_GoogleAuthURL(t *testing.T) {
	ctx := context.Background()
	f := createTestSessionService(t)

	f.googleAuth.EXPECT().
		GenerateAuthorizationURL(ctx).
		Return("https://accounts.google.com/o/oauth2/v2/auth?state=abc", nil)

	url, err := f.service.GoogleAuthURL(ctx)

	require.NoError(t, err)
	assert.Contains(t, url, "accounts.google.com")
}

func TestSessionService_GoogleCallback_InvalidState(t *testing.T) {
	ctx := context.Background()
	f := createTestSessionService(t)

	f.googleAuth.EXPECT().ValidateState("forged_state").Return(false)

	output, err := f.service.GoogleCallback(ctx, &usecase.GoogleCallbackInput{
		IDToken: "some_token",
		State:   "forged_state",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrOAuthStateInvalid)
}

func TestSessionService_GoogleCallback_InvalidIDToken(t *testing.T) {
	ctx := context.Background()
	f := createTestSessionService(t)

	f.googleAuth.EXPECT().ValidateState("good_state").Return(true)
	f.googleAuth.EXPECT().
		VerifyIDToken(ctx, "tampered_token").
		Return(nil, assert.AnError)

	output, err := f.service.GoogleCallback(ctx, &usecase.GoogleCallbackInput{
		IDToken: "tampered_token",
		State:   "good_state",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrOAuthTokenInvalid)
}

func TestSessionService_GoogleCallback_UnverifiedGoogleEmail(t *testing.T) {
	ctx := context.Background()
	f := createTestSessionService(t)

	f.googleAuth.EXPECT().ValidateState("good_state").Return(true)
	f.googleAuth.EXPECT().
		VerifyIDToken(ctx, "id_token").
		Return(&service.OAuthUser{
			ID:            "google-sub-1",
			Email:         "alice@example.com",
			EmailVerified: false,
		}, nil)

	output, err := f.service.GoogleCallback(ctx, &usecase.GoogleCallbackInput{
		IDToken: "id_token",
		State:   "good_state",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrOAuthTokenInvalid)
}

func TestSessionService_GoogleCallback_ReturningUser(t *testing.T) {
	ctx := context.Background()
	f := createTestSessionService(t)
	userID := uuid.New()
	expiresAt := time.Now().Add(15 * time.Minute)

	f.googleAuth.EXPECT().ValidateState("good_state").Return(true)
	f.googleAuth.EXPECT().
		VerifyIDToken(ctx, "id_token").
		Return(&service.OAuthUser{
			ID:            "google-sub-1",
			Email:         "alice@example.com",
			Name:          "Alice",
			EmailVerified: true,
		}, nil)

	f.expectTx()
	f.authRepo.EXPECT().
		FindAuthentication(ctx, entity.ProviderTypeGoogle, "google-sub-1").
		Return(&entity.Authentication{UserID: userID, Provider: entity.ProviderTypeGoogle}, nil)
	f.userRepo.EXPECT().
		FindByID(ctx, userID).
		Return(&entity.User{ID: userID, Email: "alice@example.com", Verified: true}, nil)
	f.expectSession(ctx, userID, entity.ProviderTypeGoogle, expiresAt)

	output, err := f.service.GoogleCallback(ctx, &usecase.GoogleCallbackInput{
		IDToken: "id_token",
		State:   "good_state",
	})

	require.NoError(t, err)
	assert.Equal(t, userID, output.User.ID)
	assert.Equal(t, "refresh_token", output.RefreshToken)
}

func TestSessionService_GoogleCallback_LinksExistingEmailAccount(t *testing.T) {
	ctx := context.Background()
	f := createTestSessionService(t)
	userID := uuid.New()
	expiresAt := time.Now().Add(15 * time.Minute)

	f.googleAuth.EXPECT().ValidateState("good_state").Return(true)
	f.googleAuth.EXPECT().
		VerifyIDToken(ctx, "id_token").
		Return(&service.OAuthUser{
			ID:            "google-sub-1",
			Email:         "alice@example.com",
			Name:          "Alice",
			EmailVerified: true,
		}, nil)

	f.expectTx()
	f.authRepo.EXPECT().
		FindAuthentication(ctx, entity.ProviderTypeGoogle, "google-sub-1").
		Return(nil, repository.ErrAuthNotFound)
	f.userRepo.EXPECT().
		FindByEmail(ctx, "alice@example.com").
		Return(&entity.User{ID: userID, Username: "alice", Email: "alice@example.com", Verified: false}, nil)
	f.authRepo.EXPECT().
		CreateAuthentication(ctx, mock.AnythingOfType("*entity.Authentication")).
		Run(func(ctx context.Context, auth *entity.Authentication) {
			assert.Equal(t, userID, auth.UserID)
			assert.Equal(t, entity.ProviderTypeGoogle, auth.Provider)
			assert.Equal(t, "google-sub-1", auth.ProviderUserID)
		}).
		Return(nil)
	// Controlling the Google identity proves control of the mailbox.
	f.userRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(ctx context.Context, user *entity.User) {
			assert.True(t, user.Verified)
		}).
		Return(nil)
	f.cookbookRepo.EXPECT().
		CreateCookbook(ctx, mock.AnythingOfType("*entity.Cookbook")).
		Return(nil)
	f.expectSession(ctx, userID, entity.ProviderTypeGoogle, expiresAt)

	output, err := f.service.GoogleCallback(ctx, &usecase.GoogleCallbackInput{
		IDToken: "id_token",
		State:   "good_state",
	})

	require.NoError(t, err)
	assert.True(t, output.User.Verified)
}

func TestSessionService_GoogleCallback_CreatesNewUser(t *testing.T) {
	ctx := context.Background()
	f := createTestSessionService(t)
	userID := uuid.New()
	expiresAt := time.Now().Add(15 * time.Minute)

	f.googleAuth.EXPECT().ValidateState("good_state").Return(true)
	f.googleAuth.EXPECT().
		VerifyIDToken(ctx, "id_token").
		Return(&service.OAuthUser{
			ID:            "google-sub-9",
			Email:         "newcomer@example.com",
			Name:          "Newcomer",
			EmailVerified: true,
		}, nil)

	f.expectTx()
	f.authRepo.EXPECT().
		FindAuthentication(ctx, entity.ProviderTypeGoogle, "google-sub-9").
		Return(nil, repository.ErrAuthNotFound)
	f.userRepo.EXPECT().
		FindByEmail(ctx, "newcomer@example.com").
		Return(nil, repository.ErrUserNotFound)
	f.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(ctx context.Context, user *entity.User) {
			assert.Equal(t, "newcomer@example.com", user.Email)
			// Username is the mailbox local part plus a random 4-hex suffix.
			assert.Regexp(t, `^newcomer_[0-9a-f]{4}$`, user.Username)
			assert.Equal(t, "Newcomer", user.DisplayName)
			assert.True(t, user.Verified)
			user.ID = userID
		}).
		Return(nil)
	f.authRepo.EXPECT().
		CreateAuthentication(ctx, mock.AnythingOfType("*entity.Authentication")).
		Run(func(ctx context.Context, auth *entity.Authentication) {
			assert.Equal(t, userID, auth.UserID)
			assert.Equal(t, "google-sub-9", auth.ProviderUserID)
		}).
		Return(nil)
	f.cookbookRepo.EXPECT().
		CreateCookbook(ctx, mock.AnythingOfType("*entity.Cookbook")).
		Run(func(ctx context.Context, cookbook *entity.Cookbook) {
			assert.Equal(t, userID, cookbook.UserID)
			assert.Len(t, cookbook.ShareSlug, 12)
		}).
		Return(nil)
	f.expectSession(ctx, userID, entity.ProviderTypeGoogle, expiresAt)

	output, err := f.service.GoogleCallback(ctx, &usecase.GoogleCallbackInput{
		IDToken: "id_token",
		State:   "good_state",
	})

	require.NoError(t, err)
	assert.Equal(t, userID, output.User.ID)
	assert.True(t, output.User.Verified)
}

func TestSessionService_GoogleCallback_UsernameCollisionRetries(t *testing.T) {
	ctx := context.Background()
	f := createTestSessionService(t)
	userID := uuid.New()
	expiresAt := time.Now().Add(15 * time.Minute)

	f.googleAuth.EXPECT().ValidateState("good_state").Return(true)
	f.googleAuth.EXPECT().
		VerifyIDToken(ctx, "id_token").
		Return(&service.OAuthUser{
			ID:            "google-sub-9",
			Email:         "newcomer@example.com",
			EmailVerified: true,
		}, nil)

	f.expectTx()
	f.authRepo.EXPECT().
		FindAuthentication(ctx, entity.ProviderTypeGoogle, "google-sub-9").
		Return(nil, repository.ErrAuthNotFound)
	f.userRepo.EXPECT().
		FindByEmail(ctx, "newcomer@example.com").
		Return(nil, repository.ErrUserNotFound)
	f.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Return(repository.ErrUsernameTaken).
		Once()
	f.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(ctx context.Context, user *entity.User) { user.ID = userID }).
		Return(nil).
		Once()
	f.authRepo.EXPECT().
		CreateAuthentication(ctx, mock.AnythingOfType("*entity.Authentication")).
		Return(nil)
	f.cookbookRepo.EXPECT().
		CreateCookbook(ctx, mock.AnythingOfType("*entity.Cookbook")).
		Return(nil)
	f.expectSession(ctx, userID, entity.ProviderTypeGoogle, expiresAt)

	output, err := f.service.GoogleCallback(ctx, &usecase.GoogleCallbackInput{
		IDToken: "id_token",
		State:   "good_state",
	})

	require.NoError(t, err)
	assert.Equal(t, userID, output.User.ID)
}
