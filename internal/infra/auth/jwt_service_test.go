package auth

import (
	"context"
	"testing"
	"time"

	"cookbook/config"
	"cookbook/internal/domain/entity"
	"cookbook/internal/domain/repository"
	mockRepo "cookbook/internal/mocks/repository"
	"cookbook/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"
	cfg.Auth = &config.AuthConfig{
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}

	return cfg
}

func createTestJWTService(t *testing.T, cfg *config.Config) (service.TokenService, *mockRepo.MockRefreshTokenRepository) {
	refreshRepo := mockRepo.NewMockRefreshTokenRepository(t)

	svc, err := NewJWTService(cfg, refreshRepo)
	require.NoError(t, err)

	return svc, refreshRepo
}

func TestNewJWTService_MissingSecrets(t *testing.T) {
	cfg := testJWTConfig()
	cfg.SecretKey.Access = ""

	_, err := NewJWTService(cfg, mockRepo.NewMockRefreshTokenRepository(t))

	assert.Error(t, err)
}

func TestJWTService_AccessToken_RoundTrip(t *testing.T) {
	svc, _ := createTestJWTService(t, testJWTConfig())
	userID := uuid.New()

	token, expiresAt, err := svc.IssueAccessToken(userID, "email")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, time.Minute)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "email", claims.AuthMethod)
	assert.Equal(t, service.TokenTypeAccess, claims.Type)
}

func TestJWTService_AccessToken_Expired(t *testing.T) {
	cfg := testJWTConfig()
	cfg.Auth.AccessTokenTTL = time.Nanosecond
	svc, _ := createTestJWTService(t, cfg)

	token, _, err := svc.IssueAccessToken(uuid.New(), "email")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = svc.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTService_AccessToken_Tampered(t *testing.T) {
	svc, _ := createTestJWTService(t, testJWTConfig())

	token, _, err := svc.IssueAccessToken(uuid.New(), "email")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	if tampered == token {
		tampered = token[:len(token)-2] + "yy"
	}

	_, err = svc.ValidateAccessToken(tampered)
	assert.Error(t, err)
}

func TestJWTService_AccessToken_RejectsRefreshType(t *testing.T) {
	cfg := testJWTConfig()
	// Same secret for both kinds so only the type claim tells them apart.
	cfg.SecretKey.Refresh = cfg.SecretKey.Access
	svc, refreshRepo := createTestJWTService(t, cfg)

	refreshRepo.EXPECT().
		CreateRefreshToken(mock.Anything, mock.AnythingOfType("*entity.RefreshToken")).
		Return(nil)

	refreshToken, err := svc.IssueRefreshToken(context.Background(), uuid.New(), "email")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(refreshToken)
	assert.Error(t, err)
}

func TestJWTService_RefreshToken_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, refreshRepo := createTestJWTService(t, testJWTConfig())
	userID := uuid.New()

	var ledgerHash string
	refreshRepo.EXPECT().
		CreateRefreshToken(ctx, mock.AnythingOfType("*entity.RefreshToken")).
		Run(func(ctx context.Context, record *entity.RefreshToken) {
			assert.Equal(t, userID, record.UserID)
			assert.Equal(t, "email", record.AuthMethod)
			assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), record.ExpiresAt, time.Minute)
			ledgerHash = record.TokenHash
		}).
		Return(nil)

	token, err := svc.IssueRefreshToken(ctx, userID, "email")
	require.NoError(t, err)
	assert.Equal(t, svc.HashToken(token), ledgerHash)

	refreshRepo.EXPECT().
		FindRefreshTokenByHash(ctx, ledgerHash).
		Return(&entity.RefreshToken{UserID: userID, TokenHash: ledgerHash}, nil)

	claims, err := svc.ValidateRefreshToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, service.TokenTypeRefresh, claims.Type)
}

func TestJWTService_RefreshToken_NotInLedger(t *testing.T) {
	ctx := context.Background()
	svc, refreshRepo := createTestJWTService(t, testJWTConfig())

	refreshRepo.EXPECT().
		CreateRefreshToken(ctx, mock.AnythingOfType("*entity.RefreshToken")).
		Return(nil)

	token, err := svc.IssueRefreshToken(ctx, uuid.New(), "email")
	require.NoError(t, err)

	// A revoked session leaves a valid signature with no ledger row behind it.
	refreshRepo.EXPECT().
		FindRefreshTokenByHash(ctx, svc.HashToken(token)).
		Return(nil, repository.ErrRefreshTokenNotFound)

	_, err = svc.ValidateRefreshToken(ctx, token)
	assert.Error(t, err)
}

func TestJWTService_RefreshToken_LedgerUserMismatch(t *testing.T) {
	ctx := context.Background()
	svc, refreshRepo := createTestJWTService(t, testJWTConfig())
	userID := uuid.New()

	refreshRepo.EXPECT().
		CreateRefreshToken(ctx, mock.AnythingOfType("*entity.RefreshToken")).
		Return(nil)

	token, err := svc.IssueRefreshToken(ctx, userID, "email")
	require.NoError(t, err)

	refreshRepo.EXPECT().
		FindRefreshTokenByHash(ctx, svc.HashToken(token)).
		Return(&entity.RefreshToken{UserID: uuid.New()}, nil)

	_, err = svc.ValidateRefreshToken(ctx, token)
	assert.Error(t, err)
}

func TestJWTService_RevokeRefreshToken(t *testing.T) {
	ctx := context.Background()
	svc, refreshRepo := createTestJWTService(t, testJWTConfig())

	t.Run("live session", func(t *testing.T) {
		refreshRepo.EXPECT().
			DeleteRefreshTokenByHash(ctx, svc.HashToken("live_token")).
			Return(nil)

		revoked, err := svc.RevokeRefreshToken(ctx, "live_token")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("already revoked", func(t *testing.T) {
		refreshRepo.EXPECT().
			DeleteRefreshTokenByHash(ctx, svc.HashToken("gone_token")).
			Return(repository.ErrRefreshTokenNotFound)

		revoked, err := svc.RevokeRefreshToken(ctx, "gone_token")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}

func TestJWTService_HashToken(t *testing.T) {
	svc, _ := createTestJWTService(t, testJWTConfig())

	hash := svc.HashToken("some_token")

	assert.Len(t, hash, 64)
	assert.Equal(t, hash, svc.HashToken("some_token"))
	assert.NotEqual(t, hash, svc.HashToken("other_token"))
}

func TestJWTService_Durations(t *testing.T) {
	svc, _ := createTestJWTService(t, testJWTConfig())

	assert.Equal(t, 15*time.Minute, svc.GetAccessTokenDuration())
	assert.Equal(t, 7*24*time.Hour, svc.GetRefreshTokenDuration())
}
