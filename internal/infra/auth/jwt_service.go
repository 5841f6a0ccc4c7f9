// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"cookbook/config"
	"cookbook/internal/domain/entity"
	"cookbook/internal/domain/repository"
	"cookbook/internal/domain/service"
	"cookbook/internal/errors"
)

const (
	defaultAccessTTL  = time.Minute * 15
	defaultRefreshTTL = time.Hour * 24
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// Access tokens are validated purely by signature and expiry. Refresh tokens are
// additionally checked against the session ledger, so deleting the ledger row
// revokes a session before its expiry claim fires.
type jwtService struct {
	accessSecret  string        // Secret key for signing access tokens.
	refreshSecret string        // Secret key for signing refresh tokens.
	accessTTL     time.Duration // Time-to-live for access tokens.
	refreshTTL    time.Duration // Time-to-live for refresh tokens.

	refreshTokenRepo repository.RefreshTokenRepository
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values and the session ledger to create a new token service instance.
func NewJWTService(cfg *config.Config, refreshTokenRepo repository.RefreshTokenRepository) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	accessTTL := defaultAccessTTL
	refreshTTL := defaultRefreshTTL
	if cfg.Auth != nil {
		if cfg.Auth.AccessTokenTTL > 0 {
			accessTTL = cfg.Auth.AccessTokenTTL
		}
		if cfg.Auth.RefreshTokenTTL > 0 {
			refreshTTL = cfg.Auth.RefreshTokenTTL
		}
	}

	return &jwtService{
		accessSecret:     cfg.SecretKey.Access,
		refreshSecret:    cfg.SecretKey.Refresh,
		accessTTL:        accessTTL,
		refreshTTL:       refreshTTL,
		refreshTokenRepo: refreshTokenRepo,
	}, nil
}

// IssueAccessToken creates a short-lived stateless access token.
func (s *jwtService) IssueAccessToken(userID uuid.UUID, authMethod string) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.accessTTL)
	token, err := s.generateToken(userID, authMethod, s.accessTTL, s.accessSecret, service.TokenTypeAccess)
	if err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

// IssueRefreshToken creates a long-lived refresh token and records its SHA-256
// hash in the session ledger. The raw token is returned to the caller and never
// stored.
func (s *jwtService) IssueRefreshToken(ctx context.Context, userID uuid.UUID, authMethod string) (string, error) {
	token, err := s.generateToken(userID, authMethod, s.refreshTTL, s.refreshSecret, service.TokenTypeRefresh)
	if err != nil {
		return "", err
	}

	record := &entity.RefreshToken{
		UserID:     userID,
		TokenHash:  s.HashToken(token),
		AuthMethod: authMethod,
		ExpiresAt:  time.Now().Add(s.refreshTTL),
	}
	if err := s.refreshTokenRepo.CreateRefreshToken(ctx, record); err != nil {
		return "", errors.Wrap(err, "failed to record refresh token")
	}

	return token, nil
}

// ValidateAccessToken checks signature, expiry and token type.
func (s *jwtService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	return s.parseToken(tokenString, s.accessSecret, service.TokenTypeAccess)
}

// ValidateRefreshToken checks signature, expiry, token type and that the
// session ledger still holds a live row for the token's hash.
func (s *jwtService) ValidateRefreshToken(ctx context.Context, tokenString string) (*service.Claims, error) {
	claims, err := s.parseToken(tokenString, s.refreshSecret, service.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	record, err := s.refreshTokenRepo.FindRefreshTokenByHash(ctx, s.HashToken(tokenString))
	if err != nil {
		return nil, errors.Wrap(err, "refresh token not in ledger")
	}
	if record.UserID != claims.UserID {
		return nil, errors.New("refresh token ledger mismatch")
	}

	return claims, nil
}

// RevokeRefreshToken removes the ledger row for a refresh token. A missing row
// is not an error; revocation is idempotent.
func (s *jwtService) RevokeRefreshToken(ctx context.Context, tokenString string) (bool, error) {
	err := s.refreshTokenRepo.DeleteRefreshTokenByHash(ctx, s.HashToken(tokenString))
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return false, nil
		}

		return false, errors.Wrap(err, "failed to revoke refresh token")
	}

	return true, nil
}

// HashToken returns the hex-encoded SHA-256 digest used as the ledger key.
// SHA-256 is enough here because refresh tokens carry far more entropy than
// any password, and the ledger lookup needs a deterministic key.
func (s *jwtService) HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))

	return hex.EncodeToString(digest[:])
}

// GetAccessTokenDuration returns the configured access token lifetime.
func (s *jwtService) GetAccessTokenDuration() time.Duration {
	return s.accessTTL
}

// GetRefreshTokenDuration returns the configured refresh token lifetime.
func (s *jwtService) GetRefreshTokenDuration() time.Duration {
	return s.refreshTTL
}

// generateToken is a private helper to create a JWT with specific claims.
func (s *jwtService) generateToken(userID uuid.UUID, authMethod string, ttl time.Duration, secret, tokenType string) (string, error) {
	claims := jwt.MapClaims{
		"sub":    userID,                     // Subject (who the token is for)
		"iat":    time.Now().Unix(),          // Issued At
		"exp":    time.Now().Add(ttl).Unix(), // Expiration Time
		"type":   tokenType,                  // Type of token (access or refresh)
		"method": authMethod,                 // Provider the session was established with
		"jti":    randomTokenID(),            // Keeps two tokens minted in the same second distinct
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(secret))
}

// parseToken validates a token string and maps its claims into service.Claims.
func (s *jwtService) parseToken(tokenString, secret, wantType string) (*service.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(secret), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token")
	}
	if !token.Valid {
		return nil, errors.New("token is invalid")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected claims format")
	}

	tokenType, _ := mapClaims["type"].(string)
	if tokenType != wantType {
		return nil, errors.Errorf("unexpected token type %q", tokenType)
	}

	sub, _ := mapClaims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, errors.Wrap(err, "invalid subject claim")
	}

	authMethod, _ := mapClaims["method"].(string)

	return &service.Claims{
		UserID:     userID,
		AuthMethod: authMethod,
		Type:       tokenType,
	}, nil
}

func randomTokenID() string {
	var buf [16]byte
	// rand.Read on crypto/rand never fails on supported platforms.
	_, _ = rand.Read(buf[:])

	return hex.EncodeToString(buf[:])
}
