package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token type discriminators embedded in the JWT "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims defines the custom claims for the JWT tokens.
type Claims struct {
	UserID     uuid.UUID
	AuthMethod string // The provider the session was established with ("email" or "google").
	Type       string // "access" or "refresh".
	jwt.RegisteredClaims
}

// TokenService issues and validates the two session token kinds. Access tokens
// are stateless; refresh tokens are additionally tracked in a persistent ledger,
// so revoking one takes effect before its expiry claim does.
type TokenService interface {
	// IssueAccessToken creates a short-lived stateless access token.
	IssueAccessToken(userID uuid.UUID, authMethod string) (token string, expiresAt time.Time, err error)

	// IssueRefreshToken creates a long-lived refresh token and records its
	// SHA-256 hash in the session ledger.
	IssueRefreshToken(ctx context.Context, userID uuid.UUID, authMethod string) (string, error)

	// ValidateAccessToken checks signature, expiry and token type.
	ValidateAccessToken(tokenString string) (*Claims, error)

	// ValidateRefreshToken checks signature, expiry, token type and that the
	// ledger still holds a live row for the token's hash.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)

	// RevokeRefreshToken removes the ledger row for a refresh token. It reports
	// whether a live row was actually removed.
	RevokeRefreshToken(ctx context.Context, tokenString string) (bool, error)

	// HashToken returns the hex-encoded SHA-256 digest used as the ledger key.
	HashToken(token string) string

	// GetAccessTokenDuration returns the configured access token lifetime.
	GetAccessTokenDuration() time.Duration

	// GetRefreshTokenDuration returns the configured refresh token lifetime.
	GetRefreshTokenDuration() time.Duration
}
