package service

import (
	"context"
)

// OAuthUser represents user information from OAuth providers
type OAuthUser struct {
	ID            string // Provider-specific user ID (e.g., Google's 'sub' claim)
	Email         string // User's email address
	Name          string // User's display name
	Provider      string // The OAuth provider ("google")
	AvatarURL     string // URL to user's profile picture
	EmailVerified bool   // Whether the email is verified by the provider
}

// OAuthAuthService defines the interface for OAuth authentication operations.
// The login leg builds a provider authorization URL with a CSRF state; the
// callback leg verifies the ID token the provider hands back.
type OAuthAuthService interface {
	// GenerateAuthorizationURL builds the provider's consent page URL and
	// records a one-time CSRF state embedded in it.
	GenerateAuthorizationURL(ctx context.Context) (string, error)

	// ValidateState consumes a previously issued CSRF state, reporting whether
	// it was known and unexpired.
	ValidateState(state string) bool

	// VerifyIDToken verifies an OAuth ID token and returns user information.
	// This is primarily used for Google Sign-In where the client sends an ID token directly.
	VerifyIDToken(ctx context.Context, idToken string) (*OAuthUser, error)

	// GetProvider returns the OAuth provider identifier.
	GetProvider() string
}
