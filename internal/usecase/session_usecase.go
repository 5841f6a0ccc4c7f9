// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"cookbook/internal/domain/entity"
)

// --- Input DTOs ---

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshInput carries the refresh token extracted from the session cookie.
type RefreshInput struct {
	RefreshToken string
}

// LogoutInput carries the refresh token whose session should end.
type LogoutInput struct {
	RefreshToken string
}

// GoogleCallbackInput carries the ID token and CSRF state Google posts back
// after consent.
type GoogleCallbackInput struct {
	IDToken string
	State   string
}

// --- Output DTOs ---

// LoginOutput returns the generated tokens after a successful login.
// The refresh token is set as an HTTP-only cookie by the handler and never
// appears in a response body.
type LoginOutput struct {
	AccessToken          string
	AccessTokenExpiresAt time.Time
	RefreshToken         string
	User                 *entity.User
}

// RefreshOutput returns a fresh access token minted from a live session.
type RefreshOutput struct {
	AccessToken          string
	AccessTokenExpiresAt time.Time
}

// SessionUsecase defines session lifecycle operations.
type SessionUsecase interface {
	// Login verifies email credentials and opens a session.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Refresh mints a new access token from a live refresh token. The refresh
	// token itself is not rotated.
	Refresh(ctx context.Context, input *RefreshInput) (*RefreshOutput, error)

	// Logout revokes the session behind a refresh token. Unknown tokens are
	// not an error; logout is idempotent.
	Logout(ctx context.Context, input *LogoutInput) error

	// GoogleAuthURL builds the Google consent URL with a one-time CSRF state.
	GoogleAuthURL(ctx context.Context) (string, error)

	// GoogleCallback verifies a Google ID token, finds or creates the matching
	// account and opens a session.
	GoogleCallback(ctx context.Context, input *GoogleCallbackInput) (*LoginOutput, error)
}
