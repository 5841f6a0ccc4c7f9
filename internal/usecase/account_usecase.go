// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"cookbook/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	// bcrypt only reads the first 72 bytes, so longer passwords are rejected
	// up front instead of failing inside the hasher.
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// ConfirmAccountInput carries the one-time token mailed during registration.
type ConfirmAccountInput struct {
	UserID uuid.UUID
	Token  string
}

// ResendVerificationInput asks for a fresh verification mail.
type ResendVerificationInput struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPasswordInput starts the password reset workflow.
type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordInput carries the mailed reset token and the replacement password.
type ResetPasswordInput struct {
	UserID      uuid.UUID
	Token       string
	NewPassword string
}

// DeleteAccountInput carries whichever deletion credential the caller chose.
// Exactly one of Password and DeleteToken may be set; an authenticated actor
// with neither triggers the confirmation mail instead.
type DeleteAccountInput struct {
	TargetUserID uuid.UUID
	Password     string
	DeleteToken  string
	ActorUserID  uuid.UUID // uuid.Nil when the request carried no valid access token.

	// ActorAuthMethod is the authentication method of the presented access
	// token. A "google" session stands in for the password when requesting
	// the confirmation mail.
	ActorAuthMethod string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's basic information.
type RegisterOutput struct {
	User *entity.User
}

// ConfirmAccountOutput reports the verification result.
type ConfirmAccountOutput struct {
	User *entity.User
}

// DeleteAccountOutput reports which leg of the two-step protocol ran.
type DeleteAccountOutput struct {
	Deleted          bool // The account and its satellite data are gone.
	ConfirmationSent bool // A deletion confirmation mail was issued instead.
	ReviewsRemoved   int64
}

// AccountUsecase defines the account lifecycle operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	// Register creates an unverified account and mails a verification link.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// ConfirmAccount consumes a verification token, marks the account verified
	// and provisions the user's cookbook.
	ConfirmAccount(ctx context.Context, input *ConfirmAccountInput) (*ConfirmAccountOutput, error)

	// ResendVerification issues a fresh verification mail if the account is
	// still unverified and holds no live token.
	ResendVerification(ctx context.Context, input *ResendVerificationInput) error

	// ForgotPassword issues a reset mail. The outcome is indistinguishable
	// whether or not the address is registered.
	ForgotPassword(ctx context.Context, input *ForgotPasswordInput) error

	// ResetPassword consumes a reset token, replaces the password and revokes
	// every live session.
	ResetPassword(ctx context.Context, input *ResetPasswordInput) error

	// DeleteAccount runs the two-step deletion protocol.
	DeleteAccount(ctx context.Context, input *DeleteAccountInput) (*DeleteAccountOutput, error)
}
