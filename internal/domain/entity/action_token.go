package entity

import (
	"time"

	"github.com/google/uuid"
)

// TokenPurpose identifies the account workflow a one-time action token authorizes.
type TokenPurpose string

// Supported action token purposes.
const (
	PurposeVerifyEmail   TokenPurpose = "verify_email"
	PurposeResetPassword TokenPurpose = "reset_password"
	PurposeDeleteAccount TokenPurpose = "delete_account"
)

// ActionToken is a single-use, time-boxed credential that authorizes exactly one
// sensitive account operation. At most one live token exists per user and purpose.
// Only a bcrypt hash of the raw token is stored; the plaintext leaves the system
// exactly once, inside the email sent to the user.
type ActionToken struct {
	ID        uuid.UUID    // The unique ID for this token record.
	UserID    uuid.UUID    // The user this token was issued to.
	Purpose   TokenPurpose // The single operation this token may authorize.
	TokenHash string       // bcrypt hash of the raw token for constant-time comparison.
	ExpiresAt time.Time    // After this instant the token is dead even if never used.
	CreatedAt time.Time    // Timestamp of issuance.
}

// Expired reports whether the token is past its validity window.
func (t *ActionToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
