// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"cookbook/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrActionTokenNotFound is returned when no token exists for a user and purpose.
var ErrActionTokenNotFound = errors.New("action token not found")

// ActionTokenRepository persists one-time account action tokens. The table
// carries a unique constraint on (user_id, purpose), so Save replaces any
// previous token for the same slot.
type ActionTokenRepository interface {
	// SaveActionToken upserts the token for its (user, purpose) slot.
	SaveActionToken(ctx context.Context, token *entity.ActionToken) error

	// FindActionToken retrieves the token currently held for a user and purpose.
	FindActionToken(ctx context.Context, userID uuid.UUID, purpose entity.TokenPurpose) (*entity.ActionToken, error)

	// DeleteActionToken removes the token for a user and purpose, consuming it.
	DeleteActionToken(ctx context.Context, userID uuid.UUID, purpose entity.TokenPurpose) error

	// DeleteActionTokensByUserID removes every pending token a user holds.
	DeleteActionTokensByUserID(ctx context.Context, userID uuid.UUID) error

	// DeleteExpiredActionTokens removes all expired tokens from the database.
	// This should be called periodically for cleanup.
	DeleteExpiredActionTokens(ctx context.Context) error
}
