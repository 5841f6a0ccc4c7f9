// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"cookbook/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for cookbook persistence.
var (
	// ErrCookbookNotFound is returned when a cookbook is not found.
	ErrCookbookNotFound = errors.New("cookbook not found")
	// ErrCookbookAlreadyExists is returned when the owner already has a cookbook.
	ErrCookbookAlreadyExists = errors.New("cookbook already exists for user")
)

// CookbookRepository defines the standard operations for cookbook persistence.
type CookbookRepository interface {
	// CreateCookbook persists a new cookbook for a freshly verified user.
	CreateCookbook(ctx context.Context, cookbook *entity.Cookbook) error

	// FindCookbookByUserID retrieves the cookbook owned by a user.
	FindCookbookByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cookbook, error)

	// DeleteCookbookByUserID removes a user's cookbook and is part of the
	// account deletion cascade.
	DeleteCookbookByUserID(ctx context.Context, userID uuid.UUID) error
}

// ReviewRepository defines the review operations the account subsystem needs.
type ReviewRepository interface {
	// DeleteReviewsByAuthorID removes every review written by a user and
	// returns how many rows were removed.
	DeleteReviewsByAuthorID(ctx context.Context, authorID uuid.UUID) (int64, error)
}
