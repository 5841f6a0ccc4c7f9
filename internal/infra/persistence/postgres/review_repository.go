// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/repository"
	"cookbook/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// reviewRepository implements the domain.ReviewRepository interface.
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

// DeleteReviewsByAuthorID removes every review written by a user.
func (repo *reviewRepository) DeleteReviewsByAuthorID(ctx context.Context, authorID uuid.UUID) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Delete(&model.ReviewModel{})

	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete reviews by author")
	}

	return result.RowsAffected, nil
}
