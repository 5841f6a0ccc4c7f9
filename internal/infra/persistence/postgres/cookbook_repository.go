// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/repository"
	"cookbook/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// cookbookRepository implements the domain.CookbookRepository interface.
type cookbookRepository struct {
	db *gorm.DB
}

// NewCookbookRepository is the constructor for cookbookRepository.
func NewCookbookRepository(db *gorm.DB) repository.CookbookRepository {
	return &cookbookRepository{db: db}
}

// CreateCookbook persists a new cookbook for a freshly verified user.
func (repo *cookbookRepository) CreateCookbook(ctx context.Context, cookbook *entity.Cookbook) error {
	cookbookM := fromCookbookDomain(cookbook)

	if err := repo.db.WithContext(ctx).Create(cookbookM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrCookbookAlreadyExists
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("invalid user reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create cookbook")
	}

	cookbook.ID = cookbookM.ID
	cookbook.CreatedAt = cookbookM.CreatedAt
	cookbook.UpdatedAt = cookbookM.UpdatedAt

	return nil
}

// FindCookbookByUserID retrieves the cookbook owned by a user.
func (repo *cookbookRepository) FindCookbookByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cookbook, error) {
	var cookbookM model.CookbookModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&cookbookM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCookbookNotFound
		}

		return nil, errors.Wrap(err, "failed to find cookbook by user id")
	}

	return toCookbookDomain(&cookbookM), nil
}

// DeleteCookbookByUserID removes a user's cookbook as part of the account deletion cascade.
func (repo *cookbookRepository) DeleteCookbookByUserID(ctx context.Context, userID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CookbookModel{}).Error

	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete cookbook")
	}

	return nil
}

// --- Mapper Functions ---

// toCookbookDomain converts a GORM CookbookModel to a domain entity.
func toCookbookDomain(data *model.CookbookModel) *entity.Cookbook {
	if data == nil {
		return nil
	}

	return &entity.Cookbook{
		ID:        data.ID,
		UserID:    data.UserID,
		Title:     data.Title,
		Public:    data.Public,
		ShareSlug: data.ShareSlug,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromCookbookDomain converts a domain entity to a GORM CookbookModel.
func fromCookbookDomain(data *entity.Cookbook) *model.CookbookModel {
	if data == nil {
		return nil
	}

	return &model.CookbookModel{
		ID:        data.ID,
		UserID:    data.UserID,
		Title:     data.Title,
		Public:    data.Public,
		ShareSlug: data.ShareSlug,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
