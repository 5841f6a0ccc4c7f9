// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/repository"
	"cookbook/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// actionTokenRepository implements the domain.ActionTokenRepository interface.
type actionTokenRepository struct {
	db *gorm.DB
}

// NewActionTokenRepository is the constructor for actionTokenRepository.
func NewActionTokenRepository(db *gorm.DB) repository.ActionTokenRepository {
	return &actionTokenRepository{db: db}
}

// SaveActionToken upserts the token for its (user, purpose) slot. The
// composite unique index turns the insert into an update when a stale token
// still occupies the slot.
func (repo *actionTokenRepository) SaveActionToken(ctx context.Context, token *entity.ActionToken) error {
	tokenM := fromActionTokenDomain(token)

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "purpose"}},
			DoUpdates: clause.AssignmentColumns([]string{"token_hash", "expires_at", "created_at"}),
		}).
		Create(tokenM).Error

	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("invalid user reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to save action token")
	}

	token.ID = tokenM.ID
	token.CreatedAt = tokenM.CreatedAt

	return nil
}

// FindActionToken retrieves the token currently held for a user and purpose.
func (repo *actionTokenRepository) FindActionToken(ctx context.Context, userID uuid.UUID, purpose entity.TokenPurpose) (*entity.ActionToken, error) {
	var tokenM model.ActionTokenModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND purpose = ?", userID, string(purpose)).
		First(&tokenM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrActionTokenNotFound
		}

		return nil, errors.Wrap(err, "failed to find action token")
	}

	return toActionTokenDomain(&tokenM), nil
}

// DeleteActionToken removes the token for a user and purpose, consuming it.
func (repo *actionTokenRepository) DeleteActionToken(ctx context.Context, userID uuid.UUID, purpose entity.TokenPurpose) error {
	result := repo.db.WithContext(ctx).
		Where("user_id = ? AND purpose = ?", userID, string(purpose)).
		Delete(&model.ActionTokenModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete action token")
	}
	if result.RowsAffected == 0 {
		return repository.ErrActionTokenNotFound
	}

	return nil
}

// DeleteActionTokensByUserID removes every pending token a user holds.
func (repo *actionTokenRepository) DeleteActionTokensByUserID(ctx context.Context, userID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.ActionTokenModel{}).Error

	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete action tokens by user id")
	}

	return nil
}

// DeleteExpiredActionTokens removes all expired tokens from the database.
func (repo *actionTokenRepository) DeleteExpiredActionTokens(ctx context.Context) error {
	err := repo.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now()).
		Delete(&model.ActionTokenModel{}).Error

	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete expired action tokens")
	}

	return nil
}

// --- Mapper Functions ---

// toActionTokenDomain converts a GORM ActionTokenModel to a domain entity.
func toActionTokenDomain(data *model.ActionTokenModel) *entity.ActionToken {
	if data == nil {
		return nil
	}

	return &entity.ActionToken{
		ID:        data.ID,
		UserID:    data.UserID,
		Purpose:   entity.TokenPurpose(data.Purpose),
		TokenHash: data.TokenHash,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}
}

// fromActionTokenDomain converts a domain entity to a GORM ActionTokenModel.
func fromActionTokenDomain(data *entity.ActionToken) *model.ActionTokenModel {
	if data == nil {
		return nil
	}

	return &model.ActionTokenModel{
		ID:        data.ID,
		UserID:    data.UserID,
		Purpose:   string(data.Purpose),
		TokenHash: data.TokenHash,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}
}
