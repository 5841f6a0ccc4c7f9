package model

import (
	"time"

	"github.com/google/uuid"
)

// CookbookModel mirrors the 'cookbooks' table. Each verified user owns exactly one.
type CookbookModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;unique;not null"`
	Title     string    `gorm:"type:varchar(100);not null"`
	Public    bool      `gorm:"not null;default:false"`
	ShareSlug string    `gorm:"type:varchar(64);unique;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CookbookModel) TableName() string {
	return "cookbooks"
}

// ReviewModel mirrors the 'reviews' table.
type ReviewModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;index"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Rating    int       `gorm:"not null"`
	Body      string    `gorm:"type:text"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}
