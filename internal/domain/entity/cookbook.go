package entity

import (
	"time"

	"github.com/google/uuid"
)

// Cookbook is a user's personal recipe collection, provisioned automatically
// once the account's email address is verified. Exactly one cookbook exists
// per verified user.
type Cookbook struct {
	ID        uuid.UUID // The unique ID for this cookbook.
	UserID    uuid.UUID // The owning user.
	Title     string    // Display title, defaulted from the owner's username.
	Public    bool      // Whether the cookbook is visible without authentication.
	ShareSlug string    // URL-safe slug used to build the public share link.
	CreatedAt time.Time // Timestamp of provisioning.
	UpdatedAt time.Time // Timestamp of the last modification.
}

// Review is a rating and comment a user left on someone else's recipe.
// Reviews are removed together with their author's account.
type Review struct {
	ID        uuid.UUID // The unique ID for this review.
	AuthorID  uuid.UUID // The user who wrote the review.
	RecipeID  uuid.UUID // The recipe being reviewed.
	Rating    int       // 1 to 5 stars.
	Body      string    // Free-form comment text.
	CreatedAt time.Time // Timestamp of submission.
}
