// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a unique "person" or "account".
// It contains only the most fundamental identity information shared across all roles.
type User struct {
	ID          uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Email       string    // The user's primary contact email, used as the login identifier.
	Username    string    // The unique handle shown next to recipes and reviews.
	DisplayName string    // The user's display name or real name.
	Verified    bool      // Whether the user has confirmed ownership of the email address.
	CreatedAt   time.Time // Timestamp of when this user account was created.
	UpdatedAt   time.Time // Timestamp of the last modification to this user's data.
}
