package models

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors an identity managed by the external auth provider. Exactly
// one row exists per external id; rows are created and removed only by
// identity webhook events, never by API callers.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ExternalID string    `gorm:"size:255;not null;uniqueIndex" json:"-"`
	Email      string    `gorm:"size:255;not null" json:"email"`
	Name       string    `gorm:"size:255" json:"name"`
	ImageURL   *string   `gorm:"type:text" json:"image_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
