package models

import (
	"time"

	"github.com/google/uuid"
)

// UserSettings holds per-user configuration, currently just the encoded
// OpenAI API key. One row per user, created together with the User row.
// The key column stores the codec output, never the plaintext.
type UserSettings struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	OpenAIAPIKey *string   `gorm:"type:text" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
