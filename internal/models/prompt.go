package models

import (
	"time"

	"github.com/google/uuid"
)

// Prompt is a user-owned prompt record. UserID never changes after
// creation; deletes are hard deletes so a removed user leaves nothing
// behind.
type Prompt struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	PromptText  string    `gorm:"type:text;not null" json:"prompt_text"`
	Category    string    `gorm:"size:50;index" json:"category"`
	IsFavorited bool      `gorm:"default:false" json:"is_favorited"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
