package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ChatRecord is one completed exchange with the model provider. Rows are
// written once and never updated; history is read back in creation order.
type ChatRecord struct {
	ID          uuid.UUID      `json:"-" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID      `json:"-" gorm:"type:uuid;not null;index"`
	UserMessage string         `json:"user_message" gorm:"not null"`
	BotResponse string         `json:"bot_response" gorm:"not null"`
	Metadata    datatypes.JSON `json:"-"`
	CreatedAt   time.Time      `json:"timestamp"`
}
