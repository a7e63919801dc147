package dbschema

import (
	"time"

	"koita-chat-api/internal/domain/usersettings"
)

// UserSettings is the database schema for the user_settings table, one row per user.
type UserSettings struct {
	UserID      string    `gorm:"type:varchar(40);primaryKey"`
	Theme       string    `gorm:"type:varchar(20);not null"`
	Language    string    `gorm:"type:varchar(10);not null"`
	AIModel     string    `gorm:"column:ai_model;type:varchar(100);not null"`
	Temperature float64   `gorm:"not null"`
	Voice       string    `gorm:"type:varchar(50);not null"`
	MaxTokens   int       `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}

func NewSchemaUserSettings(d *usersettings.UserSettings) *UserSettings {
	return &UserSettings{
		UserID:      d.UserID,
		Theme:       d.Theme,
		Language:    d.Language,
		AIModel:     d.AIModel,
		Temperature: d.Temperature,
		Voice:       d.Voice,
		MaxTokens:   d.MaxTokens,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (e *UserSettings) EtoD() *usersettings.UserSettings {
	return &usersettings.UserSettings{
		UserID:      e.UserID,
		Theme:       e.Theme,
		Language:    e.Language,
		AIModel:     e.AIModel,
		Temperature: e.Temperature,
		Voice:       e.Voice,
		MaxTokens:   e.MaxTokens,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
