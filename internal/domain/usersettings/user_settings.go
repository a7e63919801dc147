package usersettings

import (
	"context"
	"time"
)

const (
	DefaultTheme       = "light"
	DefaultLanguage    = "fr"
	DefaultAIModel     = "mistral-medium"
	DefaultTemperature = 0.7
	DefaultVoice       = "fr-FR"
	DefaultMaxTokens   = 2000
)

type UserSettings struct {
	UserID      string    `json:"userId"`
	Theme       string    `json:"theme"`
	Language    string    `json:"language"`
	AIModel     string    `json:"aiModel"`
	Temperature float64   `json:"temperature"`
	Voice       string    `json:"voice"`
	MaxTokens   int       `json:"maxTokens"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Defaults returns the settings created alongside a new user.
func Defaults(userID string) *UserSettings {
	return &UserSettings{
		UserID:      userID,
		Theme:       DefaultTheme,
		Language:    DefaultLanguage,
		AIModel:     DefaultAIModel,
		Temperature: DefaultTemperature,
		Voice:       DefaultVoice,
		MaxTokens:   DefaultMaxTokens,
	}
}

// ModelOptions are the generation parameters a user's settings resolve to.
type ModelOptions struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// ModelOptions resolves generation parameters, falling back to defaults for unset values.
func (s *UserSettings) ModelOptions() ModelOptions {
	opts := ModelOptions{
		Model:       DefaultAIModel,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}
	if s == nil {
		return opts
	}
	if s.AIModel != "" {
		opts.Model = s.AIModel
	}
	if s.Temperature > 0 {
		opts.Temperature = s.Temperature
	}
	if s.MaxTokens > 0 {
		opts.MaxTokens = s.MaxTokens
	}
	return opts
}

// Patch is a partial settings update; nil fields are left untouched.
type Patch struct {
	Theme       *string  `json:"theme,omitempty" validate:"omitempty,oneof=light dark system"`
	Language    *string  `json:"language,omitempty" validate:"omitempty,min=2,max=10"`
	AIModel     *string  `json:"aiModel,omitempty" validate:"omitempty,min=1,max=100"`
	Temperature *float64 `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=1.5"`
	Voice       *string  `json:"voice,omitempty" validate:"omitempty,min=2,max=50"`
	MaxTokens   *int     `json:"maxTokens,omitempty" validate:"omitempty,gte=1,lte=32000"`
}

// Apply merges the patch into s.
func (p Patch) Apply(s *UserSettings) {
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.Language != nil {
		s.Language = *p.Language
	}
	if p.AIModel != nil {
		s.AIModel = *p.AIModel
	}
	if p.Temperature != nil {
		s.Temperature = *p.Temperature
	}
	if p.Voice != nil {
		s.Voice = *p.Voice
	}
	if p.MaxTokens != nil {
		s.MaxTokens = *p.MaxTokens
	}
}

// Repository persists user settings. FindByUserID returns (nil, nil) when absent.
type Repository interface {
	FindByUserID(ctx context.Context, userID string) (*UserSettings, error)
	Upsert(ctx context.Context, settings *UserSettings) (*UserSettings, error)
}
