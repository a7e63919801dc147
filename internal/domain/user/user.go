package user

import (
	"context"
	"time"
)

const (
	DefaultTheme    = "light"
	DefaultLanguage = "fr"
)

// Preferences is the lightweight display preference blob stored on the user row.
type Preferences struct {
	Theme    string `json:"theme"`
	Language string `json:"language"`
}

// DefaultPreferences returns the preferences assigned at registration.
func DefaultPreferences() Preferences {
	return Preferences{Theme: DefaultTheme, Language: DefaultLanguage}
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Avatar       *string
	Preferences  Preferences
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins first and last name the way greetings display them.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// ProfileUpdate carries optional profile fields; nil fields are left untouched.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Avatar    *string
}

// Repository persists users. Finders return (nil, nil) when nothing matches.
type Repository interface {
	Create(ctx context.Context, u *User) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*User, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}
