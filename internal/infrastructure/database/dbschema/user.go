package dbschema

import (
	"gorm.io/datatypes"

	"koita-chat-api/internal/domain/user"
)

type User struct {
	BaseModel
	Email        string                               `gorm:"type:varchar(320);not null;uniqueIndex:ux_users_email"`
	PasswordHash string                               `gorm:"type:varchar(255);not null"`
	FirstName    string                               `gorm:"type:varchar(100);not null;default:''"`
	LastName     string                               `gorm:"type:varchar(100);not null;default:''"`
	Avatar       *string                              `gorm:"type:varchar(512)"`
	Preferences  datatypes.JSONType[user.Preferences] `gorm:"not null"`
}

func NewSchemaUser(u *user.User) *User {
	if u == nil {
		return nil
	}
	return &User{
		BaseModel: BaseModel{
			ID:        u.ID,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		},
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Avatar:       u.Avatar,
		Preferences:  datatypes.NewJSONType(u.Preferences),
	}
}

func (u *User) EtoD() *user.User {
	if u == nil {
		return nil
	}
	return &user.User{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Avatar:       u.Avatar,
		Preferences:  u.Preferences.Data(),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
