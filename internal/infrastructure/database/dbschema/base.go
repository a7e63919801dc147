package dbschema

import "time"

// BaseModel holds the string primary key and timestamps shared by every table.
type BaseModel struct {
	ID        string    `gorm:"type:varchar(40);primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// Models lists every schema in dependency order, for AutoMigrate in tests and the CLI.
func Models() []any {
	return []any{&User{}, &UserSettings{}, &Conversation{}, &Message{}}
}
