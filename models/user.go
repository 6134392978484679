package models

import "time"

type UserRole string

const (
	RoleUser      UserRole = "USER"
	RoleDeveloper UserRole = "DEVELOPER"
	RoleAdmin     UserRole = "ADMIN"
)

type User struct {
	ID             uint     `gorm:"primaryKey" json:"id"`
	Email          string   `gorm:"size:255;uniqueIndex;not null" json:"email"`
	HashedPassword string   `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialized
	Role           UserRole `gorm:"size:32;not null;default:USER" json:"role"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
