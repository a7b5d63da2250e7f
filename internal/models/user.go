package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID           uuid.UUID `gorm:"primaryKey"                  json:"id"`
	Name         string    `gorm:"not null"                    json:"name"`
	Email        string    `gorm:"uniqueIndex;not null"        json:"email"`
	PasswordHash string    `gorm:"not null"                    json:"-"`
	Role         string    `gorm:"not null;default:user"       json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

type RefreshToken struct {
	ID        uuid.UUID `gorm:"primaryKey"            json:"id"`
	UserID    uuid.UUID `gorm:"index;not null"        json:"user_id"`
	Role      string    `gorm:"not null"              json:"role"`
	Token     string    `gorm:"uniqueIndex;not null"  json:"-"`
	JTI       string    `gorm:"uniqueIndex;not null"  json:"jti"`
	ExpiresAt int64     `gorm:"not null"              json:"expires_at"`
	Revoked   bool      `gorm:"not null;default:false" json:"revoked"`
}
