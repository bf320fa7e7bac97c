package models

import (
	"github.com/google/uuid"
	"time"
)

// Role is the application role assigned to a user.
type Role string

const (
	RoleDev   Role = "DEV"
	RolePM    Role = "PM"
	RoleGM    Role = "GM"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDev, RolePM, RoleGM, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Role      Role      `json:"role" gorm:"type:varchar(16);not null;default:'DEV'"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
