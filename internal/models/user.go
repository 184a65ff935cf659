package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the authorization level of a platform user.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleAnalyst Role = "analyst"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleAnalyst
}

// User represents an account able to authenticate against the API.
// Users are only ever created; there is no update or delete surface.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email" validate:"required,email"`
	PasswordHash string    `gorm:"not null" json:"-" swaggerignore:"true"`
	Role         Role      `gorm:"type:varchar(16);not null;default:'analyst'" json:"role" validate:"required,oneof=admin analyst"`
	CreatedAt    time.Time `json:"created_at"`
}
