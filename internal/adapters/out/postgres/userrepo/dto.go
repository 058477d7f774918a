// Package userrepo backs the user directory with a users table. The
// directory is read-only from this service's point of view; user accounts
// are provisioned elsewhere.
package userrepo

import (
	"time"

	"github.com/google/uuid"
)

// UserDTO represents the database structure for reading directory users.
type UserDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role      string    `gorm:"index"`
	IsAdmin   bool
	CreatedAt time.Time
}

// TableName specifies the database table name for user entities.
func (UserDTO) TableName() string {
	return "users"
}
