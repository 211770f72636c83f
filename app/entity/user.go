package entity

import (
	"database/sql"
	"time"
)

// User is the single persisted record of the subsystem. PasswordHash and
// RefreshTokenHash never leave the service boundary; RefreshTokenHash is
// NULL when the user has no active session.
type User struct {
	ID               string
	Email            string
	Name             string
	PasswordHash     string
	RefreshTokenHash sql.NullString
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PublicUser is the projection of a User that is safe to return to clients.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}
