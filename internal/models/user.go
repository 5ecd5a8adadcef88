package models

import (
	"database/sql"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID           string         `db:"id" json:"id"`
	Name         sql.NullString `db:"name" json:"-"`
	Email        string         `db:"email" json:"email"`
	PasswordHash sql.NullString `db:"password_hash" json:"-"`
	Role         Role           `db:"role" json:"role"`
	APIToken     sql.NullString `db:"api_token" json:"-"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// DisplayName falls back to the email when no name was given.
func (u *User) DisplayName() string {
	if u.Name.Valid && u.Name.String != "" {
		return u.Name.String
	}
	return u.Email
}

// PublicUser is the sanitized shape returned to clients.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.DisplayName(),
		Email: u.Email,
		Role:  u.Role,
	}
}
