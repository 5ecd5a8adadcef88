package models

import (
	"database/sql"
	"time"
)

// ProviderCredentials is the provider name used for email/password accounts.
const ProviderCredentials = "credentials"

// Account links a user to an identity provider.
type Account struct {
	ID                string         `db:"id"`
	UserID            string         `db:"user_id"`
	Provider          string         `db:"provider"`
	Type              string         `db:"account_type"`
	ProviderAccountID string         `db:"provider_account_id"`
	PasswordHash      sql.NullString `db:"password_hash"`
	CreatedAt         time.Time      `db:"created_at"`
}

// VerificationToken is a single-use token keyed by (Identifier, Token).
type VerificationToken struct {
	Identifier string    `db:"identifier"`
	Token      string    `db:"token"`
	Expires    time.Time `db:"expires"`
}
