package models

import (
	"database/sql"
	"time"
)

// User represents a platform account as stored.
// Includes the credential and refresh token fields the domain model omits.
type User struct {
	UserID       string `db:"user_id"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"` // Empty for federated-only accounts
	DisplayName  string `db:"display_name"`
	Role         string `db:"role"`
	PhotoURL     string `db:"photo_url"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
