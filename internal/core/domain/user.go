package domain

import "time"

// UserRole determines which dashboard a user sees and which operations they may perform.
// Roles are fixed at account creation; there is no promotion workflow.
type UserRole string

const (
	RoleDonor        UserRole = "user"
	RoleOrganization UserRole = "organization"
	RoleAdmin        UserRole = "admin"
)

// User represents a platform account in the domain.
type User struct {
	UserID      string   `json:"userID"` // Primary key (UUID)
	Email       string   `json:"email"`
	DisplayName string   `json:"displayName"`
	Role        UserRole `json:"role"`
	PhotoURL    string   `json:"photoURL"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Soft delete

	// Credential fields, never serialized.
	PasswordHash           string     `json:"-"` // Empty for federated-only accounts
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// GoogleUserInfo holds the identity claims extracted from a validated Google ID token.
type GoogleUserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
