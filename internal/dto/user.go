package dto

import (
	"time"

	"github.com/Ryan-Musomba/givehub/internal/core/domain"
)

// CreateUserRequest defines the data needed to register a new user.
type CreateUserRequest struct {
	Email       string          `json:"email" binding:"required,email"`
	Password    string          `json:"password" binding:"required,min=8"`
	DisplayName string          `json:"displayName"`
	Role        domain.UserRole `json:"role" binding:"omitempty,oneof=user organization"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	DisplayName *string `json:"displayName"`
	PhotoURL    *string `json:"photoUrl"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID      string          `json:"userID"`
	Email       string          `json:"email"`
	DisplayName string          `json:"displayName"`
	Role        domain.UserRole `json:"role"`
	PhotoURL    string          `json:"photoUrl,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users     []UserResponse `json:"users"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:      user.UserID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		PhotoURL:    user.PhotoURL,
		CreatedAt:   user.CreatedAt,
	}
}

// ToListUsersResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUsersResponse(users []domain.User, nextToken *string) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = ToUserResponse(&user)
	}
	return ListUsersResponse{
		Users:     userResponses,
		NextToken: nextToken,
	}
}
