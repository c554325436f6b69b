package repositories

import (
	"context"
	"time"

	"github.com/Ryan-Musomba/givehub/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a user by their ID. Soft-deleted users are excluded.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email. Soft-deleted users are excluded.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUsers retrieves a paginated list of users using token-based pagination.
	FindUsers(ctx context.Context, limit int, nextToken *string) ([]domain.User, *string, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	SaveUser(ctx context.Context, user *domain.User) error

	// UpdateUser applies partial updates to the columns named in params.
	UpdateUser(ctx context.Context, userID string, params map[string]interface{}, updatedByUserID string) (*domain.User, error)

	// UpdateRefreshToken stores the hashed refresh token and its expiry. Passing
	// an empty hash clears the stored token (logout).
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime *time.Time) error

	// MarkUserDeleted soft-deletes the user.
	MarkUserDeleted(ctx context.Context, userID string, deletedByUserID string, deletedAt time.Time) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}

// UserRepositoryWithTx extends UserRepositoryFacade with transaction capabilities
type UserRepositoryWithTx interface {
	UserRepositoryFacade
	TransactionManager
}
