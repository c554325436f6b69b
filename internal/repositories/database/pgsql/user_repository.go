package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Ryan-Musomba/givehub/internal/apperrors"
	"github.com/Ryan-Musomba/givehub/internal/core/domain"
	portsrepo "github.com/Ryan-Musomba/givehub/internal/core/ports/repositories"
	"github.com/Ryan-Musomba/givehub/internal/models"
	"github.com/Ryan-Musomba/givehub/internal/utils/mapping"
	"github.com/Ryan-Musomba/givehub/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, email, password_hash, display_name, role, photo_url,
		created_at, created_by, last_updated_at, last_updated_by, deleted_at,
		refresh_token_hash, refresh_token_expiry_time`

// userUpdatableColumns whitelists the columns UpdateUser may touch.
var userUpdatableColumns = map[string]struct{}{
	"display_name": {},
	"photo_url":    {},
}

type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for user data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUserRow(row pgx.Row) (models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Email,
		&m.PasswordHash,
		&m.DisplayName,
		&m.Role,
		&m.PhotoURL,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
		&m.RefreshTokenHash,
		&m.RefreshTokenExpiryTime,
	)
	return m, err
}

// SaveUser persists a new user.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user *domain.User) error {
	m := mapping.ToModelUser(*user)
	query := `
		INSERT INTO users (user_id, email, password_hash, display_name, role, photo_url,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.Email,
		m.PasswordHash,
		m.DisplayName,
		m.Role,
		m.PhotoURL,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// FindUserByID retrieves a user by ID, excluding soft-deleted rows.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 AND deleted_at IS NULL;`

	m, err := retryRead(ctx, func() (models.User, error) {
		return scanUserRow(r.Pool.QueryRow(ctx, query, userID))
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}

	d := mapping.ToDomainUser(m)
	return &d, nil
}

// FindUserByEmail retrieves a user by email, excluding soft-deleted rows.
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND deleted_at IS NULL;`

	m, err := retryRead(ctx, func() (models.User, error) {
		return scanUserRow(r.Pool.QueryRow(ctx, query, email))
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	d := mapping.ToDomainUser(m)
	return &d, nil
}

// FindUsers retrieves a page of users, newest first, using cursor pagination.
func (r *PgxUserRepository) FindUsers(ctx context.Context, limit int, nextToken *string) ([]domain.User, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	var args []interface{}
	query := `SELECT ` + userColumns + ` FROM users WHERE deleted_at IS NULL`

	if nextToken != nil && *nextToken != "" {
		cursorTime, cursorID, err := pagination.DecodeCursorToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, cursorTime)
		tPos := "$" + strconv.Itoa(len(args))
		args = append(args, cursorID)
		idPos := "$" + strconv.Itoa(len(args))
		query += " AND (created_at, user_id) < (" + tPos + ", " + idPos + ")"
	}

	args = append(args, limit+1)
	query += " ORDER BY created_at DESC, user_id DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	modelUsers, err := retryRead(ctx, func() ([]models.User, error) {
		rows, err := r.Pool.Query(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var out []models.User
		for rows.Next() {
			m, err := scanUserRow(rows)
			if err != nil {
				return nil, err
			}
			out = append(out, m)
		}
		return out, rows.Err()
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query users: %w", err)
	}

	var newNextToken *string
	if len(modelUsers) > limit {
		modelUsers = modelUsers[:limit]
		last := modelUsers[limit-1]
		token := pagination.EncodeCursorToken(last.CreatedAt, last.UserID)
		newNextToken = &token
	}

	return mapping.ToDomainUserSlice(modelUsers), newNextToken, nil
}

// UpdateUser applies the whitelisted column updates in params and returns the
// fresh row.
func (r *PgxUserRepository) UpdateUser(ctx context.Context, userID string, params map[string]interface{}, updatedByUserID string) (*domain.User, error) {
	setClauses := make([]string, 0, len(params)+2)
	args := make([]interface{}, 0, len(params)+3)

	for col, val := range params {
		if _, ok := userUpdatableColumns[col]; !ok {
			return nil, fmt.Errorf("%w: column %q is not updatable", apperrors.ErrValidation, col)
		}
		args = append(args, val)
		setClauses = append(setClauses, col+" = $"+strconv.Itoa(len(args)))
	}

	args = append(args, time.Now().UTC())
	setClauses = append(setClauses, "last_updated_at = $"+strconv.Itoa(len(args)))
	args = append(args, updatedByUserID)
	setClauses = append(setClauses, "last_updated_by = $"+strconv.Itoa(len(args)))

	args = append(args, userID)
	query := `
		UPDATE users
		SET ` + strings.Join(setClauses, ", ") + `
		WHERE user_id = $` + strconv.Itoa(len(args)) + ` AND deleted_at IS NULL
		RETURNING ` + userColumns + `;
	`

	m, err := scanUserRow(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update user %s: %w", userID, err)
	}

	d := mapping.ToDomainUser(m)
	return &d, nil
}

// UpdateRefreshToken stores the hashed refresh token and its expiry. An empty
// hash clears both columns.
func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime *time.Time) error {
	query := `
		UPDATE users
		SET refresh_token_hash = NULLIF($1, ''), refresh_token_expiry_time = $2, last_updated_at = $3, last_updated_by = $4
		WHERE user_id = $5 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, refreshTokenHash, expiryTime, time.Now().UTC(), userID, userID)
	if err != nil {
		return fmt.Errorf("failed to update refresh token for user %s: %w", userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

// MarkUserDeleted soft-deletes the user.
func (r *PgxUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedByUserID string, deletedAt time.Time) error {
	query := `
		UPDATE users
		SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
		WHERE user_id = $3 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, deletedAt, deletedByUserID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark user as deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}
