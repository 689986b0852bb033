package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vendora/vendora_backend/internal/apperrors"
	"github.com/vendora/vendora_backend/internal/core/domain"
	portsrepo "github.com/vendora/vendora_backend/internal/core/ports/repositories"
	"github.com/vendora/vendora_backend/internal/models"
)

// UserRepository is the Postgres-backed account store. Uniqueness of username
// and email is enforced by table constraints; refresh token rotation and
// revocation are guarded compare-and-swap updates, so concurrent callers on
// the same token cannot both succeed.
type UserRepository struct {
	db PGXPool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db PGXPool) *UserRepository {
	return &UserRepository{db: db}
}

var _ portsrepo.UserRepository = (*UserRepository)(nil)

const userColumns = `user_id, user_name, email, password_digest, refresh_token, refresh_token_expiry_time, last_login_time, created_date, modified_date, is_active`

// Helper to convert domain.User to models.User
func toModelUser(d domain.User) models.User {
	return models.User{
		UserID:                 d.UserID,
		Username:               d.Username,
		Email:                  d.Email,
		PasswordDigest:         d.PasswordDigest,
		RefreshToken:           d.RefreshToken,
		RefreshTokenExpiryTime: d.RefreshTokenExpiryTime,
		LastLoginTime:          d.LastLoginTime,
		CreatedDate:            d.CreatedDate,
		ModifiedDate:           d.ModifiedDate,
		IsActive:               d.IsActive,
	}
}

// Helper to convert models.User to domain.User
func toDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:                 m.UserID,
		Username:               m.Username,
		Email:                  m.Email,
		PasswordDigest:         m.PasswordDigest,
		RefreshToken:           m.RefreshToken,
		RefreshTokenExpiryTime: m.RefreshTokenExpiryTime,
		LastLoginTime:          m.LastLoginTime,
		CreatedDate:            m.CreatedDate,
		ModifiedDate:           m.ModifiedDate,
		IsActive:               m.IsActive,
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Username,
		&m.Email,
		&m.PasswordDigest,
		&m.RefreshToken,
		&m.RefreshTokenExpiryTime,
		&m.LastLoginTime,
		&m.CreatedDate,
		&m.ModifiedDate,
		&m.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateUser inserts a new user row, including any initial refresh token on
// the domain object, as a single statement. Unique violations come back as
// the duplicate sentinels.
func (r *UserRepository) CreateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	m := toModelUser(user)
	query := `
		INSERT INTO users (user_name, email, password_digest, refresh_token, refresh_token_expiry_time, created_date, modified_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING user_id;
	`
	err := r.db.QueryRow(ctx, query,
		m.Username,
		m.Email,
		m.PasswordDigest,
		m.RefreshToken,
		m.RefreshTokenExpiryTime,
		m.CreatedDate,
		m.ModifiedDate,
		m.IsActive,
	).Scan(&m.UserID)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	created := toDomainUser(m)
	return &created, nil
}

// FindUserByID returns the active user with the given ID.
func (r *UserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 AND is_active;`
	m, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %d: %w", userID, err)
	}
	user := toDomainUser(*m)
	return &user, nil
}

// FindUserByUsername returns the active user owning the username. The match
// is case-sensitive, exactly as stored.
func (r *UserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_name = $1 AND is_active;`
	m, err := scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	user := toDomainUser(*m)
	return &user, nil
}

// FindUserByRefreshToken returns the active user whose stored refresh token
// equals the presented value exactly. Opaque tokens are never decoded.
func (r *UserRepository) FindUserByRefreshToken(ctx context.Context, refreshToken string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE refresh_token = $1 AND is_active;`
	m, err := scanUser(r.db.QueryRow(ctx, query, refreshToken))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by refresh token: %w", err)
	}
	user := toDomainUser(*m)
	return &user, nil
}

// FindUsers returns a page of active users ordered by creation.
func (r *UserRepository) FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE is_active ORDER BY user_id LIMIT $1 OFFSET $2;`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		m, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, toDomainUser(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", rows.Err())
	}

	return users, nil
}

// UsernameExists reports whether an active user other than excludeUserID owns
// the username.
func (r *UserRepository) UsernameExists(ctx context.Context, username string, excludeUserID *int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE user_name = $1 AND is_active AND ($2::bigint IS NULL OR user_id <> $2)
		);
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, username, excludeUserID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check username existence: %w", err)
	}
	return exists, nil
}

// EmailExists reports whether an active user other than excludeUserID owns
// the email.
func (r *UserRepository) EmailExists(ctx context.Context, email string, excludeUserID *int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE email = $1 AND is_active AND ($2::bigint IS NULL OR user_id <> $2)
		);
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, email, excludeUserID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// UpdateUser rewrites the mutable profile fields of an active user. The
// previous password digest, if changed, is discarded in place.
func (r *UserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := toModelUser(user)
	query := `
		UPDATE users
		SET user_name = $1, email = $2, password_digest = $3, modified_date = $4
		WHERE user_id = $5 AND is_active;
	`
	cmdTag, err := r.db.Exec(ctx, query, m.Username, m.Email, m.PasswordDigest, m.ModifiedDate, m.UserID)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to update user %d: %w", m.UserID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateRefreshToken overwrites the stored refresh token and expiry,
// invalidating the previous token.
func (r *UserRepository) UpdateRefreshToken(ctx context.Context, userID int64, refreshToken string, expiry time.Time) error {
	query := `
		UPDATE users
		SET refresh_token = $1, refresh_token_expiry_time = $2, modified_date = now()
		WHERE user_id = $3 AND is_active;
	`
	cmdTag, err := r.db.Exec(ctx, query, refreshToken, expiry, userID)
	if err != nil {
		return fmt.Errorf("failed to update refresh token for user %d: %w", userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// RotateRefreshToken swaps oldToken for newToken only if oldToken is still
// the stored value. The guard makes rotation single-winner under concurrency.
func (r *UserRepository) RotateRefreshToken(ctx context.Context, userID int64, oldToken, newToken string, expiry time.Time) (bool, error) {
	query := `
		UPDATE users
		SET refresh_token = $1, refresh_token_expiry_time = $2, modified_date = now()
		WHERE user_id = $3 AND refresh_token = $4 AND is_active;
	`
	cmdTag, err := r.db.Exec(ctx, query, newToken, expiry, userID, oldToken)
	if err != nil {
		return false, fmt.Errorf("failed to rotate refresh token for user %d: %w", userID, err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// ClearRefreshToken nulls the token pair on the active user holding the
// presented token, reporting whether a row changed.
func (r *UserRepository) ClearRefreshToken(ctx context.Context, refreshToken string) (bool, error) {
	query := `
		UPDATE users
		SET refresh_token = NULL, refresh_token_expiry_time = NULL, modified_date = now()
		WHERE refresh_token = $1 AND is_active;
	`
	cmdTag, err := r.db.Exec(ctx, query, refreshToken)
	if err != nil {
		return false, fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// UpdateLastLogin stamps last_login_time with the current time.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	query := `UPDATE users SET last_login_time = now() WHERE user_id = $1 AND is_active;`
	cmdTag, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to update last login for user %d: %w", userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkUserDeleted soft-deletes the user. The row persists for audit but no
// lookup returns it afterwards.
func (r *UserRepository) MarkUserDeleted(ctx context.Context, userID int64) error {
	query := `UPDATE users SET is_active = FALSE, modified_date = now() WHERE user_id = $1 AND is_active;`
	cmdTag, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to mark user %d as deleted: %w", userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
