package repositories

import (
	"context"
	"time"

	"github.com/vendora/vendora_backend/internal/core/domain"
)

// UserRepository is the durable account store. All lookups operate on active
// rows only; soft-deleted users are invisible. Uniqueness of username and
// email, and compare-and-swap semantics on refresh token rotation, are
// enforced at the store level so concurrent callers cannot both succeed.
type UserRepository interface {
	// CreateUser inserts a new user, including any initial refresh token
	// carried on the domain object, as one atomic statement. A duplicate
	// username or email surfaces as apperrors.ErrDuplicateUsername or
	// apperrors.ErrDuplicateEmail.
	CreateUser(ctx context.Context, user domain.User) (*domain.User, error)

	// FindUserByID returns the active user with the given ID, or
	// apperrors.ErrNotFound.
	FindUserByID(ctx context.Context, userID int64) (*domain.User, error)

	// FindUserByUsername returns the active user owning the username
	// (case-sensitive), or apperrors.ErrNotFound.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUserByRefreshToken returns the active user whose stored refresh
	// token equals the presented value exactly, or apperrors.ErrNotFound.
	FindUserByRefreshToken(ctx context.Context, refreshToken string) (*domain.User, error)

	// FindUsers returns a page of active users.
	FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error)

	// UsernameExists reports whether an active user other than excludeUserID
	// owns the username. excludeUserID may be nil.
	UsernameExists(ctx context.Context, username string, excludeUserID *int64) (bool, error)

	// EmailExists reports whether an active user other than excludeUserID
	// owns the email. excludeUserID may be nil.
	EmailExists(ctx context.Context, email string, excludeUserID *int64) (bool, error)

	// UpdateUser rewrites the mutable profile fields (username, email,
	// password digest) of an active user.
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdateRefreshToken overwrites the stored refresh token and its expiry
	// unconditionally, invalidating whatever token was there before.
	UpdateRefreshToken(ctx context.Context, userID int64, refreshToken string, expiry time.Time) error

	// RotateRefreshToken replaces oldToken with newToken only if oldToken is
	// still the stored value for the user. It reports whether the swap took
	// place, so two concurrent rotations of the same token cannot both win.
	RotateRefreshToken(ctx context.Context, userID int64, oldToken, newToken string, expiry time.Time) (bool, error)

	// ClearRefreshToken nulls the refresh token and its expiry on whichever
	// active user currently holds the presented token. It reports whether a
	// row was changed.
	ClearRefreshToken(ctx context.Context, refreshToken string) (bool, error)

	// UpdateLastLogin stamps last_login_time with the current time.
	UpdateLastLogin(ctx context.Context, userID int64) error

	// MarkUserDeleted soft-deletes the user. The row persists but becomes
	// invisible to all lookups.
	MarkUserDeleted(ctx context.Context, userID int64) error
}
