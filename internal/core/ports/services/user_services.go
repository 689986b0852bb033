package services

import (
	"context"

	"github.com/vendora/vendora_backend/internal/core/domain"
	"github.com/vendora/vendora_backend/internal/dto"
)

// UserSvcFacade provides user profile management. Authentication itself lives
// on AuthSvcFacade.
type UserSvcFacade interface {
	// GetUserByID retrieves an active user by ID.
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)

	// ListUsers retrieves a paginated list of active users.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)

	// UpdateUser applies the non-nil fields of req to the user. Username and
	// email uniqueness is re-checked excluding the user itself; a new
	// password is rehashed in place.
	UpdateUser(ctx context.Context, userID int64, req dto.UpdateUserRequest) (*domain.User, error)

	// DeleteUser soft-deletes the user.
	DeleteUser(ctx context.Context, userID int64) error
}
