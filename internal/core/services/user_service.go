package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vendora/vendora_backend/internal/apperrors"
	"github.com/vendora/vendora_backend/internal/core/domain"
	portsrepo "github.com/vendora/vendora_backend/internal/core/ports/repositories"
	portssvc "github.com/vendora/vendora_backend/internal/core/ports/services"
	"github.com/vendora/vendora_backend/internal/dto"
)

// userService implements UserSvcFacade for profile management.
type userService struct {
	userRepo portsrepo.UserRepository
	hasher   portssvc.PasswordHasherSvc
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo portsrepo.UserRepository, hasher portssvc.PasswordHasherSvc) portssvc.UserSvcFacade {
	return &userService{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// GetUserByID retrieves an active user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	return user, nil
}

// ListUsers retrieves a paginated list of active users.
func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUser applies the non-nil fields of req to the user. Username and
// email changes are re-checked for uniqueness excluding the user itself; a
// new password replaces the stored digest in place.
func (s *userService) UpdateUser(ctx context.Context, userID int64, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d for update: %w", userID, err)
	}

	if req.Username != nil && *req.Username != user.Username {
		taken, err := s.userRepo.UsernameExists(ctx, *req.Username, &userID)
		if err != nil {
			return nil, fmt.Errorf("failed to check username availability: %w", err)
		}
		if taken {
			return nil, apperrors.ErrDuplicateUsername
		}
		user.Username = *req.Username
	}

	if req.Email != nil && *req.Email != user.Email {
		taken, err := s.userRepo.EmailExists(ctx, *req.Email, &userID)
		if err != nil {
			return nil, fmt.Errorf("failed to check email availability: %w", err)
		}
		if taken {
			return nil, apperrors.ErrDuplicateEmail
		}
		user.Email = *req.Email
	}

	if req.Password != nil {
		digest, err := s.hasher.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash new password: %w", err)
		}
		user.PasswordDigest = digest
	}

	user.ModifiedDate = time.Now()
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", userID, err)
	}

	return user, nil
}

// DeleteUser soft-deletes the user; the row persists but becomes invisible.
func (s *userService) DeleteUser(ctx context.Context, userID int64) error {
	if err := s.userRepo.MarkUserDeleted(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user %d: %w", userID, err)
	}
	return nil
}
