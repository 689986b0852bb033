package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vendora/vendora_backend/internal/apperrors"
	"github.com/vendora/vendora_backend/internal/core/domain"
	portsrepo "github.com/vendora/vendora_backend/internal/core/ports/repositories"
	portssvc "github.com/vendora/vendora_backend/internal/core/ports/services"
	"github.com/vendora/vendora_backend/internal/dto"
)

// Response messages for expected auth outcomes. The login and refresh
// failures are deliberately generic: they never reveal which check failed.
const (
	msgRegistrationSuccessful = "Registration successful"
	msgLoginSuccessful        = "Login successful"
	msgTokenRefreshed         = "Token refreshed successfully"
	msgTokenRevoked           = "Token revoked successfully"
	msgUsernameExists         = "Username already exists"
	msgEmailExists            = "Email already exists"
	msgInvalidCredentials     = "Invalid username or password"
	msgInvalidRefreshToken    = "Invalid or expired refresh token"
	msgInvalidToken           = "Invalid token"
)

// authService orchestrates registration, login, token refresh and revocation
// over the password hasher, the token service and the account store. It holds
// no mutable state between calls; all durable state lives in the repository.
type authService struct {
	userRepo portsrepo.UserRepository
	tokenSvc portssvc.TokenSvcFacade
	hasher   portssvc.PasswordHasherSvc
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo portsrepo.UserRepository, tokenSvc portssvc.TokenSvcFacade, hasher portssvc.PasswordHasherSvc) portssvc.AuthSvcFacade {
	return &authService{
		userRepo: userRepo,
		tokenSvc: tokenSvc,
		hasher:   hasher,
	}
}

// Register creates a new active account and signs it in. The user row and its
// initial refresh token are written as one insert, so a lost uniqueness race
// surfaces as a constraint violation, not a half-created account.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	taken, err := s.userRepo.UsernameExists(ctx, req.Username, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check username availability: %w", err)
	}
	if taken {
		return dto.FailedAuthResponse(msgUsernameExists), nil
	}

	taken, err = s.userRepo.EmailExists(ctx, req.Email, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check email availability: %w", err)
	}
	if taken {
		return dto.FailedAuthResponse(msgEmailExists), nil
	}

	digest, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	refreshToken, err := s.tokenSvc.GenerateRefreshToken(ctx)
	if err != nil {
		return nil, err
	}
	refreshTokenExpiry := s.tokenSvc.RefreshTokenExpiryTime()

	now := time.Now()
	user := domain.User{
		Username:               req.Username,
		Email:                  req.Email,
		PasswordDigest:         digest,
		RefreshToken:           &refreshToken,
		RefreshTokenExpiryTime: &refreshTokenExpiry,
		CreatedDate:            now,
		ModifiedDate:           now,
		IsActive:               true,
	}

	created, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		// A concurrent registration can slip past the prechecks; the store's
		// unique constraints settle the race.
		if errors.Is(err, apperrors.ErrDuplicateUsername) {
			return dto.FailedAuthResponse(msgUsernameExists), nil
		}
		if errors.Is(err, apperrors.ErrDuplicateEmail) {
			return dto.FailedAuthResponse(msgEmailExists), nil
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	accessToken, _, err := s.tokenSvc.GenerateAccessToken(ctx, created)
	if err != nil {
		return nil, err
	}

	userResp := dto.ToUserResponse(created)
	return &dto.AuthResponse{
		Success:      true,
		Message:      msgRegistrationSuccessful,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenExpiry:  &refreshTokenExpiry,
		User:         &userResp,
	}, nil
}

// Login authenticates by username and password and issues a fresh token pair,
// overwriting any previously stored refresh token. Unknown usernames and
// wrong passwords produce the same response.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return dto.FailedAuthResponse(msgInvalidCredentials), nil
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.hasher.VerifyPassword(req.Password, user.PasswordDigest) {
		return dto.FailedAuthResponse(msgInvalidCredentials), nil
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.UserID); err != nil {
		return nil, fmt.Errorf("failed to update last login time: %w", err)
	}
	now := time.Now()
	user.LastLoginTime = &now

	accessToken, _, err := s.tokenSvc.GenerateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokenSvc.GenerateRefreshToken(ctx)
	if err != nil {
		return nil, err
	}
	refreshTokenExpiry := s.tokenSvc.RefreshTokenExpiryTime()

	if err := s.userRepo.UpdateRefreshToken(ctx, user.UserID, refreshToken, refreshTokenExpiry); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	userResp := dto.ToUserResponse(user)
	return &dto.AuthResponse{
		Success:      true,
		Message:      msgLoginSuccessful,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenExpiry:  &refreshTokenExpiry,
		User:         &userResp,
	}, nil
}

// RefreshToken exchanges a live refresh token for a brand-new access/refresh
// pair. The stored token is rotated with a compare-and-swap, so the presented
// token is dead the moment the exchange succeeds and concurrent exchanges of
// the same token cannot both win. Last login time is not touched.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindUserByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return dto.FailedAuthResponse(msgInvalidRefreshToken), nil
		}
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}

	// Expiry exactly at "now" counts as expired.
	if user.RefreshTokenExpiryTime == nil || !user.RefreshTokenExpiryTime.After(time.Now()) {
		return dto.FailedAuthResponse(msgInvalidRefreshToken), nil
	}

	newRefreshToken, err := s.tokenSvc.GenerateRefreshToken(ctx)
	if err != nil {
		return nil, err
	}
	refreshTokenExpiry := s.tokenSvc.RefreshTokenExpiryTime()

	rotated, err := s.userRepo.RotateRefreshToken(ctx, user.UserID, refreshToken, newRefreshToken, refreshTokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	if !rotated {
		// Another caller rotated or revoked the token since the lookup.
		return dto.FailedAuthResponse(msgInvalidRefreshToken), nil
	}

	accessToken, _, err := s.tokenSvc.GenerateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}

	userResp := dto.ToUserResponse(user)
	return &dto.AuthResponse{
		Success:      true,
		Message:      msgTokenRefreshed,
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		TokenExpiry:  &refreshTokenExpiry,
		User:         &userResp,
	}, nil
}

// RevokeToken clears the stored refresh token of whichever active user holds
// the presented value. Revoking an unknown or already-revoked token reports
// failure without erroring, so the operation is safe to repeat.
func (s *authService) RevokeToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	cleared, err := s.userRepo.ClearRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to clear refresh token: %w", err)
	}
	if !cleared {
		return dto.FailedAuthResponse(msgInvalidToken), nil
	}
	return &dto.AuthResponse{Success: true, Message: msgTokenRevoked}, nil
}

// Logout is an alias of RevokeToken.
func (s *authService) Logout(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	return s.RevokeToken(ctx, refreshToken)
}
