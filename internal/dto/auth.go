package dto

import (
	"time"

	"github.com/vendora/vendora_backend/internal/core/domain"
)

// RegisterRequest carries the credentials for a new account.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50,username"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest carries an opaque refresh token to be exchanged for a
// fresh access/refresh pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RevokeTokenRequest carries the refresh token to revoke.
type RevokeTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// AuthResponse is the outcome of any auth operation. Expected business
// failures (duplicate username, bad credentials, stale refresh token) are
// reported with Success=false and a message; the token fields are only set on
// success. A fresh value is built per operation.
type AuthResponse struct {
	Success      bool          `json:"success"`
	Message      string        `json:"message"`
	AccessToken  string        `json:"accessToken,omitempty"`
	RefreshToken string        `json:"refreshToken,omitempty"`
	TokenExpiry  *time.Time    `json:"tokenExpiry,omitempty"`
	User         *UserResponse `json:"user,omitempty"`
}

// FailedAuthResponse builds a failed AuthResponse with the given message.
func FailedAuthResponse(message string) *AuthResponse {
	return &AuthResponse{Success: false, Message: message}
}

// UserResponse is the public view of a user. It never carries the password
// digest or the refresh token.
type UserResponse struct {
	ID            int64      `json:"id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	LastLoginTime *time.Time `json:"lastLoginTime,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// ToUserResponse converts a domain.User to its public representation.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:            user.UserID,
		Username:      user.Username,
		Email:         user.Email,
		LastLoginTime: user.LastLoginTime,
		CreatedAt:     user.CreatedDate,
		UpdatedAt:     user.ModifiedDate,
	}
}
