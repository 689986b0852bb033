package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vendora/vendora_backend/internal/core/domain"
	portssvc "github.com/vendora/vendora_backend/internal/core/ports/services"
	"github.com/vendora/vendora_backend/internal/platform/config"
	"github.com/vendora/vendora_backend/internal/utils"
)

// tokenService implements the TokenSvcFacade for issuing and inspecting JWT
// access tokens and opaque refresh tokens. It requires access to application
// configuration for the signing secret, token identities and expiry times.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateAccessToken creates a new signed JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(user.UserID, user.Username, s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.JWTAudience, s.cfg.JWTExpiryDuration)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return accessToken, expiryTime, nil
}

// GenerateRefreshToken creates a new opaque refresh token. 32 random bytes
// yield a 64-character hex string; the token carries no claims and is used
// purely as a rotation handle.
func (s *tokenService) GenerateRefreshToken(ctx context.Context) (string, error) {
	rawRefreshToken, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return rawRefreshToken, nil
}

// RefreshTokenExpiryTime returns the expiry for a refresh token issued now.
func (s *tokenService) RefreshTokenExpiryTime() time.Time {
	return time.Now().Add(s.cfg.RefreshTokenExpiryDuration)
}

// ParseExpiredAccessToken validates the signature, issuer and audience of an
// access token while tolerating an elapsed expiry.
func (s *tokenService) ParseExpiredAccessToken(ctx context.Context, tokenString string) (*utils.AccessTokenClaims, error) {
	return utils.ParseExpiredJWT(tokenString, s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.JWTAudience)
}

// IsAccessTokenExpired reports whether the token's expiry claim has elapsed.
func (s *tokenService) IsAccessTokenExpired(tokenString string) (bool, error) {
	return utils.IsJWTExpired(tokenString)
}
