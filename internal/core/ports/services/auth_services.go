package services

import (
	"context"
	"time"

	"github.com/vendora/vendora_backend/internal/core/domain"
	"github.com/vendora/vendora_backend/internal/dto"
	"github.com/vendora/vendora_backend/internal/utils"
)

// PasswordHasherSvc turns plaintext passwords into storable salted digests and
// verifies plaintext against them.
type PasswordHasherSvc interface {
	// HashPassword returns a digest embedding a fresh random salt. Two calls
	// on the same plaintext produce different digests.
	HashPassword(plaintext string) (string, error)

	// VerifyPassword reports whether plaintext matches the digest. Any
	// malformed digest verifies false; it never errors.
	VerifyPassword(plaintext, digest string) bool
}

// TokenSvcFacade issues and inspects access and refresh tokens.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed, time-bounded access token for the
	// user and returns it with its expiry time.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// GenerateRefreshToken creates an opaque random refresh token. It carries
	// no decodable payload.
	GenerateRefreshToken(ctx context.Context) (string, error)

	// RefreshTokenExpiryTime returns the expiry for a refresh token issued
	// now. Refresh tokens outlive access tokens so a client can silently
	// re-authenticate.
	RefreshTokenExpiryTime() time.Time

	// ParseExpiredAccessToken validates an access token's signature, issuer
	// and audience while tolerating an elapsed expiry. Tampering is a hard
	// failure; mere staleness is not.
	ParseExpiredAccessToken(ctx context.Context, tokenString string) (*utils.AccessTokenClaims, error)

	// IsAccessTokenExpired is a pure time check against the token's embedded
	// expiry claim, independent of signature validity.
	IsAccessTokenExpired(tokenString string) (bool, error)
}

// AuthSvcFacade is the authentication orchestrator. Expected business
// failures (duplicates, bad credentials, stale tokens) come back as a failed
// AuthResponse; a non-nil error means infrastructure trouble.
type AuthSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error)
	RevokeToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error)
	Logout(ctx context.Context, refreshToken string) (*dto.AuthResponse, error)
}
