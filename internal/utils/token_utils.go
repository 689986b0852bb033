package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenClaims are the claims embedded in an access token: the standard
// registered set plus the username. The subject carries the user ID.
type AccessTokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim back into the numeric user ID.
func (c *AccessTokenClaims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid subject claim %q: %w", c.Subject, err)
	}
	return id, nil
}

// GenerateJWT creates a signed HS256 access token for the given user.
func GenerateJWT(userID int64, username, secret, issuer, audience string, expiryDuration time.Duration) (string, error) {
	now := time.Now()
	claims := AccessTokenClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a token string and validates its signature and
// all registered claims, including expiry, issuer and audience.
func ParseAndValidateJWT(tokenString, secret, issuer, audience string) (*AccessTokenClaims, error) {
	claims := &AccessTokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer), jwt.WithAudience(audience))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	return claims, nil
}

// ParseExpiredJWT parses a token string, validating the signature, issuer and
// audience but tolerating an elapsed expiry. A tampered or structurally
// broken token is still rejected; a merely stale one is not. This lets the
// refresh flow re-identify a caller from an expired access token without
// trusting anything unsigned.
func ParseExpiredJWT(tokenString, secret, issuer, audience string) (*AccessTokenClaims, error) {
	claims := &AccessTokenClaims{}

	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	// Claims validation is skipped above, so issuer and audience are checked
	// by hand. Expiry is deliberately not.
	if claims.Issuer != issuer {
		return nil, jwt.ErrTokenInvalidIssuer
	}
	if !audienceContains(claims.Audience, audience) {
		return nil, jwt.ErrTokenInvalidAudience
	}

	return claims, nil
}

// IsJWTExpired reports whether the token's embedded expiry claim has elapsed.
// It is a pure time check: the signature is not verified.
func IsJWTExpired(tokenString string) (bool, error) {
	claims := &AccessTokenClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return false, fmt.Errorf("failed to parse token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return false, errors.New("token has no expiry claim")
	}
	return !claims.ExpiresAt.Time.After(time.Now()), nil
}

func audienceContains(audience jwt.ClaimStrings, expected string) bool {
	for _, aud := range audience {
		if aud == expected {
			return true
		}
	}
	return false
}
