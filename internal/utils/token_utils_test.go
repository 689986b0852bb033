package utils_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendora/vendora_backend/internal/utils"
)

const (
	testSecret   = "test-secret-that-is-long-enough-to-sign-with"
	testIssuer   = "vendora-backend"
	testAudience = "vendora-clients"
)

func TestGenerateJWT_RoundTrip(t *testing.T) {
	tokenString, err := utils.GenerateJWT(42, "alice", testSecret, testIssuer, testAudience, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := utils.ParseAndValidateJWT(tokenString, testSecret, testIssuer, testAudience)
	require.NoError(t, err)

	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.Contains(t, claims.Audience, testAudience)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestParseAndValidateJWT_WrongSecret(t *testing.T) {
	tokenString, err := utils.GenerateJWT(42, "alice", testSecret, testIssuer, testAudience, time.Hour)
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(tokenString, "a-completely-different-secret", testIssuer, testAudience)
	assert.Error(t, err)
}

func TestParseAndValidateJWT_Expired(t *testing.T) {
	tokenString, err := utils.GenerateJWT(42, "alice", testSecret, testIssuer, testAudience, -time.Minute)
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(tokenString, testSecret, testIssuer, testAudience)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseExpiredJWT_AcceptsStaleToken(t *testing.T) {
	tokenString, err := utils.GenerateJWT(42, "alice", testSecret, testIssuer, testAudience, -time.Minute)
	require.NoError(t, err)

	claims, err := utils.ParseExpiredJWT(tokenString, testSecret, testIssuer, testAudience)
	require.NoError(t, err)

	assert.Equal(t, "alice", claims.Username)
	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestParseExpiredJWT_RejectsTampering(t *testing.T) {
	tokenString, err := utils.GenerateJWT(42, "alice", testSecret, testIssuer, testAudience, -time.Minute)
	require.NoError(t, err)

	// Flip a character in the signature segment.
	parts := strings.Split(tokenString, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = utils.ParseExpiredJWT(tampered, testSecret, testIssuer, testAudience)
	assert.Error(t, err)
}

func TestParseExpiredJWT_RejectsWrongIssuerAndAudience(t *testing.T) {
	tokenString, err := utils.GenerateJWT(42, "alice", testSecret, "some-other-issuer", testAudience, -time.Minute)
	require.NoError(t, err)
	_, err = utils.ParseExpiredJWT(tokenString, testSecret, testIssuer, testAudience)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)

	tokenString, err = utils.GenerateJWT(42, "alice", testSecret, testIssuer, "some-other-audience", time.Hour)
	require.NoError(t, err)
	_, err = utils.ParseExpiredJWT(tokenString, testSecret, testIssuer, testAudience)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidAudience)
}

func TestIsJWTExpired(t *testing.T) {
	live, err := utils.GenerateJWT(42, "alice", testSecret, testIssuer, testAudience, time.Hour)
	require.NoError(t, err)
	expired, err := utils.IsJWTExpired(live)
	require.NoError(t, err)
	assert.False(t, expired)

	stale, err := utils.GenerateJWT(42, "alice", testSecret, testIssuer, testAudience, -time.Minute)
	require.NoError(t, err)
	expired, err = utils.IsJWTExpired(stale)
	require.NoError(t, err)
	assert.True(t, expired)
}

func TestIsJWTExpired_Garbage(t *testing.T) {
	_, err := utils.IsJWTExpired("not.a.token")
	assert.Error(t, err)
}

func TestAccessTokenClaims_UserIDBadSubject(t *testing.T) {
	claims := &utils.AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "not-a-number"},
	}
	_, err := claims.UserID()
	assert.Error(t, err)
}
