package utils_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendora/vendora_backend/internal/utils"
)

func TestGenerateSecureRandomString(t *testing.T) {
	token, err := utils.GenerateSecureRandomString(32)
	require.NoError(t, err)

	// 32 bytes encode to 64 hex characters.
	assert.Len(t, token, 64)
	_, err = hex.DecodeString(token)
	assert.NoError(t, err)

	other, err := utils.GenerateSecureRandomString(32)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}
