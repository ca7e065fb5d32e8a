package utils

import (
	"strings"
	"testing"

	"github.com/iliyamo/universe-repo/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_VerifiesOnlyOriginal(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, VerifyPassword(hash, "s3cret-pass"))
	assert.False(t, VerifyPassword(hash, "wrong"))
	assert.False(t, VerifyPassword("", "s3cret-pass"))
}

func TestHashPassword_IsSalted(t *testing.T) {
	a, err := HashPassword("same", bcrypt.MinCost)
	require.NoError(t, err)
	b, err := HashPassword("same", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashPassword_OutOfRangeCostFallsBack(t *testing.T) {
	hash, err := HashPassword("pw", 0)
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestHashPassword_TooLongIsValidationError(t *testing.T) {
	_, err := HashPassword(strings.Repeat("x", 73), bcrypt.MinCost)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = HashPassword(strings.Repeat("x", 72), bcrypt.MinCost)
	assert.NoError(t, err)
}

func TestRandomString(t *testing.T) {
	s, err := RandomString(8)
	require.NoError(t, err)
	assert.Len(t, s, 8)
	for _, r := range s {
		assert.True(t, strings.ContainsRune(alphanumeric, r), "unexpected rune %q", r)
	}

	empty, err := RandomString(0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRandomString_Varies(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		s, err := RandomString(16)
		require.NoError(t, err)
		seen[s] = true
	}
	assert.Greater(t, len(seen), 1)
}
