package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordVerifiesOwnOutput(t *testing.T) {
	for _, plain := range []string{"hunter2", "correct horse battery staple", ""} {
		hash, err := HashPassword(plain, bcrypt.MinCost)
		require.NoError(t, err)
		assert.NoError(t, ComparePassword(hash, plain))
	}
}

func TestHashPasswordSaltsPerCall(t *testing.T) {
	first, err := HashPassword("hunter2", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPassword("hunter2", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NoError(t, ComparePassword(first, "hunter2"))
	assert.NoError(t, ComparePassword(second, "hunter2"))
}

func TestComparePasswordRejectsOtherPlaintext(t *testing.T) {
	hash, err := HashPassword("hunter2", bcrypt.MinCost)
	require.NoError(t, err)

	assert.Error(t, ComparePassword(hash, "hunter3"))
	assert.Error(t, ComparePassword(hash, ""))
}
