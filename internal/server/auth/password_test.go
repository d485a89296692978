package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHash_SaltedPerCall(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	first, err := h.Hash("secret1")
	require.NoError(t, err)

	second, err := h.Hash("secret1")
	require.NoError(t, err)

	require.NotEqual(t, first, second, "each call must use a fresh salt")
	require.NotContains(t, first, "secret1")
}

func TestVerify_Match(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	digest, err := h.Hash("secret1")
	require.NoError(t, err)

	require.True(t, h.Verify("secret1", digest))
}

func TestVerify_MismatchIsFalseNotError(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	digest, err := h.Hash("secret1")
	require.NoError(t, err)

	require.False(t, h.Verify("wrong", digest))
	require.False(t, h.Verify("secret1", "not-a-digest"))
}

func TestNewBcryptHasher_ZeroCostFallsBackToDefault(t *testing.T) {
	h := NewBcryptHasher(0)
	require.Equal(t, bcrypt.DefaultCost, h.cost)
}
