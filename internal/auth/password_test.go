package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.True(t, h.Compare(hash, "correct horse"))
	assert.False(t, h.Compare(hash, "battery staple"))
	assert.False(t, h.Compare("not-a-hash", "correct horse"))
}

func TestNewHasherCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewHasher(0).Cost)
	assert.Equal(t, bcrypt.MinCost, NewHasher(1).Cost)
	assert.Equal(t, bcrypt.MaxCost, NewHasher(99).Cost)
}
