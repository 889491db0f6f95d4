package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGenerate(t *testing.T) {
	g := NewGenerator(bcrypt.MinCost)

	plain, hash, err := g.Generate()
	require.NoError(t, err)

	assert.Len(t, plain, passwordLength)
	for _, r := range plain {
		assert.True(t, strings.ContainsRune(passwordChars, r),
			"password must only use the unambiguous alphabet")
	}

	assert.True(t, Verify(plain, hash))
	assert.False(t, Verify("wrong", hash))
}

func TestGenerateIsRandom(t *testing.T) {
	g := NewGenerator(bcrypt.MinCost)

	first, _, err := g.Generate()
	require.NoError(t, err)
	second, _, err := g.Generate()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHashPassword(t *testing.T) {
	g := NewGenerator(bcrypt.MinCost)

	hash, err := g.HashPassword("rahasia123")
	require.NoError(t, err)
	assert.True(t, Verify("rahasia123", hash))
}
