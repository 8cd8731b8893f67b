package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := NewBcryptHasher()

	hash, err := hasher.Hash("Sup3rSecret")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	// Stored form must not contain the plaintext
	assert.NotContains(t, hash, "Sup3rSecret")
	assert.True(t, strings.HasPrefix(hash, "$2"))

	assert.NoError(t, hasher.Compare(hash, "Sup3rSecret"))
	assert.Error(t, hasher.Compare(hash, "sup3rsecret"))
	assert.Error(t, hasher.Compare(hash, ""))
}

func TestBcryptHasherSaltsEveryHash(t *testing.T) {
	hasher := NewBcryptHasher()

	first, err := hasher.Hash("Sup3rSecret")
	require.NoError(t, err)
	second, err := hasher.Hash("Sup3rSecret")
	require.NoError(t, err)

	// Same input, different salt, different output
	assert.NotEqual(t, first, second)
}
