package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := NewBcryptHasher()

	hashed, err := hasher.Hash("s3cret-value")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-value", hashed)

	assert.NoError(t, hasher.Compare(hashed, "s3cret-value"))
	assert.Error(t, hasher.Compare(hashed, "wrong-value"))
}

func TestBcryptHasherProducesUniqueSalts(t *testing.T) {
	hasher := NewBcryptHasher()

	first, err := hasher.Hash("same-input")
	require.NoError(t, err)
	second, err := hasher.Hash("same-input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
