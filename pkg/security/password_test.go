package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(4)

	hashed, err := hasher.Hash("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hashed)

	assert.NoError(t, hasher.Compare(hashed, "s3cret-password"))
	assert.Error(t, hasher.Compare(hashed, "wrong-password"))
}

func TestHashRejectsShortPassword(t *testing.T) {
	hasher := NewBcryptHasher(4)

	_, err := hasher.Hash("short")
	require.Error(t, err)
}

func TestOutOfRangeCostStillHashes(t *testing.T) {
	hasher := NewBcryptHasher(-1)

	hashed, err := hasher.Hash("s3cret-password")
	require.NoError(t, err)
	assert.NoError(t, hasher.Compare(hashed, "s3cret-password"))
}
