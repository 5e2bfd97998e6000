package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHashAndCompare(t *testing.T) {
	hash, err := GetHash("s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.NoError(t, CompareHash(hash, "s3cret"))
	assert.Error(t, CompareHash(hash, "wrong"))
}
