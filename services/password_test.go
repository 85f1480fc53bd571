package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	assert.Equal(t, "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8", HashPassword("password"))
	assert.Equal(t, HashPassword("s3cret"), HashPassword("s3cret"))
	assert.NotEqual(t, HashPassword("s3cret"), HashPassword("s3cret "))
	assert.Len(t, HashPassword(""), 64)
}

func TestMpinHashing(t *testing.T) {
	hash, err := HashMpin("1234")
	require.NoError(t, err)
	assert.NotEqual(t, "1234", hash)
	assert.True(t, CheckMpin(hash, "1234"))
	assert.False(t, CheckMpin(hash, "4321"))
	assert.False(t, CheckMpin("not-a-bcrypt-hash", "1234"))
}

func TestMpinHashingLongInput(t *testing.T) {
	long := strings.Repeat("7", 80)
	hash, err := HashMpin(long)
	require.NoError(t, err)
	assert.True(t, CheckMpin(hash, long))
	assert.False(t, CheckMpin(hash, long[:72]))
}
