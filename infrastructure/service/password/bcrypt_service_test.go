package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	service := NewBcryptPasswordService(bcrypt.MinCost)

	hash, err := service.HashPassword("s3cretpass")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "s3cretpass", hash)

	ok, err := service.VerifyPassword("s3cretpass", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = service.VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordEmpty(t *testing.T) {
	service := NewBcryptPasswordService(bcrypt.MinCost)

	_, err := service.HashPassword("")
	assert.Error(t, err)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	service := NewBcryptPasswordService(bcrypt.MinCost)

	_, err := service.VerifyPassword("s3cretpass", "not-a-bcrypt-hash")
	assert.Error(t, err)
}
