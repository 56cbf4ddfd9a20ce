package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates user with hashed password", func(t *testing.T) {
		user, err := NewUser("Dana@Example.com", "Dana", "correct horse battery")

		require.NoError(t, err)
		assert.Equal(t, "dana@example.com", user.Email)
		assert.Equal(t, "Dana", user.Name)
		assert.NotEqual(t, "correct horse battery", user.PasswordHash)
		assert.True(t, user.VerifyPassword("correct horse battery"))
		assert.False(t, user.VerifyPassword("wrong password"))
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		_, err := NewUser("not-an-email", "Dana", "correct horse battery")
		assert.Error(t, err)

		_, err = NewUser("", "Dana", "correct horse battery")
		assert.Error(t, err)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser("dana@example.com", "Dana", "short")
		assert.Error(t, err)
	})

	t.Run("rejects over-length password", func(t *testing.T) {
		long := make([]byte, 80)
		for i := range long {
			long[i] = 'a'
		}
		_, err := NewUser("dana@example.com", "Dana", string(long))
		assert.Error(t, err)
	})
}

func TestUserRecordLogin(t *testing.T) {
	user, err := NewUser("dana@example.com", "Dana", "correct horse battery")
	require.NoError(t, err)
	assert.Nil(t, user.LastLoginAt)

	at := time.Now()
	user.RecordLogin(at)

	require.NotNil(t, user.LastLoginAt)
	assert.Equal(t, at, *user.LastLoginAt)
}
