package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewUser(t *testing.T) {
	t.Run("normalizes the email and hashes the password", func(t *testing.T) {
		user, err := NewUser("  Maya@Example.COM ", "Maya", "hunter2")

		require.NoError(t, err)
		assert.Equal(t, "maya@example.com", user.Email)
		assert.Equal(t, RoleBuyer, user.Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter2")))
	})

	t.Run("derives a display name from the email when missing", func(t *testing.T) {
		user, err := NewUser("maya@example.com", "", "hunter2")

		require.NoError(t, err)
		assert.Equal(t, "maya", user.DisplayName)
	})

	t.Run("rejects empty credentials", func(t *testing.T) {
		_, err := NewUser("", "Maya", "hunter2")
		assert.Error(t, err)

		_, err = NewUser("maya@example.com", "Maya", "")
		assert.Error(t, err)
	})
}

func TestRole_Toggle(t *testing.T) {
	assert.Equal(t, RoleSeller, RoleBuyer.Toggle())
	assert.Equal(t, RoleBuyer, RoleSeller.Toggle())
}

func TestUser_SwitchRole(t *testing.T) {
	user, err := NewUser("maya@example.com", "Maya", "hunter2")
	require.NoError(t, err)

	user.SwitchRole()
	assert.Equal(t, RoleSeller, user.Role)

	user.SwitchRole()
	assert.Equal(t, RoleBuyer, user.Role)
}
