package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"berostock/internal/core/appctx"
)

func TestNewUser_NormalizesEmail(t *testing.T) {
	u := NewUser("  Jane@Berostock.Local ", "hash", appctx.RoleStaff)
	assert.Equal(t, "jane@berostock.local", u.Email)
	assert.True(t, u.IsActive)
	assert.Equal(t, 1, u.Version)
}

func TestUserValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		u := NewUser("jane@berostock.local", "hash", appctx.RoleStaff)
		assert.NoError(t, u.Validate(ctx))
	})

	t.Run("missing email", func(t *testing.T) {
		u := NewUser("", "hash", appctx.RoleStaff)
		assert.Error(t, u.Validate(ctx))
	})

	t.Run("malformed email", func(t *testing.T) {
		u := NewUser("not-an-email", "hash", appctx.RoleStaff)
		assert.Error(t, u.Validate(ctx))
	})

	t.Run("unknown role", func(t *testing.T) {
		u := NewUser("jane@berostock.local", "hash", appctx.Role("superuser"))
		assert.Error(t, u.Validate(ctx))
	})
}

func TestUser_LockoutAfterRepeatedFailures(t *testing.T) {
	u := NewUser("jane@berostock.local", "hash", appctx.RoleStaff)
	require.NoError(t, u.CanLogin())

	for i := 0; i < 4; i++ {
		u.RecordFailedLogin(5, 15*time.Minute)
		assert.NoError(t, u.CanLogin(), "attempt %d must not lock", i+1)
	}

	u.RecordFailedLogin(5, 15*time.Minute)
	assert.True(t, u.IsLocked())
	assert.Error(t, u.CanLogin())

	u.RecordSuccessfulLogin()
	assert.False(t, u.IsLocked())
	assert.NoError(t, u.CanLogin())
	assert.Equal(t, 0, u.FailedLoginAttempts)
}

func TestUser_DisabledAccountCannotLogin(t *testing.T) {
	u := NewUser("jane@berostock.local", "hash", appctx.RoleStaff)
	u.IsActive = false
	assert.Error(t, u.CanLogin())
}

func TestRefreshToken_IsValid(t *testing.T) {
	now := time.Now()

	t.Run("live", func(t *testing.T) {
		tok := &RefreshToken{ExpiresAt: now.Add(time.Hour)}
		assert.True(t, tok.IsValid())
	})

	t.Run("expired", func(t *testing.T) {
		tok := &RefreshToken{ExpiresAt: now.Add(-time.Hour)}
		assert.False(t, tok.IsValid())
	})

	t.Run("revoked", func(t *testing.T) {
		tok := &RefreshToken{ExpiresAt: now.Add(time.Hour), RevokedAt: &now}
		assert.False(t, tok.IsValid())
	})
}
