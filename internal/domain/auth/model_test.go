package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_RecordFailedLogin_LocksAfterMaxAttempts(t *testing.T) {
	user := NewUser("asesor@taller.co", "hash")

	for i := 0; i < 4; i++ {
		user.RecordFailedLogin(5, 15*time.Minute)
		assert.False(t, user.IsLocked(), "attempt %d should not lock", i+1)
	}

	user.RecordFailedLogin(5, 15*time.Minute)
	assert.True(t, user.IsLocked())
	assert.Error(t, user.CanLogin())

	user.RecordSuccessfulLogin()
	assert.False(t, user.IsLocked())
	assert.Equal(t, 0, user.FailedLoginAttempts)
	assert.NoError(t, user.CanLogin())
}

func TestUser_CanLogin_Disabled(t *testing.T) {
	user := NewUser("tecnico@taller.co", "hash")
	user.IsActive = false

	assert.Error(t, user.CanLogin())
}

func TestUser_HasPermission_AdminBypass(t *testing.T) {
	user := NewUser("gerente@taller.co", "hash")
	user.Permissions = []string{PermWorkOrderAdvance}

	assert.True(t, user.HasPermission(PermWorkOrderAdvance))
	assert.False(t, user.HasPermission(PermManageFinance))

	user.IsAdmin = true
	assert.True(t, user.HasPermission(PermManageFinance))
}

func TestUser_CanOperateIn(t *testing.T) {
	user := NewUser("asesor@taller.co", "hash")

	// no explicit grants means unrestricted
	assert.True(t, user.CanOperateIn("loc-1"))

	user.LocationIDs = []string{"loc-1"}
	assert.True(t, user.CanOperateIn("loc-1"))
	assert.False(t, user.CanOperateIn("loc-2"))

	user.IsAdmin = true
	assert.True(t, user.CanOperateIn("loc-2"))
}

func TestRefreshToken_IsValid(t *testing.T) {
	token := &RefreshToken{ExpiresAt: time.Now().Add(time.Hour)}
	assert.True(t, token.IsValid())

	now := time.Now()
	token.RevokedAt = &now
	assert.False(t, token.IsValid())

	expired := &RefreshToken{ExpiresAt: time.Now().Add(-time.Minute)}
	assert.False(t, expired.IsValid())
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	tokenString, expiresAt, err := svc.GenerateAccessToken(
		"user-1", "staff-1", "asesor@taller.co",
		[]string{RoleAdvisor}, []string{PermWorkOrderAdvance}, []string{"loc-1"},
		false,
	)
	require.NoError(t, err)
	assert.NotEmpty(t, tokenString)
	assert.True(t, expiresAt.After(time.Now()))

	uc, err := svc.ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-1", uc.UserID)
	assert.Equal(t, "staff-1", uc.StaffID)
	assert.Equal(t, "asesor@taller.co", uc.Email)
	assert.Equal(t, []string{RoleAdvisor}, uc.Roles)
	assert.Equal(t, []string{PermWorkOrderAdvance}, uc.Permissions)
	assert.Equal(t, []string{"loc-1"}, uc.LocationIDs)
	assert.False(t, uc.IsAdmin)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("secret-a"))
	other := NewJWTService(DefaultJWTConfig("secret-b"))

	tokenString, _, err := svc.GenerateAccessToken(
		"user-1", "", "asesor@taller.co", nil, nil, nil, false)
	require.NoError(t, err)

	_, err = other.ValidateToken(tokenString)
	assert.Error(t, err)
}
