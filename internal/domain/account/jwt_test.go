package account

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	user := &User{ID: 7, Email: "owner@shop.test", FullName: "Shop Owner", Role: RoleAdmin}
	token, expiresAt, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	uc, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), uc.UserID)
	assert.Equal(t, "owner@shop.test", uc.Email)
	assert.Equal(t, RoleAdmin, uc.Role)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := NewJWTService(DefaultJWTConfig("secret-a"))
	verifier := NewJWTService(DefaultJWTConfig("secret-b"))

	token, _, err := issuer.GenerateAccessToken(&User{ID: 1, Email: "x@y.test", Role: RoleSeller})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	cfg := DefaultJWTConfig("test-secret")
	cfg.AccessTokenTTL = -time.Minute
	svc := NewJWTService(cfg)

	token, _, err := svc.GenerateAccessToken(&User{ID: 1, Email: "x@y.test", Role: RoleSeller})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))
	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
