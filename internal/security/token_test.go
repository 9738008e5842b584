package security_test

import (
	"testing"
	"time"

	"thoonsheet-backend/internal/security"

	"github.com/stretchr/testify/assert"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenRoundTrip(t *testing.T) {
	manager := security.NewTokenManager(testSecret, time.Hour)

	token, err := manager.GenerateAccessToken(42, "owner1", 7)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int32(42), claims.UserID)
	assert.Equal(t, "owner1", claims.Username)
	assert.Equal(t, int32(7), claims.TokenVersion)
}

func TestExpiredTokenRejected(t *testing.T) {
	manager := security.NewTokenManager(testSecret, -time.Minute)

	token, err := manager.GenerateAccessToken(42, "owner1", 0)
	assert.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	manager := security.NewTokenManager(testSecret, time.Hour)
	other := security.NewTokenManager("ffffffffffffffffffffffffffffffff", time.Hour)

	token, err := manager.GenerateAccessToken(42, "owner1", 0)
	assert.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	manager := security.NewTokenManager(testSecret, time.Hour)

	_, err := manager.ValidateToken("not.a.token")
	assert.Error(t, err)
}
