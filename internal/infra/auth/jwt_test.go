package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/pipeline-crm/internal/entity"
	"github.com/xavierca1/pipeline-crm/internal/infra/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := auth.NewTokenManager("test-secret")

	token, err := manager.Generate(&entity.User{ID: 7, Name: "Claire"})
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := manager.Parse(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "Claire", claims.Name)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	token, err := auth.NewTokenManager("test-secret").Generate(&entity.User{ID: 7, Name: "Claire"})
	assert.NoError(t, err)

	_, err = auth.NewTokenManager("other-secret").Parse(token)
	assert.Error(t, err)
}

func TestTokenGarbageRejected(t *testing.T) {
	_, err := auth.NewTokenManager("test-secret").Parse("not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashAndCheck(t *testing.T) {
	hashed, err := auth.HashPassword("secret123")
	assert.NoError(t, err)
	assert.NotEqual(t, "secret123", hashed)

	assert.True(t, auth.CheckPassword(hashed, "secret123"))
	assert.False(t, auth.CheckPassword(hashed, "wrong"))
}
