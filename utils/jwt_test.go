package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedloop/config"
	"feedloop/models"
)

func testUser() *models.User {
	return &models.User{
		ID:    uuid.New(),
		Name:  "Alice",
		Email: "alice@example.com",
		Role:  models.RoleManager,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	config.AppConfig = config.Config{JWTSecret: "test-secret"}
	user := testUser()

	token, err := GenerateJWTToken(user)
	require.NoError(t, err)

	claims, err := ParseJWTToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.ID.String(), claims.Subject)
}

func TestExpiredTokenRejected(t *testing.T) {
	config.AppConfig = config.Config{JWTSecret: "test-secret"}

	token, err := generateToken(testUser(), -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWTToken(token)
	assert.Error(t, err)
}

func TestTokenSignedWithDifferentSecretRejected(t *testing.T) {
	config.AppConfig = config.Config{JWTSecret: "test-secret"}
	token, err := GenerateJWTToken(testUser())
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "another-secret"
	_, err = ParseJWTToken(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	config.AppConfig = config.Config{JWTSecret: "test-secret"}

	_, err := ParseJWTToken("not.a.token")
	assert.Error(t, err)
}
