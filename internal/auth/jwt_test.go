package auth

import (
	"testing"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/config"

	"github.com/stretchr/testify/assert"
)

func loadTestConfig(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/thryfto_test?sslmode=disable")
	t.Setenv("JWT_SECRET", "jwt_secret_for_tests_12345")
	config.LoadConfig()
}

func TestGenerateAndParseToken(t *testing.T) {
	loadTestConfig(t)

	token, err := GenerateToken("user-123", RoleUser)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, RoleUser, claims.Role)
}

func TestParseToken_Garbage(t *testing.T) {
	loadTestConfig(t)

	_, err := ParseToken("not.a.token")
	assert.Error(t, err)

	_, err = ParseToken("")
	assert.Error(t, err)
}

func TestParseToken_WrongSecret(t *testing.T) {
	loadTestConfig(t)

	token, err := GenerateToken("user-123", RoleAdmin)
	assert.NoError(t, err)

	t.Setenv("JWT_SECRET", "a_completely_different_secret")
	config.LoadConfig()

	_, err = ParseToken(token)
	assert.Error(t, err)
}
