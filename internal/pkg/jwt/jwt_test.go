package jwt

import (
	"testing"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc, err := NewJWTService("test-secret", "1h")
	require.NoError(t, err)

	token, expiresAt, err := svc.GenerateAccessToken("hr@example.com", user.RoleHR)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotZero(t, expiresAt)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	email, _ := decoded.Get("email")
	role, _ := decoded.Get("role")
	assert.Equal(t, "hr@example.com", email)
	assert.Equal(t, "HR", role)
}

func TestNewJWTService_InvalidExpiration(t *testing.T) {
	_, err := NewJWTService("secret", "tomorrow")
	assert.Error(t, err)
}

func TestActorFromClaims(t *testing.T) {
	actor, ok := ActorFromClaims(map[string]interface{}{
		"email": "admin@example.com",
		"role":  "Admin",
		"type":  "access",
	})
	require.True(t, ok)
	assert.Equal(t, user.Actor{Email: "admin@example.com", Role: user.RoleAdmin}, actor)

	_, ok = ActorFromClaims(map[string]interface{}{"email": "a@b.cd", "type": "refresh"})
	assert.False(t, ok)

	_, ok = ActorFromClaims(map[string]interface{}{"role": "HR", "type": "access"})
	assert.False(t, ok)
}
