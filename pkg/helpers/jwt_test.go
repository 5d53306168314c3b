package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, exp, err := m.Generate(42, "alice", "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)

	token, _, err := m.Generate(1, "bob", "bob@example.com")
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.Error(t, err)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	m := NewJWTManager("secret-a", time.Hour)
	token, _, err := m.Generate(1, "bob", "bob@example.com")
	require.NoError(t, err)

	other := NewJWTManager("secret-b", time.Hour)
	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestJWTManager_Garbage(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	_, err := m.Parse("not-a-token")
	assert.Error(t, err)
}
