package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhil8824/ration-shop/internal/config"
)

func TestTokenRoundTrip(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "test-secret"}

	token, err := GenerateToken(cfg, 42, "nikhil@example.com", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "nikhil@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken(&config.JWTConfig{Secret: "one"}, 1, "a@b.c", "customer")
	require.NoError(t, err)

	_, err = ParseToken(&config.JWTConfig{Secret: "two"}, token)
	require.Error(t, err)
}

func TestHashRingIsStable(t *testing.T) {
	ring := NewHashRing([]string{"n1", "n2", "n3"}, 50)

	// 同一个 key 永远落在同一个节点
	first := ring.Node("some-token")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ring.Node("some-token"))
	}

	// 重复添加节点不改变归属
	ring.Add("n1")
	assert.Equal(t, first, ring.Node("some-token"))
}

func TestHashRingDefaultsWhenEmpty(t *testing.T) {
	ring := NewHashRing(nil, 0)
	assert.NotEmpty(t, ring.Node("anything"))
}
