package handler_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strangerchat/backend/internal/api/handler"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := handler.GenerateToken("anon-123", secret, time.Hour)
	require.NoError(t, err)

	anonID, err := handler.ParseToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "anon-123", anonID)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := handler.GenerateToken("anon-123", []byte("right"), time.Hour)
	require.NoError(t, err)

	_, err = handler.ParseToken(token, []byte("wrong"))
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	secret := []byte("test-secret")
	token, err := handler.GenerateToken("anon-123", secret, -time.Minute)
	require.NoError(t, err)

	_, err = handler.ParseToken(token, secret)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	_, err := handler.ParseToken("not-a-token", []byte("secret"))
	assert.Error(t, err)
}
