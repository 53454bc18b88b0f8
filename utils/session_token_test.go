package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := GenerateSessionToken("session-123", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sessionID, err := ExtractSessionID(token)
	require.NoError(t, err)
	assert.Equal(t, "session-123", sessionID)
}

func TestSessionTokenExpired(t *testing.T) {
	token, err := GenerateSessionToken("session-123", -time.Minute)
	require.NoError(t, err)

	_, err = ExtractSessionID(token)
	assert.Error(t, err)
}

func TestSessionTokenGarbage(t *testing.T) {
	_, err := ExtractSessionID("not.a.token")
	assert.Error(t, err)

	_, err = ExtractSessionID("")
	assert.Error(t, err)
}
