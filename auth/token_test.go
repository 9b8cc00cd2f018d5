package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := IssueToken("U1", "test-secret", 72)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := VerifyToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "U1", claims.UID)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := IssueToken("U1", "test-secret", 72)
	require.NoError(t, err)

	_, err = VerifyToken(token, "other-secret")
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	token, err := IssueToken("U1", "test-secret", -1)
	require.NoError(t, err)

	_, err = VerifyToken(token, "test-secret")
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	_, err := VerifyToken("not.a.token", "test-secret")
	assert.Error(t, err)
}
