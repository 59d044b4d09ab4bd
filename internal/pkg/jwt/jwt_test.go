package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	appErr "github.com/gridwatch/gridboard/internal/pkg/errors"
	"github.com/gridwatch/gridboard/internal/pkg/jwt"
)

var testSecret = []byte("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	token, err := jwt.GenerateToken("user-1", "alice", "alice@example.com", testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := jwt.ParseToken(token, testSecret)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "alice@example.com", claims.Email)
	require.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestExpiredToken(t *testing.T) {
	token, err := jwt.GenerateToken("user-1", "alice", "", testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = jwt.ParseToken(token, testSecret)
	require.ErrorIs(t, err, appErr.ErrTokenExpired)
}

func TestWrongSecret(t *testing.T) {
	token, err := jwt.GenerateToken("user-1", "alice", "", testSecret, time.Hour)
	require.NoError(t, err)

	_, err = jwt.ParseToken(token, []byte("other-secret"))
	require.ErrorIs(t, err, appErr.ErrTokenInvalid)
}

func TestMalformedToken(t *testing.T) {
	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := jwt.ParseToken(token, testSecret)
		require.ErrorIs(t, err, appErr.ErrTokenInvalid)
	}
}
