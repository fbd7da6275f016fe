package service

import (
	"testing"
	"time"

	"github.com/projectalpha/alpha/pkg/jwtx"

	"github.com/stretchr/testify/require"
)

func TestTokenServiceIssue(t *testing.T) {
	t.Parallel()

	codec, err := jwtx.NewHS256([]byte("test-secret"))
	require.NoError(t, err)

	t.Run("issues a verifiable session token", func(t *testing.T) {
		t.Parallel()
		svc := &TokenService{Signer: codec, SessionTTL: time.Hour}

		token, err := svc.Issue("alice@example.com")
		require.NoError(t, err)

		claims, err := codec.Verify(token)
		require.NoError(t, err)
		require.Equal(t, "alice@example.com", claims.Subject)
		require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
	})

	t.Run("defaults to the session ttl", func(t *testing.T) {
		t.Parallel()
		svc := &TokenService{Signer: codec}

		token, err := svc.Issue("bob@example.com")
		require.NoError(t, err)

		claims, err := codec.Verify(token)
		require.NoError(t, err)
		require.WithinDuration(t, time.Now().Add(jwtx.DefaultSessionTTL), claims.ExpiresAt.Time, 5*time.Second)
	})
}
