package service

import (
	"context"
	"testing"

	"github.com/projectalpha/alpha/internal/api/store"
	"github.com/projectalpha/alpha/internal/api/store/drivers/sqlite"
	"github.com/projectalpha/alpha/pkg/cryptox"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestAuthServiceRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates a user with hashed password", func(t *testing.T) {
		t.Parallel()
		svc := &AuthService{Store: newTestStore(t)}

		user, err := svc.Register(context.Background(), "Alice", "alice@example.com", "alice", "s3cret-pass")
		require.NoError(t, err)
		require.NotEmpty(t, user.ID)
		require.Equal(t, "alice@example.com", user.Email)
		require.Equal(t, "alice", user.Username)
		require.NotEqual(t, "s3cret-pass", user.PasswordHash)
		require.NoError(t, cryptox.VerifyPassword("s3cret-pass", user.PasswordHash))
	})

	t.Run("username is optional", func(t *testing.T) {
		t.Parallel()
		svc := &AuthService{Store: newTestStore(t)}

		user, err := svc.Register(context.Background(), "Bob", "bob@example.com", "", "s3cret-pass")
		require.NoError(t, err)
		require.Empty(t, user.Username)
	})

	t.Run("stores the email as submitted", func(t *testing.T) {
		t.Parallel()
		svc := &AuthService{Store: newTestStore(t)}

		user, err := svc.Register(context.Background(), "Carol", "  Carol@Example.COM ", "", "s3cret-pass")
		require.NoError(t, err)
		require.Equal(t, "Carol@Example.COM", user.Email)

		fetched, err := svc.Store.Users().GetUserByEmail(context.Background(), "Carol@Example.COM")
		require.NoError(t, err)
		require.Equal(t, "Carol@Example.COM", fetched.Email)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		t.Parallel()
		svc := &AuthService{Store: newTestStore(t)}

		_, err := svc.Register(context.Background(), "Dave", "dave@example.com", "", "s3cret-pass")
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), "Dave Mk2", "dave@example.com", "", "other-pass")
		require.ErrorIs(t, err, ErrEmailTaken)

		// The rejected attempt rolls back without touching the original.
		_, err = svc.Login(context.Background(), "dave@example.com", "s3cret-pass")
		require.NoError(t, err)
	})

	t.Run("differently cased emails are distinct accounts", func(t *testing.T) {
		t.Parallel()
		svc := &AuthService{Store: newTestStore(t)}

		_, err := svc.Register(context.Background(), "Dave", "dave@example.com", "", "s3cret-pass")
		require.NoError(t, err)

		other, err := svc.Register(context.Background(), "Dave Mk2", "DAVE@example.com", "", "other-pass")
		require.NoError(t, err)
		require.Equal(t, "DAVE@example.com", other.Email)
	})
}

func TestAuthServiceLogin(t *testing.T) {
	t.Parallel()

	newAccount := func(t *testing.T) *AuthService {
		t.Helper()
		svc := &AuthService{Store: newTestStore(t)}
		_, err := svc.Register(context.Background(), "Eve", "eve@example.com", "", "correct-horse")
		require.NoError(t, err)
		return svc
	}

	t.Run("valid credentials return the user", func(t *testing.T) {
		t.Parallel()
		svc := newAccount(t)

		user, err := svc.Login(context.Background(), "eve@example.com", "correct-horse")
		require.NoError(t, err)
		require.Equal(t, "eve@example.com", user.Email)
	})

	t.Run("email lookup matches the stored casing", func(t *testing.T) {
		t.Parallel()
		svc := newAccount(t)

		_, err := svc.Login(context.Background(), "EVE@example.com", "correct-horse")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		t.Parallel()
		svc := newAccount(t)

		_, badPass := svc.Login(context.Background(), "eve@example.com", "wrong")
		require.ErrorIs(t, badPass, ErrInvalidCredentials)

		_, noUser := svc.Login(context.Background(), "ghost@example.com", "correct-horse")
		require.ErrorIs(t, noUser, ErrInvalidCredentials)

		require.Equal(t, badPass.Error(), noUser.Error())
	})
}
