package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/projectalpha/alpha/internal/api/domain"
	"github.com/projectalpha/alpha/internal/api/store"
	"github.com/projectalpha/alpha/pkg/cryptox"
	"github.com/projectalpha/alpha/pkg/idx"
	"github.com/projectalpha/alpha/pkg/slogx"
)

var (
	ErrEmailTaken         = errors.New("email_taken")
	ErrInvalidCredentials = errors.New("invalid_credentials")
)

type AuthService struct {
	Store store.Store
}

// Register creates a new account with a freshly hashed password. Username is
// optional and stored empty when absent. The email is stored exactly as
// submitted, apart from trimming surrounding whitespace.
//
// The existence check and the insert run in one transaction so the friendly
// ErrEmailTaken path cannot race a concurrent signup; the unique constraint
// on email remains the authoritative guard either way.
func (s *AuthService) Register(ctx context.Context, name, email, username, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	email = strings.TrimSpace(email)

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		Username:     username,
		PasswordHash: hash,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().GetUserByEmail(ctx, email); err == nil {
			return ErrEmailTaken
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		return tx.Users().CreateUser(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}

	l.Info("user registered", slog.String("user_id", user.ID))
	return user, nil
}

// Login verifies the credentials and returns the matching user. Unknown
// emails and wrong passwords produce the same error so callers cannot probe
// which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	email = strings.TrimSpace(email)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("login failed", slog.String("user_id", user.ID))
		return domain.User{}, ErrInvalidCredentials
	}

	return user, nil
}
