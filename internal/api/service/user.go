package service

import (
	"context"

	"github.com/projectalpha/alpha/internal/api/domain"
	"github.com/projectalpha/alpha/internal/api/store"
)

type UserService struct {
	Store store.Store
}

// GetUserByEmail fetches a user by their account email.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return s.Store.Users().GetUserByEmail(ctx, email)
}

// ResolveUserID maps an authenticated email to its account id. Session
// tokens carry the email, so owner-scoped operations resolve through here.
func (s *UserService) ResolveUserID(ctx context.Context, email string) (string, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}
