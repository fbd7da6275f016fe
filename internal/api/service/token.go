package service

import (
	"time"

	"github.com/projectalpha/alpha/pkg/jwtx"
)

type TokenService struct {
	Signer     jwtx.Signer
	SessionTTL time.Duration
}

// Issue mints a signed session token for the given account email.
func (s *TokenService) Issue(email string) (string, error) {
	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	return s.Signer.Sign(jwtx.NewSessionClaims(email, ttl, time.Now()))
}
