// Package jwtx signs and verifies the stateless session tokens issued at
// login. Tokens are self-contained JWTs signed with a process-wide HMAC
// secret; the server keeps no token state, so a token stays valid until it
// expires or the secret rotates.
package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the fixed validity window for session tokens.
const DefaultSessionTTL = 24 * time.Hour

// Claims carried by a session token. The subject is the user's email, which
// is the natural key the rest of the system resolves identities from.
type Claims struct {
	jwt.RegisteredClaims
}

// NewSessionClaims builds the claim set for a token issued at now.
func NewSessionClaims(email string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}
