package jwtx

import "errors"

// Verifier validates a token string and returns its claims if legitimate.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// Signer turns a claim set into a signed, encoded token string.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

var (
	// ErrExpired means the token was well-formed and correctly signed but
	// its validity window has passed. Reported separately from ErrInvalid
	// so callers can log and message the two cases differently.
	ErrExpired = errors.New("jwtx: token expired")

	// ErrInvalid covers everything else: malformed structure, signature
	// mismatch, unexpected algorithm, missing subject.
	ErrInvalid = errors.New("jwtx: invalid token")
)
