// Package cryptox implements the one-way password hashing used for stored
// credentials. Hashes are Argon2id in PHC string format, so the salt and
// cost parameters travel with the hash and nothing else needs to be stored.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Fixed Argon2id cost parameters. Changing these only affects newly created
// hashes; verification reads the parameters back out of the PHC string.
const (
	memory      = 19 * 1024 // KiB
	iterations  = 2
	parallelism = 1
	keyLength   = 32
	saltLength  = 16
)

// ErrMismatch is returned by VerifyPassword when the password does not match
// the stored hash. Any other error means the stored hash was unreadable;
// callers must treat both the same way (verification failed).
var ErrMismatch = errors.New("cryptox: password does not match")

// HashPassword derives a PHC-format Argon2id hash with a fresh random salt.
// Hashing the same password twice yields different strings.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, keyLength)

	return fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory,
		iterations,
		parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// VerifyPassword compares a plaintext password against a PHC-style Argon2id
// hash in constant time. A malformed or undecodable stored hash produces an
// error, never a match: verification fails closed.
func VerifyPassword(password, encodedHash string) error {
	parts, err := splitPHC(encodedHash)
	if err != nil {
		return err
	}

	var mem, iters uint32
	var par uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return fmt.Errorf("cryptox: invalid hash parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("cryptox: invalid hash salt: %w", err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return fmt.Errorf("cryptox: invalid hash digest: %w", err)
	}
	if len(want) == 0 {
		return errors.New("cryptox: empty hash digest")
	}

	got := argon2.IDKey([]byte(password), salt, iters, mem, par, uint32(len(want)))

	if subtle.ConstantTimeCompare(got, want) == 1 {
		return nil
	}
	return ErrMismatch
}

// splitPHC validates the shape ["", "argon2id", "v=19", params, salt, hash].
func splitPHC(encoded string) ([]string, error) {
	parts := make([]string, 0, 6)
	start := 0
	for i := 0; i < len(encoded); i++ {
		if encoded[i] == '$' {
			parts = append(parts, encoded[start:i])
			start = i + 1
		}
	}
	parts = append(parts, encoded[start:])

	if len(parts) != 6 {
		return nil, errors.New("cryptox: invalid hash format: expected 6 parts")
	}
	if parts[1] != "argon2id" {
		return nil, errors.New("cryptox: invalid hash format: not argon2id")
	}
	if parts[2] != "v=19" {
		return nil, errors.New("cryptox: invalid hash format: wrong version")
	}
	return parts, nil
}
