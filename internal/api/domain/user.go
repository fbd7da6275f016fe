package domain

import "time"

// User is the persisted identity record. The id is generated once at
// registration and never reused; email is the unique natural key carried
// inside session tokens.
type User struct {
	ID           string
	Name         string
	Email        string
	Username     string // optional at registration, empty when not supplied
	PasswordHash string // PHC-encoded argon2id, opaque at rest
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
