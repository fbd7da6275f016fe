package store

import (
	"context"
	"errors"

	"github.com/projectalpha/alpha/internal/api/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. Sub-repositories keep concerns tidy and testable.
type Store interface {
	Users() Users
	Posts() Posts

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns
	// nil and rolling back otherwise. Prefer this over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying connection pool.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by its opaque id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is the lookup used at login and when resolving the
	// subject of a verified token to a full identity.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is already taken; the
	// schema-level unique constraint is the authoritative guard.
	CreateUser(ctx context.Context, u domain.User) error
}

type Posts interface {
	// CreatePost inserts a post and returns the generated id.
	CreatePost(ctx context.Context, p domain.Post) (int64, error)

	// ListPostsByUser returns the user's posts, newest first.
	ListPostsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Post, error)

	// GetPost returns a single post scoped to its owner. A post owned by
	// someone else is indistinguishable from a missing one: ErrNotFound.
	GetPost(ctx context.Context, id int64, userID string) (domain.Post, error)

	// UpdatePost rewrites the mutable fields of an owned post.
	UpdatePost(ctx context.Context, p domain.Post) error

	// DeletePost removes an owned post.
	DeletePost(ctx context.Context, id int64, userID string) error
}
