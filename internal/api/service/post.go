package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/projectalpha/alpha/internal/api/domain"
	"github.com/projectalpha/alpha/internal/api/storage"
	"github.com/projectalpha/alpha/internal/api/store"
	"github.com/projectalpha/alpha/pkg/slogx"
)

var ErrPostNotFound = errors.New("post_not_found")

const (
	// DefaultPostPageSize bounds list responses when the caller does not ask
	// for a specific page size.
	DefaultPostPageSize = 10
	maxPostPageSize     = 200
)

type PostService struct {
	Store   store.Store
	Storage storage.Store
}

// PostInput carries the writable fields of a post. Tags arrive as a comma
// separated string the way HTML forms submit them.
type PostInput struct {
	Title       string
	Type        string
	ContentJSON string
	Tags        string
	Category    string
	URL         string
	Author      string
}

// Attachment is an optional uploaded file accompanying a post.
type Attachment struct {
	Filename string
	Reader   io.Reader
}

// Create stores a new post for userID. When an attachment is present it is
// written to storage first and the resulting URL recorded on the post.
func (s *PostService) Create(ctx context.Context, userID string, in PostInput, att *Attachment) (domain.Post, error) {
	l := slogx.FromContext(ctx)

	post := domain.Post{
		UserID:      userID,
		Title:       in.Title,
		Type:        in.Type,
		ContentJSON: in.ContentJSON,
		Tags:        splitTags(in.Tags),
		Category:    in.Category,
		URL:         in.URL,
		Author:      in.Author,
	}

	if att != nil {
		fileURL, err := s.Storage.Save(ctx, att.Filename, att.Reader)
		if err != nil {
			return domain.Post{}, err
		}
		post.FileURL = fileURL
	}

	id, err := s.Store.Posts().CreatePost(ctx, post)
	if err != nil {
		return domain.Post{}, err
	}

	l.Info("post created",
		slog.Int64("post_id", id),
		slog.String("user_id", userID),
	)

	return s.Store.Posts().GetPost(ctx, id, userID)
}

// List returns userID's posts newest first.
func (s *PostService) List(ctx context.Context, userID string, limit, offset int) ([]domain.Post, error) {
	if limit <= 0 {
		limit = DefaultPostPageSize
	}
	if limit > maxPostPageSize {
		limit = maxPostPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.Store.Posts().ListPostsByUser(ctx, userID, limit, offset)
}

// Get fetches a single post owned by userID.
func (s *PostService) Get(ctx context.Context, id int64, userID string) (domain.Post, error) {
	post, err := s.Store.Posts().GetPost(ctx, id, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Post{}, ErrPostNotFound
		}
		return domain.Post{}, err
	}
	return post, nil
}

// Update rewrites the writable fields of a post owned by userID. A new
// attachment replaces the recorded file URL; without one the existing URL
// is kept.
func (s *PostService) Update(ctx context.Context, id int64, userID string, in PostInput, att *Attachment) (domain.Post, error) {
	current, err := s.Get(ctx, id, userID)
	if err != nil {
		return domain.Post{}, err
	}

	post := domain.Post{
		ID:          id,
		UserID:      userID,
		Title:       in.Title,
		Type:        in.Type,
		ContentJSON: in.ContentJSON,
		Tags:        splitTags(in.Tags),
		Category:    in.Category,
		URL:         in.URL,
		Author:      in.Author,
		FileURL:     current.FileURL,
	}

	if att != nil {
		fileURL, err := s.Storage.Save(ctx, att.Filename, att.Reader)
		if err != nil {
			return domain.Post{}, err
		}
		post.FileURL = fileURL
	}

	if err := s.Store.Posts().UpdatePost(ctx, post); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Post{}, ErrPostNotFound
		}
		return domain.Post{}, err
	}

	return s.Get(ctx, id, userID)
}

// Delete removes a post owned by userID.
func (s *PostService) Delete(ctx context.Context, id int64, userID string) error {
	if err := s.Store.Posts().DeletePost(ctx, id, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}

// splitTags turns a comma separated tag string into a trimmed list,
// dropping empty entries.
func splitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
