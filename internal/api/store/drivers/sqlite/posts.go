package sqlite

import (
	"context"
	"encoding/json"
	"time"

	"github.com/projectalpha/alpha/internal/api/domain"
	"github.com/projectalpha/alpha/internal/api/store"
)

type postsRepo struct {
	db dbtx
}

const postColumns = `id, user_id, title, type, content_json, tags, category, file_url, url, author, created_at, updated_at`

func (r *postsRepo) CreatePost(ctx context.Context, p domain.Post) (int64, error) {
	tags, err := marshalTags(p.Tags)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (user_id, title, type, content_json, tags, category, file_url, url, author, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.Title, p.Type, p.ContentJSON, tags, p.Category,
		p.FileURL, p.URL, p.Author, now, now)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return res.LastInsertId()
}

func (r *postsRepo) ListPostsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ? OFFSET ?`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *postsRepo) GetPost(ctx context.Context, id int64, userID string) (domain.Post, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = ? AND user_id = ?`,
		id, userID)
	return scanPost(row)
}

func (r *postsRepo) UpdatePost(ctx context.Context, p domain.Post) error {
	tags, err := marshalTags(p.Tags)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE posts
		 SET title = ?, type = ?, content_json = ?, tags = ?, category = ?, file_url = ?, url = ?, author = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		p.Title, p.Type, p.ContentJSON, tags, p.Category, p.FileURL, p.URL, p.Author,
		time.Now().UTC(), p.ID, p.UserID)
	if err != nil {
		return err
	}
	return requireRowAffected(res.RowsAffected())
}

func (r *postsRepo) DeletePost(ctx context.Context, id int64, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM posts WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	return requireRowAffected(res.RowsAffected())
}

func requireRowAffected(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanPost(row rowScanner) (domain.Post, error) {
	var (
		p    domain.Post
		tags string
	)
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Title,
		&p.Type,
		&p.ContentJSON,
		&tags,
		&p.Category,
		&p.FileURL,
		&p.URL,
		&p.Author,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return domain.Post{}, mapNotFound(err)
	}

	if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
		return domain.Post{}, err
	}
	return p, nil
}

func marshalTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
