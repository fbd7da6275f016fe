package domain

import "time"

// Post is a user-owned content record. ContentJSON is the editor document
// stored verbatim; Tags are normalized from the comma-separated form input.
type Post struct {
	ID          int64
	UserID      string
	Title       string
	Type        string
	ContentJSON string
	Tags        []string
	Category    string
	FileURL     string // attachment location, empty when no file was uploaded
	URL         string
	Author      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
