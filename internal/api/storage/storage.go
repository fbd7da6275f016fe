// Package storage abstracts where uploaded post attachments live. The
// local driver writes to a directory served by the API itself; the s3
// driver uploads to an S3-compatible bucket and hands back presigned URLs.
package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Store persists an uploaded file and returns the URL it can be fetched from.
type Store interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}

// objectKey derives a collision-free storage key for an upload. The original
// filename only contributes its extension; when it has none the content
// itself is sniffed so the stored object still ends in something sensible.
func objectKey(filename string, sniff []byte) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = mimetype.Detect(sniff).Extension()
	}
	name := strings.ReplaceAll(uuid.New().String(), "-", "")
	return name + ext
}

// contentType sniffs the MIME type of an upload from its leading bytes.
func contentType(sniff []byte) string {
	return mimetype.Detect(sniff).String()
}
