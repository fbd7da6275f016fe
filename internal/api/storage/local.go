package storage

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Local stores uploads on the filesystem under a single directory and
// returns URLs under urlPrefix, which the HTTP router serves as static
// files.
type Local struct {
	dir       string
	urlPrefix string
}

// NewLocal creates the upload directory if needed and returns a Local store.
func NewLocal(dir, urlPrefix string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{dir: dir, urlPrefix: urlPrefix}, nil
}

func (l *Local) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	br := bufio.NewReader(r)
	sniff, err := br.Peek(512)
	if err != nil && err != io.EOF {
		return "", err
	}

	key := objectKey(filename, sniff)

	f, err := os.OpenFile(filepath.Join(l.dir, key), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(f, br); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	return l.urlPrefix + "/" + key, nil
}
