package artifacts

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store persists task-completion artifacts and yields the reference string
// recorded on the task. The storage backend is an external collaborator; the
// rest of the system only ever sees the reference.
type Store interface {
	Put(ctx context.Context, filename string, content io.Reader) (string, error)
}

// LocalStore writes artifacts to a directory on local disk.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

func (s *LocalStore) Put(_ context.Context, filename string, content io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create artifacts dir: %w", err)
	}

	ref := uuid.New().String() + "-" + sanitize(filename)
	f, err := os.Create(filepath.Join(s.dir, ref))
	if err != nil {
		return "", fmt.Errorf("create artifact file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	return ref, nil
}

func sanitize(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "artifact"
	}
	return name
}
