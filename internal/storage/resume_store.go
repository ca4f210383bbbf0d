package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ResumeStore persists an uploaded resume and returns its public URL path.
type ResumeStore interface {
	Save(ctx context.Context, r io.Reader, ext string) (string, error)
	Delete(ctx context.Context, url string) error
}

// LocalResumeStore writes resumes under dir with UUID-derived file names,
// served as /uploads/resumes/<name>.
type LocalResumeStore struct {
	dir string
}

func NewLocalResumeStore(dir string) *LocalResumeStore {
	return &LocalResumeStore{dir: dir}
}

func (s *LocalResumeStore) Save(ctx context.Context, r io.Reader, ext string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	name := strings.ReplaceAll(uuid.NewString(), "-", "") + ext
	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create resume file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write resume file: %w", err)
	}
	return "/uploads/resumes/" + name, nil
}

func (s *LocalResumeStore) Delete(ctx context.Context, url string) error {
	name := filepath.Base(url)
	if name == "." || name == "/" || name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
