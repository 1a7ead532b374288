package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrInvalidPath is returned for absolute paths and paths that leave the store root.
var ErrInvalidPath = errors.New("invalid storage path")

// AferoStore implements Store on top of an afero.Fs.
type AferoStore struct {
	fs afero.Fs
}

// NewAferoStore creates a new AferoStore.
func NewAferoStore(fs afero.Fs) *AferoStore {
	return &AferoStore{fs: fs}
}

// NewDirStore creates a store rooted at dir on the OS filesystem.
func NewDirStore(dir string) (*AferoStore, error) {
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return NewAferoStore(afero.NewBasePathFs(osFs, dir)), nil
}

// Save writes the content of the reader to path, creating parent directories.
func (s *AferoStore) Save(ctx context.Context, path string, reader io.Reader) (int64, error) {
	clean, err := cleanPath(path)
	if err != nil {
		return 0, err
	}
	if err := s.fs.MkdirAll(filepath.Dir(clean), 0o755); err != nil {
		return 0, err
	}
	f, err := s.fs.Create(clean)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, reader)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}

// Open opens a stored file for reading.
func (s *AferoStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	clean, err := cleanPath(path)
	if err != nil {
		return nil, err
	}
	return s.fs.OpenFile(clean, os.O_RDONLY, 0)
}

// Delete removes a stored file.
func (s *AferoStore) Delete(ctx context.Context, path string) error {
	clean, err := cleanPath(path)
	if err != nil {
		return err
	}
	return s.fs.Remove(clean)
}

func cleanPath(path string) (string, error) {
	clean := filepath.Clean(path)
	if path == "" || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	return clean, nil
}
