package storage

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// FileStorage reads and writes whole blobs by path. Implementations either
// fully succeed or return an error; retrying is up to them.
type FileStorage interface {
	Write(ctx context.Context, path string, content []byte) error
	Read(ctx context.Context, path string) ([]byte, error)
}

// OSFileStorage keeps blobs as files on the local filesystem
type OSFileStorage struct {
	Perm fs.FileMode
}

func NewOSFileStorage() *OSFileStorage {
	return &OSFileStorage{Perm: 0o644}
}

func (s *OSFileStorage) Write(_ context.Context, path string, content []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "[OSFileStorage.Write] failed to create directory: %s", dir)
		}
	}
	if err := os.WriteFile(path, content, s.Perm); err != nil {
		return errors.Wrapf(err, "[OSFileStorage.Write] failed to write file: %s", path)
	}
	return nil
}

func (s *OSFileStorage) Read(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(ErrNotFound, "[OSFileStorage.Read] %s", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "[OSFileStorage.Read] failed to read file: %s", path)
	}
	return data, nil
}

// MemoryFileStorage keeps blobs in a map
type MemoryFileStorage struct {
	lock  sync.RWMutex
	files map[string][]byte
}

func NewMemoryFileStorage() *MemoryFileStorage {
	return &MemoryFileStorage{files: make(map[string][]byte)}
}

func (s *MemoryFileStorage) Write(_ context.Context, path string, content []byte) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.files[path] = append([]byte(nil), content...)
	return nil
}

func (s *MemoryFileStorage) Read(_ context.Context, path string) ([]byte, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	content, ok := s.files[path]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "[MemoryFileStorage.Read] %s", path)
	}
	return append([]byte(nil), content...), nil
}
