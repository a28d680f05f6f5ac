package kvstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/paperback/internal/common"
)

// FileStore persists each key as one file under a data directory. Writes go
// through a temp file and rename, so a crash mid-write leaves the previous
// value intact.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: creating data dir: %v", common.ErrStorage, err)
	}
	return &FileStore{dir: dir}, nil
}

// fileName maps a collection key to a file name. Keys like "@books" contain
// characters that are awkward in file names, so every byte outside
// [a-zA-Z0-9._-] is replaced.
func (s *FileStore) fileName(key string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, key)
	return filepath.Join(s.dir, mapped+".json")
}

func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(s.fileName(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: reading %q: %v", common.ErrStorage, key, err)
	}
	return string(data), true, nil
}

func (s *FileStore) Set(ctx context.Context, key string, value string) error {
	target := s.fileName(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o600); err != nil {
		return fmt.Errorf("%w: writing %q: %v", common.ErrStorage, key, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("%w: writing %q: %v", common.ErrStorage, key, err)
	}
	return nil
}

func (s *FileStore) Remove(ctx context.Context, key string) error {
	if err := os.Remove(s.fileName(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: removing %q: %v", common.ErrStorage, key, err)
	}
	return nil
}
