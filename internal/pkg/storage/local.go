// internal/pkg/storage/local.go
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
)

var ErrTooLarge = errors.New("file exceeds the size limit")

// Object describes a stored file by disk path and public URL
type Object struct {
	Path string
	URL  string
	Size int64
}

// LocalStore keeps vehicle images under a root directory that is also served
// statically at BaseURL.
type LocalStore struct {
	root    string
	baseURL string
	logger  *zap.Logger
}

func NewLocalStore(root, baseURL string, logger *zap.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", root, err)
	}
	return &LocalStore{root: root, baseURL: baseURL, logger: logger}, nil
}

func (s *LocalStore) Root() string { return s.root }

func (s *LocalStore) object(size int64, parts ...string) Object {
	return Object{
		Path: filepath.Join(append([]string{s.root}, parts...)...),
		URL:  path.Join(append([]string{s.baseURL}, parts...)...),
		Size: size,
	}
}

// Save writes r to {root}/{kind}/{id}/{name}. Anything beyond limit bytes
// fails the write and removes the partial file.
func (s *LocalStore) Save(kind string, id int64, name string, r io.Reader, limit int64) (Object, error) {
	obj := s.object(0, kind, strconv.FormatInt(id, 10), name)
	if err := os.MkdirAll(filepath.Dir(obj.Path), 0o755); err != nil {
		return Object{}, fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.OpenFile(obj.Path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return Object{}, fmt.Errorf("failed to create file: %w", err)
	}

	n, err := io.Copy(f, io.LimitReader(r, limit+1))
	closeErr := f.Close()
	switch {
	case err != nil:
		err = fmt.Errorf("failed to write file: %w", err)
	case closeErr != nil:
		err = fmt.Errorf("failed to close file: %w", closeErr)
	case n > limit:
		err = ErrTooLarge
	}
	if err != nil {
		s.Remove(obj.Path)
		return Object{}, err
	}

	obj.Size = n
	return obj, nil
}

// Remove deletes files best-effort, logging what it could not remove.
func (s *LocalStore) Remove(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("failed to remove file", zap.String("path", p), zap.Error(err))
		}
	}
}
