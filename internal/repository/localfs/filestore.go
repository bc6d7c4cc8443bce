// Package localfs implements domain.FileStore over a local directory.
// The directory is served read-only under /uploads/, so stored names
// become public URLs.
package localfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"auctionbazaar/internal/domain"
)

// Store writes uploaded files under a single root directory.
type Store struct {
	root string
}

var _ domain.FileStore = (*Store)(nil)

// New creates the upload directory if needed and returns a Store.
func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &Store{root: root}, nil
}

// Root returns the directory files are stored under.
func (s *Store) Root() string {
	return s.root
}

func (s *Store) Save(ctx context.Context, name string, data []byte) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

// resolve rejects names that would escape the root directory.
func (s *Store) resolve(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: invalid file name %q", domain.ErrInvalidInput, name)
	}
	return filepath.Join(s.root, name), nil
}
