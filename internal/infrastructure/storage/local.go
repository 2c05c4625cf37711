// Package storage keeps product images and documents on the local disk.
package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/berlivn/eriflex-api/internal/domain"
	"github.com/berlivn/eriflex-api/internal/domain/busbar"
)

// LocalStore serves files under a root directory. Relative paths use forward slashes.
type LocalStore struct {
	root string
}

// NewLocalStore creates products/ and documents/ under root when missing.
func NewLocalStore(root string) (*LocalStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("assets root: %w", err)
	}
	for _, dir := range []string{busbar.ProductsDir, busbar.DocumentsDir} {
		if err := os.MkdirAll(filepath.Join(abs, dir), 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return &LocalStore{root: abs}, nil
}

// Root absolute directory.
func (s *LocalStore) Root() string { return s.root }

// resolve maps rel to an absolute path inside root. Paths escaping root are ErrNotFound.
func (s *LocalStore) resolve(rel string) (string, error) {
	clean, ok := busbar.CleanAssetPath(rel)
	if !ok {
		return "", domain.ErrNotFound
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

// Path returns the absolute path of an existing regular file.
func (s *LocalStore) Path(rel string) (string, error) {
	p, err := s.resolve(rel)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("stat %s: %w", rel, err)
	}
	if info.IsDir() {
		return "", domain.ErrNotFound
	}
	return p, nil
}

// Exists reports whether rel is a regular file.
func (s *LocalStore) Exists(rel string) bool {
	_, err := s.Path(rel)
	return err == nil
}

// Save writes r to dir/name, replacing any previous file. Returns the stored relative path.
func (s *LocalStore) Save(dir, name string, r io.Reader) (string, error) {
	base := filepath.Base(filepath.Clean("/" + name))
	if base == "/" || base == "." {
		return "", fmt.Errorf("%w: empty file name", domain.ErrInvalidInput)
	}
	rel := dir + "/" + base
	p, err := s.resolve(rel)
	if err != nil {
		return "", fmt.Errorf("%w: invalid file name", domain.ErrInvalidInput)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp: %w", err)
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write %s: %w", rel, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close %s: %w", rel, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("rename %s: %w", rel, err)
	}
	return "/" + rel, nil
}

// Delete removes rel. A missing file is ErrNotFound.
func (s *LocalStore) Delete(rel string) error {
	p, err := s.Path(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		return fmt.Errorf("delete %s: %w", rel, err)
	}
	return nil
}
