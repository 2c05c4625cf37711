package storage_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berlivn/eriflex-api/internal/domain"
	"github.com/berlivn/eriflex-api/internal/infrastructure/storage"
)

func newStore(t *testing.T) *storage.LocalStore {
	t.Helper()
	s, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestLocalStore_SaveAndPath(t *testing.T) {
	s := newStore(t)

	rel, err := s.Save("products", "../../etc/GPS-1700-1-1.jpg", strings.NewReader("img"))
	require.NoError(t, err)
	assert.Equal(t, "/products/GPS-1700-1-1.jpg", rel)

	p, err := s.Path(rel)
	require.NoError(t, err)
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "img", string(data))
	assert.True(t, s.Exists("products/GPS-1700-1-1.jpg"))

	_, err = s.Save("products", "GPS-1700-1-1.jpg", strings.NewReader("new"))
	require.NoError(t, err)
	data, err = os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestLocalStore_PathRejectsEscapes(t *testing.T) {
	s := newStore(t)
	outside := filepath.Join(filepath.Dir(s.Root()), "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o600))

	for _, p := range []string{"", "/", "..", "../secret.txt", "products/../../secret.txt", "products"} {
		_, err := s.Path(p)
		assert.ErrorIs(t, err, domain.ErrNotFound, p)
	}
}

func TestLocalStore_Delete(t *testing.T) {
	s := newStore(t)
	rel, err := s.Save("documents", "GPS-1700-1-doc.pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(rel))
	assert.False(t, s.Exists(rel))
	assert.ErrorIs(t, s.Delete(rel), domain.ErrNotFound)
}

func TestLocalStore_SaveRejectsEmptyName(t *testing.T) {
	s := newStore(t)
	_, err := s.Save("products", "", strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
