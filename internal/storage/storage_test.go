package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreContract(t *testing.T) {
	backends := map[string]func(t *testing.T) Store{
		"file": func(t *testing.T) Store {
			s, err := NewFileStore(t.TempDir())
			require.NoError(t, err)
			return s
		},
		"badger": func(t *testing.T) Store {
			s, err := NewBadgerStore(t.TempDir())
			require.NoError(t, err)
			return s
		},
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			defer s.Close()

			_, ok, err := s.Get("scope1")
			require.NoError(t, err)
			assert.False(t, ok, "unwritten scope should not exist")

			require.NoError(t, s.Put("scope1", `{"v":1}`))
			doc, ok, err := s.Get("scope1")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, `{"v":1}`, doc)

			// Scopes are isolated from each other.
			require.NoError(t, s.Put("scope2", `{"v":2}`))
			doc, ok, err = s.Get("scope1")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, `{"v":1}`, doc)

			// Put replaces the whole document.
			require.NoError(t, s.Put("scope1", `{"v":3}`))
			doc, _, err = s.Get("scope1")
			require.NoError(t, err)
			assert.Equal(t, `{"v":3}`, doc)

			// Delete is idempotent.
			require.NoError(t, s.Delete("scope1"))
			require.NoError(t, s.Delete("scope1"))
			_, ok, err = s.Get("scope1")
			require.NoError(t, err)
			assert.False(t, ok)

			doc, ok, err = s.Get("scope2")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, `{"v":2}`, doc)
		})
	}
}

func TestFileStoreHostileScopeNames(t *testing.T) {
	root := t.TempDir()
	s, err := NewFileStore(root)
	require.NoError(t, err)

	require.NoError(t, s.Put("../escape", "doc"))
	doc, ok, err := s.Get("../escape")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "doc", doc)

	// Nothing may be written outside the root directory.
	_, err = os.Stat(filepath.Join(filepath.Dir(root), "escape.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileStorePutLeavesNoTempFiles(t *testing.T) {
	root := t.TempDir()
	s, err := NewFileStore(root)
	require.NoError(t, err)
	require.NoError(t, s.Put("scope", "doc"))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "scope.json", entries[0].Name())
}
