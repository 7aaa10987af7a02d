package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mkaminski/websave"
	"github.com/mkaminski/websave/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_EnsureDir(t *testing.T) {
	t.Parallel()

	t.Run("creates nested directories", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "a", "b", "c")
		w := fs.NewWriter()

		require.NoError(t, w.EnsureDir(dir))

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("no-op for existing directory", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter()
		assert.NoError(t, w.EnsureDir(t.TempDir()))
	})

	t.Run("rejects empty path", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter()
		err := w.EnsureDir("")
		require.Error(t, err)
		assert.Equal(t, websave.EINVALID, websave.ErrorCode(err))
	})

	t.Run("fails when a file occupies the path", func(t *testing.T) {
		t.Parallel()

		blocker := filepath.Join(t.TempDir(), "occupied")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

		w := fs.NewWriter()
		err := w.EnsureDir(blocker)
		require.Error(t, err)
		assert.Equal(t, websave.EINTERNAL, websave.ErrorCode(err))
	})
}

func TestWriter_Exists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "example.com.pdf"), []byte("x"), 0644))

	w := fs.NewWriter()

	assert.True(t, w.Exists(dir, "example.com", []string{"pdf"}))
	assert.True(t, w.Exists(dir, "example.com", []string{"pdf", "md"}))
	assert.False(t, w.Exists(dir, "example.com", []string{"md"}))
	assert.False(t, w.Exists(dir, "other.com", []string{"pdf"}))
}

func TestWriter_WriteFile(t *testing.T) {
	t.Parallel()

	t.Run("writes and returns the path", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter()

		path, err := w.WriteFile(dir, "example.com", "md", []byte("# hello"))

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "example.com.md"), path)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "# hello", string(content))
	})

	t.Run("fails for missing directory", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter()
		_, err := w.WriteFile(filepath.Join(t.TempDir(), "missing"), "stem", "pdf", []byte("x"))
		require.Error(t, err)
		assert.Equal(t, websave.EINTERNAL, websave.ErrorCode(err))
	})
}
