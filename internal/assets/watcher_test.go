package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mesh.obj")
	other := filepath.Join(dir, "other.obj")
	writeFile(t, path, []byte(triangleOBJ))
	writeFile(t, other, []byte(triangleOBJ))

	w, err := NewWatcher(nil)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Watch(path))

	require.NoError(t, os.WriteFile(other, []byte("# unrelated\n"), 0644))
	require.NoError(t, os.WriteFile(path, []byte(triangleOBJ+"# edited\n"), 0644))

	var got []string
	require.Eventually(t, func() bool {
		got = append(got, w.Poll()...)
		return len(got) > 0
	}, 5*time.Second, 20*time.Millisecond)

	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	for _, p := range got {
		assert.Equal(t, abs, p)
	}
}

func TestWatcherPollEmpty(t *testing.T) {
	w, err := NewWatcher(nil)
	require.NoError(t, err)
	defer w.Close()

	assert.Empty(t, w.Poll())
}

func TestWatcherMissingDir(t *testing.T) {
	w, err := NewWatcher(nil)
	require.NoError(t, err)
	defer w.Close()

	err = w.Watch(filepath.Join(t.TempDir(), "nope", "mesh.obj"))
	assert.Error(t, err)
}
