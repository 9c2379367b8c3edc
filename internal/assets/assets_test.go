package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/scenegraph/internal/engine/mesh"
)

const triangleOBJ = "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func TestResolveOrder(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(second, "a.txt"), []byte("second"))
	writeFile(t, filepath.Join(second, "b.txt"), []byte("second"))
	writeFile(t, filepath.Join(first, "a.txt"), []byte("first"))

	m := NewManager([]string{first, second}, nil)

	p, err := m.Resolve("a.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(first, "a.txt"), p)

	p, err = m.Resolve("b.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(second, "b.txt"), p)

	abs := filepath.Join(second, "b.txt")
	p, err = m.Resolve(abs)
	require.NoError(t, err)
	assert.Equal(t, abs, p)
}

func TestResolveMissing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
	m := NewManager([]string{dir}, nil)

	for _, name := range []string{"absent.obj", "sub", filepath.Join(dir, "absent.obj")} {
		_, err := m.Resolve(name)
		assert.ErrorIs(t, err, ErrNotFound, name)
		assert.ErrorIs(t, err, fs.ErrNotExist, name)
	}
}

func TestLoadCachesUntilInvalidated(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	writeFile(t, path, []byte("v1"))

	m := NewManager([]string{dir}, nil)
	data, err := m.Load("data.bin")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(data))

	writeFile(t, path, []byte("v2"))
	data, err = m.Load("data.bin")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(data))

	hits, misses := m.CacheStats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)

	m.Invalidate("data.bin")
	data, err = m.Load("data.bin")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))

	m.Close()
	hits, misses = m.CacheStats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
}

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.SetRGBA(1, 2, color.RGBA{R: 9, G: 8, B: 7, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))
	writeFile(t, filepath.Join(dir, "tex", "cube.png"), buf.Bytes())

	m := NewManager([]string{dir}, nil)
	img, err := m.LoadImage("tex/cube.png")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 9, G: 8, B: 7, A: 255}, img.RGBAAt(1, 2))

	sky, err := m.LoadImage("builtin:sky")
	require.NoError(t, err)
	assert.Equal(t, 4*sky.Bounds().Dy()/3, sky.Bounds().Dx())

	_, err = m.LoadImage("builtin:missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.LoadImage("missing.png")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadMesh(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "mesh", "tri.obj"), []byte(triangleOBJ))
	writeFile(t, filepath.Join(dir, "mesh", "bad.obj"), []byte("v 0 0\n"))

	m := NewManager([]string{dir}, nil)
	tri, err := m.LoadMesh("mesh/tri.obj")
	require.NoError(t, err)
	assert.Equal(t, "tri.obj", tri.Name)
	assert.Equal(t, 1, tri.TriangleCount())

	_, err = m.LoadMesh("mesh/bad.obj")
	assert.ErrorIs(t, err, mesh.ErrMalformed)

	_, err = m.LoadMesh("mesh/none.obj")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestAddDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "late.txt"), []byte("x"))

	m := NewManager(nil, nil)
	_, err := m.Resolve("late.txt")
	require.Error(t, err)

	m.AddDir(dir)
	_, err = m.Resolve("late.txt")
	assert.NoError(t, err)
}
