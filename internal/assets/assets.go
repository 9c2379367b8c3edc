// Package assets resolves, loads and caches files from the configured asset directories.
package assets

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/scenegraph/internal/engine/mesh"
	"github.com/Faultbox/scenegraph/internal/engine/texture"
)

// ErrNotFound is returned when no search directory contains the asset.
// It is reported together with fs.ErrNotExist.
var ErrNotFound = errors.New("asset not found")

// Manager loads assets from a list of directories.
// Directories are searched in order; the first match wins.
type Manager struct {
	dirs  []string
	cache *Cache
	log   *zap.Logger
	mu    sync.RWMutex
}

// NewManager creates a manager searching dirs. A nil logger discards output.
func NewManager(dirs []string, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		dirs:  append([]string(nil), dirs...),
		cache: NewCache(),
		log:   log,
	}
}

// AddDir appends a search directory.
func (m *Manager) AddDir(dir string) {
	m.mu.Lock()
	m.dirs = append(m.dirs, dir)
	m.mu.Unlock()
}

// Resolve returns the path of the first file named name in the search directories.
// Absolute names are checked as is.
func (m *Manager) Resolve(name string) (string, error) {
	if filepath.IsAbs(name) {
		if isFile(name) {
			return name, nil
		}
		return "", fmt.Errorf("%w: %s: %w", ErrNotFound, name, fs.ErrNotExist)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, dir := range m.dirs {
		p := filepath.Join(dir, name)
		if isFile(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s: %w", ErrNotFound, name, fs.ErrNotExist)
}

func isFile(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

// Load returns the contents of name, reading it at most once until invalidated.
func (m *Manager) Load(name string) ([]byte, error) {
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	path, err := m.Resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	m.cache.Set(name, data)
	m.log.Debug("asset loaded", zap.String("name", name), zap.String("path", path), zap.Int("bytes", len(data)))
	return data, nil
}

// Invalidate drops name from the cache so the next Load reads it again.
func (m *Manager) Invalidate(name string) {
	m.cache.Delete(name)
}

// LoadImage decodes an image asset. Names with the "builtin:" prefix are generated.
func (m *Manager) LoadImage(name string) (*image.RGBA, error) {
	if texture.IsBuiltin(name) {
		img, ok := texture.Builtin(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return img, nil
	}

	data, err := m.Load(name)
	if err != nil {
		return nil, err
	}
	img, err := texture.Decode(name, data)
	if err != nil {
		return nil, fmt.Errorf("image %s: %w", name, err)
	}
	return img, nil
}

// LoadMesh parses an OBJ mesh asset. Meshes are read fresh on every call.
func (m *Manager) LoadMesh(name string) (*mesh.Mesh, error) {
	path, err := m.Resolve(name)
	if err != nil {
		return nil, err
	}
	return mesh.LoadOBJ(path, m.log.Named("obj"))
}

// CacheStats returns cache hit and miss counts.
func (m *Manager) CacheStats() (hits, misses int) {
	return m.cache.Stats()
}

// Close drops all cached data.
func (m *Manager) Close() {
	m.cache.Clear()
}

// Cache is an in-memory store for loaded asset bytes.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	hits   int
	misses int
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Delete removes an item.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

// Clear empties the cache and resets statistics.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
