package assets

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reports changes to individual files.
// Parent directories are watched so files replaced by rename are still seen.
type Watcher struct {
	fw      *fsnotify.Watcher
	log     *zap.Logger
	changes chan string

	mu    sync.Mutex
	files map[string]struct{}
	dirs  map[string]struct{}

	done chan struct{}
	wg   sync.WaitGroup
}

// NewWatcher starts a file watcher. A nil logger discards output.
func NewWatcher(log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	w := &Watcher{
		fw:      fw,
		log:     log,
		changes: make(chan string, 16),
		files:   make(map[string]struct{}),
		dirs:    make(map[string]struct{}),
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Watch starts reporting changes to path.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.dirs[dir]; !ok {
		if err := w.fw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		w.dirs[dir] = struct{}{}
	}
	w.files[abs] = struct{}{}
	w.log.Debug("watching file", zap.String("path", abs))
	return nil
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Clean(ev.Name)
			w.mu.Lock()
			_, watched := w.files[name]
			w.mu.Unlock()
			if !watched {
				continue
			}
			select {
			case w.changes <- name:
			default:
				// buffer full, a change is already pending
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Warn("file watcher error", zap.Error(err))
		}
	}
}

// Changes returns the channel of changed absolute paths.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Poll drains pending changes without blocking and returns each path once.
func (w *Watcher) Poll() []string {
	var out []string
	seen := make(map[string]struct{})
	for {
		select {
		case p := <-w.changes:
			if _, dup := seen[p]; !dup {
				seen[p] = struct{}{}
				out = append(out, p)
			}
		default:
			return out
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.fw.Close()
	w.wg.Wait()
	return err
}
