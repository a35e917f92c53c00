package animations

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/automoto/gaitkit/internal/log"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a library directory whenever one of its YAML files
// changes and publishes each successfully parsed library on Libraries.
type Watcher struct {
	watcher   *fsnotify.Watcher
	dir       string
	Libraries chan *Library
	Errors    chan error
	closeCh   chan struct{}
	once      sync.Once
	debounce  time.Duration
}

// NewWatcher watches dir and its animation subdirectories.
func NewWatcher(dir string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, d := range []string{dir, filepath.Join(dir, AnimationsDir), filepath.Join(dir, ReachPosesDir)} {
		if _, err := os.Stat(d); err != nil {
			continue
		}
		if err := w.Add(d); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher:   w,
		dir:       dir,
		Libraries: make(chan *Library, 1),
		Errors:    make(chan error, 1),
		closeCh:   make(chan struct{}),
		debounce:  100 * time.Millisecond,
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isLibraryFile(event.Name) {
				continue
			}
			pending = time.After(w.debounce)
		case <-pending:
			pending = nil
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.publishErr(err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	lib, err := Load(os.DirFS(w.dir), ".")
	if err != nil {
		log.Warn("animation library reload failed", zap.String("dir", w.dir), zap.Error(err))
		w.publishErr(err)
		return
	}
	// keep only the newest library if the consumer has not caught up
	select {
	case <-w.Libraries:
	default:
	}
	select {
	case w.Libraries <- lib:
	case <-w.closeCh:
	}
}

func (w *Watcher) publishErr(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}

func isLibraryFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
