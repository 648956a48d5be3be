package preset

import (
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DirWatcher polls a directory for added, removed or modified *.yaml files
// and calls onChange with the affected path.
type DirWatcher struct {
	Dir      string
	Interval time.Duration
	onChange func(string)

	stopCh    chan struct{}
	stopOnce  sync.Once
	lastMTime map[string]time.Time
}

// NewDirWatcher creates a watcher for dir. Call Start to begin polling.
func NewDirWatcher(dir string, interval time.Duration, onChange func(string)) *DirWatcher {
	return &DirWatcher{
		Dir:       dir,
		Interval:  interval,
		onChange:  onChange,
		stopCh:    make(chan struct{}),
		lastMTime: make(map[string]time.Time),
	}
}

// Start primes the mtime table and polls in a goroutine.
func (w *DirWatcher) Start() {
	w.scan(true)
	ticker := time.NewTicker(w.Interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.scan(false)
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop terminates polling. It is safe to call more than once.
func (w *DirWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

func (w *DirWatcher) scan(prime bool) {
	seen := make(map[string]time.Time)
	entries, err := os.ReadDir(w.Dir)
	if err == nil {
		for _, e := range entries {
			if e.IsDir() || filepath.Ext(e.Name()) != fileExt {
				continue
			}
			fi, err := e.Info()
			if err != nil {
				continue
			}
			seen[filepath.Join(w.Dir, e.Name())] = fi.ModTime()
		}
	}

	var changed []string
	for p, mt := range seen {
		last, ok := w.lastMTime[p]
		if !ok || !mt.Equal(last) {
			changed = append(changed, p)
		}
	}
	for p := range w.lastMTime {
		if _, ok := seen[p]; !ok {
			changed = append(changed, p)
		}
	}
	w.lastMTime = seen

	if prime || w.onChange == nil {
		return
	}
	for _, p := range changed {
		w.onChange(p)
	}
}
