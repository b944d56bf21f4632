package watcher

import (
	"context"
	"log"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// Event represents a change to a tracked log file.
type Event struct {
	Path string
	Op   fsnotify.Op
}

// Watcher monitors log files for changes using OS-level notifications.
// It watches the parent directory of each target, so a log file that does
// not exist yet (created lazily on first append) is still picked up.
type Watcher struct {
	fsw     *fsnotify.Watcher
	Events  chan Event
	targets map[string]bool
}

// New creates a Watcher for the given glob patterns. Patterns are expanded
// at startup via doublestar; a pattern with no glob metacharacters that
// matches nothing is kept as a literal path, watched for creation.
func New(patterns []string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:     fsw,
		Events:  make(chan Event, 256),
		targets: make(map[string]bool),
	}

	dirs := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := expandGlob(pattern)
		if err != nil {
			log.Printf("warning: failed to expand pattern %q: %v", pattern, err)
			continue
		}
		if len(matches) == 0 && !hasMeta(pattern) {
			// Literal path to a file that may not exist yet.
			matches = []string{pattern}
		}
		for _, m := range matches {
			abs, _ := filepath.Abs(m)
			w.targets[abs] = true
			dirs[filepath.Dir(abs)] = true
		}
	}

	for d := range dirs {
		if err := fsw.Add(d); err != nil {
			log.Printf("warning: cannot watch %s: %v", d, err)
		}
	}

	return w, nil
}

// Start begins listening for file events. It blocks until the context is
// cancelled. Directory events for untracked files are filtered out.
func (w *Watcher) Start(ctx context.Context) {
	defer w.fsw.Close()
	defer close(w.Events)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			abs, _ := filepath.Abs(ev.Name)
			if !w.targets[abs] {
				continue
			}
			switch {
			case ev.Op&fsnotify.Write != 0,
				ev.Op&fsnotify.Create != 0,
				ev.Op&fsnotify.Remove != 0,
				ev.Op&fsnotify.Rename != 0:
				w.Events <- Event{Path: abs, Op: ev.Op}
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("watcher error: %v", err)
		}
	}
}

// Paths returns the tracked log file paths.
func (w *Watcher) Paths() []string {
	paths := make([]string, 0, len(w.targets))
	for p := range w.targets {
		paths = append(paths, p)
	}
	return paths
}

// hasMeta reports whether the pattern contains glob metacharacters.
func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// expandGlob resolves a glob pattern to matching file paths.
// Supports recursive patterns like /var/log/**/*.log via doublestar.
func expandGlob(pattern string) ([]string, error) {
	return doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
}
