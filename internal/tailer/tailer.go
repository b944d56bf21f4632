package tailer

import (
	"context"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/megaorm/megaorm-logger/internal/logstore"
	"github.com/megaorm/megaorm-logger/internal/model"
	"github.com/megaorm/megaorm-logger/internal/watcher"
)

// Tailer reads newly appended bytes from watched log files, splits them on
// the block delimiter, and emits complete blocks as RawBlock values.
type Tailer struct {
	mu     sync.Mutex
	files  map[string]*trackedFile
	out    chan model.RawBlock
	ckpt   *Checkpoint
	events <-chan watcher.Event
	watch  *watcher.Watcher
}

type trackedFile struct {
	path    string
	offset  int64
	pending string // bytes read but not yet forming a complete block
}

// New creates a Tailer that reads events from the given Watcher.
func New(w *watcher.Watcher, ckpt *Checkpoint) *Tailer {
	return &Tailer{
		files:  make(map[string]*trackedFile),
		out:    make(chan model.RawBlock, 512),
		ckpt:   ckpt,
		events: w.Events,
		watch:  w,
	}
}

// Blocks returns the channel where complete raw blocks are sent.
func (t *Tailer) Blocks() <-chan model.RawBlock {
	return t.out
}

// Start begins processing watcher events. Blocks until context is cancelled.
func (t *Tailer) Start(ctx context.Context) {
	defer close(t.out)

	// Register all initially watched files, resuming from checkpoints.
	for _, p := range t.watch.Paths() {
		t.track(p)
	}

	// Periodic checkpoint save.
	saveTicker := time.NewTicker(5 * time.Second)
	defer saveTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.saveCheckpoint()
			return

		case ev, ok := <-t.events:
			if !ok {
				return
			}
			t.handleEvent(ev)

		case <-saveTicker.C:
			t.saveCheckpoint()
		}
	}
}

// handleEvent dispatches watcher events to the appropriate handler.
func (t *Tailer) handleEvent(ev watcher.Event) {
	switch {
	case ev.Op&fsnotify.Write != 0:
		t.readNewBlocks(ev.Path)

	case ev.Op&fsnotify.Create != 0:
		// File appeared, possibly for the first time or after rotation.
		t.reset(ev.Path)
		t.readNewBlocks(ev.Path)

	case ev.Op&fsnotify.Remove != 0, ev.Op&fsnotify.Rename != 0:
		// The directory stays watched, so a recreated file shows up as
		// a Create event. Just forget the stale offset.
		t.reset(ev.Path)
	}
}

// track registers a file for tailing, resuming from the checkpointed
// offset. Unknown files start at the current end so only new blocks are
// emitted.
func (t *Tailer) track(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.files[path]; exists {
		return
	}

	var offset int64
	if saved, ok := t.ckpt.Get(path); ok {
		offset = saved
	} else if info, err := os.Stat(path); err == nil {
		offset = info.Size()
	}

	t.files[path] = &trackedFile{path: path, offset: offset}
}

// readNewBlocks reads from the last offset to EOF and emits every block
// that has been terminated by its trailing blank line or by the next
// delimiter.
func (t *Tailer) readNewBlocks(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tf, ok := t.files[path]
	if !ok {
		tf = &trackedFile{path: path}
		t.files[path] = tf
	}

	f, err := os.Open(path)
	if err != nil {
		log.Printf("cannot open %s: %v", path, err)
		return
	}
	defer f.Close()

	// A shrunken file means it was truncated; start over.
	if info, err := f.Stat(); err == nil && info.Size() < tf.offset {
		tf.offset = 0
		tf.pending = ""
	}

	if _, err := f.Seek(tf.offset, io.SeekStart); err != nil {
		log.Printf("seek error on %s: %v", path, err)
		return
	}

	data, err := io.ReadAll(f)
	if err != nil {
		log.Printf("read error on %s: %v", path, err)
		return
	}

	tf.offset += int64(len(data))
	tf.pending += string(data)
	t.ckpt.Set(path, tf.offset)

	for _, seg := range t.drain(tf) {
		t.out <- model.RawBlock{Text: seg, Source: path}
	}
}

// drain extracts all complete blocks from the pending buffer. A segment is
// complete once the next delimiter has arrived, or once it carries its
// terminating blank line.
func (t *Tailer) drain(tf *trackedFile) []string {
	segments := strings.Split(tf.pending, logstore.Delimiter)

	// The final segment is only complete if its closing blank line is in.
	last := len(segments) - 1
	switch {
	case strings.HasSuffix(segments[last], "\n\n"):
		tf.pending = ""
	case last == 0:
		// No delimiter yet, keep accumulating.
		return nil
	default:
		tf.pending = logstore.Delimiter + segments[last]
		segments = segments[:last]
	}

	complete := make([]string, 0, len(segments))
	for _, seg := range segments {
		if strings.TrimSpace(seg) == "" {
			continue
		}
		complete = append(complete, seg)
	}
	return complete
}

// reset forgets the tracked state for a path so the next event re-reads
// from the start of the (re)created file.
func (t *Tailer) reset(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if tf, ok := t.files[path]; ok {
		tf.offset = 0
		tf.pending = ""
	}
	t.ckpt.Set(path, 0)
}

// saveCheckpoint persists the current offsets to disk.
func (t *Tailer) saveCheckpoint() {
	if err := t.ckpt.Save(); err != nil {
		log.Printf("checkpoint save failed: %v", err)
	}
}
