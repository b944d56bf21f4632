package tailer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/megaorm/megaorm-logger/internal/logstore"
	"github.com/megaorm/megaorm-logger/internal/watcher"
)

func TestTailNewBlocks(t *testing.T) {
	// Create a temp log file with one pre-existing block.
	dir := t.TempDir()
	logPath := filepath.Join(dir, "app.log")
	existing := logstore.FormatBlock("2024-10-11 10:00:00", "old entry")
	if err := os.WriteFile(logPath, []byte(existing), 0644); err != nil {
		t.Fatal(err)
	}

	// Set up watcher, checkpoint, and tailer.
	w, err := watcher.New([]string{logPath})
	if err != nil {
		t.Fatal(err)
	}

	ckpt, err := NewCheckpoint(filepath.Join(dir, "state.json"))
	if err != nil {
		t.Fatal(err)
	}

	tail := New(w, ckpt)

	ctx, cancel := context.WithCancel(context.Background())

	go w.Start(ctx)
	go tail.Start(ctx)

	// Give the tailer a moment to initialize and seek to end.
	time.Sleep(300 * time.Millisecond)

	// Append a complete new block — only this one should be picked up.
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = f.WriteString(logstore.FormatBlock("2024-10-11 11:00:00", "fresh entry"))
	f.Close()

	select {
	case block := <-tail.Blocks():
		if !strings.Contains(block.Text, "fresh entry") {
			t.Errorf("expected the appended block, got %q", block.Text)
		}
		if strings.Contains(block.Text, "old entry") {
			t.Errorf("expected pre-existing content to be skipped, got %q", block.Text)
		}
		if block.Source != logPath {
			t.Errorf("expected source %q, got %q", logPath, block.Source)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for block")
	}

	// Cancel and allow goroutines to stop before TempDir cleanup.
	cancel()
	time.Sleep(200 * time.Millisecond)
}

func TestTailLazyCreatedFile(t *testing.T) {
	// The log file does not exist yet; the first append creates it.
	dir := t.TempDir()
	logPath := filepath.Join(dir, "app.log")

	w, err := watcher.New([]string{logPath})
	if err != nil {
		t.Fatal(err)
	}
	ckpt, err := NewCheckpoint(filepath.Join(dir, "state.json"))
	if err != nil {
		t.Fatal(err)
	}
	tail := New(w, ckpt)

	ctx, cancel := context.WithCancel(context.Background())

	go w.Start(ctx)
	go tail.Start(ctx)

	time.Sleep(300 * time.Millisecond)

	store, err := logstore.New(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Append("born just now"); err != nil {
		t.Fatal(err)
	}

	select {
	case block := <-tail.Blocks():
		if !strings.Contains(block.Text, "born just now") {
			t.Errorf("expected the first block, got %q", block.Text)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for block from lazily created file")
	}

	cancel()
	time.Sleep(200 * time.Millisecond)
}

func TestDrainSplitsCompleteBlocks(t *testing.T) {
	tail := &Tailer{}
	tf := &trackedFile{
		pending: logstore.FormatBlock("2024-10-11 10:00:00", "one") +
			logstore.Delimiter + "\n[2024-10-11 10:00:01] two\n", // no closing blank line yet
	}

	got := tail.drain(tf)
	if len(got) != 1 {
		t.Fatalf("expected 1 complete block, got %d", len(got))
	}
	if !strings.Contains(got[0], "one") {
		t.Errorf("expected first block, got %q", got[0])
	}
	if !strings.HasPrefix(tf.pending, logstore.Delimiter) {
		t.Errorf("expected partial block kept pending, got %q", tf.pending)
	}

	// The closing blank line arrives; the second block completes.
	tf.pending += "\n"
	got = tail.drain(tf)
	if len(got) != 1 {
		t.Fatalf("expected the completed block, got %d", len(got))
	}
	if !strings.Contains(got[0], "two") {
		t.Errorf("expected second block, got %q", got[0])
	}
	if tf.pending != "" {
		t.Errorf("expected empty pending buffer, got %q", tf.pending)
	}
}

func TestCheckpointSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ckpt.json")

	// Create and save checkpoint.
	c1, err := NewCheckpoint(path)
	if err != nil {
		t.Fatal(err)
	}
	c1.Set("/var/log/app.log", 42)
	c1.Set("/var/log/err.log", 1024)
	if err := c1.Save(); err != nil {
		t.Fatal(err)
	}

	// Load checkpoint in a new instance.
	c2, err := NewCheckpoint(path)
	if err != nil {
		t.Fatal(err)
	}

	v1, ok := c2.Get("/var/log/app.log")
	if !ok || v1 != 42 {
		t.Errorf("expected 42, got %d (found=%v)", v1, ok)
	}

	v2, ok := c2.Get("/var/log/err.log")
	if !ok || v2 != 1024 {
		t.Errorf("expected 1024, got %d (found=%v)", v2, ok)
	}

	_, ok = c2.Get("/nonexistent")
	if ok {
		t.Error("expected missing key to return false")
	}
}
