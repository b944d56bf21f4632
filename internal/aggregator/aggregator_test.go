package aggregator

import (
	"context"
	"testing"
	"time"

	"github.com/megaorm/megaorm-logger/internal/model"
)

func TestEPSCalculation(t *testing.T) {
	ch := make(chan model.LogEntry, 100)
	agg := New(ch, func() int64 { return 0 }, func() int64 { return 0 }, func() int { return 2 })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go agg.Start(ctx)

	// Send 10 entries quickly.
	for i := 0; i < 10; i++ {
		ch <- model.LogEntry{Date: "2024-10-11 10:00:00", Message: "test", Source: "app.log"}
	}

	// Wait for processing.
	time.Sleep(200 * time.Millisecond)

	stats := agg.Snapshot()
	if stats.TotalEntries != 10 {
		t.Errorf("expected 10 total entries, got %d", stats.TotalEntries)
	}
	if stats.EPS <= 0 {
		t.Errorf("expected positive EPS, got %f", stats.EPS)
	}

	cancel()
}

func TestSourceCounts(t *testing.T) {
	ch := make(chan model.LogEntry, 100)
	agg := New(ch, func() int64 { return 3 }, func() int64 { return 1 }, func() int { return 2 })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go agg.Start(ctx)

	// Send entries from different files.
	ch <- model.LogEntry{Message: "a", Source: "app.log"}
	ch <- model.LogEntry{Message: "b", Source: "app.log"}
	ch <- model.LogEntry{Message: "c", Source: "worker.log"}

	time.Sleep(200 * time.Millisecond)

	stats := agg.Snapshot()
	if stats.SourceCounts["app.log"] != 2 {
		t.Errorf("expected 2 from app.log, got %d", stats.SourceCounts["app.log"])
	}
	if stats.SourceCounts["worker.log"] != 1 {
		t.Errorf("expected 1 from worker.log, got %d", stats.SourceCounts["worker.log"])
	}
	if stats.DroppedEntries != 3 {
		t.Errorf("expected 3 dropped, got %d", stats.DroppedEntries)
	}
	if stats.SkippedBlocks != 1 {
		t.Errorf("expected 1 skipped, got %d", stats.SkippedBlocks)
	}
	if stats.FilesWatched != 2 {
		t.Errorf("expected 2 files watched, got %d", stats.FilesWatched)
	}

	cancel()
}
