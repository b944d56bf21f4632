package hub

import (
	"context"
	"log"
	"sync"
	"sync/atomic"

	"github.com/megaorm/megaorm-logger/internal/logstore"
	"github.com/megaorm/megaorm-logger/internal/model"
)

const subscriberBuffer = 1024

// Hub receives raw blocks, parses them, and broadcasts LogEntry values to
// all subscribers. Blocks without a valid bracketed timestamp are dropped,
// matching the tolerant parsing of the store itself.
type Hub struct {
	input       <-chan model.RawBlock
	mu          sync.RWMutex
	subscribers []chan model.LogEntry
	dropped     atomic.Int64
	skipped     atomic.Int64
}

// New creates a Hub that reads from the given block channel.
func New(input <-chan model.RawBlock) *Hub {
	return &Hub{input: input}
}

// Subscribe returns a buffered channel that will receive parsed entries.
// Multiple consumers can subscribe; each gets a copy of every entry.
func (h *Hub) Subscribe() <-chan model.LogEntry {
	ch := make(chan model.LogEntry, subscriberBuffer)
	h.mu.Lock()
	h.subscribers = append(h.subscribers, ch)
	h.mu.Unlock()
	return ch
}

// Dropped returns the total number of entries dropped due to slow consumers.
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

// Skipped returns the number of malformed blocks discarded during parsing.
func (h *Hub) Skipped() int64 {
	return h.skipped.Load()
}

// Start begins reading from the input channel, parsing, and broadcasting.
// Blocks until the context is cancelled or the input channel is closed.
func (h *Hub) Start(ctx context.Context) {
	defer h.closeAll()

	for {
		select {
		case <-ctx.Done():
			return
		case block, ok := <-h.input:
			if !ok {
				return
			}
			entry, ok := logstore.ParseBlock(block)
			if !ok {
				h.skipped.Add(1)
				continue
			}
			h.broadcast(entry)
		}
	}
}

// broadcast sends an entry to all subscribers.
// If a subscriber's channel is full, the entry is dropped for that subscriber.
func (h *Hub) broadcast(entry model.LogEntry) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subscribers {
		select {
		case ch <- entry:
		default:
			h.dropped.Add(1)
			log.Printf("hub: dropped entry for slow consumer (total dropped: %d)", h.Dropped())
		}
	}
}

// closeAll closes all subscriber channels.
func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subscribers {
		close(ch)
	}
	h.subscribers = nil
}
