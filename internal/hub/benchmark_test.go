package hub

import (
	"context"
	"fmt"
	"testing"

	"github.com/megaorm/megaorm-logger/internal/model"
)

// BenchmarkHubBroadcast measures the cost of broadcasting to N subscribers.
func BenchmarkHubBroadcast1(b *testing.B)  { benchHubBroadcast(b, 1) }
func BenchmarkHubBroadcast5(b *testing.B)  { benchHubBroadcast(b, 5) }
func BenchmarkHubBroadcast10(b *testing.B) { benchHubBroadcast(b, 10) }

func benchHubBroadcast(b *testing.B, numSubs int) {
	input := make(chan model.RawBlock, b.N+1)
	h := New(input)

	// Create subscribers and drain them.
	for i := 0; i < numSubs; i++ {
		ch := h.Subscribe()
		go func() {
			for range ch {
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Start(ctx)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		input <- model.RawBlock{
			Text:   fmt.Sprintf("\n[2024-10-11 10:00:00] benchmark event %d\n\n", i),
			Source: "bench.log",
		}
	}

	cancel()
}
