package logstore

import (
	"fmt"
	"strings"
	"testing"

	"github.com/megaorm/megaorm-logger/internal/model"
)

// BenchmarkParseText measures parsing throughput over a large log file.
func BenchmarkParseText(b *testing.B) {
	var sb strings.Builder
	for i := 0; i < 1000; i++ {
		sb.WriteString(FormatBlock("2024-10-11 10:00:00", fmt.Sprintf("request %d completed", i)))
	}
	text := sb.String()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		ParseText(text, "bench.log")
	}
}

// BenchmarkParseBlock measures single-block parsing throughput.
func BenchmarkParseBlock(b *testing.B) {
	block := "\n[2024-10-11 10:00:00] request completed in 42ms\n\n"

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		ParseBlock(model.RawBlock{Text: block, Source: "bench.log"})
	}
}

// BenchmarkFormatBlock measures block serialization throughput.
func BenchmarkFormatBlock(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		FormatBlock("2024-10-11 10:00:00", "request completed in 42ms")
	}
}
