package logstore

import (
	"regexp"
	"strings"

	"github.com/megaorm/megaorm-logger/internal/model"
)

// Delimiter is the literal line separating blocks in the log file.
const Delimiter = "<-- LOG -->"

// DateLayout is the Go time layout for entry timestamps
// ("YYYY-MM-DD HH:MM:SS", always UTC, second precision).
const DateLayout = "2006-01-02 15:04:05"

var (
	// stampRe locates the bracketed timestamp inside a block.
	stampRe = regexp.MustCompile(`\[(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})\]`)

	// dateRe validates a bare timestamp string (filter thresholds).
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)
)

// FormatBlock serializes one entry as its on-disk block:
// the delimiter line, the bracketed timestamp plus message, and a
// trailing blank line.
func FormatBlock(date, message string) string {
	return Delimiter + "\n[" + date + "] " + message + "\n\n"
}

// ParseBlock extracts an entry from one delimiter-separated segment.
// Segments without a bracketed timestamp are malformed; ok is false and
// the segment should be dropped.
func ParseBlock(block model.RawBlock) (model.LogEntry, bool) {
	loc := stampRe.FindStringSubmatchIndex(block.Text)
	if loc == nil {
		return model.LogEntry{}, false
	}

	date := block.Text[loc[2]:loc[3]]
	// Message is everything around the bracketed match, trimmed of the
	// whitespace the file format introduces.
	message := strings.TrimSpace(block.Text[:loc[0]] + block.Text[loc[1]:])

	return model.LogEntry{Date: date, Message: message, Source: block.Source}, true
}

// ParseText splits raw file content on the delimiter and parses every
// segment. Empty, whitespace-only, and malformed segments are silently
// dropped; surviving entries keep their file order.
func ParseText(text, source string) []model.LogEntry {
	segments := strings.Split(text, Delimiter)

	entries := make([]model.LogEntry, 0, len(segments))
	for _, seg := range segments {
		if strings.TrimSpace(seg) == "" {
			continue
		}
		if entry, ok := ParseBlock(model.RawBlock{Text: seg, Source: source}); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// ValidDate reports whether s matches the fixed "YYYY-MM-DD HH:MM:SS"
// shape. No calendar validation beyond the digit pattern is applied.
func ValidDate(s string) bool {
	return dateRe.MatchString(s)
}
