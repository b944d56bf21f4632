// Package logstore implements the append-only text log file manager: it
// appends timestamped messages to a flat file, parses the file back into
// structured entries, filters entries by date, and can truncate the file.
//
// The store holds no open handle and caches nothing; every operation is a
// single read or write against durable storage. It provides no locking or
// mutual exclusion: concurrent appends to the same path race at the
// filesystem layer and may interleave. A caller that needs coordination
// must impose it externally.
package logstore

import (
	"fmt"
	"time"

	"github.com/megaorm/megaorm-logger/internal/model"
	"github.com/megaorm/megaorm-logger/internal/storage"
)

// LogStore manages one append-only log file. The path is fixed at
// construction; the backing file is created lazily on first append.
type LogStore struct {
	path string
	fs   storage.Storage
}

// New creates a LogStore for the given file path, backed by the OS
// filesystem. The file is not touched; it may not exist yet.
func New(path string) (*LogStore, error) {
	return NewWithStorage(path, storage.NewOS())
}

// NewWithStorage is like New but with an explicit storage backend.
func NewWithStorage(path string, fs storage.Storage) (*LogStore, error) {
	if path == "" {
		return nil, newError("log file path must not be empty")
	}
	return &LogStore{path: path, fs: fs}, nil
}

// Path returns the configured log file path. No I/O is performed.
func (s *LogStore) Path() string {
	return s.path
}

// Append writes one entry to the end of the file, creating the file if
// absent. The entry is stamped with the current UTC wall-clock time,
// truncated to seconds. Prior content is untouched.
func (s *LogStore) Append(message string) error {
	date := time.Now().UTC().Format(DateLayout)

	if err := s.fs.AppendFile(s.path, FormatBlock(date, message)); err != nil {
		return wrapError(err)
	}
	return nil
}

// Truncate replaces the entire file content with an empty string,
// creating the file if absent.
func (s *LogStore) Truncate() error {
	if err := s.fs.WriteFile(s.path, ""); err != nil {
		return wrapError(err)
	}
	return nil
}

// Entries reads the whole file and parses it into entries, in append
// order. A missing file is a read failure, not an empty result.
// Malformed blocks are dropped silently.
func (s *LogStore) Entries() ([]model.LogEntry, error) {
	text, err := s.fs.ReadFile(s.path)
	if err != nil {
		return nil, wrapError(err)
	}
	return ParseText(text, s.path), nil
}

// Messages returns the message of every entry, preserving order.
// Failures from Entries propagate unchanged.
func (s *LogStore) Messages() ([]string, error) {
	entries, err := s.Entries()
	if err != nil {
		return nil, err
	}

	messages := make([]string, len(entries))
	for i, e := range entries {
		messages[i] = e.Message
	}
	return messages, nil
}

// EntriesFrom returns the entries strictly after the given threshold.
// The threshold must match the "YYYY-MM-DD HH:MM:SS" shape; validation
// runs before any I/O. Entries stamped exactly at the threshold are
// excluded.
func (s *LogStore) EntriesFrom(threshold string) ([]model.LogEntry, error) {
	if !ValidDate(threshold) {
		return nil, newError(fmt.Sprintf("invalid date %q, expected format %q", threshold, "YYYY-MM-DD HH:MM:SS"))
	}

	entries, err := s.Entries()
	if err != nil {
		return nil, err
	}

	// Fixed-width UTC timestamps compare lexicographically in
	// chronological order, so no time.Parse round trip is needed.
	kept := make([]model.LogEntry, 0, len(entries))
	for _, e := range entries {
		if e.Date > threshold {
			kept = append(kept, e)
		}
	}
	return kept, nil
}

// MessagesFrom returns the messages of entries strictly after the given
// threshold, preserving parse order.
func (s *LogStore) MessagesFrom(threshold string) ([]string, error) {
	entries, err := s.EntriesFrom(threshold)
	if err != nil {
		return nil, err
	}

	messages := make([]string, len(entries))
	for i, e := range entries {
		messages[i] = e.Message
	}
	return messages, nil
}
