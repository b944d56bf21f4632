// Package storage provides the durable-storage primitives the log store is
// built on: whole-file reads, appends, and whole-file writes. It performs no
// path resolution, locking, or directory creation.
package storage

import "os"

// Storage abstracts flat-file persistence so failure paths can be exercised
// in tests without touching the real filesystem.
type Storage interface {
	// ReadFile returns the entire file content as text.
	ReadFile(path string) (string, error)

	// AppendFile appends text to the end of the file, creating it if absent.
	AppendFile(path, text string) error

	// WriteFile replaces the entire file content, creating it if absent.
	WriteFile(path, text string) error
}

// OS is the Storage implementation backed by the operating system.
type OS struct{}

// NewOS returns an OS-backed Storage.
func NewOS() *OS { return &OS{} }

func (*OS) ReadFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (*OS) AppendFile(path, text string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteString(text); err != nil {
		return err
	}
	return nil
}

func (*OS) WriteFile(path, text string) error {
	return os.WriteFile(path, []byte(text), 0644)
}
