package model

// LogEntry represents a single parsed log block.
type LogEntry struct {
	Date    string `json:"date"`             // UTC timestamp, "YYYY-MM-DD HH:MM:SS"
	Message string `json:"message"`          // free-text message, trimmed
	Source  string `json:"source,omitempty"` // originating file path
}

// RawBlock is one delimiter-separated segment read from a log file,
// before parsing.
type RawBlock struct {
	Text   string
	Source string
}
