package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/megaorm/megaorm-logger/internal/model"
)

// Renderer writes LogEntry values to an output stream.
type Renderer interface {
	Render(entry model.LogEntry) error
}

// ---------------------------------------------------------------------------
// Text Renderer (colorized terminal output)
// ---------------------------------------------------------------------------

var (
	styleDate    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))             // gray
	styleBracket = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true)
	styleSource  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Faint(true)  // cyan
)

// TextRenderer prints entries to the terminal with the bracketed date dimmed.
type TextRenderer struct {
	w          io.Writer
	showSource bool
}

// NewTextRenderer returns a Renderer that writes colorized text to stdout.
// When showSource is true, the originating file path is printed too (useful
// when tailing several logs at once).
func NewTextRenderer(showSource bool) *TextRenderer {
	return &TextRenderer{w: os.Stdout, showSource: showSource}
}

func (r *TextRenderer) Render(entry model.LogEntry) error {
	stamp := styleBracket.Render("[") + styleDate.Render(entry.Date) + styleBracket.Render("]")

	var line string
	if r.showSource && entry.Source != "" {
		line = fmt.Sprintf("%s %s %s", stamp, styleSource.Render(entry.Source), entry.Message)
	} else {
		line = fmt.Sprintf("%s %s", stamp, entry.Message)
	}

	_, err := fmt.Fprintln(r.w, line)
	return err
}

// ---------------------------------------------------------------------------
// JSON Renderer (structured output for piping)
// ---------------------------------------------------------------------------

// JSONRenderer prints each entry as a single JSON object per line.
type JSONRenderer struct {
	enc *json.Encoder
}

// NewJSONRenderer returns a Renderer that writes JSON lines to stdout.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{enc: json.NewEncoder(os.Stdout)}
}

func (r *JSONRenderer) Render(entry model.LogEntry) error {
	return r.enc.Encode(entry)
}
