package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/megaorm/megaorm-logger/internal/model"
)

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	renderer := &JSONRenderer{enc: enc}

	entry := model.LogEntry{
		Date:    "2024-10-11 10:00:00",
		Message: "something broke",
		Source:  "/var/log/app.log",
	}

	if err := renderer.Render(entry); err != nil {
		t.Fatal(err)
	}

	// Parse the output JSON.
	var got model.LogEntry
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\nraw: %s", err, buf.String())
	}

	if got.Date != "2024-10-11 10:00:00" {
		t.Errorf("expected date '2024-10-11 10:00:00', got %q", got.Date)
	}
	if got.Message != "something broke" {
		t.Errorf("expected message 'something broke', got %q", got.Message)
	}
	if got.Source != "/var/log/app.log" {
		t.Errorf("expected source '/var/log/app.log', got %q", got.Source)
	}
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	renderer := &TextRenderer{w: &buf}

	entry := model.LogEntry{
		Date:    "2024-10-11 10:00:00",
		Message: "server started",
		Source:  "/var/log/app.log",
	}

	if err := renderer.Render(entry); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "2024-10-11 10:00:00") {
		t.Errorf("expected date in output, got %q", out)
	}
	if !strings.Contains(out, "server started") {
		t.Errorf("expected message in output, got %q", out)
	}
	// Source is hidden unless requested.
	if strings.Contains(out, "/var/log/app.log") {
		t.Errorf("expected source suppressed by default, got %q", out)
	}
}

func TestTextRendererWithSource(t *testing.T) {
	var buf bytes.Buffer
	renderer := &TextRenderer{w: &buf, showSource: true}

	entry := model.LogEntry{
		Date:    "2024-10-11 10:00:00",
		Message: "server started",
		Source:  "/var/log/app.log",
	}

	if err := renderer.Render(entry); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), "/var/log/app.log") {
		t.Errorf("expected source in output, got %q", buf.String())
	}
}
