package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/megaorm/megaorm-logger/internal/hub"
	"github.com/megaorm/megaorm-logger/internal/tailer"
	"github.com/megaorm/megaorm-logger/internal/watcher"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [patterns...]",
	Short: "Live-tail entries appended to log files",
	Long: `Watch one or more log files (or glob patterns) and print new entries
as they are appended, in real time. Without arguments the configured log
file is watched. Files that do not exist yet are picked up on creation.

Examples:
  megaorm-logger watch
  megaorm-logger watch /var/log/megaorm/*.log
  megaorm-logger watch "logs/**/*.log" --output json`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	// --- Set up context with graceful shutdown ---
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nshutting down...")
		cancel()
	}()

	patterns := args
	if len(patterns) == 0 {
		patterns = []string{logFilePath()}
	}

	// --- Initialize watcher ---
	w, err := watcher.New(patterns)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	watched := w.Paths()
	if len(watched) == 0 {
		return fmt.Errorf("no files matched the given patterns: %v", patterns)
	}

	fmt.Fprintf(os.Stderr, "watching %d file(s):\n", len(watched))
	for _, p := range watched {
		fmt.Fprintf(os.Stderr, "  %s\n", p)
	}
	fmt.Fprintln(os.Stderr)

	// --- Initialize checkpoint and tailer ---
	ckpt, err := tailer.NewCheckpoint(filepath.Join(".", ".megaorm-logger-state.json"))
	if err != nil {
		return fmt.Errorf("failed to load checkpoint: %w", err)
	}
	t := tailer.New(w, ckpt)

	// --- Parse and broadcast blocks ---
	h := hub.New(t.Blocks())
	entries := h.Subscribe()

	// --- Start pipeline ---
	go w.Start(ctx)
	go t.Start(ctx)
	go h.Start(ctx)

	// --- Render output ---
	renderer := newRenderer(len(watched) > 1)
	for entry := range entries {
		if err := renderer.Render(entry); err != nil {
			log.Printf("render error: %v", err)
		}
	}

	return nil
}
