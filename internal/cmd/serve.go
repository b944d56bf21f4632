package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/megaorm/megaorm-logger/internal/aggregator"
	"github.com/megaorm/megaorm-logger/internal/hub"
	"github.com/megaorm/megaorm-logger/internal/logstore"
	"github.com/megaorm/megaorm-logger/internal/server"
	"github.com/megaorm/megaorm-logger/internal/tailer"
	"github.com/megaorm/megaorm-logger/internal/watcher"
	"github.com/spf13/cobra"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the log file over HTTP with a live dashboard",
	Long: `Start a web server exposing the log file as a REST API, a WebSocket
stream of new entries, and an embedded dashboard. The configured log file is
watched in the background so appends from any process show up live.

Examples:
  megaorm-logger serve
  megaorm-logger -f /var/log/app.log serve --port 9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "HTTP listen port")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nshutting down...")
		cancel()
		os.Exit(0)
	}()

	store, err := logstore.New(logFilePath())
	if err != nil {
		return err
	}

	// --- Live pipeline: watcher -> tailer -> hub -> aggregator/ws ---
	w, err := watcher.New([]string{store.Path()})
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	ckpt, err := tailer.NewCheckpoint(filepath.Join(".", ".megaorm-logger-state.json"))
	if err != nil {
		return fmt.Errorf("failed to load checkpoint: %w", err)
	}
	t := tailer.New(w, ckpt)
	h := hub.New(t.Blocks())

	agg := aggregator.New(h.Subscribe(), h.Dropped, h.Skipped, func() int { return len(w.Paths()) })

	go w.Start(ctx)
	go t.Start(ctx)
	go h.Start(ctx)
	go agg.Start(ctx)

	srv := server.New(store, h, agg, servePort)

	fmt.Fprintf(os.Stderr, "serving %s on http://localhost:%s\n", store.Path(), servePort)
	return srv.Start()
}
