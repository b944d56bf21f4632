package cmd

import (
	"strings"

	"github.com/megaorm/megaorm-logger/internal/logstore"
	"github.com/megaorm/megaorm-logger/internal/model"
	"github.com/megaorm/megaorm-logger/internal/output"
	"github.com/spf13/cobra"
)

var listFrom string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all entries in the log file",
	Long: `Parse the log file and print every entry in append order. With --from,
only entries strictly after the given UTC timestamp are printed.

Examples:
  megaorm-logger list
  megaorm-logger list --from "2024-10-12 00:00:00"
  megaorm-logger list -o json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := logstore.New(logFilePath())
		if err != nil {
			return err
		}

		var entries []model.LogEntry
		if listFrom != "" {
			entries, err = store.EntriesFrom(listFrom)
		} else {
			entries, err = store.Entries()
		}
		if err != nil {
			return err
		}

		renderer := newRenderer(false)
		for _, e := range entries {
			if err := renderer.Render(e); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listFrom, "from", "", `only entries after "YYYY-MM-DD HH:MM:SS"`)
}

// newRenderer picks a Renderer from the global --output flag.
func newRenderer(showSource bool) output.Renderer {
	switch strings.ToLower(outputFmt) {
	case "json":
		return output.NewJSONRenderer()
	default:
		return output.NewTextRenderer(showSource)
	}
}
