package cmd

import (
	"github.com/megaorm/megaorm-logger/internal/logstore"
	"github.com/spf13/cobra"
)

var truncateCmd = &cobra.Command{
	Use:   "truncate",
	Short: "Empty the log file",
	Long: `Replace the entire log file content with an empty string. The file is
created if it does not exist. Truncating twice in a row is a no-op.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := logstore.New(logFilePath())
		if err != nil {
			return err
		}
		return store.Truncate()
	},
}

func init() {
	rootCmd.AddCommand(truncateCmd)
}
