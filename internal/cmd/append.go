package cmd

import (
	"strings"

	"github.com/megaorm/megaorm-logger/internal/logstore"
	"github.com/spf13/cobra"
)

var appendCmd = &cobra.Command{
	Use:   "append <message...>",
	Short: "Append a timestamped message to the log file",
	Long: `Append one entry to the end of the log file, stamped with the current
UTC time. The file is created if it does not exist. Multiple arguments are
joined with spaces.

Examples:
  megaorm-logger append "server started"
  megaorm-logger -f /var/log/app.log append deploy finished`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := logstore.New(logFilePath())
		if err != nil {
			return err
		}
		return store.Append(strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(appendCmd)
}
