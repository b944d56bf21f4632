package cmd

import (
	"fmt"

	"github.com/megaorm/megaorm-logger/internal/logstore"
	"github.com/spf13/cobra"
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configured log file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := logstore.New(logFilePath())
		if err != nil {
			return err
		}
		fmt.Println(store.Path())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pathCmd)
}
