package cmd

import (
	"fmt"

	"github.com/megaorm/megaorm-logger/internal/logstore"
	"github.com/spf13/cobra"
)

var messagesFrom string

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "Print only the message text of each entry",
	Long: `Parse the log file and print the message of every entry, one per
line, in append order. With --from, only messages of entries strictly after
the given UTC timestamp are printed.

Examples:
  megaorm-logger messages
  megaorm-logger messages --from "2024-10-12 00:00:00"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := logstore.New(logFilePath())
		if err != nil {
			return err
		}

		var messages []string
		if messagesFrom != "" {
			messages, err = store.MessagesFrom(messagesFrom)
		} else {
			messages, err = store.Messages()
		}
		if err != nil {
			return err
		}

		for _, m := range messages {
			fmt.Println(m)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(messagesCmd)
	messagesCmd.Flags().StringVar(&messagesFrom, "from", "", `only entries after "YYYY-MM-DD HH:MM:SS"`)
}
