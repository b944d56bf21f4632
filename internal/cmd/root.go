package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	logFile   string
	outputFmt string
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "megaorm-logger",
	Short: "MegaORM Logger — append-only text log file manager",
	Long: `MegaORM Logger manages a flat, append-only text log file. It appends
timestamped messages, parses the file back into structured entries, filters
entries by date, and can truncate the file. It can also live-tail log files
and serve them through a web dashboard.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: $HOME/.megaorm-logger.yaml)")
	rootCmd.PersistentFlags().StringVarP(&logFile, "file", "f", "", "log file path (default: ./megaorm.log)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "output format: text, json")

	_ = viper.BindPFlag("file", rootCmd.PersistentFlags().Lookup("file"))
	viper.SetDefault("file", "megaorm.log")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".megaorm-logger")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("MEGAORM")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// logFilePath resolves the log file path from the flag, environment
// (MEGAORM_FILE), or config file, in that precedence.
func logFilePath() string {
	return viper.GetString("file")
}
