// Package cmd provides the command-line interface of pdpsim.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pdpsim",
	Short: "pdpsim inspects pickup-and-delivery simulation runs.",
	Long: `pdpsim inspects pickup-and-delivery simulation runs. It prints the ` +
		`effective configuration of a run and reports the statistics that ` +
		`runs recorded into SQLite databases.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: pdpsim.yaml in . or ./configs)")
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
