package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/sarchlab/pdpsim/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration.",
	Long: "`config` merges the defaults, the config file, and the PDPSIM_ " +
		"environment variables, validates the result, and prints it as JSON.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")

		return enc.Encode(cfg)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
