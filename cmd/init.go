package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/tilepat/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize tilepat configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to choose a geometry source, default palette and server port, and writes .tilepat.yml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
