package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "tilepat",
	Short: "Repeating SVG background patterns from a geometry catalog",
	Long: `tilepat resolves pattern ids from a fixed catalog to geometry descriptors,
caches them with at most one fetch per pattern, and synthesizes tileable
SVG backgrounds for any colour palette. Backgrounds are available from the
command line, as a static gallery, or over HTTP.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".tilepat.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
