package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zenifieduk/techhub/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "techhub",
	Short: "Technology Hub article server",
	Long: `techhub serves the Technology Hub: a repository of property market
articles with a live table of contents that follows the reader, plus a
weekly market report. Pages can also be exported as a static site.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
