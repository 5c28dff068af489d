package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zenifieduk/techhub/internal/progress"
	"github.com/zenifieduk/techhub/internal/site"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Export the Technology Hub as a static website",
	Long: `Writes every page, the markdown sources and the assets to a directory
that any static file server can host. Exported article pages keep their
table of contents navigation; section highlighting needs techhub serve.`,
	RunE: runSite,
}

func init() {
	siteCmd.Flags().String("output", "", "override output directory (defaults to site.output_dir)")
	rootCmd.AddCommand(siteCmd)
}

func runSite(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Determine output directory.
	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.Site.OutputDir
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	catalog, err := loadCatalog(cfg, logger)
	if err != nil {
		return err
	}

	s, err := site.New(catalog, cfg.Site, cfg.Tracker, logger)
	if err != nil {
		return err
	}
	count, err := s.Export(outputDir, progress.NewReporter(logger))
	if err != nil {
		return fmt.Errorf("exporting site: %w", err)
	}

	fmt.Printf("Static site exported: %s (%d files)\n", outputDir, count)
	return nil
}
