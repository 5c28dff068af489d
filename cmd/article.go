package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/zenifieduk/techhub/internal/article"
	"github.com/zenifieduk/techhub/internal/toc"
)

var articleCmd = &cobra.Command{
	Use:   "article",
	Short: "Inspect articles from the terminal",
}

var articleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all articles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := commandCatalog()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SLUG\tCATEGORY\tSTATUS\tSECTIONS\tTITLE")
		for _, a := range catalog.List() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", a.Slug, a.Category, a.Status, len(a.TOC), a.Title)
		}
		return w.Flush()
	},
}

var articleTOCJSON bool

var articleTOCCmd = &cobra.Command{
	Use:   "toc <slug>",
	Short: "Print the table of contents of an article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := commandArticle(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if articleTOCJSON {
			entries := a.TOC
			if entries == nil {
				entries = []toc.Entry{}
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		}
		if !a.HasTOC() {
			fmt.Fprintf(out, "%s has no sections\n", a.Slug)
			return nil
		}
		for _, e := range a.TOC {
			indent := strings.Repeat("  ", e.Level-toc.MinLevel)
			fmt.Fprintf(out, "%s%s  #%s\n", indent, e.Title, e.ID)
		}
		return nil
	},
}

var articleShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Render an article in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := commandArticle(args[0])
		if err != nil {
			return err
		}
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err != nil {
			return fmt.Errorf("creating terminal renderer: %w", err)
		}
		out, err := renderer.Render(a.Content)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", a.Slug, err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	articleTOCCmd.Flags().BoolVar(&articleTOCJSON, "json", false, "print entries as JSON")
	articleCmd.AddCommand(articleListCmd, articleTOCCmd, articleShowCmd)
	rootCmd.AddCommand(articleCmd)
}

// commandCatalog loads the configured catalog. Console logging is silenced
// unless --verbose is given, so command output stays readable.
func commandCatalog() (*article.Catalog, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if !verbose && cfg.Logging.Console.Level == "normal" {
		cfg.Logging.Console.Level = "none"
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	defer logger.Sync()
	return loadCatalog(cfg, logger)
}

func commandArticle(slug string) (*article.Article, error) {
	catalog, err := commandCatalog()
	if err != nil {
		return nil, err
	}
	a, err := catalog.Get(slug)
	if errors.Is(err, article.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "Available articles: %s\n", strings.Join(slugs(catalog), ", "))
		return nil, fmt.Errorf("%w: %s", err, slug)
	}
	return a, err
}

func slugs(catalog *article.Catalog) []string {
	list := catalog.List()
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = a.Slug
	}
	return out
}
