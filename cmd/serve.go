package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/zenifieduk/techhub/internal/article"
	"github.com/zenifieduk/techhub/internal/server"
	"github.com/zenifieduk/techhub/internal/site"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Technology Hub web server",
	Long: `Starts the HTTP server hosting the article pages, the JSON API and the
reading-position tracking websocket. When an articles directory is
configured, edits to its markdown files are picked up without a restart.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
		if err := cfg.Validate(); err != nil {
			return err
		}
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
	srv := server.New(cfg.Server, logger)
	s.RegisterRoutes(srv.Router())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx)
	})
	if cfg.Articles.Dir != "" && cfg.Articles.Watch {
		w := article.NewWatcher(catalog, cfg.Articles.Dir, cfg.Articles.Debounce, logger)
		g.Go(func() error {
			return w.Run(ctx)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped", zap.Error(err))
		return err
	}
	logger.Info("Server stopped")
	return nil
}
