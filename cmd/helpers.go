package cmd

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/zenifieduk/techhub/internal/article"
	"github.com/zenifieduk/techhub/internal/config"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `techhub init` to create a config file", err)
	}
	if verbose {
		cfg.Logging.Verbose()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the program logger from cfg.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := cfg.Logging.Prepare()
	if err != nil {
		return nil, fmt.Errorf("preparing logger: %w", err)
	}
	return logger, nil
}

// loadCatalog reads the configured articles: the directory named in the config,
// or the built-in sample when none is set. A catalog with some unreadable files is
// still returned; the failures are logged.
func loadCatalog(cfg *config.Config, logger *zap.Logger) (*article.Catalog, error) {
	fsys := article.SampleFS()
	if cfg.Articles.Dir != "" {
		info, err := os.Stat(cfg.Articles.Dir)
		if err != nil {
			return nil, fmt.Errorf("articles dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("articles dir %s is not a directory", cfg.Articles.Dir)
		}
		fsys = os.DirFS(cfg.Articles.Dir)
	}

	catalog := article.NewCatalog(fsys, cfg.Articles.Glob, logger)
	if err := catalog.Reload(); err != nil {
		if catalog.Len() == 0 {
			return nil, fmt.Errorf("loading articles: %w", err)
		}
		logger.Warn("Some articles could not be loaded", zap.Error(err))
	}
	logger.Info("Articles loaded", zap.Int("count", catalog.Len()), zap.String("dir", cfg.Articles.Dir))
	return catalog, nil
}
