package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/zenifieduk/techhub/internal/tracker"
)

// DefaultPath is the configuration file read when --config is not given.
const DefaultPath = ".techhub.yml"

const envPrefix = "TECHHUB_"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Name:      "Technology Hub",
			Tagline:   "Insights on property technology and the UK housing market",
			OutputDir: "public",
		},
		Server: ServerConfig{
			Host:            "",
			Port:            8080,
			AllowedOrigins:  []string{"*"},
			ShutdownTimeout: 10 * time.Second,
		},
		Articles: ArticlesConfig{
			Glob:     "**/*.md",
			Watch:    true,
			Debounce: 300 * time.Millisecond,
		},
		Tracker: tracker.DefaultConfig(),
		Logging: LoggingConfig{
			Console: LoggerConfig{Level: "normal"},
			File:    LoggerConfig{Level: "none", Mode: "append"},
		},
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (TECHHUB_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: TECHHUB_SERVER_PORT -> server.port,
	// TECHHUB_LOGGING__CONSOLE__LEVEL -> logging.console.level.
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps an environment variable name to a config key. A double underscore
// separates every level; otherwise only the section is split off.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if strings.Contains(s, "__") {
		return strings.ReplaceAll(s, "__", ".")
	}
	return strings.Replace(s, "_", ".", 1)
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validLevels = map[string]bool{
	"none":   true,
	"normal": true,
	"debug":  true,
}

var validModes = map[string]bool{
	"":          true,
	"append":    true,
	"overwrite": true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Site.Name == "" {
		return fmt.Errorf("site.name is required")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", c.Server.Port)
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server.shutdown_timeout must be non-negative")
	}

	if c.Articles.Glob == "" {
		return fmt.Errorf("articles.glob is required")
	}
	if c.Articles.Debounce < 0 {
		return fmt.Errorf("articles.debounce must be non-negative")
	}

	if err := c.Tracker.Validate(); err != nil {
		return fmt.Errorf("tracker: %w", err)
	}

	if !validLevels[c.Logging.Console.Level] {
		return fmt.Errorf("invalid logging.console.level %q: must be one of none, normal, debug", c.Logging.Console.Level)
	}
	if !validLevels[c.Logging.File.Level] {
		return fmt.Errorf("invalid logging.file.level %q: must be one of none, normal, debug", c.Logging.File.Level)
	}
	if !validModes[c.Logging.File.Mode] {
		return fmt.Errorf("invalid logging.file.mode %q: must be append or overwrite", c.Logging.File.Mode)
	}
	if c.Logging.File.Level != "none" && c.Logging.File.Destination == "" {
		return fmt.Errorf("logging.file.destination is required when file logging is enabled")
	}

	return nil
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
