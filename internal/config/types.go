package config

import (
	"time"

	"github.com/zenifieduk/techhub/internal/tracker"
)

// Config is the top-level techhub configuration, corresponding to .techhub.yml.
type Config struct {
	Site     SiteConfig     `yaml:"site" koanf:"site"`
	Server   ServerConfig   `yaml:"server" koanf:"server"`
	Articles ArticlesConfig `yaml:"articles" koanf:"articles"`
	Tracker  tracker.Config `yaml:"tracker" koanf:"tracker"`
	Logging  LoggingConfig  `yaml:"logging" koanf:"logging"`
}

// SiteConfig holds presentation settings and the static export target.
type SiteConfig struct {
	Name      string `yaml:"name" koanf:"name"`
	Tagline   string `yaml:"tagline" koanf:"tagline"`
	OutputDir string `yaml:"output_dir" koanf:"output_dir"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host" koanf:"host"`
	Port            int           `yaml:"port" koanf:"port"`
	AllowedOrigins  []string      `yaml:"allowed_origins" koanf:"allowed_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" koanf:"shutdown_timeout"`
}

// ArticlesConfig selects where articles are read from. An empty Dir serves the
// articles built into the binary.
type ArticlesConfig struct {
	Dir      string        `yaml:"dir" koanf:"dir"`
	Glob     string        `yaml:"glob" koanf:"glob"`
	Watch    bool          `yaml:"watch" koanf:"watch"`
	Debounce time.Duration `yaml:"debounce" koanf:"debounce"`
}

// LoggerConfig configures a single log destination.
type LoggerConfig struct {
	Level       string `yaml:"level" koanf:"level"`
	Destination string `yaml:"destination,omitempty" koanf:"destination"`
	Mode        string `yaml:"mode,omitempty" koanf:"mode"`
}

// LoggingConfig configures console and file logging.
type LoggingConfig struct {
	Console LoggerConfig `yaml:"console" koanf:"console"`
	File    LoggerConfig `yaml:"file" koanf:"file"`
}
