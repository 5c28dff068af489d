package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// contentDirs are directories checked, in order, for existing articles.
var contentDirs = []string{"content", "articles", "posts"}

// detectContentDir returns the first conventional directory holding markdown files.
func detectContentDir() string {
	for _, dir := range contentDirs {
		matches, _ := filepath.Glob(filepath.Join(dir, "*.md"))
		if len(matches) > 0 {
			return dir
		}
	}
	return ""
}

// RunWizard runs an interactive configuration wizard and saves the resulting
// Config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to techhub! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	contentDir := detectContentDir()
	if contentDir != "" {
		fmt.Printf("Found articles in %s/\n\n", contentDir)
	}

	// 1. Site name.
	namePrompt := promptui.Prompt{
		Label:   "Site name",
		Default: cfg.Site.Name,
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("name must not be empty")
			}
			return nil
		},
	}
	name, err := namePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site name: %w", err)
	}
	cfg.Site.Name = strings.TrimSpace(name)

	// 2. Port.
	portPrompt := promptui.Prompt{
		Label:    "HTTP port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// 3. Articles directory.
	dirPrompt := promptui.Prompt{
		Label:   "Articles directory (leave blank for the built-in sample)",
		Default: contentDir,
	}
	dir, err := dirPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("articles dir: %w", err)
	}
	cfg.Articles.Dir = strings.TrimSpace(dir)
	if cfg.Articles.Dir != "" {
		if fi, err := os.Stat(cfg.Articles.Dir); err != nil || !fi.IsDir() {
			fmt.Printf("\nNote: %s does not exist yet; create it before running techhub serve.\n", cfg.Articles.Dir)
		}
	}

	// 4. Console logging.
	levelPrompt := promptui.Select{
		Label: "Console logging",
		Items: []string{
			"normal - requests and reloads",
			"debug  - everything, including tracking sessions",
			"none   - silent",
		},
	}
	levelIdx, _, err := levelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("logging selection: %w", err)
	}
	cfg.Logging.Console.Level = []string{"normal", "debug", "none"}[levelIdx]

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePort(s string) error {
	p, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	if p < 1 || p > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}
