// internal/config/config.go
//
// This package handles DocLog's optional configuration file and the paths
// derived from it. Everything lives under ~/.config/doclog/ by default:
//
// ~/.config/doclog/
// ├── config.yaml   <- optional settings (this package)
// ├── logs          <- the document store
// └── doclog.log    <- session log

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// Dir is the default configuration directory.
	Dir = "~/.config/doclog"

	// DefaultDocFile is where documents are stored when nothing overrides it.
	DefaultDocFile = Dir + "/logs"

	// DefaultLogFile receives the session log.
	DefaultLogFile = Dir + "/doclog.log"

	// EnvConfigPath overrides the location of config.yaml.
	EnvConfigPath = "DOCLOG_CONFIG"

	defaultLogLevel     = "info"
	defaultEditorWidth  = 104
	defaultEditorHeight = 40
)

// EditorConfig bounds the text editing region.
type EditorConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Config models config.yaml. Paths are stored expanded.
type Config struct {
	DocFile  string       `yaml:"docfile"`
	LogFile  string       `yaml:"log_file"`
	LogLevel string       `yaml:"log_level"`
	Editor   EditorConfig `yaml:"editor"`
}

// Default returns the configuration used when no file exists.
func Default() (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()
	if err := cfg.normalize(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Path returns the config file location, honoring DOCLOG_CONFIG.
func Path() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	return filepath.Join(Dir, "config.yaml")
}

// Load reads the config file at path. A missing file yields defaults.
func Load(path string) (*Config, error) {
	expanded, err := ExpandHome(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default()
		}
		return nil, fmt.Errorf("config: read %s: %w", expanded, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", expanded, err)
	}
	parsed.applyDefaults()
	if err := parsed.normalize(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := parsed.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", expanded, err)
	}
	return &parsed, nil
}

// ResolveDocFile picks the document path: an explicit flag value wins over
// the configured one.
func (c *Config) ResolveDocFile(flagValue string) (string, error) {
	if strings.TrimSpace(flagValue) == "" {
		return c.DocFile, nil
	}
	path, err := ExpandHome(strings.TrimSpace(flagValue))
	if err != nil {
		return "", fmt.Errorf("config: %w", err)
	}
	return filepath.Clean(path), nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.DocFile) == "" {
		c.DocFile = DefaultDocFile
	}
	if strings.TrimSpace(c.LogFile) == "" {
		c.LogFile = DefaultLogFile
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.Editor.Width == 0 {
		c.Editor.Width = defaultEditorWidth
	}
	if c.Editor.Height == 0 {
		c.Editor.Height = defaultEditorHeight
	}
}

func (c *Config) normalize() error {
	var err error
	if c.DocFile, err = ExpandHome(strings.TrimSpace(c.DocFile)); err != nil {
		return err
	}
	if c.LogFile, err = ExpandHome(strings.TrimSpace(c.LogFile)); err != nil {
		return err
	}
	c.DocFile = filepath.Clean(c.DocFile)
	c.LogFile = filepath.Clean(c.LogFile)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	return nil
}

func (c *Config) validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error")
	}
	if c.Editor.Width < 10 || c.Editor.Height < 3 {
		return fmt.Errorf("editor must be at least 10 columns by 3 rows")
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
