package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

const DefaultPath = "geoverlay.toml"

type Config struct {
	CellSize    float64 `env:"GEOVERLAY_CELL_SIZE"`
	PanePrefix  string  `env:"GEOVERLAY_PANE_PREFIX"`
	LogLevel    string  `env:"GEOVERLAY_LOG_LEVEL"`
	LogFile     string  `env:"GEOVERLAY_LOG_FILE"`
	Descriptors string  `env:"GEOVERLAY_DESCRIPTORS"`
	FollowStdin bool    `env:"GEOVERLAY_FOLLOW_STDIN"`
}

func Default() Config {
	return Config{
		CellSize:   1,
		PanePrefix: "tui",
		LogLevel:   "info",
	}
}

type fileConfig struct {
	CellSize    float64 `toml:"cell_size"`
	PanePrefix  string  `toml:"pane_prefix"`
	LogLevel    string  `toml:"log_level"`
	LogFile     string  `toml:"log_file"`
	Descriptors string  `toml:"descriptors"`
	FollowStdin bool    `toml:"follow_stdin"`
}

// Load reads path over the defaults and then applies GEOVERLAY_* env
// overrides. A missing file is not an error when path is the default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			if !(errors.Is(err, os.ErrNotExist) && path == DefaultPath) {
				return Config{}, err
			}
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if meta.IsDefined("cell_size") {
		cfg.CellSize = raw.CellSize
	}
	if meta.IsDefined("pane_prefix") {
		cfg.PanePrefix = strings.TrimSpace(raw.PanePrefix)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("log_file") {
		cfg.LogFile = strings.TrimSpace(raw.LogFile)
	}
	if meta.IsDefined("descriptors") {
		cfg.Descriptors = strings.TrimSpace(raw.Descriptors)
	}
	if meta.IsDefined("follow_stdin") {
		cfg.FollowStdin = raw.FollowStdin
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}
	return nil
}

func (c Config) Validate() error {
	if c.CellSize <= 0 {
		return fmt.Errorf("cell_size must be positive, got %v", c.CellSize)
	}
	if c.PanePrefix == "" || strings.Contains(c.PanePrefix, "-") {
		return fmt.Errorf("pane_prefix must be non-empty without hyphens, got %q", c.PanePrefix)
	}
	return nil
}
