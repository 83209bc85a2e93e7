// Package config loads mpdart settings from TOML config files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all runtime settings. Font dimensions are the pixel size of a
// terminal character cell and feed the aspect-fit layout; they do not select
// a terminal font.
type Config struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Password string `koanf:"password"`
	LogLevel string `koanf:"log_level"`

	FontWidth  int `koanf:"font_width"`
	FontHeight int `koanf:"font_height"`

	UpdateIntervalMS int `koanf:"update_interval_ms"`
}

// Default returns the built-in settings: a local unauthenticated MPD server
// and an 8x15 pixel character cell.
func Default() Config {
	return Config{
		Host:             "localhost",
		Port:             6600,
		LogLevel:         "warn",
		FontWidth:        8,
		FontHeight:       15,
		UpdateIntervalMS: 1000,
	}
}

// Load reads config files in priority order (later files win) on top of the
// defaults: $XDG_CONFIG_HOME/mpdart/config.toml, then ./config.toml.
func Load() (Config, error) {
	k := koanf.New(".")

	for _, path := range configPaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the layout and connection code cannot work with.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.FontWidth < 1 || c.FontHeight < 1 {
		return fmt.Errorf("font cell %dx%d must be at least 1x1 pixels", c.FontWidth, c.FontHeight)
	}
	if c.UpdateIntervalMS < 1 {
		return fmt.Errorf("update interval %dms must be positive", c.UpdateIntervalMS)
	}
	return nil
}

// FontAspect returns the width-to-height ratio of a character cell.
func (c Config) FontAspect() float64 {
	return float64(c.FontWidth) / float64(c.FontHeight)
}

// UpdateInterval returns the playback poll period.
func (c Config) UpdateInterval() time.Duration {
	return time.Duration(c.UpdateIntervalMS) * time.Millisecond
}

func configPaths() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, "mpdart", "config.toml"),
		"config.toml",
	}
}
