// Package config loads pnv settings from TOML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/Dicklesworthstone/panelnav/pkg/nav"
)

// Config represents the main configuration
type Config struct {
	Nav      NavConfig      `toml:"nav"`
	Parallax ParallaxConfig `toml:"parallax"`
	Reveal   RevealConfig   `toml:"reveal"`
	Scroll   ScrollConfig   `toml:"scroll"`
	Content  ContentConfig  `toml:"content"`
	History  HistoryConfig  `toml:"history"`
	Log      LogConfig      `toml:"log"`
}

// NavConfig holds the responsive breakpoint and animation timing.
type NavConfig struct {
	Breakpoint    int      `toml:"breakpoint"`     // Minimum width (columns) for pinned mode
	SmoothScroll  Duration `toml:"smooth_scroll"`  // Jump animation length
	FrameInterval Duration `toml:"frame_interval"` // Paint cadence
}

// ParallaxConfig controls the per-panel image drift.
type ParallaxConfig struct {
	Amplitude float64 `toml:"amplitude"` // Fraction of image width, each direction
}

// RevealConfig controls the stacked-mode entrance reveal.
type RevealConfig struct {
	Threshold float64  `toml:"threshold"` // Fraction of viewport height where a panel reveals
	Duration  Duration `toml:"duration"`
	Distance  float64  `toml:"distance"` // Rows the panel rises while fading in
}

// ScrollConfig controls how input maps to scroll units.
type ScrollConfig struct {
	Step     int `toml:"step"`      // Units per wheel notch / j,k press
	PageStep int `toml:"page_step"` // Units per page up/down
}

// ContentConfig locates panel content.
type ContentConfig struct {
	Path  string `toml:"path"`  // Explicit content file; empty searches .pnv/
	Watch bool   `toml:"watch"` // Reload on change
}

// HistoryConfig controls resume-position persistence.
type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// LogConfig controls the debug log file.
type LogConfig struct {
	File string `toml:"file"` // Empty disables logging
}

// Duration is a time.Duration that decodes from strings like "600ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(b), err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Nav: NavConfig{
			Breakpoint:    80,
			SmoothScroll:  Duration{600 * time.Millisecond},
			FrameInterval: Duration{16 * time.Millisecond},
		},
		Parallax: ParallaxConfig{Amplitude: 0.08},
		Reveal: RevealConfig{
			Threshold: 0.8,
			Duration:  Duration{700 * time.Millisecond},
			Distance:  2,
		},
		Scroll: ScrollConfig{Step: 6, PageStep: 40},
		Content: ContentConfig{
			Watch: true,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(configDir(), "history.db"),
		},
	}
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pnv")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pnv"
	}
	return filepath.Join(home, ".config", "pnv")
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return filepath.Join(configDir(), "config.toml")
}

// Load reads path over the defaults. A missing file at the default path
// is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decoding config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values the navigator cannot work with.
func (c *Config) Validate() error {
	if c.Nav.Breakpoint <= 0 {
		return fmt.Errorf("nav.breakpoint must be positive, got %d", c.Nav.Breakpoint)
	}
	if c.Nav.SmoothScroll.Duration < 0 {
		return fmt.Errorf("nav.smooth_scroll must not be negative")
	}
	if c.Nav.FrameInterval.Duration <= 0 {
		return fmt.Errorf("nav.frame_interval must be positive")
	}
	if c.Parallax.Amplitude < 0 || c.Parallax.Amplitude > 0.5 {
		return fmt.Errorf("parallax.amplitude must be within [0, 0.5], got %v", c.Parallax.Amplitude)
	}
	if c.Reveal.Threshold <= 0 || c.Reveal.Threshold > 1 {
		return fmt.Errorf("reveal.threshold must be within (0, 1], got %v", c.Reveal.Threshold)
	}
	if c.Scroll.Step <= 0 {
		return fmt.Errorf("scroll.step must be positive, got %d", c.Scroll.Step)
	}
	if c.Scroll.PageStep <= 0 {
		return fmt.Errorf("scroll.page_step must be positive, got %d", c.Scroll.PageStep)
	}
	return nil
}

// Print writes the effective configuration as TOML.
func (c *Config) Print(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// NavOptions translates the [nav], [parallax] and [reveal] sections into
// navigator options.
func (c *Config) NavOptions() []nav.Option {
	return []nav.Option{
		nav.WithBreakpoint(float64(c.Nav.Breakpoint)),
		nav.WithSmoothScroll(c.Nav.SmoothScroll.Duration),
		nav.WithParallaxAmplitude(c.Parallax.Amplitude),
		nav.WithReveal(c.Reveal.Threshold, c.Reveal.Duration.Duration, c.Reveal.Distance),
	}
}
