// Package config loads hint settings from defaults, an optional config file
// and FURRYHINTS_ environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/odvcencio/furry-hints/collect"
	"github.com/odvcencio/furry-hints/labels"
	"github.com/odvcencio/furry-hints/match"
	"github.com/odvcencio/furry-hints/session"
)

// EnvPrefix prefixes environment overrides, e.g. FURRYHINTS_HINTS_DELAY.
const EnvPrefix = "FURRYHINTS"

// Config holds application configuration.
type Config struct {
	Hints   HintsConfig   `mapstructure:"hints"`
	Hotkeys HotkeysConfig `mapstructure:"hotkeys"`
	Log     LogConfig     `mapstructure:"log"`
	Browser BrowserConfig `mapstructure:"browser"`
}

// HintsConfig tunes scanning, labeling and matching.
type HintsConfig struct {
	Alphabet       string        `mapstructure:"alphabet"`
	Delay          time.Duration `mapstructure:"delay"`
	MaxDepth       int           `mapstructure:"max_depth"`
	MinSize        float64       `mapstructure:"min_size"`
	Margin         float64       `mapstructure:"margin"`
	Tolerance      float64       `mapstructure:"tolerance"`
	MenuNavigation bool          `mapstructure:"menu_navigation"`
}

// HotkeysConfig holds the activation chords. An empty chord is unbound.
type HotkeysConfig struct {
	Window string `mapstructure:"window"`
	Chrome string `mapstructure:"chrome"`
}

// LogConfig selects the log level and destination file.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// BrowserConfig configures the browser host.
type BrowserConfig struct {
	Headless bool   `mapstructure:"headless"`
	Profile  string `mapstructure:"profile"`
	Width    int    `mapstructure:"width"`
	Height   int    `mapstructure:"height"`
}

// Validation errors.
var (
	ErrInvalidValue = errors.New("invalid config value")
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Hints: HintsConfig{
			Alphabet:  labels.Alphabet,
			Delay:     match.DefaultDelay,
			MaxDepth:  collect.DefaultMaxDepth,
			MinSize:   collect.DefaultMinSize,
			Margin:    collect.DefaultMargin,
			Tolerance: collect.DefaultTolerance,
		},
		Hotkeys: HotkeysConfig{
			Window: "ctrl+f",
			Chrome: "ctrl+g",
		},
		Log: LogConfig{
			Level: "info",
		},
		Browser: BrowserConfig{
			Width:  1280,
			Height: 720,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/furryhints/config.toml, falling back
// to ~/.config.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "furryhints", "config.toml")
}

// Load reads configuration. An empty path looks for config.{toml,yaml} in the
// default directory and tolerates its absence; an explicit path must exist.
// The result is validated.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("hints.alphabet", d.Hints.Alphabet)
	v.SetDefault("hints.delay", d.Hints.Delay)
	v.SetDefault("hints.max_depth", d.Hints.MaxDepth)
	v.SetDefault("hints.min_size", d.Hints.MinSize)
	v.SetDefault("hints.margin", d.Hints.Margin)
	v.SetDefault("hints.tolerance", d.Hints.Tolerance)
	v.SetDefault("hints.menu_navigation", d.Hints.MenuNavigation)
	v.SetDefault("hotkeys.window", d.Hotkeys.Window)
	v.SetDefault("hotkeys.chrome", d.Hotkeys.Chrome)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("browser.headless", d.Browser.Headless)
	v.SetDefault("browser.profile", d.Browser.Profile)
	v.SetDefault("browser.width", d.Browser.Width)
	v.SetDefault("browser.height", d.Browser.Height)
}

// Validate rejects unusable values.
func (c Config) Validate() error {
	if err := labels.ValidateAlphabet(c.Hints.Alphabet); err != nil {
		return fmt.Errorf("hints.alphabet: %w", err)
	}
	switch {
	case c.Hints.Delay <= 0:
		return fmt.Errorf("hints.delay %v: %w", c.Hints.Delay, ErrInvalidValue)
	case c.Hints.MaxDepth <= 0:
		return fmt.Errorf("hints.max_depth %d: %w", c.Hints.MaxDepth, ErrInvalidValue)
	case c.Hints.MinSize < 0:
		return fmt.Errorf("hints.min_size %v: %w", c.Hints.MinSize, ErrInvalidValue)
	case c.Hints.Margin < 0:
		return fmt.Errorf("hints.margin %v: %w", c.Hints.Margin, ErrInvalidValue)
	case c.Hints.Tolerance < 0:
		return fmt.Errorf("hints.tolerance %v: %w", c.Hints.Tolerance, ErrInvalidValue)
	case c.Browser.Width <= 0 || c.Browser.Height <= 0:
		return fmt.Errorf("browser viewport %dx%d: %w", c.Browser.Width, c.Browser.Height, ErrInvalidValue)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("log.level %q: %w", s, ErrInvalidValue)
	}
	return level, nil
}

// SessionOptions converts the hint settings into controller options.
func (c Config) SessionOptions(logger *slog.Logger) []session.Option {
	h := c.Hints
	return []session.Option{
		session.WithMaxDepth(h.MaxDepth),
		session.WithDelay(h.Delay),
		session.WithMenuNavigation(h.MenuNavigation),
		session.WithAllocator(labels.NewAllocator(labels.WithAlphabet(h.Alphabet))),
		session.WithCollectOptions(
			collect.WithMinSize(h.MinSize),
			collect.WithMargin(h.Margin),
			collect.WithTolerance(h.Tolerance),
		),
		session.WithLogger(logger),
	}
}
