package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/dkoosis/statbar/pkg/statbar"
)

// Constants for default values.
const (
	DefaultTheme     = "default"
	DefaultRefreshHz = 10
	ConfigFileName   = ".statbar.yaml"
)

// AppConfig is the dashboard configuration from .statbar.yaml.
type AppConfig struct {
	Theme     string   `yaml:"theme,omitempty"`
	RefreshHz int      `yaml:"refresh_hz,omitempty"`
	Bars      []Preset `yaml:"bars,omitempty"`
}

// Preset describes one stat bar. Pointer fields distinguish "not set"
// from an explicit zero: a missing bound auto-scales, a present one is
// fixed.
type Preset struct {
	Stat        string   `yaml:"stat"`
	Label       string   `yaml:"label,omitempty"`
	Unit        string   `yaml:"unit,omitempty"`
	Min         *float64 `yaml:"min,omitempty"`
	Max         *float64 `yaml:"max,omitempty"`
	Tick        *float64 `yaml:"tick,omitempty"`
	Decimals    int      `yaml:"decimals,omitempty"`
	ShowBar     *bool    `yaml:"show_bar,omitempty"`
	ShowHistory bool     `yaml:"show_history,omitempty"`
	Frames      int      `yaml:"frames,omitempty"`
	ShortFrames int      `yaml:"short_frames,omitempty"`
	MaxHeight   int      `yaml:"max_height,omitempty"`
	Orientation string   `yaml:"orientation,omitempty"` // "vertical" (default) or "horizontal"
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	return &AppConfig{
		Theme:     DefaultTheme,
		RefreshHz: DefaultRefreshHz,
	}
}

// Load reads .statbar.yaml from dir, falling back to the user config
// directory and then to defaults when no file exists. A malformed file
// is an error; a missing one is not.
func Load(dir string) (*AppConfig, error) {
	cfg := Default()

	path := findConfigFile(dir)
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return parse(cfg, path, data)
}

// LoadFile reads an explicitly named config file. Unlike Load, a missing
// file is an error here: the caller asked for that file specifically.
func LoadFile(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return parse(Default(), path, data)
}

func parse(cfg *AppConfig, path string, data []byte) (*AppConfig, error) {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.Theme == "" {
		cfg.Theme = DefaultTheme
	}
	if cfg.RefreshHz <= 0 {
		cfg.RefreshHz = DefaultRefreshHz
	}
	return cfg, nil
}

func findConfigFile(dir string) string {
	local := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(local); err == nil {
		return local
	}
	if userDir, err := os.UserConfigDir(); err == nil {
		global := filepath.Join(userDir, "statbar", ConfigFileName)
		if _, err := os.Stat(global); err == nil {
			return global
		}
	}
	return ""
}

// RefreshInterval returns the sampling period implied by RefreshHz.
func (c *AppConfig) RefreshInterval() time.Duration {
	hz := c.RefreshHz
	if hz <= 0 {
		hz = DefaultRefreshHz
	}
	return time.Second / time.Duration(hz)
}

// BarConfig converts a preset into a widget configuration.
func (p Preset) BarConfig() statbar.Config {
	label := p.Label
	if label == "" {
		label = cases.Title(language.English).String(p.Stat)
	}

	cfg := statbar.NewConfig(label, p.Stat)
	cfg.UnitLabel = p.Unit
	cfg.DecimalDigits = p.Decimals
	cfg.ShowHistory = p.ShowHistory
	cfg.HistoryFrames = p.Frames
	cfg.ShortHistoryFrames = p.ShortFrames
	cfg.MaxHeight = p.MaxHeight

	if p.Min != nil {
		cfg.BarMin = *p.Min
		cfg.AutoScaleMin = false
	}
	if p.Max != nil {
		cfg.BarMax = *p.Max
		cfg.AutoScaleMax = false
	}
	if p.Tick != nil {
		cfg.TickSpacing = *p.Tick
	}
	if p.ShowBar != nil {
		cfg.ShowBar = *p.ShowBar
	}
	if p.Orientation == "horizontal" {
		cfg.Orientation = statbar.Horizontal
	}
	return cfg
}
