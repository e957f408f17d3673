package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/five82/flipclock/internal/anim"
	"github.com/five82/flipclock/internal/countdown"
)

// Config is the resolved flipclock configuration.
type Config struct {
	Target       string
	Schedule     string
	Caption      string
	Labels       string
	Tick         time.Duration
	FlipDuration time.Duration
	Curve        string
	Policy       countdown.Policy
	ExitOnExpire bool
	LogFile      string
	LogLevel     string
	HTTPAddr     string
	Notify       []string
}

const (
	defaultConfigPath = "~/.config/flipclock/config.toml"
	defaultLogFile    = "~/.local/state/flipclock/flipclock.log"
	defaultLabels     = "Days|Hours|Minutes"
	defaultLogLevel   = "info"
	defaultCurve      = "linear"
)

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// fileConfig mirrors the on-disk keys. Durations stay strings so both
// encodings accept "750ms".
type fileConfig struct {
	Target       string   `toml:"target" yaml:"target"`
	Schedule     string   `toml:"schedule" yaml:"schedule"`
	Caption      string   `toml:"caption" yaml:"caption"`
	Labels       string   `toml:"labels" yaml:"labels"`
	Tick         string   `toml:"tick" yaml:"tick"`
	FlipDuration string   `toml:"flip_duration" yaml:"flip_duration"`
	Curve        string   `toml:"curve" yaml:"curve"`
	Policy       string   `toml:"policy" yaml:"policy"`
	ExitOnExpire bool     `toml:"exit_on_expire" yaml:"exit_on_expire"`
	LogFile      string   `toml:"log_file" yaml:"log_file"`
	LogLevel     string   `toml:"log_level" yaml:"log_level"`
	HTTPAddr     string   `toml:"http_addr" yaml:"http_addr"`
	Notify       []string `toml:"notify" yaml:"notify"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Labels:       defaultLabels,
		Tick:         countdown.DefaultTick,
		FlipDuration: countdown.DefaultFlipDuration,
		Curve:        defaultCurve,
		Policy:       countdown.PolicyCoalesce,
		LogFile:      mustExpand(defaultLogFile),
		LogLevel:     defaultLogLevel,
	}
}

// Load reads the config at path, or the default path when empty. A missing
// file yields Default. The format follows the extension: .yaml and .yml are
// YAML, anything else is TOML.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	switch strings.ToLower(filepath.Ext(resolved)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, &raw)
	default:
		err = toml.Unmarshal(bytes, &raw)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.apply(raw); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) apply(raw fileConfig) error {
	c.Target = strings.TrimSpace(raw.Target)
	c.Schedule = strings.TrimSpace(raw.Schedule)
	c.Caption = strings.TrimSpace(raw.Caption)
	if v := strings.TrimSpace(raw.Labels); v != "" {
		c.Labels = v
	}

	var err error
	if c.Tick, err = parseDuration("tick", raw.Tick, c.Tick, false); err != nil {
		return err
	}
	if c.FlipDuration, err = parseDuration("flip_duration", raw.FlipDuration, c.FlipDuration, true); err != nil {
		return err
	}

	if v := strings.ToLower(strings.TrimSpace(raw.Curve)); v != "" {
		if _, ok := anim.CurveByName(v); !ok {
			return fmt.Errorf("invalid curve %q", v)
		}
		c.Curve = v
	}

	if c.Policy, err = countdown.ParsePolicy(strings.ToLower(strings.TrimSpace(raw.Policy))); err != nil {
		return fmt.Errorf("invalid policy: %w", err)
	}

	c.ExitOnExpire = raw.ExitOnExpire

	if v := strings.TrimSpace(raw.LogFile); v != "" {
		c.LogFile = mustExpand(v)
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogLevel)); v != "" {
		if !validLevels[v] {
			return fmt.Errorf("invalid log_level %q", v)
		}
		c.LogLevel = v
	}

	c.HTTPAddr = strings.TrimSpace(raw.HTTPAddr)

	c.Notify = nil
	for _, u := range raw.Notify {
		if u = strings.TrimSpace(u); u != "" {
			c.Notify = append(c.Notify, u)
		}
	}
	return nil
}

func parseDuration(key, raw string, fallback time.Duration, allowZero bool) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 || (d == 0 && !allowZero) {
		return 0, fmt.Errorf("invalid %s: %s must be positive", key, raw)
	}
	return d, nil
}

// Input converts the countdown fields into construction input.
func (c Config) Input() countdown.Input {
	return countdown.Input{
		Target:   c.Target,
		Schedule: c.Schedule,
		Labels:   c.Labels,
		Caption:  c.Caption,
		Policy:   c.Policy,
	}
}

// DefaultPath returns the expanded default config location.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ against the home directory and returns
// the absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
