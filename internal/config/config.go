package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "tracker.yaml"

// Environment overrides, applied after the config file (and .env) are read.
const (
	EnvFile        = "TRACKER_FILE"
	EnvCurrency    = "TRACKER_CURRENCY"
	EnvColor       = "TRACKER_COLOR"
	EnvLogLevel    = "TRACKER_LOG_LEVEL"
	EnvNewestFirst = "TRACKER_NEWEST_FIRST"
)

// Config represents the top-level tracker.yaml configuration.
type Config struct {
	Ledger   LedgerConfig  `yaml:"ledger"`
	Display  DisplayConfig `yaml:"display"`
	Git      GitConfig     `yaml:"git"`
	LogLevel string        `yaml:"log_level"` // debug, info, warn, error
}

// LedgerConfig locates the transaction file.
type LedgerConfig struct {
	File string `yaml:"file"`
}

// DisplayConfig controls how listings are printed.
type DisplayConfig struct {
	Currency    string `yaml:"currency"`     // ISO 4217 code, e.g. "USD"
	Color       string `yaml:"color"`        // auto, always, never
	NewestFirst bool   `yaml:"newest_first"` // applies to the full ledger view only
}

// GitConfig controls committing the ledger file after each write.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a tracker.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Ledger: LedgerConfig{
			File: "transactions.csv",
		},
		Display: DisplayConfig{
			Currency: "USD",
			Color:    "auto",
		},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "Tracker",
			AuthorEmail: "tracker@cleared.dev",
		},
		LogLevel: "warn",
	}
}

// ApplyEnv loads envPath (a .env file, ignored if missing) into the process
// environment and then overrides cfg from TRACKER_* variables.
func ApplyEnv(cfg *Config, envPath string) error {
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", envPath, err)
	}

	if v := os.Getenv(EnvFile); v != "" {
		cfg.Ledger.File = v
	}
	if v := os.Getenv(EnvCurrency); v != "" {
		cfg.Display.Currency = strings.ToUpper(v)
	}
	if v := os.Getenv(EnvColor); v != "" {
		cfg.Display.Color = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvNewestFirst); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvNewestFirst, err)
		}
		cfg.Display.NewestFirst = b
	}
	return cfg.Validate()
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Display.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("display.color must be auto, always or never, got %q", c.Display.Color)
	}
	if money.GetCurrency(c.Display.Currency) == nil {
		return fmt.Errorf("display.currency: unknown currency code %q", c.Display.Currency)
	}
	if c.Ledger.File == "" {
		return errors.New("ledger.file is required")
	}
	return nil
}
