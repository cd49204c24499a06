// Package config loads mbudget settings and the SOV/SOM ratio table.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// DefaultOrganization appears in the report header and footer.
const DefaultOrganization = "MTM Group"

// Config holds all mbudget configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Report     ReportConfig     `toml:"report"`
	Ratios     RatiosConfig     `toml:"ratios"`
	Server     ServerConfig     `toml:"server"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds planning defaults.
type GeneralConfig struct {
	Organization string  `toml:"organization"`
	DefaultYear  int     `toml:"default_year,omitempty"`
	TVFactor     float64 `toml:"tv_factor"`
}

// ReportConfig holds export settings.
type ReportConfig struct {
	OutputDir    string `toml:"output_dir"`
	Format       string `toml:"format"`
	IncludeChart bool   `toml:"include_chart"`
}

// RatiosConfig points at an optional ratio table override.
type RatiosConfig struct {
	File string `toml:"file,omitempty"`
}

// ServerConfig holds the browser form listener.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Organization: DefaultOrganization,
			TVFactor:     1,
		},
		Report: ReportConfig{
			OutputDir: ".",
			Format:    "pdf",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8790",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mbudget")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "mbudget")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment overrides are applied last.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
	} else if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// LoadDotEnv loads a .env file from the working directory if present.
// Variables already set in the environment win.
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	if err := godotenv.Load(".env"); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MBUDGET_ORGANIZATION"); v != "" {
		cfg.General.Organization = v
	}
	if v := os.Getenv("MBUDGET_OUTPUT_DIR"); v != "" {
		cfg.Report.OutputDir = v
	}
	if v := os.Getenv("MBUDGET_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("MBUDGET_RATIOS_FILE"); v != "" {
		cfg.Ratios.File = v
	}
	if v := os.Getenv("MBUDGET_DEFAULT_YEAR"); v != "" {
		if y, err := strconv.Atoi(v); err == nil && y > 0 {
			cfg.General.DefaultYear = y
		}
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// PlanningYear returns the configured default year, or the calendar year.
func (c Config) PlanningYear() int {
	if c.General.DefaultYear > 0 {
		return c.General.DefaultYear
	}
	return time.Now().Year()
}

// Organization returns the report organization, never empty.
func (c Config) Organization() string {
	if c.General.Organization == "" {
		return DefaultOrganization
	}
	return c.General.Organization
}
