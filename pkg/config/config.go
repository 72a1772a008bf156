// Package config loads the optional pepystats TOML configuration file.
//
// Values resolve with flags first, then environment variables, then the
// file, then built-in defaults. A missing file is not an error.
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pepystats/pkg/errors"
)

const (
	// EnvPath overrides the config file location.
	EnvPath = "PEPYSTATS_CONFIG"

	// FileName is the config file name inside the config directory.
	FileName = "config.toml"

	appDir = "pepystats"
)

// Config mirrors config.toml.
type Config struct {
	APIKey   string   `toml:"api_key"`
	API      string   `toml:"api"`
	BaseURL  string   `toml:"base_url"`
	Timeout  string   `toml:"timeout"`
	Defaults Defaults `toml:"defaults"`

	// Path is where the config was read from; empty if no file was found.
	Path string `toml:"-"`

	// Unknown lists keys present in the file that pepystats does not use.
	Unknown []string `toml:"-"`
}

// Defaults overrides the built-in command flag defaults.
type Defaults struct {
	Months      *int   `toml:"months"`
	Granularity string `toml:"granularity"`
	Format      string `toml:"format"`
	IncludeCI   *bool  `toml:"include_ci"`
}

// DefaultPath returns the config file location: $PEPYSTATS_CONFIG, else
// $XDG_CONFIG_HOME/pepystats/config.toml, else ~/.config/pepystats/config.toml.
func DefaultPath() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appDir, FileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDir, FileName)
}

// Load reads the config at path, or at DefaultPath when path is empty.
// A missing file yields an empty Config. A file that cannot be parsed or
// carries invalid values yields an [errors.ErrCodeInvalidArgument] error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "parse config %s", path)
	}
	cfg.Path = path
	for _, k := range md.Undecoded() {
		cfg.Unknown = append(cfg.Unknown, k.String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that have a fixed shape.
func (c *Config) Validate() error {
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	if c.BaseURL != "" {
		if err := errors.ValidateURL(c.BaseURL); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidArgument, err, "config base_url")
		}
	}
	if c.Defaults.Months != nil && *c.Defaults.Months < 0 {
		return errors.Argument("config defaults.months must be >= 0, got %d", *c.Defaults.Months)
	}
	return nil
}

// TimeoutDuration parses Timeout. Zero means "use the client default".
func (c *Config) TimeoutDuration() (time.Duration, error) {
	s := strings.TrimSpace(c.Timeout)
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, errors.Argument("config timeout %q is not a valid duration", c.Timeout)
	}
	return d, nil
}

// Months returns the configured default window, or def when unset.
func (c *Config) Months(def int) int {
	if c.Defaults.Months == nil {
		return def
	}
	return *c.Defaults.Months
}

// IncludeCI returns the configured CI inclusion, or def when unset.
func (c *Config) IncludeCI(def bool) bool {
	if c.Defaults.IncludeCI == nil {
		return def
	}
	return *c.Defaults.IncludeCI
}

// Granularity returns the configured default granularity, or def when unset.
func (c *Config) Granularity(def string) string {
	return orDefault(c.Defaults.Granularity, def)
}

// Format returns the configured default output format, or def when unset.
func (c *Config) Format(def string) string {
	return orDefault(c.Defaults.Format, def)
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
