// SPDX-License-Identifier: EPL-2.0

package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/ik5/vorbenc/engine"
	"github.com/ik5/vorbenc/session"
)

//go:embed sample_config.toml
var sampleConfig string

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "VORBENC_CONFIG"

// Logging selects the log level and output format.
type Logging struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	Level string `toml:"level"`
	// Format is "console" or "json".
	Format string `toml:"format"`
}

// Config holds the CLI settings. Encoding keys live at the top level;
// flags override them per run.
type Config struct {
	SampleRate       int     `toml:"sample_rate"`
	Quality          float64 `toml:"quality"`
	CapacityBytes    int     `toml:"capacity_bytes"`
	GrowthLimitBytes int     `toml:"growth_limit_bytes"`

	Logging Logging `toml:"log"`

	// Tags are extra comment header entries. ENCODER is always written.
	Tags map[string]string `toml:"tags"`
}

// DefaultConfigPath returns ~/.config/vorbenc/config.toml.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/vorbenc/config.toml")
}

// Load reads and validates the configuration. An empty path falls back
// to $VORBENC_CONFIG and then to the default location. A missing file
// yields the defaults. It also reports the resolved path and whether
// the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		var err error
		if path, err = DefaultConfigPath(); err != nil {
			return "", false, err
		}
	}

	expanded, err := ExpandPath(path)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %q is a directory", expanded)
	}
	return expanded, true, nil
}

func (c *Config) normalize() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
}

// SessionConfig converts the settings into a session configuration.
// Tags are ordered by key after the ENCODER tag.
func (c *Config) SessionConfig() session.Config {
	cfg := session.DefaultConfig()
	cfg.SampleRate = c.SampleRate
	cfg.Quality = float32(c.Quality)
	cfg.Capacity = c.CapacityBytes
	cfg.GrowthLimit = c.GrowthLimitBytes

	keys := make([]string, 0, len(c.Tags))
	for k := range c.Tags {
		if !strings.EqualFold(k, "ENCODER") {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		cfg.Tags = append(cfg.Tags, engine.Tag{Key: strings.ToUpper(k), Value: c.Tags[k]})
	}
	return cfg
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// CreateSample writes a commented sample configuration to path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
