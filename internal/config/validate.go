// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ik5/vorbenc/buffer"
	"github.com/ik5/vorbenc/engine"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEncoding(); err != nil {
		return err
	}
	if err := c.validateBuffer(); err != nil {
		return err
	}
	if err := c.validateTags(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateEncoding() error {
	if c.SampleRate <= 0 {
		return errors.New("sample_rate must be positive")
	}
	if c.Quality < engine.MinQuality || c.Quality > engine.MaxQuality {
		return fmt.Errorf("quality must be between %.1f and %.1f", engine.MinQuality, engine.MaxQuality)
	}
	return nil
}

func (c *Config) validateBuffer() error {
	if c.CapacityBytes <= 0 || c.CapacityBytes > buffer.MaxCapacity {
		return fmt.Errorf("capacity_bytes must be between 1 and %d", buffer.MaxCapacity)
	}
	if c.GrowthLimitBytes != 0 && c.GrowthLimitBytes < c.CapacityBytes {
		return errors.New("growth_limit_bytes must be 0 or at least capacity_bytes")
	}
	return nil
}

func (c *Config) validateTags() error {
	for _, key := range slices.Sorted(maps.Keys(c.Tags)) {
		tag := engine.Tag{Key: strings.ToUpper(key), Value: c.Tags[key]}
		if err := tag.Validate(); err != nil {
			return fmt.Errorf("tags.%s: %w", key, err)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil || c.Logging.Level == "" {
		return fmt.Errorf("log.level %q is not a known level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Logging.Format)
	}
}
