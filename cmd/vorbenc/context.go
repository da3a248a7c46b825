// SPDX-License-Identifier: EPL-2.0

package main

import (
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ik5/vorbenc/internal/config"
	"github.com/ik5/vorbenc/internal/logging"
	"github.com/ik5/vorbenc/session"
)

type globalFlags struct {
	config    string
	logLevel  string
	logFormat string
}

type commandContext struct {
	flags *globalFlags

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	sessionOpts []session.Option
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		if c.flags.logLevel != "" {
			cfg.Logging.Level = strings.ToLower(c.flags.logLevel)
		}
		if c.flags.logFormat != "" {
			cfg.Logging.Format = strings.ToLower(c.flags.logFormat)
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		c.config, c.configPath, c.configExists = cfg, path, exists
	})
	return c.config, c.configErr
}

func (c *commandContext) logger(w io.Writer) (zerolog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return zerolog.Nop(), err
	}
	return logging.New(cfg.Logging.Level, cfg.Logging.Format, w)
}

// options returns the session options for one run.
func (c *commandContext) options(log zerolog.Logger) []session.Option {
	return append([]session.Option{session.WithLogger(log)}, c.sessionOpts...)
}

// encodingFlags are the per-run overrides shared by tone and encode.
type encodingFlags struct {
	quality     float64
	capacity    int
	growthLimit int
}

func (f *encodingFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64VarP(&f.quality, "quality", "q", 0, "VBR quality, -0.1 to 1.0")
	cmd.Flags().IntVar(&f.capacity, "capacity", 0, "Output buffer size in bytes")
	cmd.Flags().IntVar(&f.growthLimit, "growth-limit", 0, "Let the output buffer grow up to this many bytes")
}

// sessionConfig merges the loaded settings with the flags the user set.
func (c *commandContext) sessionConfig(cmd *cobra.Command, f *encodingFlags) (session.Config, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return session.Config{}, err
	}
	merged := *cfg
	if cmd.Flags().Changed("quality") {
		merged.Quality = f.quality
	}
	if cmd.Flags().Changed("capacity") {
		merged.CapacityBytes = f.capacity
	}
	if cmd.Flags().Changed("growth-limit") {
		merged.GrowthLimitBytes = f.growthLimit
	}
	if err := merged.Validate(); err != nil {
		return session.Config{}, err
	}
	return merged.SessionConfig(), nil
}
