// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ik5/vorbenc"
	"github.com/ik5/vorbenc/internal/logging"
)

func newToneCommand(ctx *commandContext) *cobra.Command {
	var (
		enc      encodingFlags
		freq     float64
		duration time.Duration
		rate     int
		output   string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "tone",
		Short: "Encode a stereo sine test tone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.sessionConfig(cmd, &enc)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("rate") {
				cfg.SampleRate = rate
			}
			if duration <= 0 {
				return fmt.Errorf("duration must be positive, got %s", duration)
			}
			if toStdout(output) && logging.IsTerminal(cmd.OutOrStdout()) && !force {
				return errTerminalOutput
			}

			log, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			start := time.Now()
			data, err := vorbenc.EncodeTone(freq, duration, cfg, ctx.options(log)...)
			if err != nil {
				return fmt.Errorf("encode tone: %w", err)
			}
			if err := writeOutput(cmd, output, data, force); err != nil {
				return err
			}

			fmt.Fprintf(summaryWriter(cmd, output), "Encoded %s of %.0f Hz at %d Hz into %s in %s\n",
				duration, freq, cfg.SampleRate, humanize.Bytes(uint64(len(data))),
				time.Since(start).Round(time.Millisecond))
			return nil
		},
	}

	enc.register(cmd)
	cmd.Flags().Float64Var(&freq, "freq", vorbenc.DefaultToneFrequency, "Tone frequency in Hz")
	cmd.Flags().DurationVarP(&duration, "duration", "d", time.Second, "Tone length")
	cmd.Flags().IntVarP(&rate, "rate", "r", 0, "Sample rate in Hz (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVar(&force, "force", false, "Write to stdout even when it is a terminal")
	return cmd
}
