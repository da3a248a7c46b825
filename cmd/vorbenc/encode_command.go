// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ik5/vorbenc"
	"github.com/ik5/vorbenc/internal/logging"
)

func newEncodeCommand(ctx *commandContext) *cobra.Command {
	var (
		enc    encodingFlags
		format string
		output string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "encode <input>",
		Short: "Encode a WAV, AIFF, MP3 or Ogg Vorbis file to Ogg Vorbis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			cfg, err := ctx.sessionConfig(cmd, &enc)
			if err != nil {
				return err
			}

			registry := vorbenc.DefaultRegistry()
			name := input
			if format != "" {
				name = "input." + format
			}
			dec, err := registry.ForFile(name)
			if err != nil {
				return fmt.Errorf("%w (supported: %s)", err, strings.Join(registry.Formats(), ", "))
			}

			if output == "" {
				output = strings.TrimSuffix(input, filepath.Ext(input)) + ".ogg"
				if output == input {
					return fmt.Errorf("output would overwrite %s; pass --output", input)
				}
			}
			if toStdout(output) && logging.IsTerminal(cmd.OutOrStdout()) && !force {
				return errTerminalOutput
			}

			log, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			f, err := os.Open(input)
			if err != nil {
				return fmt.Errorf("open input: %w", err)
			}
			defer f.Close()

			src, err := dec.Decode(f)
			if err != nil {
				return fmt.Errorf("decode %s: %w", input, err)
			}
			defer src.Close()

			log.Info().
				Str("input", input).
				Int("sample_rate", src.SampleRate()).
				Int("channels", src.Channels()).
				Msg("encoding input")

			start := time.Now()
			data, err := vorbenc.EncodeSource(src, cfg, ctx.options(log)...)
			if err != nil {
				return fmt.Errorf("encode %s: %w", input, err)
			}
			if err := writeOutput(cmd, output, data, force); err != nil {
				return err
			}

			dest := output
			if toStdout(output) {
				dest = "stdout"
			}
			fmt.Fprintf(summaryWriter(cmd, output), "Wrote %s to %s in %s\n",
				humanize.Bytes(uint64(len(data))), dest, time.Since(start).Round(time.Millisecond))
			return nil
		},
	}

	enc.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "", "Input format when the extension is missing or wrong")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, - for stdout (default: input with .ogg extension)")
	cmd.Flags().BoolVar(&force, "force", false, "Write to stdout even when it is a terminal")
	return cmd
}
