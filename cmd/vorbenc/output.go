// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ik5/vorbenc/internal/logging"
)

var errTerminalOutput = errors.New("refusing to write Ogg data to a terminal; use --output or --force")

func toStdout(path string) bool { return path == "" || path == "-" }

// writeOutput stores data at path, or on stdout for "" and "-".
func writeOutput(cmd *cobra.Command, path string, data []byte, force bool) error {
	if toStdout(path) {
		out := cmd.OutOrStdout()
		if logging.IsTerminal(out) && !force {
			return errTerminalOutput
		}
		if _, err := out.Write(data); err != nil {
			return fmt.Errorf("write stdout: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// summaryWriter keeps reports off stdout when stdout carries the stream.
func summaryWriter(cmd *cobra.Command, path string) io.Writer {
	if toStdout(path) {
		return cmd.ErrOrStderr()
	}
	return cmd.OutOrStdout()
}
