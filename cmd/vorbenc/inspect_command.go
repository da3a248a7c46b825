// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ik5/vorbenc/ogg"
)

// streamInfo summarizes an Ogg stream page by page.
type streamInfo struct {
	pages      []ogg.Page
	bytes      int
	packets    int
	serial     uint32
	sampleRate int
	channels   int
	granule    int64
	eos        bool
}

func readStreamInfo(r io.Reader) (streamInfo, error) {
	var info streamInfo
	pr := ogg.NewPageReader(bufio.NewReader(r))
	for {
		p, err := pr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return info, fmt.Errorf("page %d: %w", len(info.pages), err)
		}
		if len(info.pages) == 0 {
			info.serial = p.Serial()
			info.channels, info.sampleRate = identification(p.Body)
		}
		info.pages = append(info.pages, p)
		info.bytes += p.Len()
		info.packets += len(p.PacketLengths())
		if g := p.GranulePos(); g >= 0 {
			info.granule = g
		}
		info.eos = info.eos || p.IsEOS()
	}
	if len(info.pages) == 0 {
		return info, ogg.ErrInvalidPage
	}
	return info, nil
}

// identification reads channels and rate from a Vorbis identification
// header; zeroes mean the first packet is not one.
func identification(body []byte) (channels, rate int) {
	if len(body) < 16 || body[0] != 1 || string(body[1:7]) != "vorbis" {
		return 0, 0
	}
	return int(body[11]), int(binary.LittleEndian.Uint32(body[12:16]))
}

func (s streamInfo) duration() time.Duration {
	if s.sampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(s.granule) / float64(s.sampleRate) * float64(time.Second))
}

func pageFlags(p ogg.Page) string {
	var flags []string
	if p.IsContinued() {
		flags = append(flags, "cont")
	}
	if p.IsBOS() {
		flags = append(flags, "bos")
	}
	if p.IsEOS() {
		flags = append(flags, "eos")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}

func newInspectCommand() *cobra.Command {
	var summaryOnly bool

	cmd := &cobra.Command{
		Use:         "inspect <file.ogg>",
		Short:       "List the pages of an Ogg stream",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open %s: %w", args[0], err)
				}
				defer f.Close()
				in = f
			}

			info, err := readStreamInfo(in)
			if err != nil {
				return fmt.Errorf("inspect %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			if !summaryOnly {
				rows := make([][]string, 0, len(info.pages))
				for _, p := range info.pages {
					rows = append(rows, []string{
						strconv.FormatUint(uint64(p.Sequence()), 10),
						pageFlags(p),
						strconv.FormatInt(p.GranulePos(), 10),
						strconv.Itoa(len(p.PacketLengths())),
						strconv.Itoa(len(p.Segments())),
						strconv.Itoa(p.Len()),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Seq", "Flags", "Granule", "Packets", "Segments", "Bytes"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight, alignRight},
				))
			}

			fmt.Fprintf(out, "Serial:   0x%08x\n", info.serial)
			fmt.Fprintf(out, "Pages:    %d (%s)\n", len(info.pages), humanize.Bytes(uint64(info.bytes)))
			fmt.Fprintf(out, "Packets:  %d\n", info.packets)
			if info.sampleRate > 0 {
				fmt.Fprintf(out, "Vorbis:   %d ch, %d Hz, %s\n", info.channels, info.sampleRate, info.duration())
			}
			fmt.Fprintf(out, "Granule:  %d\n", info.granule)
			if !info.eos {
				fmt.Fprintln(out, "Warning: stream has no end-of-stream page")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&summaryOnly, "summary", "s", false, "Print only the stream summary")
	return cmd
}
