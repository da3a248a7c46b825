// SPDX-License-Identifier: EPL-2.0

package vorbisenc

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/ik5/vorbenc/engine"
	"github.com/ik5/vorbenc/ogg"
)

func testConfig() engine.Config {
	return engine.Config{
		SampleRate: 48000,
		Channels:   2,
		Quality:    0.4,
		Tags:       []engine.Tag{{Key: "ENCODER", Value: "vorbenc"}},
	}
}

func sine(n, rate int, freq float64) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
	}
	return out
}

func drain(t *testing.T, e *Encoder) []ogg.Packet {
	t.Helper()

	var out []ogg.Packet
	for p, err := range e.Packets() {
		if err != nil {
			t.Fatalf("Packets() error = %v", err)
		}
		out = append(out, p)
	}
	return out
}

func TestNew_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mod  func(*engine.Config)
	}{
		{"zero rate", func(c *engine.Config) { c.SampleRate = 0 }},
		{"mono", func(c *engine.Config) { c.Channels = 1 }},
		{"quality", func(c *engine.Config) { c.Quality = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig()
			tt.mod(&cfg)
			if _, err := New(cfg); !errors.Is(err, engine.ErrInit) {
				t.Errorf("New() error = %v, want ErrInit", err)
			}
		})
	}
}

func TestHeaderPackets(t *testing.T) {
	t.Parallel()

	e, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer e.Close()

	headers, err := e.HeaderPackets()
	if err != nil {
		t.Fatalf("HeaderPackets() error = %v", err)
	}
	if len(headers) != engine.HeaderPacketCount {
		t.Fatalf("HeaderPackets() = %d packets, want %d", len(headers), engine.HeaderPacketCount)
	}

	prefixes := []string{"\x01vorbis", "\x03vorbis", "\x05vorbis"}
	for i, h := range headers {
		if !bytes.HasPrefix(h.Data, []byte(prefixes[i])) {
			t.Errorf("header %d starts with %q", i, h.Data[:min(7, len(h.Data))])
		}
		if h.BOS != (i == 0) {
			t.Errorf("header %d BOS = %v", i, h.BOS)
		}
	}
	if !bytes.Contains(headers[1].Data, []byte("ENCODER=vorbenc")) {
		t.Error("comment header lacks ENCODER tag")
	}

	// Callers own the returned slice.
	headers[0].Data = nil
	again, _ := e.HeaderPackets()
	if again[0].Data == nil {
		t.Error("HeaderPackets() exposed internal state")
	}
}

func TestEncode_FinalGranule(t *testing.T) {
	t.Parallel()

	e, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer e.Close()

	const (
		total = 48000
		block = 1024
	)
	left := sine(total, 48000, 440)
	right := sine(total, 48000, 660)

	var packets []ogg.Packet
	for off := 0; off < total; off += block {
		end := min(off+block, total)
		if err := e.Submit(left[off:end], right[off:end]); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		packets = append(packets, drain(t, e)...)
	}
	if err := e.SignalEndOfStream(); err != nil {
		t.Fatalf("SignalEndOfStream() error = %v", err)
	}
	packets = append(packets, drain(t, e)...)

	if len(packets) == 0 {
		t.Fatal("no audio packets")
	}
	last := packets[len(packets)-1]
	if !last.EOS {
		t.Error("last packet lacks EOS")
	}
	if last.GranulePos != total {
		t.Errorf("final GranulePos = %d, want %d", last.GranulePos, total)
	}
	for i := 1; i < len(packets); i++ {
		if packets[i].PacketNo <= packets[i-1].PacketNo {
			t.Fatalf("packet numbers not increasing at %d", i)
		}
	}
}

func TestPackets_ResumeAfterBreak(t *testing.T) {
	t.Parallel()

	e, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer e.Close()

	left := sine(16384, 48000, 440)
	if err := e.Submit(left, left); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	var first ogg.Packet
	for p, err := range e.Packets() {
		if err != nil {
			t.Fatalf("Packets() error = %v", err)
		}
		first = p
		break
	}
	rest := drain(t, e)
	if len(rest) == 0 {
		t.Fatal("no packets after resuming")
	}
	if rest[0].PacketNo != first.PacketNo+1 {
		t.Errorf("resumed at packet %d, want %d", rest[0].PacketNo, first.PacketNo+1)
	}
}

func TestSubmit_Errors(t *testing.T) {
	t.Parallel()

	e, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	block := make([]float32, 64)
	if err := e.Submit(block, block[:32]); !errors.Is(err, engine.ErrChannelMismatch) {
		t.Errorf("Submit() mismatch error = %v", err)
	}
	if err := e.Submit(nil, nil); !errors.Is(err, engine.ErrEmptyBlock) {
		t.Errorf("Submit() empty error = %v", err)
	}

	if err := e.SignalEndOfStream(); err != nil {
		t.Fatalf("SignalEndOfStream() error = %v", err)
	}
	if err := e.Submit(block, block); !errors.Is(err, engine.ErrEndOfStream) {
		t.Errorf("Submit() after end error = %v", err)
	}
	if err := e.SignalEndOfStream(); !errors.Is(err, engine.ErrEndOfStream) {
		t.Errorf("second SignalEndOfStream() error = %v", err)
	}

	if err := e.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := e.Close(); !errors.Is(err, engine.ErrClosed) {
		t.Errorf("second Close() error = %v", err)
	}
	if err := e.Submit(block, block); !errors.Is(err, engine.ErrClosed) {
		t.Errorf("Submit() after Close error = %v", err)
	}
	if _, err := e.HeaderPackets(); !errors.Is(err, engine.ErrClosed) {
		t.Errorf("HeaderPackets() after Close error = %v", err)
	}
}
