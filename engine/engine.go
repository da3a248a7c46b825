// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"
	"iter"
	"strings"

	"github.com/ik5/vorbenc/ogg"
)

const (
	// Channels is the only channel layout sessions encode.
	Channels = 2

	// HeaderPacketCount is the number of header packets an engine emits:
	// identification, comment and setup.
	HeaderPacketCount = 3
)

// Tag is one KEY=value entry of the comment header.
type Tag struct {
	Key   string
	Value string
}

func (t Tag) String() string { return t.Key + "=" + t.Value }

// Validate checks the key against the Vorbis comment field name rules:
// non-empty, printable ASCII 0x20 to 0x7D, no '='. The value may hold
// any UTF-8 except NUL.
func (t Tag) Validate() error {
	if t.Key == "" {
		return fmt.Errorf("%w: empty comment key", ErrInvalidTag)
	}
	for i := range len(t.Key) {
		if c := t.Key[i]; c < 0x20 || c > 0x7d || c == '=' {
			return fmt.Errorf("%w: key %q has byte %#x at %d", ErrInvalidTag, t.Key, c, i)
		}
	}
	if strings.IndexByte(t.Value, 0) >= 0 {
		return fmt.Errorf("%w: value of %q contains NUL", ErrInvalidTag, t.Key)
	}
	return nil
}

// Config selects the engine parameters. Quality is the variable bitrate
// target, from -0.1 (smallest) to 1.0 (best).
type Config struct {
	SampleRate int
	Channels   int
	Quality    float32
	Tags       []Tag
}

// Quality bounds accepted by Validate.
const (
	MinQuality = -0.1
	MaxQuality = 1.0
)

// Validate reports configurations no engine can serve.
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInit, c.SampleRate)
	}
	if c.Channels != Channels {
		return fmt.Errorf("%w: %d channels, want %d", ErrInit, c.Channels, Channels)
	}
	if c.Quality < MinQuality || c.Quality > MaxQuality {
		return fmt.Errorf("%w: quality %.2f outside [%.1f, %.1f]", ErrInit, c.Quality, MinQuality, MaxQuality)
	}
	for _, t := range c.Tags {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInit, err)
		}
	}
	return nil
}

// Engine is an initialized encoder instance. Implementations are not
// safe for concurrent use and Close must be the last call.
type Engine interface {
	// HeaderPackets returns the identification, comment and setup packets.
	HeaderPackets() ([]ogg.Packet, error)

	// Submit copies one block of non-interleaved samples into the engine.
	Submit(left, right []float32) error

	// Packets drains the packets that are ready. Stopping the iteration
	// early is allowed; the next call resumes where it stopped.
	Packets() iter.Seq2[ogg.Packet, error]

	// SignalEndOfStream marks the end of input.
	SignalEndOfStream() error

	// Close releases the engine.
	Close() error
}

// Factory initializes an Engine.
type Factory func(Config) (Engine, error)
