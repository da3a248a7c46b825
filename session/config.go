// SPDX-License-Identifier: EPL-2.0

package session

import (
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/ik5/vorbenc/engine"
	"github.com/ik5/vorbenc/ogg"
)

const (
	// DefaultCapacity holds about three minutes of 128 kbit/s audio.
	DefaultCapacity = 3 * 1024 * 1024

	DefaultSampleRate = 48000
	DefaultQuality    = 0.4

	// EncoderName is written as the ENCODER comment tag.
	EncoderName = "vorbenc"
)

// Config holds the per-session encoding parameters.
type Config struct {
	SampleRate int
	Quality    float32

	// Capacity is the initial size of the output arena in bytes.
	Capacity int
	// GrowthLimit lets the arena grow up to this many bytes; zero keeps
	// it fixed at Capacity.
	GrowthLimit int

	// Tags are written to the comment header in order.
	Tags []engine.Tag
}

// DefaultConfig returns 48 kHz at quality 0.4 with a fixed 3 MiB arena.
func DefaultConfig() Config {
	return Config{
		SampleRate: DefaultSampleRate,
		Quality:    DefaultQuality,
		Capacity:   DefaultCapacity,
		Tags:       []engine.Tag{{Key: "ENCODER", Value: EncoderName}},
	}
}

func (c Config) engineConfig() engine.Config {
	return engine.Config{
		SampleRate: c.SampleRate,
		Channels:   engine.Channels,
		Quality:    c.Quality,
		Tags:       c.Tags,
	}
}

// Muxer is the container side of a session.
type Muxer interface {
	ogg.Pager
	PacketIn(ogg.Packet) error
	Close() error
}

// MuxerFactory opens a muxer for a logical stream.
type MuxerFactory func(serial uint32) (Muxer, error)

func defaultMuxer(serial uint32) (Muxer, error) {
	st, err := ogg.NewStream(serial)
	if err != nil {
		return nil, err
	}
	return st, nil
}

// Option customizes a Session.
type Option func(*Session)

// WithEngine sets the engine factory. It is required.
func WithEngine(f engine.Factory) Option {
	return func(s *Session) { s.newEngine = f }
}

// WithMuxer replaces the Ogg stream muxer.
func WithMuxer(f MuxerFactory) Option {
	return func(s *Session) { s.newMuxer = f }
}

// WithSerial fixes the stream serial number.
func WithSerial(serial uint32) Option {
	return func(s *Session) {
		s.serialFn = func() uint32 { return serial }
	}
}

// WithRand draws the stream serial from r. A nil r keeps the current
// serial source.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) {
		if r != nil {
			s.serialFn = r.Uint32
		}
	}
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.log = l }
}
