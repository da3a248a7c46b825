// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic audio sources and WAV fixtures
// for tests. The sources satisfy audio.Source without importing it.
package audiotest

import (
	"io"
	"math"
)

// Waveform returns the sample for frame i on channel ch.
type Waveform func(i, ch int) float32

// Source generates a fixed number of frames from a waveform.
type Source struct {
	rate     int
	channels int
	frames   int
	pos      int
	wave     Waveform

	// Err, when set, is returned once FailAt frames have been produced.
	Err    error
	FailAt int

	Closed bool
}

// New returns a source producing frames frames of wave.
func New(rate, channels, frames int, wave Waveform) *Source {
	return &Source{rate: rate, channels: channels, frames: frames, wave: wave}
}

// NewSine returns a sine of freq Hz at half scale on every channel.
func NewSine(rate, channels, frames int, freq float64) *Source {
	return New(rate, channels, frames, func(i, _ int) float32 {
		return float32(0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
	})
}

// NewConstant returns a source whose channel ch carries values[ch].
func NewConstant(rate, frames int, values ...float32) *Source {
	return New(rate, len(values), frames, func(_, ch int) float32 {
		return values[ch]
	})
}

// NewSilent returns a source of zeros.
func NewSilent(rate, channels, frames int) *Source {
	return New(rate, channels, frames, func(int, int) float32 { return 0 })
}

func (s *Source) SampleRate() int { return s.rate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BufSize() int    { return 4096 }

func (s *Source) Close() error {
	s.Closed = true
	return nil
}

// Frames returns the total number of frames the source produces.
func (s *Source) Frames() int { return s.frames }

// Reset rewinds the source.
func (s *Source) Reset() { s.pos = 0 }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.Err != nil && s.pos >= s.FailAt {
		return 0, s.Err
	}
	if s.pos >= s.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/s.channels, s.frames-s.pos)
	if s.Err != nil {
		n = min(n, s.FailAt-s.pos)
	}
	for f := range n {
		for ch := range s.channels {
			dst[f*s.channels+ch] = s.wave(s.pos+f, ch)
		}
	}
	s.pos += n

	if s.pos >= s.frames {
		return n * s.channels, io.EOF
	}
	return n * s.channels, nil
}
