// SPDX-License-Identifier: EPL-2.0

package vorbenc

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"time"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/vorbenc/audio"
	"github.com/ik5/vorbenc/engine/vorbisenc"
	"github.com/ik5/vorbenc/formats/aiff"
	"github.com/ik5/vorbenc/formats/mp3"
	"github.com/ik5/vorbenc/formats/vorbis"
	"github.com/ik5/vorbenc/formats/wav"
	"github.com/ik5/vorbenc/session"
)

const (
	// BlockSize is the number of frames handed to a session per Write.
	BlockSize = 1024

	// DefaultToneFrequency is the pitch of EncodeTone's test signal.
	DefaultToneFrequency = 400.0
)

// Start opens a session on libvorbisenc with the default output
// capacity. Options are applied after the engine is set, so they may
// replace it.
func Start(sampleRate int, quality float32, opts ...session.Option) (*session.Session, error) {
	cfg := session.DefaultConfig()
	cfg.SampleRate = sampleRate
	cfg.Quality = quality

	return session.Open(cfg, withEngine(opts)...)
}

func withEngine(opts []session.Option) []session.Option {
	return append([]session.Option{session.WithEngine(vorbisenc.Factory)}, opts...)
}

// DefaultRegistry returns a registry holding every bundled decoder,
// keyed by file extension.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})
	return r
}

// EncodeSource encodes src to completion and returns the Ogg Vorbis
// stream. The session sample rate is taken from src; cfg supplies the
// rest. src is not closed.
func EncodeSource(src audio.Source, cfg session.Config, opts ...session.Option) ([]byte, error) {
	cfg.SampleRate = src.SampleRate()

	var stereo audio.Source = src
	if src.Channels() != 2 {
		stereo = audio.NewStereoMixer(src)
	}

	s, err := session.Open(cfg, withEngine(opts)...)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	for blk, err := range audio.Blocks(stereo, BlockSize) {
		if err != nil {
			return nil, fmt.Errorf("reading source: %w", err)
		}
		if err := s.Write(blk.Left, blk.Right, blk.Len()); err != nil {
			return nil, err
		}
	}

	if err := s.Finish(); err != nil {
		return nil, err
	}

	// The session buffer is released by Close.
	return bytes.Clone(s.Bytes()), nil
}

// EncodeFloatBuffer encodes an interleaved go-audio buffer.
func EncodeFloatBuffer(buf *goaudio.FloatBuffer, cfg session.Config, opts ...session.Option) ([]byte, error) {
	if buf == nil || buf.Format == nil {
		return nil, fmt.Errorf("%w: buffer without format", session.ErrPrecondition)
	}
	if buf.Format.NumChannels <= 0 {
		return nil, fmt.Errorf("%w: %d channels", session.ErrPrecondition, buf.Format.NumChannels)
	}
	return EncodeSource(&floatSource{buf: buf}, cfg, opts...)
}

// floatSource reads a go-audio FloatBuffer as an audio.Source.
type floatSource struct {
	buf *goaudio.FloatBuffer
	pos int
}

func (s *floatSource) SampleRate() int { return s.buf.Format.SampleRate }
func (s *floatSource) Channels() int   { return s.buf.Format.NumChannels }
func (s *floatSource) BufSize() int    { return BlockSize * s.Channels() }
func (s *floatSource) Close() error    { return nil }

func (s *floatSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= len(s.buf.Data) {
		return 0, io.EOF
	}
	n := min(len(dst)/s.Channels()*s.Channels(), len(s.buf.Data)-s.pos)
	for i := range n {
		dst[i] = float32(s.buf.Data[s.pos+i])
	}
	s.pos += n
	if s.pos >= len(s.buf.Data) {
		return n, io.EOF
	}
	return n, nil
}

// ToneSource generates a stereo sine at half scale.
type ToneSource struct {
	rate   int
	freq   float64
	frames int
	pos    int
}

// NewTone returns d worth of a freq Hz sine at rate Hz.
func NewTone(rate int, freq float64, d time.Duration) *ToneSource {
	return &ToneSource{
		rate:   rate,
		freq:   freq,
		frames: int(math.Round(d.Seconds() * float64(rate))),
	}
}

func (t *ToneSource) SampleRate() int { return t.rate }
func (t *ToneSource) Channels() int   { return 2 }
func (t *ToneSource) BufSize() int    { return BlockSize * 2 }
func (t *ToneSource) Close() error    { return nil }

// Frames returns the total length of the tone in frames.
func (t *ToneSource) Frames() int { return t.frames }

func (t *ToneSource) ReadSamples(dst []float32) (int, error) {
	if t.pos >= t.frames {
		return 0, io.EOF
	}
	n := min(len(dst)/2, t.frames-t.pos)
	step := 2 * math.Pi * t.freq / float64(t.rate)
	for i := range n {
		v := float32(0.5 * math.Sin(step*float64(t.pos+i)))
		dst[2*i] = v
		dst[2*i+1] = v
	}
	t.pos += n
	if t.pos >= t.frames {
		return 2 * n, io.EOF
	}
	return 2 * n, nil
}

// EncodeTone encodes d of a freq Hz tone at cfg.SampleRate.
func EncodeTone(freq float64, d time.Duration, cfg session.Config, opts ...session.Option) ([]byte, error) {
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", session.ErrEngineInit, cfg.SampleRate)
	}
	return EncodeSource(NewTone(cfg.SampleRate, freq, d), cfg, opts...)
}
