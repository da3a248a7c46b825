// SPDX-License-Identifier: EPL-2.0

package session

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ik5/vorbenc/buffer"
	"github.com/ik5/vorbenc/engine"
	"github.com/ik5/vorbenc/ogg"
)

// Session is one encoding task. See the package documentation for the
// lifecycle.
type Session struct {
	id    uuid.UUID
	cfg   Config
	state State
	log   zerolog.Logger

	newEngine engine.Factory
	newMuxer  MuxerFactory
	serialFn  func() uint32

	eng    engine.Engine
	mux    Muxer
	out    *buffer.Arena
	serial uint32

	granule int64
	packets int64
	pages   int64
}

// New returns a session in the Created state. Nothing is allocated
// until Start.
func New(cfg Config, opts ...Option) *Session {
	s := &Session{
		id:       uuid.New(),
		cfg:      cfg,
		log:      zerolog.Nop(),
		newMuxer: defaultMuxer,
		serialFn: rand.Uint32,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cfg.Capacity == 0 {
		s.cfg.Capacity = DefaultCapacity
	}
	s.log = s.log.With().Str("session", s.id.String()).Logger()
	return s
}

// Open creates and starts a session. On failure no session is returned
// and nothing needs to be released.
func Open(cfg Config, opts ...Option) (*Session, error) {
	s := New(cfg, opts...)
	if err := s.Start(); err != nil {
		return nil, err
	}
	return s, nil
}

// Start allocates the output arena, initializes the engine and the
// muxer, and writes the header pages. It either completes or leaves the
// session Created with every partial resource released.
func (s *Session) Start() error {
	if s.state != StateCreated {
		return fmt.Errorf("%w: start in %s state", ErrInvalidState, s.state)
	}
	if s.newEngine == nil {
		return ErrNoEngine
	}

	s.log.Info().
		Int("sample_rate", s.cfg.SampleRate).
		Float32("quality", s.cfg.Quality).
		Int("capacity", s.cfg.Capacity).
		Msg("initializing encoder")

	var bopts []buffer.Option
	if s.cfg.GrowthLimit > 0 {
		bopts = append(bopts, buffer.WithGrowth(s.cfg.GrowthLimit))
	}
	out, err := buffer.New(s.cfg.Capacity, bopts...)
	if err != nil {
		return fmt.Errorf("session: output buffer: %w", err)
	}

	eng, err := s.newEngine(s.cfg.engineConfig())
	if err != nil {
		out.Release()
		s.log.Error().Err(err).Msg("encoder initialization failed")
		return fmt.Errorf("session: start: %w", err)
	}

	serial := s.serialFn()
	mux, err := s.newMuxer(serial)
	if err != nil {
		err = errors.Join(err, eng.Close())
		out.Release()
		s.log.Error().Err(err).Msg("muxer initialization failed")
		return fmt.Errorf("session: start: muxer: %w", err)
	}

	pages, err := writeHeaders(eng, mux, out)
	if err != nil {
		err = errors.Join(err, eng.Close(), mux.Close())
		out.Release()
		s.log.Error().Err(err).Msg("header emission failed")
		return fmt.Errorf("session: start: %w", err)
	}

	s.eng, s.mux, s.out, s.serial = eng, mux, out, serial
	s.pages = pages
	s.state = StateActive

	s.log.Debug().
		Uint32("serial", serial).
		Int("header_bytes", out.Len()).
		Msg("headers written")
	return nil
}

// writeHeaders pages every header packet on its own, so the stream
// starts with exactly one page per header.
func writeHeaders(eng engine.Engine, mux Muxer, out *buffer.Arena) (int64, error) {
	headers, err := eng.HeaderPackets()
	if err != nil {
		return 0, err
	}
	if len(headers) != engine.HeaderPacketCount {
		return 0, fmt.Errorf("%w: %d header packets, want %d", engine.ErrInit, len(headers), engine.HeaderPacketCount)
	}

	var pages int64
	for _, h := range headers {
		if err := mux.PacketIn(h); err != nil {
			return pages, err
		}
		for page := range ogg.Pages(mux, true) {
			if err := out.Append(page.Header, page.Body); err != nil {
				return pages, err
			}
			pages++
		}
	}
	return pages, nil
}

// Write encodes count samples from each channel block.
func (s *Session) Write(left, right []float32, count int) error {
	if s.state != StateActive {
		return fmt.Errorf("%w: write in %s state", ErrInvalidState, s.state)
	}
	if count <= 0 {
		return fmt.Errorf("%w: sample count %d", ErrPrecondition, count)
	}
	if len(left) < count || len(right) < count {
		return fmt.Errorf("%w: %d samples requested, blocks hold %d and %d",
			ErrPrecondition, count, len(left), len(right))
	}

	if err := s.eng.Submit(left[:count], right[:count]); err != nil {
		return s.fail("submit", err)
	}
	s.granule += int64(count)

	if err := s.drain(false); err != nil {
		return s.fail("write", err)
	}
	return nil
}

// Finish ends the stream and releases the engine and the muxer. The
// output stays readable until Close.
func (s *Session) Finish() error {
	if s.state != StateActive {
		return fmt.Errorf("%w: finish in %s state", ErrInvalidState, s.state)
	}

	s.log.Info().Msg("ending stream")

	if err := s.finish(); err != nil {
		s.release()
		return s.fail("finish", err)
	}

	s.state = StateFinished
	s.log.Info().
		Int("length", s.out.Len()).
		Int64("granule", s.granule).
		Int64("packets", s.packets).
		Int64("pages", s.pages).
		Msg("final encoded stream length")

	s.log.Debug().Msg("cleaning up")
	if err := s.release(); err != nil {
		return fmt.Errorf("session: finish: release: %w", err)
	}
	return nil
}

func (s *Session) finish() error {
	if err := s.eng.SignalEndOfStream(); err != nil {
		return err
	}
	if err := s.drain(true); err != nil {
		return err
	}
	for page := range ogg.Pages(s.mux, true) {
		if err := s.appendPage(page); err != nil {
			return err
		}
	}
	return nil
}

// drain moves every ready packet through the muxer into the arena. Each
// packet's pages are flushed when force is set or the packet ends the
// stream.
func (s *Session) drain(force bool) error {
	for pkt, err := range s.eng.Packets() {
		if err != nil {
			return err
		}
		if err := s.mux.PacketIn(pkt); err != nil {
			return err
		}
		s.packets++

		for page := range ogg.Pages(s.mux, force || pkt.EOS) {
			if err := s.appendPage(page); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Session) appendPage(page ogg.Page) error {
	if err := s.out.Append(page.Header, page.Body); err != nil {
		return err
	}
	s.pages++
	s.log.Debug().
		Int64("packet", s.packets).
		Int("page_bytes", page.Len()).
		Int("length", s.out.Len()).
		Msg("page written")
	return nil
}

func (s *Session) fail(op string, err error) error {
	s.state = StateFailed
	s.log.Error().Err(err).Str("op", op).Msg("session failed")
	return fmt.Errorf("session: %s: %w", op, err)
}

// release closes the engine and the muxer if they are still held.
func (s *Session) release() error {
	var errs []error
	if s.eng != nil {
		errs = append(errs, s.eng.Close())
		s.eng = nil
	}
	if s.mux != nil {
		errs = append(errs, s.mux.Close())
		s.mux = nil
	}
	return errors.Join(errs...)
}

// Close destroys the session and releases the output buffer. It is
// valid in every state; closing twice is a no-op.
func (s *Session) Close() error {
	if s.state == StateClosed {
		return nil
	}
	err := s.release()
	if s.out != nil {
		s.out.Release()
		s.out = nil
	}
	s.state = StateClosed
	if err != nil {
		return fmt.Errorf("session: close: %w", err)
	}
	return nil
}

// Bytes returns the encoded stream. The content is final once Finish
// has returned; while Active it is the stream written so far. It returns
// nil in any other state.
func (s *Session) Bytes() []byte {
	if !s.state.readable() {
		return nil
	}
	return s.out.Bytes()
}

// Len returns the number of bytes in the output buffer, or 0 when the
// buffer is not readable.
func (s *Session) Len() int {
	if !s.state.readable() {
		return 0
	}
	return s.out.Len()
}

// ID returns the session identifier used in logs.
func (s *Session) ID() uuid.UUID { return s.id }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Config returns the session configuration.
func (s *Session) Config() Config { return s.cfg }

// SampleRate returns the configured sample rate in Hz.
func (s *Session) SampleRate() int { return s.cfg.SampleRate }

// Quality returns the configured VBR quality.
func (s *Session) Quality() float32 { return s.cfg.Quality }

// Serial returns the Ogg stream serial; zero before Start.
func (s *Session) Serial() uint32 { return s.serial }

// GranulePos returns the number of samples per channel submitted.
func (s *Session) GranulePos() int64 { return s.granule }

// PacketCount returns the number of audio packets drained from the engine.
func (s *Session) PacketCount() int64 { return s.packets }

// PageCount returns the number of pages appended, headers included.
func (s *Session) PageCount() int64 { return s.pages }
