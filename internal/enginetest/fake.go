// SPDX-License-Identifier: EPL-2.0

// Package enginetest provides a deterministic engine.Engine for tests
// that must not depend on a codec library.
package enginetest

import (
	"encoding/binary"
	"fmt"
	"iter"
	"math"

	"github.com/ik5/vorbenc/engine"
	"github.com/ik5/vorbenc/ogg"
)

// DefaultPacketSize is the payload size of every audio packet.
const DefaultPacketSize = 160

// Engine emits one fixed-size packet per submitted block and a final
// packet flagged EOS. Packet content depends only on the packet number
// and the first sample of the block, so equal input yields equal output.
type Engine struct {
	Cfg        engine.Config
	PacketSize int

	// Fault injection. A nil error means the call succeeds.
	HeaderErr error
	SubmitErr error
	PacketErr error
	EndErr    error
	CloseErr  error

	// HeaderCount overrides the number of header packets when non-zero.
	HeaderCount int

	Submitted int64
	Closed    bool

	ready    []ogg.Packet
	packetNo int64
	eos      bool
}

// New validates cfg like a real engine would.
func New(cfg engine.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{Cfg: cfg, PacketSize: DefaultPacketSize}, nil
}

func (e *Engine) HeaderPackets() ([]ogg.Packet, error) {
	if e.Closed {
		return nil, engine.ErrClosed
	}
	if e.HeaderErr != nil {
		return nil, e.HeaderErr
	}

	n := engine.HeaderPacketCount
	if e.HeaderCount != 0 {
		n = e.HeaderCount
	}

	id := make([]byte, 0, 16)
	id = append(id, "\x01fake"...)
	id = binary.LittleEndian.AppendUint32(id, uint32(e.Cfg.SampleRate))
	id = binary.LittleEndian.AppendUint32(id, math.Float32bits(e.Cfg.Quality))

	comment := []byte("\x03fake")
	for _, t := range e.Cfg.Tags {
		comment = append(comment, t.String()...)
		comment = append(comment, 0)
	}

	setup := append([]byte("\x05fake"), make([]byte, 600)...)

	all := [][]byte{id, comment, setup}
	out := make([]ogg.Packet, n)
	for i := range out {
		out[i] = ogg.Packet{
			Data:     all[i%len(all)],
			BOS:      i == 0,
			PacketNo: int64(i),
		}
	}
	e.packetNo = int64(n)
	return out, nil
}

func (e *Engine) Submit(left, right []float32) error {
	switch {
	case e.Closed:
		return engine.ErrClosed
	case e.eos:
		return engine.ErrEndOfStream
	case e.SubmitErr != nil:
		return e.SubmitErr
	case len(left) != len(right):
		return fmt.Errorf("%w: left %d, right %d", engine.ErrChannelMismatch, len(left), len(right))
	case len(left) == 0:
		return engine.ErrEmptyBlock
	}

	e.Submitted += int64(len(left))
	e.ready = append(e.ready, e.packet(left[0], false))
	return nil
}

func (e *Engine) packet(seed float32, eos bool) ogg.Packet {
	data := make([]byte, e.PacketSize)
	s := byte(math.Float32bits(seed))
	for i := range data {
		data[i] = byte(e.packetNo) + byte(i) + s
	}
	p := ogg.Packet{
		Data:       data,
		EOS:        eos,
		GranulePos: e.Submitted,
		PacketNo:   e.packetNo,
	}
	e.packetNo++
	return p
}

func (e *Engine) Packets() iter.Seq2[ogg.Packet, error] {
	return func(yield func(ogg.Packet, error) bool) {
		if e.Closed {
			yield(ogg.Packet{}, engine.ErrClosed)
			return
		}
		if e.PacketErr != nil && len(e.ready) > 0 {
			yield(ogg.Packet{}, e.PacketErr)
			return
		}
		for len(e.ready) > 0 {
			p := e.ready[0]
			e.ready = e.ready[1:]
			if !yield(p, nil) {
				return
			}
		}
	}
}

func (e *Engine) SignalEndOfStream() error {
	switch {
	case e.Closed:
		return engine.ErrClosed
	case e.eos:
		return engine.ErrEndOfStream
	case e.EndErr != nil:
		return e.EndErr
	}
	e.eos = true
	e.ready = append(e.ready, e.packet(0, true))
	return nil
}

func (e *Engine) Close() error {
	if e.Closed {
		return engine.ErrClosed
	}
	e.Closed = true
	return e.CloseErr
}

// Recorder is an engine.Factory source that keeps every engine it
// creates so tests can inspect them after the session is gone.
type Recorder struct {
	// InitErr makes every creation fail.
	InitErr error
	// Setup runs on each engine before it is returned.
	Setup func(*Engine)

	Engines []*Engine
}

// Factory creates a fake engine.
func (r *Recorder) Factory(cfg engine.Config) (engine.Engine, error) {
	if r.InitErr != nil {
		return nil, r.InitErr
	}
	e, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if r.Setup != nil {
		r.Setup(e)
	}
	r.Engines = append(r.Engines, e)
	return e, nil
}

// Last returns the most recently created engine, or nil.
func (r *Recorder) Last() *Engine {
	if len(r.Engines) == 0 {
		return nil
	}
	return r.Engines[len(r.Engines)-1]
}

// Factory is a stateless engine.Factory backed by New.
func Factory(cfg engine.Config) (engine.Engine, error) {
	e, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return e, nil
}
