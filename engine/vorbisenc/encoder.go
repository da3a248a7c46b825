// SPDX-License-Identifier: EPL-2.0

package vorbisenc

/*
#cgo pkg-config: vorbisenc vorbis ogg
#include <stdlib.h>
#include <string.h>
#include <vorbis/vorbisenc.h>

typedef struct {
	vorbis_info      vi;
	vorbis_comment   vc;
	vorbis_dsp_state vd;
	vorbis_block     vb;
	ogg_packet       op;
	ogg_packet       hdr[3];
	int              stage;
} venc_state;

static venc_state *venc_new(void) {
	return (venc_state *)calloc(1, sizeof(venc_state));
}

static int venc_init(venc_state *s, long channels, long rate, float quality) {
	int ret;

	vorbis_info_init(&s->vi);
	ret = vorbis_encode_init_vbr(&s->vi, channels, rate, quality);
	if (ret != 0) {
		vorbis_info_clear(&s->vi);
		return ret;
	}
	vorbis_comment_init(&s->vc);
	s->stage = 1;
	return 0;
}

static void venc_tag(venc_state *s, char *key, char *value) {
	vorbis_comment_add_tag(&s->vc, key, value);
}

static int venc_start(venc_state *s) {
	int ret;

	ret = vorbis_analysis_init(&s->vd, &s->vi);
	if (ret != 0) {
		return ret;
	}
	ret = vorbis_block_init(&s->vd, &s->vb);
	if (ret != 0) {
		vorbis_dsp_clear(&s->vd);
		return ret;
	}
	s->stage = 2;
	return vorbis_analysis_headerout(&s->vd, &s->vc, &s->hdr[0], &s->hdr[1], &s->hdr[2]);
}

static int venc_write(venc_state *s, const float *left, const float *right, int n) {
	float **buf = vorbis_analysis_buffer(&s->vd, n);
	if (buf == NULL) {
		return OV_EFAULT;
	}
	memcpy(buf[0], left, (size_t)n * sizeof(float));
	memcpy(buf[1], right, (size_t)n * sizeof(float));
	return vorbis_analysis_wrote(&s->vd, n);
}

static int venc_end(venc_state *s) {
	return vorbis_analysis_wrote(&s->vd, 0);
}

// venc_blockout returns 1 when a block was analysed, 0 when none is ready.
static int venc_blockout(venc_state *s) {
	int ret = vorbis_analysis_blockout(&s->vd, &s->vb);
	if (ret != 1) {
		return ret;
	}
	ret = vorbis_analysis(&s->vb, NULL);
	if (ret != 0) {
		return ret;
	}
	ret = vorbis_bitrate_addblock(&s->vb);
	if (ret != 0) {
		return ret;
	}
	return 1;
}

static int venc_flushpacket(venc_state *s) {
	return vorbis_bitrate_flushpacket(&s->vd, &s->op);
}

static void venc_free(venc_state *s) {
	if (s->stage >= 2) {
		vorbis_block_clear(&s->vb);
		vorbis_dsp_clear(&s->vd);
	}
	if (s->stage >= 1) {
		vorbis_comment_clear(&s->vc);
		vorbis_info_clear(&s->vi);
	}
	free(s);
}
*/
import "C"

import (
	"fmt"
	"iter"
	"unsafe"

	"github.com/ik5/vorbenc/engine"
	"github.com/ik5/vorbenc/ogg"
)

// Encoder is a libvorbis VBR encoder instance.
type Encoder struct {
	s       *C.venc_state
	cfg     engine.Config
	headers []ogg.Packet

	pending bool // a block is analysed and may hold unflushed packets
	eos     bool
	closed  bool
}

// New initializes an encoder. A configuration libvorbis rejects yields
// an error wrapping engine.ErrInit.
func New(cfg engine.Config) (*Encoder, error) {
	if cfg.Channels == 0 {
		cfg.Channels = engine.Channels
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := C.venc_new()
	if s == nil {
		return nil, fmt.Errorf("%w: cannot allocate encoder state", engine.ErrInit)
	}

	if ret := C.venc_init(s, C.long(cfg.Channels), C.long(cfg.SampleRate), C.float(cfg.Quality)); ret != 0 {
		C.venc_free(s)
		return nil, fmt.Errorf("%w: %d Hz at quality %.2f: %s", engine.ErrInit, cfg.SampleRate, cfg.Quality, codeString(ret))
	}
	for _, t := range cfg.Tags {
		addTag(s, t)
	}
	if ret := C.venc_start(s); ret != 0 {
		C.venc_free(s)
		return nil, fmt.Errorf("%w: analysis setup: %s", engine.ErrInit, codeString(ret))
	}

	e := &Encoder{s: s, cfg: cfg}
	e.headers = make([]ogg.Packet, engine.HeaderPacketCount)
	for i := range e.headers {
		e.headers[i] = goPacket(&s.hdr[i])
	}
	return e, nil
}

// Factory adapts New to engine.Factory.
func Factory(cfg engine.Config) (engine.Engine, error) {
	e, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func addTag(s *C.venc_state, t engine.Tag) {
	key := C.CString(t.Key)
	defer C.free(unsafe.Pointer(key))
	value := C.CString(t.Value)
	defer C.free(unsafe.Pointer(value))

	C.venc_tag(s, key, value)
}

// Config returns the configuration the encoder was created with.
func (e *Encoder) Config() engine.Config { return e.cfg }

// HeaderPackets returns copies of the identification, comment and setup
// packets.
func (e *Encoder) HeaderPackets() ([]ogg.Packet, error) {
	if e.closed {
		return nil, engine.ErrClosed
	}
	out := make([]ogg.Packet, len(e.headers))
	copy(out, e.headers)
	return out, nil
}

// Submit copies a block of samples into the analysis buffer.
func (e *Encoder) Submit(left, right []float32) error {
	switch {
	case e.closed:
		return engine.ErrClosed
	case e.eos:
		return engine.ErrEndOfStream
	case len(left) != len(right):
		return fmt.Errorf("%w: left %d, right %d", engine.ErrChannelMismatch, len(left), len(right))
	case len(left) == 0:
		return engine.ErrEmptyBlock
	}

	ret := C.venc_write(e.s,
		(*C.float)(unsafe.Pointer(&left[0])),
		(*C.float)(unsafe.Pointer(&right[0])),
		C.int(len(left)))
	if ret != 0 {
		return fmt.Errorf("vorbisenc: submit %d samples: %s", len(left), codeString(ret))
	}
	return nil
}

// Packets drains ready packets: every block the analysis buffer can
// produce is encoded and its packets are flushed.
func (e *Encoder) Packets() iter.Seq2[ogg.Packet, error] {
	return func(yield func(ogg.Packet, error) bool) {
		if e.closed {
			yield(ogg.Packet{}, engine.ErrClosed)
			return
		}
		for {
			if !e.pending {
				ret := C.venc_blockout(e.s)
				if ret == 0 {
					return
				}
				if ret < 0 {
					yield(ogg.Packet{}, fmt.Errorf("vorbisenc: block analysis: %s", codeString(ret)))
					return
				}
				e.pending = true
			}
			for C.venc_flushpacket(e.s) == 1 {
				if !yield(goPacket(&e.s.op), nil) {
					return
				}
			}
			e.pending = false
		}
	}
}

// SignalEndOfStream submits the zero-length block that ends the stream.
func (e *Encoder) SignalEndOfStream() error {
	if e.closed {
		return engine.ErrClosed
	}
	if e.eos {
		return engine.ErrEndOfStream
	}
	if ret := C.venc_end(e.s); ret != 0 {
		return fmt.Errorf("vorbisenc: end of stream: %s", codeString(ret))
	}
	e.eos = true
	return nil
}

// Close releases all libvorbis state. Calling Close twice returns
// engine.ErrClosed.
func (e *Encoder) Close() error {
	if e.closed {
		return engine.ErrClosed
	}
	C.venc_free(e.s)
	e.s = nil
	e.closed = true
	return nil
}

func goPacket(op *C.ogg_packet) ogg.Packet {
	return ogg.Packet{
		Data:       C.GoBytes(unsafe.Pointer(op.packet), C.int(op.bytes)),
		BOS:        op.b_o_s != 0,
		EOS:        op.e_o_s != 0,
		GranulePos: int64(op.granulepos),
		PacketNo:   int64(op.packetno),
	}
}

func codeString(code C.int) string {
	switch code {
	case C.OV_EFAULT:
		return "internal fault"
	case C.OV_EINVAL:
		return "invalid argument"
	case C.OV_EIMPL:
		return "mode not implemented"
	default:
		return fmt.Sprintf("libvorbis error %d", int(code))
	}
}
