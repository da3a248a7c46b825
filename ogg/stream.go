// SPDX-License-Identifier: EPL-2.0

package ogg

/*
#cgo pkg-config: ogg
#include <stdlib.h>
#include <ogg/ogg.h>

typedef struct {
	ogg_stream_state os;
	ogg_page         og;
} oggs_state;

static oggs_state *oggs_new(int serial) {
	oggs_state *s = (oggs_state *)calloc(1, sizeof(oggs_state));
	if (s == NULL) {
		return NULL;
	}
	if (ogg_stream_init(&s->os, serial) != 0) {
		free(s);
		return NULL;
	}
	return s;
}

static int oggs_packetin(oggs_state *s, unsigned char *data, long n,
		int bos, int eos, ogg_int64_t granule, ogg_int64_t packetno) {
	ogg_packet op;

	op.packet = data;
	op.bytes = n;
	op.b_o_s = bos;
	op.e_o_s = eos;
	op.granulepos = granule;
	op.packetno = packetno;
	return ogg_stream_packetin(&s->os, &op);
}

static int oggs_pageout(oggs_state *s, int force) {
	if (force) {
		return ogg_stream_flush(&s->os, &s->og);
	}
	return ogg_stream_pageout(&s->os, &s->og);
}

static long oggs_pending(oggs_state *s) {
	return s->os.body_fill - s->os.body_returned;
}

static void oggs_free(oggs_state *s) {
	ogg_stream_clear(&s->os);
	free(s);
}
*/
import "C"

import (
	"iter"
	"unsafe"
)

// Packet is one codec packet handed to a Stream.
type Packet struct {
	Data []byte

	// BOS and EOS mark the first and last packet of the logical stream.
	BOS bool
	EOS bool

	// GranulePos is the codec position at the end of the packet, -1 if unknown.
	GranulePos int64

	// PacketNo is the packet sequence number assigned by the producer.
	PacketNo int64
}

// Stream sequences packets of one logical bitstream into pages using
// libogg. A Stream is not safe for concurrent use.
type Stream struct {
	s       *C.oggs_state
	serial  uint32
	packets int64
	eos     bool
}

// NewStream opens a logical bitstream with the given serial number.
func NewStream(serial uint32) (*Stream, error) {
	s := C.oggs_new(C.int(int32(serial)))
	if s == nil {
		return nil, ErrStreamState
	}
	return &Stream{s: s, serial: serial}, nil
}

// Serial returns the bitstream serial number.
func (s *Stream) Serial() uint32 { return s.serial }

// PacketCount returns the number of packets accepted so far.
func (s *Stream) PacketCount() int64 { return s.packets }

// Pending returns the number of body bytes not yet released in a page.
func (s *Stream) Pending() int {
	if s.s == nil {
		return 0
	}
	return int(C.oggs_pending(s.s))
}

// PacketIn appends a packet to the stream. libogg copies the payload.
func (s *Stream) PacketIn(p Packet) error {
	if s.s == nil {
		return ErrClosed
	}
	if s.eos {
		return ErrPacketAfterEOS
	}

	var data *C.uchar
	if len(p.Data) > 0 {
		data = (*C.uchar)(unsafe.Pointer(&p.Data[0]))
	}
	ret := C.oggs_packetin(s.s, data, C.long(len(p.Data)),
		cBool(p.BOS), cBool(p.EOS),
		C.ogg_int64_t(p.GranulePos), C.ogg_int64_t(p.PacketNo))
	if ret != 0 {
		return ErrStreamState
	}

	s.packets++
	s.eos = p.EOS
	return nil
}

// PageOut returns the next page if enough data is pending for a full
// page, or if the stream is at its BOS or EOS boundary.
func (s *Stream) PageOut() (Page, bool) { return s.page(false) }

// Flush returns a page holding any pending data.
func (s *Stream) Flush() (Page, bool) { return s.page(true) }

// Close releases the libogg state and drops pending data. Calling Close
// again is a no-op.
func (s *Stream) Close() error {
	if s.s != nil {
		C.oggs_free(s.s)
		s.s = nil
	}
	return nil
}

func (s *Stream) page(force bool) (Page, bool) {
	if s.s == nil {
		return Page{}, false
	}
	if C.oggs_pageout(s.s, cBool(force)) == 0 {
		return Page{}, false
	}
	og := &s.s.og
	return Page{
		Header: C.GoBytes(unsafe.Pointer(og.header), C.int(og.header_len)),
		Body:   C.GoBytes(unsafe.Pointer(og.body), C.int(og.body_len)),
	}, true
}

func cBool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}

// Pager is the page-producing side of a muxer.
type Pager interface {
	PageOut() (Page, bool)
	Flush() (Page, bool)
}

// Pages returns the pages ready on p. With force set, data that does not
// fill a page yet is flushed as well.
func Pages(p Pager, force bool) iter.Seq[Page] {
	return func(yield func(Page) bool) {
		for {
			pg, ok := p.PageOut()
			if !ok && force {
				pg, ok = p.Flush()
			}
			if !ok || !yield(pg) {
				return
			}
		}
	}
}
