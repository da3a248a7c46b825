// SPDX-License-Identifier: EPL-2.0

package ogg

import (
	"bytes"
	"errors"
	"testing"
)

func filled(n int, b byte) []byte {
	return bytes.Repeat([]byte{b}, n)
}

func newStream(tb testing.TB, serial uint32) *Stream {
	tb.Helper()

	s, err := NewStream(serial)
	if err != nil {
		tb.Fatalf("NewStream() error = %v", err)
	}
	tb.Cleanup(func() { s.Close() })
	return s
}

// startedStream returns a stream whose BOS page has already been taken.
func startedStream(t *testing.T) *Stream {
	t.Helper()

	s := newStream(t, 0x1234)
	if err := s.PacketIn(Packet{Data: filled(30, 1), BOS: true}); err != nil {
		t.Fatalf("PacketIn() error = %v", err)
	}
	if _, ok := s.PageOut(); !ok {
		t.Fatal("PageOut() returned no BOS page")
	}
	return s
}

func TestStream_BOSPageCarriesOnePacket(t *testing.T) {
	t.Parallel()

	s := newStream(t, 42)
	for i, n := range []int{30, 100, 200} {
		if err := s.PacketIn(Packet{Data: filled(n, byte(i)), BOS: i == 0}); err != nil {
			t.Fatalf("PacketIn(%d) error = %v", i, err)
		}
	}

	p, ok := s.PageOut()
	if !ok {
		t.Fatal("PageOut() ok = false, want BOS page")
	}
	if !p.IsBOS() || p.IsEOS() || p.IsContinued() {
		t.Errorf("flags = %#x, want BOS only", p.Flags())
	}
	if got := p.PacketLengths(); len(got) != 1 || got[0] != 30 {
		t.Errorf("PacketLengths() = %v, want [30]", got)
	}
	if p.GranulePos() != 0 {
		t.Errorf("GranulePos() = %d, want 0", p.GranulePos())
	}
	if p.Serial() != 42 || p.Sequence() != 0 {
		t.Errorf("Serial()/Sequence() = %d/%d, want 42/0", p.Serial(), p.Sequence())
	}

	if _, ok := s.PageOut(); ok {
		t.Error("PageOut() released a short page after BOS")
	}

	p, ok = s.Flush()
	if !ok {
		t.Fatal("Flush() ok = false, want page")
	}
	if got := p.PacketLengths(); len(got) != 2 || got[0] != 100 || got[1] != 200 {
		t.Errorf("PacketLengths() = %v, want [100 200]", got)
	}
	if p.Sequence() != 1 {
		t.Errorf("Sequence() = %d, want 1", p.Sequence())
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", s.Pending())
	}
}

func TestStream_PageOutFillThreshold(t *testing.T) {
	t.Parallel()

	s := startedStream(t)
	for i := range 5 {
		s.PacketIn(Packet{Data: filled(1000, byte(i)), GranulePos: int64(i+1) * 100})
	}
	if _, ok := s.PageOut(); ok {
		t.Fatal("PageOut() released a page before the fill threshold was passed")
	}

	s.PacketIn(Packet{Data: filled(1000, 9), GranulePos: 600})
	p, ok := s.PageOut()
	if !ok {
		t.Fatal("PageOut() ok = false, want full page")
	}
	if n := len(p.PacketLengths()); n != 5 {
		t.Errorf("page carries %d packets, want 5", n)
	}
	if p.GranulePos() != 500 {
		t.Errorf("GranulePos() = %d, want 500", p.GranulePos())
	}
	if len(p.Body) != 5000 {
		t.Errorf("len(Body) = %d, want 5000", len(p.Body))
	}

	if _, ok := s.PageOut(); ok {
		t.Error("second PageOut() ok = true, want false")
	}
	if p, ok := s.Flush(); !ok || p.GranulePos() != 600 {
		t.Errorf("Flush() = (granule %d, %v), want (600, true)", p.GranulePos(), ok)
	}
}

func TestStream_LacingLimitForcesPage(t *testing.T) {
	t.Parallel()

	s := startedStream(t)
	for i := range 300 {
		s.PacketIn(Packet{GranulePos: int64(i)})
	}

	p, ok := s.PageOut()
	if !ok {
		t.Fatal("PageOut() ok = false with 300 pending lacing values")
	}
	if len(p.Segments()) != 255 {
		t.Errorf("segments = %d, want 255", len(p.Segments()))
	}
	if p.GranulePos() != 254 {
		t.Errorf("GranulePos() = %d, want 254", p.GranulePos())
	}
	if _, ok := s.PageOut(); ok {
		t.Error("PageOut() released the 45 remaining lacing values")
	}
}

func TestStream_PacketSpanningPages(t *testing.T) {
	t.Parallel()

	s := startedStream(t)
	data := filled(255*300, 7)
	s.PacketIn(Packet{Data: data, GranulePos: 4096})

	first, ok := s.PageOut()
	if !ok {
		t.Fatal("PageOut() ok = false, want first part of large packet")
	}
	if first.IsContinued() {
		t.Error("first page has continued flag")
	}
	if first.GranulePos() != -1 {
		t.Errorf("first GranulePos() = %d, want -1", first.GranulePos())
	}
	if len(first.PacketLengths()) != 0 {
		t.Errorf("first page finishes packets %v, want none", first.PacketLengths())
	}

	second, ok := s.Flush()
	if !ok {
		t.Fatal("Flush() ok = false, want remainder")
	}
	if !second.IsContinued() {
		t.Error("second page lacks continued flag")
	}
	if second.GranulePos() != 4096 {
		t.Errorf("second GranulePos() = %d, want 4096", second.GranulePos())
	}
	if got := len(first.Body) + len(second.Body); got != len(data) {
		t.Errorf("body bytes = %d, want %d", got, len(data))
	}
	if !bytes.Equal(append(first.Body, second.Body...), data) {
		t.Error("packet payload was not preserved across pages")
	}
}

func TestStream_ExactMultipleOf255(t *testing.T) {
	t.Parallel()

	s := startedStream(t)
	s.PacketIn(Packet{Data: filled(255, 3), GranulePos: 10})

	p, ok := s.Flush()
	if !ok {
		t.Fatal("Flush() ok = false")
	}
	if got := p.Segments(); !bytes.Equal(got, []byte{255, 0}) {
		t.Errorf("Segments() = %v, want [255 0]", got)
	}
	if got := p.PacketLengths(); len(got) != 1 || got[0] != 255 {
		t.Errorf("PacketLengths() = %v, want [255]", got)
	}
}

func TestStream_EOS(t *testing.T) {
	t.Parallel()

	s := startedStream(t)
	s.PacketIn(Packet{Data: filled(10, 1), GranulePos: 100})
	s.PacketIn(Packet{Data: filled(10, 2), GranulePos: 200, EOS: true})

	p, ok := s.PageOut()
	if !ok {
		t.Fatal("PageOut() ok = false after EOS packet, want forced page")
	}
	if !p.IsEOS() {
		t.Error("last page lacks EOS flag")
	}
	if p.GranulePos() != 200 {
		t.Errorf("GranulePos() = %d, want 200", p.GranulePos())
	}

	err := s.PacketIn(Packet{Data: filled(10, 3)})
	if !errors.Is(err, ErrPacketAfterEOS) {
		t.Errorf("PacketIn() after EOS error = %v, want ErrPacketAfterEOS", err)
	}
}

func TestStream_Closed(t *testing.T) {
	t.Parallel()

	s := newStream(t, 1)
	s.PacketIn(Packet{Data: filled(5, 1)})
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v, want nil", err)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d after Close, want 0", s.Pending())
	}

	if err := s.PacketIn(Packet{}); !errors.Is(err, ErrClosed) {
		t.Errorf("PacketIn() error = %v, want ErrClosed", err)
	}
	if _, ok := s.Flush(); ok {
		t.Error("Flush() on closed stream returned a page")
	}
}

func TestPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		force bool
		want  int
	}{
		{name: "normal leaves short data pending", force: false, want: 1},
		{name: "forced flushes short data", force: true, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newStream(t, 9)
			s.PacketIn(Packet{Data: filled(30, 1), BOS: true})
			s.PacketIn(Packet{Data: filled(40, 2), GranulePos: 64})

			got := 0
			for range Pages(s, tt.force) {
				got++
			}
			if got != tt.want {
				t.Errorf("Pages(force=%v) yielded %d pages, want %d", tt.force, got, tt.want)
			}
		})
	}
}

func TestPages_StopEarly(t *testing.T) {
	t.Parallel()

	s := startedStream(t)
	for i := range 600 {
		s.PacketIn(Packet{GranulePos: int64(i)})
	}

	for range Pages(s, true) {
		break
	}
	p, ok := s.Flush()
	if !ok {
		t.Fatal("Flush() ok = false, want the pages left after stopping")
	}
	if p.Sequence() != 2 {
		t.Errorf("next Sequence() = %d, want 2 (BOS + one)", p.Sequence())
	}
}

func TestStream_SerialWraps(t *testing.T) {
	t.Parallel()

	s := newStream(t, 0xfedcba98)
	s.PacketIn(Packet{Data: filled(8, 1), BOS: true})
	p, ok := s.Flush()
	if !ok {
		t.Fatal("Flush() ok = false")
	}
	if p.Serial() != 0xfedcba98 || s.Serial() != 0xfedcba98 {
		t.Errorf("Serial() = %#x/%#x, want 0xfedcba98", p.Serial(), s.Serial())
	}
	if s.PacketCount() != 1 {
		t.Errorf("PacketCount() = %d, want 1", s.PacketCount())
	}
}

func TestChecksum(t *testing.T) {
	t.Parallel()

	s := newStream(t, 5)
	s.PacketIn(Packet{Data: filled(100, 4), BOS: true})
	p, ok := s.Flush()
	if !ok {
		t.Fatal("Flush() ok = false")
	}
	if got := Checksum(p.Header, p.Body); got != p.Checksum() {
		t.Errorf("Checksum() = %08x, stored %08x", got, p.Checksum())
	}

	body := append([]byte(nil), p.Body...)
	body[0] ^= 1
	if Checksum(p.Header, body) == p.Checksum() {
		t.Error("Checksum() ignores body changes")
	}
	if Checksum(p.Header[:10], p.Body) != 0 {
		t.Error("Checksum() of a short header is not 0")
	}
}
