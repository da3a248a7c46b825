// SPDX-License-Identifier: EPL-2.0

package ogg

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Header type flags.
const (
	FlagContinued = 0x01
	FlagBOS       = 0x02
	FlagEOS       = 0x04
)

const (
	capturePattern = "OggS"
	headerSize     = 27
	maxSegments    = 255
)

// Page is one serialized Ogg page. Header holds the fixed header plus
// the segment table, Body the payload. Both slices are owned by the page.
type Page struct {
	Header []byte
	Body   []byte
}

// Len returns the serialized size of the page.
func (p Page) Len() int { return len(p.Header) + len(p.Body) }

// Bytes returns the page as one contiguous slice.
func (p Page) Bytes() []byte {
	out := make([]byte, 0, p.Len())
	out = append(out, p.Header...)
	return append(out, p.Body...)
}

// Version returns the stream structure version.
func (p Page) Version() byte { return p.Header[4] }

// Flags returns the header type flags.
func (p Page) Flags() byte { return p.Header[5] }

func (p Page) IsContinued() bool { return p.Flags()&FlagContinued != 0 }
func (p Page) IsBOS() bool       { return p.Flags()&FlagBOS != 0 }
func (p Page) IsEOS() bool       { return p.Flags()&FlagEOS != 0 }

// GranulePos returns the granule position; -1 means no packet ends on the page.
func (p Page) GranulePos() int64 {
	return int64(binary.LittleEndian.Uint64(p.Header[6:14]))
}

// Serial returns the bitstream serial number.
func (p Page) Serial() uint32 { return binary.LittleEndian.Uint32(p.Header[14:18]) }

// Sequence returns the page sequence number.
func (p Page) Sequence() uint32 { return binary.LittleEndian.Uint32(p.Header[18:22]) }

// Checksum returns the stored CRC.
func (p Page) Checksum() uint32 { return binary.LittleEndian.Uint32(p.Header[22:26]) }

// Segments returns the segment table.
func (p Page) Segments() []byte { return p.Header[headerSize:] }

// PacketLengths returns the lengths of the packets that end on this page.
// A packet continued from the previous page is reported with the bytes
// it has on this page only.
func (p Page) PacketLengths() []int {
	var (
		lengths []int
		cur     int
	)
	for _, seg := range p.Segments() {
		cur += int(seg)
		if seg < 255 {
			lengths = append(lengths, cur)
			cur = 0
		}
	}
	return lengths
}

// ParsePage decodes the page at the start of data and verifies its
// checksum. It returns the page and the number of bytes consumed.
func ParsePage(data []byte) (Page, int, error) {
	if len(data) < headerSize || string(data[:4]) != capturePattern {
		return Page{}, 0, ErrInvalidPage
	}
	hlen := headerSize + int(data[26])
	if len(data) < hlen {
		return Page{}, 0, ErrInvalidPage
	}
	blen := 0
	for _, seg := range data[headerSize:hlen] {
		blen += int(seg)
	}
	if len(data) < hlen+blen {
		return Page{}, 0, ErrInvalidPage
	}

	p := Page{
		Header: append([]byte(nil), data[:hlen]...),
		Body:   append([]byte(nil), data[hlen:hlen+blen]...),
	}
	if err := p.verify(); err != nil {
		return Page{}, 0, err
	}
	return p, hlen + blen, nil
}

func (p Page) verify() error {
	want := p.Checksum()
	if got := Checksum(p.Header, p.Body); got != want {
		return fmt.Errorf("%w: page %d: stored %08x, computed %08x", ErrBadCRC, p.Sequence(), want, got)
	}
	return nil
}

// PageReader reads consecutive pages from a byte stream.
type PageReader struct {
	r   io.Reader
	hdr [headerSize + maxSegments]byte
}

// NewPageReader returns a reader that decodes pages from r.
func NewPageReader(r io.Reader) *PageReader {
	return &PageReader{r: r}
}

// Next returns the next page. It returns io.EOF at a clean page boundary
// and ErrInvalidPage when the stream ends inside a page.
func (pr *PageReader) Next() (Page, error) {
	if _, err := io.ReadFull(pr.r, pr.hdr[:headerSize]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return Page{}, ErrInvalidPage
		}
		return Page{}, err
	}
	if string(pr.hdr[:4]) != capturePattern {
		return Page{}, ErrInvalidPage
	}
	hlen := headerSize + int(pr.hdr[26])
	if _, err := io.ReadFull(pr.r, pr.hdr[headerSize:hlen]); err != nil {
		return Page{}, fmt.Errorf("%w: segment table: %w", ErrInvalidPage, err)
	}
	blen := 0
	for _, seg := range pr.hdr[headerSize:hlen] {
		blen += int(seg)
	}

	p := Page{
		Header: append([]byte(nil), pr.hdr[:hlen]...),
		Body:   make([]byte, blen),
	}
	if _, err := io.ReadFull(pr.r, p.Body); err != nil {
		return Page{}, fmt.Errorf("%w: body: %w", ErrInvalidPage, err)
	}
	if err := p.verify(); err != nil {
		return Page{}, err
	}
	return p, nil
}

// ReadPages splits data into pages, verifying each one.
func ReadPages(data []byte) ([]Page, error) {
	var pages []Page
	for off := 0; off < len(data); {
		p, n, err := ParsePage(data[off:])
		if err != nil {
			return pages, fmt.Errorf("offset %d: %w", off, err)
		}
		pages = append(pages, p)
		off += n
	}
	return pages, nil
}
