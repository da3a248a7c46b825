// SPDX-License-Identifier: EPL-2.0

// Package ogg implements the Ogg bitstream layer used to wrap encoder
// packets into pages (RFC 3533).
//
// The central type is Stream, a single logical bitstream that accepts
// packets and hands back serialized pages. Stream wraps libogg's
// ogg_stream_state through cgo, so pages are laid out exactly like the
// ones written by the stock Vorbis tools:
//
//   - The first page of a stream (BOS) carries exactly one packet.
//   - In normal mode a page is released once more than 4096 body bytes
//     and at least four finished packets are pending, when 255 lacing
//     values are pending, or once the stream reached end-of-stream.
//   - Flush releases whatever is pending, regardless of size.
//
// # Page Layout
//
//	Bytes 0-3:   "OggS" capture pattern
//	Byte 4:      Stream structure version (always 0)
//	Byte 5:      Header type flags (continued, BOS, EOS)
//	Bytes 6-13:  Granule position
//	Bytes 14-17: Bitstream serial number
//	Bytes 18-21: Page sequence number
//	Bytes 22-25: CRC checksum
//	Byte 26:     Number of segments
//	Bytes 27+:   Segment table, then the body
//
// # Draining Pages
//
// Pages returns a lazy sequence over a Stream, so a caller drains every
// ready page with a plain range loop:
//
//	st, err := ogg.NewStream(serial)
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//	if err := st.PacketIn(pkt); err != nil {
//	    return err
//	}
//	for page := range ogg.Pages(st, pkt.EOS) {
//	    out.Append(page.Header, page.Body)
//	}
//
// # Reading Pages
//
// ParsePage, PageReader and ReadPages decode serialized pages back and
// verify their checksums with libogg's CRC (Checksum). They exist for
// inspection and tests; the package does not reassemble packets across
// pages.
package ogg
