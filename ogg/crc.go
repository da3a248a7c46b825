// SPDX-License-Identifier: EPL-2.0

package ogg

/*
#include <ogg/ogg.h>

static ogg_uint32_t oggs_checksum(unsigned char *header, long hlen,
		unsigned char *body, long blen) {
	ogg_page og;

	og.header = header;
	og.header_len = hlen;
	og.body = body;
	og.body_len = blen;
	ogg_page_checksum_set(&og);
	return (ogg_uint32_t)header[22] |
		((ogg_uint32_t)header[23] << 8) |
		((ogg_uint32_t)header[24] << 16) |
		((ogg_uint32_t)header[25] << 24);
}
*/
import "C"

import "unsafe"

// Checksum computes the CRC libogg stores in a page with the given
// header and body. The CRC field of header is ignored.
func Checksum(header, body []byte) uint32 {
	if len(header) < headerSize {
		return 0
	}
	hdr := append([]byte(nil), header...)
	var b *C.uchar
	if len(body) > 0 {
		b = (*C.uchar)(unsafe.Pointer(&body[0]))
	}
	return uint32(C.oggs_checksum(
		(*C.uchar)(unsafe.Pointer(&hdr[0])), C.long(len(hdr)),
		b, C.long(len(body))))
}
