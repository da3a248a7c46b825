// SPDX-License-Identifier: EPL-2.0

package ogg

import "errors"

var (
	// ErrInvalidPage indicates a malformed or truncated page.
	ErrInvalidPage = errors.New("ogg: invalid page structure")

	// ErrBadCRC indicates a page whose checksum does not match its content.
	ErrBadCRC = errors.New("ogg: CRC mismatch")

	// ErrClosed is returned by a Stream after Close.
	ErrClosed = errors.New("ogg: stream closed")

	// ErrStreamState indicates libogg could not allocate or grow its
	// stream state.
	ErrStreamState = errors.New("ogg: stream state unavailable")

	// ErrPacketAfterEOS is returned when a packet follows the end-of-stream packet.
	ErrPacketAfterEOS = errors.New("ogg: packet after end of stream")
)
