// SPDX-License-Identifier: EPL-2.0

package engine

import "errors"

var (
	// ErrInit indicates the engine rejected the requested configuration.
	ErrInit = errors.New("engine: initialization rejected")

	// ErrClosed is returned by any call after Close.
	ErrClosed = errors.New("engine: closed")

	// ErrEmptyBlock is returned when Submit receives no samples.
	ErrEmptyBlock = errors.New("engine: empty sample block")

	// ErrChannelMismatch is returned when left and right blocks differ in length.
	ErrChannelMismatch = errors.New("engine: channel blocks differ in length")

	// ErrInvalidTag indicates a comment entry libvorbis would write
	// malformed.
	ErrInvalidTag = errors.New("engine: invalid comment tag")

	// ErrEndOfStream is returned by Submit after SignalEndOfStream.
	ErrEndOfStream = errors.New("engine: end of stream already signalled")
)
