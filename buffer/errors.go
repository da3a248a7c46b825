// SPDX-License-Identifier: EPL-2.0

package buffer

import "errors"

var (
	// ErrAllocation indicates the arena memory could not be provided.
	ErrAllocation = errors.New("buffer: allocation failed")

	// ErrOverflow indicates an append would exceed the arena capacity.
	ErrOverflow = errors.New("buffer: capacity exceeded")

	// ErrReleased is returned by Append after Release.
	ErrReleased = errors.New("buffer: arena released")
)
