// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrNotAiffFile indicates the input is not a valid AIFF file.
	ErrNotAiffFile = errors.New("not an AIFF file")

	// ErrUnsupportedDepth indicates a sample size other than 16 or 24 bits.
	ErrUnsupportedDepth = errors.New("only 16 and 24-bit AIFF is supported")

	// ErrUnsupportedAiffLayout indicates a missing or empty COMM chunk.
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")
)
