// SPDX-License-Identifier: EPL-2.0

// Package buffer provides the capacity-checked output arena that
// encoded pages are appended to.
//
// An Arena is a single contiguous byte region with a write cursor. Every
// Append is all-or-nothing: either both the header and the body land at
// the cursor, or the call fails and the arena is left exactly as it was.
// Writing past the declared capacity is never possible.
//
//	a, err := buffer.New(3 << 20)
//	if err != nil {
//	    return err // wraps buffer.ErrAllocation
//	}
//	if err := a.Append(page.Header, page.Body); errors.Is(err, buffer.ErrOverflow) {
//	    // the encoded stream outgrew the arena
//	}
//
// # Growth
//
// WithGrowth lets the arena reallocate instead of failing. The capacity
// doubles (or grows to the exact need, whichever is larger) up to the
// given limit; appends beyond the limit still fail with ErrOverflow.
//
//	a, _ := buffer.New(1<<20, buffer.WithGrowth(64<<20))
package buffer
