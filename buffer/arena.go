// SPDX-License-Identifier: EPL-2.0

package buffer

import (
	"fmt"
	"io"
)

// MaxCapacity bounds any arena, fixed or growing.
const MaxCapacity = 1<<31 - 1

// Option configures an Arena.
type Option func(*Arena)

// WithGrowth allows the arena to reallocate up to limit bytes. A limit
// at or below the initial capacity keeps the arena fixed.
func WithGrowth(limit int) Option {
	return func(a *Arena) {
		a.limit = limit
	}
}

// Arena is a fixed (or bounded growing) append-only byte region.
// It is not safe for concurrent use.
type Arena struct {
	buf      []byte
	used     int
	limit    int
	released bool
}

// New reserves capacity bytes.
func New(capacity int, opts ...Option) (*Arena, error) {
	if capacity <= 0 || capacity > MaxCapacity {
		return nil, fmt.Errorf("%w: capacity %d outside (0, %d]", ErrAllocation, capacity, MaxCapacity)
	}

	a := &Arena{}
	for _, opt := range opts {
		opt(a)
	}
	a.limit = min(max(a.limit, capacity), MaxCapacity)

	buf, err := allocate(capacity)
	if err != nil {
		return nil, err
	}
	a.buf = buf
	return a, nil
}

// allocate turns a runtime allocation panic into ErrAllocation.
func allocate(n int) (buf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf, err = nil, fmt.Errorf("%w: %d bytes: %v", ErrAllocation, n, r)
		}
	}()
	return make([]byte, n), nil
}

// Append copies header then body at the cursor.
func (a *Arena) Append(header, body []byte) error {
	if a.released {
		return ErrReleased
	}

	need := a.used + len(header) + len(body)
	if need > len(a.buf) {
		if err := a.grow(need); err != nil {
			return err
		}
	}

	a.used += copy(a.buf[a.used:], header)
	a.used += copy(a.buf[a.used:], body)
	return nil
}

func (a *Arena) grow(need int) error {
	if need > a.limit {
		return fmt.Errorf("%w: %d bytes used, append of %d, capacity %d",
			ErrOverflow, a.used, need-a.used, a.limit)
	}

	size := min(max(2*len(a.buf), need), a.limit)
	buf, err := allocate(size)
	if err != nil {
		return err
	}
	copy(buf, a.buf[:a.used])
	a.buf = buf
	return nil
}

// Bytes returns the written region. The slice is capped at its length,
// so appending to it never writes into the arena.
func (a *Arena) Bytes() []byte {
	return a.buf[:a.used:a.used]
}

// Len returns the number of bytes written.
func (a *Arena) Len() int { return a.used }

// Cap returns the current capacity.
func (a *Arena) Cap() int { return len(a.buf) }

// Limit returns the largest capacity the arena may reach.
func (a *Arena) Limit() int { return a.limit }

// Available returns how many bytes may still be appended without growth.
func (a *Arena) Available() int { return len(a.buf) - a.used }

// WriteTo writes the written region to w.
func (a *Arena) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(a.Bytes())
	if err != nil {
		return int64(n), fmt.Errorf("%w", err)
	}
	return int64(n), nil
}

// Release drops the arena memory. Further appends fail with ErrReleased.
func (a *Arena) Release() {
	a.buf = nil
	a.used = 0
	a.released = true
}
