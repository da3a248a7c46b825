// SPDX-License-Identifier: EPL-2.0

package session

import (
	"errors"

	"github.com/ik5/vorbenc/buffer"
	"github.com/ik5/vorbenc/engine"
)

var (
	// ErrInvalidState indicates an operation the current state forbids.
	ErrInvalidState = errors.New("session: invalid state")

	// ErrPrecondition indicates invalid arguments to Write.
	ErrPrecondition = errors.New("session: precondition failed")

	// ErrNoEngine indicates a session configured without an engine factory.
	ErrNoEngine = errors.New("session: no engine configured")
)

// Error kinds raised by the collaborators, re-exported for callers that
// only import this package.
var (
	ErrEngineInit     = engine.ErrInit
	ErrAllocation     = buffer.ErrAllocation
	ErrBufferOverflow = buffer.ErrOverflow
)
