// SPDX-License-Identifier: EPL-2.0

package session

// State is the lifecycle position of a Session.
type State int

const (
	StateCreated State = iota
	StateActive
	StateFinished
	StateFailed
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateActive:
		return "active"
	case StateFinished:
		return "finished"
	case StateFailed:
		return "failed"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// readable reports whether the output buffer may be inspected.
func (s State) readable() bool {
	return s == StateActive || s == StateFinished
}
