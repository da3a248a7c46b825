// SPDX-License-Identifier: EPL-2.0

// Package session drives one streaming encode from raw stereo sample
// blocks to a finished Ogg stream held in memory.
//
// A Session owns one encoder engine, one Ogg stream and one output
// arena, and moves through a fixed set of states:
//
//	Created --Start--> Active --Finish--> Finished --Close--> Closed
//	                     |
//	                     +-- failed Write/Finish --> Failed --Close--> Closed
//
// Start initializes the engine, writes the three header pages and leaves
// the session Active. Each Write submits a block, drains the packets the
// engine can form, pages them and appends the pages to the arena. Finish
// signals end of stream, drains and flushes everything, and releases the
// engine and the muxer. The buffer stays readable until Close.
//
//	s, err := session.Open(session.DefaultConfig(), session.WithEngine(vorbisenc.Factory))
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	if err := s.Write(left, right, len(left)); err != nil {
//	    return err
//	}
//	if err := s.Finish(); err != nil {
//	    return err
//	}
//	ogg := s.Bytes()
//
// # Errors
//
// Operations called in a state that forbids them fail with
// ErrInvalidState; invalid sample counts with ErrPrecondition. An append
// that does not fit the arena fails with ErrBufferOverflow and never
// writes past the declared capacity. After a failed Write or Finish only
// Close is valid.
//
// # Concurrency
//
// A Session is not safe for concurrent use. Independent sessions share
// no state and may run on separate goroutines.
package session
