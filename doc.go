// SPDX-License-Identifier: EPL-2.0

// Package vorbenc encodes stereo PCM into Ogg Vorbis in memory.
//
// The work is done by an encoding session (package session) that feeds
// blocks of samples to a libvorbisenc engine (package engine/vorbisenc),
// packs the packets into Ogg pages (package ogg) and appends the pages to
// a bounded output buffer (package buffer). This package wires those
// pieces together for the common cases.
//
// # Streaming
//
// Start opens a session with the real engine:
//
//	s, err := vorbenc.Start(48000, 0.4)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	for each block {
//	    if err := s.Write(left, right, n); err != nil {
//	        return err
//	    }
//	}
//	if err := s.Finish(); err != nil {
//	    return err
//	}
//	ogg := s.Bytes()
//
// # Whole inputs
//
// EncodeSource drains any audio.Source, so a decoded file can be encoded
// in one call:
//
//	dec, _ := vorbenc.DefaultRegistry().ForFile("take.wav")
//	src, _ := dec.Decode(f)
//	out, err := vorbenc.EncodeSource(src, session.DefaultConfig())
//
// EncodeFloatBuffer does the same for a go-audio FloatBuffer and
// EncodeTone produces a test tone.
//
// # Supported Inputs
//
//   - WAV (16, 24 and 32-bit PCM) via formats/wav
//   - AIFF (16 and 24-bit) via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//
// Mono and multi-channel inputs are folded to stereo. The sample rate is
// taken from the input; no resampling is done.
package vorbenc
