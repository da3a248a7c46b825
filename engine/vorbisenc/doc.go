// SPDX-License-Identifier: EPL-2.0

// Package vorbisenc is an engine.Engine backed by the reference Vorbis
// encoder (libvorbisenc) through cgo.
//
// Building this package requires the libvorbis and libogg development
// files, found through pkg-config (vorbisenc, vorbis, ogg). On Debian
// based systems:
//
//	apt install libvorbis-dev libogg-dev pkg-config
//
// The encoder runs in variable bitrate mode. Quality follows the
// libvorbis scale, -0.1 to 1.0; 0.4 is roughly 128 kbit/s for 44.1 kHz
// stereo.
//
// All libvorbis state lives in C memory, since the library keeps
// pointers between its own structures. Packet payloads are copied into
// Go memory before they are handed out, so packets stay valid after the
// encoder moves on or is closed.
package vorbisenc
