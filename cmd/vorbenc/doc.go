// SPDX-License-Identifier: EPL-2.0

// Command vorbenc encodes audio to Ogg Vorbis and inspects Ogg streams.
//
//	vorbenc tone -o tone.ogg              # one second of 400 Hz
//	vorbenc encode take.wav               # writes take.ogg
//	vorbenc inspect take.ogg              # page table
//	vorbenc config init                   # sample ~/.config/vorbenc/config.toml
//
// Settings come from the TOML file described in internal/config; flags
// override them.
package main
