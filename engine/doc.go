// SPDX-License-Identifier: EPL-2.0

// Package engine defines the capability set a perceptual audio encoder
// must provide to drive an encoding session.
//
// An Engine is created by a Factory from a Config, emits its header
// packets once, then alternates between Submit (copy samples into the
// analysis buffer) and Packets (drain every packet the engine can form
// from what it has seen so far). SignalEndOfStream tells the engine no
// more samples follow; draining afterwards yields the remaining packets,
// the last one carrying the EOS flag.
//
//	eng, err := factory(engine.Config{SampleRate: 48000, Channels: 2, Quality: 0.4})
//	if err != nil {
//	    return err // wraps engine.ErrInit
//	}
//	defer eng.Close()
//
//	if err := eng.Submit(left, right); err != nil {
//	    return err
//	}
//	for pkt, err := range eng.Packets() {
//	    if err != nil {
//	        return err
//	    }
//	    // hand pkt to the muxer
//	}
//
// The package holds no encoder itself. The libvorbis-backed engine lives
// in engine/vorbisenc.
package engine
