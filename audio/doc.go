// SPDX-License-Identifier: EPL-2.0

// Package audio provides the input side of the encoder: decoded PCM
// sources, a decoder registry and helpers that turn any source into the
// stereo blocks a session consumes.
//
// # Source Interface
//
// All decoders return a Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Samples are interleaved float32 values in [-1.0, 1.0]. ReadSamples
// returns io.EOF once the stream is exhausted.
//
// # Channel Mixing
//
// Sessions only encode stereo. StereoMixer duplicates mono input and
// folds wider layouts down to two channels:
//
//	stereo := audio.NewStereoMixer(source)
//
// # Blocks
//
// Blocks deinterleaves a stereo source into left and right slices:
//
//	for blk, err := range audio.Blocks(stereo, 1024) {
//	    if err != nil {
//	        return err
//	    }
//	    s.Write(blk.Left, blk.Right, blk.Len())
//	}
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, err := registry.ForFile("input.wav")
package audio
