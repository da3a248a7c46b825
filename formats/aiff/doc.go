// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes 16 and 24-bit AIFF files into audio sources.
//
// Decoding uses github.com/go-audio/aiff. The package wraps the go-audio
// decoder in an audio.Source so AIFF input can be transcoded to Ogg
// Vorbis by vorbenc.EncodeSource and the `vorbenc encode` command. The
// registry maps both the .aiff and .aif extensions here.
//
// # Supported Input
//
//   - Uncompressed AIFF with 16 or 24-bit samples; other sample sizes
//     return ErrUnsupportedDepth
//   - Any channel count and sample rate
//
// Files that are not FORM/AIFF return ErrNotAiffFile. A missing or empty
// COMM chunk returns ErrUnsupportedAiffLayout.
//
// # Decoding
//
//	f, err := os.Open("take.aiff")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	src, err := aiff.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//
//	buf := make([]float32, src.BufSize())
//	n, err := src.ReadSamples(buf)
//
// go-audio needs an io.ReadSeeker. Other readers are read into memory
// before decoding.
//
// # Output Format
//
//   - Sample format: interleaved float32, big-endian integer samples
//     divided by full scale for the bit depth
//   - Channels and sample rate: those of the file
//
// # Limitations
//
//   - Decoding only.
//   - AIFF-C compressed variants are not supported.
package aiff
