// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files into audio sources for the encoder.
//
// Decoding is done by github.com/hajimehoshi/go-mp3, a pure-Go MPEG
// audio decoder. The package wraps it in an audio.Source so MP3 input
// can be transcoded to Ogg Vorbis by vorbenc.EncodeSource and the
// `vorbenc encode` command.
//
// # Supported Input
//
// The decoder accepts what go-mp3 accepts:
//   - MPEG-1 and MPEG-2 Layer III
//   - Constant and variable bitrates
//   - Mono and stereo streams
//
// # Decoding
//
//	f, err := os.Open("take.mp3")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	buf := make([]float32, src.BufSize())
//	n, err := src.ReadSamples(buf)
//
// Decode errors from go-mp3 are returned wrapped with an "mp3:" prefix;
// use errors.Is or errors.As against go-mp3's errors when needed.
//
// # Output Format
//
//   - Sample format: interleaved float32 in [-1, 1)
//   - Channels: always 2. go-mp3 duplicates mono streams to stereo, so
//     a mono file reaches the encoder as two identical channels.
//   - Sample rate: that of the file. No conversion is done; the Ogg
//     stream is written at the input rate.
//
// # Reading
//
// go-mp3 produces 16-bit little-endian PCM in frame-sized chunks. The
// source reads whole samples with io.ReadFull, so a short read at the
// end of a frame never splits a sample. The final read returns the
// remaining samples together with io.EOF.
//
// # Limitations
//
//   - Decoding only; the module writes Ogg Vorbis, never MP3.
//   - The first frames may carry encoder delay padding, which is kept.
//   - Close is a no-op; the caller owns the underlying reader.
package mp3
