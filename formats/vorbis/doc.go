// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams into audio sources.
//
// Decoding uses github.com/jfreymuth/oggvorbis, a pure-Go reader. The
// package has two jobs in this module:
//   - an input format for `vorbenc encode`, so existing Ogg files can be
//     re-encoded at another quality or with other comment tags;
//   - a verifier for the encoder: tests decode the produced stream and
//     check its length and content.
//
// # Decoding
//
//	f, err := os.Open("take.ogg")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	src, err := vorbis.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//
//	buf := make([]float32, src.BufSize())
//	n, err := src.ReadSamples(buf)
//
// Decoding an in-memory result works the same way:
//
//	src, err := vorbis.Decoder{}.Decode(bytes.NewReader(sess.Bytes()))
//
// # Output Format
//
//   - Sample format: interleaved float32 as produced by the decoder,
//     nominally in [-1, 1]
//   - Channels: as declared in the identification header
//   - Sample rate: as declared in the identification header
//
// # Stream Length
//
// Length reports the number of frames of a seekable stream from the
// granule position of its last page, without decoding audio:
//
//	frames, err := vorbis.Length(bytes.NewReader(data))
//
// For a stream written by a session this equals the number of samples
// per channel that were submitted.
//
// # Limitations
//
//   - Only the first logical stream of a chained or multiplexed file is
//     read.
//   - Seeking is not exposed.
//   - Close is a no-op; the caller owns the underlying reader.
package vorbis
