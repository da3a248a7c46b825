// SPDX-License-Identifier: EPL-2.0

// Package wav decodes integer PCM WAV files into audio sources.
//
// Decoding uses github.com/go-audio/wav. The package wraps the go-audio
// decoder in an audio.Source so WAV input can be transcoded to Ogg
// Vorbis by vorbenc.EncodeSource and the `vorbenc encode` command.
//
// # Supported Input
//
//   - Format tag 1 (integer PCM); IEEE float and compressed WAV are
//     rejected with ErrUnsupportedFormat
//   - 16, 24 and 32-bit samples; other depths return ErrUnsupportedDepth
//   - Any channel count and sample rate
//
// Files that are not RIFF/WAVE return ErrNotWavFile.
//
// # Decoding
//
//	f, err := os.Open("take.wav")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	src, err := wav.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//
//	buf := make([]float32, src.BufSize())
//	n, err := src.ReadSamples(buf)
//
// go-audio needs an io.ReadSeeker to locate chunks. Readers that cannot
// seek, such as pipes, are read into memory before decoding.
//
// # Output Format
//
//   - Sample format: interleaved float32, integer samples divided by
//     full scale for the bit depth (utils.IntScale)
//   - Channels and sample rate: those of the file
//
// Stereo files feed the encoder directly. Mono and multichannel files
// go through audio.StereoMixer first.
//
// # Reading
//
// ReadSamples needs a destination whose length is a multiple of the
// channel count; otherwise it returns audio.ErrInvalidDstSize. Errors
// from go-audio are returned wrapped.
//
// # Limitations
//
//   - Decoding only.
//   - Extensible-format headers are handled only as far as go-audio
//     reports them as PCM.
package wav
