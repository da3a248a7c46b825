// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const wavFormatPCM = 1

// WriteWAV writes interleaved integer PCM to path as a WAV file using
// the go-audio encoder.
func WriteWAV(tb testing.TB, path string, rate, channels, bitDepth int, samples []int) {
	tb.Helper()

	f, err := os.Create(path)
	if err != nil {
		tb.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, rate, bitDepth, channels, wavFormatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           samples,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		tb.Fatalf("encode %s: %v", path, err)
	}
	if err := enc.Close(); err != nil {
		tb.Fatalf("finish %s: %v", path, err)
	}
}

// WAV returns the bytes of a WAV file holding samples.
func WAV(tb testing.TB, rate, channels, bitDepth int, samples []int) []byte {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "fixture.wav")
	WriteWAV(tb, path, rate, channels, bitDepth, samples)
	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read %s: %v", path, err)
	}
	return data
}

// Ramp returns n interleaved 16-bit samples stepping by step and
// wrapping inside the 16-bit range.
func Ramp(n, step int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = (i*step)%65536 - 32768
	}
	return out
}
