// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
)

type mockAiffReader struct {
	channels int
	samples  []int
	offset   int
	err      error
}

func (m *mockAiffReader) Format() *goaudio.Format {
	return &goaudio.Format{SampleRate: 44100, NumChannels: m.channels}
}

func (m *mockAiffReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	n := copy(buf.Data, m.samples[m.offset:])
	m.offset += n
	return n, nil
}

func TestDecoder_Invalid(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("This is not AIFF data")} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); !errors.Is(err, ErrNotAiffFile) {
			t.Errorf("Decode(%q) error = %v, want ErrNotAiffFile", data, err)
		}
	}
}

func TestDecoder_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "in.aiff")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	enc := aiff.NewEncoder(f, 22050, 16, 2)
	in := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 2, SampleRate: 22050},
		Data:           []int{16384, -16384, 8192, -8192, 0, 0},
		SourceBitDepth: 16,
	}
	if err := enc.Write(in); err != nil {
		t.Fatalf("Encoder.Write() error = %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Encoder.Close() error = %v", err)
	}
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// A plain reader forces the in-memory path.
	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.SampleRate() != 22050 || src.Channels() != 2 {
		t.Fatalf("Decode() = %d Hz %d ch", src.SampleRate(), src.Channels())
	}

	buf := make([]float32, 16)
	n, err := src.ReadSamples(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	want := []float32{0.5, -0.5, 0.25, -0.25, 0, 0}
	if n != len(want) {
		t.Fatalf("ReadSamples() n = %d, want %d", n, len(want))
	}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bitDepth int
		samples  []int
		want     []float32
	}{
		{"16-bit", 16, []int{16384, -32768}, []float32{0.5, -1}},
		{"24-bit", 24, []int{4194304, -8388608}, []float32{0.5, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := &source{dec: &mockAiffReader{channels: 2, samples: tt.samples}, channels: 2, bitDepth: tt.bitDepth}
			buf := make([]float32, 4)
			n, err := src.ReadSamples(buf)
			if n != 2 || !errors.Is(err, io.EOF) {
				t.Fatalf("ReadSamples() = %d, %v; want 2, EOF", n, err)
			}
			for i, w := range tt.want {
				if buf[i] != w {
					t.Errorf("sample %d = %v, want %v", i, buf[i], w)
				}
			}
			if n, err := src.ReadSamples(buf); n != 0 || !errors.Is(err, io.EOF) {
				t.Errorf("ReadSamples() after end = %d, %v", n, err)
			}
		})
	}
}

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockAiffReader{channels: 1, err: io.ErrUnexpectedEOF}, channels: 1, bitDepth: 16}
	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want ErrUnexpectedEOF", err)
	}
	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v", n, err)
	}
}
