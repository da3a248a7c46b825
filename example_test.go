// SPDX-License-Identifier: EPL-2.0

package vorbenc_test

import (
	"fmt"
	"time"

	"github.com/ik5/vorbenc"
	"github.com/ik5/vorbenc/ogg"
	"github.com/ik5/vorbenc/session"
)

// Example_tone encodes one second of the default test tone.
func Example_tone() {
	out, err := vorbenc.EncodeTone(vorbenc.DefaultToneFrequency, time.Second, session.DefaultConfig())
	if err != nil {
		fmt.Printf("encode error: %v\n", err)
		return
	}

	pages, err := ogg.ReadPages(out)
	if err != nil {
		fmt.Printf("page error: %v\n", err)
		return
	}

	last := pages[len(pages)-1]
	fmt.Printf("first page BOS: %v\n", pages[0].IsBOS())
	fmt.Printf("last page EOS: %v, granule %d\n", last.IsEOS(), last.GranulePos())
	// Output:
	// first page BOS: true
	// last page EOS: true, granule 48000
}

// Example_streaming feeds a session block by block.
func Example_streaming() {
	s, err := vorbenc.Start(48000, 0.4)
	if err != nil {
		fmt.Printf("start error: %v\n", err)
		return
	}
	defer s.Close()

	tone := vorbenc.NewTone(48000, 440, 100*time.Millisecond)
	buf := make([]float32, 2*vorbenc.BlockSize)
	left := make([]float32, vorbenc.BlockSize)
	right := make([]float32, vorbenc.BlockSize)
	for {
		n, err := tone.ReadSamples(buf)
		frames := n / 2
		for i := range frames {
			left[i], right[i] = buf[2*i], buf[2*i+1]
		}
		if frames > 0 {
			if werr := s.Write(left, right, frames); werr != nil {
				fmt.Printf("write error: %v\n", werr)
				return
			}
		}
		if err != nil {
			break
		}
	}

	if err := s.Finish(); err != nil {
		fmt.Printf("finish error: %v\n", err)
		return
	}
	fmt.Printf("state %s, %d samples\n", s.State(), s.GranulePos())
	// Output: state finished, 4800 samples
}
