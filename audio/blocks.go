// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"iter"
)

// Block is one chunk of deinterleaved stereo audio.
type Block struct {
	Left  []float32
	Right []float32
}

// Len returns the number of frames in the block.
func (b Block) Len() int { return len(b.Left) }

// Blocks reads src in chunks of at most frames frames and yields them
// split into left and right channels. The block slices are reused
// between iterations. Iteration stops at io.EOF, which is not reported.
func Blocks(src Source, frames int) iter.Seq2[Block, error] {
	return func(yield func(Block, error) bool) {
		if src.Channels() != 2 {
			yield(Block{}, fmt.Errorf("%w: %d channels", ErrNotStereo, src.Channels()))
			return
		}
		if frames <= 0 {
			frames = max(src.BufSize()/2, 1)
		}

		buf := make([]float32, frames*2)
		left := make([]float32, frames)
		right := make([]float32, frames)

		for {
			n, err := src.ReadSamples(buf)
			if f := n / 2; f > 0 {
				for i := range f {
					left[i] = buf[2*i]
					right[i] = buf[2*i+1]
				}
				if !yield(Block{Left: left[:f], Right: right[:f]}, nil) {
					return
				}
			}
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(Block{}, err)
				return
			}
		}
	}
}
