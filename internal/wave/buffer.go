package wave

import (
	"encoding/binary"
	"math"
)

// Buffer holds one block's worth of stereo float64 samples, the unit of
// data passed along every edge of the graph.
type Buffer struct {
	samples []Stereo[float64]
}

// NewBuffer allocates a silent buffer of the given sample count.
func NewBuffer(sampleCount int) *Buffer {
	return &Buffer{samples: make([]Stereo[float64], sampleCount)}
}

// FillZero resets every sample in the buffer to silence.
func (b *Buffer) FillZero() {
	for i := range b.samples {
		b.samples[i] = Stereo[float64]{}
	}
}

// Len returns the number of samples in the buffer.
func (b *Buffer) Len() int { return len(b.samples) }

// ByteLen returns the size of the buffer in bytes when serialized as
// interleaved little-endian float64 pairs.
func (b *Buffer) ByteLen() int { return b.Len() * 2 * 8 }

// Samples returns the underlying sample slice for read access.
func (b *Buffer) Samples() []Stereo[float64] { return b.samples }

// SamplesMut returns the underlying sample slice for in-place writes.
func (b *Buffer) SamplesMut() []Stereo[float64] { return b.samples }

// CopyBytesTo serializes the buffer as interleaved little-endian float64
// left/right pairs into bytes, returning the number of samples actually
// copied (less than Len if bytes is too small).
func (b *Buffer) CopyBytesTo(bytes []byte) int {
	processed := 0
	for _, sample := range b.samples {
		if (processed+1)*16 > len(bytes) {
			break
		}
		off := processed * 16
		binary.LittleEndian.PutUint64(bytes[off:off+8], math.Float64bits(sample.Left))
		binary.LittleEndian.PutUint64(bytes[off+8:off+16], math.Float64bits(sample.Right))
		processed++
	}
	return processed
}
