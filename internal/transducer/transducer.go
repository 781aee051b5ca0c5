// Package transducer implements the small fixed graph nodes that combine
// and terminate audio streams: gain, summation, and a PCM byte sink.
package transducer

import (
	"io"

	"github.com/charmbracelet/log"

	"txtsynth/internal/graph"
	"txtsynth/internal/util"
)

// Gain scales its single input by a constant linear factor.
type Gain struct {
	gain float64
}

// NewGain returns a gain node that applies a linear factor.
func NewGain(gain float64) *Gain {
	return &Gain{gain: gain}
}

// GainFromDecibels returns a gain node that applies a logarithmic factor
// measured in decibels.
func GainFromDecibels(decibels float64) *Gain {
	return NewGain(util.FromDecibels(decibels))
}

// NumInputs is always one.
func (g *Gain) NumInputs() int { return 1 }

// NumOutputs is always one.
func (g *Gain) NumOutputs() int { return 1 }

// Render scales the input block by the configured gain.
func (g *Gain) Render(rio *graph.RenderIO) {
	input := rio.Input(0).Samples()
	output := rio.Output(0).SamplesMut()
	for i, s := range input {
		output[i] = s.Scale(g.gain)
	}
}

// Sum adds a fixed number of inputs into a single output.
type Sum struct {
	count int
}

// NewSum returns a Sum node with the given number of inputs.
func NewSum(count int) *Sum {
	return &Sum{count: count}
}

// NumInputs returns the configured input count.
func (s *Sum) NumInputs() int { return s.count }

// NumOutputs is always one.
func (s *Sum) NumOutputs() int { return 1 }

// Render adds every input block onto the (zeroed) output block.
func (s *Sum) Render(rio *graph.RenderIO) {
	out := rio.Output(0)
	out.FillZero()
	outSamples := out.SamplesMut()

	for i := 0; i < s.count; i++ {
		inSamples := rio.Input(i).Samples()
		for j, sample := range inSamples {
			outSamples[j] = outSamples[j].Add(sample)
		}
	}
}

// PCMSink is a zero-output node that writes its single input to an
// io.Writer as interleaved little-endian float64 stereo samples. Once a
// write fails, it logs the failure once and silently drops all further
// output rather than erroring out of the render loop.
type PCMSink struct {
	w       io.Writer
	scratch []byte
	failed  bool
}

// NewPCMSink returns a sink writing interleaved PCM samples to w.
func NewPCMSink(w io.Writer) *PCMSink {
	return &PCMSink{w: w}
}

// NumInputs is always one.
func (s *PCMSink) NumInputs() int { return 1 }

// NumOutputs is always zero.
func (s *PCMSink) NumOutputs() int { return 0 }

// Render serializes the input block and writes it out.
func (s *PCMSink) Render(rio *graph.RenderIO) {
	if s.failed {
		return
	}

	input := rio.Input(0)
	if len(s.scratch) < input.ByteLen() {
		s.scratch = make([]byte, input.ByteLen())
	}
	input.CopyBytesTo(s.scratch)

	if _, err := s.w.Write(s.scratch); err != nil {
		log.Error("failed to write audio output", "err", err)
		s.failed = true
	}
}
