package transducer

import (
	"bytes"
	"errors"
	"testing"

	"txtsynth/internal/graph"
	"txtsynth/internal/wave"
)

type constSource struct {
	value wave.Stereo[float64]
}

func (c *constSource) NumInputs() int  { return 0 }
func (c *constSource) NumOutputs() int { return 1 }
func (c *constSource) Render(rio *graph.RenderIO) {
	out := rio.Output(0).SamplesMut()
	for i := range out {
		out[i] = c.value
	}
}

func TestGainScalesSamples(t *testing.T) {
	b := graph.NewBuilder()
	src := b.AddNode(&constSource{value: wave.Stereo[float64]{Left: 1, Right: 2}}).Build()
	gainNode := NewGain(0.5)
	gain := b.AddNode(gainNode).InputFrom(0, src.Output(0)).Build()

	g, err := b.Build(4)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	g.Step()

	out := g.Output(gain.Output(0)).Samples()
	want := wave.Stereo[float64]{Left: 0.5, Right: 1}
	for _, s := range out {
		if s != want {
			t.Fatalf("gain output = %v, want %v", s, want)
		}
	}
}

func TestGainFromDecibelsMatchesLinearFactor(t *testing.T) {
	got := GainFromDecibels(-20.0).gain
	want := 1.0 / 100.0
	if diff := got - want; diff > 1e-12 || diff < -1e-12 {
		t.Fatalf("GainFromDecibels(-20) linear factor = %v, want %v", got, want)
	}
}

func TestSumAddsAllInputs(t *testing.T) {
	b := graph.NewBuilder()
	a := b.AddNode(&constSource{value: wave.Stereo[float64]{Left: 1, Right: 1}}).Build()
	c := b.AddNode(&constSource{value: wave.Stereo[float64]{Left: 2, Right: 3}}).Build()
	sum := b.AddNode(NewSum(2)).InputFrom(0, a.Output(0)).InputFrom(1, c.Output(0)).Build()

	g, err := b.Build(4)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	g.Step()

	out := g.Output(sum.Output(0)).Samples()
	want := wave.Stereo[float64]{Left: 3, Right: 4}
	for _, s := range out {
		if s != want {
			t.Fatalf("sum output = %v, want %v", s, want)
		}
	}
}

func TestPCMSinkWritesInterleavedBytes(t *testing.T) {
	b := graph.NewBuilder()
	src := b.AddNode(&constSource{value: wave.Stereo[float64]{Left: 1, Right: -1}}).Build()
	var buf bytes.Buffer
	b.AddNode(NewPCMSink(&buf)).InputFrom(0, src.Output(0))

	g, err := b.Build(4)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	g.Step()

	if buf.Len() != 4*16 {
		t.Fatalf("wrote %d bytes, want %d", buf.Len(), 4*16)
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestPCMSinkLatchesErrorAndStopsWriting(t *testing.T) {
	b := graph.NewBuilder()
	src := b.AddNode(&constSource{value: wave.Stereo[float64]{Left: 1, Right: 1}}).Build()
	sink := NewPCMSink(failingWriter{})
	b.AddNode(sink).InputFrom(0, src.Output(0))

	g, err := b.Build(4)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	g.Step()
	if !sink.failed {
		t.Fatalf("expected sink to latch the write error")
	}
	g.Step() // must not panic or attempt to write again
}
