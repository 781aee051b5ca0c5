package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type fakeNode struct {
	numIn, numOut int
}

func (f fakeNode) NumInputs() int  { return f.numIn }
func (f fakeNode) NumOutputs() int { return f.numOut }
func (f fakeNode) Render(*RenderIO) {}

func source() Node { return fakeNode{numIn: 0, numOut: 1} }
func fanOut() Node { return fakeNode{numIn: 1, numOut: 2} }
func fanIn() Node  { return fakeNode{numIn: 2, numOut: 1} }
func sink() Node   { return fakeNode{numIn: 1, numOut: 0} }

func TestCycleDetection(t *testing.T) {
	b := NewBuilder()
	sinkID := b.AddNode(sink()).Build()
	x := b.AddNode(fanOut()).OutputTo(0, sinkID.Input(0)).Build()
	y := b.AddNode(fanIn()).OutputTo(0, x.Input(0)).InputFrom(1, x.Output(1)).Build()
	b.AddNode(source()).OutputTo(0, y.Input(0))

	_, err := b.Build(10)
	require.Error(t, err)
	buildErr, ok := err.(*BuildError)
	require.True(t, ok)
	require.Equal(t, ErrCycle, buildErr.Kind)
}

func TestCorrectEvaluationOrder(t *testing.T) {
	b := NewBuilder()
	sinkID := b.AddNode(sink()).Build()
	x := b.AddNode(fanOut()).Build()
	y := b.AddNode(fanIn()).OutputTo(0, sinkID.Input(0)).InputFrom(0, x.Output(1)).InputFrom(1, x.Output(0)).Build()
	src := b.AddNode(source()).OutputTo(0, x.Input(0)).Build()

	g, err := b.Build(10)
	require.NoError(t, err)
	require.Equal(t, []NodeID{src, x, y, sinkID}, g.evaluationOrder)
}

// TestPropertyForwardOnlyChainsNeverCycle builds a node chain where edges
// only ever point from an earlier node to a later one. Such a graph can
// never contain a cycle, no matter how the edges are chosen, so Build must
// always succeed and produce a full evaluation order.
func TestPropertyForwardOnlyChainsNeverCycle(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 12).Draw(t, "n")

		b := NewBuilder()
		ids := make([]NodeID, n)
		ids[0] = b.AddNode(source()).Build()
		for i := 1; i < n-1; i++ {
			ids[i] = b.AddNode(fanOut()).InputFrom(0, ids[i-1].Output(0)).Build()
		}
		if n > 1 {
			ids[n-1] = b.AddNode(sink()).InputFrom(0, ids[n-2].Output(0)).Build()
		}

		g, err := b.Build(16)
		require.NoError(t, err)
		require.Len(t, g.evaluationOrder, n)
	})
}

func TestStepAdvancesTime(t *testing.T) {
	b := NewBuilder()
	b.AddNode(sink())
	g, err := b.Build(32)
	require.NoError(t, err)
	require.Equal(t, Sample(0), g.Time())
	g.Step()
	require.Equal(t, Sample(32), g.Time())
}
