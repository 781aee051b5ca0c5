// Package graph implements the block-stepped audio processing graph: nodes
// connected by shared buffers, rendered in topological order one block at a
// time.
package graph

import "txtsynth/internal/wave"

// Sample is a position in time measured in samples.
type Sample = int64

// NodeID identifies a node added to a Builder or Graph.
type NodeID int

// Input returns a reference to one of this node's inputs.
func (id NodeID) Input(index int) InputRef { return InputRef{Node: id, Index: index} }

// Output returns a reference to one of this node's outputs.
func (id NodeID) Output(index int) OutputRef { return OutputRef{Node: id, Index: index} }

// InputRef names one input slot of a node.
type InputRef struct {
	Node  NodeID
	Index int
}

// OutputRef names one output slot of a node.
type OutputRef struct {
	Node  NodeID
	Index int
}

// Node is a unit of audio processing: it reads its inputs and writes its
// outputs each time Render is called.
type Node interface {
	NumInputs() int
	NumOutputs() int
	Render(rio *RenderIO)
}

// RenderIO gives a Node access to its input and output buffers for one
// block.
type RenderIO struct {
	start   Sample
	length  int
	inputs  []*wave.Buffer
	outputs []*wave.Buffer
}

// Start returns the sample time of the first sample in this block.
func (r *RenderIO) Start() Sample { return r.start }

// Length returns the number of samples in this block.
func (r *RenderIO) Length() int { return r.length }

// Input returns the buffer connected to the given input index. Unconnected
// inputs are a fresh, always-silent buffer.
func (r *RenderIO) Input(index int) *wave.Buffer { return r.inputs[index] }

// Output returns the buffer backing the given output index.
func (r *RenderIO) Output(index int) *wave.Buffer { return r.outputs[index] }

type nodeHolder struct {
	node    Node
	inputs  []*wave.Buffer
	outputs []*wave.Buffer
}

func newNodeHolder(node Node, bufferSize int) *nodeHolder {
	inputs := make([]*wave.Buffer, node.NumInputs())
	for i := range inputs {
		inputs[i] = wave.NewBuffer(bufferSize)
	}
	outputs := make([]*wave.Buffer, node.NumOutputs())
	for i := range outputs {
		outputs[i] = wave.NewBuffer(bufferSize)
	}
	return &nodeHolder{node: node, inputs: inputs, outputs: outputs}
}

// Graph is a built, ready-to-render audio processing graph.
type Graph struct {
	nodes            []*nodeHolder
	evaluationOrder  []NodeID
	time             Sample
	bufferSize       int
}

// Step renders one block: every node is evaluated once, in topological
// order, then the graph's clock advances by one block.
func (g *Graph) Step() {
	for _, id := range g.evaluationOrder {
		holder := g.nodes[id]
		rio := &RenderIO{
			start:   g.time,
			length:  g.bufferSize,
			inputs:  holder.inputs,
			outputs: holder.outputs,
		}
		holder.node.Render(rio)
	}
	g.time += Sample(g.bufferSize)
}

// Time returns the sample position the graph has reached.
func (g *Graph) Time() Sample { return g.time }

// BufferSize returns the number of samples rendered per Step.
func (g *Graph) BufferSize() int { return g.bufferSize }

// Output returns the buffer backing the given output of a node, useful for
// a driver that wants to read a node's output directly.
func (g *Graph) Output(ref OutputRef) *wave.Buffer {
	return g.nodes[ref.Node].outputs[ref.Index]
}
