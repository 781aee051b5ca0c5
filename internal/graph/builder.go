package graph

import "fmt"

// Builder constructs a Graph from nodes and the edges between them.
type Builder struct {
	nodes []Node
	edges []edge
}

type edge struct {
	output OutputRef
	input  InputRef
}

// NewBuilder returns an empty graph builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddNode registers a node and returns a NodeBuilder for wiring its edges.
func (b *Builder) AddNode(node Node) *NodeBuilder {
	id := NodeID(len(b.nodes))
	b.nodes = append(b.nodes, node)
	return &NodeBuilder{builder: b, node: id}
}

// BuildError is returned by Build when the graph cannot be constructed.
type BuildError struct {
	Kind   BuildErrorKind
	Node   NodeID
	Input  InputRef
	Output OutputRef
}

// BuildErrorKind classifies a BuildError.
type BuildErrorKind int

const (
	ErrCycle BuildErrorKind = iota
	ErrInvalidNode
	ErrInvalidInput
	ErrInvalidOutput
)

func (e *BuildError) Error() string {
	switch e.Kind {
	case ErrCycle:
		return "graph: there is a cycle in the graph"
	case ErrInvalidNode:
		return fmt.Sprintf("graph: referenced node %d does not exist", e.Node)
	case ErrInvalidInput:
		return fmt.Sprintf("graph: referenced input %v does not exist", e.Input)
	case ErrInvalidOutput:
		return fmt.Sprintf("graph: referenced output %v does not exist", e.Output)
	default:
		return "graph: build error"
	}
}

// Build turns the builder's nodes and edges into a ready-to-render Graph,
// provided every edge refers to an existing node, input and output and the
// graph has no cycles.
func (b *Builder) Build(bufferSize int) (*Graph, error) {
	holders := make([]*nodeHolder, len(b.nodes))
	for i, n := range b.nodes {
		holders[i] = newNodeHolder(n, bufferSize)
	}

	incoming := make([][]NodeID, len(holders))
	outgoing := make([][]NodeID, len(holders))

	for _, e := range b.edges {
		if int(e.output.Node) >= len(holders) {
			return nil, &BuildError{Kind: ErrInvalidNode, Node: e.output.Node}
		}
		if int(e.input.Node) >= len(holders) {
			return nil, &BuildError{Kind: ErrInvalidNode, Node: e.input.Node}
		}
		outHolder := holders[e.output.Node]
		if e.output.Index >= len(outHolder.outputs) {
			return nil, &BuildError{Kind: ErrInvalidOutput, Output: e.output}
		}
		inHolder := holders[e.input.Node]
		if e.input.Index >= len(inHolder.inputs) {
			return nil, &BuildError{Kind: ErrInvalidInput, Input: e.input}
		}

		inHolder.inputs[e.input.Index] = outHolder.outputs[e.output.Index]

		if !containsNode(incoming[e.input.Node], e.output.Node) {
			incoming[e.input.Node] = append(incoming[e.input.Node], e.output.Node)
		}
		if !containsNode(outgoing[e.output.Node], e.input.Node) {
			outgoing[e.output.Node] = append(outgoing[e.output.Node], e.input.Node)
		}
	}

	var sorted []NodeID
	var ready []NodeID
	for id, from := range incoming {
		if len(from) == 0 {
			ready = append(ready, NodeID(id))
		}
	}

	for len(ready) > 0 {
		n := ready[len(ready)-1]
		ready = ready[:len(ready)-1]
		sorted = append(sorted, n)

		for _, m := range outgoing[n] {
			incoming[m] = removeNode(incoming[m], n)
			if len(incoming[m]) == 0 {
				ready = append(ready, m)
			}
		}
		outgoing[n] = nil
	}

	for _, from := range incoming {
		if len(from) > 0 {
			return nil, &BuildError{Kind: ErrCycle}
		}
	}

	return &Graph{
		nodes:           holders,
		evaluationOrder: sorted,
		bufferSize:      bufferSize,
	}, nil
}

func containsNode(list []NodeID, n NodeID) bool {
	for _, x := range list {
		if x == n {
			return true
		}
	}
	return false
}

func removeNode(list []NodeID, n NodeID) []NodeID {
	out := list[:0]
	for _, x := range list {
		if x != n {
			out = append(out, x)
		}
	}
	return out
}

// NodeBuilder wires a single node's edges while building a graph.
type NodeBuilder struct {
	builder *Builder
	node    NodeID
}

// OutputTo connects this node's output at outputIndex to another node's
// input.
func (nb *NodeBuilder) OutputTo(outputIndex int, input InputRef) *NodeBuilder {
	nb.builder.edges = append(nb.builder.edges, edge{output: nb.node.Output(outputIndex), input: input})
	return nb
}

// InputFrom connects this node's input at inputIndex to another node's
// output.
func (nb *NodeBuilder) InputFrom(inputIndex int, output OutputRef) *NodeBuilder {
	nb.builder.edges = append(nb.builder.edges, edge{output: output, input: nb.node.Input(inputIndex)})
	return nb
}

// Build stops wiring this node and returns its ID for future references.
func (nb *NodeBuilder) Build() NodeID {
	return nb.node
}
