package scenario

import (
	"errors"
	"fmt"
)

var (
	ErrNilGraph    = errors.New("graph is nil")
	ErrEmptyGraph  = errors.New("no scenarios loaded")
	ErrForeignNode = errors.New("node reference outside its graph")
)

// Graph is a set of scenario nodes ordered by ID. Every adjacency points at a
// node of the same Graph instance; graphs never share nodes.
type Graph struct {
	Nodes []*Node
	Start *Node
}

// NewGraph builds a graph from nodes in order and starts at the first one.
func NewGraph(nodes ...*Node) *Graph {
	g := &Graph{Nodes: nodes}
	if len(nodes) > 0 {
		g.Start = nodes[0]
	}
	return g
}

// Len returns the number of nodes
func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.Nodes)
}

// At returns the node at zero-based index i, or nil.
func (g *Graph) At(i int) *Node {
	if g == nil || i < 0 || i >= len(g.Nodes) {
		return nil
	}
	return g.Nodes[i]
}

// Node returns the node with the given CSV ID, or nil.
func (g *Graph) Node(id int) *Node {
	if g == nil {
		return nil
	}
	// IDs are usually contiguous, so index id-1 is the first guess
	if n := g.At(id - 1); n != nil && n.ID == id {
		return n
	}
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// IndexOf returns the index of n within g, or -1 if n belongs elsewhere.
func (g *Graph) IndexOf(n *Node) int {
	if g == nil || n == nil {
		return -1
	}
	for i, candidate := range g.Nodes {
		if candidate == n {
			return i
		}
	}
	return -1
}

// Validate checks the structural invariants: no nil nodes, unique IDs, a start
// node and adjacencies inside g, and item names unique within each node.
func (g *Graph) Validate() error {
	if g == nil {
		return ErrNilGraph
	}
	if len(g.Nodes) == 0 {
		return ErrEmptyGraph
	}

	members := make(map[*Node]struct{}, len(g.Nodes))
	ids := make(map[int]struct{}, len(g.Nodes))
	for i, n := range g.Nodes {
		if n == nil {
			return fmt.Errorf("node at index %d is nil", i)
		}
		if _, dup := ids[n.ID]; dup {
			return fmt.Errorf("duplicate node id %d", n.ID)
		}
		ids[n.ID] = struct{}{}
		members[n] = struct{}{}
	}

	if _, ok := members[g.Start]; !ok {
		return fmt.Errorf("%w: start node", ErrForeignNode)
	}

	for _, n := range g.Nodes {
		for _, d := range Directions {
			adj := n.Adjacents[d]
			if adj == nil {
				continue
			}
			if _, ok := members[adj]; !ok {
				return fmt.Errorf("%w: node %d exit %s", ErrForeignNode, n.ID, d)
			}
		}

		names := make(map[string]struct{}, n.Items.Len())
		for it := range n.Items.All() {
			if _, dup := names[it.Name]; dup {
				return fmt.Errorf("node %d lists item %q twice", n.ID, it.Name)
			}
			names[it.Name] = struct{}{}
		}
	}
	return nil
}

// Release drops every item list and adjacency so nothing keeps the copy
// alive. The graph is empty afterwards.
func (g *Graph) Release() {
	if g == nil {
		return
	}
	for _, n := range g.Nodes {
		if n == nil {
			continue
		}
		n.Items.Destroy()
		n.Adjacents = [NumDirections]*Node{}
	}
	g.Nodes = nil
	g.Start = nil
}
