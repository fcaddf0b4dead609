package scenario

import (
	"fmt"

	"github.com/jwebster45206/graphquest/pkg/list"
)

// Clone performs a deep copy of the graph. Nodes and item lists are new;
// items are copied by value and keep their IDs. Every edge and the start
// node are translated by index into the new node slice, so nothing in the
// copy refers to g. If g holds a reference to a node outside itself the copy
// is abandoned and ErrForeignNode is returned.
func (g *Graph) Clone() (*Graph, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	index := make(map[*Node]int, len(g.Nodes))
	for i, n := range g.Nodes {
		if n == nil {
			return nil, fmt.Errorf("cannot clone graph: node at index %d is nil", i)
		}
		index[n] = i
	}

	nodes := make([]*Node, len(g.Nodes))
	for i, src := range g.Nodes {
		items := list.New[Item]()
		for it := range src.Items.All() {
			items.PushBack(it)
		}
		nodes[i] = &Node{
			ID:          src.ID,
			Name:        src.Name,
			Description: src.Description,
			Items:       items,
			IsFinal:     src.IsFinal,
		}
	}

	out := &Graph{Nodes: nodes}
	for i, src := range g.Nodes {
		for _, d := range Directions {
			adj := src.Adjacents[d]
			if adj == nil {
				continue
			}
			j, ok := index[adj]
			if !ok {
				out.Release()
				return nil, fmt.Errorf("cannot clone graph: %w: node %d exit %s", ErrForeignNode, src.ID, d)
			}
			nodes[i].Adjacents[d] = nodes[j]
		}
	}

	if g.Start != nil {
		j, ok := index[g.Start]
		if !ok {
			out.Release()
			return nil, fmt.Errorf("cannot clone graph: %w: start node", ErrForeignNode)
		}
		out.Start = nodes[j]
	}

	return out, nil
}
