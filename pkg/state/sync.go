package state

import (
	"github.com/google/uuid"
	"github.com/jwebster45206/graphquest/pkg/scenario"
)

// SyncItem removes the item instance id from the node at nodeIndex in g and
// returns how many entries were dropped. Working copies share node order and
// item IDs, so an index taken from one copy names the same scenario in the
// other without either graph pointing into the other.
func SyncItem(g *scenario.Graph, nodeIndex int, id uuid.UUID) int {
	n := g.At(nodeIndex)
	if n == nil {
		return 0
	}
	return n.Items.RemoveAll(func(it scenario.Item) bool { return it.ID == id })
}
