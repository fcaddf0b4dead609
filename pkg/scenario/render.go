package scenario

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// DefaultWrapWidth is the column at which descriptions are wrapped.
const DefaultWrapWidth = 72

const separator = "==============================================================="

// WriteGraph writes a read-only dump of every node in g to w.
func WriteGraph(w io.Writer, g *Graph, width int) error {
	var b strings.Builder

	if g.Len() == 0 {
		b.WriteString("No scenarios loaded. Load a CSV file first.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}
	if width <= 0 {
		width = DefaultWrapWidth
	}

	b.WriteString("================== Scenario graph ==================\n")
	for _, n := range g.Nodes {
		fmt.Fprintf(&b, "Node        : %d\n", n.ID)
		fmt.Fprintf(&b, "Name        : '%s'\n", n.Name)
		fmt.Fprintf(&b, "\nDescription:\n%s\n", wordwrap.String(n.Description, width))

		WriteItems(&b, n)

		b.WriteString("\nExits:\n")
		for _, d := range Directions {
			if adj := n.Neighbor(d); adj != nil {
				fmt.Fprintf(&b, "    %-6s → node %d (%s)\n", d, adj.ID, adj.Name)
			} else {
				fmt.Fprintf(&b, "    %-6s → none\n", d)
			}
		}

		final := "no"
		if n.IsFinal {
			final = "yes"
		}
		fmt.Fprintf(&b, "\nFinal: %s\n%s\n", final, separator)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteItems writes the items available at n.
func WriteItems(b *strings.Builder, n *Node) {
	if n.Items.Len() == 0 {
		b.WriteString("\nNo items in this scenario.\n")
		return
	}
	b.WriteString("\nAvailable items:\n")
	for it := range n.Items.All() {
		fmt.Fprintf(b, "    - %s\n", it)
	}
}
