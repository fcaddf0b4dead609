package scenario

import (
	"errors"
	"testing"
)

func mustItem(t *testing.T, name string, value, weight int) Item {
	t.Helper()
	it, err := NewItem(name, value, weight)
	if err != nil {
		t.Fatalf("NewItem(%q) error = %v", name, err)
	}
	return it
}

// threeRooms builds 1 -right-> 2 -down-> 3 (final), with 2 -left-> 1.
func threeRooms(t *testing.T) *Graph {
	t.Helper()
	a := NewNode(1, "Hall", "A long hall", false, mustItem(t, "Sword", 10, 5))
	b := NewNode(2, "Armory", "Racks of weapons", false, mustItem(t, "Shield", 4, 8), mustItem(t, "Coin", 5, 1))
	c := NewNode(3, "Gate", "Daylight", true)
	a.Link(Right, b)
	b.Link(Left, a).Link(Down, c)
	return NewGraph(a, b, c)
}

// shape captures names, items and adjacency as IDs for comparison.
type shape struct {
	Name  string
	Items []string
	Exits [NumDirections]int
	Final bool
}

func shapeOf(g *Graph) []shape {
	out := make([]shape, 0, g.Len())
	for _, n := range g.Nodes {
		s := shape{Name: n.Name, Final: n.IsFinal}
		for it := range n.Items.All() {
			s.Items = append(s.Items, it.String()+"#"+it.ID.String())
		}
		for _, d := range Directions {
			if adj := n.Neighbor(d); adj != nil {
				s.Exits[d] = adj.ID
			}
		}
		out = append(out, s)
	}
	return out
}

func sameShape(t *testing.T, a, b []shape) {
	t.Helper()
	if len(a) != len(b) {
		t.Fatalf("node count %d != %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Final != b[i].Final || a[i].Exits != b[i].Exits {
			t.Errorf("node %d differs: %+v vs %+v", i, a[i], b[i])
		}
		if len(a[i].Items) != len(b[i].Items) {
			t.Errorf("node %d items differ: %v vs %v", i, a[i].Items, b[i].Items)
			continue
		}
		for j := range a[i].Items {
			if a[i].Items[j] != b[i].Items[j] {
				t.Errorf("node %d item %d: %s vs %s", i, j, a[i].Items[j], b[i].Items[j])
			}
		}
	}
}

func TestClone_Structure(t *testing.T) {
	g := threeRooms(t)

	c, err := g.Clone()
	if err != nil {
		t.Fatalf("Clone() error = %v", err)
	}
	sameShape(t, shapeOf(g), shapeOf(c))

	if err := c.Validate(); err != nil {
		t.Errorf("clone fails Validate: %v", err)
	}
	if c.Start != c.Nodes[0] {
		t.Error("clone start should be its own first node")
	}
}

func TestClone_NoSharedMemory(t *testing.T) {
	g := threeRooms(t)
	c, err := g.Clone()
	if err != nil {
		t.Fatalf("Clone() error = %v", err)
	}

	original := make(map[*Node]bool)
	for _, n := range g.Nodes {
		original[n] = true
	}
	for _, n := range c.Nodes {
		if original[n] {
			t.Fatalf("clone shares node %d with source", n.ID)
		}
		if n.Items == g.Node(n.ID).Items {
			t.Errorf("clone shares the item list of node %d", n.ID)
		}
		for _, d := range Directions {
			if adj := n.Neighbor(d); adj != nil && original[adj] {
				t.Errorf("clone node %d exit %s points into source graph", n.ID, d)
			}
		}
	}
	if original[c.Start] {
		t.Error("clone start points into source graph")
	}
}

func TestClone_MutationDoesNotLeak(t *testing.T) {
	g := threeRooms(t)
	before := shapeOf(g)

	c, err := g.Clone()
	if err != nil {
		t.Fatalf("Clone() error = %v", err)
	}
	armory := c.Node(2)
	armory.Items.RemoveFirst(func(it Item) bool { return it.Name == "Coin" })
	armory.Link(Up, c.Node(3))
	c.Node(1).Items.Clear()

	sameShape(t, before, shapeOf(g))

	c.Release()
	sameShape(t, before, shapeOf(g))
}

func TestClone_Idempotent(t *testing.T) {
	g := threeRooms(t)

	once, err := g.Clone()
	if err != nil {
		t.Fatal(err)
	}
	twice, err := once.Clone()
	if err != nil {
		t.Fatal(err)
	}
	sameShape(t, shapeOf(once), shapeOf(twice))
}

func TestClone_ForeignReference(t *testing.T) {
	g := threeRooms(t)
	stranger := NewNode(99, "Elsewhere", "", false)
	g.Node(3).Link(Up, stranger)

	c, err := g.Clone()
	if !errors.Is(err, ErrForeignNode) {
		t.Fatalf("Clone() error = %v, want ErrForeignNode", err)
	}
	if c != nil {
		t.Error("Clone() should not return a partial copy")
	}

	g.Node(3).Link(Up, nil)
	g.Start = stranger
	if _, err := g.Clone(); !errors.Is(err, ErrForeignNode) {
		t.Errorf("Clone() with foreign start error = %v", err)
	}
}

func TestClone_Nil(t *testing.T) {
	var g *Graph
	if _, err := g.Clone(); !errors.Is(err, ErrNilGraph) {
		t.Errorf("Clone() on nil = %v, want ErrNilGraph", err)
	}
}
