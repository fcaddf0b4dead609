package scenario

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jwebster45206/graphquest/pkg/list"
)

// Direction indexes a node's exits.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// NumDirections is the number of exit slots on every node.
const NumDirections = 4

// Directions lists every direction in slot order.
var Directions = [NumDirections]Direction{Up, Down, Left, Right}

var directionNames = [NumDirections]string{"up", "down", "left", "right"}

func (d Direction) Valid() bool {
	return d >= 0 && d < NumDirections
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection accepts a direction name, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range directionNames {
		if s == name {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Node is a scenario: a location with a description, items and up to four
// directed exits. A nil Adjacents entry means there is no exit that way.
type Node struct {
	ID          int                  `json:"id"` // 1-based CSV ID
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Items       *list.List[Item]     `json:"-"` // unique by name, CSV order
	IsFinal     bool                 `json:"is_final,omitempty"`
	Adjacents   [NumDirections]*Node `json:"-"`
}

// NewNode creates a node holding the given items in order
func NewNode(id int, name, description string, isFinal bool, items ...Item) *Node {
	n := &Node{
		ID:          id,
		Name:        name,
		Description: description,
		Items:       list.New[Item](),
		IsFinal:     isFinal,
	}
	for _, it := range items {
		n.Items.PushBack(it)
	}
	return n
}

// Link sets the exit in direction d and returns n for chaining.
func (n *Node) Link(d Direction, to *Node) *Node {
	if d.Valid() {
		n.Adjacents[d] = to
	}
	return n
}

// Neighbor returns the node reached by going d, or nil.
func (n *Node) Neighbor(d Direction) *Node {
	if n == nil || !d.Valid() {
		return nil
	}
	return n.Adjacents[d]
}

// Exits returns the directions that have a neighbor.
func (n *Node) Exits() []Direction {
	var out []Direction
	for _, d := range Directions {
		if n.Neighbor(d) != nil {
			out = append(out, d)
		}
	}
	return out
}

func (n *Node) HasItemNamed(name string) bool {
	for it := range n.Items.All() {
		if it.Name == name {
			return true
		}
	}
	return false
}

// FindItem looks up an item instance by ID.
func (n *Node) FindItem(id uuid.UUID) (Item, bool) {
	for it := range n.Items.All() {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}
