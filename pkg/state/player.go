package state

import (
	"errors"
	"fmt"

	"github.com/jwebster45206/graphquest/pkg/list"
	"github.com/jwebster45206/graphquest/pkg/scenario"
)

// DefaultStartTime is the time budget every player starts with.
const DefaultStartTime = 10

var (
	ErrInvalidChoice = errors.New("invalid choice")
	ErrCancelled     = errors.New("cancelled")
	ErrNoExit        = errors.New("no exit in that direction")
	ErrSessionOver   = errors.New("session is over")
)

// Player is one participant's state inside one working graph. Current always
// points into the graph the player was created with.
type Player struct {
	Name          string
	Inventory     *list.List[scenario.Item]
	RemainingTime int
	Current       *scenario.Node
}

// NewPlayer places a player with an empty inventory on g's start node.
func NewPlayer(name string, g *scenario.Graph, startTime int) *Player {
	return &Player{
		Name:          name,
		Inventory:     list.New[scenario.Item](),
		RemainingTime: startTime,
		Current:       g.Start,
	}
}

// MoveCost is the time a move takes while carrying weight kg:
// ceil((weight+1)/10), which is never less than 1.
func MoveCost(weight int) int {
	if weight < 0 {
		weight = 0
	}
	return (weight + 1 + 9) / 10
}

// TotalWeight sums the weight of the inventory
func (p *Player) TotalWeight() int {
	total := 0
	for it := range p.Inventory.All() {
		total += it.Weight
	}
	return total
}

// Score sums the value of the inventory
func (p *Player) Score() int {
	total := 0
	for it := range p.Inventory.All() {
		total += it.Value
	}
	return total
}

func (p *Player) OutOfTime() bool {
	return p.RemainingTime <= 0
}

func (p *Player) AtFinal() bool {
	return p.Current != nil && p.Current.IsFinal
}

// Finished reports whether the player can no longer act.
func (p *Player) Finished() bool {
	return p.OutOfTime() || p.AtFinal()
}

// Outcome is Lost when time has run out, Won at a final node, Playing
// otherwise. Running out of time wins over arriving.
func (p *Player) Outcome() Status {
	switch {
	case p.OutOfTime():
		return Lost
	case p.AtFinal():
		return Won
	default:
		return Playing
	}
}

// PickUp moves the i-th (1-based) item of the current node into the
// inventory and costs one unit of time. The item is removed from the node by
// instance ID. An invalid index changes nothing.
func (p *Player) PickUp(i int) (scenario.Item, error) {
	it, ok := p.Current.Items.At(i - 1)
	if !ok {
		return scenario.Item{}, fmt.Errorf("%w: no item %d here", ErrInvalidChoice, i)
	}
	taken, ok := p.Current.Items.RemoveFirst(func(c scenario.Item) bool { return c.ID == it.ID })
	if !ok {
		return scenario.Item{}, fmt.Errorf("%w: item %s vanished", ErrInvalidChoice, it.Name)
	}
	p.Inventory.PushBack(taken)
	p.RemainingTime--
	return taken, nil
}

// Discard destroys the i-th (1-based) inventory item and costs one unit of
// time. The item does not return to the node. 0 cancels at no cost.
func (p *Player) Discard(i int) (scenario.Item, error) {
	if i == 0 {
		return scenario.Item{}, ErrCancelled
	}
	it, ok := p.Inventory.At(i - 1)
	if !ok {
		return scenario.Item{}, fmt.Errorf("%w: no inventory item %d", ErrInvalidChoice, i)
	}
	p.Inventory.RemoveFirst(func(c scenario.Item) bool { return c.ID == it.ID })
	p.RemainingTime--
	return it, nil
}

// Move follows the exit in direction d and returns the time it cost.
func (p *Player) Move(d scenario.Direction) (int, error) {
	if !d.Valid() {
		return 0, fmt.Errorf("%w: %s", ErrInvalidChoice, d)
	}
	next := p.Current.Neighbor(d)
	if next == nil {
		return 0, fmt.Errorf("%w: %s", ErrNoExit, d)
	}
	cost := MoveCost(p.TotalWeight())
	p.Current = next
	p.RemainingTime -= cost
	return cost, nil
}

// release drops the inventory contents.
func (p *Player) release() {
	if p == nil {
		return
	}
	p.Inventory.Destroy()
}
