package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/graphquest/pkg/scenario"
	"github.com/jwebster45206/graphquest/pkg/state"
)

// actor is the action surface shared by Session and Match.
type actor interface {
	PickUp(i int) (scenario.Item, error)
	Discard(i int) (scenario.Item, error)
	Move(d scenario.Direction) (int, error)
}

var (
	_ actor = (*state.Session)(nil)
	_ actor = (*state.Match)(nil)
)

var gameMenu = []string{
	"Pick up an item",
	"Discard an item",
	"Move",
	"Restart",
	"Quit",
}

const (
	actPickUp = iota + 1
	actDiscard
	actMove
	actRestart
	actQuit
)

// outcome is what one menu action did.
type outcome struct {
	notice string
	acted  bool // a time-consuming action succeeded
}

func (s *Shell) pickUp(ctx context.Context, a actor, p *state.Player) (outcome, error) {
	if p.Current.Items.Len() == 0 {
		return outcome{notice: "There is nothing to pick up here."}, nil
	}
	options := itemOptions(p.Current.Items.Values())
	choice, err := s.prompt.ReadChoice(ctx, "Pick up which item?", options)
	if err != nil {
		return outcome{}, err
	}
	if choice == len(options) {
		return outcome{notice: "Nothing picked up."}, nil
	}

	it, err := a.PickUp(choice)
	if err != nil {
		return outcome{notice: actionError(err)}, nil
	}
	return outcome{notice: fmt.Sprintf("Picked up %s. (-1 time)", it), acted: true}, nil
}

func (s *Shell) discard(ctx context.Context, a actor, p *state.Player) (outcome, error) {
	if p.Inventory.Len() == 0 {
		return outcome{notice: "Your inventory is empty."}, nil
	}
	options := itemOptions(p.Inventory.Values())
	choice, err := s.prompt.ReadChoice(ctx, "Discard which item?", options)
	if err != nil {
		return outcome{}, err
	}
	if choice == len(options) {
		choice = 0
	}

	it, err := a.Discard(choice)
	if errors.Is(err, state.ErrCancelled) {
		return outcome{notice: "Nothing discarded."}, nil
	}
	if err != nil {
		return outcome{notice: actionError(err)}, nil
	}
	return outcome{notice: fmt.Sprintf("Discarded %s. (-1 time)", it), acted: true}, nil
}

func (s *Shell) move(ctx context.Context, a actor, p *state.Player) (outcome, error) {
	exits := p.Current.Exits()
	if len(exits) == 0 {
		return outcome{notice: "There is no way out of here."}, nil
	}
	options := make([]string, 0, len(exits)+1)
	for _, d := range exits {
		options = append(options, fmt.Sprintf("%s → %s", d, p.Current.Neighbor(d).Name))
	}
	options = append(options, "Cancel")

	choice, err := s.prompt.ReadChoice(ctx, "Which way?", options)
	if err != nil {
		return outcome{}, err
	}
	if choice == len(options) {
		return outcome{notice: "You stay where you are."}, nil
	}

	d := exits[choice-1]
	cost, err := a.Move(d)
	if err != nil {
		return outcome{notice: actionError(err)}, nil
	}
	return outcome{
		notice: fmt.Sprintf("You go %s to %s. (-%d time)", d, p.Current.Name, cost),
		acted:  true,
	}, nil
}

func itemOptions(items []scenario.Item) []string {
	options := make([]string, 0, len(items)+1)
	for _, it := range items {
		options = append(options, it.String())
	}
	return append(options, "Cancel")
}

func actionError(err error) string {
	switch {
	case errors.Is(err, state.ErrNoExit):
		return "You cannot go that way."
	case errors.Is(err, state.ErrInvalidChoice):
		return "Invalid choice."
	case errors.Is(err, state.ErrSessionOver):
		return "The game is over."
	default:
		return err.Error()
	}
}

// writeStatus prints where p is and what they carry.
func writeStatus(w io.Writer, p *state.Player, width int) {
	var b strings.Builder
	n := p.Current

	fmt.Fprintf(&b, "\nCurrent scenario: %s\n", n.Name)
	if n.Description != "" {
		b.WriteString(wordwrap.String(n.Description, width) + "\n")
	}
	fmt.Fprintf(&b, "Time left: %d\n", p.RemainingTime)

	scenario.WriteItems(&b, n)

	if p.Inventory.Len() == 0 {
		b.WriteString("\nInventory: empty\n")
	} else {
		b.WriteString("\nInventory:\n")
		for it := range p.Inventory.All() {
			fmt.Fprintf(&b, "    - %s\n", it)
		}
	}
	weight := p.TotalWeight()
	fmt.Fprintf(&b, "Carrying %d kg worth %d pts. Moving costs %d.\n", weight, p.Score(), state.MoveCost(weight))

	exits := n.Exits()
	if len(exits) == 0 {
		b.WriteString("\nNo exits.\n")
	} else {
		b.WriteString("\nExits:\n")
		for _, d := range exits {
			fmt.Fprintf(&b, "    %-6s → %s\n", d, n.Neighbor(d).Name)
		}
	}

	_, _ = io.WriteString(w, b.String())
}
