package state

import (
	"fmt"
	"strings"
)

// Status is the lifecycle state of a session or a player.
type Status int

const (
	Playing Status = iota
	Won
	Lost
	Restarted
	Quit
)

var statusNames = map[Status]string{
	Playing:   "playing",
	Won:       "won",
	Lost:      "lost",
	Restarted: "restarted",
	Quit:      "quit",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Terminal reports whether no further actions are accepted.
func (s Status) Terminal() bool {
	return s == Won || s == Lost || s == Quit
}

// TurnMode selects how many actions a player gets per turn in a two-player
// match.
type TurnMode int

const (
	SingleAction TurnMode = iota
	MultiAction
)

func (m TurnMode) String() string {
	if m == MultiAction {
		return "multi-action"
	}
	return "single-action"
}

// ParseTurnMode accepts "single", "single-action", "multi" or "multi-action".
func ParseTurnMode(s string) (TurnMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "single-action", "":
		return SingleAction, nil
	case "multi", "multi-action":
		return MultiAction, nil
	default:
		return SingleAction, fmt.Errorf("unknown turn mode %q", s)
	}
}

// DefaultActionsPerTurn is the multi-action turn length.
const DefaultActionsPerTurn = 2

// Rules are the tunable parameters of a game.
type Rules struct {
	StartTime      int
	TurnMode       TurnMode
	ActionsPerTurn int // used when TurnMode is MultiAction
}

func DefaultRules() Rules {
	return Rules{
		StartTime:      DefaultStartTime,
		TurnMode:       SingleAction,
		ActionsPerTurn: DefaultActionsPerTurn,
	}
}

// actionsPerTurn is the number of successful actions that end a turn.
func (r Rules) actionsPerTurn() int {
	if r.TurnMode != MultiAction || r.ActionsPerTurn < 1 {
		return 1
	}
	return r.ActionsPerTurn
}
