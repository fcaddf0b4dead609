package state

import (
	"fmt"
	"log/slog"

	"github.com/jwebster45206/graphquest/pkg/scenario"
)

// NumPlayers is the number of participants in a Match.
const NumPlayers = 2

// Scores is the end-of-match tally.
type Scores struct {
	Players [NumPlayers]int
	Total   int // collaborative total
}

// Match is a two-player game. Each player owns a separate deep copy of the
// world and players alternate whole turns. Items are a shared resource: a
// pick-up by one player removes the same item from the other player's copy.
//
// A player is finished once out of time or on a final node. Finished players'
// turns are skipped, and the match is over only when both are finished or
// someone quits.
type Match struct {
	world   *scenario.Graph
	rules   Rules
	logger  *slog.Logger
	graphs  [NumPlayers]*scenario.Graph
	players [NumPlayers]*Player
	turn    int // index of the player to act
	actions int // successful actions in the current turn
	rounds  int // completed turn handovers
	quit    bool
	closed  bool

	// kept after Close
	scores   Scores
	statuses [NumPlayers]Status
}

// NewMatch creates both working copies and both players.
func NewMatch(world *scenario.Graph, rules Rules, logger *slog.Logger) (*Match, error) {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Match{
		world:  world,
		rules:  rules,
		logger: logger,
	}
	if err := m.setup(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Match) setup() error {
	var graphs [NumPlayers]*scenario.Graph
	for i := range graphs {
		g, err := newWorkingCopy(m.world)
		if err != nil {
			for _, built := range graphs[:i] {
				built.Release()
			}
			return err
		}
		graphs[i] = g
	}

	m.graphs = graphs
	for i := range m.players {
		m.players[i] = NewPlayer(fmt.Sprintf("Player %d", i+1), graphs[i], m.rules.StartTime)
	}
	m.turn = 0
	m.actions = 0
	m.rounds = 0
	m.quit = false
	if m.players[0].Finished() && !m.players[1].Finished() {
		m.turn = 1
	}
	return nil
}

// Turn returns the index of the player whose turn it is.
func (m *Match) Turn() int { return m.turn }

// Current returns the player whose turn it is.
func (m *Match) Current() *Player { return m.players[m.turn] }

// Player returns participant i (0 or 1).
func (m *Match) Player(i int) *Player {
	if i < 0 || i >= NumPlayers {
		return nil
	}
	return m.players[i]
}

// Graph returns the working copy owned by participant i.
func (m *Match) Graph(i int) *scenario.Graph {
	if i < 0 || i >= NumPlayers {
		return nil
	}
	return m.graphs[i]
}

func (m *Match) Rules() Rules { return m.rules }

// Rounds counts turn handovers since the match (re)started.
func (m *Match) Rounds() int { return m.rounds }

// ActionsLeft is how many successful actions remain in the current turn.
func (m *Match) ActionsLeft() int {
	return m.rules.actionsPerTurn() - m.actions
}

// Over reports whether the match has ended.
func (m *Match) Over() bool {
	if m.quit || m.closed {
		return true
	}
	for _, p := range m.players {
		if p == nil || !p.Finished() {
			return false
		}
	}
	return true
}

// PlayerStatus returns the outcome for participant i.
func (m *Match) PlayerStatus(i int) Status {
	if i < 0 || i >= NumPlayers {
		return Quit
	}
	p := m.players[i]
	if p == nil {
		return m.statuses[i]
	}
	if st := p.Outcome(); st != Playing || !m.quit {
		return st
	}
	return Quit
}

// PickUp takes the i-th (1-based) item at the current player's node and
// removes the same item from the other player's copy.
func (m *Match) PickUp(i int) (scenario.Item, error) {
	if err := m.playable(); err != nil {
		return scenario.Item{}, err
	}
	owner := m.turn
	p := m.players[owner]
	it, err := p.PickUp(i)
	if err != nil {
		return it, err
	}

	other := 1 - owner
	nodeIndex := m.graphs[owner].IndexOf(p.Current)
	removed := SyncItem(m.graphs[other], nodeIndex, it.ID)
	m.logger.Debug("Picked up item",
		"player", p.Name,
		"item", it.Name,
		"node", p.Current.ID,
		"synced_from", m.players[other].Name,
		"removed", removed)

	m.afterAction()
	return it, nil
}

// Discard destroys the i-th (1-based) item of the current player; 0 cancels.
func (m *Match) Discard(i int) (scenario.Item, error) {
	if err := m.playable(); err != nil {
		return scenario.Item{}, err
	}
	it, err := m.players[m.turn].Discard(i)
	if err != nil {
		return it, err
	}
	m.logger.Debug("Discarded item", "player", m.players[m.turn].Name, "item", it.Name)
	m.afterAction()
	return it, nil
}

// Move moves the current player in direction d and returns the cost.
func (m *Match) Move(d scenario.Direction) (int, error) {
	if err := m.playable(); err != nil {
		return 0, err
	}
	p := m.players[m.turn]
	cost, err := p.Move(d)
	if err != nil {
		return 0, err
	}
	m.logger.Debug("Moved", "player", p.Name, "direction", d, "node", p.Current.ID, "cost", cost)
	m.afterAction()
	return cost, nil
}

// EndTurn hands over before the current turn's actions are used up.
func (m *Match) EndTurn() error {
	if err := m.playable(); err != nil {
		return err
	}
	m.passTurn()
	return nil
}

// Restart throws away both working copies and starts a new match.
func (m *Match) Restart() error {
	if m.world == nil {
		return ErrSessionOver
	}
	m.release()
	if err := m.setup(); err != nil {
		m.quit = true
		return err
	}
	m.logger.Info("Match restarted")
	return nil
}

// Quit ends the match for both players and releases the working copies.
func (m *Match) Quit() {
	m.quit = true
	m.Close()
}

// Scores returns each player's inventory value and their sum.
func (m *Match) Scores() Scores {
	if m.players[0] == nil {
		return m.scores
	}
	var s Scores
	for i, p := range m.players {
		s.Players[i] = p.Score()
		s.Total += s.Players[i]
	}
	return s
}

// Close releases both working copies. Scores stay readable.
func (m *Match) Close() {
	if m.players[0] != nil {
		m.scores = m.Scores()
		for i := range m.statuses {
			m.statuses[i] = m.PlayerStatus(i)
		}
	}
	m.release()
	m.world = nil
	m.closed = true
}

func (m *Match) release() {
	for i := range m.players {
		m.players[i].release()
		m.graphs[i].Release()
		m.players[i] = nil
		m.graphs[i] = nil
	}
}

func (m *Match) playable() error {
	if m.world == nil || m.Over() {
		return ErrSessionOver
	}
	return nil
}

func (m *Match) afterAction() {
	m.actions++
	p := m.players[m.turn]
	if p.Finished() {
		m.logger.Info("Player finished", "player", p.Name, "status", p.Outcome(), "score", p.Score())
	}
	if p.Finished() || m.actions >= m.rules.actionsPerTurn() {
		m.passTurn()
	}
	if m.Over() {
		s := m.Scores()
		m.logger.Info("Match over", "score_1", s.Players[0], "score_2", s.Players[1], "total", s.Total)
	}
}

// passTurn gives the turn to the other player unless they are finished, in
// which case the current player keeps going.
func (m *Match) passTurn() {
	m.actions = 0
	m.rounds++
	if other := 1 - m.turn; !m.players[other].Finished() {
		m.turn = other
	}
}
