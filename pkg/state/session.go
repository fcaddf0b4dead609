package state

import (
	"fmt"
	"log/slog"

	"github.com/jwebster45206/graphquest/pkg/scenario"
)

// Session is a single-player game. It plays on a private deep copy of the
// world graph; the world itself is never touched.
type Session struct {
	world    *scenario.Graph
	rules    Rules
	logger   *slog.Logger
	graph    *scenario.Graph
	player   *Player
	status   Status
	restarts int
	score    int // kept after Close
}

// NewSession clones world and places a fresh player on its start node.
func NewSession(world *scenario.Graph, rules Rules, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		world:  world,
		rules:  rules,
		logger: logger,
	}
	if err := s.setup(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) setup() error {
	g, err := newWorkingCopy(s.world)
	if err != nil {
		return err
	}
	s.graph = g
	s.player = NewPlayer("Player", g, s.rules.StartTime)
	s.status = s.player.Outcome()
	return nil
}

func newWorkingCopy(world *scenario.Graph) (*scenario.Graph, error) {
	if world.Len() == 0 {
		return nil, scenario.ErrEmptyGraph
	}
	g, err := world.Clone()
	if err != nil {
		return nil, fmt.Errorf("failed to copy scenario graph: %w", err)
	}
	return g, nil
}

func (s *Session) Status() Status { return s.status }
func (s *Session) Player() *Player { return s.player }
func (s *Session) Graph() *scenario.Graph { return s.graph }
func (s *Session) Restarts() int { return s.restarts }
func (s *Session) Rules() Rules { return s.rules }

// Score is the total value of the inventory.
func (s *Session) Score() int {
	if s.player == nil {
		return s.score
	}
	return s.player.Score()
}

// PickUp takes the i-th (1-based) item at the current node.
func (s *Session) PickUp(i int) (scenario.Item, error) {
	if err := s.playable(); err != nil {
		return scenario.Item{}, err
	}
	it, err := s.player.PickUp(i)
	if err != nil {
		return it, err
	}
	s.logger.Debug("Picked up item", "item", it.Name, "node", s.player.Current.ID, "time", s.player.RemainingTime)
	s.evaluate()
	return it, nil
}

// Discard destroys the i-th (1-based) inventory item; 0 cancels.
func (s *Session) Discard(i int) (scenario.Item, error) {
	if err := s.playable(); err != nil {
		return scenario.Item{}, err
	}
	it, err := s.player.Discard(i)
	if err != nil {
		return it, err
	}
	s.logger.Debug("Discarded item", "item", it.Name, "time", s.player.RemainingTime)
	s.evaluate()
	return it, nil
}

// Move follows the exit in direction d and returns its cost.
func (s *Session) Move(d scenario.Direction) (int, error) {
	if err := s.playable(); err != nil {
		return 0, err
	}
	cost, err := s.player.Move(d)
	if err != nil {
		return 0, err
	}
	s.logger.Debug("Moved", "direction", d, "node", s.player.Current.ID, "cost", cost, "time", s.player.RemainingTime)
	s.evaluate()
	return cost, nil
}

// Restart discards the working copy and starts over on a fresh one. It is
// allowed in any state except after Close.
func (s *Session) Restart() error {
	if s.world == nil {
		return ErrSessionOver
	}
	s.status = Restarted
	s.release()
	if err := s.setup(); err != nil {
		s.status = Quit
		return err
	}
	s.restarts++
	s.logger.Info("Session restarted", "restarts", s.restarts)
	return nil
}

// Quit ends the session and releases its working copy.
func (s *Session) Quit() {
	s.status = Quit
	s.Close()
}

// Close releases the working copy. The final score stays readable.
func (s *Session) Close() {
	if s.player != nil {
		s.score = s.player.Score()
	}
	s.release()
	s.world = nil
}

func (s *Session) release() {
	s.player.release()
	s.graph.Release()
	s.player = nil
	s.graph = nil
}

func (s *Session) playable() error {
	if s.status.Terminal() || s.player == nil {
		return ErrSessionOver
	}
	return nil
}

func (s *Session) evaluate() {
	s.status = s.player.Outcome()
	if s.status.Terminal() {
		s.logger.Info("Session over", "status", s.status, "score", s.player.Score(), "time", s.player.RemainingTime)
	}
}
