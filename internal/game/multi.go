package game

import (
	"context"
	"fmt"

	"github.com/jwebster45206/graphquest/internal/logger"
	"github.com/jwebster45206/graphquest/pkg/state"
)

var turnMenu = []string{"Keep going", "End turn"}

// StartTwoPlayer plays a match between two players on separate copies of the
// world. Items picked up by one player disappear for the other.
func (s *Shell) StartTwoPlayer(ctx context.Context) error {
	if s.world.Len() == 0 {
		return ErrNoScenario
	}
	m, err := state.NewMatch(s.world, s.opts.Rules, logger.WithMode(s.logger, "two-player"))
	if err != nil {
		return fmt.Errorf("failed to start match: %w", err)
	}
	defer m.Close()

	notice := ""
	for !m.Over() {
		res, err := s.playTurn(ctx, m, notice)
		if err != nil {
			m.Quit()
			s.writeMatchResult(m, res.notice)
			return err
		}
		notice = res.notice
	}

	s.writeMatchResult(m, notice)
	return s.prompt.PauseForKeypress(ctx)
}

// playTurn runs one menu action for the player whose turn it is.
func (s *Shell) playTurn(ctx context.Context, m *state.Match, notice string) (outcome, error) {
	turn := m.Turn()
	p := m.Current()

	s.prompt.ClearScreen()
	if notice != "" {
		fmt.Fprintln(s.out, notice)
	}
	fmt.Fprintf(s.out, "\n===== %s's turn (round %d) =====\n", p.Name, m.Rounds()+1)
	if m.Rules().TurnMode == state.MultiAction {
		fmt.Fprintf(s.out, "Actions left this turn: %d\n", m.ActionsLeft())
	}
	writeStatus(s.out, p, s.opts.WrapWidth)

	var res outcome
	choice, err := s.prompt.ReadChoice(ctx, p.Name+", what do you do?", gameMenu)
	if err != nil {
		return res, err
	}

	switch choice {
	case actPickUp:
		res, err = s.pickUp(ctx, m, p)
	case actDiscard:
		res, err = s.discard(ctx, m, p)
	case actMove:
		res, err = s.move(ctx, m, p)
	case actRestart:
		if err = m.Restart(); err == nil {
			res.notice = "Match restarted."
		}
		return res, err
	case actQuit:
		m.Quit()
		return outcome{notice: p.Name + " ended the match."}, nil
	}
	if err != nil || !res.acted {
		return res, err
	}

	if p.Finished() {
		res.notice += fmt.Sprintf("\n%s is done: %s with %d pts.", p.Name, p.Outcome(), p.Score())
	}

	// Mid-turn in multi-action mode the player may hand over early. There is
	// nobody to hand over to once the other player is done.
	other := m.Player(1 - turn)
	if m.Over() || m.Turn() != turn || m.ActionsLeft() <= 0 || other.Finished() {
		return res, nil
	}
	fmt.Fprintln(s.out, res.notice)
	res.notice = ""
	title := fmt.Sprintf("%s, %d action(s) left this turn.", p.Name, m.ActionsLeft())
	choice, err = s.prompt.ReadChoice(ctx, title, turnMenu)
	if err != nil {
		return res, err
	}
	if choice == 2 {
		err = m.EndTurn()
	}
	return res, err
}

func (s *Shell) writeMatchResult(m *state.Match, notice string) {
	s.prompt.ClearScreen()
	if notice != "" {
		fmt.Fprintln(s.out, notice)
	}
	scores := m.Scores()
	fmt.Fprintln(s.out, "\n===== Match over =====")
	for i := range state.NumPlayers {
		fmt.Fprintf(s.out, "Player %d: %s, %d pts\n", i+1, m.PlayerStatus(i), scores.Players[i])
	}
	fmt.Fprintf(s.out, "Team total: %d pts\n", scores.Total)
}
