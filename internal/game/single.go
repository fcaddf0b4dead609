package game

import (
	"context"
	"fmt"

	"github.com/jwebster45206/graphquest/internal/logger"
	"github.com/jwebster45206/graphquest/pkg/state"
)

// StartSinglePlayer plays one session on a copy of the world. It returns
// when the session is won, lost or quit; restarts stay inside the loop.
func (s *Shell) StartSinglePlayer(ctx context.Context) error {
	if s.world.Len() == 0 {
		return ErrNoScenario
	}
	sess, err := state.NewSession(s.world, s.opts.Rules, logger.WithMode(s.logger, "single"))
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}
	defer sess.Close()

	notice := ""
	for !sess.Status().Terminal() {
		s.prompt.ClearScreen()
		if notice != "" {
			fmt.Fprintln(s.out, notice)
		}
		writeStatus(s.out, sess.Player(), s.opts.WrapWidth)

		var res outcome
		choice, err := s.prompt.ReadChoice(ctx, "What do you do?", gameMenu)
		if err == nil {
			switch choice {
			case actPickUp:
				res, err = s.pickUp(ctx, sess, sess.Player())
			case actDiscard:
				res, err = s.discard(ctx, sess, sess.Player())
			case actMove:
				res, err = s.move(ctx, sess, sess.Player())
			case actRestart:
				if err = sess.Restart(); err == nil {
					res.notice = "Game restarted."
				}
			case actQuit:
				sess.Quit()
			}
		}
		if err != nil {
			sess.Quit()
			s.writeSessionResult(sess, res.notice)
			return err
		}
		notice = res.notice
	}

	s.writeSessionResult(sess, notice)
	return s.prompt.PauseForKeypress(ctx)
}

func (s *Shell) writeSessionResult(sess *state.Session, notice string) {
	s.prompt.ClearScreen()
	if notice != "" {
		fmt.Fprintln(s.out, notice)
	}
	switch sess.Status() {
	case state.Won:
		fmt.Fprintf(s.out, "\nYou reached %s. You win!\n", sess.Player().Current.Name)
	case state.Lost:
		fmt.Fprintln(s.out, "\nTime is up! You lose.")
	default:
		fmt.Fprintln(s.out, "\nYou left the game.")
	}
	fmt.Fprintf(s.out, "Final score: %d pts\n", sess.Score())
}
