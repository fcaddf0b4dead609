// Package console holds the terminal collaborators the game shell talks to:
// a plain line-based prompter for pipes and tests, and a Bubble Tea prompter
// for interactive terminals.
package console

import (
	"context"
	"errors"
)

var (
	// ErrInputClosed means no further input can be read: end of file, a read
	// failure, or the user interrupting the terminal.
	ErrInputClosed = errors.New("input closed")

	ErrNoOptions = errors.New("no options to choose from")
)

// clearSequence moves the cursor home and erases the screen.
const clearSequence = "\033[H\033[2J"

// Prompter asks the player for input.
type Prompter interface {
	// ClearScreen wipes the terminal when that makes sense. It never fails.
	ClearScreen()

	// PauseForKeypress waits for the player to acknowledge what is on screen.
	PauseForKeypress(ctx context.Context) error

	// ReadChoice shows title and the numbered options and blocks until a
	// number in [1, len(options)] is picked. Invalid entries re-prompt.
	ReadChoice(ctx context.Context, title string, options []string) (int, error)

	// ReadLine reads one line of free text.
	ReadLine(ctx context.Context, prompt string) (string, error)
}
