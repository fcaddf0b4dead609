package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// LinePrompter reads newline-terminated answers from any reader. It is used
// for piped input, headless runs and tests.
type LinePrompter struct {
	in  io.Reader
	out io.Writer

	// ClearANSI makes ClearScreen emit the terminal clear sequence.
	ClearANSI bool

	once  sync.Once
	lines chan string
	err   error // read error, valid once lines is closed
}

var _ Prompter = (*LinePrompter)(nil)

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{
		in:    in,
		out:   out,
		lines: make(chan string),
	}
}

// readLoop runs in its own goroutine so a blocked read can be abandoned when
// the context is cancelled.
func (p *LinePrompter) readLoop() {
	defer close(p.lines)
	sc := bufio.NewScanner(p.in)
	for sc.Scan() {
		p.lines <- strings.TrimRight(sc.Text(), "\r")
	}
	p.err = sc.Err()
}

func (p *LinePrompter) next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.once.Do(func() { go p.readLoop() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			if p.err != nil {
				return "", fmt.Errorf("%w: %v", ErrInputClosed, p.err)
			}
			return "", ErrInputClosed
		}
		return line, nil
	}
}

func (p *LinePrompter) ClearScreen() {
	if p.ClearANSI {
		fmt.Fprint(p.out, clearSequence)
	}
}

func (p *LinePrompter) PauseForKeypress(ctx context.Context) error {
	fmt.Fprint(p.out, "\nPress Enter to continue...")
	_, err := p.next(ctx)
	fmt.Fprintln(p.out)
	return err
}

func (p *LinePrompter) ReadChoice(ctx context.Context, title string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, ErrNoOptions
	}

	if title != "" {
		fmt.Fprintf(p.out, "\n%s\n", title)
	}
	for i, opt := range options {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, opt)
	}

	for {
		fmt.Fprintf(p.out, "Choose an option [1-%d]: ", len(options))
		line, err := p.next(ctx)
		if err != nil {
			fmt.Fprintln(p.out)
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil && n >= 1 && n <= len(options) {
			return n, nil
		}
		fmt.Fprintf(p.out, "Invalid choice %q. Enter a number between 1 and %d.\n", strings.TrimSpace(line), len(options))
	}
}

func (p *LinePrompter) ReadLine(ctx context.Context, prompt string) (string, error) {
	fmt.Fprintf(p.out, "%s ", prompt)
	line, err := p.next(ctx)
	if err != nil {
		fmt.Fprintln(p.out)
		return "", err
	}
	return strings.TrimSpace(line), nil
}
