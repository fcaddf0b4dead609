package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("205")).
			Bold(true)

	chosenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Choose: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "choose"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return helpStyle.Render(strings.Join(parts, " • "))
}

// TeaPrompter runs a small Bubble Tea program for every prompt. It renders
// inline, so earlier game output stays visible above it.
// https://github.com/charmbracelet/bubbletea
type TeaPrompter struct {
	in  io.Reader
	out io.Writer
}

var _ Prompter = (*TeaPrompter)(nil)

func NewTeaPrompter(in io.Reader, out io.Writer) *TeaPrompter {
	return &TeaPrompter{in: in, out: out}
}

func (p *TeaPrompter) run(ctx context.Context, m tea.Model) (tea.Model, error) {
	prog := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out))
	final, err := prog.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, tea.ErrInterrupted) {
			return nil, fmt.Errorf("%w: interrupted", ErrInputClosed)
		}
		return nil, fmt.Errorf("%w: %v", ErrInputClosed, err)
	}
	return final, nil
}

func (p *TeaPrompter) ClearScreen() {
	fmt.Fprint(p.out, clearSequence)
}

func (p *TeaPrompter) PauseForKeypress(ctx context.Context) error {
	final, err := p.run(ctx, pauseModel{})
	if err != nil {
		return err
	}
	if final.(pauseModel).aborted {
		return fmt.Errorf("%w: interrupted", ErrInputClosed)
	}
	return nil
}

func (p *TeaPrompter) ReadChoice(ctx context.Context, title string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, ErrNoOptions
	}
	final, err := p.run(ctx, newChoiceModel(title, options))
	if err != nil {
		return 0, err
	}
	m := final.(choiceModel)
	if m.aborted {
		return 0, fmt.Errorf("%w: interrupted", ErrInputClosed)
	}
	return m.chosen, nil
}

func (p *TeaPrompter) ReadLine(ctx context.Context, prompt string) (string, error) {
	final, err := p.run(ctx, newLineModel(prompt))
	if err != nil {
		return "", err
	}
	m := final.(lineModel)
	if m.aborted {
		return "", fmt.Errorf("%w: interrupted", ErrInputClosed)
	}
	return strings.TrimSpace(m.input.Value()), nil
}

// choiceModel is a numbered menu. Arrows move the highlight and enter picks
// it; typing an option's number picks it directly.
type choiceModel struct {
	title   string
	options []string
	cursor  int
	digits  string
	chosen  int // 1-based, 0 until picked
	aborted bool
}

func newChoiceModel(title string, options []string) choiceModel {
	return choiceModel{title: title, options: options}
}

func (m choiceModel) Init() tea.Cmd { return nil }

func (m choiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(km, keys.Quit):
		m.aborted = true
		return m, tea.Quit
	case key.Matches(km, keys.Up):
		m.digits = ""
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(km, keys.Down):
		m.digits = ""
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case key.Matches(km, keys.Choose):
		m.chosen = m.cursor + 1
		return m, tea.Quit
	case km.Type == tea.KeyBackspace:
		if m.digits != "" {
			m.digits = m.digits[:len(m.digits)-1]
		}
	case km.Type == tea.KeyRunes && len(km.Runes) == 1 && unicode.IsDigit(km.Runes[0]):
		return m.typeDigit(km.Runes[0])
	}
	return m, nil
}

// typeDigit extends the typed number. It picks as soon as no longer number
// could match, and otherwise just moves the highlight.
func (m choiceModel) typeDigit(r rune) (tea.Model, tea.Cmd) {
	digits := m.digits + string(r)
	n := 0
	for _, d := range digits {
		n = n*10 + int(d-'0')
	}
	if n < 1 || n > len(m.options) {
		m.digits = ""
		return m, nil
	}
	m.digits = digits
	m.cursor = n - 1
	if n*10 > len(m.options) {
		m.chosen = n
		return m, tea.Quit
	}
	return m, nil
}

func (m choiceModel) View() string {
	var b strings.Builder
	if m.title != "" {
		b.WriteString(titleStyle.Render(m.title) + "\n")
	}
	if m.chosen > 0 {
		b.WriteString(chosenStyle.Render(fmt.Sprintf("> %d. %s", m.chosen, m.options[m.chosen-1])) + "\n")
		return b.String()
	}
	if m.aborted {
		return b.String()
	}
	for i, opt := range m.options {
		line := fmt.Sprintf("  %d. %s", i+1, opt)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render(line) + "\n")
		} else {
			b.WriteString(optionStyle.Render(line) + "\n")
		}
	}
	b.WriteString(helpLine(keys.Up, keys.Down, keys.Choose, keys.Quit) + "\n")
	return b.String()
}

// lineModel reads one line of text.
type lineModel struct {
	prompt  string
	input   textinput.Model
	done    bool
	aborted bool
}

func newLineModel(prompt string) lineModel {
	ti := textinput.New()
	ti.Placeholder = "type and press enter"
	ti.Prompt = "> "
	ti.CharLimit = 4096
	ti.Width = 60
	ti.Focus()
	return lineModel{prompt: prompt, input: ti}
}

func (m lineModel) Init() tea.Cmd { return textinput.Blink }

func (m lineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, keys.Quit):
			m.aborted = true
			return m, tea.Quit
		case key.Matches(km, keys.Choose):
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m lineModel) View() string {
	if m.done {
		return titleStyle.Render(m.prompt) + " " + m.input.Value() + "\n"
	}
	return titleStyle.Render(m.prompt) + "\n" + m.input.View() + "\n"
}

// pauseModel waits for any key.
type pauseModel struct {
	done    bool
	aborted bool
}

func (m pauseModel) Init() tea.Cmd { return nil }

func (m pauseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.Matches(km, keys.Quit) {
		m.aborted = true
	}
	m.done = true
	return m, tea.Quit
}

func (m pauseModel) View() string {
	if m.done {
		return ""
	}
	return helpStyle.Render("Press any key to continue...") + "\n"
}
