// Package game is the interactive front end: the main menu and the turn
// loops that drive single-player sessions and two-player matches.
package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jwebster45206/graphquest/internal/console"
	"github.com/jwebster45206/graphquest/internal/logger"
	"github.com/jwebster45206/graphquest/internal/storage"
	"github.com/jwebster45206/graphquest/pkg/scenario"
	"github.com/jwebster45206/graphquest/pkg/state"
)

// ErrNoScenario is returned when a game is started before a graph is loaded.
var ErrNoScenario = errors.New("no scenario graph loaded")

// Options tune the shell.
type Options struct {
	Rules     state.Rules
	WrapWidth int
}

// Shell owns the loaded world graph and hands it to new games. Games never
// modify it.
type Shell struct {
	store  storage.Storage
	prompt console.Prompter
	out    io.Writer
	logger *slog.Logger
	opts   Options

	world  *scenario.Graph
	source string // name the world was loaded from
}

func NewShell(store storage.Storage, prompt console.Prompter, out io.Writer, opts Options, log *slog.Logger) *Shell {
	if log == nil {
		log = slog.Default()
	}
	if opts.WrapWidth <= 0 {
		opts.WrapWidth = scenario.DefaultWrapWidth
	}
	if opts.Rules == (state.Rules{}) {
		opts.Rules = state.DefaultRules()
	}
	return &Shell{
		store:  store,
		prompt: prompt,
		out:    out,
		logger: log,
		opts:   opts,
	}
}

// World returns the loaded graph, or nil.
func (s *Shell) World() *scenario.Graph { return s.world }

var mainMenu = []string{
	"Load scenario file (CSV)",
	"Show scenarios",
	"Single player",
	"Two players",
	"Exit",
}

// Run shows the main menu until the player exits or input runs out. It
// returns nil in both cases, and the context's error if ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	defer s.ReleaseGraph()

	for {
		s.writeBanner()
		choice, err := s.prompt.ReadChoice(ctx, "Main menu", mainMenu)
		if err != nil {
			return s.exit(err)
		}

		switch choice {
		case 1:
			err = s.loadMenu(ctx)
		case 2:
			s.ShowGraph()
			err = s.prompt.PauseForKeypress(ctx)
		case 3:
			err = s.StartSinglePlayer(ctx)
		case 4:
			err = s.StartTwoPlayer(ctx)
		case 5:
			fmt.Fprintln(s.out, "\nThanks for playing GraphQuest. See you next time!")
			return nil
		}

		if errors.Is(err, ErrNoScenario) {
			fmt.Fprintln(s.out, "\nLoad a scenario file first.")
			continue
		}
		if err != nil {
			return s.exit(err)
		}
	}
}

func (s *Shell) exit(err error) error {
	if errors.Is(err, console.ErrInputClosed) {
		s.logger.Info("Input closed, exiting")
		fmt.Fprintln(s.out, "\nGoodbye.")
		return nil
	}
	return err
}

func (s *Shell) writeBanner() {
	s.prompt.ClearScreen()
	fmt.Fprintln(s.out, "---------- GraphQuest ----------")
	if s.world.Len() == 0 {
		fmt.Fprintln(s.out, "No scenario file loaded.")
	} else {
		fmt.Fprintf(s.out, "Loaded: %s (%d scenarios)\n", s.source, s.world.Len())
	}
}

// loadMenu offers the CSV files in the data directory, or a typed path.
func (s *Shell) loadMenu(ctx context.Context) error {
	files, err := s.store.ListScenarios()
	if err != nil {
		logger.WithError(s.logger, err).Warn("Failed to list scenario files")
	}

	path := ""
	if len(files) > 0 {
		options := make([]string, 0, len(files)+1)
		for _, f := range files {
			if f.Nodes > 0 {
				options = append(options, fmt.Sprintf("%s (%d scenarios)", f.Name, f.Nodes))
			} else {
				options = append(options, f.Name)
			}
		}
		options = append(options, "Type a path")

		choice, err := s.prompt.ReadChoice(ctx, "Scenario files", options)
		if err != nil {
			return err
		}
		if choice <= len(files) {
			path = files[choice-1].Name
		}
	}
	if path == "" {
		line, err := s.prompt.ReadLine(ctx, "CSV file path:")
		if err != nil {
			return err
		}
		path = line
	}
	if path == "" {
		fmt.Fprintln(s.out, "No file given.")
		return nil
	}

	if err := s.LoadGraph(path); err != nil {
		fmt.Fprintf(s.out, "Could not load %s: %v\n", path, err)
		if s.world.Len() > 0 {
			fmt.Fprintf(s.out, "Keeping %s.\n", s.source)
		}
	}
	return nil
}

// LoadGraph replaces the world with the graph in path. On failure the
// current world is kept.
func (s *Shell) LoadGraph(path string) error {
	res, err := s.store.LoadScenario(path)
	if err != nil {
		logger.WithError(s.logger, err).Warn("Failed to load scenario graph", "path", path)
		return err
	}

	s.ReleaseGraph()
	s.world = res.Graph
	s.source = path

	fmt.Fprintf(s.out, "Loaded %d scenarios from %s.\n", s.world.Len(), path)
	if n := len(res.Rejected); n > 0 {
		fmt.Fprintf(s.out, "Skipped %d rows:\n", n)
		for _, p := range res.Rejected {
			fmt.Fprintf(s.out, "  %s\n", p)
		}
	}
	if n := len(res.Warnings); n > 0 {
		fmt.Fprintf(s.out, "%d items or exits were dropped (see log).\n", n)
	}
	return nil
}

// ShowGraph prints every scenario of the loaded world.
func (s *Shell) ShowGraph() {
	if err := scenario.WriteGraph(s.out, s.world, s.opts.WrapWidth); err != nil {
		logger.WithError(s.logger, err).Error("Failed to write scenario graph")
	}
}

// ReleaseGraph drops the loaded world.
func (s *Shell) ReleaseGraph() {
	s.world.Release()
	s.world = nil
	s.source = ""
}
