package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/jwebster45206/graphquest/internal/config"
	"github.com/jwebster45206/graphquest/internal/console"
	"github.com/jwebster45206/graphquest/internal/game"
	"github.com/jwebster45206/graphquest/internal/logger"
	"github.com/jwebster45206/graphquest/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Flags default to the loaded config, so anything set here wins.
	flag.StringVar(&cfg.DataDir, "data", cfg.DataDir, "Directory searched for scenario CSV files")
	flag.StringVar(&cfg.ScenarioFile, "file", cfg.ScenarioFile, "Scenario CSV to load at startup")
	flag.IntVar(&cfg.StartTime, "time", cfg.StartTime, "Starting time for every player")
	flag.StringVar(&cfg.TurnMode, "turn-mode", cfg.TurnMode, "Two-player turns: single or multi")
	flag.IntVar(&cfg.ActionsPerTurn, "actions", cfg.ActionsPerTurn, "Actions per turn in multi mode")
	flag.BoolVar(&cfg.Headless, "headless", cfg.Headless, "Plain line input even on a terminal")
	flag.IntVar(&cfg.WrapWidth, "wrap", cfg.WrapWidth, "Column at which descriptions wrap")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn or error")

	flag.Usage = func() {
		fmt.Printf("Usage: graphquest [options]\n\n")
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nSettings are also read from %s (or $GRAPHQUEST_CONFIG) and the environment.\n", config.DefaultConfigFile)
	}
	flag.Parse()

	if *logLevel != "" {
		cfg.LogLevel = config.ParseLogLevel(*logLevel)
	}

	log := logger.Setup(cfg, os.Stderr)

	rules, err := cfg.Rules()
	if err != nil {
		log.Error("Invalid game settings", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var prompt console.Prompter
	interactive := !cfg.Headless &&
		term.IsTerminal(int(os.Stdin.Fd())) &&
		term.IsTerminal(int(os.Stdout.Fd()))
	if interactive {
		prompt = console.NewTeaPrompter(os.Stdin, os.Stdout)
	} else {
		prompt = console.NewLinePrompter(os.Stdin, os.Stdout)
	}

	log.Debug("Starting GraphQuest",
		"config_file", cfg.ConfigFile,
		"data_dir", cfg.DataDir,
		"start_time", rules.StartTime,
		"turn_mode", rules.TurnMode,
		"interactive", interactive)

	store := storage.NewFileStorage(cfg.DataDir, log)
	shell := game.NewShell(store, prompt, os.Stdout, game.Options{
		Rules:     rules,
		WrapWidth: cfg.WrapWidth,
	}, log)

	if cfg.ScenarioFile != "" {
		if err := shell.LoadGraph(cfg.ScenarioFile); err != nil {
			fmt.Fprintf(os.Stderr, "Could not load %s: %v\n", cfg.ScenarioFile, err)
		}
	}

	if err := shell.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("GraphQuest stopped", "error", err)
		stop()
		os.Exit(1)
	}
}
