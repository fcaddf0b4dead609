package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/jwebster45206/graphquest/pkg/scenario"
	"github.com/jwebster45206/graphquest/pkg/state"
)

// DefaultConfigFile is read from the working directory when
// GRAPHQUEST_CONFIG is not set. It is optional.
const DefaultConfigFile = "graphquest.ini"

type Config struct {
	Environment    string
	LogLevel       slog.Level
	DataDir        string
	ScenarioFile   string // preloaded at startup when set
	StartTime      int
	TurnMode       string
	ActionsPerTurn int
	Headless       bool
	WrapWidth      int
	ConfigFile     string // file the settings were read from, if any
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Environment:    "development",
		LogLevel:       slog.LevelInfo,
		DataDir:        "data/scenarios",
		StartTime:      state.DefaultStartTime,
		TurnMode:       state.SingleAction.String(),
		ActionsPerTurn: state.DefaultActionsPerTurn,
		WrapWidth:      scenario.DefaultWrapWidth,
	}
}

// Load applies, in order: defaults, the INI file, environment variables.
// A missing default INI file is not an error; a missing file named by
// GRAPHQUEST_CONFIG is.
func Load() (*Config, error) {
	cfg := Default()

	path, explicit := os.LookupEnv("GRAPHQUEST_CONFIG")
	if !explicit || path == "" {
		path, explicit = DefaultConfigFile, false
	}
	if err := cfg.loadFile(path, explicit); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) loadFile(path string, required bool) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if required {
			return fmt.Errorf("config file %s: %w", path, err)
		}
		return nil
	}

	f, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	app := f.Section("app")
	c.Environment = app.Key("environment").MustString(c.Environment)
	if level := app.Key("log_level").String(); level != "" {
		c.LogLevel = parseLogLevel(level)
	}
	c.DataDir = app.Key("data_dir").MustString(c.DataDir)
	c.Headless = app.Key("headless").MustBool(c.Headless)
	c.WrapWidth = app.Key("wrap_width").MustInt(c.WrapWidth)

	game := f.Section("game")
	c.ScenarioFile = game.Key("scenario_file").MustString(c.ScenarioFile)
	c.StartTime = game.Key("start_time").MustInt(c.StartTime)
	c.TurnMode = game.Key("turn_mode").MustString(c.TurnMode)
	c.ActionsPerTurn = game.Key("actions_per_turn").MustInt(c.ActionsPerTurn)

	c.ConfigFile = path
	return nil
}

func (c *Config) applyEnv() {
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.LogLevel = parseLogLevel(level)
	}
	c.DataDir = getEnv("DATA_DIR", c.DataDir)
	c.ScenarioFile = getEnv("SCENARIO_FILE", c.ScenarioFile)
	c.StartTime = getEnvInt("START_TIME", c.StartTime)
	c.TurnMode = getEnv("TURN_MODE", c.TurnMode)
	c.ActionsPerTurn = getEnvInt("ACTIONS_PER_TURN", c.ActionsPerTurn)
	c.Headless = getEnvBool("HEADLESS", c.Headless)
}

// Rules converts the game settings into engine rules.
func (c *Config) Rules() (state.Rules, error) {
	mode, err := state.ParseTurnMode(c.TurnMode)
	if err != nil {
		return state.Rules{}, fmt.Errorf("invalid turn mode: %w", err)
	}
	if c.StartTime <= 0 {
		return state.Rules{}, fmt.Errorf("start time must be positive, got %d", c.StartTime)
	}
	if mode == state.MultiAction && c.ActionsPerTurn < 1 {
		return state.Rules{}, fmt.Errorf("actions per turn must be at least 1, got %d", c.ActionsPerTurn)
	}
	return state.Rules{
		StartTime:      c.StartTime,
		TurnMode:       mode,
		ActionsPerTurn: c.ActionsPerTurn,
	}, nil
}

// ParseLogLevel maps a level name to a slog level, defaulting to info.
func ParseLogLevel(level string) slog.Level {
	return parseLogLevel(level)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
