package storage

import (
	"errors"

	"github.com/jwebster45206/graphquest/pkg/scenario"
)

var ErrScenarioNotFound = errors.New("scenario file not found")

// ScenarioFile is a CSV file found in the data directory.
type ScenarioFile struct {
	Name  string // file name relative to the data directory
	Path  string
	Nodes int // accepted rows; 0 if the file did not load
}

// Storage finds and loads scenario graphs.
type Storage interface {
	// ListScenarios returns the CSV files in the data directory, sorted by name.
	ListScenarios() ([]ScenarioFile, error)

	// LoadScenario loads a file by path, or by name relative to the data
	// directory. The returned graph is new; nothing already loaded changes.
	LoadScenario(name string) (*scenario.LoadResult, error)
}
