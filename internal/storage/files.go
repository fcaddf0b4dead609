package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jwebster45206/graphquest/pkg/scenario"
)

// FileStorage reads scenario CSV files from disk.
type FileStorage struct {
	dataDir string
	logger  *slog.Logger
}

var _ Storage = (*FileStorage)(nil)

func NewFileStorage(dataDir string, logger *slog.Logger) *FileStorage {
	if dataDir == "" {
		dataDir = "./data/scenarios"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStorage{
		dataDir: dataDir,
		logger:  logger,
	}
}

func (s *FileStorage) DataDir() string { return s.dataDir }

func (s *FileStorage) ListScenarios() ([]ScenarioFile, error) {
	var files []ScenarioFile
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	err := filepath.WalkDir(s.dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == s.dataDir {
				return err
			}
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".csv") {
			return nil
		}

		name, relErr := filepath.Rel(s.dataDir, path)
		if relErr != nil {
			name = filepath.Base(path)
		}
		f := ScenarioFile{Name: name, Path: path}

		res, loadErr := scenario.LoadFile(path, quiet)
		if loadErr != nil {
			s.logger.Warn("Failed to load scenario file", "path", path, "error", loadErr)
		} else {
			f.Nodes = res.Graph.Len()
			res.Graph.Release()
		}
		files = append(files, f)
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("Scenario directory does not exist", "dir", s.dataDir)
		return nil, nil
	}
	if err != nil {
		s.logger.Error("Failed to walk scenarios directory", "error", err)
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}

	slices.SortFunc(files, func(a, b ScenarioFile) int { return strings.Compare(a.Name, b.Name) })
	return files, nil
}

func (s *FileStorage) LoadScenario(name string) (*scenario.LoadResult, error) {
	path := s.resolve(name)
	s.logger.Debug("Loading scenario", "name", name, "full_path", path, "dataDir", s.dataDir)

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrScenarioNotFound, name)
	}
	return scenario.LoadFile(path, s.logger)
}

// resolve prefers name as given and falls back to the data directory.
func (s *FileStorage) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	if _, err := os.Stat(name); err == nil {
		return name
	}
	return filepath.Join(s.dataDir, name)
}
