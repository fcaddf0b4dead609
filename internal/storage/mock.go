package storage

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/jwebster45206/graphquest/pkg/scenario"
)

// MockStorage serves scenario CSV held in memory, for testing.
type MockStorage struct {
	mu        sync.RWMutex
	scenarios map[string]string
	listError error
}

var _ Storage = (*MockStorage)(nil)

func NewMockStorage() *MockStorage {
	return &MockStorage{
		scenarios: make(map[string]string),
	}
}

// AddScenario registers CSV content under name.
func (m *MockStorage) AddScenario(name, csvData string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scenarios[name] = csvData
}

// SetListError makes ListScenarios fail with err.
func (m *MockStorage) SetListError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listError = err
}

func (m *MockStorage) ListScenarios() ([]ScenarioFile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.listError != nil {
		return nil, m.listError
	}

	files := make([]ScenarioFile, 0, len(m.scenarios))
	for name := range m.scenarios {
		files = append(files, ScenarioFile{Name: name, Path: name})
	}
	slices.SortFunc(files, func(a, b ScenarioFile) int { return strings.Compare(a.Name, b.Name) })
	return files, nil
}

func (m *MockStorage) LoadScenario(name string) (*scenario.LoadResult, error) {
	m.mu.RLock()
	data, ok := m.scenarios[name]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrScenarioNotFound, name)
	}
	return scenario.Load(strings.NewReader(data), nil)
}
