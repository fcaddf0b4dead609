package storage

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

const twoRooms = `id,nombre,descripcion,objetos,arriba,abajo,izquierda,derecha,final
1,Entrada,Un pasillo oscuro,"Llave,3,1",-1,-1,-1,2,no
2,Salida,La luz del día,,-1,-1,1,-1,sí
`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestFileStorage_ListScenarios(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "castle.csv", twoRooms)
	writeFile(t, dir, "nested/cave.CSV", twoRooms)
	writeFile(t, dir, "broken.csv", "id,name\n")
	writeFile(t, dir, "notes.txt", "not a scenario")

	files, err := NewFileStorage(dir, testLogger()).ListScenarios()
	if err != nil {
		t.Fatalf("ListScenarios() error = %v", err)
	}

	want := []struct {
		name  string
		nodes int
	}{
		{"broken.csv", 0},
		{"castle.csv", 2},
		{filepath.Join("nested", "cave.CSV"), 2},
	}
	if len(files) != len(want) {
		t.Fatalf("got %d files, want %d: %+v", len(files), len(want), files)
	}
	for i, w := range want {
		if files[i].Name != w.name || files[i].Nodes != w.nodes {
			t.Errorf("files[%d] = %+v, want name %q with %d nodes", i, files[i], w.name, w.nodes)
		}
	}
}

func TestFileStorage_ListMissingDir(t *testing.T) {
	s := NewFileStorage(filepath.Join(t.TempDir(), "nope"), testLogger())
	files, err := s.ListScenarios()
	if err != nil {
		t.Fatalf("missing directory should not be an error, got %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected no files, got %+v", files)
	}
}

func TestFileStorage_LoadScenario(t *testing.T) {
	dir := t.TempDir()
	abs := writeFile(t, dir, "castle.csv", twoRooms)
	s := NewFileStorage(dir, testLogger())

	for _, name := range []string{"castle.csv", abs} {
		res, err := s.LoadScenario(name)
		if err != nil {
			t.Fatalf("LoadScenario(%q) error = %v", name, err)
		}
		if res.Graph.Len() != 2 {
			t.Errorf("LoadScenario(%q) loaded %d nodes, want 2", name, res.Graph.Len())
		}
	}

	_, err := s.LoadScenario("missing.csv")
	if !errors.Is(err, ErrScenarioNotFound) {
		t.Errorf("expected ErrScenarioNotFound, got %v", err)
	}
}

func TestMockStorage(t *testing.T) {
	m := NewMockStorage()
	m.AddScenario("b.csv", twoRooms)
	m.AddScenario("a.csv", twoRooms)

	files, err := m.ListScenarios()
	if err != nil {
		t.Fatalf("ListScenarios() error = %v", err)
	}
	if len(files) != 2 || files[0].Name != "a.csv" {
		t.Errorf("unexpected listing: %+v", files)
	}

	res, err := m.LoadScenario("a.csv")
	if err != nil {
		t.Fatalf("LoadScenario() error = %v", err)
	}
	if !res.Graph.Start.HasItemNamed("Llave") {
		t.Error("expected the key at the start node")
	}

	if _, err := m.LoadScenario("c.csv"); !errors.Is(err, ErrScenarioNotFound) {
		t.Errorf("expected ErrScenarioNotFound, got %v", err)
	}

	boom := errors.New("disk on fire")
	m.SetListError(boom)
	if _, err := m.ListScenarios(); !errors.Is(err, boom) {
		t.Errorf("expected list error, got %v", err)
	}
}

func TestFileStorage_SampleData(t *testing.T) {
	s := NewFileStorage(filepath.Join("..", "..", "data", "scenarios"), testLogger())

	res, err := s.LoadScenario("graphquest.csv")
	if err != nil {
		t.Fatalf("LoadScenario() error = %v", err)
	}
	defer res.Graph.Release()

	if len(res.Rejected) != 0 || len(res.Warnings) != 0 {
		t.Errorf("sample data has problems: rejected %v, warnings %v", res.Rejected, res.Warnings)
	}
	if got := res.Graph.Len(); got != 16 {
		t.Errorf("loaded %d scenarios, want 16", got)
	}
	if exit := res.Graph.Node(16); exit == nil || !exit.IsFinal {
		t.Error("scenario 16 should be the final one")
	}
}
