package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/graphquest/pkg/scenario"
)

func main() {
	lenient := flag.Bool("lenient", false, "Report dropped items and exits without failing")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-lenient] <scenario.csv>...\n", os.Args[0])
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	failed := false
	for _, filename := range flag.Args() {
		validator := &ScenarioValidator{Lenient: *lenient}
		if err := validator.validateFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed = true
			continue
		}
		for _, w := range validator.warnings {
			fmt.Println(w)
		}
		fmt.Printf("%s is valid!\n", filename)
	}
	if failed {
		os.Exit(1)
	}
}

type ScenarioValidator struct {
	Lenient  bool
	errors   []string
	warnings []string
}

func (v *ScenarioValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	if !strings.EqualFold(filepath.Ext(baseName), ".csv") {
		return fmt.Errorf("scenario file must have .csv extension: %s", baseName)
	}

	nameWithoutExt := strings.TrimSuffix(baseName, filepath.Ext(baseName))
	if !isValidScenarioFilename(nameWithoutExt) {
		return fmt.Errorf("scenario filename '%s' must be lowercase snake_case (e.g., my_maze.csv, not my-maze.csv or MyMaze.csv)", baseName)
	}

	v.errors = nil
	v.warnings = nil

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	res, err := scenario.LoadFile(filename, quiet)
	if err != nil {
		return err
	}
	defer res.Graph.Release()

	for _, p := range res.Rejected {
		v.addError(fmt.Sprintf("row rejected: %s", p))
	}
	for _, p := range res.Warnings {
		if v.Lenient {
			v.addWarning(p.String())
		} else {
			v.addError(p.String())
		}
	}

	v.validateGraph(res.Graph)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}
	return nil
}

// validateGraph checks that the maze can be finished at all.
func (v *ScenarioValidator) validateGraph(g *scenario.Graph) {
	if err := g.Validate(); err != nil {
		v.addError(err.Error())
		return
	}

	if g.Start.ID != 1 {
		v.addWarning(fmt.Sprintf("no scenario with id 1, starting at %d", g.Start.ID))
	}

	reached := reachable(g.Start)
	finals := 0
	reachableFinals := 0
	for _, n := range g.Nodes {
		if n.IsFinal {
			finals++
			if reached[n] {
				reachableFinals++
			}
		}
		if !reached[n] {
			v.addWarning(fmt.Sprintf("scenario %d (%s) cannot be reached from the start", n.ID, n.Name))
		}
	}

	switch {
	case finals == 0:
		v.addError("no final scenario")
	case reachableFinals == 0:
		v.addError("no final scenario can be reached from the start")
	}
}

// reachable walks exits breadth-first from start.
func reachable(start *scenario.Node) map[*scenario.Node]bool {
	seen := map[*scenario.Node]bool{start: true}
	queue := []*scenario.Node{start}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, d := range n.Exits() {
			next := n.Neighbor(d)
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return seen
}

func (v *ScenarioValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

func (v *ScenarioValidator) addWarning(msg string) {
	v.warnings = append(v.warnings, "  ! "+msg)
}

var validFilenameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidScenarioFilename(name string) bool {
	// Allow 'x.' prefix for experimental scenarios
	name = strings.TrimPrefix(name, "x.")
	return validFilenameRegex.MatchString(name)
}
