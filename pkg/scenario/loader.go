package scenario

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// CSV column layout
const (
	colID = iota
	colName
	colDescription
	colItems
	colUp
	colDown
	colLeft
	colRight
	colFinal
	numColumns
)

const (
	itemSeparator  = ";"
	fieldSeparator = ","
	noNeighbor     = -1
)

var neighborColumns = [NumDirections]int{colUp, colDown, colLeft, colRight}

// Problem describes a rejected row, item or edge.
type Problem struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

func (p Problem) String() string {
	return fmt.Sprintf("line %d: %s", p.Line, p.Reason)
}

// LoadResult is the outcome of a successful load. Rejected lists rows that
// were skipped entirely; Warnings lists items and exits dropped from rows
// that were kept.
type LoadResult struct {
	Graph    *Graph
	Rejected []Problem
	Warnings []Problem
}

// LoadFile opens path and loads it with Load.
func LoadFile(path string, logger *slog.Logger) (*LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario file: %w", err)
	}
	defer func() {
		_ = f.Close() // read-only
	}()

	res, err := Load(f, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return res, nil
}

// Load builds a new Graph from CSV. The first row is a header and is ignored.
// Each data row is: id, name, description, items, up, down, left, right,
// final. Items are "name,value,weight" entries separated by ";". A neighbor
// of -1 means no exit. The final flag is true for "si" or "sí" in any case.
//
// Loading takes two passes because exits may name rows further down the
// file: the first pass creates nodes, the second rewinds r and links them.
// Bad rows are skipped and reported in the result; only I/O failures and a
// file with no usable rows return an error.
func Load(r io.ReadSeeker, logger *slog.Logger) (*LoadResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	ld := &loader{
		logger: logger,
		byID:   make(map[int]*Node),
		rows:   make(map[int]*Node),
		result: &LoadResult{},
	}

	if err := ld.readNodes(r); err != nil {
		return nil, err
	}
	if len(ld.byID) == 0 {
		return nil, ErrEmptyGraph
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind scenario data: %w", err)
	}
	if err := ld.linkNodes(r); err != nil {
		return nil, err
	}

	nodes := make([]*Node, 0, len(ld.byID))
	for _, n := range ld.byID {
		nodes = append(nodes, n)
	}
	slices.SortFunc(nodes, func(a, b *Node) int { return a.ID - b.ID })
	ld.result.Graph = NewGraph(nodes...)

	logger.Info("Loaded scenarios",
		"count", len(nodes),
		"rejected_rows", len(ld.result.Rejected),
		"warnings", len(ld.result.Warnings))
	return ld.result, nil
}

type loader struct {
	logger *slog.Logger
	byID   map[int]*Node
	rows   map[int]*Node // data row ordinal → node accepted from it
	result *LoadResult
}

func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	return cr
}

// eachRow calls fn for every data row after the header. Rows the CSV reader
// cannot parse are passed with a nil record so both passes count rows the
// same way.
func eachRow(r io.Reader, fn func(ordinal, line int, rec []string, perr error)) error {
	cr := newCSVReader(r)
	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var perr *csv.ParseError
		if !errors.As(err, &perr) {
			return fmt.Errorf("failed to read header: %w", err)
		}
	}

	for ordinal := 0; ; ordinal++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return fmt.Errorf("failed to read scenario row: %w", err)
			}
			fn(ordinal, perr.StartLine, nil, err)
			continue
		}
		line, _ := cr.FieldPos(0)
		fn(ordinal, line, rec, nil)
	}
}

func (ld *loader) reject(line int, reason string) {
	ld.logger.Warn("Skipping scenario row", "line", line, "reason", reason)
	ld.result.Rejected = append(ld.result.Rejected, Problem{Line: line, Reason: reason})
}

func (ld *loader) warn(line int, reason string) {
	ld.logger.Warn("Scenario row problem", "line", line, "reason", reason)
	ld.result.Warnings = append(ld.result.Warnings, Problem{Line: line, Reason: reason})
}

func (ld *loader) readNodes(r io.Reader) error {
	return eachRow(r, func(ordinal, line int, rec []string, perr error) {
		if perr != nil {
			ld.reject(line, perr.Error())
			return
		}
		n, err := ld.parseNode(line, rec)
		if err != nil {
			ld.reject(line, err.Error())
			return
		}
		ld.byID[n.ID] = n
		ld.rows[ordinal] = n
	})
}

func (ld *loader) parseNode(line int, rec []string) (*Node, error) {
	if len(rec) < numColumns {
		return nil, fmt.Errorf("expected %d fields, got %d", numColumns, len(rec))
	}

	rawID := strings.TrimSpace(rec[colID])
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return nil, fmt.Errorf("invalid id %q", rawID)
	}
	if id < 1 || id > MaxNodes {
		return nil, fmt.Errorf("id %d out of range [1, %d]", id, MaxNodes)
	}
	if _, dup := ld.byID[id]; dup {
		return nil, fmt.Errorf("duplicate id %d", id)
	}

	name := truncate(strings.TrimSpace(rec[colName]), MaxNameLength)
	if name == "" {
		return nil, fmt.Errorf("scenario %d has no name", id)
	}

	n := NewNode(id, name,
		truncate(strings.TrimSpace(rec[colDescription]), MaxDescriptionLength),
		ParseFinalFlag(rec[colFinal]))
	ld.parseItems(line, n, rec[colItems])
	return n, nil
}

func (ld *loader) parseItems(line int, n *Node, field string) {
	for _, entry := range strings.Split(field, itemSeparator) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, fieldSeparator)
		if len(parts) < 3 {
			ld.warn(line, fmt.Sprintf("item %q needs name,value,weight", entry))
			continue
		}
		value, verr := strconv.Atoi(strings.TrimSpace(parts[1]))
		weight, werr := strconv.Atoi(strings.TrimSpace(parts[2]))
		if verr != nil || werr != nil {
			ld.warn(line, fmt.Sprintf("item %q has a non-numeric value or weight", entry))
			continue
		}
		it, err := NewItem(parts[0], value, weight)
		if err != nil {
			ld.warn(line, err.Error())
			continue
		}
		if n.HasItemNamed(it.Name) {
			ld.warn(line, fmt.Sprintf("duplicate item %q in scenario %d", it.Name, n.ID))
			continue
		}
		n.Items.PushBack(it)
	}
}

func (ld *loader) linkNodes(r io.Reader) error {
	return eachRow(r, func(ordinal, line int, rec []string, _ error) {
		n, ok := ld.rows[ordinal]
		if !ok {
			return
		}
		for _, d := range Directions {
			raw := strings.TrimSpace(rec[neighborColumns[d]])
			target, err := strconv.Atoi(raw)
			if err != nil {
				ld.warn(line, fmt.Sprintf("scenario %d: invalid %s neighbor %q", n.ID, d, raw))
				continue
			}
			if target == noNeighbor {
				continue
			}
			adj, ok := ld.byID[target]
			if !ok {
				ld.warn(line, fmt.Sprintf("scenario %d: %s neighbor %d does not exist", n.ID, d, target))
				continue
			}
			n.Adjacents[d] = adj
		}
	})
}

// ParseFinalFlag reports whether tok marks a final scenario ("si" or "sí",
// any case, composed or decomposed accent).
func ParseFinalFlag(tok string) bool {
	s := cases.Lower(language.Spanish).String(norm.NFC.String(strings.TrimSpace(tok)))
	return s == "si" || s == "sí"
}
