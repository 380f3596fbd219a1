// Package importer reads contact predictions and helix topologies from text
// and spreadsheet files and validates them into a model.Input.
package importer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/HelixPack/internal/model"
)

var (
	ErrNoContacts        = errors.New("no contacts predicted")
	ErrOddBoundaries     = errors.New("uneven number of helix boundaries")
	ErrNoHelices         = errors.New("no helices found")
	ErrHelixOutOfRange   = errors.New("contact names a helix outside the topology")
	ErrResidueOutOfRange = errors.New("contact residue lies outside every helix")
)

// topologyPrefix starts the line that lists helix boundaries.
const topologyPrefix = "# Topology:"

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Input    model.Input
	Warnings []string
}

// rawContact is a contact line before helix numbers are validated.
type rawContact struct {
	residueA, residueB int
	helixA, helixB     int // One-based, as written
	weight             float64
}

// builder accumulates contacts, edges and boundaries from any source format.
type builder struct {
	contacts   []rawContact
	seenPairs  map[[2]int]bool
	edges      []model.Edge
	seenEdges  map[model.Edge]bool
	boundaries []int
	warnings   []string
}

func newBuilder() *builder {
	return &builder{
		seenPairs: make(map[[2]int]bool),
		seenEdges: make(map[model.Edge]bool),
	}
}

func (b *builder) warn(format string, args ...any) {
	b.warnings = append(b.warnings, fmt.Sprintf(format, args...))
}

// addContact records a contact. A repeated residue pair keeps the first
// occurrence; the helix edge is recorded once per ordered helix pair.
func (b *builder) addContact(c rawContact) {
	pair := [2]int{c.residueA, c.residueB}
	if !b.seenPairs[pair] {
		b.seenPairs[pair] = true
		b.contacts = append(b.contacts, c)
	}

	e := model.Edge{A: c.helixA - 1, B: c.helixB - 1}
	if !b.seenEdges[e] {
		b.seenEdges[e] = true
		b.edges = append(b.edges, e)
	}
}

// build validates the accumulated data and produces the input.
func (b *builder) build(source string) (ImportResult, error) {
	result := ImportResult{Warnings: b.warnings}

	if len(b.edges) == 0 {
		return result, ErrNoContacts
	}
	if len(b.boundaries)%2 != 0 {
		return result, fmt.Errorf("%w: %d values", ErrOddBoundaries, len(b.boundaries))
	}
	total := len(b.boundaries) / 2
	if total == 0 {
		return result, ErrNoHelices
	}

	in := model.Input{Source: source, Edges: b.edges}
	for i := 0; i < total; i++ {
		in.Helices = append(in.Helices, model.Helix{
			Index: i,
			Start: b.boundaries[2*i],
			Stop:  b.boundaries[2*i+1],
		})
	}

	for _, e := range b.edges {
		if e.A < 0 || e.A >= total || e.B < 0 || e.B >= total {
			return result, fmt.Errorf("%w: helices %d and %d, topology has %d", ErrHelixOutOfRange, e.A+1, e.B+1, total)
		}
	}

	for _, c := range b.contacts {
		for _, r := range []int{c.residueA, c.residueB} {
			if in.HelixOf(r) < 0 {
				return result, fmt.Errorf("%w: residue %d", ErrResidueOutOfRange, r)
			}
		}
		in.Contacts = append(in.Contacts, model.Contact{
			ResidueA: c.residueA,
			ResidueB: c.residueB,
			HelixA:   c.helixA - 1,
			HelixB:   c.helixB - 1,
			Weight:   c.weight,
		})
	}

	result.Input = in
	return result, nil
}

// Import reads path as a spreadsheet when it has an Excel extension and as a
// contact text file otherwise.
func Import(path string) (ImportResult, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ImportExcel(path)
	default:
		return ImportText(path)
	}
}

// ImportText reads a contact prediction text file.
func ImportText(path string) (ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("cannot open file %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f, path)
}

// Parse reads contact lines of the form "12-45 1-3 0.87" and topology lines
// of the form "# Topology: 5,25,31,50". Any single character may separate the
// two numbers of a pair and the weight is optional. Lines matching neither
// form are skipped.
func Parse(r io.Reader, source string) (ImportResult, error) {
	b := newBuilder()

	sc := bufio.NewScanner(r)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := sc.Text()

		if c, ok := parseContactLine(line); ok {
			if c.helixA == c.helixB {
				b.warn("Line %d: both residues on helix %d, skipping", lineNum, c.helixA)
				continue
			}
			b.addContact(c)
			continue
		}

		if rest, ok := strings.CutPrefix(strings.TrimSpace(line), topologyPrefix); ok {
			values, err := parseTopology(rest)
			if err != nil {
				b.warn("Line %d: %v, topology ignored", lineNum, err)
				continue
			}
			b.boundaries = append(b.boundaries, values...)
			continue
		}

		if strings.TrimSpace(line) != "" {
			b.warn("Line %d: not a contact line, skipping", lineNum)
		}
	}
	if err := sc.Err(); err != nil {
		return ImportResult{}, fmt.Errorf("reading %s: %w", source, err)
	}

	return b.build(source)
}

// parseContactLine reads "a?b c?d [weight]" where ? is any single character.
func parseContactLine(line string) (rawContact, bool) {
	s := &scanner{s: line}
	var c rawContact
	var ok bool

	if c.residueA, ok = s.readInt(); !ok {
		return c, false
	}
	if !s.skipChar() {
		return c, false
	}
	if c.residueB, ok = s.readInt(); !ok {
		return c, false
	}
	if c.helixA, ok = s.readInt(); !ok {
		return c, false
	}
	if !s.skipChar() {
		return c, false
	}
	if c.helixB, ok = s.readInt(); !ok {
		return c, false
	}

	if w, ok := s.readFloat(); ok {
		c.weight = w
	}
	return c, true
}

// parseTopology splits a comma separated boundary list. Empty tokens are
// ignored; any other non-integer token rejects the whole list.
func parseTopology(s string) ([]int, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, nil
	}

	var values []int
	for _, tok := range strings.Split(fields[0], ",") {
		if tok == "" {
			continue
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("invalid boundary %q", tok)
		}
		values = append(values, v)
	}
	return values, nil
}

// scanner walks a line the way a C scanf would for integers.
type scanner struct {
	s   string
	pos int
}

func (sc *scanner) skipSpace() {
	for sc.pos < len(sc.s) && isSpace(sc.s[sc.pos]) {
		sc.pos++
	}
}

// readInt skips leading whitespace and reads an optionally signed integer.
func (sc *scanner) readInt() (int, bool) {
	sc.skipSpace()
	start := sc.pos
	if sc.pos < len(sc.s) && (sc.s[sc.pos] == '+' || sc.s[sc.pos] == '-') {
		sc.pos++
	}
	digits := sc.pos
	for sc.pos < len(sc.s) && sc.s[sc.pos] >= '0' && sc.s[sc.pos] <= '9' {
		sc.pos++
	}
	if sc.pos == digits {
		sc.pos = start
		return 0, false
	}
	v, err := strconv.Atoi(sc.s[start:sc.pos])
	if err != nil {
		return 0, false
	}
	return v, true
}

// skipChar consumes exactly one character of any kind.
func (sc *scanner) skipChar() bool {
	if sc.pos >= len(sc.s) {
		return false
	}
	sc.pos++
	return true
}

// readFloat reads the next whitespace separated field as a number.
func (sc *scanner) readFloat() (float64, bool) {
	sc.skipSpace()
	end := sc.pos
	for end < len(sc.s) && !isSpace(sc.s[end]) {
		end++
	}
	if end == sc.pos {
		return 0, false
	}
	v, err := strconv.ParseFloat(sc.s[sc.pos:end], 64)
	if err != nil {
		return 0, false
	}
	sc.pos = end
	return v, true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f'
}
