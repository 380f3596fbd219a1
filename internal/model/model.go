package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Point2D represents a 2D coordinate in diagram units.
type Point2D struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Helix is a transmembrane segment spanning residues [Start, Stop].
type Helix struct {
	Index int `json:"index"` // Zero-based position in the topology
	Start int `json:"start"` // First residue number
	Stop  int `json:"stop"`  // Last residue number
}

// Contains reports whether the residue lies inside the helix range.
func (h Helix) Contains(residue int) bool {
	return residue >= h.Start && residue <= h.Stop
}

// Length returns the number of residues in the helix.
func (h Helix) Length() int {
	return h.Stop - h.Start + 1
}

// Contact is a predicted proximity between two residues on different helices.
type Contact struct {
	ResidueA int     `json:"residue_a"`
	ResidueB int     `json:"residue_b"`
	HelixA   int     `json:"helix_a"` // Zero-based helix index
	HelixB   int     `json:"helix_b"` // Zero-based helix index
	Weight   float64 `json:"weight"`  // Predictor confidence, informational only
}

// Edge is a helix-index pair as read from the contact list. (1,2) and (2,1)
// are distinct edges.
type Edge struct {
	A int `json:"a"`
	B int `json:"b"`
}

// Input is everything parsed from one contact prediction file.
type Input struct {
	Source   string    `json:"source"`
	Helices  []Helix   `json:"helices"`
	Contacts []Contact `json:"contacts"`
	Edges    []Edge    `json:"edges"`
}

// HelixOf returns the index of the helix that contains the residue, or -1.
func (in Input) HelixOf(residue int) int {
	for _, h := range in.Helices {
		if h.Contains(residue) {
			return h.Index
		}
	}
	return -1
}

// Component is a maximal connected set of helices under the contact graph.
// Helices are stored in ascending original index order; contacts and edges
// use indices local to the component.
type Component struct {
	Index    int       `json:"index"`
	Helices  []Helix   `json:"helices"`
	Contacts []Contact `json:"contacts"`
	Edges    []Edge    `json:"edges"`
}

// Total returns the number of helices in the component.
func (c Component) Total() int {
	return len(c.Helices)
}

// DistinctEdges counts unordered helix pairs connected by at least one edge.
func (c Component) DistinctEdges() int {
	seen := make(map[Edge]bool)
	for _, e := range c.Edges {
		a, b := e.A, e.B
		if a > b {
			a, b = b, a
		}
		seen[Edge{A: a, B: b}] = true
	}
	return len(seen)
}

// Arrangement is one full layout of a component: a position per helix, a
// rotation per helix and the residue positions derived from both.
type Arrangement struct {
	ID        string          `json:"id"`
	Positions []Point2D       `json:"positions"`
	Rotations []int           `json:"rotations"`
	Residues  map[int]Point2D `json:"-"`
	Score     float64         `json:"score"`
}

// NewArrangement creates an arrangement with zero rotations.
func NewArrangement(positions []Point2D) *Arrangement {
	pos := make([]Point2D, len(positions))
	copy(pos, positions)
	return &Arrangement{
		ID:        uuid.New().String()[:8],
		Positions: pos,
		Rotations: make([]int, len(positions)),
		Residues:  make(map[int]Point2D),
	}
}

// Clone returns a deep copy with a fresh ID.
func (a *Arrangement) Clone() *Arrangement {
	c := NewArrangement(a.Positions)
	copy(c.Rotations, a.Rotations)
	for k, v := range a.Residues {
		c.Residues[k] = v
	}
	c.Score = a.Score
	return c
}

// SwapPositions exchanges the centers of helices i and j.
func (a *Arrangement) SwapPositions(i, j int) {
	a.Positions[i], a.Positions[j] = a.Positions[j], a.Positions[i]
}

// ArrangementResult is one ranked arrangement in a component report.
type ArrangementResult struct {
	Rank        int       `json:"rank"`
	Handle      int       `json:"handle"`
	ID          string    `json:"id"`
	HelixNumber []int     `json:"helix_number"` // One-based helix numbers in the input file
	Positions   []Point2D `json:"positions"`
	Rotations   []int     `json:"rotations"`
	Score       float64   `json:"score"`
	Crossovers  int       `json:"crossovers"`
	Evaluations int       `json:"evaluations"`
	Generations int       `json:"generations"`
}

// ComponentResult holds all ranked arrangements for one component.
type ComponentResult struct {
	Component    Component           `json:"component"`
	Arrangements []ArrangementResult `json:"arrangements"`
}

// Best returns the lowest-scoring arrangement.
func (cr ComponentResult) Best() (ArrangementResult, bool) {
	if len(cr.Arrangements) == 0 {
		return ArrangementResult{}, false
	}
	return cr.Arrangements[0], true
}

// Report is the outcome of one run over an input file.
type Report struct {
	RunID      string            `json:"run_id"`
	Source     string            `json:"source"`
	Seed       int64             `json:"seed"`
	CreatedAt  time.Time         `json:"created_at"`
	Components []ComponentResult `json:"components"`
}

// NewReport creates an empty report stamped with a fresh run id.
func NewReport(source string, seed int64) Report {
	return Report{
		RunID:     uuid.New().String(),
		Source:    source,
		Seed:      seed,
		CreatedAt: time.Now().UTC(),
	}
}

// TotalArrangements counts arrangements across all components.
func (r Report) TotalArrangements() int {
	total := 0
	for _, c := range r.Components {
		total += len(c.Arrangements)
	}
	return total
}

// Title returns a short label for an arrangement, e.g. "C1 A2".
func Title(component, arrangement int) string {
	return fmt.Sprintf("C%d A%d", component+1, arrangement+1)
}
