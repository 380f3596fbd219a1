package model

import (
	"testing"
)

func TestHelixContainsAndLength(t *testing.T) {
	h := Helix{Index: 2, Start: 31, Stop: 50}

	if !h.Contains(31) || !h.Contains(50) {
		t.Error("helix should contain its boundary residues")
	}
	if h.Contains(30) || h.Contains(51) {
		t.Error("helix should not contain residues outside its range")
	}
	if h.Length() != 20 {
		t.Errorf("expected length 20, got %d", h.Length())
	}
}

func TestInputHelixOf(t *testing.T) {
	in := Input{Helices: []Helix{
		{Index: 0, Start: 1, Stop: 20},
		{Index: 1, Start: 31, Stop: 50},
	}}

	cases := map[int]int{1: 0, 20: 0, 25: -1, 31: 1, 50: 1, 51: -1, 0: -1}
	for residue, want := range cases {
		if got := in.HelixOf(residue); got != want {
			t.Errorf("residue %d: expected helix %d, got %d", residue, want, got)
		}
	}
}

func TestComponentDistinctEdges(t *testing.T) {
	c := Component{
		Helices: make([]Helix, 3),
		Edges:   []Edge{{A: 0, B: 1}, {A: 1, B: 0}, {A: 1, B: 2}, {A: 1, B: 2}},
	}

	if c.Total() != 3 {
		t.Errorf("expected 3 helices, got %d", c.Total())
	}
	// (0,1) and (1,0) are the same helix pair
	if c.DistinctEdges() != 2 {
		t.Errorf("expected 2 distinct edges, got %d", c.DistinctEdges())
	}
	if (Component{}).DistinctEdges() != 0 {
		t.Error("empty component should have no edges")
	}
}

func TestNewArrangementCopiesPositions(t *testing.T) {
	positions := []Point2D{{X: 1, Y: 2}, {X: 3, Y: 4}}
	a := NewArrangement(positions)

	positions[0].X = 99
	if a.Positions[0].X != 1 {
		t.Error("arrangement should not share the caller's position slice")
	}
	if len(a.Rotations) != 2 || a.Rotations[0] != 0 || a.Rotations[1] != 0 {
		t.Errorf("expected zero rotations, got %v", a.Rotations)
	}
	if a.ID == "" {
		t.Error("expected a non-empty ID")
	}
	if a.Residues == nil {
		t.Error("residue table should be allocated")
	}
}

func TestArrangementCloneIsDeep(t *testing.T) {
	a := NewArrangement([]Point2D{{X: 1}, {X: 2}, {X: 3}})
	a.Rotations[1] = 45
	a.Residues[7] = Point2D{X: 5, Y: 5}
	a.Score = 2.5

	c := a.Clone()
	if c.ID == a.ID {
		t.Error("clone should get a fresh ID")
	}
	if c.Rotations[1] != 45 || c.Score != 2.5 || c.Residues[7] != (Point2D{X: 5, Y: 5}) {
		t.Errorf("clone lost state: %+v", c)
	}

	c.SwapPositions(0, 2)
	c.Rotations[1] = 0
	c.Residues[7] = Point2D{}
	if a.Positions[0].X != 1 || a.Rotations[1] != 45 || a.Residues[7].X != 5 {
		t.Error("mutating the clone changed the original")
	}
	if c.Positions[0].X != 3 || c.Positions[2].X != 1 {
		t.Errorf("expected swapped positions, got %v", c.Positions)
	}
}

func TestComponentResultBest(t *testing.T) {
	if _, ok := (ComponentResult{}).Best(); ok {
		t.Error("empty result should have no best arrangement")
	}

	cr := ComponentResult{Arrangements: []ArrangementResult{{Rank: 1, Score: 1}, {Rank: 2, Score: 3}}}
	best, ok := cr.Best()
	if !ok || best.Rank != 1 {
		t.Errorf("expected rank 1, got %+v", best)
	}
}

func TestReport(t *testing.T) {
	r := NewReport("in.txt", 5)
	if r.RunID == "" || r.CreatedAt.IsZero() {
		t.Errorf("report should be stamped, got %+v", r)
	}
	if r.Source != "in.txt" || r.Seed != 5 {
		t.Errorf("unexpected report header %+v", r)
	}

	r.Components = []ComponentResult{
		{Arrangements: make([]ArrangementResult, 2)},
		{Arrangements: make([]ArrangementResult, 1)},
	}
	if r.TotalArrangements() != 3 {
		t.Errorf("expected 3 arrangements, got %d", r.TotalArrangements())
	}
	if NewReport("in.txt", 5).RunID == r.RunID {
		t.Error("run ids should be unique")
	}
}

func TestTitle(t *testing.T) {
	if got := Title(0, 1); got != "C1 A2" {
		t.Errorf("expected C1 A2, got %s", got)
	}
}

func TestCircleRadius(t *testing.T) {
	cases := map[int]float64{1: 300, 4: 300, 5: 500, 9: 500, 10: 800, 15: 800}
	for n, want := range cases {
		if got := CircleRadius(n); got != want {
			t.Errorf("n=%d: expected %f, got %f", n, want, got)
		}
	}
}
