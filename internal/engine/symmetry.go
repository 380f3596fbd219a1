package engine

import (
	"go.uber.org/zap"

	"github.com/piwi3910/HelixPack/internal/model"
)

// swapKey identifies an unordered helix pair, lower index first.
type swapKey struct {
	h, j int
}

// SwapSet records helix pairs already evaluated in one search branch. Each
// recursive call receives its own copy, so siblings never share records.
type SwapSet map[swapKey]bool

// Seen reports whether the pair was already evaluated.
func (s SwapSet) Seen(h, j int) bool {
	return s[swapKey{h, j}]
}

// Mark records the pair as evaluated.
func (s SwapSet) Mark(h, j int) {
	s[swapKey{h, j}] = true
}

// Clone returns an independent copy for a child branch.
func (s SwapSet) Clone() SwapSet {
	c := make(SwapSet, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}

// neighbors lists, for every helix, the helices it shares an edge with. A
// helix appears once per edge, so the lists are multisets.
func neighbors(total int, edges []model.Edge) [][]int {
	lists := make([][]int, total)
	for h := 0; h < total; h++ {
		for _, e := range edges {
			if e.A == h {
				lists[h] = append(lists[h], e.B)
			}
			if e.B == h {
				lists[h] = append(lists[h], e.A)
			}
		}
	}
	return lists
}

// interchangeable reports whether helices h and j have matching contact
// neighbourhoods given their neighbour lists hn and jn. Equal elements score
// one point per matching pair. A direct h-j contact earns at most one extra
// point from each side, and when both sides use it the required score rises
// by one, and single-neighbour lists can no longer match.
func interchangeable(h, j int, hn, jn []int) bool {
	if len(hn) == 0 || len(hn) != len(jn) {
		return false
	}

	correct := 0
	creditJ, creditH := false, false
	for _, k := range hn {
		for _, l := range jn {
			if k == l {
				correct++
			} else if k == j {
				if !creditJ {
					creditJ = true
					correct++
				}
			} else if l == h {
				if !creditH {
					creditH = true
					correct++
				}
			}
		}
	}

	required := len(hn)
	if creditH && creditJ {
		required++
		if len(hn) == 1 {
			return false
		}
	}
	return correct == required
}

// Explorer searches for helix swaps that keep the contact topology intact.
type Explorer struct {
	Logger *zap.Logger
}

// NewExplorer creates an Explorer; a nil logger discards output.
func NewExplorer(logger *zap.Logger) *Explorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Explorer{Logger: logger}
}

// ExploreSwaps walks every helix pair of the arrangement at handle h and
// tries swapping interchangeable pairs. A swap that adds loop crossovers is
// reverted; one that removes crossovers is kept in place. A swap that leaves
// the crossover count unchanged is stored as a new arrangement, the current
// one is restored, and the search recurses into the new arrangement.
func (e *Explorer) ExploreSwaps(arena *Arena, comp model.Component, h Handle, seen SwapSet) {
	total := comp.Total()
	lists := neighbors(total, comp.Edges)
	arr := arena.Get(h)

	for a := 0; a < total; a++ {
		for b := a + 1; b < total; b++ {
			if seen.Seen(a, b) {
				continue
			}
			seen.Mark(a, b)

			if !interchangeable(a, b, lists[a], lists[b]) {
				continue
			}

			before := CountCrossovers(arr.Positions)
			arr.SwapPositions(a, b)
			after := CountCrossovers(arr.Positions)

			switch {
			case after > before:
				e.Logger.Debug("Swap adds crossovers, reverting",
					zap.Int("helix_a", comp.Helices[a].Index+1),
					zap.Int("helix_b", comp.Helices[b].Index+1),
					zap.Int("before", before), zap.Int("after", after))
				arr.SwapPositions(a, b)

			case after < before:
				e.Logger.Debug("Swap removes crossovers, keeping new positions",
					zap.Int("helix_a", comp.Helices[a].Index+1),
					zap.Int("helix_b", comp.Helices[b].Index+1),
					zap.Int("before", before), zap.Int("after", after))

			default:
				e.Logger.Debug("Helices are interchangeable",
					zap.Int("helix_a", comp.Helices[a].Index+1),
					zap.Int("helix_b", comp.Helices[b].Index+1),
					zap.Int("crossovers", before))
				swapped := arr.Clone()
				arr.SwapPositions(a, b)
				child := arena.Add(swapped)
				e.ExploreSwaps(arena, comp, child, seen.Clone())
			}
		}
	}
}

// Explore runs the swap search from the initial arrangement at handle 0.
func (e *Explorer) Explore(arena *Arena, comp model.Component) {
	e.ExploreSwaps(arena, comp, 0, SwapSet{})
}
