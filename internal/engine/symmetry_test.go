package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/HelixPack/internal/model"
)

func square() []model.Point2D {
	return []model.Point2D{pt(0, 0), pt(100, 0), pt(100, 100), pt(0, 100)}
}

func ringComponent() model.Component {
	return testComponent(4,
		model.Edge{A: 0, B: 1}, model.Edge{A: 1, B: 2},
		model.Edge{A: 2, B: 3}, model.Edge{A: 3, B: 0})
}

func pathComponent() model.Component {
	return testComponent(4,
		model.Edge{A: 0, B: 1}, model.Edge{A: 1, B: 2}, model.Edge{A: 2, B: 3})
}

// triangleTailComponent is a triangle 0-1-2 with helix 3 hanging off 2.
// Only helices 0 and 1 share a neighbourhood.
func triangleTailComponent() model.Component {
	return testComponent(4,
		model.Edge{A: 0, B: 1}, model.Edge{A: 0, B: 2},
		model.Edge{A: 1, B: 2}, model.Edge{A: 2, B: 3})
}

func TestNeighbors(t *testing.T) {
	lists := neighbors(4, ringComponent().Edges)
	assert.Equal(t, [][]int{{1, 3}, {0, 2}, {1, 3}, {2, 0}}, lists)

	// A helix with no edges has an empty list
	lists = neighbors(3, []model.Edge{{A: 0, B: 1}})
	assert.Empty(t, lists[2])
}

func TestInterchangeable(t *testing.T) {
	ring := neighbors(4, ringComponent().Edges)
	assert.True(t, interchangeable(0, 2, ring[0], ring[2]), "opposite ring helices")
	assert.True(t, interchangeable(1, 3, ring[1], ring[3]), "opposite ring helices")
	assert.False(t, interchangeable(0, 1, ring[0], ring[1]), "adjacent ring helices")

	tri := neighbors(4, triangleTailComponent().Edges)
	assert.True(t, interchangeable(0, 1, tri[0], tri[1]), "triangle helices joined to each other")
	assert.False(t, interchangeable(0, 2, tri[0], tri[2]), "list sizes differ")

	path := neighbors(4, pathComponent().Edges)
	assert.False(t, interchangeable(1, 2, path[1], path[2]), "both credits raise the requirement")
	assert.False(t, interchangeable(0, 3, path[0], path[3]), "path ends have different neighbours")
}

func TestInterchangeable_EmptyLists(t *testing.T) {
	assert.False(t, interchangeable(0, 1, nil, nil))
	assert.False(t, interchangeable(0, 1, []int{2}, nil))
}

func TestSwapSet(t *testing.T) {
	seen := SwapSet{}
	assert.False(t, seen.Seen(0, 1))
	seen.Mark(0, 1)
	assert.True(t, seen.Seen(0, 1))

	child := seen.Clone()
	child.Mark(2, 3)
	assert.True(t, child.Seen(0, 1))
	assert.False(t, seen.Seen(2, 3), "child records must not leak into the parent")
}

func TestArena(t *testing.T) {
	arena := NewArena(square())
	require.Equal(t, 1, arena.Len())

	first := arena.Get(0)
	h := arena.Add(first.Clone())
	assert.Equal(t, Handle(1), h)
	assert.Equal(t, []Handle{0, 1}, arena.Handles())

	// Earlier handles keep pointing at the same arrangement after appends
	for i := 0; i < 10; i++ {
		arena.Add(first.Clone())
	}
	assert.Same(t, first, arena.Get(0))
	assert.NotEqual(t, first.ID, arena.Get(h).ID)
}

// A square ring has four equal-crossover placements, so four arrangements;
// the two-arrangement case is covered by TestExplore_TriangleTail.
func TestExplore_Ring(t *testing.T) {
	comp := ringComponent()
	arena := NewArena(square())

	NewExplorer(nil).Explore(arena, comp)

	require.Equal(t, 4, arena.Len())
	want := CountCrossovers(square())
	for _, h := range arena.Handles() {
		assert.Equal(t, want, CountCrossovers(arena.Get(h).Positions), "handle %d", h)
	}

	// Every arrangement is a distinct placement
	seen := make(map[[4]model.Point2D]bool)
	for _, h := range arena.Handles() {
		var key [4]model.Point2D
		copy(key[:], arena.Get(h).Positions)
		assert.False(t, seen[key], "duplicate placement at handle %d", h)
		seen[key] = true
	}
}

func TestExplore_TriangleTail(t *testing.T) {
	comp := triangleTailComponent()
	initial := square()
	arena := NewArena(initial)

	NewExplorer(nil).Explore(arena, comp)

	require.Equal(t, 2, arena.Len())
	assert.Equal(t, initial, arena.Get(0).Positions, "current arrangement is restored after an equal swap")

	swapped := arena.Get(1).Positions
	assert.Equal(t, initial[1], swapped[0])
	assert.Equal(t, initial[0], swapped[1])
	assert.Equal(t, initial[2:], swapped[2:])
	assert.Equal(t, CountCrossovers(initial), CountCrossovers(swapped))
}

func TestExplore_PathHasNoSymmetry(t *testing.T) {
	arena := NewArena(square())
	NewExplorer(nil).Explore(arena, pathComponent())
	assert.Equal(t, 1, arena.Len())
}

func TestExploreSwaps_KeepsImprovingSwap(t *testing.T) {
	// Loops 0-1 and 2-3 are the diagonals and cross. Swapping the opposite
	// ring helices 0 and 2 uncrosses them; the follow-up swap of 1 and 3
	// would cross them again and is reverted.
	bowtie := []model.Point2D{pt(0, 0), pt(100, 100), pt(0, 100), pt(100, 0)}
	require.Equal(t, 1, CountCrossovers(bowtie))

	arena := NewArena(bowtie)
	NewExplorer(nil).Explore(arena, ringComponent())

	require.Equal(t, 1, arena.Len(), "an improving swap adds no arrangement")
	got := arena.Get(0).Positions
	assert.Equal(t, 0, CountCrossovers(got))
	assert.Equal(t, []model.Point2D{pt(0, 100), pt(100, 100), pt(0, 0), pt(100, 0)}, got)
}

func TestExploreSwaps_CallerSeenUntouched(t *testing.T) {
	comp := ringComponent()
	arena := NewArena(square())
	seen := SwapSet{}

	NewExplorer(nil).ExploreSwaps(arena, comp, 0, seen)

	// The caller's set holds every pair of its own pass, nothing more
	assert.Len(t, seen, 6)
}
