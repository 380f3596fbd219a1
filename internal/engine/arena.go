package engine

import "github.com/piwi3910/HelixPack/internal/model"

// Handle addresses an arrangement inside an Arena.
type Handle int

// Arena is an append-only store of arrangements for one component. Handles
// stay valid for the arena's lifetime.
type Arena struct {
	items []*model.Arrangement
}

// NewArena creates an arena seeded with the initial layout at handle 0.
func NewArena(initial []model.Point2D) *Arena {
	return &Arena{items: []*model.Arrangement{model.NewArrangement(initial)}}
}

// Add appends an arrangement and returns its handle.
func (a *Arena) Add(arr *model.Arrangement) Handle {
	a.items = append(a.items, arr)
	return Handle(len(a.items) - 1)
}

// Get returns the arrangement behind h.
func (a *Arena) Get(h Handle) *model.Arrangement {
	return a.items[h]
}

// Len returns the number of arrangements.
func (a *Arena) Len() int {
	return len(a.items)
}

// Handles returns every handle in insertion order.
func (a *Arena) Handles() []Handle {
	hs := make([]Handle, len(a.items))
	for i := range hs {
		hs[i] = Handle(i)
	}
	return hs
}
