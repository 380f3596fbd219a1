// Package layout computes the initial helix centers of a component before
// the swap search and rotation optimizer refine them.
package layout

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"go.uber.org/zap"

	"github.com/piwi3910/HelixPack/internal/contactgraph"
	"github.com/piwi3910/HelixPack/internal/model"
)

// Provider seeds a component layout on a circle or at random and relaxes it
// with the Kamada-Kawai spring model.
type Provider struct {
	Settings model.Settings
	Logger   *zap.Logger
}

func NewProvider(settings model.Settings, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{Settings: settings, Logger: logger}
}

// InitialLayout returns one center per helix of comp.
func (p *Provider) InitialLayout(comp model.Component, rng *rand.Rand) ([]model.Point2D, error) {
	n := comp.Total()
	if n == 0 {
		return nil, fmt.Errorf("component %d has no helices", comp.Index+1)
	}

	radius := model.CircleRadius(n)
	var positions []model.Point2D
	if n == p.Settings.RandomLayoutCount {
		positions = Random(n, p.Settings.RandomLayoutSize, rng)
		p.Logger.Debug("Random seed layout", zap.Int("component", comp.Index+1))
	} else {
		positions = Circle(n, radius)
		p.Logger.Debug("Circle seed layout",
			zap.Int("component", comp.Index+1),
			zap.Float64("radius", radius))
	}

	if n < p.Settings.SpringMinHelices {
		return positions, nil
	}

	dist := contactgraph.Distances(comp, p.Settings.EdgeWeight)
	moves := KamadaKawai(positions, dist, p.Settings.EdgeLength, p.Settings.LayoutTolerance, p.Settings.LayoutMaxIters)

	if comp.DistinctEdges() == n-1 {
		p.Logger.Info("Linear helix arrangement detected, using circular layout",
			zap.Int("component", comp.Index+1))
		return ChainCircle(positions, radius), nil
	}

	p.Logger.Info("Using Kamada-Kawai spring layout",
		zap.Int("component", comp.Index+1),
		zap.Int("moves", moves))
	return positions, nil
}

// Circle places n points evenly on a circle around the origin, the first
// on the positive x axis.
func Circle(n int, radius float64) []model.Point2D {
	ps := make([]model.Point2D, n)
	for i := range ps {
		a := 2 * math.Pi * float64(i) / float64(n)
		ps[i] = model.Point2D{X: radius * math.Cos(a), Y: radius * math.Sin(a)}
	}
	return ps
}

// Random places n points uniformly in the square [0,size]x[0,size].
func Random(n int, size float64, rng *rand.Rand) []model.Point2D {
	ps := make([]model.Point2D, n)
	for i := range ps {
		ps[i] = model.Point2D{X: rng.Float64() * size, Y: rng.Float64() * size}
	}
	return ps
}

// ChainCircle maps a relaxed chain onto a circle so that its loops cannot
// cross. Helices are taken in order of increasing x and placed from -90
// degrees in equal steps around a circle hanging below the first helix.
func ChainCircle(positions []model.Point2D, radius float64) []model.Point2D {
	n := len(positions)
	if n == 0 {
		return nil
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return positions[order[a]].X < positions[order[b]].X
	})

	cx := positions[0].X
	cy := positions[0].Y - radius
	out := make([]model.Point2D, n)
	t := -90.0
	for _, h := range order {
		rad := t * math.Pi / 180
		out[h] = model.Point2D{X: cx + radius*math.Cos(rad), Y: cy + radius*math.Sin(rad)}
		t += 360.0 / float64(n)
	}
	return out
}
