package engine

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/HelixPack/internal/model"
)

// layoutStream is the generator stream reserved for the initial layout of a
// component; arrangement streams count up from zero.
const layoutStream = math.MaxInt32

// LayoutProvider produces the initial helix centers of a component, one per
// helix in component order.
type LayoutProvider interface {
	InitialLayout(comp model.Component, rng *rand.Rand) ([]model.Point2D, error)
}

// LayoutFunc adapts a plain function to LayoutProvider.
type LayoutFunc func(comp model.Component, rng *rand.Rand) ([]model.Point2D, error)

// InitialLayout calls f.
func (f LayoutFunc) InitialLayout(comp model.Component, rng *rand.Rand) ([]model.Point2D, error) {
	return f(comp, rng)
}

// Ranker runs the swap search and the rotation optimizer for every
// component and orders the resulting arrangements by score.
type Ranker struct {
	Settings model.Settings
	Layout   LayoutProvider
	Seed     int64
	Logger   *zap.Logger
}

func NewRanker(settings model.Settings, layout LayoutProvider, seed int64, logger *zap.Logger) *Ranker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ranker{Settings: settings, Layout: layout, Seed: seed, Logger: logger}
}

// Rank processes every component in order and collects the results into a
// report.
func (r *Ranker) Rank(ctx context.Context, source string, comps []model.Component) (model.Report, error) {
	report := model.NewReport(source, r.Seed)
	for _, comp := range comps {
		res, err := r.RankComponent(ctx, comp)
		if err != nil {
			return report, fmt.Errorf("component %d: %w", comp.Index+1, err)
		}
		report.Components = append(report.Components, res)
	}
	return report, nil
}

// RankComponent builds every arrangement of one component, optimises their
// rotations in parallel and returns them sorted by ascending score. Equal
// scores keep the order in which the arrangements were discovered.
func (r *Ranker) RankComponent(ctx context.Context, comp model.Component) (model.ComponentResult, error) {
	result := model.ComponentResult{Component: comp}
	total := comp.Total()
	if total == 0 {
		return result, fmt.Errorf("component %d has no helices", comp.Index+1)
	}

	positions, err := r.Layout.InitialLayout(comp, streamRNG(r.Seed, comp.Index, layoutStream))
	if err != nil {
		return result, fmt.Errorf("initial layout: %w", err)
	}
	if len(positions) != total {
		return result, fmt.Errorf("initial layout returned %d positions for %d helices", len(positions), total)
	}

	arena := NewArena(positions)
	if total >= r.Settings.SymmetryMinHelices {
		NewExplorer(r.Logger).Explore(arena, comp)
	}
	r.Logger.Info("Arrangements enumerated",
		zap.Int("component", comp.Index+1),
		zap.Int("helices", total),
		zap.Int("arrangements", arena.Len()))

	handles := arena.Handles()
	stats := make([]OptimizeStats, len(handles))

	workers := r.Settings.Workers
	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, h := range handles {
		i, h := i, h
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			stats[i] = OptimizeRotation(comp, arena.Get(h), r.Settings, streamRNG(r.Seed, comp.Index, i), r.Logger)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}

	result.Arrangements = make([]model.ArrangementResult, 0, len(handles))
	for i, h := range handles {
		arr := arena.Get(h)
		result.Arrangements = append(result.Arrangements, model.ArrangementResult{
			Handle:      int(h),
			ID:          arr.ID,
			HelixNumber: helixNumbers(comp),
			Positions:   append([]model.Point2D(nil), arr.Positions...),
			Rotations:   append([]int(nil), arr.Rotations...),
			Score:       arr.Score,
			Crossovers:  CountCrossovers(arr.Positions),
			Evaluations: stats[i].Evaluations,
			Generations: stats[i].Generations,
		})
	}

	sort.SliceStable(result.Arrangements, func(i, j int) bool {
		return result.Arrangements[i].Score < result.Arrangements[j].Score
	})
	for i := range result.Arrangements {
		result.Arrangements[i].Rank = i + 1
	}
	return result, nil
}

// helixNumbers returns the one-based input helix numbers of comp.
func helixNumbers(comp model.Component) []int {
	nums := make([]int, len(comp.Helices))
	for i, h := range comp.Helices {
		nums[i] = h.Index + 1
	}
	return nums
}
