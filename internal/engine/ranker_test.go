package engine

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/piwi3910/HelixPack/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func fixedLayout(positions []model.Point2D) LayoutProvider {
	return LayoutFunc(func(comp model.Component, rng *rand.Rand) ([]model.Point2D, error) {
		out := make([]model.Point2D, len(positions))
		copy(out, positions)
		return out, nil
	})
}

func TestRankComponent_RingAllArrangements(t *testing.T) {
	settings := makeTestSettings()
	settings.SymmetryMinHelices = 4
	r := NewRanker(settings, fixedLayout(square()), 1234, nil)

	res, err := r.RankComponent(context.Background(), ringComponent())
	require.NoError(t, err)
	require.Len(t, res.Arrangements, 4)

	for i, a := range res.Arrangements {
		assert.Equal(t, i+1, a.Rank)
		assert.Equal(t, 0, a.Crossovers)
		assert.Equal(t, []int{1, 2, 3, 4}, a.HelixNumber)
		assert.Len(t, a.Rotations, 4)
		assert.Greater(t, a.Evaluations, 0)
		if i > 0 {
			assert.LessOrEqual(t, res.Arrangements[i-1].Score, a.Score)
		}
	}

	handles := make(map[int]bool)
	for _, a := range res.Arrangements {
		handles[a.Handle] = true
	}
	assert.Len(t, handles, 4)
}

func TestRankComponent_SmallComponentSkipsSwaps(t *testing.T) {
	// Default settings only explore components of five or more helices
	r := NewRanker(makeTestSettings(), fixedLayout(square()), 1, nil)

	res, err := r.RankComponent(context.Background(), ringComponent())
	require.NoError(t, err)
	assert.Len(t, res.Arrangements, 1)
}

func TestRankComponent_Deterministic(t *testing.T) {
	settings := makeTestSettings()
	settings.SymmetryMinHelices = 4
	settings.Workers = 3

	a, err := NewRanker(settings, fixedLayout(square()), 77, nil).RankComponent(context.Background(), ringComponent())
	require.NoError(t, err)

	settings.Workers = 1
	b, err := NewRanker(settings, fixedLayout(square()), 77, nil).RankComponent(context.Background(), ringComponent())
	require.NoError(t, err)

	require.Len(t, b.Arrangements, len(a.Arrangements))
	for i := range a.Arrangements {
		assert.Equal(t, a.Arrangements[i].Handle, b.Arrangements[i].Handle)
		assert.Equal(t, a.Arrangements[i].Score, b.Arrangements[i].Score)
		assert.Equal(t, a.Arrangements[i].Rotations, b.Arrangements[i].Rotations)
	}
}

func TestRankComponent_TiesKeepDiscoveryOrder(t *testing.T) {
	// No contacts: every arrangement scores zero
	comp := ringComponent()
	comp.Contacts = nil
	settings := makeTestSettings()
	settings.SymmetryMinHelices = 4

	res, err := NewRanker(settings, fixedLayout(square()), 5, nil).RankComponent(context.Background(), comp)
	require.NoError(t, err)
	require.Len(t, res.Arrangements, 4)
	for i, a := range res.Arrangements {
		assert.Equal(t, i, a.Handle)
		assert.Equal(t, 0.0, a.Score)
	}
}

func TestRankComponent_LayoutErrors(t *testing.T) {
	failing := LayoutFunc(func(model.Component, *rand.Rand) ([]model.Point2D, error) {
		return nil, errors.New("boom")
	})
	_, err := NewRanker(makeTestSettings(), failing, 1, nil).RankComponent(context.Background(), ringComponent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	short := fixedLayout(square()[:2])
	_, err = NewRanker(makeTestSettings(), short, 1, nil).RankComponent(context.Background(), ringComponent())
	assert.Error(t, err)

	_, err = NewRanker(makeTestSettings(), short, 1, nil).RankComponent(context.Background(), model.Component{})
	assert.Error(t, err)
}

func TestRankComponent_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRanker(makeTestSettings(), fixedLayout(square()), 1, nil).RankComponent(ctx, ringComponent())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRank_Report(t *testing.T) {
	second := pathComponent()
	second.Index = 1

	r := NewRanker(makeTestSettings(), fixedLayout(square()), 42, nil)
	report, err := r.Rank(context.Background(), "test.txt", []model.Component{ringComponent(), second})
	require.NoError(t, err)

	assert.Equal(t, "test.txt", report.Source)
	assert.Equal(t, int64(42), report.Seed)
	assert.NotEmpty(t, report.RunID)
	assert.False(t, report.CreatedAt.IsZero())
	require.Len(t, report.Components, 2)
	assert.Equal(t, 1, report.Components[1].Component.Index)
	assert.Equal(t, 2, report.TotalArrangements())
}

func TestDeriveSeed(t *testing.T) {
	assert.Equal(t, deriveSeed(1, 2), deriveSeed(1, 2))
	assert.NotEqual(t, deriveSeed(1, 2), deriveSeed(1, 3))
	assert.NotEqual(t, deriveSeed(1, 2), deriveSeed(2, 2))

	a := streamRNG(9, 0, 1)
	b := streamRNG(9, 0, 1)
	c := streamRNG(9, 1, 0)
	va, vb, vc := a.Int63(), b.Int63(), c.Int63()
	assert.Equal(t, va, vb)
	assert.NotEqual(t, va, vc)
}

func TestNewSeed(t *testing.T) {
	assert.NotZero(t, NewSeed())
}
