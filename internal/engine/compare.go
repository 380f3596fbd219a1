package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/piwi3910/HelixPack/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.Settings
}

// ComparisonResult holds the report and summary statistics for a single
// scenario.
type ComparisonResult struct {
	Scenario     ComparisonScenario
	Report       model.Report
	Arrangements int
	BestScores   []float64 // Best score per component
	MeanBest     float64
	Evaluations  int
}

// CompareScenarios ranks the same components once per scenario with the same
// seed and returns the results in scenario order. layoutFor builds the layout
// provider for a scenario's settings.
func CompareScenarios(ctx context.Context, scenarios []ComparisonScenario, comps []model.Component,
	layoutFor func(model.Settings) LayoutProvider, seed int64, logger *zap.Logger) ([]ComparisonResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		ranker := NewRanker(scenario.Settings, layoutFor(scenario.Settings), seed, logger.With(zap.String("scenario", scenario.Name)))
		report, err := ranker.Rank(ctx, scenario.Name, comps)
		if err != nil {
			return results, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}

		cr := ComparisonResult{Scenario: scenario, Report: report, Arrangements: report.TotalArrangements()}
		sum := 0.0
		for _, c := range report.Components {
			best, ok := c.Best()
			if !ok {
				continue
			}
			cr.BestScores = append(cr.BestScores, best.Score)
			sum += best.Score
			for _, a := range c.Arrangements {
				cr.Evaluations += a.Evaluations
			}
		}
		if len(cr.BestScores) > 0 {
			cr.MeanBest = sum / float64(len(cr.BestScores))
		}
		results = append(results, cr)
	}

	return results, nil
}

// BuildDefaultScenarios generates what-if variations of the current settings.
func BuildDefaultScenarios(base model.Settings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
		},
	}

	bigger := base
	bigger.PopulationSize = base.PopulationSize * 2
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("Population %d (double)", bigger.PopulationSize),
		Settings: bigger,
	})

	if base.MutationScaleFactor >= 1 {
		annealed := base
		annealed.MutationScaleFactor = 0.99
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Shrinking Mutation",
			Settings: annealed,
		})
	}

	if base.SymmetryMinHelices > 4 {
		swaps := base
		swaps.SymmetryMinHelices = 4
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Swaps From 4 Helices",
			Settings: swaps,
		})
	}

	return scenarios
}
