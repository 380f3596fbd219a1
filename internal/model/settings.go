package model

import (
	"errors"
	"fmt"
)

// ErrInvalidSettings is wrapped by every Settings.Validate failure.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds optimizer, layout and search parameters.
type Settings struct {
	// Rotation optimizer (genetic algorithm)
	PopulationSize        int     `json:"population_size" yaml:"population_size"`
	MutationRate          float64 `json:"mutation_rate" yaml:"mutation_rate"`                     // Per-gene mutation probability
	CrossoverRate         float64 `json:"crossover_rate" yaml:"crossover_rate"`                   // Per-pair crossover probability
	GeneSwapRate          float64 `json:"gene_swap_rate" yaml:"gene_swap_rate"`                   // Per-gene exchange probability inside a crossover
	MutationScale         float64 `json:"mutation_scale" yaml:"mutation_scale"`                   // Initial Gaussian scale, fraction of the angle range
	MutationScaleFactor   float64 `json:"mutation_scale_factor" yaml:"mutation_scale_factor"`     // Applied to the scale after every generation
	StagnationGenerations int     `json:"stagnation_generations" yaml:"stagnation_generations"`   // Generations without improvement before stopping
	MinAngle              int     `json:"min_angle" yaml:"min_angle"`                             // Degrees
	MaxAngle              int     `json:"max_angle" yaml:"max_angle"`                             // Degrees
	Workers               int     `json:"workers" yaml:"workers"`                                 // Arrangements optimised in parallel

	// Helix geometry
	HelixRadius float64 `json:"helix_radius" yaml:"helix_radius"` // Residue circle radius
	ResidueStep float64 `json:"residue_step" yaml:"residue_step"` // Degrees between consecutive residues

	// Symmetry search
	SymmetryMinHelices int `json:"symmetry_min_helices" yaml:"symmetry_min_helices"` // Smallest component explored for swaps

	// Initial layout
	EdgeLength        float64 `json:"edge_length" yaml:"edge_length"`               // Spring layout target edge length
	EdgeWeight        float64 `json:"edge_weight" yaml:"edge_weight"`               // Placeholder helix edge weight
	RandomLayoutSize  float64 `json:"random_layout_size" yaml:"random_layout_size"` // Side of the random placement square
	LayoutTolerance   float64 `json:"layout_tolerance" yaml:"layout_tolerance"`     // Stop when the largest gradient is below this
	LayoutMaxIters    int     `json:"layout_max_iters" yaml:"layout_max_iters"`     // Newton-Raphson move cap
	SpringMinHelices  int     `json:"spring_min_helices" yaml:"spring_min_helices"` // Smallest component relaxed by the spring layout
	RandomLayoutCount int     `json:"random_layout_count" yaml:"random_layout_count"`
}

func DefaultSettings() Settings {
	return Settings{
		PopulationSize:        50,
		MutationRate:          0.1,
		CrossoverRate:         0.8,
		GeneSwapRate:          0.5,
		MutationScale:         0.25,
		MutationScaleFactor:   1.0,
		StagnationGenerations: 50,
		MinAngle:              0,
		MaxAngle:              359,
		Workers:               4,
		HelixRadius:           5.0,
		ResidueStep:           100.0,
		SymmetryMinHelices:    5,
		EdgeLength:            590.0,
		EdgeWeight:            1.2,
		RandomLayoutSize:      2000.0,
		LayoutTolerance:       0.0001,
		LayoutMaxIters:        10000,
		SpringMinHelices:      4,
		RandomLayoutCount:     5, // Circle layouts stall the spring pass at exactly this size
	}
}

// CircleRadius returns the seed circle radius for a component of n helices.
func CircleRadius(n int) float64 {
	switch {
	case n >= 10:
		return 800
	case n >= 5:
		return 500
	default:
		return 300
	}
}

// Validate reports the first setting the optimizer or layout cannot run with.
func (s Settings) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidSettings, fmt.Sprintf(format, args...))
	}

	if s.MinAngle < 0 || s.MaxAngle > 359 || s.MinAngle >= s.MaxAngle {
		return invalid("angle range [%d,%d] must satisfy 0 <= min < max <= 359", s.MinAngle, s.MaxAngle)
	}
	if s.PopulationSize < 1 {
		return invalid("population_size %d must be at least 1", s.PopulationSize)
	}
	if s.StagnationGenerations < 1 {
		return invalid("stagnation_generations %d must be at least 1", s.StagnationGenerations)
	}
	if s.Workers < 1 {
		return invalid("workers %d must be at least 1", s.Workers)
	}
	for _, r := range []struct {
		name string
		v    float64
	}{
		{"mutation_rate", s.MutationRate},
		{"crossover_rate", s.CrossoverRate},
		{"gene_swap_rate", s.GeneSwapRate},
	} {
		if r.v < 0 || r.v > 1 {
			return invalid("%s %g must lie in [0,1]", r.name, r.v)
		}
	}
	if s.MutationScale < 0 {
		return invalid("mutation_scale %g must not be negative", s.MutationScale)
	}
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"mutation_scale_factor", s.MutationScaleFactor},
		{"helix_radius", s.HelixRadius},
		{"residue_step", s.ResidueStep},
		{"edge_length", s.EdgeLength},
		{"edge_weight", s.EdgeWeight},
		{"random_layout_size", s.RandomLayoutSize},
		{"layout_tolerance", s.LayoutTolerance},
	} {
		if !(p.v > 0) {
			return invalid("%s %g must be positive", p.name, p.v)
		}
	}
	if s.LayoutMaxIters < 1 {
		return invalid("layout_max_iters %d must be at least 1", s.LayoutMaxIters)
	}
	if s.SymmetryMinHelices < 0 || s.SpringMinHelices < 0 || s.RandomLayoutCount < 0 {
		return invalid("helix count thresholds must not be negative")
	}
	return nil
}
