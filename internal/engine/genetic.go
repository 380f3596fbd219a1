package engine

import (
	"math"
	"math/rand"
	"sort"

	"go.uber.org/zap"

	"github.com/piwi3910/HelixPack/internal/model"
)

// GeneticConfig holds parameters for the rotation optimizer.
type GeneticConfig struct {
	PopulationSize        int
	MutationRate          float64
	CrossoverRate         float64
	GeneSwapRate          float64
	MutationScale         float64
	MutationScaleFactor   float64
	StagnationGenerations int
	MinAngle              int
	MaxAngle              int
}

// DefaultGeneticConfig returns the optimizer parameters of DefaultSettings.
func DefaultGeneticConfig() GeneticConfig {
	return NewGeneticConfig(model.DefaultSettings())
}

// NewGeneticConfig extracts the optimizer parameters from settings.
func NewGeneticConfig(s model.Settings) GeneticConfig {
	return GeneticConfig{
		PopulationSize:        s.PopulationSize,
		MutationRate:          s.MutationRate,
		CrossoverRate:         s.CrossoverRate,
		GeneSwapRate:          s.GeneSwapRate,
		MutationScale:         s.MutationScale,
		MutationScaleFactor:   s.MutationScaleFactor,
		StagnationGenerations: s.StagnationGenerations,
		MinAngle:              s.MinAngle,
		MaxAngle:              s.MaxAngle,
	}
}

// genome is one candidate rotation vector.
type genome struct {
	genes   []int
	fitness float64
	dirty   bool // fitness is stale
}

// OptimizeStats summarises one optimizer run.
type OptimizeStats struct {
	Score       float64
	Evaluations int
	Generations int
	History     []float64 // Best fitness of the population after each generation
}

// rotationOptimizer runs the genetic search for one arrangement.
type rotationOptimizer struct {
	config    GeneticConfig
	positions []model.Point2D
	scorer    *scorer
	contacts  int
	rng       *rand.Rand
	logger    *zap.Logger

	scale       float64
	evaluations int
	best        float64
	bestGenes   []int
}

func newRotationOptimizer(config GeneticConfig, comp model.Component, positions []model.Point2D, settings model.Settings, rng *rand.Rand, logger *zap.Logger) *rotationOptimizer {
	if config.PopulationSize < 1 {
		config.PopulationSize = 1
	}
	return &rotationOptimizer{
		config:    config,
		positions: positions,
		scorer:    newScorer(comp, settings),
		contacts:  len(comp.Contacts),
		rng:       rng,
		logger:    logger,
		scale:     config.MutationScale,
		best:      math.Inf(1),
	}
}

// optimize evolves the population until the best fitness stalls or the
// population converges, and returns the best genome ever evaluated.
func (g *rotationOptimizer) optimize() ([]int, OptimizeStats) {
	stats := OptimizeStats{}

	pool := g.initPopulation()
	g.evaluatePool(pool)

	prevBest := math.Inf(1)
	prevGen := 0
	for gen := 1; ; gen++ {
		next := g.selectPool(pool)
		g.crossover(next)
		g.mutate(next)
		best, worst := g.evaluatePool(next)

		stats.Generations = gen
		stats.History = append(stats.History, best)

		if best < prevBest {
			prevBest = best
			prevGen = gen
		}

		if gen-prevGen > g.config.StagnationGenerations || worst == best {
			g.logger.Debug("Convergence detected",
				zap.Int("generation", gen),
				zap.Float64("best", best))
			break
		}
		pool = next
	}

	stats.Score = g.best
	stats.Evaluations = g.evaluations
	return g.bestGenes, stats
}

// initPopulation creates genomes with uniformly random angles.
func (g *rotationOptimizer) initPopulation() []genome {
	n := len(g.positions)
	span := g.config.MaxAngle - g.config.MinAngle + 1
	pool := make([]genome, g.config.PopulationSize)
	for i := range pool {
		genes := make([]int, n)
		for j := range genes {
			genes[j] = g.config.MinAngle + g.rng.Intn(span)
		}
		pool[i] = genome{genes: genes, dirty: true}
	}
	return pool
}

// evaluate scores one rotation vector and remembers it if it is the best so far.
func (g *rotationOptimizer) evaluate(genes []int) float64 {
	v := g.scorer.total(g.positions, genes) / float64(g.contacts)
	g.evaluations++

	if v < g.best {
		g.best = v
		g.bestGenes = append(g.bestGenes[:0], genes...)
		g.logger.Debug("New best score",
			zap.Float64("score", v),
			zap.Int("evaluations", g.evaluations))
	}
	return v
}

// evaluatePool refreshes stale fitness values and returns the best and worst.
func (g *rotationOptimizer) evaluatePool(pool []genome) (best, worst float64) {
	for i := range pool {
		if pool[i].dirty {
			pool[i].fitness = g.evaluate(pool[i].genes)
			pool[i].dirty = false
		}
	}

	best, worst = pool[0].fitness, pool[0].fitness
	for _, p := range pool[1:] {
		if p.fitness > worst {
			worst = p.fitness
		}
		if p.fitness < best {
			best = p.fitness
		}
	}
	return best, worst
}

// selectPool sorts pool ascending by fitness and draws a new pool by rank
// weighted roulette: rank r has weight len(pool)-r. The best genome is copied
// to slot 0 of the new pool unconditionally.
func (g *rotationOptimizer) selectPool(pool []genome) []genome {
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].fitness < pool[j].fitness
	})

	n := len(pool)
	fitsum := float64(n*(n+1)) / 2

	next := make([]genome, n)
	for i := 0; i < n; i++ {
		ptr := fitsum * g.rng.Float64()
		sum := 0.0
		k := -1
		for {
			k++
			sum += float64(n - k)
			if sum >= ptr || k >= n-1 {
				break
			}
		}
		next[i] = copyGenome(pool[k])
	}

	next[0] = copyGenome(pool[0])
	return next
}

// crossover exchanges genes between adjacent pairs, never touching the
// elite in slot 0.
func (g *rotationOptimizer) crossover(pool []genome) {
	for i := 0; i+1 < len(pool); i += 2 {
		if g.rng.Float64() >= g.config.CrossoverRate {
			continue
		}
		if i == 0 {
			continue
		}

		a, b := pool[i].genes, pool[i+1].genes
		changed := false
		for p := range a {
			if g.rng.Float64() < g.config.GeneSwapRate && a[p] != b[p] {
				a[p], b[p] = b[p], a[p]
				changed = true
			}
		}
		if changed {
			pool[i].dirty = true
			pool[i+1].dirty = true
		}
	}
}

// mutate perturbs genes of every genome except the elite with Gaussian
// noise of at least one degree, then decays the mutation scale.
func (g *rotationOptimizer) mutate(pool []genome) {
	span := float64(g.config.MaxAngle - g.config.MinAngle)
	if g.config.MutationRate > 0 {
		for i := 1; i < len(pool); i++ {
			for j := range pool[i].genes {
				if g.rng.Float64() >= g.config.MutationRate {
					continue
				}
				delta := g.scale * g.rng.NormFloat64() * span
				if delta > -1.0 && delta < 1.0 {
					if delta < 0 {
						delta = -1.0
					} else {
						delta = 1.0
					}
				}
				pool[i].genes[j] = clampAngle(pool[i].genes[j]+int(math.Round(delta)), g.config.MinAngle, g.config.MaxAngle)
				pool[i].dirty = true
			}
		}
	}
	g.scale *= g.config.MutationScaleFactor
}

func clampAngle(v, lo, hi int) int {
	if v > hi {
		return hi
	}
	if v < lo {
		return lo
	}
	return v
}

// copyGenome creates a deep copy of a genome.
func copyGenome(c genome) genome {
	genes := make([]int, len(c.genes))
	copy(genes, c.genes)
	return genome{genes: genes, fitness: c.fitness, dirty: c.dirty}
}

// OptimizeRotation searches rotation angles for arr that minimise the mean
// contact distance of comp. The arrangement's rotations, residue table and
// score are replaced with those of the best genome found. Components without
// contacts are left at zero rotation with a zero score.
func OptimizeRotation(comp model.Component, arr *model.Arrangement, settings model.Settings, rng *rand.Rand, logger *zap.Logger) OptimizeStats {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(comp.Contacts) == 0 {
		logger.Warn("Component has no contacts, skipping rotation search",
			zap.Int("component", comp.Index+1))
		for i := range arr.Rotations {
			arr.Rotations[i] = 0
		}
		placeResidues(comp, arr, settings)
		arr.Score = 0
		return OptimizeStats{}
	}

	ga := newRotationOptimizer(NewGeneticConfig(settings), comp, arr.Positions, settings, rng, logger)
	genes, stats := ga.optimize()

	copy(arr.Rotations, genes)
	placeResidues(comp, arr, settings)
	arr.Score = stats.Score

	logger.Info("Rotation optimised",
		zap.Int("component", comp.Index+1),
		zap.String("arrangement", arr.ID),
		zap.Float64("score", stats.Score),
		zap.Int("evaluations", stats.Evaluations),
		zap.Int("generations", stats.Generations))
	return stats
}

// placeResidues fills the arrangement's residue table from its rotations.
func placeResidues(comp model.Component, arr *model.Arrangement, settings model.Settings) {
	if arr.Residues == nil {
		arr.Residues = make(map[int]model.Point2D)
	}
	for i, h := range comp.Helices {
		ResiduePositions(arr.Residues, arr.Positions[i], arr.Rotations[i], h, settings.HelixRadius, settings.ResidueStep)
	}
}
