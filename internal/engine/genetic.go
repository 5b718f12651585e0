package engine

import (
	"context"
	"math/rand"
	"sort"

	"github.com/piwi3910/PlateCut/internal/model"
)

// GeneticConfig holds parameters for the genetic order search.
type GeneticConfig struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	TournamentSize int
	EliteCount     int
}

// DefaultGeneticConfig returns sensible default parameters.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 50,
		Generations:    100,
		MutationRate:   0.15,
		TournamentSize: 3,
		EliteCount:     2,
	}
}

// geneticConfigFor scales the default configuration with the problem size.
func geneticConfigFor(n int) GeneticConfig {
	config := DefaultGeneticConfig()
	if n > 20 {
		config.Generations = 150
	}
	if n > 50 {
		config.Generations = 200
		config.PopulationSize = 80
	}
	return config
}

// chromosome is a candidate solution: a permutation of piece indices.
type chromosome struct {
	genes   []int
	cost    float64
	fitness float64 // -cost, higher is better
}

// geneticOptimizer evolves piece orderings and scores them with the shelf packer.
type geneticOptimizer struct {
	cm     costModel
	config GeneticConfig
	pieces []model.Piece
	rng    *rand.Rand
	dl     deadline
	buf    []model.Piece

	evaluations int64
	timedOut    bool
}

func newGeneticOptimizer(cm costModel, config GeneticConfig, pieces []model.Piece, seed int64, dl deadline) *geneticOptimizer {
	return &geneticOptimizer{
		cm:     cm,
		config: config,
		pieces: pieces,
		rng:    rand.New(rand.NewSource(seed)),
		dl:     dl,
		buf:    make([]model.Piece, 0, len(pieces)),
	}
}

// optimize runs the genetic algorithm and returns the best chromosome found.
func (g *geneticOptimizer) optimize() (chromosome, error) {
	population := g.initPopulation()

	for i := range population {
		if err := g.evaluate(&population[i]); err != nil {
			return chromosome{}, err
		}
	}
	sortByFitness(population)

	for gen := 0; gen < g.config.Generations; gen++ {
		if g.dl.expired() {
			g.timedOut = true
			break
		}

		newPop := make([]chromosome, 0, g.config.PopulationSize)

		// Elitism: carry over the best individuals unchanged
		eliteCount := g.config.EliteCount
		if eliteCount > len(population) {
			eliteCount = len(population)
		}
		for i := 0; i < eliteCount; i++ {
			newPop = append(newPop, g.copyChromosome(population[i]))
		}

		for len(newPop) < g.config.PopulationSize {
			parent1 := g.tournamentSelect(population)
			parent2 := g.tournamentSelect(population)

			child := g.orderCrossover(parent1, parent2)
			g.mutate(&child)

			if err := g.evaluate(&child); err != nil {
				return chromosome{}, err
			}
			newPop = append(newPop, child)
		}

		population = newPop
		sortByFitness(population)
	}

	return population[0], nil
}

func sortByFitness(population []chromosome) {
	sort.SliceStable(population, func(i, j int) bool {
		return population[i].fitness > population[j].fitness
	})
}

// initPopulation creates a random population with the best-fit order in slot 0.
func (g *geneticOptimizer) initPopulation() []chromosome {
	n := len(g.pieces)
	size := g.config.PopulationSize
	if size < 1 {
		size = 1
	}
	population := make([]chromosome, size)
	for i := range population {
		population[i] = chromosome{genes: g.rng.Perm(n)}
	}
	population[0] = g.createBestFitChromosome()
	return population
}

// createBestFitChromosome orders the pieces by height then width, descending.
func (g *geneticOptimizer) createBestFitChromosome() chromosome {
	indices := identity(len(g.pieces))
	sort.SliceStable(indices, func(i, j int) bool {
		a, b := g.pieces[indices[i]], g.pieces[indices[j]]
		if a.Height != b.Height {
			return a.Height > b.Height
		}
		return a.Width > b.Width
	})
	return chromosome{genes: indices}
}

// evaluate decodes the chromosome through the shelf packer and prices it.
func (g *geneticOptimizer) evaluate(c *chromosome) error {
	g.evaluations++
	cost, _, err := g.cm.evaluate(orderOf(g.pieces, c.genes, g.buf))
	if err != nil {
		return err
	}
	c.cost = cost
	c.fitness = -cost
	return nil
}

// tournamentSelect picks the best individual from a random tournament.
func (g *geneticOptimizer) tournamentSelect(population []chromosome) chromosome {
	best := population[g.rng.Intn(len(population))]
	for i := 1; i < g.config.TournamentSize; i++ {
		candidate := population[g.rng.Intn(len(population))]
		if candidate.fitness > best.fitness {
			best = candidate
		}
	}
	return g.copyChromosome(best)
}

// orderCrossover implements Order Crossover (OX1) for permutation chromosomes.
// It preserves the relative order of genes from both parents.
func (g *geneticOptimizer) orderCrossover(parent1, parent2 chromosome) chromosome {
	n := len(parent1.genes)
	if n <= 2 {
		return g.copyChromosome(parent1)
	}

	point1 := g.rng.Intn(n)
	point2 := g.rng.Intn(n)
	if point1 > point2 {
		point1, point2 = point2, point1
	}

	child := chromosome{genes: make([]int, n)}

	inSegment := make([]bool, n)
	for i := point1; i <= point2; i++ {
		child.genes[i] = parent1.genes[i]
		inSegment[parent1.genes[i]] = true
	}

	childIdx := (point2 + 1) % n
	for _, pg := range parent2.genes {
		if !inSegment[pg] {
			child.genes[childIdx] = pg
			childIdx = (childIdx + 1) % n
		}
	}

	return child
}

// mutate applies swap and inversion mutations.
func (g *geneticOptimizer) mutate(c *chromosome) {
	n := len(c.genes)
	if n < 2 {
		return
	}

	if g.rng.Float64() < g.config.MutationRate {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		c.genes[i], c.genes[j] = c.genes[j], c.genes[i]
	}

	// Inversion is less frequent
	if g.rng.Float64() < g.config.MutationRate*0.5 {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		if i > j {
			i, j = j, i
		}
		for i < j {
			c.genes[i], c.genes[j] = c.genes[j], c.genes[i]
			i++
			j--
		}
	}
}

func (g *geneticOptimizer) copyChromosome(c chromosome) chromosome {
	genes := make([]int, len(c.genes))
	copy(genes, c.genes)
	return chromosome{genes: genes, cost: c.cost, fitness: c.fitness}
}

// SolveGenetic searches piece orderings with a genetic algorithm seeded with
// the best-fit order. Runs are reproducible for a given Settings.GeneticSeed.
// Effort counts the orderings evaluated.
func SolveGenetic(ctx context.Context, settings model.Settings, pieces []model.Piece) (model.Result, error) {
	res := model.Result{Algorithm: model.AlgorithmGenetic}
	if len(pieces) == 0 {
		res.Layout = &model.Layout{}
		return res, nil
	}
	if err := checkPieces(settings, pieces); err != nil {
		return model.Result{}, err
	}

	work := model.CopyPieces(pieces)
	cm := newCostModel(settings)
	ga := newGeneticOptimizer(cm, geneticConfigFor(len(work)), work, settings.GeneticSeed,
		newDeadline(ctx, settings.TimeLimit))

	best, err := ga.optimize()
	if err != nil {
		return model.Result{}, err
	}
	if ga.timedOut {
		loggerFrom(ctx).Warn("search timed out",
			"algorithm", res.Algorithm, "evaluations", ga.evaluations)
	}

	cost, layout, err := cm.evaluate(orderOf(work, best.genes, nil))
	if err != nil {
		return model.Result{}, err
	}
	res.Cost = cost
	res.Units = layout.PlateCount()
	res.Layout = &layout
	res.Effort = ga.evaluations
	res.TimedOut = ga.timedOut
	return res, nil
}
