package engine

import (
	"context"
	"math"
	"sort"

	"github.com/piwi3910/PlateCut/internal/model"
)

// bbEngine holds the state of one branch-and-bound search over piece orderings.
type bbEngine struct {
	cm        costModel
	plateArea int
	dl        deadline

	pieces []model.Piece // working copies, never shared with the caller
	order  []int         // expansion order: area descending, stable

	// Current prefix
	used   []bool
	prefix []int
	buf    []model.Piece

	// Incumbent
	bestCost   float64
	bestLayout model.Layout

	nodes    int64
	pruned   int64
	timedOut bool
}

// SolveBranchAndBound finds the cheapest piece ordering by depth-first search
// over prefixes, pruning every prefix whose lower bound cannot beat the incumbent.
//
// The incumbent starts from the best-fit layout when SeedWithHeuristic is set,
// otherwise from the input order. A seeded result may be the best-fit layout
// itself, which no ordering reproduces and which can be cheaper than the best
// ordering SolveExhaustive finds. The time limit and ctx are checked at every
// node and before every child; on expiry the incumbent is returned with TimedOut set.
func SolveBranchAndBound(ctx context.Context, settings model.Settings, pieces []model.Piece) (model.Result, error) {
	res := model.Result{Algorithm: model.AlgorithmBranchAndBound}
	if len(pieces) == 0 {
		res.Layout = &model.Layout{}
		return res, nil
	}
	if err := checkPieces(settings, pieces); err != nil {
		return model.Result{}, err
	}

	e := &bbEngine{
		cm:        newCostModel(settings),
		plateArea: settings.PlateArea(),
		dl:        newDeadline(ctx, settings.TimeLimit),
		pieces:    model.CopyPieces(pieces),
		bestCost:  math.Inf(1),
	}
	if err := e.seed(settings); err != nil {
		return model.Result{}, err
	}
	e.buildOrder()

	if err := e.search(); err != nil {
		return model.Result{}, err
	}
	if e.timedOut {
		loggerFrom(ctx).Warn("search timed out",
			"algorithm", res.Algorithm, "nodes", e.nodes, "pruned", e.pruned)
	}

	layout := e.bestLayout
	res.Cost = e.bestCost
	res.Units = layout.PlateCount()
	res.Layout = &layout
	res.Effort = e.nodes
	res.Pruned = e.pruned
	res.TimedOut = e.timedOut
	return res, nil
}

// seed sets the initial incumbent.
func (e *bbEngine) seed(settings model.Settings) error {
	if settings.SeedWithHeuristic {
		layout, err := BestFit(settings, e.pieces)
		if err != nil {
			return err
		}
		e.record(e.cm.evaluator.Cost(layout), layout)
		return nil
	}
	cost, layout, err := e.cm.evaluate(e.pieces)
	if err != nil {
		return err
	}
	e.record(cost, layout)
	return nil
}

func (e *bbEngine) record(cost float64, layout model.Layout) {
	e.bestCost = cost
	e.bestLayout = layout.Clone()
}

func (e *bbEngine) buildOrder() {
	n := len(e.pieces)
	e.order = identity(n)
	sort.SliceStable(e.order, func(i, j int) bool {
		return e.pieces[e.order[i]].Area() > e.pieces[e.order[j]].Area()
	})
	e.used = make([]bool, n)
	e.prefix = make([]int, 0, n)
	e.buf = make([]model.Piece, 0, n)
}

// search expands the current prefix. It returns only placement errors;
// a timeout unwinds with e.timedOut set.
func (e *bbEngine) search() error {
	if e.dl.expired() {
		e.timedOut = true
		return nil
	}
	e.nodes++

	layout, err := e.cm.packer.Simulate(orderOf(e.pieces, e.prefix, e.buf))
	if err != nil {
		return err
	}

	if len(e.prefix) == len(e.pieces) {
		if cost := e.cm.evaluator.Cost(layout); cost < e.bestCost {
			e.record(cost, layout)
		}
		return nil
	}

	if e.committedCost(layout)+e.remainderBound(layout) >= e.bestCost-costEpsilon {
		e.pruned++
		return nil
	}

	type dims struct{ h, w int }
	seen := make(map[dims]bool)
	for _, i := range e.order {
		if e.used[i] {
			continue
		}
		d := dims{e.pieces[i].Height, e.pieces[i].Width}
		if seen[d] {
			continue
		}
		seen[d] = true

		if e.dl.expired() {
			e.timedOut = true
			return nil
		}

		e.used[i] = true
		e.prefix = append(e.prefix, i)
		err := e.search()
		e.prefix = e.prefix[:len(e.prefix)-1]
		e.used[i] = false
		if err != nil {
			return err
		}
		if e.timedOut {
			return nil
		}
	}
	return nil
}

// committedCost is the part of the prefix cost no completion can avoid:
// closed plates at their exact cost, and the open last plate at its
// material cost plus its perimeter energy.
func (e *bbEngine) committedCost(layout model.Layout) float64 {
	n := layout.PlateCount()
	if n == 0 {
		return 0
	}
	total := float64(n) * e.cm.evaluator.PlateCost
	for i := 0; i < n-1; i++ {
		total += e.cm.evaluator.PlateEnergy(layout.Plates[i])
	}
	return total + e.cm.evaluator.perimeterEnergy(layout.Plates[n-1])
}

// remainderBound is an admissible estimate for the pieces not yet placed:
// whatever area the open plate cannot absorb needs new plates, each costing
// at least the plate price and the perimeter of the smallest remaining piece.
func (e *bbEngine) remainderBound(layout model.Layout) float64 {
	area := 0
	minPerimeter := math.MaxInt
	for i, p := range e.pieces {
		if e.used[i] {
			continue
		}
		area += p.Area()
		if per := 2 * (p.Height + p.Width); per < minPerimeter {
			minPerimeter = per
		}
	}
	if area == 0 || e.plateArea <= 0 {
		return 0
	}

	free := 0
	if n := layout.PlateCount(); n > 0 {
		last := layout.Plates[n-1]
		free = last.TotalArea() - last.UsedArea()
	}
	overflow := area - free
	if overflow <= 0 {
		return 0
	}

	plates := (overflow + e.plateArea - 1) / e.plateArea
	perPlate := e.cm.evaluator.PlateCost + float64(minPerimeter)*e.cm.evaluator.EnergyFactor
	return float64(plates) * perPlate
}
