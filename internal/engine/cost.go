package engine

import (
	"sort"

	"github.com/piwi3910/PlateCut/internal/model"
)

// Evaluator prices a layout: a fixed material cost per plate plus the
// cutting energy of every plate converted to currency.
type Evaluator struct {
	PlateCost    float64
	EnergyFactor float64
}

func NewEvaluator(settings model.Settings) Evaluator {
	return Evaluator{PlateCost: settings.PlateCost, EnergyFactor: settings.EnergyFactor}
}

// Cost returns plates x PlateCost + the energy of every plate.
func (e Evaluator) Cost(layout model.Layout) float64 {
	total := float64(layout.PlateCount()) * e.PlateCost
	for _, pl := range layout.Plates {
		total += e.PlateEnergy(pl)
	}
	return total
}

// PlateEnergy returns the energy cost of cutting one plate.
//
// The occupied bounding box (maxX, maxY) is cut along its perimeter. Walking
// the pieces sorted by x, every gap between a piece and the trailing edge of
// its predecessor adds a vertical cut of length maxY; the same walk over y
// adds horizontal cuts of length maxX. An empty plate costs nothing.
func (e Evaluator) PlateEnergy(pl model.Plate) float64 {
	pieces := pl.Pieces()
	if len(pieces) == 0 {
		return 0
	}

	maxX, maxY := boundingBox(pieces)

	raw := float64(2*maxX + 2*maxY)

	byX := make([]model.Piece, len(pieces))
	copy(byX, pieces)
	sort.SliceStable(byX, func(i, j int) bool { return byX[i].X < byX[j].X })
	for i := 1; i < len(byX); i++ {
		if byX[i].X > byX[i-1].Right() {
			raw += float64(maxY)
		}
	}

	byY := make([]model.Piece, len(pieces))
	copy(byY, pieces)
	sort.SliceStable(byY, func(i, j int) bool { return byY[i].Y < byY[j].Y })
	for i := 1; i < len(byY); i++ {
		if byY[i].Y > byY[i-1].Bottom() {
			raw += float64(maxX)
		}
	}

	return raw * e.EnergyFactor
}

// perimeterEnergy returns only the perimeter term of PlateEnergy. Appending
// pieces to a plate can close gaps but never shrinks its bounding box, so
// this is a floor on the plate's final energy.
func (e Evaluator) perimeterEnergy(pl model.Plate) float64 {
	pieces := pl.Pieces()
	if len(pieces) == 0 {
		return 0
	}
	maxX, maxY := boundingBox(pieces)
	return float64(2*maxX+2*maxY) * e.EnergyFactor
}

func boundingBox(pieces []model.Piece) (maxX, maxY int) {
	for _, p := range pieces {
		if r := p.Right(); r > maxX {
			maxX = r
		}
		if b := p.Bottom(); b > maxY {
			maxY = b
		}
	}
	return maxX, maxY
}

// costModel couples the packer and evaluator used by the order searches.
type costModel struct {
	packer    *Packer
	evaluator Evaluator
}

func newCostModel(settings model.Settings) costModel {
	return costModel{packer: NewPacker(settings), evaluator: NewEvaluator(settings)}
}

// evaluate simulates the order and prices the resulting layout.
func (cm costModel) evaluate(order []model.Piece) (float64, model.Layout, error) {
	layout, err := cm.packer.Simulate(order)
	if err != nil {
		return 0, model.Layout{}, err
	}
	return cm.evaluator.Cost(layout), layout, nil
}
