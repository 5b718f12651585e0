package engine

import (
	"context"
	"sort"

	"github.com/piwi3910/PlateCut/internal/model"
)

// bestFitOrder returns copies of the pieces sorted by height then width, both descending.
func bestFitOrder(pieces []model.Piece) []model.Piece {
	sorted := model.CopyPieces(pieces)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Height != sorted[j].Height {
			return sorted[i].Height > sorted[j].Height
		}
		return sorted[i].Width > sorted[j].Width
	})
	return sorted
}

// BestFit packs the pieces with the best-fit decreasing height shelf heuristic.
//
// Each piece goes to the shelf, across all plates, that leaves the least
// horizontal space after insertion (earliest shelf on ties). If no shelf
// accepts it, a new shelf is opened on the plate that leaves the least
// vertical space, and failing that on a new plate.
func BestFit(settings model.Settings, pieces []model.Piece) (model.Layout, error) {
	layout := model.Layout{}
	if len(pieces) == 0 {
		return layout, nil
	}

	packer := NewPacker(settings)
	for _, p := range bestFitOrder(pieces) {
		if err := packer.check(p); err != nil {
			return model.Layout{}, err
		}

		if plateIdx, shelfIdx, ok := bestShelf(layout, p); ok {
			layout.Plates[plateIdx].Shelves[shelfIdx].Insert(p)
			continue
		}

		if plateIdx, ok := bestPlateForShelf(layout, p); ok {
			layout.Plates[plateIdx].OpenShelf(p)
			continue
		}

		plate := model.NewPlate(settings.PlateHeight, settings.PlateWidth)
		plate.OpenShelf(p)
		layout.Plates = append(layout.Plates, plate)
	}
	return layout, nil
}

func bestShelf(layout model.Layout, p model.Piece) (int, int, bool) {
	bestPlate, bestShelfIdx := -1, -1
	bestLeft := 0
	for i, pl := range layout.Plates {
		for j, s := range pl.Shelves {
			if !s.Fits(p, pl.Width) {
				continue
			}
			left := pl.Width - (s.UsedWidth + p.Width)
			if bestPlate < 0 || left < bestLeft {
				bestPlate, bestShelfIdx, bestLeft = i, j, left
			}
		}
	}
	return bestPlate, bestShelfIdx, bestPlate >= 0
}

func bestPlateForShelf(layout model.Layout, p model.Piece) (int, bool) {
	best := -1
	bestLeft := 0
	for i, pl := range layout.Plates {
		if !pl.CanOpenShelf(p) {
			continue
		}
		left := pl.RemainingHeight() - p.Height
		if best < 0 || left < bestLeft {
			best, bestLeft = i, left
		}
	}
	return best, best >= 0
}

// SolveBestFit runs BestFit and prices the layout.
func SolveBestFit(_ context.Context, settings model.Settings, pieces []model.Piece) (model.Result, error) {
	layout, err := BestFit(settings, pieces)
	if err != nil {
		return model.Result{}, err
	}
	return model.Result{
		Algorithm: model.AlgorithmBestFit,
		Cost:      NewEvaluator(settings).Cost(layout),
		Units:     layout.PlateCount(),
		Layout:    &layout,
		Effort:    int64(len(pieces)),
	}, nil
}
