package engine

import (
	"github.com/piwi3910/PlateCut/internal/model"
)

// Packer places an ordered sequence of pieces onto plates using shelf packing.
type Packer struct {
	PlateHeight int
	PlateWidth  int
}

func NewPacker(settings model.Settings) *Packer {
	return &Packer{PlateHeight: settings.PlateHeight, PlateWidth: settings.PlateWidth}
}

// Simulate packs the pieces in the given order. For each piece it tries the
// shelves of the current plate in creation order, then a new shelf on the
// current plate, then a fresh plate. The input slice is not modified.
func (pk *Packer) Simulate(pieces []model.Piece) (model.Layout, error) {
	layout := model.Layout{}
	if len(pieces) == 0 {
		return layout, nil
	}

	layout.Plates = append(layout.Plates, model.NewPlate(pk.PlateHeight, pk.PlateWidth))
	for _, p := range pieces {
		p = p.Reset()
		if err := pk.check(p); err != nil {
			return model.Layout{}, err
		}

		current := &layout.Plates[len(layout.Plates)-1]
		if current.TryPlace(p) {
			continue
		}

		layout.Plates = append(layout.Plates, model.NewPlate(pk.PlateHeight, pk.PlateWidth))
		current = &layout.Plates[len(layout.Plates)-1]
		if !current.TryPlace(p) {
			// An empty plate accepts any piece that passed check.
			return model.Layout{}, pk.placementError(p)
		}
	}
	return layout, nil
}

// check reports a PlacementError when the piece cannot fit on an empty plate.
func (pk *Packer) check(p model.Piece) error {
	if p.Height > pk.PlateHeight || p.Width > pk.PlateWidth {
		return pk.placementError(p)
	}
	return nil
}

func (pk *Packer) placementError(p model.Piece) *model.PlacementError {
	return &model.PlacementError{Piece: p, PlateHeight: pk.PlateHeight, PlateWidth: pk.PlateWidth}
}

// checkPieces returns the PlacementError of the first oversized piece, if any.
func checkPieces(settings model.Settings, pieces []model.Piece) error {
	pk := NewPacker(settings)
	for _, p := range pieces {
		if err := pk.check(p); err != nil {
			return err
		}
	}
	return nil
}
