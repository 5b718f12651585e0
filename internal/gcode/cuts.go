package gcode

import "github.com/piwi3910/PlateCut/internal/model"

// Axis is the direction of a straight cut.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Cut is a straight cut between two points in plate coordinates.
type Cut struct {
	Axis   Axis
	X0, Y0 int
	X1, Y1 int
}

// Length returns the cut length in plate units.
func (c Cut) Length() int {
	return (c.X1 - c.X0) + (c.Y1 - c.Y0)
}

// CutsForPlate derives the cut sequence that separates every piece on a
// shelf-packed plate:
//
//  1. a full-width horizontal cut under each shelf that does not end at the
//     plate edge,
//  2. a vertical cut at the trailing edge of every piece, spanning its shelf,
//  3. a horizontal trim under each piece shorter than its shelf.
//
// Cuts lying on the plate border are omitted.
func CutsForPlate(pl model.Plate) []Cut {
	var cuts []Cut

	for _, s := range pl.Shelves {
		bottom := s.Y + s.Height
		if bottom < pl.Height {
			cuts = append(cuts, Cut{Axis: Horizontal, X0: 0, Y0: bottom, X1: pl.Width, Y1: bottom})
		}
	}

	for _, s := range pl.Shelves {
		for _, p := range s.Pieces {
			if right := p.Right(); right < pl.Width {
				cuts = append(cuts, Cut{Axis: Vertical, X0: right, Y0: s.Y, X1: right, Y1: s.Y + s.Height})
			}
		}
		for _, p := range s.Pieces {
			if p.Height < s.Height {
				cuts = append(cuts, Cut{Axis: Horizontal, X0: p.X, Y0: p.Bottom(), X1: p.Right(), Y1: p.Bottom()})
			}
		}
	}

	return cuts
}

// TotalCutLength sums the length of the cuts.
func TotalCutLength(cuts []Cut) int {
	total := 0
	for _, c := range cuts {
		total += c.Length()
	}
	return total
}
