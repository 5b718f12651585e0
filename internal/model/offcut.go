package model

import (
	"sort"

	"github.com/google/uuid"
)

// Offcut represents a usable rectangular remnant left on a plate after cutting.
type Offcut struct {
	ID         string `json:"id"`
	PlateIndex int    `json:"plate_index"` // Index of the source plate in the layout
	X          int    `json:"x"`           // Position on the plate from the left edge
	Y          int    `json:"y"`           // Position on the plate from the top edge
	Width      int    `json:"width"`
	Height     int    `json:"height"`
}

// Area returns the area of the offcut.
func (o Offcut) Area() int {
	return o.Width * o.Height
}

// MinOffcutDimension is the minimum width or height for a remnant to be
// considered a usable offcut. Remnants smaller than this are waste.
const MinOffcutDimension = 20

// DetectOffcuts lists the remnants of a shelf-packed plate: the strip to the
// right of every shelf and the strip below the last shelf. Strips narrower
// than minDim in either direction are ignored. Results are sorted by area,
// largest first.
func DetectOffcuts(pl Plate, plateIndex int, minDim int) []Offcut {
	var offcuts []Offcut
	add := func(x, y, w, h int) {
		if w < minDim || h < minDim || w <= 0 || h <= 0 {
			return
		}
		offcuts = append(offcuts, Offcut{
			ID:         uuid.New().String()[:8],
			PlateIndex: plateIndex,
			X:          x,
			Y:          y,
			Width:      w,
			Height:     h,
		})
	}

	for _, s := range pl.Shelves {
		add(s.UsedWidth, s.Y, pl.Width-s.UsedWidth, s.Height)
	}
	used := pl.UsedHeight()
	add(0, used, pl.Width, pl.Height-used)

	sort.SliceStable(offcuts, func(i, j int) bool {
		return offcuts[i].Area() > offcuts[j].Area()
	})
	return offcuts
}

// DetectAllOffcuts finds offcuts across all plates of a layout.
func DetectAllOffcuts(layout Layout, minDim int) []Offcut {
	var all []Offcut
	for i, pl := range layout.Plates {
		all = append(all, DetectOffcuts(pl, i, minDim)...)
	}
	return all
}

// TotalOffcutArea returns the total area of all offcuts.
func TotalOffcutArea(offcuts []Offcut) int {
	total := 0
	for _, o := range offcuts {
		total += o.Area()
	}
	return total
}
