package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Piece represents a rectangular piece to be cut from a plate.
// X and Y are only meaningful inside a Layout produced by a simulation.
type Piece struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	Height    int     `json:"height"`
	Width     int     `json:"width"`
	Weight    float64 `json:"weight,omitempty"`
	HasWeight bool    `json:"has_weight,omitempty"`
	X         int     `json:"x"` // Position from left edge of the plate
	Y         int     `json:"y"` // Position from top edge of the plate
}

func NewPiece(label string, h, w int) Piece {
	return Piece{
		ID:     uuid.New().String()[:8],
		Label:  label,
		Height: h,
		Width:  w,
	}
}

// NewWeightedPiece creates a piece carrying an explicit weight.
func NewWeightedPiece(label string, h, w int, weight float64) Piece {
	p := NewPiece(label, h, w)
	p.Weight = weight
	p.HasWeight = true
	return p
}

// Area returns height x width.
func (p Piece) Area() int {
	return p.Height * p.Width
}

// WeightValue returns the explicit weight, or area/1000 when none was given.
func (p Piece) WeightValue() float64 {
	if p.HasWeight {
		return p.Weight
	}
	return float64(p.Area()) / 1000.0
}

// Right returns the x coordinate of the trailing (right) edge.
func (p Piece) Right() int { return p.X + p.Width }

// Bottom returns the y coordinate of the trailing (lower) edge.
func (p Piece) Bottom() int { return p.Y + p.Height }

func (p Piece) String() string {
	return fmt.Sprintf("%dx%d@(%d,%d)", p.Height, p.Width, p.X, p.Y)
}

// Reset returns a copy of the piece with its placement cleared.
func (p Piece) Reset() Piece {
	p.X, p.Y = 0, 0
	return p
}

// Shelf is a horizontal band of a plate. Its height is fixed by the first
// piece inserted; pieces are placed left to right.
type Shelf struct {
	Y         int     `json:"y"`
	Height    int     `json:"height"`
	UsedWidth int     `json:"used_width"`
	Pieces    []Piece `json:"pieces"`
}

// Fits reports whether the piece can be appended to the shelf.
func (s Shelf) Fits(p Piece, plateWidth int) bool {
	h := s.Height
	if h == 0 {
		h = p.Height
	}
	if p.Height > h {
		return false
	}
	return s.UsedWidth+p.Width <= plateWidth
}

// Insert appends the piece at the end of the shelf. Fits must have been checked.
func (s *Shelf) Insert(p Piece) {
	if s.Height == 0 {
		s.Height = p.Height
	}
	p.X = s.UsedWidth
	p.Y = s.Y
	s.UsedWidth += p.Width
	s.Pieces = append(s.Pieces, p)
}

// Plate is a fixed-size sheet holding shelves stacked top to bottom.
type Plate struct {
	Height  int     `json:"height"` // Usable height
	Width   int     `json:"width"`  // Usable width
	Shelves []Shelf `json:"shelves"`
}

func NewPlate(h, w int) Plate {
	return Plate{Height: h, Width: w}
}

// UsedHeight returns the sum of shelf heights.
func (pl Plate) UsedHeight() int {
	total := 0
	for _, s := range pl.Shelves {
		total += s.Height
	}
	return total
}

// RemainingHeight returns the vertical space left for new shelves.
func (pl Plate) RemainingHeight() int {
	return pl.Height - pl.UsedHeight()
}

// CanOpenShelf reports whether a new shelf holding p fits below the existing ones.
func (pl Plate) CanOpenShelf(p Piece) bool {
	return p.Height <= pl.RemainingHeight() && p.Width <= pl.Width
}

// OpenShelf stacks a new shelf under the existing ones and inserts p into it.
// Returns false when the piece does not fit vertically or horizontally.
func (pl *Plate) OpenShelf(p Piece) bool {
	if !pl.CanOpenShelf(p) {
		return false
	}
	s := Shelf{Y: pl.UsedHeight()}
	s.Insert(p)
	pl.Shelves = append(pl.Shelves, s)
	return true
}

// TryPlace inserts p into the first existing shelf that fits (creation order),
// otherwise opens a new shelf. Returns false if neither is possible.
func (pl *Plate) TryPlace(p Piece) bool {
	for i := range pl.Shelves {
		if pl.Shelves[i].Fits(p, pl.Width) {
			pl.Shelves[i].Insert(p)
			return true
		}
	}
	return pl.OpenShelf(p)
}

// Pieces returns the placed pieces in shelf order, left to right within a shelf.
func (pl Plate) Pieces() []Piece {
	var out []Piece
	for _, s := range pl.Shelves {
		out = append(out, s.Pieces...)
	}
	return out
}

// PieceCount returns the number of placed pieces.
func (pl Plate) PieceCount() int {
	n := 0
	for _, s := range pl.Shelves {
		n += len(s.Pieces)
	}
	return n
}

// UsedArea returns the total area covered by placed pieces.
func (pl Plate) UsedArea() int {
	total := 0
	for _, s := range pl.Shelves {
		for _, p := range s.Pieces {
			total += p.Area()
		}
	}
	return total
}

// TotalArea returns the usable plate area.
func (pl Plate) TotalArea() int {
	return pl.Height * pl.Width
}

// Efficiency returns the usage percentage.
func (pl Plate) Efficiency() float64 {
	ta := pl.TotalArea()
	if ta == 0 {
		return 0
	}
	return float64(pl.UsedArea()) / float64(ta) * 100.0
}

// Clone returns a deep copy of the plate.
func (pl Plate) Clone() Plate {
	cp := Plate{Height: pl.Height, Width: pl.Width, Shelves: make([]Shelf, len(pl.Shelves))}
	for i, s := range pl.Shelves {
		cs := s
		cs.Pieces = append([]Piece(nil), s.Pieces...)
		cp.Shelves[i] = cs
	}
	return cp
}

// Layout is the ordered list of plates produced by one simulation run.
type Layout struct {
	Plates []Plate `json:"plates"`
}

// PlateCount returns the number of plates used.
func (l Layout) PlateCount() int {
	return len(l.Plates)
}

// PieceCount returns the number of pieces placed across all plates.
func (l Layout) PieceCount() int {
	n := 0
	for _, pl := range l.Plates {
		n += pl.PieceCount()
	}
	return n
}

// Pieces returns every placed piece, plate by plate.
func (l Layout) Pieces() []Piece {
	var out []Piece
	for _, pl := range l.Plates {
		out = append(out, pl.Pieces()...)
	}
	return out
}

// TotalEfficiency returns overall material usage percentage.
func (l Layout) TotalEfficiency() float64 {
	var used, total int
	for _, pl := range l.Plates {
		used += pl.UsedArea()
		total += pl.TotalArea()
	}
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total) * 100.0
}

// Clone returns a deep copy of the layout.
func (l Layout) Clone() Layout {
	cp := Layout{Plates: make([]Plate, len(l.Plates))}
	for i, pl := range l.Plates {
		cp.Plates[i] = pl.Clone()
	}
	return cp
}

// CopyPieces returns independent copies of the pieces with placement reset.
func CopyPieces(pieces []Piece) []Piece {
	out := make([]Piece, len(pieces))
	for i, p := range pieces {
		out[i] = p.Reset()
	}
	return out
}

// TotalArea sums piece areas.
func TotalArea(pieces []Piece) int {
	total := 0
	for _, p := range pieces {
		total += p.Area()
	}
	return total
}

// Weights extracts WeightValue for each piece, preserving order.
func Weights(pieces []Piece) []float64 {
	out := make([]float64, len(pieces))
	for i, p := range pieces {
		out[i] = p.WeightValue()
	}
	return out
}
