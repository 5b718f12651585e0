package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPiece(t *testing.T) {
	p := NewPiece("A", 100, 50)
	assert.Len(t, p.ID, 8)
	assert.Equal(t, "A", p.Label)
	assert.Equal(t, 5000, p.Area())
	assert.False(t, p.HasWeight)
	assert.Equal(t, 5.0, p.WeightValue())

	other := NewPiece("A", 100, 50)
	assert.NotEqual(t, p.ID, other.ID)
}

func TestNewWeightedPiece(t *testing.T) {
	p := NewWeightedPiece("W", 1, 30, 30)
	assert.True(t, p.HasWeight)
	assert.Equal(t, 30.0, p.WeightValue())
}

func TestPieceEdgesAndReset(t *testing.T) {
	p := Piece{Height: 20, Width: 30, X: 5, Y: 7}
	assert.Equal(t, 35, p.Right())
	assert.Equal(t, 27, p.Bottom())
	assert.Equal(t, "20x30@(5,7)", p.String())

	r := p.Reset()
	assert.Equal(t, 0, r.X)
	assert.Equal(t, 0, r.Y)
	assert.Equal(t, 5, p.X, "Reset must not modify the receiver")
}

func TestShelf_FitsAndInsert(t *testing.T) {
	s := Shelf{Y: 40}
	a := Piece{Height: 50, Width: 100}
	require.True(t, s.Fits(a, 280))
	s.Insert(a)

	assert.Equal(t, 50, s.Height)
	assert.Equal(t, 100, s.UsedWidth)
	assert.Equal(t, 0, s.Pieces[0].X)
	assert.Equal(t, 40, s.Pieces[0].Y)

	assert.False(t, s.Fits(Piece{Height: 51, Width: 10}, 280), "taller than shelf")
	assert.False(t, s.Fits(Piece{Height: 10, Width: 181}, 280), "wider than remaining")
	assert.True(t, s.Fits(Piece{Height: 50, Width: 180}, 280))

	s.Insert(Piece{Height: 30, Width: 180})
	assert.Equal(t, 100, s.Pieces[1].X)
	assert.Equal(t, 280, s.UsedWidth)
	assert.Equal(t, 50, s.Height, "shelf height is fixed by the first piece")
}

func TestPlate_TryPlace(t *testing.T) {
	pl := NewPlate(280, 280)
	for i := 0; i < 4; i++ {
		require.True(t, pl.TryPlace(Piece{Height: 100, Width: 100}))
	}
	assert.Len(t, pl.Shelves, 2)
	assert.Equal(t, 200, pl.UsedHeight())
	assert.Equal(t, 80, pl.RemainingHeight())

	assert.False(t, pl.TryPlace(Piece{Height: 100, Width: 100}), "no room for a third shelf")
	assert.True(t, pl.TryPlace(Piece{Height: 80, Width: 280}))
	assert.Equal(t, 280, pl.UsedHeight())
	assert.Equal(t, 5, pl.PieceCount())
}

func TestPlate_OpenShelfRejectsWidePiece(t *testing.T) {
	pl := NewPlate(280, 280)
	assert.False(t, pl.OpenShelf(Piece{Height: 10, Width: 281}))
	assert.Empty(t, pl.Shelves)
}

func TestPlate_AreasAndEfficiency(t *testing.T) {
	pl := NewPlate(100, 100)
	require.True(t, pl.TryPlace(Piece{Height: 50, Width: 100}))

	assert.Equal(t, 10000, pl.TotalArea())
	assert.Equal(t, 5000, pl.UsedArea())
	assert.InDelta(t, 50.0, pl.Efficiency(), 1e-9)
	assert.Equal(t, 0.0, Plate{}.Efficiency())
}

func TestPlate_CloneIsDeep(t *testing.T) {
	pl := NewPlate(280, 280)
	pl.TryPlace(Piece{Label: "A", Height: 10, Width: 10})

	cp := pl.Clone()
	cp.Shelves[0].Pieces[0].Label = "B"
	assert.Equal(t, "A", pl.Shelves[0].Pieces[0].Label)
}

func TestLayout_Aggregates(t *testing.T) {
	a := NewPlate(100, 100)
	a.TryPlace(Piece{Label: "1", Height: 50, Width: 50})
	a.TryPlace(Piece{Label: "2", Height: 50, Width: 50})
	b := NewPlate(100, 100)
	b.TryPlace(Piece{Label: "3", Height: 100, Width: 100})

	l := Layout{Plates: []Plate{a, b}}
	assert.Equal(t, 2, l.PlateCount())
	assert.Equal(t, 3, l.PieceCount())

	labels := []string{}
	for _, p := range l.Pieces() {
		labels = append(labels, p.Label)
	}
	assert.Equal(t, []string{"1", "2", "3"}, labels)
	assert.InDelta(t, 75.0, l.TotalEfficiency(), 1e-9)
	assert.Equal(t, 0.0, Layout{}.TotalEfficiency())
}

func TestCopyPiecesResetsPlacement(t *testing.T) {
	in := []Piece{{Height: 1, Width: 1, X: 3, Y: 4}}
	out := CopyPieces(in)
	out[0].Height = 9

	assert.Equal(t, 0, out[0].X)
	assert.Equal(t, 1, in[0].Height)
	assert.Equal(t, 3, in[0].X)
}

func TestWeightsAndTotalArea(t *testing.T) {
	in := []Piece{
		NewPiece("", 10, 100),
		NewWeightedPiece("", 1, 1, 7.5),
	}
	assert.Equal(t, []float64{1.0, 7.5}, Weights(in))
	assert.Equal(t, 1001, TotalArea(in))
}
