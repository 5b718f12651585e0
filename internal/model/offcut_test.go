package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectOffcutsEmptyPlate(t *testing.T) {
	offcuts := DetectOffcuts(NewPlate(280, 280), 0, MinOffcutDimension)
	require.Len(t, offcuts, 1)
	assert.Equal(t, 280, offcuts[0].Width)
	assert.Equal(t, 280, offcuts[0].Height)
}

func TestDetectOffcutsShelfAndBottomStrips(t *testing.T) {
	pl := NewPlate(280, 280)
	pl.TryPlace(Piece{Height: 100, Width: 200})
	pl.TryPlace(Piece{Height: 50, Width: 280})

	offcuts := DetectOffcuts(pl, 3, MinOffcutDimension)
	require.Len(t, offcuts, 2)

	// Bottom strip 280x130 is larger than the shelf remnant 80x100.
	assert.Equal(t, Offcut{ID: offcuts[0].ID, PlateIndex: 3, X: 0, Y: 150, Width: 280, Height: 130}, offcuts[0])
	assert.Equal(t, Offcut{ID: offcuts[1].ID, PlateIndex: 3, X: 200, Y: 0, Width: 80, Height: 100}, offcuts[1])
}

func TestDetectOffcutsSmallRemnantIgnored(t *testing.T) {
	pl := NewPlate(280, 280)
	pl.TryPlace(Piece{Height: 270, Width: 270})

	assert.Empty(t, DetectOffcuts(pl, 0, MinOffcutDimension))
}

func TestDetectAllOffcuts(t *testing.T) {
	a := NewPlate(280, 280)
	a.TryPlace(Piece{Height: 280, Width: 280})
	b := NewPlate(280, 280)
	b.TryPlace(Piece{Height: 100, Width: 280})

	all := DetectAllOffcuts(Layout{Plates: []Plate{a, b}}, MinOffcutDimension)
	require.Len(t, all, 1)
	assert.Equal(t, 1, all[0].PlateIndex)
	assert.Equal(t, 280*180, TotalOffcutArea(all))
}
