package engine

import (
	"fmt"

	"github.com/piwi3910/PlateCut/internal/model"
)

func defaultTestSettings() model.Settings {
	s := model.DefaultSettings()
	s.TimeLimit = 0
	return s
}

// exactSettings seeds branch-and-bound from the input order so its optimum is
// directly comparable with the exhaustive search.
func exactSettings() model.Settings {
	s := defaultTestSettings()
	s.SeedWithHeuristic = false
	return s
}

func squares(n, size int) []model.Piece {
	pieces := make([]model.Piece, n)
	for i := range pieces {
		pieces[i] = model.NewPiece(fmt.Sprintf("S%d", i+1), size, size)
	}
	return pieces
}

func pieces(dims ...[2]int) []model.Piece {
	out := make([]model.Piece, len(dims))
	for i, d := range dims {
		out[i] = model.NewPiece(fmt.Sprintf("P%d", i+1), d[0], d[1])
	}
	return out
}

// mixedPieces is a small set that needs more than one plate.
func mixedPieces() []model.Piece {
	return pieces(
		[2]int{150, 200},
		[2]int{100, 250},
		[2]int{100, 30},
		[2]int{200, 200},
		[2]int{90, 80},
		[2]int{60, 140},
	)
}
