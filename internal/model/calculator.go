package model

import "math"

// PlateEstimate holds an area-based estimate of the plates needed for a piece list.
type PlateEstimate struct {
	TotalPieceArea    int     `json:"total_piece_area"`
	PlateArea         int     `json:"plate_area"`
	PlatesNeededExact float64 `json:"plates_needed_exact"` // Exact fractional number of plates
	PlatesNeededMin   int     `json:"plates_needed_min"`   // Ceiling of exact; never more than any real layout
	MinMaterialCost   float64 `json:"min_material_cost"`   // PlatesNeededMin x plate cost
	OversizedPieces   int     `json:"oversized_pieces"`    // Pieces that fit on no plate
}

// EstimatePlates computes a lower bound on the plates needed for the pieces,
// assuming zero waste.
func EstimatePlates(pieces []Piece, s Settings) PlateEstimate {
	est := PlateEstimate{
		TotalPieceArea: TotalArea(pieces),
		PlateArea:      s.PlateArea(),
	}
	for _, p := range pieces {
		if p.Height > s.PlateHeight || p.Width > s.PlateWidth {
			est.OversizedPieces++
		}
	}
	if est.PlateArea <= 0 {
		return est
	}
	est.PlatesNeededExact = float64(est.TotalPieceArea) / float64(est.PlateArea)
	est.PlatesNeededMin = int(math.Ceil(est.PlatesNeededExact))
	est.MinMaterialCost = float64(est.PlatesNeededMin) * s.PlateCost
	return est
}
