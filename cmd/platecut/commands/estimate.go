package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/piwi3910/PlateCut/internal/model"
)

func (a *app) estimateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "estimate FILE",
		Short: "Lower bound on the plates a piece list needs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := a.settings()
			if err != nil {
				return err
			}
			pieces, err := a.loadPieces(args[0])
			if err != nil {
				return err
			}

			est := model.EstimatePlates(pieces, settings)
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, titleStyle.Render("ESTIMATE"))
			printRow(w, "Pieces", strconv.Itoa(len(pieces)))
			printRow(w, "Piece area", strconv.Itoa(est.TotalPieceArea))
			printRow(w, "Plate area", strconv.Itoa(est.PlateArea))
			printRow(w, "Plates", fmt.Sprintf("%.2f (at least %d)", est.PlatesNeededExact, est.PlatesNeededMin))
			printRow(w, "Material", fmt.Sprintf("%.2f", est.MinMaterialCost))
			if est.OversizedPieces > 0 {
				fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("  %d pieces do not fit on a %dx%d plate",
					est.OversizedPieces, settings.PlateHeight, settings.PlateWidth)))
			}
			return nil
		},
	}
}
