package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/PlateCut/internal/engine"
	"github.com/piwi3910/PlateCut/internal/export"
	"github.com/piwi3910/PlateCut/internal/model"
)

func (a *app) compareCmd() *cobra.Command {
	var (
		algorithms []string
		xlsxPath   string
	)
	cmd := &cobra.Command{
		Use:   "compare FILE",
		Short: "Run several cutting algorithms on the same pieces",
		Long: `Run cutting algorithms one after another on a piece list and report cost,
plates and effort side by side. Without --algorithms the exhaustive
searches are left out for large piece lists.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := a.settings()
			if err != nil {
				return err
			}
			pieces, err := a.loadPieces(args[0])
			if err != nil {
				return err
			}

			algs := engine.DefaultComparisonAlgorithms(len(pieces))
			if len(algorithms) > 0 {
				algs = algs[:0]
				for _, name := range algorithms {
					alg, err := model.ParseAlgorithm(name)
					if err != nil {
						return err
					}
					algs = append(algs, alg)
				}
			}

			results := engine.CompareAlgorithms(cmd.Context(), algs, settings, pieces, a.solverOptions()...)
			printComparison(cmd, results)

			if xlsxPath != "" {
				if err := export.ExportComparisonXLSX(xlsxPath, results); err != nil {
					return fmt.Errorf("exporting comparison: %w", err)
				}
				printRow(cmd.OutOrStdout(), "Workbook", xlsxPath)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringSliceVar(&algorithms, "algorithms", nil, "Cutting algorithms to compare")
	f.StringVar(&xlsxPath, "xlsx", "", "Write the comparison to an Excel workbook")
	return cmd
}

func printComparison(cmd *cobra.Command, results []engine.ComparisonResult) {
	w := cmd.OutOrStdout()
	best, found := engine.Cheapest(results)

	fmt.Fprintln(w, titleStyle.Render("COMPARISON"))
	fmt.Fprintf(w, "  %-18s %12s %7s %8s %12s %10s\n", "ALGORITHM", "COST", "PLATES", "WASTE", "EFFORT", "TIME")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "  %-18s %s\n", r.Algorithm, errorStyle.Render(r.Err.Error()))
			continue
		}
		line := fmt.Sprintf("  %-18s %12.2f %7d %7.1f%% %12s %10s",
			r.Algorithm, r.Result.Cost, r.PlatesUsed, r.WastePercent,
			strconv.FormatInt(r.Result.Effort, 10), r.Result.Elapsed.Round(time.Millisecond))
		if r.Result.TimedOut {
			line += warnStyle.Render(" timed out")
		}
		if found && r.Algorithm == best.Algorithm {
			line = bestStyle.Render(line)
		}
		fmt.Fprintln(w, line)
	}
	if found {
		printRow(w, "Cheapest", string(best.Algorithm))
	}
}
