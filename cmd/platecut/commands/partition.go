package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/PlateCut/internal/engine"
	"github.com/piwi3910/PlateCut/internal/model"
)

func (a *app) partitionCmd() *cobra.Command {
	var (
		weights    []float64
		algorithms []string
	)
	cmd := &cobra.Command{
		Use:   "partition [FILE]",
		Short: "Split piece weights into two balanced groups",
		Long: `Run the partition solvers on the weights of a piece list, or on --weights,
and cross-check their differences.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				pieces, err := a.loadPieces(args[0])
				if err != nil {
					return err
				}
				weights = model.Weights(pieces)
			}
			if len(args) == 0 && !cmd.Flags().Changed("weights") {
				return errors.New("give a piece list or --weights")
			}

			var algs []model.Algorithm
			for _, name := range algorithms {
				alg, err := model.ParseAlgorithm(name)
				if err != nil {
					return err
				}
				algs = append(algs, alg)
			}

			cmp, err := engine.ComparePartition(weights, algs...)
			if err != nil {
				return err
			}
			printPartitionComparison(cmd, cmp, weights)
			if !cmp.Consistent {
				a.logger.Warn("exact partition solvers disagree", "weights", len(weights))
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.Float64SliceVar(&weights, "weights", nil, "Comma-separated weights instead of a piece list")
	f.StringSliceVar(&algorithms, "algorithms", nil, "Partition algorithms to run (default all)")
	return cmd
}

func printPartitionComparison(cmd *cobra.Command, cmp engine.PartitionComparison, weights []float64) {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, titleStyle.Render("PARTITION"))
	printRow(w, "Items", fmt.Sprintf("%d", len(weights)))
	for _, alg := range cmp.Algorithms {
		pr := cmp.Results[alg]
		s1, s2 := pr.Sums(weights)
		fmt.Fprintf(w, "  %-28s diff %-8s sums %s / %s  effort %d\n",
			alg, formatWeight(pr.Difference), formatWeight(s1), formatWeight(s2), pr.Effort)
	}
	printRow(w, "Consistent", yesNo(cmp.Consistent))
	if _, ok := cmp.Results[model.AlgorithmPartitionGreedy]; ok {
		printRow(w, "Greedy optimal", yesNo(cmp.HeuristicMatchesOptimal))
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
