package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/PlateCut/internal/engine"
	"github.com/piwi3910/PlateCut/internal/model"
	"github.com/piwi3910/PlateCut/internal/project"
)

type solveOptions struct {
	algorithm string
	save      string
	outputs   outputFlags
}

func (a *app) solveCmd() *cobra.Command {
	var opts solveOptions
	cmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Find the cheapest layout for a piece list",
		Long: `Read a piece list (.txt, .csv, .xlsx or .dxf) and run one solver on it.

Cutting algorithms print the plate layout; partition algorithms split the
piece weights into two groups.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSolve(cmd, args[0], opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.algorithm, "algorithm", "a", "", "Solver algorithm (default from config)")
	f.StringVar(&opts.save, "save", "", "Save the run as JSON for a later export")
	opts.outputs.register(f)
	return cmd
}

func (a *app) runSolve(cmd *cobra.Command, path string, opts solveOptions) error {
	settings, err := a.settings()
	if err != nil {
		return err
	}
	if settings, err = withAlgorithm(settings, opts.algorithm); err != nil {
		return err
	}
	pieces, err := a.loadPieces(path)
	if err != nil {
		return err
	}

	res, err := engine.Solve(cmd.Context(), settings, pieces, a.solverOptions()...)
	if err != nil {
		return fmt.Errorf("solving %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	if settings.Algorithm.IsPartition() {
		printPartitionResult(out, res, model.Weights(pieces))
	} else {
		printCuttingResult(out, res)
	}

	if opts.save != "" {
		if err := project.SaveRun(opts.save, project.NewRunRecord(path, settings, pieces, res)); err != nil {
			return err
		}
		printRow(out, "Saved", opts.save)
	}
	if err := a.writeOutputs(out, opts.outputs, res, settings); err != nil {
		return err
	}

	if err := project.RememberFile(a.configPath, path); err != nil {
		a.logger.Warn("updating recent files failed", "error", err)
	}
	return nil
}
