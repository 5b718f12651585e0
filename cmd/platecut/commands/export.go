package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/piwi3910/PlateCut/internal/project"
)

func (a *app) exportCmd() *cobra.Command {
	var outputs outputFlags
	cmd := &cobra.Command{
		Use:   "export RUN",
		Short: "Render a saved run as PDF, DXF, labels or G-code",
		Long: `Read a run saved with 'platecut solve --save' and write the requested
files without searching again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !outputs.any() {
				return errors.New("nothing to export; use --pdf, --dxf, --labels or --gcode")
			}
			run, err := project.LoadRun(args[0])
			if err != nil {
				return err
			}
			settings := run.Settings
			if a.v.IsSet("gcode-profile") {
				settings.Machine.GCodeProfile = a.v.GetString("gcode-profile")
			}
			return a.writeOutputs(cmd.OutOrStdout(), outputs, run.Result, settings)
		},
	}
	outputs.register(cmd.Flags())
	return cmd
}
