package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/PlateCut/internal/model"
	"github.com/piwi3910/PlateCut/internal/project"
)

func (a *app) profilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List and import G-code post-processor profiles",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List built-in and custom profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			custom, err := project.LoadCustomProfiles(a.profilesPath())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, titleStyle.Render("PROFILES"))
			for _, p := range model.GCodeProfiles {
				fmt.Fprintf(w, "  %-16s %-8s %s\n", p.Name, "built-in", p.Description)
			}
			for _, p := range custom {
				fmt.Fprintf(w, "  %-16s %-8s %s\n", p.Name, "custom", p.Description)
			}
			return nil
		},
	}

	importCmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Add a shared profile JSON file to the custom profiles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.ImportProfile(a.profilesPath(), args[0])
			if err != nil {
				return fmt.Errorf("importing profile: %w", err)
			}
			a.logger.Info("profile imported", "name", p.Name, "store", a.profilesPath())
			printRow(cmd.OutOrStdout(), "Imported", p.Name)
			return nil
		},
	}

	cmd.AddCommand(listCmd, importCmd)
	return cmd
}
