package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/piwi3910/PlateCut/internal/export"
	"github.com/piwi3910/PlateCut/internal/gcode"
	"github.com/piwi3910/PlateCut/internal/model"
	"github.com/piwi3910/PlateCut/internal/project"
)

// outputFlags are the file exports shared by solve and export.
type outputFlags struct {
	pdf      string
	dxf      string
	labels   string
	gcodeDir string
}

func (o *outputFlags) register(f *pflag.FlagSet) {
	f.StringVar(&o.pdf, "pdf", "", "Write the cut plan as PDF")
	f.StringVar(&o.dxf, "dxf", "", "Write the layout as DXF")
	f.StringVar(&o.labels, "labels", "", "Write QR piece labels as PDF")
	f.StringVar(&o.gcodeDir, "gcode", "", "Write one G-code program per plate into this directory")
}

func (o outputFlags) any() bool {
	return o.pdf != "" || o.dxf != "" || o.labels != "" || o.gcodeDir != ""
}

func (a *app) profilesPath() string {
	return filepath.Join(filepath.Dir(a.configPath), "profiles.json")
}

func (a *app) writeOutputs(w io.Writer, o outputFlags, res model.Result, settings model.Settings) error {
	if !o.any() {
		return nil
	}
	if res.Layout == nil {
		return errors.New("exports need a cutting layout; partition results have none")
	}

	if o.pdf != "" {
		if err := export.ExportPDF(o.pdf, res, settings); err != nil {
			return fmt.Errorf("exporting PDF: %w", err)
		}
		printRow(w, "PDF", o.pdf)
	}
	if o.dxf != "" {
		if err := export.ExportDXF(o.dxf, *res.Layout); err != nil {
			return fmt.Errorf("exporting DXF: %w", err)
		}
		printRow(w, "DXF", o.dxf)
	}
	if o.labels != "" {
		if err := export.ExportLabels(o.labels, *res.Layout); err != nil {
			return fmt.Errorf("exporting labels: %w", err)
		}
		printRow(w, "Labels", o.labels)
	}
	if o.gcodeDir != "" {
		if err := a.writeGCode(w, o.gcodeDir, *res.Layout, settings.Machine); err != nil {
			return fmt.Errorf("exporting G-code: %w", err)
		}
	}
	return nil
}

func (a *app) writeGCode(w io.Writer, dir string, layout model.Layout, machine model.MachineSettings) error {
	custom, err := project.LoadCustomProfiles(a.profilesPath())
	if err != nil {
		return err
	}
	gen := gcode.NewWithProfiles(machine, custom)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	programs := gen.GenerateAll(layout)
	for i, prog := range programs {
		path := filepath.Join(dir, fmt.Sprintf("plate_%02d.nc", i+1))
		if err := os.WriteFile(path, []byte(prog), 0644); err != nil {
			return err
		}
	}
	printRow(w, "G-code", fmt.Sprintf("%d programs in %s (%s)", len(programs), dir, gen.Profile().Name))
	return nil
}

func printRow(w io.Writer, name, value string) {
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(fmt.Sprintf("%-12s", name+":")), value)
}

func printCuttingResult(w io.Writer, res model.Result) {
	fmt.Fprintln(w, titleStyle.Render("RESULT"))
	printRow(w, "Algorithm", string(res.Algorithm))
	printRow(w, "Cost", fmt.Sprintf("%.2f", res.Cost))
	printRow(w, "Plates", strconv.Itoa(res.PlateCount()))
	if res.Layout != nil {
		printRow(w, "Pieces", strconv.Itoa(res.Layout.PieceCount()))
		printRow(w, "Efficiency", fmt.Sprintf("%.1f%%", res.Layout.TotalEfficiency()))
	}
	printRow(w, "Effort", strconv.FormatInt(res.Effort, 10))
	if res.Pruned > 0 {
		printRow(w, "Pruned", strconv.FormatInt(res.Pruned, 10))
	}
	if res.Skipped > 0 {
		printRow(w, "Skipped", strconv.FormatInt(res.Skipped, 10))
	}
	printRow(w, "Elapsed", res.Elapsed.Round(time.Millisecond).String())
	if res.TimedOut {
		fmt.Fprintln(w, warnStyle.Render("  Time limit reached; showing the best layout found so far."))
	}

	if res.Layout == nil {
		return
	}
	for i, pl := range res.Layout.Plates {
		fmt.Fprintln(w)
		fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("PLATE %d", i+1)))
		for j, sh := range pl.Shelves {
			labels := make([]string, len(sh.Pieces))
			for k, p := range sh.Pieces {
				labels[k] = p.String()
				if p.Label != "" {
					labels[k] = p.Label + " " + labels[k]
				}
			}
			fmt.Fprintf(w, "  shelf %d  y=%d h=%d  %s\n", j+1, sh.Y, sh.Height, strings.Join(labels, ", "))
		}
	}
}

func printPartitionResult(w io.Writer, res model.Result, weights []float64) {
	pr := model.PartitionResult{Difference: res.Cost, Group1: res.Group1, Group2: res.Group2}
	s1, s2 := pr.Sums(weights)

	fmt.Fprintln(w, titleStyle.Render("RESULT"))
	printRow(w, "Algorithm", string(res.Algorithm))
	printRow(w, "Difference", formatWeight(res.Cost))
	printRow(w, "Group 1", fmt.Sprintf("%s (sum %s)", formatGroup(res.Group1, weights), formatWeight(s1)))
	printRow(w, "Group 2", fmt.Sprintf("%s (sum %s)", formatGroup(res.Group2, weights), formatWeight(s2)))
	printRow(w, "Effort", strconv.FormatInt(res.Effort, 10))
	printRow(w, "Elapsed", res.Elapsed.Round(time.Microsecond).String())
}

func formatGroup(idx []int, weights []float64) string {
	parts := make([]string, len(idx))
	for i, j := range idx {
		parts[i] = formatWeight(weights[j])
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func formatWeight(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
