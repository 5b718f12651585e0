// Package gcode turns shelf-packed plates into CNC programs that make the
// separating cuts with multi-pass depth stepping.
package gcode

import (
	"fmt"
	"math"
	"strings"

	"github.com/piwi3910/PlateCut/internal/model"
)

// Generator produces G-code for the plates of a layout.
type Generator struct {
	Settings model.MachineSettings
	profile  model.GCodeProfile
}

func New(settings model.MachineSettings) *Generator {
	return NewWithProfiles(settings, nil)
}

// NewWithProfiles resolves settings.GCodeProfile against custom profiles
// before the built-in ones.
func NewWithProfiles(settings model.MachineSettings, custom []model.GCodeProfile) *Generator {
	return &Generator{
		Settings: settings,
		profile:  model.FindProfile(settings.GCodeProfile, custom),
	}
}

// Profile returns the post-processor profile in use.
func (g *Generator) Profile() model.GCodeProfile { return g.profile }

// GeneratePlate produces the program for one plate. index is 1-based.
func (g *Generator) GeneratePlate(pl model.Plate, index int) string {
	var b strings.Builder
	cuts := CutsForPlate(pl)

	g.writeHeader(&b, pl, index, cuts)
	for i, c := range cuts {
		g.writeCut(&b, c, i+1)
	}
	g.writeFooter(&b)
	return b.String()
}

// GenerateAll produces one program per plate.
func (g *Generator) GenerateAll(layout model.Layout) []string {
	codes := make([]string, 0, layout.PlateCount())
	for i, pl := range layout.Plates {
		codes = append(codes, g.GeneratePlate(pl, i+1))
	}
	return codes
}

func (g *Generator) writeHeader(b *strings.Builder, pl model.Plate, idx int, cuts []Cut) {
	p := g.profile
	s := g.Settings

	b.WriteString(g.comment(fmt.Sprintf("PlateCut G-code - Plate %d", idx)))
	b.WriteString(g.comment(fmt.Sprintf("Plate: %d x %d, scale %g %s", pl.Width, pl.Height, g.scale(1), s.Units)))
	b.WriteString(g.comment(fmt.Sprintf("Pieces: %d, Shelves: %d, Efficiency: %.1f%%", pl.PieceCount(), len(pl.Shelves), pl.Efficiency())))
	b.WriteString(g.comment(fmt.Sprintf("Cuts: %d, Cut length: %s %s", len(cuts), g.format(g.scale(TotalCutLength(cuts))), s.Units)))
	b.WriteString(g.comment(fmt.Sprintf("Tool: %.1f%s, Feed: %.0f, Plunge: %.0f", s.ToolDiameter, s.Units, s.FeedRate, s.PlungeRate)))
	b.WriteString(g.comment(fmt.Sprintf("Depth: %.1f%s in %d passes", s.CutDepth, s.Units, g.passes())))
	b.WriteString(g.comment(fmt.Sprintf("Profile: %s", p.Name)))
	b.WriteString("\n")

	for _, code := range p.StartCode {
		b.WriteString(code + "\n")
	}
	if p.SpindleStart != "" {
		b.WriteString(fmt.Sprintf(p.SpindleStart+"\n", s.SpindleSpeed))
	}

	b.WriteString(fmt.Sprintf("%s Z%s\n", p.RapidMove, g.format(s.SafeZ)))
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(0), g.format(0)))
	b.WriteString("\n")
}

func (g *Generator) writeFooter(b *strings.Builder) {
	p := g.profile

	b.WriteString(g.comment("=== Job complete ==="))
	b.WriteString(fmt.Sprintf("%s Z%s\n", p.RapidMove, g.format(g.Settings.SafeZ)))
	if p.SpindleStop != "" {
		b.WriteString(p.SpindleStop + "\n")
	}
	for _, code := range p.EndCode {
		b.WriteString(code + "\n")
	}
}

// writeCut emits one straight cut, stepping down PassDepth per pass and
// alternating direction so the tool never travels back empty.
func (g *Generator) writeCut(b *strings.Builder, c Cut, num int) {
	p := g.profile
	s := g.Settings

	x0, y0 := g.scale(c.X0), g.scale(c.Y0)
	x1, y1 := g.scale(c.X1), g.scale(c.Y1)

	b.WriteString(g.comment(fmt.Sprintf("--- Cut %d: %s %d,%d to %d,%d ---", num, c.Axis, c.X0, c.Y0, c.X1, c.Y1)))
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(x0), g.format(y0)))

	passes := g.passes()
	for pass := 1; pass <= passes; pass++ {
		depth := math.Min(float64(pass)*s.PassDepth, s.CutDepth)
		b.WriteString(g.comment(fmt.Sprintf("Pass %d/%d, depth=%s", pass, passes, g.format(depth))))
		b.WriteString(fmt.Sprintf("%s Z%s F%s\n", p.FeedMove, g.format(-depth), g.format(s.PlungeRate)))

		tx, ty := x1, y1
		if pass%2 == 0 {
			tx, ty = x0, y0
		}
		b.WriteString(fmt.Sprintf("%s X%s Y%s F%s\n", p.FeedMove, g.format(tx), g.format(ty), g.format(s.FeedRate)))
	}

	b.WriteString(fmt.Sprintf("%s Z%s\n", p.RapidMove, g.format(s.SafeZ)))
	b.WriteString("\n")
}

// passes returns the number of depth passes; at least one.
func (g *Generator) passes() int {
	if g.Settings.PassDepth <= 0 || g.Settings.CutDepth <= 0 {
		return 1
	}
	return int(math.Ceil(g.Settings.CutDepth / g.Settings.PassDepth))
}

// scale converts a plate coordinate to machine units.
func (g *Generator) scale(v int) float64 {
	if g.Settings.Scale <= 0 {
		return float64(v)
	}
	return float64(v) * g.Settings.Scale
}

func (g *Generator) comment(text string) string {
	return g.profile.CommentPrefix + " " + text + g.profile.CommentSuffix + "\n"
}

func (g *Generator) format(v float64) string {
	return fmt.Sprintf("%.*f", g.profile.DecimalPlaces, v)
}
