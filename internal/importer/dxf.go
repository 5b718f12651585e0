package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/PlateCut/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

type point struct {
	X, Y float64
}

// outline is a closed polygon; the last point connects back to the first.
type outline []point

func (o outline) boundingBox() (point, point) {
	min := point{X: math.Inf(1), Y: math.Inf(1)}
	max := point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, p := range o {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

func (o outline) area() float64 {
	n := len(o)
	if n < 3 {
		return 0
	}
	var a float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a += o[i].X*o[j].Y - o[j].X*o[i].Y
	}
	return math.Abs(a) / 2
}

// segment is a line between two points, used to chain loose LINE and ARC
// entities into closed outlines.
type segment struct {
	start point
	end   point
}

// ImportDXF imports pieces from a DXF drawing. Every closed shape (LWPOLYLINE,
// CIRCLE, or a chain of connected LINEs and ARCs) becomes one piece sized to
// its bounding box, rounded to whole drawing units. The drawing's Y extent is
// the piece height and its X extent the width.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines []outline
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			o := lwPolylineToOutline(e)
			if len(o) >= 3 {
				outlines = append(outlines, o)
			} else {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Circle:
			outlines = append(outlines, circleToOutline(e))

		case *entity.Arc:
			pts := arcToPoints(e, 32)
			segments = append(segments, pointsToSegments(pts)...)

		case *entity.Line:
			segments = append(segments, segment{
				start: point{X: e.Start[0], Y: e.Start[1]},
				end:   point{X: e.End[0], Y: e.End[1]},
			})
		}
	}

	outlines = append(outlines, chainSegments(segments, 0.01)...)

	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	for i, o := range outlines {
		min, max := o.boundingBox()
		width := int(math.Round(max.X - min.X))
		height := int(math.Round(max.Y - min.Y))
		if width < 1 || height < 1 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f)", max.X-min.X, max.Y-min.Y))
			continue
		}
		result.Pieces = append(result.Pieces, model.NewPiece(fmt.Sprintf("DXF %d", i+1), height, width))
	}

	return result
}

// lwPolylineToOutline converts an LWPOLYLINE to an outline. Vertices with a
// bulge contribute interpolated arc points.
func lwPolylineToOutline(lw *entity.LwPolyline) outline {
	var o outline
	for i, v := range lw.Vertices {
		current := point{X: v[0], Y: v[1]}

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}
		if math.Abs(bulge) < 1e-9 {
			o = append(o, current)
			continue
		}

		n := lw.Vertices[(i+1)%len(lw.Vertices)]
		arc := bulgeArcPoints(current, point{X: n[0], Y: n[1]}, bulge, 16)
		o = append(o, arc[:len(arc)-1]...)
	}
	return o
}

// bulgeArcPoints samples the arc between p1 and p2 for a DXF bulge factor,
// the tangent of a quarter of the included angle.
func bulgeArcPoints(p1, p2 point, bulge float64, numSegments int) outline {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	chord := math.Hypot(dx, dy)
	if chord < 1e-9 {
		return outline{p1, p2}
	}

	sagitta := math.Abs(bulge) * chord / 2
	radius := (chord*chord/(4*sagitta) + sagitta) / 2

	perpX, perpY := -dy/chord, dx/chord
	if bulge > 0 {
		perpX, perpY = -perpX, -perpY
	}
	dist := radius - sagitta
	cx := (p1.X+p2.X)/2 + perpX*dist
	cy := (p1.Y+p2.Y)/2 + perpY*dist

	start := math.Atan2(p1.Y-cy, p1.X-cx)
	end := math.Atan2(p2.Y-cy, p2.X-cx)
	if bulge < 0 && end > start {
		end -= 2 * math.Pi
	} else if bulge > 0 && end < start {
		end += 2 * math.Pi
	}

	pts := make(outline, 0, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		a := start + float64(i)/float64(numSegments)*(end-start)
		pts = append(pts, point{X: cx + radius*math.Cos(a), Y: cy + radius*math.Sin(a)})
	}
	return pts
}

// circleToOutline returns the circle's bounding square; only its extent matters.
func circleToOutline(c *entity.Circle) outline {
	cx, cy, r := c.Center[0], c.Center[1], c.Radius
	return outline{{cx - r, cy - r}, {cx + r, cy - r}, {cx + r, cy + r}, {cx - r, cy + r}}
}

func arcToPoints(a *entity.Arc, numSegments int) []point {
	cx, cy := a.Circle.Center[0], a.Circle.Center[1]
	r := a.Circle.Radius

	start := a.Angle[0] * math.Pi / 180
	end := a.Angle[1] * math.Pi / 180
	if end <= start {
		end += 2 * math.Pi
	}

	pts := make([]point, numSegments+1)
	for i := range pts {
		angle := start + float64(i)/float64(numSegments)*(end-start)
		pts[i] = point{X: cx + r*math.Cos(angle), Y: cy + r*math.Sin(angle)}
	}
	return pts
}

func pointsToSegments(pts []point) []segment {
	if len(pts) < 2 {
		return nil
	}
	segs := make([]segment, 0, len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		segs = append(segs, segment{start: pts[i], end: pts[i+1]})
	}
	return segs
}

// chainSegments connects segments whose endpoints lie within tolerance into
// closed outlines, largest first. Open chains are dropped.
func chainSegments(segs []segment, tolerance float64) []outline {
	used := make([]bool, len(segs))
	var outlines []outline

	for startIdx := range segs {
		if used[startIdx] {
			continue
		}
		used[startIdx] = true
		chain := outline{segs[startIdx].start, segs[startIdx].end}

		for extended := true; extended; {
			extended = false
			tail := chain[len(chain)-1]
			for i, seg := range segs {
				if used[i] {
					continue
				}
				switch {
				case pointsClose(tail, seg.start, tolerance):
					chain = append(chain, seg.end)
				case pointsClose(tail, seg.end, tolerance):
					chain = append(chain, seg.start)
				default:
					continue
				}
				used[i] = true
				extended = true
				break
			}
		}

		if len(chain) < 4 || !pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			continue
		}
		outlines = append(outlines, chain[:len(chain)-1])
	}

	sort.SliceStable(outlines, func(i, j int) bool {
		return outlines[i].area() > outlines[j].area()
	})
	return outlines
}

func pointsClose(a, b point, tolerance float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tolerance
}
