package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/piwi3910/PlateCut/internal/model"
)

// DXF layer names.
const (
	LayerPlates  = "PLATES"
	LayerShelves = "SHELVES"
	LayerPieces  = "PIECES"
	LayerLabels  = "LABELS"
)

// plateSpacing separates consecutive plates along the X axis.
const plateSpacing = 50.0

// ExportDXF draws every plate of the layout side by side: the plate outline,
// the shelf boundaries and each piece rectangle with its label. DXF Y grows
// upwards, so plate rows are flipped to keep shelf 1 at the top.
func ExportDXF(path string, layout model.Layout) error {
	if layout.PlateCount() == 0 {
		return ErrEmptyLayout
	}

	d := dxf.NewDrawing()
	layers := []struct {
		name string
		col  color.ColorNumber
	}{
		{LayerPlates, color.White},
		{LayerShelves, color.Cyan},
		{LayerPieces, color.Green},
		{LayerLabels, color.Yellow},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.col, table.LT_CONTINUOUS, false); err != nil {
			return fmt.Errorf("adding layer %s: %w", l.name, err)
		}
	}

	originX := 0.0
	for _, pl := range layout.Plates {
		if err := drawPlate(d, pl, originX); err != nil {
			return err
		}
		originX += float64(pl.Width) + plateSpacing
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("saving DXF: %w", err)
	}
	return nil
}

func drawPlate(d *drawing.Drawing, pl model.Plate, originX float64) error {
	h := float64(pl.Height)
	// flip converts a top-down plate coordinate to drawing Y.
	flip := func(y int) float64 { return h - float64(y) }

	if err := d.ChangeLayer(LayerPlates); err != nil {
		return err
	}
	if err := rect(d, originX, 0, float64(pl.Width), h); err != nil {
		return err
	}

	if err := d.ChangeLayer(LayerShelves); err != nil {
		return err
	}
	for _, s := range pl.Shelves {
		y := flip(s.Y + s.Height)
		if _, err := d.Line(originX, y, 0, originX+float64(pl.Width), y, 0); err != nil {
			return err
		}
	}

	for _, p := range pl.Pieces() {
		x := originX + float64(p.X)
		y := flip(p.Bottom())
		if err := d.ChangeLayer(LayerPieces); err != nil {
			return err
		}
		if err := rect(d, x, y, float64(p.Width), float64(p.Height)); err != nil {
			return err
		}
		if err := d.ChangeLayer(LayerLabels); err != nil {
			return err
		}
		textH := float64(min(p.Height, p.Width)) / 6
		if _, err := d.Text(p.Label, x+textH/2, y+textH/2, 0, textH); err != nil {
			return err
		}
	}
	return nil
}

// rect draws an axis-aligned rectangle with its lower-left corner at (x, y).
func rect(d *drawing.Drawing, x, y, w, h float64) error {
	corners := [][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			return err
		}
	}
	return nil
}
