// Package export writes solver results to PDF reports, QR-coded piece labels,
// DXF drawings and Excel comparison sheets.
package export

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/PlateCut/internal/engine"
	"github.com/piwi3910/PlateCut/internal/model"
)

// ErrEmptyLayout is returned when a result carries no plates to export.
var ErrEmptyLayout = errors.New("no plates to export")

type pieceColor struct {
	R, G, B int
}

var pieceColors = []pieceColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF renders one page per plate of the result's layout followed by a
// summary page with the cost breakdown.
func ExportPDF(path string, res model.Result, settings model.Settings) error {
	if res.Layout == nil || res.Layout.PlateCount() == 0 {
		return ErrEmptyLayout
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	eval := engine.NewEvaluator(settings)
	for i, pl := range res.Layout.Plates {
		pdf.AddPage()
		renderPlatePage(pdf, pl, i, eval.PlateEnergy(pl))
	}

	pdf.AddPage()
	renderSummaryPage(pdf, res, settings)

	return pdf.OutputFileAndClose(path)
}

func renderPlatePage(pdf *fpdf.Fpdf, pl model.Plate, index int, energy float64) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Plate %d (%d x %d)", index+1, pl.Width, pl.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Pieces: %d | Shelves: %d | Used area: %d / %d | Efficiency: %.1f%% | Energy cost: %.2f",
		pl.PieceCount(), len(pl.Shelves), pl.UsedArea(), pl.TotalArea(), pl.Efficiency(), energy)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight
	scale := math.Min(drawWidth/float64(pl.Width), drawHeight/float64(pl.Height))

	canvasW := float64(pl.Width) * scale
	canvasH := float64(pl.Height) * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	pdf.SetFillColor(220, 220, 225)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	drawOffcuts(pdf, model.DetectOffcuts(pl, index, model.MinOffcutDimension), scale, offsetX, offsetY)

	// Shelf boundaries
	pdf.SetDrawColor(120, 120, 120)
	pdf.SetLineWidth(0.2)
	pdf.SetDashPattern([]float64{1.5, 1}, 0)
	for _, s := range pl.Shelves {
		y := offsetY + float64(s.Y+s.Height)*scale
		pdf.Line(offsetX, y, offsetX+canvasW, y)
	}
	pdf.SetDashPattern([]float64{}, 0)

	for i, p := range pl.Pieces() {
		col := pieceColors[i%len(pieceColors)]
		pw := float64(p.Width) * scale
		ph := float64(p.Height) * scale
		px := offsetX + float64(p.X)*scale
		py := offsetY + float64(p.Y)*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := p.Label
			dims := fmt.Sprintf("%dx%d", p.Height, p.Width)
			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, pl, offsetX, offsetY, canvasW, canvasH)
	drawPiecesLegend(pdf, pl, offsetY+canvasH+5)
}

// drawOffcuts shades reusable remnants with a hatch pattern.
func drawOffcuts(pdf *fpdf.Fpdf, offcuts []model.Offcut, scale, offsetX, offsetY float64) {
	for _, o := range offcuts {
		zx := offsetX + float64(o.X)*scale
		zy := offsetY + float64(o.Y)*scale
		zw := float64(o.Width) * scale
		zh := float64(o.Height) * scale

		pdf.SetFillColor(235, 245, 235)
		pdf.SetDrawColor(90, 140, 90)
		pdf.SetLineWidth(0.2)
		pdf.Rect(zx, zy, zw, zh, "FD")
		drawHatchPattern(pdf, zx, zy, zw, zh)

		if zw > 20 && zh > 8 {
			pdf.SetFont("Helvetica", "B", 6)
			pdf.SetTextColor(60, 110, 60)
			text := fmt.Sprintf("OFFCUT %dx%d", o.Height, o.Width)
			textW := pdf.GetStringWidth(text)
			pdf.SetXY(zx+(zw-textW)/2, zy+zh/2-2)
			pdf.CellFormat(textW, 4, text, "", 0, "C", false, 0, "")
		}
	}
	pdf.SetTextColor(0, 0, 0)
}

func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(150, 190, 150)
	pdf.SetLineWidth(0.15)

	spacing := 4.0
	for d := spacing; d < w+h; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)
		pdf.Line(x1, y1, x2, y2)
	}
}

func drawDimensionAnnotations(pdf *fpdf.Fpdf, pl model.Plate, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%d", pl.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%d", pl.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

func drawPiecesLegend(pdf *fpdf.Fpdf, pl model.Plate, startY float64) {
	pieces := pl.Pieces()
	if len(pieces) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Pieces placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range pieces {
		col := pieceColors[i%len(pieceColors)]
		label := fmt.Sprintf("%s (%dx%d)", p.Label, p.Height, p.Width)
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

func renderSummaryPage(pdf *fpdf.Fpdf, res model.Result, settings model.Settings) {
	layout := *res.Layout

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Plate Cutting Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	material := float64(layout.PlateCount()) * settings.PlateCost
	summaryItems := []struct {
		label string
		value string
	}{
		{"Algorithm", string(res.Algorithm)},
		{"Total Cost", fmt.Sprintf("%.2f", res.Cost)},
		{"Material Cost", fmt.Sprintf("%.2f", material)},
		{"Energy Cost", fmt.Sprintf("%.2f", res.Cost-material)},
		{"Plates Used", fmt.Sprintf("%d", layout.PlateCount())},
		{"Pieces Placed", fmt.Sprintf("%d", layout.PieceCount())},
		{"Overall Efficiency", fmt.Sprintf("%.1f%%", layout.TotalEfficiency())},
		{"Search Effort", fmt.Sprintf("%d", res.Effort)},
	}
	if res.TimedOut {
		summaryItems = append(summaryItems, struct {
			label string
			value string
		}{"Search", "stopped at time limit"})
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Plate Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 40, 30, 30, 35, 40, 50}
	headers := []string{"Plate", "Dimensions", "Shelves", "Pieces", "Efficiency", "Energy Cost", "Used / Total Area"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	eval := engine.NewEvaluator(settings)
	pdf.SetFont("Helvetica", "", 9)
	for i, pl := range layout.Plates {
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d x %d", pl.Width, pl.Height),
			fmt.Sprintf("%d", len(pl.Shelves)),
			fmt.Sprintf("%d", pl.PieceCount()),
			fmt.Sprintf("%.1f%%", pl.Efficiency()),
			fmt.Sprintf("%.2f", eval.PlateEnergy(pl)),
			fmt.Sprintf("%d / %d", pl.UsedArea(), pl.TotalArea()),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	footer := fmt.Sprintf("Generated by PlateCut - run %s", res.RunID)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, footer, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
