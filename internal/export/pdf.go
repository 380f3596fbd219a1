package export

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/HelixPack/internal/engine"
	"github.com/piwi3910/HelixPack/internal/model"
)

// helixColor represents an RGB color for a drawn helix.
type helixColor struct {
	R, G, B int
}

var helixColors = []helixColor{
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
	statsHeight  = 10.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	qrSize       = 35.0
)

// HelixDrawRadius is the helix circle radius in diagram units. Helix centres
// sit several hundred units apart, so the residue radius used for scoring
// would be invisible at page scale.
const HelixDrawRadius = 60.0

// ExportPDF renders every ranked arrangement on its own page, followed by a
// summary page listing all arrangements.
func ExportPDF(path string, report model.Report, settings model.Settings) error {
	if report.TotalArrangements() == 0 {
		return fmt.Errorf("no arrangements to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for ci, cr := range report.Components {
		for _, a := range cr.Arrangements {
			pdf.AddPage()
			if err := renderArrangementPage(pdf, report, ci, cr.Component, a, settings); err != nil {
				return err
			}
		}
	}

	pdf.AddPage()
	renderSummaryPage(pdf, report)

	return pdf.OutputFileAndClose(path)
}

// bounds returns the bounding box of the helix centres grown by pad.
func bounds(positions []model.Point2D, pad float64) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range positions {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return minX - pad, minY - pad, maxX + pad, maxY + pad
}

// renderArrangementPage draws one arrangement on the current PDF page.
func renderArrangementPage(pdf *fpdf.Fpdf, report model.Report, ci int, comp model.Component, a model.ArrangementResult, settings model.Settings) error {
	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Component %d, Arrangement %d (%d helices)", ci+1, a.Rank, len(a.Positions))
	pdf.CellFormat(pageWidth-marginLeft-marginRight-qrSize, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Score: %s | Crossovers: %d | Evaluations: %d | Generations: %d",
		formatNumber(a.Score), a.Crossovers, a.Evaluations, a.Generations)
	pdf.CellFormat(pageWidth-marginLeft-marginRight-qrSize, 5, stats, "", 0, "L", false, 0, "")

	if err := drawQR(pdf, NewArrangementInfo(report, ci, a)); err != nil {
		return err
	}

	drawWidth := pageWidth - marginLeft - marginRight - qrSize
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	minX, minY, maxX, maxY := bounds(a.Positions, 2*HelixDrawRadius)
	scale := math.Min(drawWidth/(maxX-minX), drawHeight/(maxY-minY))
	offsetX := marginLeft + (drawWidth-(maxX-minX)*scale)/2
	offsetY := drawAreaTop

	// Diagram y grows upwards, page y downwards
	toPage := func(p model.Point2D) (float64, float64) {
		return offsetX + (p.X-minX)*scale, offsetY + (maxY-p.Y)*scale
	}

	drawLoops(pdf, a.Positions, toPage)
	drawContacts(pdf, comp, a, settings, toPage)
	drawHelices(pdf, a, scale, toPage)
	drawLegend(pdf, pageHeight-marginBottom-statsHeight+2)

	return nil
}

// drawQR places the arrangement QR code in the top right corner.
func drawQR(pdf *fpdf.Fpdf, info ArrangementInfo) error {
	png, err := EncodeQR(info, 256)
	if err != nil {
		return err
	}

	imgName := fmt.Sprintf("qr_c%d_a%d", info.Component, info.Rank)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(png))
	pdf.ImageOptions(imgName, pageWidth-marginRight-qrSize, marginTop, qrSize, qrSize, false, opts, 0, "")
	return nil
}

// drawLoops connects consecutive helices. Loops on the first membrane face
// are solid, loops on the second face dashed.
func drawLoops(pdf *fpdf.Fpdf, positions []model.Point2D, toPage func(model.Point2D) (float64, float64)) {
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.6)
	for i := 0; i+1 < len(positions); i++ {
		if i%2 == 0 {
			pdf.SetDashPattern(nil, 0)
		} else {
			pdf.SetDashPattern([]float64{2, 1.5}, 0)
		}
		x1, y1 := toPage(positions[i])
		x2, y2 := toPage(positions[i+1])
		pdf.Line(x1, y1, x2, y2)
	}
	pdf.SetDashPattern(nil, 0)
}

// drawContacts links the residues of every predicted contact at the drawn
// helix radius, using the optimised rotations.
func drawContacts(pdf *fpdf.Fpdf, comp model.Component, a model.ArrangementResult, settings model.Settings, toPage func(model.Point2D) (float64, float64)) {
	residues := make(map[int]model.Point2D)
	for i, h := range comp.Helices {
		if i >= len(a.Positions) {
			break
		}
		engine.ResiduePositions(residues, a.Positions[i], a.Rotations[i], h, HelixDrawRadius, settings.ResidueStep)
	}

	pdf.SetDrawColor(200, 0, 0)
	pdf.SetFillColor(200, 0, 0)
	pdf.SetLineWidth(0.2)
	for _, c := range comp.Contacts {
		p, okA := residues[c.ResidueA]
		q, okB := residues[c.ResidueB]
		if !okA || !okB {
			continue
		}
		x1, y1 := toPage(p)
		x2, y2 := toPage(q)
		pdf.Line(x1, y1, x2, y2)
		pdf.Circle(x1, y1, 0.8, "F")
		pdf.Circle(x2, y2, 0.8, "F")
	}
}

// drawHelices draws each helix as a filled circle labelled with its number
// in the input file.
func drawHelices(pdf *fpdf.Fpdf, a model.ArrangementResult, scale float64, toPage func(model.Point2D) (float64, float64)) {
	r := HelixDrawRadius * scale
	for i, p := range a.Positions {
		col := helixColors[i%len(helixColors)]
		x, y := toPage(p)

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Circle(x, y, r, "FD")

		label := fmt.Sprintf("%d", a.HelixNumber[i])
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetTextColor(0, 0, 0)
		w := pdf.GetStringWidth(label)
		pdf.SetXY(x-w/2, y-2)
		pdf.CellFormat(w, 4, label, "", 0, "C", false, 0, "")

		rot := fmt.Sprintf("%d\xb0", a.Rotations[i])
		pdf.SetFont("Helvetica", "", 7)
		pdf.SetTextColor(80, 80, 80)
		w = pdf.GetStringWidth(rot)
		pdf.SetXY(x-w/2, y+r+0.5)
		pdf.CellFormat(w, 3, rot, "", 0, "C", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
}

// drawLegend explains the line styles at the bottom of the page.
func drawLegend(pdf *fpdf.Fpdf, y float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	x := marginLeft

	entries := []struct {
		label string
		dash  []float64
		col   helixColor
	}{
		{"Loop, first face", nil, helixColor{60, 60, 60}},
		{"Loop, second face", []float64{2, 1.5}, helixColor{60, 60, 60}},
		{"Predicted contact", nil, helixColor{200, 0, 0}},
	}
	for _, e := range entries {
		pdf.SetDrawColor(e.col.R, e.col.G, e.col.B)
		pdf.SetLineWidth(0.6)
		pdf.SetDashPattern(e.dash, 0)
		pdf.Line(x, y+2, x+10, y+2)
		pdf.SetDashPattern(nil, 0)
		pdf.SetXY(x+12, y)
		w := pdf.GetStringWidth(e.label) + 2
		pdf.CellFormat(w, 4, e.label, "", 0, "L", false, 0, "")
		x += 12 + w + 6
	}
}

// renderSummaryPage draws the final summary page listing every arrangement.
func renderSummaryPage(pdf *fpdf.Fpdf, report model.Report) {
	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Helix Packing Summary", "", 0, "L", false, 0, "")

	// Separator line
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	summaryItems := []struct {
		label string
		value string
	}{
		{"Input", report.Source},
		{"Run", report.RunID},
		{"Seed", fmt.Sprintf("%d", report.Seed)},
		{"Components", fmt.Sprintf("%d", len(report.Components))},
		{"Arrangements", fmt.Sprintf("%d", report.TotalArrangements())},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(40, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(180, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	colWidths := []float64{25, 20, 92, 35, 30, 33, 32}
	headers := []string{"Component", "Rank", "Helices", "Score", "Crossovers", "Evaluations", "Generations"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	row := 0
	for ci, cr := range report.Components {
		for _, a := range cr.Arrangements {
			if y > pageHeight-marginBottom-6 {
				pdf.AddPage()
				y = marginTop
			}

			rowData := []string{
				fmt.Sprintf("%d", ci+1),
				fmt.Sprintf("%d", a.Rank),
				helixList(a.HelixNumber),
				formatNumber(a.Score),
				fmt.Sprintf("%d", a.Crossovers),
				fmt.Sprintf("%d", a.Evaluations),
				fmt.Sprintf("%d", a.Generations),
			}

			// Alternate row background
			if row%2 == 0 {
				pdf.SetFillColor(245, 245, 245)
			} else {
				pdf.SetFillColor(255, 255, 255)
			}

			xPos = marginLeft
			for j, cell := range rowData {
				pdf.SetXY(xPos, y)
				pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
				xPos += colWidths[j]
			}
			y += 6
			row++
		}
	}
}

func helixList(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ", ")
}
