package export

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/piwi3910/HelixPack/internal/model"
)

// layerColors cycles per arrangement so neighbouring drawings stay apart.
var layerColors = []color.ColorNumber{color.Red, color.Green, color.Blue, color.Magenta, color.Cyan, color.Yellow}

// DXF layout constants in diagram units.
const (
	dxfGap        = 400.0 // Horizontal space between two arrangements
	dxfTextHeight = 40.0
)

// LayerName returns the DXF layer holding one arrangement, e.g. "C1_A2".
func LayerName(component, rank int) string {
	return fmt.Sprintf("C%d_A%d", component+1, rank)
}

// ExportDXF writes every arrangement side by side along the x axis. Each
// arrangement gets its own layer with helix circles, numbers and the loops
// on the first membrane face; loops on the second face go to a hidden-line
// layer suffixed "_F2".
func ExportDXF(path string, report model.Report) error {
	if report.TotalArrangements() == 0 {
		return fmt.Errorf("no arrangements to export")
	}

	d := dxf.NewDrawing()
	offsetX := 0.0
	n := 0

	for ci, cr := range report.Components {
		for _, a := range cr.Arrangements {
			col := layerColors[n%len(layerColors)]
			n++

			minX, minY, maxX, maxY := bounds(a.Positions, 2*HelixDrawRadius)
			shift := func(p model.Point2D) (float64, float64) {
				return p.X - minX + offsetX, p.Y - minY
			}

			name := LayerName(ci, a.Rank)
			if _, err := d.AddLayer(name, col, dxf.DefaultLineType, true); err != nil {
				return fmt.Errorf("failed to add layer %s: %w", name, err)
			}
			if err := drawArrangementDXF(d, a, shift, 0); err != nil {
				return err
			}

			x, y := shift(model.Point2D{X: minX, Y: maxY})
			if _, err := d.Text(fmt.Sprintf("%s score %s", model.Title(ci, a.Rank-1), formatNumber(a.Score)), x, y, 0, dxfTextHeight); err != nil {
				return fmt.Errorf("failed to add title: %w", err)
			}

			face2 := name + "_F2"
			if _, err := d.AddLayer(face2, col, table.LT_HIDDEN, true); err != nil {
				return fmt.Errorf("failed to add layer %s: %w", face2, err)
			}
			if err := drawLoopsDXF(d, a.Positions, shift, 1); err != nil {
				return err
			}

			offsetX += (maxX - minX) + dxfGap
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF %s: %w", path, err)
	}
	return nil
}

// drawArrangementDXF adds helix circles, numbers and first face loops to the
// current layer.
func drawArrangementDXF(d *drawing.Drawing, a model.ArrangementResult, shift func(model.Point2D) (float64, float64), face int) error {
	for i, p := range a.Positions {
		x, y := shift(p)
		if _, err := d.Circle(x, y, 0, HelixDrawRadius); err != nil {
			return fmt.Errorf("failed to add helix %d: %w", a.HelixNumber[i], err)
		}
		label := fmt.Sprintf("%d", a.HelixNumber[i])
		if _, err := d.Text(label, x-dxfTextHeight/2, y-dxfTextHeight/2, 0, dxfTextHeight); err != nil {
			return fmt.Errorf("failed to label helix %d: %w", a.HelixNumber[i], err)
		}

		// Rotation marker from the centre towards the first residue
		rad := (-90 + float64(a.Rotations[i])) * math.Pi / 180
		if _, err := d.Line(x, y, 0, x+HelixDrawRadius*math.Cos(rad), y+HelixDrawRadius*math.Sin(rad), 0); err != nil {
			return fmt.Errorf("failed to mark rotation of helix %d: %w", a.HelixNumber[i], err)
		}
	}
	return drawLoopsDXF(d, a.Positions, shift, face)
}

// drawLoopsDXF adds the loops starting at helix first, every second one.
func drawLoopsDXF(d *drawing.Drawing, positions []model.Point2D, shift func(model.Point2D) (float64, float64), first int) error {
	for i := first; i+1 < len(positions); i += 2 {
		x1, y1 := shift(positions[i])
		x2, y2 := shift(positions[i+1])
		if _, err := d.Line(x1, y1, 0, x2, y2, 0); err != nil {
			return fmt.Errorf("failed to add loop %d-%d: %w", i+1, i+2, err)
		}
	}
	return nil
}
