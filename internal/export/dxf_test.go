package export

import (
	"path/filepath"
	"testing"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/HelixPack/internal/model"
)

// ─── DXF Tests ─────────────────────────────────────────────

func TestLayerName(t *testing.T) {
	if got := LayerName(0, 2); got != "C1_A2" {
		t.Errorf("expected C1_A2, got %s", got)
	}
}

func TestExportDXF_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arrangements.dxf")

	if err := ExportDXF(path, buildTestReport()); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}

	d, err := dxf.Open(path)
	if err != nil {
		t.Fatalf("cannot reopen DXF: %v", err)
	}

	circles, lines, texts := 0, 0, 0
	for _, e := range d.Entities() {
		switch e := e.(type) {
		case *entity.Circle:
			circles++
			if e.Radius != HelixDrawRadius {
				t.Errorf("expected helix radius %v, got %v", HelixDrawRadius, e.Radius)
			}
		case *entity.Line:
			lines++
		case *entity.Text:
			texts++
		}
	}

	// 3 + 3 + 2 helices
	if circles != 8 {
		t.Errorf("expected 8 circles, got %d", circles)
	}
	// One rotation marker per helix plus loops: 2 per three helix arrangement, 1 for the pair
	if lines != 8+2+2+1 {
		t.Errorf("expected 13 lines, got %d", lines)
	}
	// A number per helix and a title per arrangement
	if texts != 8+3 {
		t.Errorf("expected 11 texts, got %d", texts)
	}
}

func TestExportDXF_EmptyReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dxf")

	if err := ExportDXF(path, model.NewReport("x", 1)); err == nil {
		t.Fatal("expected error for empty report, got nil")
	}
}
