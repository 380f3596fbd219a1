// Package export writes ranked helix arrangements as a text report, PDF
// diagrams, DXF drawings and QR payloads.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/piwi3910/HelixPack/internal/model"
)

// reportSeparator closes every arrangement block.
var reportSeparator = strings.Repeat("=", 40)

// formatNumber prints a value with six significant digits.
func formatNumber(v float64) string {
	return fmt.Sprintf("%.6g", v)
}

// WriteReport prints the ranked arrangements of every component, best first.
// Component and arrangement headings only appear when there is more than one.
func WriteReport(w io.Writer, report model.Report) error {
	bw := bufio.NewWriter(w)

	for ci, cr := range report.Components {
		if len(report.Components) > 1 {
			fmt.Fprintf(bw, "Processing graph component %d...\n\n", ci+1)
		}
		writeComponent(bw, cr)
	}

	return bw.Flush()
}

func writeComponent(w io.Writer, cr model.ComponentResult) {
	for _, a := range cr.Arrangements {
		if len(cr.Arrangements) > 1 {
			fmt.Fprintf(w, "Arrangement %d\n", a.Rank)
		}
		fmt.Fprintln(w, "Helix\tPosition\t\tRotation")
		for i, p := range a.Positions {
			fmt.Fprintf(w, "%d\t(%s,%s)\t%d\n", a.HelixNumber[i], formatNumber(p.X), formatNumber(p.Y), a.Rotations[i])
		}
		fmt.Fprintf(w, "Score:\t%s\n", formatNumber(a.Score))
		fmt.Fprintln(w, reportSeparator)
		fmt.Fprintln(w)
	}
}
