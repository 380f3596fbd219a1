package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// TopologySheet is the worksheet holding helix start and stop rows.
const TopologySheet = "Topology"

// ColumnMapping maps contact columns to their indices in a sheet row.
type ColumnMapping struct {
	ResidueA int
	ResidueB int
	HelixA   int
	HelixB   int
	Weight   int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"residue_a": {"residue_a", "residue a", "residue1", "res_a", "res1", "r1", "i"},
	"residue_b": {"residue_b", "residue b", "residue2", "res_b", "res2", "r2", "j"},
	"helix_a":   {"helix_a", "helix a", "helix1", "h1", "tm_a", "segment_a"},
	"helix_b":   {"helix_b", "helix b", "helix2", "h2", "tm_b", "segment_b"},
	"weight":    {"weight", "score", "probability", "prob", "confidence"},
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Matching is case-insensitive. Without a recognised header the mapping is
// positional: residue a, residue b, helix a, helix b, weight.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{ResidueA: -1, ResidueB: -1, HelixA: -1, HelixB: -1, Weight: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "residue_a":
					if mapping.ResidueA == -1 {
						mapping.ResidueA = i
					}
				case "residue_b":
					if mapping.ResidueB == -1 {
						mapping.ResidueB = i
					}
				case "helix_a":
					if mapping.HelixA == -1 {
						mapping.HelixA = i
					}
				case "helix_b":
					if mapping.HelixB == -1 {
						mapping.HelixB = i
					}
				case "weight":
					if mapping.Weight == -1 {
						mapping.Weight = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{ResidueA: 0, ResidueB: 1, HelixA: 2, HelixB: 3, Weight: 4}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseRow extracts a contact from a sheet row.
func parseRow(row []string, mapping ColumnMapping) (rawContact, error) {
	var c rawContact
	fields := []struct {
		name string
		idx  int
		dst  *int
	}{
		{"residue a", mapping.ResidueA, &c.residueA},
		{"residue b", mapping.ResidueB, &c.residueB},
		{"helix a", mapping.HelixA, &c.helixA},
		{"helix b", mapping.HelixB, &c.helixB},
	}
	for _, f := range fields {
		s := getCell(row, f.idx)
		if s == "" {
			return c, fmt.Errorf("missing %s", f.name)
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return c, fmt.Errorf("invalid %s '%s'", f.name, s)
		}
		*f.dst = v
	}

	if s := getCell(row, mapping.Weight); s != "" {
		w, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return c, fmt.Errorf("invalid weight '%s'", s)
		}
		c.weight = w
	}
	return c, nil
}

// ImportExcel imports contacts from an Excel workbook. The first sheet lists
// contacts, with or without a header row; a sheet named Topology lists one
// helix per row as start and stop residue.
func ImportExcel(path string) (ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("cannot open Excel file %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ImportResult{}, fmt.Errorf("excel file %s has no sheets", path)
	}

	b := newBuilder()

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ImportResult{}, fmt.Errorf("cannot read sheet %s: %w", sheets[0], err)
	}
	readContactRows(b, rows)

	for _, name := range sheets {
		if !strings.EqualFold(name, TopologySheet) {
			continue
		}
		topo, err := f.GetRows(name)
		if err != nil {
			return ImportResult{}, fmt.Errorf("cannot read sheet %s: %w", name, err)
		}
		readTopologyRows(b, topo)
		break
	}

	return b.build(path)
}

func readContactRows(b *builder, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	mapping, hasHeader := DetectColumns(rows[0])
	start := 0
	if hasHeader {
		start = 1
	}

	for i := start; i < len(rows); i++ {
		if isEmptyRow(rows[i]) {
			continue
		}
		c, err := parseRow(rows[i], mapping)
		if err != nil {
			b.warn("Row %d: %v, skipping", i+1, err)
			continue
		}
		if c.helixA == c.helixB {
			b.warn("Row %d: both residues on helix %d, skipping", i+1, c.helixA)
			continue
		}
		b.addContact(c)
	}
}

// readTopologyRows appends start and stop of every row whose first two cells
// are integers. Other rows, including a header, are skipped.
func readTopologyRows(b *builder, rows [][]string) {
	for i, row := range rows {
		if isEmptyRow(row) {
			continue
		}
		start, err1 := strconv.Atoi(getCell(row, 0))
		stop, err2 := strconv.Atoi(getCell(row, 1))
		if err1 != nil || err2 != nil {
			if i > 0 {
				b.warn("Topology row %d: expected start and stop residues, skipping", i+1)
			}
			continue
		}
		b.boundaries = append(b.boundaries, start, stop)
	}
}
