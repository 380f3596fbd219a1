package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/HelixPack/internal/model"
)

// ArchiveVersion is written into every result archive.
const ArchiveVersion = "1.0.0"

// ResultArchive is the top-level structure of a saved run: the report plus
// the settings that produced it.
type ResultArchive struct {
	Version   string         `json:"version"`
	CreatedAt string         `json:"created_at"`
	Settings  model.Settings `json:"settings"`
	Report    model.Report   `json:"report"`
}

// SaveResults writes the report and settings to a single JSON file at the
// specified path.
func SaveResults(path string, report model.Report, settings model.Settings) error {
	archive := ResultArchive{
		Version:   ArchiveVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Settings:  settings,
		Report:    report,
	}
	data, err := json.MarshalIndent(archive, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create results directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}
	return nil
}

// LoadResults reads a result archive written by SaveResults.
func LoadResults(path string) (ResultArchive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ResultArchive{}, fmt.Errorf("failed to read results file: %w", err)
	}
	var archive ResultArchive
	if err := json.Unmarshal(data, &archive); err != nil {
		return ResultArchive{}, fmt.Errorf("failed to parse results file: %w", err)
	}
	if archive.Version == "" {
		return ResultArchive{}, fmt.Errorf("invalid results file: missing version field")
	}
	return archive, nil
}
