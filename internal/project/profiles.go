package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/HelixPack/internal/model"
)

// DefaultProfilesPath returns the default file path for custom search profiles.
func DefaultProfilesPath() string {
	return filepath.Join(DefaultConfigDir(), "profiles.yaml")
}

// SaveCustomProfiles saves custom profiles to a YAML file.
func SaveCustomProfiles(path string, profiles []model.SearchProfile) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(profiles)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCustomProfiles loads custom profiles from a YAML file.
// Returns an empty slice if the file does not exist. Settings missing from a
// profile keep their default values.
func LoadCustomProfiles(path string) ([]model.SearchProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.SearchProfile{}, nil
		}
		return nil, err
	}

	var raw []struct {
		Name        string    `yaml:"name"`
		Description string    `yaml:"description"`
		Settings    yaml.Node `yaml:"settings"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse profiles %s: %w", path, err)
	}

	profiles := make([]model.SearchProfile, 0, len(raw))
	for i, r := range raw {
		if r.Name == "" {
			return nil, fmt.Errorf("profile %d in %s has no name", i+1, path)
		}
		p := model.SearchProfile{Name: r.Name, Description: r.Description, Settings: model.DefaultSettings()}
		if !r.Settings.IsZero() {
			if err := r.Settings.Decode(&p.Settings); err != nil {
				return nil, fmt.Errorf("profile %s: %w", r.Name, err)
			}
		}
		if err := p.Settings.Validate(); err != nil {
			return nil, fmt.Errorf("profile %s in %s: %w", r.Name, path, err)
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}
