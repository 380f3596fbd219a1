package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/HelixPack/internal/model"
)

func TestSaveAndLoadCustomProfiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.yaml")

	fast := model.DefaultSettings()
	fast.PopulationSize = 16
	wide := model.DefaultSettings()
	wide.EdgeLength = 700

	profiles := []model.SearchProfile{
		{Name: "Fast", Description: "Tiny population", IsBuiltIn: true, Settings: fast},
		{Name: "Wide", Description: "Longer springs", Settings: wide},
	}

	if err := SaveCustomProfiles(path, profiles); err != nil {
		t.Fatalf("SaveCustomProfiles: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("profiles file was not created")
	}

	loaded, err := LoadCustomProfiles(path)
	if err != nil {
		t.Fatalf("LoadCustomProfiles: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(loaded))
	}
	if loaded[0].Name != "Fast" || loaded[0].Settings.PopulationSize != 16 {
		t.Errorf("unexpected first profile %+v", loaded[0])
	}
	if loaded[1].Settings.EdgeLength != 700 {
		t.Errorf("expected EdgeLength=700, got %f", loaded[1].Settings.EdgeLength)
	}

	// Built-in marks never survive a round trip
	if loaded[0].IsBuiltIn {
		t.Error("loaded profile should not be marked as built-in")
	}
}

func TestLoadCustomProfilesPartialSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	data := []byte("- name: Patient\n  settings:\n    stagnation_generations: 300\n- name: Bare\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadCustomProfiles(path)
	if err != nil {
		t.Fatalf("LoadCustomProfiles: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(loaded))
	}

	defaults := model.DefaultSettings()
	if loaded[0].Settings.StagnationGenerations != 300 {
		t.Errorf("expected StagnationGenerations=300, got %d", loaded[0].Settings.StagnationGenerations)
	}
	if loaded[0].Settings.PopulationSize != defaults.PopulationSize {
		t.Errorf("expected default PopulationSize, got %d", loaded[0].Settings.PopulationSize)
	}
	if loaded[1].Settings != defaults {
		t.Errorf("profile without settings should use defaults, got %+v", loaded[1].Settings)
	}
}

func TestLoadCustomProfilesNonExistent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent.yaml")

	profiles, err := LoadCustomProfiles(path)
	if err != nil {
		t.Fatalf("expected no error for nonexistent file, got: %v", err)
	}
	if len(profiles) != 0 {
		t.Fatalf("expected 0 profiles for nonexistent file, got %d", len(profiles))
	}
}

func TestLoadCustomProfilesInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("not a list"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadCustomProfiles(path); err == nil {
		t.Fatal("expected error for invalid profiles file")
	}
}

func TestLoadCustomProfilesMissingName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noname.yaml")
	if err := os.WriteFile(path, []byte("- description: nameless\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadCustomProfiles(path); err == nil {
		t.Fatal("expected error for profile without a name")
	}
}

func TestLoadCustomProfilesInvalidSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	data := []byte("- name: Bad\n  settings:\n    min_angle: 10\n    max_angle: 5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadCustomProfiles(path)
	if !errors.Is(err, model.ErrInvalidSettings) {
		t.Errorf("expected ErrInvalidSettings, got %v", err)
	}
}
