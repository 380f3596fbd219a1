package model

import (
	"errors"
	"testing"
)

func TestDefaultSettingsValidate(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Errorf("default settings rejected: %v", err)
	}
	for _, p := range SearchProfiles {
		if err := p.Settings.Validate(); err != nil {
			t.Errorf("profile %s rejected: %v", p.Name, err)
		}
	}
}

func TestSettingsValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"inverted angles", func(s *Settings) { s.MinAngle, s.MaxAngle = 10, 5 }},
		{"empty angle range", func(s *Settings) { s.MinAngle, s.MaxAngle = 90, 90 }},
		{"angle above 359", func(s *Settings) { s.MaxAngle = 720 }},
		{"negative angle", func(s *Settings) { s.MinAngle = -10 }},
		{"no population", func(s *Settings) { s.PopulationSize = 0 }},
		{"no stagnation limit", func(s *Settings) { s.StagnationGenerations = 0 }},
		{"no workers", func(s *Settings) { s.Workers = 0 }},
		{"mutation rate above 1", func(s *Settings) { s.MutationRate = 1.5 }},
		{"negative crossover rate", func(s *Settings) { s.CrossoverRate = -0.1 }},
		{"negative mutation scale", func(s *Settings) { s.MutationScale = -1 }},
		{"zero helix radius", func(s *Settings) { s.HelixRadius = 0 }},
		{"negative edge length", func(s *Settings) { s.EdgeLength = -590 }},
		{"zero tolerance", func(s *Settings) { s.LayoutTolerance = 0 }},
		{"no layout iterations", func(s *Settings) { s.LayoutMaxIters = 0 }},
		{"negative threshold", func(s *Settings) { s.SymmetryMinHelices = -1 }},
	}
	for _, tc := range cases {
		s := DefaultSettings()
		tc.mutate(&s)
		err := s.Validate()
		if !errors.Is(err, ErrInvalidSettings) {
			t.Errorf("%s: expected ErrInvalidSettings, got %v", tc.name, err)
		}
	}
}

func TestSettingsValidateAcceptsNarrowRange(t *testing.T) {
	s := DefaultSettings()
	s.MinAngle, s.MaxAngle = 0, 1
	s.MutationRate, s.CrossoverRate, s.GeneSwapRate = 0, 1, 0
	if err := s.Validate(); err != nil {
		t.Errorf("expected valid settings, got %v", err)
	}
}
