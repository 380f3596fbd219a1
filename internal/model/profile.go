package model

// SearchProfile is a named set of optimizer and layout settings.
type SearchProfile struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	IsBuiltIn   bool     `json:"-" yaml:"-"`
	Settings    Settings `json:"settings" yaml:"settings"`
}

// SearchProfiles holds the built-in profiles. "Standard" matches DefaultSettings.
var SearchProfiles = []SearchProfile{
	{
		Name:        "Quick",
		Description: "Small population, early stop",
		IsBuiltIn:   true,
		Settings: func() Settings {
			s := DefaultSettings()
			s.PopulationSize = 30
			s.StagnationGenerations = 20
			return s
		}(),
	},
	{
		Name:        "Standard",
		Description: "Default search",
		IsBuiltIn:   true,
		Settings:    DefaultSettings(),
	},
	{
		Name:        "Thorough",
		Description: "Large population, patient stop, swaps explored from four helices",
		IsBuiltIn:   true,
		Settings: func() Settings {
			s := DefaultSettings()
			s.PopulationSize = 120
			s.StagnationGenerations = 150
			s.MutationScaleFactor = 0.995
			s.SymmetryMinHelices = 4
			return s
		}(),
	},
}

// AllSearchProfiles returns the built-in profiles followed by custom ones.
func AllSearchProfiles(custom []SearchProfile) []SearchProfile {
	all := make([]SearchProfile, 0, len(SearchProfiles)+len(custom))
	all = append(all, SearchProfiles...)
	return append(all, custom...)
}

// FindSearchProfile looks a profile up by name. Custom profiles shadow
// built-in ones of the same name.
func FindSearchProfile(name string, custom []SearchProfile) (SearchProfile, bool) {
	for _, p := range custom {
		if p.Name == name {
			return p, true
		}
	}
	for _, p := range SearchProfiles {
		if p.Name == name {
			return p, true
		}
	}
	return SearchProfile{}, false
}

// SearchProfileNames lists built-in and custom profile names.
func SearchProfileNames(custom []SearchProfile) []string {
	var names []string
	for _, p := range AllSearchProfiles(custom) {
		names = append(names, p.Name)
	}
	return names
}

// ApplyTo copies into s every setting the profile changes from
// DefaultSettings. Settings the profile leaves at their defaults keep the
// value already in s, so a profile layers over the configured settings.
func (p SearchProfile) ApplyTo(s *Settings) {
	src, def := p.Settings, DefaultSettings()

	overlay(&s.PopulationSize, src.PopulationSize, def.PopulationSize)
	overlay(&s.MutationRate, src.MutationRate, def.MutationRate)
	overlay(&s.CrossoverRate, src.CrossoverRate, def.CrossoverRate)
	overlay(&s.GeneSwapRate, src.GeneSwapRate, def.GeneSwapRate)
	overlay(&s.MutationScale, src.MutationScale, def.MutationScale)
	overlay(&s.MutationScaleFactor, src.MutationScaleFactor, def.MutationScaleFactor)
	overlay(&s.StagnationGenerations, src.StagnationGenerations, def.StagnationGenerations)
	// The angle range moves as a pair
	if src.MinAngle != def.MinAngle || src.MaxAngle != def.MaxAngle {
		s.MinAngle = src.MinAngle
		s.MaxAngle = src.MaxAngle
	}
	overlay(&s.Workers, src.Workers, def.Workers)
	overlay(&s.HelixRadius, src.HelixRadius, def.HelixRadius)
	overlay(&s.ResidueStep, src.ResidueStep, def.ResidueStep)
	overlay(&s.SymmetryMinHelices, src.SymmetryMinHelices, def.SymmetryMinHelices)
	overlay(&s.EdgeLength, src.EdgeLength, def.EdgeLength)
	overlay(&s.EdgeWeight, src.EdgeWeight, def.EdgeWeight)
	overlay(&s.RandomLayoutSize, src.RandomLayoutSize, def.RandomLayoutSize)
	overlay(&s.LayoutTolerance, src.LayoutTolerance, def.LayoutTolerance)
	overlay(&s.LayoutMaxIters, src.LayoutMaxIters, def.LayoutMaxIters)
	overlay(&s.SpringMinHelices, src.SpringMinHelices, def.SpringMinHelices)
	overlay(&s.RandomLayoutCount, src.RandomLayoutCount, def.RandomLayoutCount)
}

func overlay[T comparable](dst *T, v, def T) {
	if v != def {
		*dst = v
	}
}
