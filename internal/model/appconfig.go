package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to every run
	Settings Settings `yaml:"settings"`

	// Seed for the rotation optimizer; 0 derives one from clock, host and pid
	Seed int64 `yaml:"seed"`

	// Output preferences
	Verbose       bool     `yaml:"verbose"`
	PDFPath       string   `yaml:"pdf_path"`  // Empty = no PDF
	DXFPath       string   `yaml:"dxf_path"`  // Empty = no DXF
	JSONPath      string   `yaml:"json_path"` // Empty = no result archive
	RecentInputs  []string `yaml:"recent_inputs"`
	MaxRecentKept int      `yaml:"max_recent_kept"`
}

// DefaultAppConfig returns an AppConfig populated with DefaultSettings().
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Settings:      DefaultSettings(),
		Seed:          0,
		RecentInputs:  []string{},
		MaxRecentKept: 10,
	}
}

// ApplyToSettings copies the configured defaults into s, leaving zero-valued
// config fields untouched so partial config files keep the built-in values.
func (c AppConfig) ApplyToSettings(s *Settings) {
	src := c.Settings
	if src.PopulationSize > 0 {
		s.PopulationSize = src.PopulationSize
	}
	if src.MutationRate > 0 {
		s.MutationRate = src.MutationRate
	}
	if src.CrossoverRate > 0 {
		s.CrossoverRate = src.CrossoverRate
	}
	if src.GeneSwapRate > 0 {
		s.GeneSwapRate = src.GeneSwapRate
	}
	if src.MutationScale > 0 {
		s.MutationScale = src.MutationScale
	}
	if src.MutationScaleFactor > 0 {
		s.MutationScaleFactor = src.MutationScaleFactor
	}
	if src.StagnationGenerations > 0 {
		s.StagnationGenerations = src.StagnationGenerations
	}
	if src.MaxAngle > src.MinAngle {
		s.MinAngle = src.MinAngle
		s.MaxAngle = src.MaxAngle
	}
	if src.Workers > 0 {
		s.Workers = src.Workers
	}
	if src.HelixRadius > 0 {
		s.HelixRadius = src.HelixRadius
	}
	if src.ResidueStep > 0 {
		s.ResidueStep = src.ResidueStep
	}
	if src.SymmetryMinHelices > 0 {
		s.SymmetryMinHelices = src.SymmetryMinHelices
	}
	if src.EdgeLength > 0 {
		s.EdgeLength = src.EdgeLength
	}
	if src.EdgeWeight > 0 {
		s.EdgeWeight = src.EdgeWeight
	}
	if src.RandomLayoutSize > 0 {
		s.RandomLayoutSize = src.RandomLayoutSize
	}
	if src.LayoutTolerance > 0 {
		s.LayoutTolerance = src.LayoutTolerance
	}
	if src.LayoutMaxIters > 0 {
		s.LayoutMaxIters = src.LayoutMaxIters
	}
	if src.SpringMinHelices > 0 {
		s.SpringMinHelices = src.SpringMinHelices
	}
	if src.RandomLayoutCount > 0 {
		s.RandomLayoutCount = src.RandomLayoutCount
	}
}

// AddRecentInput records path at the front of RecentInputs, dropping
// duplicates and trimming to MaxRecentKept.
func (c *AppConfig) AddRecentInput(path string) {
	recent := []string{path}
	for _, p := range c.RecentInputs {
		if p != path {
			recent = append(recent, p)
		}
	}
	limit := c.MaxRecentKept
	if limit <= 0 {
		limit = 10
	}
	if len(recent) > limit {
		recent = recent[:limit]
	}
	c.RecentInputs = recent
}
