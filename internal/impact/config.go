package impact

// IntensityMultipliers weight an item's sentiment score by the intensity
// grade of its label before aggregation.
type IntensityMultipliers struct {
	Strongly   float64
	Moderately float64
	Slightly   float64
}

// ConfidenceCaps bound the reported confidence per chosen intensity grade.
type ConfidenceCaps struct {
	Strongly   float64
	Moderately float64
	Slightly   float64
}

// Config holds the tunables of the rule-based scorer.
type Config struct {
	Multipliers IntensityMultipliers
	Caps        ConfidenceCaps
}

// DefaultConfig returns the canonical scoring parameters.
func DefaultConfig() Config {
	return Config{
		Multipliers: IntensityMultipliers{
			Strongly:   1.2,
			Moderately: 1.0,
			Slightly:   0.8,
		},
		Caps: ConfidenceCaps{
			Strongly:   0.95,
			Moderately: 0.90,
			Slightly:   0.85,
		},
	}
}

// EnsembleConfig holds the tunables of the verdict combiner. The learned
// verdict gets LearnedWeightHigh when its confidence exceeds
// HighConfidenceCutoff, LearnedWeightLow otherwise; the rule-based verdict
// gets the complement.
type EnsembleConfig struct {
	LearnedWeightHigh    float64
	LearnedWeightLow     float64
	HighConfidenceCutoff float64
}

// DefaultEnsembleConfig returns the canonical combination weights.
func DefaultEnsembleConfig() EnsembleConfig {
	return EnsembleConfig{
		LearnedWeightHigh:    0.7,
		LearnedWeightLow:     0.5,
		HighConfidenceCutoff: 0.6,
	}
}
