package world

// ScoringWeights is the global weight vector combining the eight
// scoring factors. World-scoped, config-time only.
type ScoringWeights struct {
	BaseWeight         float64 `json:"base_weight" yaml:"base_weight"`
	ActivityPreference float64 `json:"activity_preference" yaml:"activity_preference"`
	CategoryPreference float64 `json:"category_preference" yaml:"category_preference"`
	TraitModifier      float64 `json:"trait_modifier" yaml:"trait_modifier"`
	MoodCompatibility  float64 `json:"mood_compatibility" yaml:"mood_compatibility"`
	RelationshipBonus  float64 `json:"relationship_bonus" yaml:"relationship_bonus"`
	Urgency            float64 `json:"urgency" yaml:"urgency"`
	Inertia            float64 `json:"inertia" yaml:"inertia"`
}

// ScoringConfig holds the world's scoring weights.
type ScoringConfig struct {
	Version int            `json:"version,omitempty" yaml:"version,omitempty"`
	Weights ScoringWeights `json:"weights" yaml:"weights"`
}

// DefaultScoringConfig returns a balanced weight vector for worlds
// that do not tune scoring.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Version: 1,
		Weights: ScoringWeights{
			BaseWeight:         1.0,
			ActivityPreference: 1.0,
			CategoryPreference: 0.5,
			TraitModifier:      0.5,
			MoodCompatibility:  0.5,
			RelationshipBonus:  0.5,
			Urgency:            1.0,
			Inertia:            0.3,
		},
	}
}
