package effect

// MoodImpact is an additive valence/arousal shift, clamped after apply.
type MoodImpact struct {
	Valence float64 `json:"valence,omitempty" yaml:"valence,omitempty"`
	Arousal float64 `json:"arousal,omitempty" yaml:"arousal,omitempty"`
}

// CustomEffect dispatches through the process-wide handler registry.
// An unregistered type is a no-op plus a warning, never fatal.
type CustomEffect struct {
	Type   string         `json:"type" yaml:"type"`
	Params map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
}

// Effects describes the consequences of an activity.
//
// EnergyDeltaPerHour is scaled by elapsed simulated time on every
// application, so short and long activities accrue proportionally.
// Mood, relationship, flag, and custom effects fire once, when the
// activity is selected.
type Effects struct {
	EnergyDeltaPerHour float64     `json:"energy_delta_per_hour,omitempty" yaml:"energy_delta_per_hour,omitempty"`
	MoodImpact         *MoodImpact `json:"mood_impact,omitempty" yaml:"mood_impact,omitempty"`

	// RelationshipChanges maps target NPC id -> metric -> additive
	// delta, applied to the acting NPC's edge toward the target.
	RelationshipChanges map[string]map[string]float64 `json:"relationship_changes,omitempty" yaml:"relationship_changes,omitempty"`

	// FlagsSet overwrites session flags key by key.
	FlagsSet map[string]any `json:"flags_set,omitempty" yaml:"flags_set,omitempty"`

	Custom []CustomEffect `json:"custom_effects,omitempty" yaml:"custom_effects,omitempty"`
}

// IsZero reports whether the effects carry nothing to apply.
func (e *Effects) IsZero() bool {
	return e == nil ||
		(e.EnergyDeltaPerHour == 0 && e.MoodImpact == nil &&
			len(e.RelationshipChanges) == 0 && len(e.FlagsSet) == 0 && len(e.Custom) == 0)
}
