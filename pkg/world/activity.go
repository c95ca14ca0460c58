package world

import (
	"github.com/jwebster45206/npc-engine/pkg/condition"
	"github.com/jwebster45206/npc-engine/pkg/effect"
)

// ActivityCategory groups activities for preference weighting.
type ActivityCategory struct {
	ID            string  `json:"id" yaml:"id"`
	Label         string  `json:"label" yaml:"label"`
	DefaultWeight float64 `json:"default_weight" yaml:"default_weight"` // 0-1
}

// Requirements gate whether an activity is a valid candidate for an
// NPC right now. All present requirements must hold; a failed hard
// requirement removes the candidate entirely, it is never just scored
// down.
type Requirements struct {
	MinEnergy *float64 `json:"min_energy,omitempty" yaml:"min_energy,omitempty"`
	MaxEnergy *float64 `json:"max_energy,omitempty" yaml:"max_energy,omitempty"`

	TimeOfDay []string `json:"time_of_day,omitempty" yaml:"time_of_day,omitempty"`
	MoodTags  []string `json:"mood_tags,omitempty" yaml:"mood_tags,omitempty"`

	Conditions []condition.Condition `json:"conditions,omitempty" yaml:"conditions,omitempty"`
}

// Activity is an authored, reusable thing an NPC can do. Config-time
// only; never mutated during simulation.
type Activity struct {
	ID       string `json:"id" yaml:"id"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	Category string `json:"category" yaml:"category"`

	Requirements *Requirements  `json:"requirements,omitempty" yaml:"requirements,omitempty"`
	Effects      *effect.Effects `json:"effects,omitempty" yaml:"effects,omitempty"`

	// MinDuration freezes the NPC's current activity after selection;
	// Cooldown blocks re-selection after exit. Both in simulated
	// seconds.
	MinDuration float64 `json:"min_duration_s,omitempty" yaml:"min_duration_s,omitempty"`
	Cooldown    float64 `json:"cooldown_s,omitempty" yaml:"cooldown_s,omitempty"`

	BasePriority float64 `json:"base_priority,omitempty" yaml:"base_priority,omitempty"`

	// MoodTags describe the mood the activity suits, for the
	// mood-compatibility scoring factor.
	MoodTags []string `json:"mood_tags,omitempty" yaml:"mood_tags,omitempty"`

	// TraitAffinity maps trait name -> affinity in [-1,1] for the
	// trait-modifier scoring factor.
	TraitAffinity map[string]float64 `json:"trait_affinity,omitempty" yaml:"trait_affinity,omitempty"`

	// TargetNPC names the NPC the activity involves, if any, for the
	// relationship-bonus scoring factor. May be a role alias.
	TargetNPC string `json:"target_npc,omitempty" yaml:"target_npc,omitempty"`
}

// Priority returns the activity's base priority, defaulting to 1.
func (a *Activity) Priority() float64 {
	if a.BasePriority <= 0 {
		return 1
	}
	return a.BasePriority
}
