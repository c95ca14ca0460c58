package world

import "github.com/jwebster45206/npc-engine/pkg/condition"

// Detail levels per simulation tier.
const (
	// DetailFull runs the complete decide pipeline.
	DetailFull = "full"
	// DetailSimplified skips the relationship-bonus and trait-modifier
	// scoring terms.
	DetailSimplified = "simplified"
	// DetailScheduleOnly bypasses scoring and takes the routine's
	// highest-weight surviving candidate directly.
	DetailScheduleOnly = "schedule_only"
)

// Tier is one scheduling bucket. TickFrequency is the minimum simulated
// seconds between full evaluations for NPCs in the tier.
type Tier struct {
	ID            string  `json:"id" yaml:"id"`
	TickFrequency float64 `json:"tick_frequency_s" yaml:"tick_frequency_s"`
	DetailLevel   string  `json:"detail_level" yaml:"detail_level"`
}

// PriorityRule assigns a tier when its conditions hold. Rules are an
// explicit ordered list evaluated top to bottom, first match wins;
// the ordering is a documented contract independent of any map
// iteration order.
type PriorityRule struct {
	Tier string                `json:"tier" yaml:"tier"`
	When []condition.Condition `json:"when,omitempty" yaml:"when,omitempty"`
}

// SimulationConfig is the world's performance policy. Config-time only.
type SimulationConfig struct {
	Version int `json:"version,omitempty" yaml:"version,omitempty"`

	Tiers         []Tier         `json:"tiers" yaml:"tiers"`
	PriorityRules []PriorityRule `json:"priority_rules,omitempty" yaml:"priority_rules,omitempty"`
	DefaultTier   string         `json:"default_tier" yaml:"default_tier"`

	// MaxNPCsPerTick caps how many NPCs receive any evaluation in one
	// tick. Zero means uncapped.
	MaxNPCsPerTick int `json:"max_npcs_per_tick,omitempty" yaml:"max_npcs_per_tick,omitempty"`

	// FallbackActivityID is selected when filtering leaves no
	// candidates. Empty means the built-in idle activity.
	FallbackActivityID string `json:"fallback_activity_id,omitempty" yaml:"fallback_activity_id,omitempty"`
}

// TierByID returns the tier with the given id, or nil.
func (sc *SimulationConfig) TierByID(id string) *Tier {
	for i := range sc.Tiers {
		if sc.Tiers[i].ID == id {
			return &sc.Tiers[i]
		}
	}
	return nil
}
