package condition

// Condition kind tags. A Condition is discriminated by its Type field;
// only the fields relevant to that type are populated.
const (
	TypeRelationshipGT = "relationship_gt"
	TypeFlagEquals     = "flag_equals"
	TypeEnergyBetween  = "energy_between"
	TypeMoodIn         = "mood_in"
	TypeTimeOfDayIn    = "time_of_day_in"
	TypeRandomChance   = "random_chance"
	TypeCustom         = "custom"
	TypeAllOf          = "all_of"
	TypeAnyOf          = "any_of"
)

// Condition is a predicate over NPC and world state. Conditions are
// authored in world config and evaluated every decision; evaluation is
// total — an unknown or malformed condition is false, never an error.
type Condition struct {
	Type string `json:"type" yaml:"type"`

	// relationship_gt: metric toward target exceeds threshold.
	// Target may be an NPC id or a session role alias.
	Target    string  `json:"target,omitempty" yaml:"target,omitempty"`
	Metric    string  `json:"metric,omitempty" yaml:"metric,omitempty"`
	Threshold float64 `json:"threshold,omitempty" yaml:"threshold,omitempty"`

	// flag_equals
	Flag  string `json:"flag,omitempty" yaml:"flag,omitempty"`
	Value any    `json:"value,omitempty" yaml:"value,omitempty"`

	// energy_between: nil bound means unbounded on that side.
	MinEnergy *float64 `json:"min_energy,omitempty" yaml:"min_energy,omitempty"`
	MaxEnergy *float64 `json:"max_energy,omitempty" yaml:"max_energy,omitempty"`

	// mood_in / time_of_day_in
	Tags    []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Buckets []string `json:"buckets,omitempty" yaml:"buckets,omitempty"`

	// random_chance: probability in [0,1], drawn from the caller's
	// deterministic per-tick stream.
	Chance float64 `json:"chance,omitempty" yaml:"chance,omitempty"`

	// custom: dispatched through the process-wide registry.
	ID     string         `json:"id,omitempty" yaml:"id,omitempty"`
	Params map[string]any `json:"params,omitempty" yaml:"params,omitempty"`

	// all_of / any_of composite groups, short-circuit left to right.
	Conditions []Condition `json:"conditions,omitempty" yaml:"conditions,omitempty"`
}
