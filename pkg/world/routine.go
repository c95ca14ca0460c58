package world

import "github.com/jwebster45206/npc-engine/pkg/condition"

// Routine node types. A RoutineNode is discriminated by its Type field.
const (
	NodeTimeSlot = "time_slot"
	NodeDecision = "decision"
	NodeActivity = "activity"
)

// WeightedActivity is one candidate offered by a routine node. Optional
// conditions gate the entry on top of the activity's own requirements.
type WeightedActivity struct {
	ActivityID string                `json:"activity_id" yaml:"activity_id"`
	Weight     float64               `json:"weight" yaml:"weight"`
	Conditions []condition.Condition `json:"conditions,omitempty" yaml:"conditions,omitempty"`
}

// RoutineNode is one node of a routine graph.
//
// time_slot nodes match when minutes-of-day falls in [Start, End); the
// range may wrap past midnight. decision nodes match when their guard
// conditions hold; among simultaneously matching decision nodes the
// first in declaration order wins — that ordering is part of the
// contract, not an accident of iteration. activity nodes are degenerate
// single-candidate nodes.
type RoutineNode struct {
	ID   string `json:"id" yaml:"id"`
	Type string `json:"type" yaml:"type"`

	// time_slot: minutes past midnight.
	Start float64 `json:"start,omitempty" yaml:"start,omitempty"`
	End   float64 `json:"end,omitempty" yaml:"end,omitempty"`

	// decision
	Conditions []condition.Condition `json:"conditions,omitempty" yaml:"conditions,omitempty"`

	// activity: the single candidate.
	ActivityID string  `json:"activity_id,omitempty" yaml:"activity_id,omitempty"`
	Weight     float64 `json:"weight,omitempty" yaml:"weight,omitempty"`

	PreferredActivities []WeightedActivity `json:"preferred_activities,omitempty" yaml:"preferred_activities,omitempty"`
}

// Candidates returns the node's candidate list. Activity nodes yield
// their single entry; other nodes yield their preferred activities.
func (n *RoutineNode) Candidates() []WeightedActivity {
	if n.Type == NodeActivity {
		w := n.Weight
		if w <= 0 {
			w = 1
		}
		return []WeightedActivity{{ActivityID: n.ActivityID, Weight: w}}
	}
	return n.PreferredActivities
}

// PreferenceSet is the routine-default layer of the preference cascade.
// Routines commonly set only a subset of keys; absent keys fall through
// to the next layer.
type PreferenceSet struct {
	ActivityWeights map[string]float64 `json:"activity_weights,omitempty" yaml:"activity_weights,omitempty"`
	CategoryWeights map[string]float64 `json:"category_weights,omitempty" yaml:"category_weights,omitempty"`
}

// RoutineGraph defines when activities become available for the NPCs
// that follow it. Config-time only.
type RoutineGraph struct {
	ID                 string         `json:"id" yaml:"id"`
	Version            int            `json:"version,omitempty" yaml:"version,omitempty"`
	Nodes              []RoutineNode  `json:"nodes" yaml:"nodes"`
	DefaultPreferences *PreferenceSet `json:"default_preferences,omitempty" yaml:"default_preferences,omitempty"`
}
