package world

import "github.com/jwebster45206/npc-engine/pkg/effect"

// CurrentVersion is the config shape this engine understands. The
// loader rejects files authored against a newer version; forward
// migration is the loader's caller's responsibility, never the
// engine's.
const CurrentVersion = 1

// IdleActivityID is the built-in zero-effect fallback used when a
// world declares no fallback activity.
const IdleActivityID = "idle"

// WorldDef bundles every config-time entity for one world. Authored
// offline, loaded once, immutable for the life of a running
// simulation; a reload produces a new snapshot, never an in-place
// mutation.
type WorldDef struct {
	Version int    `json:"version" yaml:"version"`
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`

	// Seed is the default session seed for deterministic RNG streams.
	Seed uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`

	Categories map[string]ActivityCategory `json:"categories" yaml:"categories"`
	Activities map[string]Activity         `json:"activities" yaml:"activities"`
	Routines   map[string]RoutineGraph     `json:"routines" yaml:"routines"`
	NPCs       map[string]NPCDef           `json:"npcs" yaml:"npcs"`

	Scoring    ScoringConfig    `json:"scoring" yaml:"scoring"`
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// RelationshipMetrics declares clamp ranges per metric name.
	// Undeclared metrics use the default [-100, 100] range.
	RelationshipMetrics map[string]effect.MetricRange `json:"relationship_metrics,omitempty" yaml:"relationship_metrics,omitempty"`
}

// Activity returns an activity by id. The built-in idle activity is
// always resolvable even when the world does not define it.
func (w *WorldDef) Activity(id string) (*Activity, bool) {
	if a, ok := w.Activities[id]; ok {
		return &a, true
	}
	if id == IdleActivityID {
		return &Activity{ID: IdleActivityID, Label: "Idle", MinDuration: 60}, true
	}
	return nil, false
}

// FallbackActivityID returns the configured fallback, or the built-in
// idle activity.
func (w *WorldDef) FallbackActivityID() string {
	if w.Simulation.FallbackActivityID != "" {
		return w.Simulation.FallbackActivityID
	}
	return IdleActivityID
}

// Routine returns a routine graph by id.
func (w *WorldDef) Routine(id string) (*RoutineGraph, bool) {
	if r, ok := w.Routines[id]; ok {
		return &r, true
	}
	return nil, false
}

// CategoryWeight returns a category's default weight, neutral 1.0 when
// the category is unknown.
func (w *WorldDef) CategoryWeight(id string) float64 {
	if c, ok := w.Categories[id]; ok {
		return c.DefaultWeight
	}
	return 1.0
}
