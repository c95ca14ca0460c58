package sim

import "github.com/jwebster45206/npc-engine/pkg/effect"

// TickReport is the per-tick diagnostic output: who ran, at what
// detail, what was applied, and anything that degraded. Collaborators
// (telemetry, UI) consume this instead of re-deriving state.
type TickReport struct {
	Tick      uint64  `json:"tick"`
	WorldTime float64 `json:"world_time"`

	Scheduled []ScheduledNPC `json:"scheduled,omitempty"`

	// Logs maps NPC id -> applied effects for this tick.
	Logs map[string]*effect.Log `json:"logs,omitempty"`

	// Fallbacks and Frozen list NPC ids whose decision degraded or
	// short-circuited.
	Fallbacks []string `json:"fallbacks,omitempty"`
	Frozen    []string `json:"frozen,omitempty"`

	Warnings []string `json:"warnings,omitempty"`

	// ClampCount is the running clamp total after this tick, for
	// tuning visibility.
	ClampCount uint64 `json:"clamp_count"`
}
