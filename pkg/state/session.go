package state

import (
	"time"

	"github.com/google/uuid"
)

// PreferenceOverrides are the session layer of the preference cascade.
// Keys present here win over NPC preferences and routine defaults.
// Story or designer tooling sets these; the engine only reads them.
type PreferenceOverrides struct {
	ActivityWeights map[string]float64 `json:"activity_weights,omitempty"`
	CategoryWeights map[string]float64 `json:"category_weights,omitempty"`
}

// Session is the live state of one simulated world session. Config
// entities stay in the WorldDef; everything mutable lives here, and
// within a tick only the apply phase writes to it.
type Session struct {
	ID      uuid.UUID `json:"id"`
	WorldID string    `json:"world_id"`

	// Seed is the base of every deterministic RNG stream for this
	// session. Per-NPC decision streams derive from (Seed, Tick, NPCID).
	Seed uint64 `json:"seed"`

	Tick      uint64  `json:"tick"`
	WorldTime float64 `json:"world_time"`

	Flags map[string]any `json:"flags,omitempty"`

	// Aliases maps role names (e.g. "rival", "mayor") to NPC ids for
	// relationship conditions.
	Aliases map[string]string `json:"aliases,omitempty"`

	// Overrides maps NPC id -> session preference overrides. A nil or
	// missing entry means no session layer for that NPC.
	Overrides map[string]*PreferenceOverrides `json:"overrides,omitempty"`

	NPCs map[string]*NPCRuntimeState `json:"npcs"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession creates an empty session for a world.
func NewSession(worldID string, seed uint64) *Session {
	return &Session{
		ID:        uuid.New(),
		WorldID:   worldID,
		Seed:      seed,
		Flags:     make(map[string]any),
		Aliases:   make(map[string]string),
		Overrides: make(map[string]*PreferenceOverrides),
		NPCs:      make(map[string]*NPCRuntimeState),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// NPC returns the runtime state for an id, creating it on first use.
// NPCs are never deleted mid-session.
func (s *Session) NPC(id string) *NPCRuntimeState {
	if s.NPCs == nil {
		s.NPCs = make(map[string]*NPCRuntimeState)
	}
	if n, ok := s.NPCs[id]; ok {
		return n
	}
	n := NewNPCRuntimeState(id)
	s.NPCs[id] = n
	return n
}

// Flag implements condition.WorldView.
func (s *Session) Flag(key string) (any, bool) {
	v, ok := s.Flags[key]
	return v, ok
}

// TimeOfDayBucket implements condition.WorldView.
func (s *Session) TimeOfDayBucket() string {
	return TimeOfDayBucket(s.WorldTime)
}

// ResolveTarget implements condition.WorldView. Unknown aliases resolve
// to themselves so plain NPC ids pass through.
func (s *Session) ResolveTarget(target string) string {
	if id, ok := s.Aliases[target]; ok {
		return id
	}
	return target
}

// OverridesFor returns the session preference overrides for an NPC,
// or nil when none are set.
func (s *Session) OverridesFor(npcID string) *PreferenceOverrides {
	if s.Overrides == nil {
		return nil
	}
	return s.Overrides[npcID]
}
