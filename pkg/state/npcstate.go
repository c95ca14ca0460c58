package state

import "math"

// Energy bounds. Energy is clamped to [0, 100] after every effect
// application.
const (
	EnergyMin = 0.0
	EnergyMax = 100.0
)

// NPCRuntimeState is the only entity mutated during simulation. Config
// entities (activities, routines, scoring) are immutable for the life
// of a running world; everything that changes tick to tick lives here.
type NPCRuntimeState struct {
	NPCID string `json:"npc_id"`

	CurrentActivityID string  `json:"current_activity_id,omitempty"`
	ActivityStart     float64 `json:"activity_start,omitempty"`
	NextDecisionTime  float64 `json:"next_decision_time,omitempty"`

	EnergyLevel float64 `json:"energy"`
	Mood        Mood    `json:"mood"`

	// Traits are copied from the NPC definition when the NPC enters
	// simulation so the runtime record is self-contained.
	Traits map[string]float64 `json:"traits,omitempty"`

	Flags map[string]any `json:"flags,omitempty"`

	// Relationships maps target NPC id -> metric name -> value.
	Relationships map[string]map[string]float64 `json:"relationships,omitempty"`

	History *ActivityHistory `json:"history,omitempty"`

	// LastExited maps activity id -> world time the NPC last left that
	// activity. Drives cooldown filtering.
	LastExited map[string]float64 `json:"last_exited,omitempty"`

	// LastEvaluated is the world time of the last full scheduler pass
	// for this NPC. The scheduler orders eligible NPCs oldest-first on
	// this field so a tick cap never starves the same NPCs every tick.
	LastEvaluated float64 `json:"last_evaluated,omitempty"`
}

// NewNPCRuntimeState creates runtime state for an NPC entering
// simulation, with full energy and a neutral mood.
func NewNPCRuntimeState(npcID string) *NPCRuntimeState {
	return &NPCRuntimeState{
		NPCID:         npcID,
		EnergyLevel:   EnergyMax,
		Traits:        make(map[string]float64),
		Flags:         make(map[string]any),
		Relationships: make(map[string]map[string]float64),
		History:       NewActivityHistory(DefaultHistorySize),
		LastExited:    make(map[string]float64),
	}
}

// Energy implements condition.NPCView.
func (n *NPCRuntimeState) Energy() float64 { return n.EnergyLevel }

// MoodTags implements condition.NPCView.
func (n *NPCRuntimeState) MoodTags() []string { return n.Mood.Tags() }

// RelationshipMetric implements condition.NPCView. Missing edges or
// metrics read as zero.
func (n *NPCRuntimeState) RelationshipMetric(target, metric string) float64 {
	if edge, ok := n.Relationships[target]; ok {
		return edge[metric]
	}
	return 0
}

// ClampEnergy forces energy into [EnergyMin, EnergyMax] and reports
// whether it was out of range.
func (n *NPCRuntimeState) ClampEnergy() bool {
	if n.EnergyLevel < EnergyMin || n.EnergyLevel > EnergyMax {
		n.EnergyLevel = math.Max(EnergyMin, math.Min(EnergyMax, n.EnergyLevel))
		return true
	}
	return false
}

// Trait returns a trait value, zero when unset.
func (n *NPCRuntimeState) Trait(name string) float64 { return n.Traits[name] }

// OffCooldown reports whether the activity may be selected again at
// the given world time. An activity the NPC has never exited is always
// off cooldown.
func (n *NPCRuntimeState) OffCooldown(activityID string, cooldownSeconds, worldTime float64) bool {
	if cooldownSeconds <= 0 {
		return true
	}
	exited, ok := n.LastExited[activityID]
	if !ok {
		return true
	}
	return worldTime-exited >= cooldownSeconds
}

// BeginActivity records a transition into a new activity: the previous
// activity's exit time is stamped for cooldown tracking and the history
// ring gains a record.
func (n *NPCRuntimeState) BeginActivity(activityID string, worldTime, minDuration float64) {
	if n.CurrentActivityID != "" && n.CurrentActivityID != activityID {
		if n.LastExited == nil {
			n.LastExited = make(map[string]float64)
		}
		n.LastExited[n.CurrentActivityID] = worldTime
		if rec := n.History.Latest(); rec != nil && rec.ActivityID == n.CurrentActivityID && rec.End == 0 {
			rec.End = worldTime
		}
	}
	if n.CurrentActivityID == activityID {
		// Re-selection of the running activity just extends it.
		n.NextDecisionTime = worldTime + minDuration
		return
	}
	n.CurrentActivityID = activityID
	n.ActivityStart = worldTime
	n.NextDecisionTime = worldTime + minDuration
	if n.History == nil {
		n.History = NewActivityHistory(DefaultHistorySize)
	}
	n.History.Push(ActivityRecord{ActivityID: activityID, Start: worldTime})
}
