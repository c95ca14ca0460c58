package effect

// Applied effect kinds.
const (
	KindEnergy       = "energy"
	KindMood         = "mood"
	KindRelationship = "relationship"
	KindFlag         = "flag"
	KindCustom       = "custom"
)

// AppliedEffect is one committed state change. The apply phase appends
// these so telemetry and UI observers can react without re-deriving
// state.
type AppliedEffect struct {
	NPCID   string  `json:"npc_id"`
	Kind    string  `json:"kind"`
	Key     string  `json:"key,omitempty"` // metric, flag key, or custom type
	Target  string  `json:"target,omitempty"`
	Delta   float64 `json:"delta,omitempty"`
	Value   any     `json:"value,omitempty"` // for flag overwrites
	Clamped bool    `json:"clamped,omitempty"`
}

// Log is an append-only record of applied effects for one NPC in one
// tick.
type Log struct {
	NPCID   string          `json:"npc_id"`
	Entries []AppliedEffect `json:"entries,omitempty"`
}

// NewLog creates an empty log for an NPC.
func NewLog(npcID string) *Log {
	return &Log{NPCID: npcID}
}

// Append records an applied effect.
func (l *Log) Append(e AppliedEffect) {
	if e.NPCID == "" {
		e.NPCID = l.NPCID
	}
	l.Entries = append(l.Entries, e)
}
