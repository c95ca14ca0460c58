package effect

import (
	"log/slog"
	"math"
	"sort"

	"github.com/jwebster45206/npc-engine/pkg/state"
)

// MetricRange declares the clamp bounds for one relationship metric.
type MetricRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// DefaultMetricRange applies to metrics without a declared range.
var DefaultMetricRange = MetricRange{Min: -100, Max: 100}

// Executor applies activity effects to NPC runtime state. It clamps
// energy, mood, and relationship metrics after every application and
// counts clamp events; a clamp is tuning feedback, never an error.
type Executor struct {
	ranges map[string]MetricRange
	logger *slog.Logger

	// ClampCount tracks how many applies needed clamping, for tuning
	// visibility.
	ClampCount uint64
}

// NewExecutor creates an executor with the given metric ranges.
// Metrics missing from ranges use DefaultMetricRange.
func NewExecutor(ranges map[string]MetricRange, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{ranges: ranges, logger: logger}
}

func (ex *Executor) metricRange(metric string) MetricRange {
	if r, ok := ex.ranges[metric]; ok {
		return r
	}
	return DefaultMetricRange
}

// relKey identifies one relationship edge metric for commutative
// accumulation across NPCs in a tick.
type relKey struct {
	Owner  string
	Target string
	Metric string
}

type flagWrite struct {
	NPCID string
	Key   string
	Value any
}

// Accumulator batches writes to shared keys within one tick. Multiple
// NPCs may touch the same relationship edge or session flag; deltas
// are summed and clamped once at Commit so results are independent of
// apply order.
type Accumulator struct {
	rel      map[relKey]float64
	relOrder []relKey
	flags    []flagWrite
}

// NewAccumulator creates an empty per-tick accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{rel: make(map[relKey]float64)}
}

func (a *Accumulator) addRelationship(owner, target, metric string, delta float64) {
	k := relKey{Owner: owner, Target: target, Metric: metric}
	if _, seen := a.rel[k]; !seen {
		a.relOrder = append(a.relOrder, k)
	}
	a.rel[k] += delta
}

func (a *Accumulator) setFlag(npcID, key string, value any) {
	a.flags = append(a.flags, flagWrite{NPCID: npcID, Key: key, Value: value})
}

// Apply applies an activity's effects for one NPC.
//
// Energy scales by elapsed simulated seconds; mood applies only on
// transition (the first application after selection). Relationship and
// flag writes go into the accumulator for a single commutative commit;
// custom effects dispatch immediately through the handler registry.
func (ex *Executor) Apply(eff *Effects, npc *state.NPCRuntimeState, sess *state.Session, elapsedSeconds float64, transition bool, acc *Accumulator) *Log {
	log := NewLog(npc.NPCID)
	if eff == nil {
		return log
	}

	if eff.EnergyDeltaPerHour != 0 && elapsedSeconds > 0 {
		delta := eff.EnergyDeltaPerHour * elapsedSeconds / 3600.0
		npc.EnergyLevel += delta
		clamped := npc.ClampEnergy()
		if clamped {
			ex.ClampCount++
		}
		log.Append(AppliedEffect{Kind: KindEnergy, Delta: delta, Clamped: clamped})
	}

	if transition {
		if eff.MoodImpact != nil {
			npc.Mood.Valence += eff.MoodImpact.Valence
			npc.Mood.Arousal += eff.MoodImpact.Arousal
			clamped := npc.Mood.Clamp()
			if clamped {
				ex.ClampCount++
			}
			log.Append(AppliedEffect{Kind: KindMood, Delta: eff.MoodImpact.Valence, Clamped: clamped})
		}

		for target, metrics := range eff.RelationshipChanges {
			resolved := target
			if sess != nil {
				resolved = sess.ResolveTarget(target)
			}
			for metric, delta := range metrics {
				acc.addRelationship(npc.NPCID, resolved, metric, delta)
			}
		}

		for key, value := range eff.FlagsSet {
			acc.setFlag(npc.NPCID, key, value)
		}

		for _, ce := range eff.Custom {
			h, ok := lookupHandler(ce.Type)
			if !ok {
				ex.logger.Warn("unregistered custom effect", "type", ce.Type, "npc_id", npc.NPCID)
				continue
			}
			h(ce.Params, npc, sess, log)
			log.Append(AppliedEffect{Kind: KindCustom, Key: ce.Type})
		}
	}

	return log
}

// Commit flushes the accumulator into the session. Relationship deltas
// for the same edge metric were merged additively; each edge clamps
// exactly once here. Flag overwrites apply in deterministic NPC-id
// order so a contended key resolves the same way every run.
func (ex *Executor) Commit(acc *Accumulator, sess *state.Session, logs map[string]*Log) {
	for _, k := range acc.relOrder {
		delta := acc.rel[k]
		npc := sess.NPC(k.Owner)
		if npc.Relationships == nil {
			npc.Relationships = make(map[string]map[string]float64)
		}
		edge := npc.Relationships[k.Target]
		if edge == nil {
			edge = make(map[string]float64)
			npc.Relationships[k.Target] = edge
		}
		r := ex.metricRange(k.Metric)
		v := edge[k.Metric] + delta
		clamped := v < r.Min || v > r.Max
		if clamped {
			v = math.Max(r.Min, math.Min(r.Max, v))
			ex.ClampCount++
		}
		edge[k.Metric] = v
		if log, ok := logs[k.Owner]; ok {
			log.Append(AppliedEffect{Kind: KindRelationship, Target: k.Target, Key: k.Metric, Delta: delta, Clamped: clamped})
		}
	}

	writes := make([]flagWrite, len(acc.flags))
	copy(writes, acc.flags)
	sort.SliceStable(writes, func(i, j int) bool { return writes[i].NPCID < writes[j].NPCID })
	for _, w := range writes {
		if sess.Flags == nil {
			sess.Flags = make(map[string]any)
		}
		sess.Flags[w.Key] = w.Value
		if log, ok := logs[w.NPCID]; ok {
			log.Append(AppliedEffect{Kind: KindFlag, Key: w.Key, Value: w.Value})
		}
	}
}

// ApplyNow applies effects and commits immediately. Convenience for
// single-NPC callers and tests; the tick loop uses Apply + Commit.
func (ex *Executor) ApplyNow(eff *Effects, npc *state.NPCRuntimeState, sess *state.Session, elapsedSeconds float64, transition bool) *Log {
	acc := NewAccumulator()
	log := ex.Apply(eff, npc, sess, elapsedSeconds, transition, acc)
	ex.Commit(acc, sess, map[string]*Log{npc.NPCID: log})
	return log
}
