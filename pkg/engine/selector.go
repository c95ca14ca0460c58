package engine

import (
	"log/slog"
	"math/rand/v2"

	"github.com/jwebster45206/npc-engine/pkg/condition"
	"github.com/jwebster45206/npc-engine/pkg/effect"
	"github.com/jwebster45206/npc-engine/pkg/state"
	"github.com/jwebster45206/npc-engine/pkg/world"
)

// CandidateScore is one scored candidate, kept for diagnostics and the
// preview entry point.
type CandidateScore struct {
	ActivityID string  `json:"activity_id"`
	Weight     float64 `json:"weight"`
	Score      float64 `json:"score"`
	Factors    Factors `json:"factors"`
}

// Decision is the outcome of the decide phase for one NPC. It is pure
// data: nothing is mutated until the apply phase commits it.
type Decision struct {
	NPCID      string           `json:"npc_id"`
	ActivityID string           `json:"activity_id"`
	NodeID     string           `json:"node_id,omitempty"`
	Transition bool             `json:"transition"` // switching to a different activity
	Frozen     bool             `json:"frozen"`     // min-duration short-circuit retained the current activity
	Fallback   bool             `json:"fallback"`   // empty candidate list forced the fallback activity
	Scores     []CandidateScore `json:"scores,omitempty"`
	Warnings   []string         `json:"warnings,omitempty"`
}

// Selector runs the decide pipeline: routine resolution, requirement
// filtering, preference merge, scoring, and the weighted-random draw.
type Selector struct {
	world  *world.WorldDef
	scorer *Scorer
	logger *slog.Logger
}

// NewSelector creates a selector for a world definition.
func NewSelector(w *world.WorldDef, logger *slog.Logger) *Selector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Selector{world: w, scorer: NewScorer(w), logger: logger}
}

// Decide computes what the NPC does next. It reads the session
// snapshot and never mutates it, so decisions within a tick are
// order-independent and safe to compute concurrently.
func (s *Selector) Decide(sess *state.Session, npcID string, worldTime float64, tick uint64, detail string) Decision {
	d := Decision{NPCID: npcID}
	npc := sess.NPC(npcID)

	// A running activity is frozen until its minimum duration elapses,
	// regardless of what scoring would prefer. Periodic effects for
	// the elapsed slice still apply at commit.
	if npc.CurrentActivityID != "" && worldTime < npc.NextDecisionTime {
		d.ActivityID = npc.CurrentActivityID
		d.Frozen = true
		return d
	}

	rng := DecisionStream(sess.Seed, tick, npcID)
	ctx := &condition.Context{NPC: npc, World: sess, Rand: rng.Float64, Logger: s.logger}

	npcDef, hasDef := s.world.NPCs[npcID]
	var graph *world.RoutineGraph
	var npcPrefs *world.NPCPreferences
	if hasDef {
		npcPrefs = npcDef.Preferences
		if g, ok := s.world.Routine(npcDef.Routine); ok {
			graph = g
		} else if npcDef.Routine != "" {
			d.Warnings = append(d.Warnings, "unknown routine "+npcDef.Routine)
			s.logger.Warn("npc references unknown routine", "npc_id", npcID, "routine", npcDef.Routine)
		}
	}

	node, raw := ResolveRoutine(graph, worldTime, ctx)
	if node != nil {
		d.NodeID = node.ID
	}

	candidates := s.filterCandidates(raw, npc, sess, ctx, worldTime, &d)
	if len(candidates) == 0 {
		d.ActivityID = s.world.FallbackActivityID()
		d.Fallback = true
		d.Transition = d.ActivityID != npc.CurrentActivityID
		s.logger.Warn("no candidates after filtering, using fallback",
			"npc_id", npcID, "fallback", d.ActivityID, "node_id", d.NodeID)
		return d
	}

	if detail == world.DetailScheduleOnly {
		// Bypass scoring: take the highest-weight surviving candidate.
		best := candidates[0]
		for _, c := range candidates[1:] {
			if c.Weight > best.Weight {
				best = c
			}
		}
		d.ActivityID = best.ActivityID
		d.Transition = d.ActivityID != npc.CurrentActivityID
		return d
	}

	var routineDefaults *world.PreferenceSet
	if graph != nil {
		routineDefaults = graph.DefaultPreferences
	}
	prefs := ResolvePreferences(routineDefaults, npcPrefs, sess.OverridesFor(npcID))

	scored := make([]CandidateScore, 0, len(candidates))
	for _, c := range candidates {
		activity, _ := s.world.Activity(c.ActivityID)
		score, factors := s.scorer.Score(c, activity, prefs, npc, npcPrefs, sess, detail)
		scored = append(scored, CandidateScore{
			ActivityID: c.ActivityID,
			Weight:     c.Weight,
			Score:      score,
			Factors:    factors,
		})
	}
	d.Scores = scored

	// Weighted-random draw, not argmax: variety is a required property.
	d.ActivityID = weightedDraw(scored, rng)
	d.Transition = d.ActivityID != npc.CurrentActivityID
	return d
}

// filterCandidates drops candidates failing hard requirements: entry
// conditions, energy bounds, time-of-day, mood tags, or cooldown.
// Unknown activity references are skipped with a warning — runtime
// tolerates what config validation would have rejected.
func (s *Selector) filterCandidates(raw []world.WeightedActivity, npc *state.NPCRuntimeState, sess *state.Session, ctx *condition.Context, worldTime float64, d *Decision) []world.WeightedActivity {
	var out []world.WeightedActivity
	for _, c := range raw {
		activity, ok := s.world.Activity(c.ActivityID)
		if !ok {
			d.Warnings = append(d.Warnings, "unknown activity "+c.ActivityID)
			s.logger.Warn("candidate references unknown activity", "npc_id", npc.NPCID, "activity_id", c.ActivityID)
			continue
		}
		if !condition.EvaluateAll(c.Conditions, ctx) {
			continue
		}
		if !s.meetsRequirements(activity, npc, sess, ctx) {
			continue
		}
		if !npc.OffCooldown(activity.ID, activity.Cooldown, worldTime) && activity.ID != npc.CurrentActivityID {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (s *Selector) meetsRequirements(activity *world.Activity, npc *state.NPCRuntimeState, sess *state.Session, ctx *condition.Context) bool {
	req := activity.Requirements
	if req == nil {
		return true
	}
	if req.MinEnergy != nil && npc.Energy() < *req.MinEnergy {
		return false
	}
	if req.MaxEnergy != nil && npc.Energy() > *req.MaxEnergy {
		return false
	}
	if len(req.TimeOfDay) > 0 {
		bucket := sess.TimeOfDayBucket()
		found := false
		for _, b := range req.TimeOfDay {
			if b == bucket {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(req.MoodTags) > 0 {
		found := false
		for _, want := range req.MoodTags {
			for _, have := range npc.MoodTags() {
				if want == have {
					found = true
					break
				}
			}
		}
		if !found {
			return false
		}
	}
	return condition.EvaluateAll(req.Conditions, ctx)
}

// weightedDraw selects an activity id proportionally to score. Scores
// are already floored at ScoreEpsilon so the total is positive.
func weightedDraw(scored []CandidateScore, rng *rand.Rand) string {
	if len(scored) == 1 {
		return scored[0].ActivityID
	}
	var total float64
	for _, c := range scored {
		total += c.Score
	}
	r := rng.Float64() * total
	for _, c := range scored {
		r -= c.Score
		if r < 0 {
			return c.ActivityID
		}
	}
	return scored[len(scored)-1].ActivityID
}

// Commit applies a decision to the session: the elapsed slice of the
// outgoing (or continuing) activity's periodic effects, then the
// transition effects of a newly selected activity. Runs in the apply
// phase only.
func (s *Selector) Commit(d Decision, sess *state.Session, exec *effect.Executor, worldTime, elapsedSeconds float64, acc *effect.Accumulator) *effect.Log {
	npc := sess.NPC(d.NPCID)
	log := effect.NewLog(d.NPCID)

	// Periodic effects for the activity that ran during the elapsed
	// slice, whether it continues or is being left.
	if npc.CurrentActivityID != "" && elapsedSeconds > 0 {
		if running, ok := s.world.Activity(npc.CurrentActivityID); ok {
			slice := exec.Apply(running.Effects, npc, sess, elapsedSeconds, false, acc)
			log.Entries = append(log.Entries, slice.Entries...)
		}
	}

	if d.Transition {
		activity, ok := s.world.Activity(d.ActivityID)
		if !ok {
			s.logger.Warn("decision references unknown activity", "npc_id", d.NPCID, "activity_id", d.ActivityID)
			return log
		}
		npc.BeginActivity(activity.ID, worldTime, activity.MinDuration)
		oneShot := exec.Apply(activity.Effects, npc, sess, 0, true, acc)
		log.Entries = append(log.Entries, oneShot.Entries...)
	}

	return log
}
