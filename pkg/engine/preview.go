package engine

import (
	"sort"

	"github.com/jwebster45206/npc-engine/pkg/condition"
	"github.com/jwebster45206/npc-engine/pkg/state"
	"github.com/jwebster45206/npc-engine/pkg/world"
)

// Preview is the debug view of one NPC's next decision: the active
// routine node and every surviving candidate ranked by score. Produced
// without mutating state, for tooling that explains or tunes
// decisions.
type Preview struct {
	NPCID      string           `json:"npc_id"`
	NodeID     string           `json:"node_id,omitempty"`
	Current    string           `json:"current_activity_id,omitempty"`
	Frozen     bool             `json:"frozen"`
	Candidates []CandidateScore `json:"candidates"`
}

// ScoreAll ranks every surviving candidate for an NPC at the given
// world time. The RNG stream used for random_chance conditions is the
// same one Decide would use this tick, so the preview matches what the
// selector would actually see.
func (s *Selector) ScoreAll(sess *state.Session, npcID string, worldTime float64, tick uint64) Preview {
	p := Preview{NPCID: npcID}
	npc := sess.NPC(npcID)
	p.Current = npc.CurrentActivityID
	p.Frozen = npc.CurrentActivityID != "" && worldTime < npc.NextDecisionTime

	rng := DecisionStream(sess.Seed, tick, npcID)
	ctx := &condition.Context{NPC: npc, World: sess, Rand: rng.Float64, Logger: s.logger}

	npcDef, hasDef := s.world.NPCs[npcID]
	var graph *world.RoutineGraph
	var npcPrefs *world.NPCPreferences
	if hasDef {
		npcPrefs = npcDef.Preferences
		if g, ok := s.world.Routine(npcDef.Routine); ok {
			graph = g
		}
	}

	node, raw := ResolveRoutine(graph, worldTime, ctx)
	if node != nil {
		p.NodeID = node.ID
	}

	var scratch Decision
	candidates := s.filterCandidates(raw, npc, sess, ctx, worldTime, &scratch)

	var routineDefaults *world.PreferenceSet
	if graph != nil {
		routineDefaults = graph.DefaultPreferences
	}
	prefs := ResolvePreferences(routineDefaults, npcPrefs, sess.OverridesFor(npcID))

	for _, c := range candidates {
		activity, _ := s.world.Activity(c.ActivityID)
		score, factors := s.scorer.Score(c, activity, prefs, npc, npcPrefs, sess, world.DetailFull)
		p.Candidates = append(p.Candidates, CandidateScore{
			ActivityID: c.ActivityID,
			Weight:     c.Weight,
			Score:      score,
			Factors:    factors,
		})
	}

	sort.SliceStable(p.Candidates, func(i, j int) bool {
		return p.Candidates[i].Score > p.Candidates[j].Score
	})
	return p
}
