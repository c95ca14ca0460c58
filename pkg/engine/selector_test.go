package engine

import (
	"log/slog"
	"os"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/npc-engine/pkg/effect"
	"github.com/jwebster45206/npc-engine/pkg/state"
	"github.com/jwebster45206/npc-engine/pkg/world"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// selectorWorld builds a two-activity world: rest is only available
// below 30 energy, work only at or above 30.
func selectorWorld() *world.WorldDef {
	minWork := 30.0
	maxRest := 30.0
	return &world.WorldDef{
		Version: 1,
		ID:      "w",
		Categories: map[string]world.ActivityCategory{
			"all": {ID: "all", DefaultWeight: 1},
		},
		Activities: map[string]world.Activity{
			"rest": {ID: "rest", Category: "all",
				Requirements: &world.Requirements{MaxEnergy: &maxRest},
				Effects:      &effect.Effects{EnergyDeltaPerHour: 10}},
			"work": {ID: "work", Category: "all",
				Requirements: &world.Requirements{MinEnergy: &minWork},
				Effects:      &effect.Effects{EnergyDeltaPerHour: -5}},
		},
		Routines: map[string]world.RoutineGraph{
			"day": {ID: "day", Nodes: []world.RoutineNode{
				{ID: "all_day", Type: world.NodeTimeSlot, Start: 0, End: 1440,
					PreferredActivities: []world.WeightedActivity{
						{ActivityID: "rest", Weight: 1},
						{ActivityID: "work", Weight: 1},
					}},
			}},
		},
		NPCs: map[string]world.NPCDef{
			"ham": {ID: "ham", Routine: "day"},
		},
		Scoring: world.DefaultScoringConfig(),
	}
}

func TestDecideFiltersHardRequirements(t *testing.T) {
	sel := NewSelector(selectorWorld(), testLogger())
	sess := state.NewSession("w", 7)

	npc := sess.NPC("ham")
	npc.EnergyLevel = 20

	d := sel.Decide(sess, "ham", 0, 0, world.DetailFull)
	assert.Equal(t, "rest", d.ActivityID, "exhausted NPC may only rest")
	assert.True(t, d.Transition)
	assert.False(t, d.Fallback)

	npc.EnergyLevel = 80
	npc.CurrentActivityID = ""
	d = sel.Decide(sess, "ham", 0, 1, world.DetailFull)
	assert.Equal(t, "work", d.ActivityID, "rested NPC may only work")
}

func TestDecideWeightedDrawFollowsScores(t *testing.T) {
	// Score only the base weight so candidate scores are exactly the
	// authored 3:1 node weights, then check the draw distribution.
	w := selectorWorld()
	w.Scoring.Weights = world.ScoringWeights{BaseWeight: 1}
	w.Activities["rest"] = world.Activity{ID: "rest", Category: "all"}
	w.Activities["work"] = world.Activity{ID: "work", Category: "all"}
	g := w.Routines["day"]
	g.Nodes[0].PreferredActivities = []world.WeightedActivity{
		{ActivityID: "rest", Weight: 3},
		{ActivityID: "work", Weight: 1},
	}
	w.Routines["day"] = g

	sel := NewSelector(w, testLogger())
	sess := state.NewSession("w", 99)

	const draws = 2000
	restCount := 0
	for tick := uint64(0); tick < draws; tick++ {
		d := sel.Decide(sess, "ham", 0, tick, world.DetailFull)
		require.False(t, d.Fallback)
		if d.ActivityID == "rest" {
			restCount++
		}
	}

	frac := float64(restCount) / draws
	assert.InDelta(t, 0.75, frac, 0.05, "3:1 weights should draw rest about three times in four")
}

func TestDecideMinDurationFreeze(t *testing.T) {
	sel := NewSelector(selectorWorld(), testLogger())
	sess := state.NewSession("w", 7)

	npc := sess.NPC("ham")
	npc.EnergyLevel = 20
	npc.BeginActivity("work", 100, 500) // frozen until t=600

	d := sel.Decide(sess, "ham", 400, 3, world.DetailFull)
	assert.True(t, d.Frozen)
	assert.Equal(t, "work", d.ActivityID, "frozen NPC keeps the running activity even when it no longer qualifies")
	assert.False(t, d.Transition)
	assert.Empty(t, d.Scores, "frozen decisions skip the pipeline entirely")

	d = sel.Decide(sess, "ham", 600, 4, world.DetailFull)
	assert.False(t, d.Frozen)
	assert.Equal(t, "rest", d.ActivityID, "freeze lifts exactly at next decision time")
}

func TestDecideCooldownBlocksReselection(t *testing.T) {
	w := selectorWorld()
	w.Activities["rest"] = world.Activity{ID: "rest", Category: "all", Cooldown: 1000}
	g := w.Routines["day"]
	g.Nodes[0].PreferredActivities = []world.WeightedActivity{{ActivityID: "rest", Weight: 1}}
	w.Routines["day"] = g

	sel := NewSelector(w, testLogger())
	sess := state.NewSession("w", 7)
	npc := sess.NPC("ham")
	npc.LastExited["rest"] = 100

	d := sel.Decide(sess, "ham", 500, 0, world.DetailFull)
	assert.True(t, d.Fallback, "only candidate on cooldown forces the fallback")
	assert.Equal(t, world.IdleActivityID, d.ActivityID)

	d = sel.Decide(sess, "ham", 1200, 1, world.DetailFull)
	assert.False(t, d.Fallback)
	assert.Equal(t, "rest", d.ActivityID, "cooldown expires at exit time plus cooldown")
}

func TestDecideCooldownExemptsRunningActivity(t *testing.T) {
	w := selectorWorld()
	w.Activities["rest"] = world.Activity{ID: "rest", Category: "all", Cooldown: 1000}
	g := w.Routines["day"]
	g.Nodes[0].PreferredActivities = []world.WeightedActivity{{ActivityID: "rest", Weight: 1}}
	w.Routines["day"] = g

	sel := NewSelector(w, testLogger())
	sess := state.NewSession("w", 7)
	npc := sess.NPC("ham")
	npc.CurrentActivityID = "rest"
	npc.LastExited["rest"] = 100 // stale exit stamp from an earlier run

	d := sel.Decide(sess, "ham", 500, 0, world.DetailFull)
	assert.Equal(t, "rest", d.ActivityID, "cooldown never evicts the activity the NPC is already in")
	assert.False(t, d.Fallback)
}

func TestDecideFallbackOnEmptyCandidates(t *testing.T) {
	w := selectorWorld()
	sel := NewSelector(w, testLogger())
	sess := state.NewSession("w", 7)

	// Energy 25 fails work's min; force rest out too.
	npc := sess.NPC("ham")
	npc.EnergyLevel = 35
	maxRest := 30.0
	minWork := 40.0
	w.Activities["rest"] = world.Activity{ID: "rest", Category: "all", Requirements: &world.Requirements{MaxEnergy: &maxRest}}
	w.Activities["work"] = world.Activity{ID: "work", Category: "all", Requirements: &world.Requirements{MinEnergy: &minWork}}

	d := sel.Decide(sess, "ham", 0, 0, world.DetailFull)
	assert.True(t, d.Fallback)
	assert.Equal(t, world.IdleActivityID, d.ActivityID, "unset fallback uses the built-in idle activity")
}

func TestDecideConfiguredFallback(t *testing.T) {
	w := selectorWorld()
	w.Simulation.FallbackActivityID = "rest"
	sel := NewSelector(w, testLogger())
	sess := state.NewSession("w", 7)

	// No routine at all for this NPC: zero candidates.
	d := sel.Decide(sess, "stranger", 0, 0, world.DetailFull)
	assert.True(t, d.Fallback)
	assert.Equal(t, "rest", d.ActivityID)
}

func TestDecideDeterministic(t *testing.T) {
	sel := NewSelector(selectorWorld(), testLogger())

	run := func() Decision {
		sess := state.NewSession("w", 1234)
		sess.NPC("ham").EnergyLevel = 20
		return sel.Decide(sess, "ham", 0, 42, world.DetailFull)
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("identical (seed, tick, npc) produced different decisions:\n%+v\n%+v", a, b)
	}
}

func TestDecideScheduleOnlyTakesHighestWeight(t *testing.T) {
	w := selectorWorld()
	w.Activities["rest"] = world.Activity{ID: "rest", Category: "all"}
	w.Activities["work"] = world.Activity{ID: "work", Category: "all"}
	g := w.Routines["day"]
	g.Nodes[0].PreferredActivities = []world.WeightedActivity{
		{ActivityID: "rest", Weight: 1},
		{ActivityID: "work", Weight: 5},
	}
	w.Routines["day"] = g

	sel := NewSelector(w, testLogger())
	sess := state.NewSession("w", 7)

	for tick := uint64(0); tick < 20; tick++ {
		d := sel.Decide(sess, "ham", 0, tick, world.DetailScheduleOnly)
		assert.Equal(t, "work", d.ActivityID, "schedule_only bypasses scoring and randomness")
		assert.Empty(t, d.Scores)
	}
}

func TestCommitAppliesPeriodicAndTransitionEffects(t *testing.T) {
	w := selectorWorld()
	w.Activities["rest"] = world.Activity{ID: "rest", Category: "all",
		MinDuration: 600,
		Effects: &effect.Effects{
			EnergyDeltaPerHour: 10,
			MoodImpact:         &effect.MoodImpact{Valence: 0.3},
		}}

	sel := NewSelector(w, testLogger())
	sess := state.NewSession("w", 7)
	exec := effect.NewExecutor(nil, testLogger())

	npc := sess.NPC("ham")
	npc.EnergyLevel = 20
	npc.BeginActivity("work", 0, 0)

	// Leaving work for rest: work's drain applies for the elapsed
	// slice, then rest's one-shot mood impact fires.
	d := Decision{NPCID: "ham", ActivityID: "rest", Transition: true}
	acc := effect.NewAccumulator()
	log := sel.Commit(d, sess, exec, 3600, 3600, acc)
	exec.Commit(acc, sess, map[string]*effect.Log{"ham": log})

	assert.InDelta(t, 15, npc.EnergyLevel, 1e-9, "one hour of work drains 5")
	assert.InDelta(t, 0.3, npc.Mood.Valence, 1e-9, "transition mood applied once")
	assert.Equal(t, "rest", npc.CurrentActivityID)
	assert.Equal(t, 4200.0, npc.NextDecisionTime, "min duration counts from the transition")
	assert.Equal(t, 3600.0, npc.LastExited["work"])

	// A non-transition tick accrues only the running activity's
	// periodic energy; mood stays put.
	d = Decision{NPCID: "ham", ActivityID: "rest"}
	acc = effect.NewAccumulator()
	sel.Commit(d, sess, exec, 5400, 1800, acc)
	exec.Commit(acc, sess, nil)

	assert.InDelta(t, 20, npc.EnergyLevel, 1e-9, "half an hour of rest restores 5")
	assert.InDelta(t, 0.3, npc.Mood.Valence, 1e-9, "mood impact never repeats")
}

func TestScoreAllRanksWithoutMutating(t *testing.T) {
	sel := NewSelector(selectorWorld(), testLogger())
	sess := state.NewSession("w", 7)
	npc := sess.NPC("ham")
	npc.EnergyLevel = 20

	before := *npc
	p := sel.ScoreAll(sess, "ham", 0, 0)

	require.NotEmpty(t, p.Candidates)
	assert.Equal(t, "rest", p.Candidates[0].ActivityID)
	for i := 1; i < len(p.Candidates); i++ {
		assert.GreaterOrEqual(t, p.Candidates[i-1].Score, p.Candidates[i].Score, "preview is ranked by score")
	}
	assert.Equal(t, before.EnergyLevel, npc.EnergyLevel)
	assert.Equal(t, before.CurrentActivityID, npc.CurrentActivityID)
}
