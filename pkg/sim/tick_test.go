package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/npc-engine/pkg/effect"
	"github.com/jwebster45206/npc-engine/pkg/state"
	"github.com/jwebster45206/npc-engine/pkg/world"
)

func runnerWorld() *world.WorldDef {
	return &world.WorldDef{
		Version: 1,
		ID:      "w",
		Categories: map[string]world.ActivityCategory{
			"all": {ID: "all", DefaultWeight: 1},
		},
		Activities: map[string]world.Activity{
			"rest": {ID: "rest", Category: "all",
				Effects: &effect.Effects{EnergyDeltaPerHour: 20}},
			"wander": {ID: "wander", Category: "all",
				Effects: &effect.Effects{EnergyDeltaPerHour: -10}},
		},
		Routines: map[string]world.RoutineGraph{
			"day": {ID: "day", Nodes: []world.RoutineNode{
				{ID: "all_day", Type: world.NodeTimeSlot, Start: 0, End: 1440,
					PreferredActivities: []world.WeightedActivity{
						{ActivityID: "rest", Weight: 1},
						{ActivityID: "wander", Weight: 1},
					}},
			}},
		},
		NPCs: map[string]world.NPCDef{
			"ham":   {ID: "ham", Routine: "day"},
			"petra": {ID: "petra", Routine: "day"},
		},
		Scoring: world.DefaultScoringConfig(),
	}
}

func newRunnerSession(seed uint64) *state.Session {
	sess := state.NewSession("w", seed)
	sess.NPC("ham")
	sess.NPC("petra")
	return sess
}

func TestTickAdvancesSession(t *testing.T) {
	r := NewRunner(runnerWorld(), testLogger())
	sess := newRunnerSession(7)

	report, err := r.Tick(context.Background(), sess, 60, 60)
	require.NoError(t, err)

	assert.Equal(t, uint64(0), report.Tick)
	assert.Equal(t, uint64(1), sess.Tick)
	assert.Equal(t, 60.0, sess.WorldTime)
	assert.Len(t, report.Scheduled, 2, "tierless world evaluates everyone")

	for _, id := range []string{"ham", "petra"} {
		npc := sess.NPC(id)
		assert.NotEmpty(t, npc.CurrentActivityID, "npc %s should have picked an activity", id)
		assert.Equal(t, 60.0, npc.LastEvaluated)
	}
}

func TestTickEnergyStaysBounded(t *testing.T) {
	w := runnerWorld()
	// A single violently draining activity.
	w.Activities = map[string]world.Activity{
		"toil": {ID: "toil", Category: "all",
			Effects: &effect.Effects{EnergyDeltaPerHour: -200}},
	}
	g := w.Routines["day"]
	g.Nodes[0].PreferredActivities = []world.WeightedActivity{{ActivityID: "toil", Weight: 1}}
	w.Routines["day"] = g

	r := NewRunner(w, testLogger())
	sess := newRunnerSession(7)

	worldTime := 0.0
	for i := 0; i < 4; i++ {
		worldTime += 3600
		_, err := r.Tick(context.Background(), sess, worldTime, 3600)
		require.NoError(t, err)
		for _, id := range []string{"ham", "petra"} {
			npc := sess.NPC(id)
			assert.GreaterOrEqual(t, npc.EnergyLevel, state.EnergyMin)
			assert.LessOrEqual(t, npc.EnergyLevel, state.EnergyMax)
		}
	}

	assert.Equal(t, state.EnergyMin, sess.NPC("ham").EnergyLevel, "four hours at -200/h pins energy to the floor")
	assert.Positive(t, r.exec.ClampCount)
}

func TestTickDeterministic(t *testing.T) {
	run := func() *state.Session {
		r := NewRunner(runnerWorld(), testLogger())
		sess := newRunnerSession(4242)
		worldTime := 0.0
		for i := 0; i < 5; i++ {
			worldTime += 600
			_, err := r.Tick(context.Background(), sess, worldTime, 600)
			require.NoError(t, err)
		}
		return sess
	}

	a, b := run(), run()
	// Same seed, same ticks: every NPC ends in an identical state no
	// matter how the decide goroutines interleaved.
	assert.Equal(t, a.NPCs, b.NPCs)
	assert.Equal(t, a.Tick, b.Tick)
}

func TestTickAbandonedOnCancelledContext(t *testing.T) {
	r := NewRunner(runnerWorld(), testLogger())
	sess := newRunnerSession(7)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Tick(ctx, sess, 60, 60)
	require.Error(t, err)
	assert.Equal(t, uint64(0), sess.Tick, "an abandoned tick must not advance the session")
}

func TestTickFrozenNPCStillAccruesEffects(t *testing.T) {
	w := runnerWorld()
	w.Activities["rest"] = world.Activity{ID: "rest", Category: "all",
		MinDuration: 7200,
		Effects:     &effect.Effects{EnergyDeltaPerHour: 20}}
	g := w.Routines["day"]
	g.Nodes[0].PreferredActivities = []world.WeightedActivity{{ActivityID: "rest", Weight: 1}}
	w.Routines["day"] = g

	r := NewRunner(w, testLogger())
	sess := newRunnerSession(7)
	ham := sess.NPC("ham")
	ham.EnergyLevel = 50

	_, err := r.Tick(context.Background(), sess, 600, 600)
	require.NoError(t, err)
	require.Equal(t, "rest", ham.CurrentActivityID)

	report, err := r.Tick(context.Background(), sess, 1200, 600)
	require.NoError(t, err)
	assert.Contains(t, report.Frozen, "ham", "min duration freezes the decision")
	assert.InDelta(t, 50+20.0/6.0, ham.EnergyLevel, 1e-9, "frozen NPCs still earn their periodic effects")
}
