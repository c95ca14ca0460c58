package engine

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/npc-engine/pkg/condition"
	"github.com/jwebster45206/npc-engine/pkg/state"
	"github.com/jwebster45206/npc-engine/pkg/world"
)

func routineCtx(sess *state.Session, npcID string) *condition.Context {
	return &condition.Context{
		NPC:    sess.NPC(npcID),
		World:  sess,
		Rand:   func() float64 { return 0.5 },
		Logger: slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})),
	}
}

func TestResolveRoutineTimeSlots(t *testing.T) {
	graph := &world.RoutineGraph{
		ID: "day",
		Nodes: []world.RoutineNode{
			{ID: "night", Type: world.NodeTimeSlot, Start: 1290, End: 360, // wraps midnight
				PreferredActivities: []world.WeightedActivity{{ActivityID: "sleep", Weight: 1}}},
			{ID: "work", Type: world.NodeTimeSlot, Start: 360, End: 1080,
				PreferredActivities: []world.WeightedActivity{{ActivityID: "tend_fields", Weight: 1}}},
		},
	}
	sess := state.NewSession("w", 1)
	ctx := routineCtx(sess, "ham")

	tests := []struct {
		name      string
		minutes   float64
		wantNode  string
		wantMatch bool
	}{
		{"before midnight inside wrap", 1350, "night", true},
		{"after midnight inside wrap", 120, "night", true},
		{"wrap end is exclusive", 360, "work", true},
		{"midday", 600, "work", true},
		{"gap between slots", 1100, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, _ := ResolveRoutine(graph, tt.minutes*60, ctx)
			if !tt.wantMatch {
				assert.Nil(t, node)
				return
			}
			require.NotNil(t, node)
			assert.Equal(t, tt.wantNode, node.ID)
		})
	}
}

func TestResolveRoutineDecisionOrder(t *testing.T) {
	// Both decision nodes match; declaration order must break the tie.
	guard := []condition.Condition{{Type: condition.TypeEnergyBetween}}
	graph := &world.RoutineGraph{
		ID: "g",
		Nodes: []world.RoutineNode{
			{ID: "first", Type: world.NodeDecision, Conditions: guard,
				PreferredActivities: []world.WeightedActivity{{ActivityID: "a", Weight: 1}}},
			{ID: "second", Type: world.NodeDecision, Conditions: guard,
				PreferredActivities: []world.WeightedActivity{{ActivityID: "b", Weight: 1}}},
		},
	}
	sess := state.NewSession("w", 1)

	node, candidates := ResolveRoutine(graph, 0, routineCtx(sess, "ham"))
	require.NotNil(t, node)
	assert.Equal(t, "first", node.ID)
	require.Len(t, candidates, 1)
	assert.Equal(t, "a", candidates[0].ActivityID)
}

func TestResolveRoutineDecisionGuard(t *testing.T) {
	maxEnergy := 15.0
	graph := &world.RoutineGraph{
		ID: "g",
		Nodes: []world.RoutineNode{
			{ID: "exhausted", Type: world.NodeDecision,
				Conditions: []condition.Condition{
					{Type: condition.TypeEnergyBetween, MaxEnergy: &maxEnergy},
				},
				PreferredActivities: []world.WeightedActivity{{ActivityID: "nap", Weight: 1}}},
		},
	}
	sess := state.NewSession("w", 1)
	npc := sess.NPC("ham")

	node, _ := ResolveRoutine(graph, 0, routineCtx(sess, "ham"))
	assert.Nil(t, node, "full-energy NPC must not match the exhausted guard")

	npc.EnergyLevel = 10
	node, _ = ResolveRoutine(graph, 0, routineCtx(sess, "ham"))
	require.NotNil(t, node)
	assert.Equal(t, "exhausted", node.ID)
}

func TestResolveRoutineActivityNode(t *testing.T) {
	graph := &world.RoutineGraph{
		ID: "g",
		Nodes: []world.RoutineNode{
			{ID: "fixed", Type: world.NodeActivity, ActivityID: "sleep"},
		},
	}
	sess := state.NewSession("w", 1)

	node, candidates := ResolveRoutine(graph, 0, routineCtx(sess, "ham"))
	require.NotNil(t, node)
	require.Len(t, candidates, 1)
	assert.Equal(t, "sleep", candidates[0].ActivityID)
	assert.Equal(t, 1.0, candidates[0].Weight, "activity nodes default to weight 1")
}

func TestTimeSlotMatches(t *testing.T) {
	tests := []struct {
		name               string
		start, end, minute float64
		want               bool
	}{
		{"simple range inside", 360, 1080, 600, true},
		{"simple range start inclusive", 360, 1080, 360, true},
		{"simple range end exclusive", 360, 1080, 1080, false},
		{"wrap before midnight", 1290, 360, 1400, true},
		{"wrap after midnight", 1290, 360, 100, true},
		{"wrap outside", 1290, 360, 700, false},
		{"empty slot never matches", 600, 600, 600, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timeSlotMatches(tt.start, tt.end, tt.minute))
		})
	}
}
