package engine

import (
	"github.com/jwebster45206/npc-engine/pkg/condition"
	"github.com/jwebster45206/npc-engine/pkg/state"
	"github.com/jwebster45206/npc-engine/pkg/world"
)

// ResolveRoutine finds the active node of a routine graph for the
// given world time and returns it with its raw candidate list.
//
// Nodes are checked in declaration order and the first match wins;
// that tie-break is part of the contract for simultaneously matching
// decision nodes. Returns (nil, nil) when no node matches — the caller
// falls back to the configured idle activity.
func ResolveRoutine(graph *world.RoutineGraph, worldTime float64, ctx *condition.Context) (*world.RoutineNode, []world.WeightedActivity) {
	if graph == nil {
		return nil, nil
	}

	minutes := state.MinutesOfDay(worldTime)

	for i := range graph.Nodes {
		node := &graph.Nodes[i]
		switch node.Type {
		case world.NodeTimeSlot:
			if timeSlotMatches(node.Start, node.End, minutes) {
				return node, node.Candidates()
			}
		case world.NodeDecision:
			if condition.EvaluateAll(node.Conditions, ctx) {
				return node, node.Candidates()
			}
		case world.NodeActivity:
			return node, node.Candidates()
		}
	}
	return nil, nil
}

// timeSlotMatches checks minutes-of-day against [start, end), wrapping
// past midnight when end < start (e.g. 22:00-06:00).
func timeSlotMatches(start, end, minutes float64) bool {
	if start == end {
		return false
	}
	if start < end {
		return minutes >= start && minutes < end
	}
	return minutes >= start || minutes < end
}
