package world

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jwebster45206/npc-engine/pkg/condition"
)

// Validate checks cross-references and value ranges across the world
// definition. These are save-time failures: a world that references an
// unknown activity, category, or tier never reaches the engine. The
// engine itself tolerates dangling references at runtime (skip + warn)
// so a stale snapshot degrades instead of crashing.
func (w *WorldDef) Validate() error {
	var errs []string

	for _, id := range sortedKeys(w.Categories) {
		c := w.Categories[id]
		if c.DefaultWeight < 0 || c.DefaultWeight > 1 {
			errs = append(errs, fmt.Sprintf("category %q: default_weight %.2f outside [0,1]", id, c.DefaultWeight))
		}
	}

	for _, id := range sortedKeys(w.Activities) {
		a := w.Activities[id]
		if a.Category != "" {
			if _, ok := w.Categories[a.Category]; !ok {
				errs = append(errs, fmt.Sprintf("activity %q references unknown category %q", id, a.Category))
			}
		}
		if a.MinDuration < 0 {
			errs = append(errs, fmt.Sprintf("activity %q: negative min_duration_s", id))
		}
		if a.Cooldown < 0 {
			errs = append(errs, fmt.Sprintf("activity %q: negative cooldown_s", id))
		}
		if a.Requirements != nil {
			errs = append(errs, validateConditions(a.Requirements.Conditions, fmt.Sprintf("activity %q requirements", id))...)
		}
	}

	for _, id := range sortedKeys(w.Routines) {
		g := w.Routines[id]
		for _, node := range g.Nodes {
			switch node.Type {
			case NodeTimeSlot, NodeDecision, NodeActivity:
			default:
				errs = append(errs, fmt.Sprintf("routine %q node %q: unknown type %q", id, node.ID, node.Type))
			}
			for _, wa := range node.Candidates() {
				if _, ok := w.Activities[wa.ActivityID]; !ok && wa.ActivityID != IdleActivityID {
					errs = append(errs, fmt.Sprintf("routine %q node %q references unknown activity %q", id, node.ID, wa.ActivityID))
				}
				errs = append(errs, validateConditions(wa.Conditions, fmt.Sprintf("routine %q node %q candidate %q", id, node.ID, wa.ActivityID))...)
			}
			errs = append(errs, validateConditions(node.Conditions, fmt.Sprintf("routine %q node %q", id, node.ID))...)
		}
		if g.DefaultPreferences != nil {
			errs = append(errs, w.validatePrefKeys(g.DefaultPreferences.ActivityWeights, g.DefaultPreferences.CategoryWeights, fmt.Sprintf("routine %q default_preferences", id))...)
		}
	}

	for _, id := range sortedKeys(w.NPCs) {
		n := w.NPCs[id]
		if n.Routine != "" {
			if _, ok := w.Routines[n.Routine]; !ok {
				errs = append(errs, fmt.Sprintf("npc %q references unknown routine %q", id, n.Routine))
			}
		}
		if n.Preferences != nil {
			errs = append(errs, w.validatePrefKeys(n.Preferences.ActivityWeights, n.Preferences.CategoryWeights, fmt.Sprintf("npc %q preferences", id))...)
		}
	}

	errs = append(errs, w.validateSimulation()...)

	if len(errs) > 0 {
		return fmt.Errorf("world %q validation failed:\n%s", w.ID, strings.Join(errs, "\n"))
	}
	return nil
}

func (w *WorldDef) validatePrefKeys(activityWeights, categoryWeights map[string]float64, where string) []string {
	var errs []string
	for _, aid := range sortedKeys(activityWeights) {
		if _, ok := w.Activities[aid]; !ok && aid != IdleActivityID {
			errs = append(errs, fmt.Sprintf("%s references unknown activity %q", where, aid))
		}
	}
	for _, cid := range sortedKeys(categoryWeights) {
		if _, ok := w.Categories[cid]; !ok {
			errs = append(errs, fmt.Sprintf("%s references unknown category %q", where, cid))
		}
	}
	return errs
}

func (w *WorldDef) validateSimulation() []string {
	var errs []string
	sc := &w.Simulation

	if len(sc.Tiers) == 0 {
		return errs // a world without tiers runs everything at full detail
	}

	seen := map[string]bool{}
	for _, t := range sc.Tiers {
		if seen[t.ID] {
			errs = append(errs, fmt.Sprintf("simulation: duplicate tier id %q", t.ID))
		}
		seen[t.ID] = true
		switch t.DetailLevel {
		case DetailFull, DetailSimplified, DetailScheduleOnly:
		default:
			errs = append(errs, fmt.Sprintf("simulation tier %q: unknown detail_level %q", t.ID, t.DetailLevel))
		}
		if t.TickFrequency < 0 {
			errs = append(errs, fmt.Sprintf("simulation tier %q: negative tick_frequency_s", t.ID))
		}
	}

	if sc.DefaultTier != "" && !seen[sc.DefaultTier] {
		errs = append(errs, fmt.Sprintf("simulation: default_tier %q is not a declared tier", sc.DefaultTier))
	}
	for i, rule := range sc.PriorityRules {
		if !seen[rule.Tier] {
			errs = append(errs, fmt.Sprintf("simulation priority_rules[%d]: tier %q is not a declared tier", i, rule.Tier))
		}
		errs = append(errs, validateConditions(rule.When, fmt.Sprintf("simulation priority_rules[%d]", i))...)
	}
	if sc.FallbackActivityID != "" {
		if _, ok := w.Activities[sc.FallbackActivityID]; !ok {
			errs = append(errs, fmt.Sprintf("simulation: fallback_activity_id %q is not a declared activity", sc.FallbackActivityID))
		}
	}
	return errs
}

// validateConditions checks structural soundness of authored
// conditions. Custom conditions must carry an id; whether the id is
// registered is a process concern, so only emptiness is rejected here.
func validateConditions(conds []condition.Condition, where string) []string {
	var errs []string
	for _, c := range conds {
		switch c.Type {
		case condition.TypeRelationshipGT, condition.TypeFlagEquals,
			condition.TypeEnergyBetween, condition.TypeMoodIn,
			condition.TypeTimeOfDayIn:
		case condition.TypeRandomChance:
			if c.Chance < 0 || c.Chance > 1 {
				errs = append(errs, fmt.Sprintf("%s: random_chance %.2f outside [0,1]", where, c.Chance))
			}
		case condition.TypeCustom:
			if c.ID == "" {
				errs = append(errs, fmt.Sprintf("%s: custom condition with empty id", where))
			}
		case condition.TypeAllOf, condition.TypeAnyOf:
			errs = append(errs, validateConditions(c.Conditions, where)...)
		default:
			errs = append(errs, fmt.Sprintf("%s: unknown condition type %q", where, c.Type))
		}
	}
	return errs
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
