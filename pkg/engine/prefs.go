package engine

import (
	"github.com/jwebster45206/npc-engine/pkg/state"
	"github.com/jwebster45206/npc-engine/pkg/world"
)

// NeutralWeight is the implicit value for any preference key no layer
// sets.
const NeutralWeight = 1.0

// EffectivePreferences is the merged result of the three preference
// layers for one decision. Lookups fall through to NeutralWeight.
type EffectivePreferences struct {
	activity map[string]float64
	category map[string]float64
}

// ActivityWeight returns the effective weight for an activity.
func (p *EffectivePreferences) ActivityWeight(activityID string) float64 {
	if w, ok := p.activity[activityID]; ok {
		return w
	}
	return NeutralWeight
}

// CategoryWeight returns the effective weight for a category.
func (p *EffectivePreferences) CategoryWeight(categoryID string) float64 {
	if w, ok := p.category[categoryID]; ok {
		return w
	}
	return NeutralWeight
}

// CategoryWeightOr returns the effective weight for a category, or the
// given default when no layer set the key. The category's own
// default_weight is that default, making it the bottom of the cascade.
func (p *EffectivePreferences) CategoryWeightOr(categoryID string, def float64) float64 {
	if w, ok := p.category[categoryID]; ok {
		return w
	}
	return def
}

// ResolvePreferences merges the preference cascade field by field:
// session override > NPC preference > routine default > neutral.
//
// The merge is per key, never whole-object replacement — routines
// commonly set only a subset of keys, and a session override of one
// activity must not erase the NPC's other preferences.
func ResolvePreferences(routine *world.PreferenceSet, npc *world.NPCPreferences, session *state.PreferenceOverrides) *EffectivePreferences {
	eff := &EffectivePreferences{
		activity: make(map[string]float64),
		category: make(map[string]float64),
	}

	// Least specific first; later layers overwrite per key.
	if routine != nil {
		mergeWeights(eff.activity, routine.ActivityWeights)
		mergeWeights(eff.category, routine.CategoryWeights)
	}
	if npc != nil {
		mergeWeights(eff.activity, npc.ActivityWeights)
		mergeWeights(eff.category, npc.CategoryWeights)
	}
	if session != nil {
		mergeWeights(eff.activity, session.ActivityWeights)
		mergeWeights(eff.category, session.CategoryWeights)
	}
	return eff
}

func mergeWeights(dst, src map[string]float64) {
	for k, v := range src {
		dst[k] = v
	}
}
