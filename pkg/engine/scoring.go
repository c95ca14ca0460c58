package engine

import (
	"math"

	"github.com/jwebster45206/npc-engine/pkg/effect"
	"github.com/jwebster45206/npc-engine/pkg/state"
	"github.com/jwebster45206/npc-engine/pkg/world"
)

// ScoreEpsilon is the floor for a candidate's final score. Negative
// totals clamp here instead of being excluded so the weighted-random
// draw stays well-defined.
const ScoreEpsilon = 1e-4

// DefaultRelationshipMetric feeds the relationship-bonus factor when
// the world does not name one.
const DefaultRelationshipMetric = "friendship"

// Factors is the per-factor breakdown of one candidate's score. Each
// factor is pre-normalized: 0-1 except TraitModifier, which is signed
// [-1,1], and BaseWeight, which is >= 0.
type Factors struct {
	BaseWeight         float64 `json:"base_weight"`
	ActivityPreference float64 `json:"activity_preference"`
	CategoryPreference float64 `json:"category_preference"`
	TraitModifier      float64 `json:"trait_modifier"`
	MoodCompatibility  float64 `json:"mood_compatibility"`
	RelationshipBonus  float64 `json:"relationship_bonus"`
	Urgency            float64 `json:"urgency"`
	Inertia            float64 `json:"inertia"`
}

// weightedSum combines the factors under the world's weight vector.
func (f Factors) weightedSum(w world.ScoringWeights) float64 {
	return w.BaseWeight*f.BaseWeight +
		w.ActivityPreference*f.ActivityPreference +
		w.CategoryPreference*f.CategoryPreference +
		w.TraitModifier*f.TraitModifier +
		w.MoodCompatibility*f.MoodCompatibility +
		w.RelationshipBonus*f.RelationshipBonus +
		w.Urgency*f.Urgency +
		w.Inertia*f.Inertia
}

// Scorer computes candidate scores for one world's scoring config.
type Scorer struct {
	world *world.WorldDef
}

// NewScorer creates a scorer over a world definition.
func NewScorer(w *world.WorldDef) *Scorer {
	return &Scorer{world: w}
}

// Score computes a candidate's score and factor breakdown. detail
// selects the tier's evaluation depth: DetailSimplified zeroes the
// relationship-bonus and trait-modifier terms to skip their lookups.
// The returned score is always >= ScoreEpsilon.
func (s *Scorer) Score(candidate world.WeightedActivity, activity *world.Activity, prefs *EffectivePreferences, npc *state.NPCRuntimeState, npcPrefs *world.NPCPreferences, sess *state.Session, detail string) (float64, Factors) {
	var f Factors

	nodeWeight := candidate.Weight
	if nodeWeight <= 0 {
		nodeWeight = 1
	}
	f.BaseWeight = nodeWeight * activity.Priority()
	f.ActivityPreference = prefs.ActivityWeight(activity.ID)
	f.CategoryPreference = prefs.CategoryWeightOr(activity.Category, s.world.CategoryWeight(activity.Category))
	f.MoodCompatibility = moodCompatibility(npc.MoodTags(), activity.MoodTags)
	f.Urgency = urgency(activity, npc)
	if npc.CurrentActivityID == activity.ID {
		f.Inertia = 1
	}

	if detail != world.DetailSimplified {
		f.TraitModifier = traitModifier(activity, npc, npcPrefs)
		f.RelationshipBonus = s.relationshipBonus(activity, npc, npcPrefs, sess)
	}

	score := f.weightedSum(s.world.Scoring.Weights)
	if score < ScoreEpsilon {
		score = ScoreEpsilon
	}
	return score, f
}

// moodCompatibility is the overlap between the NPC's current mood tags
// and the activity's mood tags. An activity with no mood tags is
// mood-agnostic and scores a neutral 0.5.
func moodCompatibility(npcTags, activityTags []string) float64 {
	if len(activityTags) == 0 {
		return 0.5
	}
	matched := 0
	for _, at := range activityTags {
		for _, nt := range npcTags {
			if at == nt {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(activityTags))
}

// traitModifier averages trait affinity against the NPC's trait
// values, biased by per-trait preference modifiers. Result is clamped
// to [-1, 1].
func traitModifier(activity *world.Activity, npc *state.NPCRuntimeState, npcPrefs *world.NPCPreferences) float64 {
	if len(activity.TraitAffinity) == 0 {
		return 0
	}
	var sum float64
	for trait, affinity := range activity.TraitAffinity {
		v := npc.Trait(trait)
		if npcPrefs != nil {
			v += npcPrefs.TraitModifiers[trait]
		}
		sum += affinity * math.Max(0, math.Min(1, v))
	}
	avg := sum / float64(len(activity.TraitAffinity))
	return math.Max(-1, math.Min(1, avg))
}

// relationshipBonus boosts activities involving a target NPC the
// subject favors: the target's relationship metric normalized into
// [0,1], plus a preferred-target bump, capped at 1.
func (s *Scorer) relationshipBonus(activity *world.Activity, npc *state.NPCRuntimeState, npcPrefs *world.NPCPreferences, sess *state.Session) float64 {
	if activity.TargetNPC == "" {
		return 0
	}
	target := activity.TargetNPC
	if sess != nil {
		target = sess.ResolveTarget(target)
	}

	r := effect.DefaultMetricRange
	if declared, ok := s.world.RelationshipMetrics[DefaultRelationshipMetric]; ok {
		r = declared
	}
	v := npc.RelationshipMetric(target, DefaultRelationshipMetric)
	bonus := 0.0
	if r.Max > r.Min {
		bonus = (v - r.Min) / (r.Max - r.Min)
	}

	if npcPrefs != nil {
		for _, preferred := range npcPrefs.PreferredTargets {
			if preferred == target || preferred == activity.TargetNPC {
				bonus += 0.25
				break
			}
		}
	}
	return math.Max(0, math.Min(1, bonus))
}

// urgency is the inverse of the relevant need: a restorative activity
// (positive energy delta) grows more attractive as energy drops.
func urgency(activity *world.Activity, npc *state.NPCRuntimeState) float64 {
	if activity.Effects == nil || activity.Effects.EnergyDeltaPerHour <= 0 {
		return 0
	}
	return 1 - npc.Energy()/state.EnergyMax
}
