package condition

import (
	"log/slog"
	"reflect"
)

// NPCView provides the minimal NPC state needed for evaluation.
// This avoids an import cycle with the state package.
type NPCView interface {
	Energy() float64
	MoodTags() []string
	RelationshipMetric(target, metric string) float64
}

// WorldView provides the minimal world/session state needed for evaluation.
type WorldView interface {
	Flag(key string) (any, bool)
	TimeOfDayBucket() string
	// ResolveTarget maps a role alias (e.g. "rival") to an NPC id.
	// Unknown aliases resolve to themselves.
	ResolveTarget(target string) string
}

// Context carries the views and RNG stream for one evaluation pass.
// Rand must draw from the per-NPC deterministic stream so decisions
// stay reproducible across runs.
type Context struct {
	NPC    NPCView
	World  WorldView
	Rand   func() float64
	Logger *slog.Logger
}

// Evaluate returns whether the condition holds. It is a total function:
// unknown types, missing fields, or unregistered custom evaluators are
// false and logged at warn level, never an error.
func Evaluate(c Condition, ctx *Context) bool {
	if ctx == nil {
		return false
	}

	switch c.Type {
	case TypeAllOf:
		for _, sub := range c.Conditions {
			if !Evaluate(sub, ctx) {
				return false
			}
		}
		return len(c.Conditions) > 0

	case TypeAnyOf:
		for _, sub := range c.Conditions {
			if Evaluate(sub, ctx) {
				return true
			}
		}
		return false

	case TypeRelationshipGT:
		if ctx.NPC == nil || c.Metric == "" {
			return false
		}
		target := c.Target
		if ctx.World != nil {
			target = ctx.World.ResolveTarget(target)
		}
		return ctx.NPC.RelationshipMetric(target, c.Metric) > c.Threshold

	case TypeFlagEquals:
		if ctx.World == nil || c.Flag == "" {
			return false
		}
		v, ok := ctx.World.Flag(c.Flag)
		if !ok {
			return false
		}
		return valuesEqual(v, c.Value)

	case TypeEnergyBetween:
		if ctx.NPC == nil {
			return false
		}
		e := ctx.NPC.Energy()
		if c.MinEnergy != nil && e < *c.MinEnergy {
			return false
		}
		if c.MaxEnergy != nil && e > *c.MaxEnergy {
			return false
		}
		return true

	case TypeMoodIn:
		if ctx.NPC == nil {
			return false
		}
		for _, tag := range ctx.NPC.MoodTags() {
			for _, want := range c.Tags {
				if tag == want {
					return true
				}
			}
		}
		return false

	case TypeTimeOfDayIn:
		if ctx.World == nil {
			return false
		}
		bucket := ctx.World.TimeOfDayBucket()
		for _, want := range c.Buckets {
			if bucket == want {
				return true
			}
		}
		return false

	case TypeRandomChance:
		if ctx.Rand == nil {
			return false
		}
		return ctx.Rand() <= c.Chance

	case TypeCustom:
		fn, ok := lookup(c.ID)
		if !ok {
			warn(ctx, "unregistered custom condition", "id", c.ID)
			return false
		}
		return fn(c.Params, ctx)

	default:
		warn(ctx, "unknown condition type", "type", c.Type)
		return false
	}
}

// EvaluateAll returns whether every condition in the slice holds.
// An empty slice is vacuously true (no gate).
func EvaluateAll(conds []Condition, ctx *Context) bool {
	for _, c := range conds {
		if !Evaluate(c, ctx) {
			return false
		}
	}
	return true
}

// valuesEqual compares flag values with numeric tolerance for the
// int/float64 mismatch that JSON and YAML decoding produce.
func valuesEqual(a, b any) bool {
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			return af == bf
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func warn(ctx *Context, msg string, args ...any) {
	if ctx.Logger != nil {
		ctx.Logger.Warn(msg, args...)
	}
}
