package sim

import (
	"log/slog"
	"sort"

	"github.com/jwebster45206/npc-engine/pkg/condition"
	"github.com/jwebster45206/npc-engine/pkg/engine"
	"github.com/jwebster45206/npc-engine/pkg/state"
	"github.com/jwebster45206/npc-engine/pkg/world"
)

// ScheduledNPC is one NPC selected for evaluation this tick, with the
// tier that determined its evaluation depth.
type ScheduledNPC struct {
	NPCID  string `json:"npc_id"`
	Tier   string `json:"tier"`
	Detail string `json:"detail"`
}

// Scheduler assigns each NPC a performance tier per tick and decides
// who gets evaluated. Tier assignment is recomputed every tick, never
// sticky, via first-matching priority rule.
type Scheduler struct {
	world  *world.WorldDef
	logger *slog.Logger
}

// NewScheduler creates a scheduler for a world definition.
func NewScheduler(w *world.WorldDef, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{world: w, logger: logger}
}

// fullTier is used when a world declares no tiers: everything runs at
// full detail every tick.
var fullTier = world.Tier{ID: "default", DetailLevel: world.DetailFull}

// AssignTier returns the tier for an NPC this tick: the first priority
// rule whose conditions hold, else the default tier. Rules are an
// ordered list evaluated top to bottom; first match wins.
func (s *Scheduler) AssignTier(sess *state.Session, npcID string, tick uint64) world.Tier {
	sc := &s.world.Simulation
	if len(sc.Tiers) == 0 {
		return fullTier
	}

	npc := sess.NPC(npcID)
	// Tier-rule randomness draws from a stream separate from the
	// decision stream so scheduling never perturbs decide results.
	rng := engine.DecisionStream(sess.Seed, tick, npcID+"#tier")
	ctx := &condition.Context{NPC: npc, World: sess, Rand: rng.Float64, Logger: s.logger}

	for _, rule := range sc.PriorityRules {
		if condition.EvaluateAll(rule.When, ctx) {
			if t := sc.TierByID(rule.Tier); t != nil {
				return *t
			}
		}
	}
	if t := sc.TierByID(sc.DefaultTier); t != nil {
		return *t
	}
	return sc.Tiers[0]
}

// Schedule returns the NPCs to evaluate this tick. An NPC is eligible
// when its tier's tick frequency has elapsed since its last
// evaluation. When the eligible set exceeds max_npcs_per_tick, the
// oldest-evaluated NPCs go first (ties break by id), so a steady cap
// rotates through the population instead of starving the same NPCs.
func (s *Scheduler) Schedule(sess *state.Session, worldTime float64, tick uint64) []ScheduledNPC {
	ids := make([]string, 0, len(sess.NPCs))
	for id := range sess.NPCs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	type eligible struct {
		sched         ScheduledNPC
		lastEvaluated float64
	}
	var pool []eligible
	for _, id := range ids {
		npc := sess.NPC(id)
		tier := s.AssignTier(sess, id, tick)
		if npc.LastEvaluated > 0 && worldTime-npc.LastEvaluated < tier.TickFrequency {
			continue
		}
		pool = append(pool, eligible{
			sched:         ScheduledNPC{NPCID: id, Tier: tier.ID, Detail: tier.DetailLevel},
			lastEvaluated: npc.LastEvaluated,
		})
	}

	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].lastEvaluated != pool[j].lastEvaluated {
			return pool[i].lastEvaluated < pool[j].lastEvaluated
		}
		return pool[i].sched.NPCID < pool[j].sched.NPCID
	})

	max := s.world.Simulation.MaxNPCsPerTick
	if max > 0 && len(pool) > max {
		s.logger.Warn("tick cap exceeded, deferring NPCs",
			"eligible", len(pool), "max_npcs_per_tick", max)
		pool = pool[:max]
	}

	out := make([]ScheduledNPC, len(pool))
	for i, e := range pool {
		out[i] = e.sched
	}
	return out
}
