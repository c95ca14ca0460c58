package sim

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/jwebster45206/npc-engine/pkg/effect"
	"github.com/jwebster45206/npc-engine/pkg/engine"
	"github.com/jwebster45206/npc-engine/pkg/state"
	"github.com/jwebster45206/npc-engine/pkg/world"
)

// Runner drives the two-phase tick for one world: a read-only decide
// phase over a frozen session snapshot, then a single-threaded apply
// phase that commits every decision.
type Runner struct {
	world    *world.WorldDef
	selector *engine.Selector
	exec     *effect.Executor
	sched    *Scheduler
	logger   *slog.Logger
	workers  int
}

// NewRunner creates a runner for a world definition.
func NewRunner(w *world.WorldDef, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		world:    w,
		selector: engine.NewSelector(w, logger),
		exec:     effect.NewExecutor(w.RelationshipMetrics, logger),
		sched:    NewScheduler(w, logger),
		logger:   logger,
		workers:  runtime.GOMAXPROCS(0),
	}
}

// Selector exposes the decide pipeline for preview tooling.
func (r *Runner) Selector() *engine.Selector { return r.selector }

// Tick advances the session by one simulation step.
//
// The decide phase fans one goroutine per scheduled NPC over the
// session snapshot; no decision observes another NPC's in-flight
// mutation, so results are independent of goroutine order. The apply
// phase then commits sequentially; shared relationship edges and flags
// go through the executor's accumulator so apply order cannot change
// the outcome. A cancelled context abandons the tick between phases
// with no partial writes.
func (r *Runner) Tick(ctx context.Context, sess *state.Session, worldTime, elapsedSeconds float64) (*TickReport, error) {
	tick := sess.Tick
	scheduled := r.sched.Schedule(sess, worldTime, tick)

	report := &TickReport{
		Tick:      tick,
		WorldTime: worldTime,
		Scheduled: scheduled,
		Logs:      make(map[string]*effect.Log, len(scheduled)),
	}

	// Decide phase: read-only, parallel.
	decisions := make([]engine.Decision, len(scheduled))
	sem := make(chan struct{}, r.workers)
	var wg sync.WaitGroup
	for i, sn := range scheduled {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, sn ScheduledNPC) {
			defer wg.Done()
			defer func() { <-sem }()
			decisions[i] = r.selector.Decide(sess, sn.NPCID, worldTime, tick, sn.Detail)
		}(i, sn)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("tick %d abandoned before apply: %w", tick, err)
	}

	// Apply phase: sequential commit of every decision.
	acc := effect.NewAccumulator()
	for _, d := range decisions {
		npc := sess.NPC(d.NPCID)
		// Periodic effects accrue from the NPC's own last commit, not
		// the global tick gap: a low-tier NPC evaluated every minute
		// still earns the full minute of its activity.
		slice := elapsedSeconds
		if npc.LastEvaluated > 0 {
			slice = worldTime - npc.LastEvaluated
		}
		log := r.selector.Commit(d, sess, r.exec, worldTime, slice, acc)
		npc.LastEvaluated = worldTime
		report.Logs[d.NPCID] = log

		if d.Fallback {
			report.Fallbacks = append(report.Fallbacks, d.NPCID)
		}
		if d.Frozen {
			report.Frozen = append(report.Frozen, d.NPCID)
		}
		report.Warnings = append(report.Warnings, d.Warnings...)
	}
	r.exec.Commit(acc, sess, report.Logs)

	sess.Tick = tick + 1
	sess.WorldTime = worldTime
	sess.UpdatedAt = time.Now()
	report.ClampCount = r.exec.ClampCount
	return report, nil
}
