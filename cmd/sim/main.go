package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/npc-engine/internal/config"
	"github.com/jwebster45206/npc-engine/internal/logger"
	"github.com/jwebster45206/npc-engine/internal/storage"
	"github.com/jwebster45206/npc-engine/pkg/sim"
	"github.com/jwebster45206/npc-engine/pkg/state"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	if cfg.WorldID == "" {
		log.Error("WORLD_ID is required")
		os.Exit(1)
	}

	log.Info("Starting NPC simulation",
		"environment", cfg.Environment,
		"world_id", cfg.WorldID,
		"tick_seconds", cfg.TickSeconds,
		"time_scale", cfg.TimeScale)

	store := storage.NewRedisStorage(cfg.RedisURL, cfg.DataDir, log)
	defer store.Close()

	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()
	if err := store.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}

	def, err := store.GetWorld(context.Background(), cfg.WorldID)
	if err != nil {
		log.Error("Failed to load world", "error", err, "world_id", cfg.WorldID)
		os.Exit(1)
	}

	sess, err := restoreOrCreateSession(cfg, store, def.ID, def.Seed, log)
	if err != nil {
		log.Error("Failed to restore session", "error", err)
		os.Exit(1)
	}

	// Every authored NPC enters simulation with fresh runtime state
	// unless the restored session already tracks it.
	for id, npcDef := range def.NPCs {
		npc := sess.NPC(id)
		if len(npc.Traits) == 0 && len(npcDef.Traits) > 0 {
			for trait, v := range npcDef.Traits {
				npc.Traits[trait] = v
			}
		}
	}

	runner := sim.NewRunner(def, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(time.Duration(cfg.TickSeconds * float64(time.Second)))
	defer ticker.Stop()

	log.Info("Session running", "session_id", sess.ID.String(), "tick", sess.Tick, "npcs", len(sess.NPCs))

	for {
		select {
		case <-ctx.Done():
			log.Info("Shutting down, persisting session", "session_id", sess.ID.String(), "tick", sess.Tick)
			saveCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := store.SaveSession(saveCtx, sess.ID, sess); err != nil {
				log.Error("Failed to persist session on shutdown", "error", err)
				os.Exit(1)
			}
			return
		case <-ticker.C:
			elapsed := cfg.TickSeconds * cfg.TimeScale
			worldTime := sess.WorldTime + elapsed

			report, err := runner.Tick(ctx, sess, worldTime, elapsed)
			if err != nil {
				log.Warn("Tick abandoned", "error", err)
				continue
			}

			log.Debug("Tick complete",
				"tick", report.Tick,
				"world_time", report.WorldTime,
				"scheduled", len(report.Scheduled),
				"fallbacks", len(report.Fallbacks),
				"warnings", len(report.Warnings))

			if err := store.SaveSession(ctx, sess.ID, sess); err != nil {
				log.Error("Failed to persist session", "error", err, "tick", report.Tick)
			}
		}
	}
}

func restoreOrCreateSession(cfg *config.Config, store *storage.RedisStorage, worldID string, seed uint64, log *slog.Logger) (*state.Session, error) {
	if cfg.SessionID != "" {
		id, err := uuid.Parse(cfg.SessionID)
		if err != nil {
			return nil, err
		}
		sess, err := store.LoadSession(context.Background(), id)
		if err != nil {
			return nil, err
		}
		if sess != nil {
			log.Info("Resumed session", "session_id", id.String(), "tick", sess.Tick)
			return sess, nil
		}
		log.Info("Session not found, starting fresh", "session_id", id.String())
	}
	sess := state.NewSession(worldID, seed)
	log.Info("Created session", "session_id", sess.ID.String())
	return sess, nil
}
