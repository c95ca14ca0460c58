package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jwebster45206/npc-engine/internal/config"
	"github.com/jwebster45206/npc-engine/internal/logger"
	"github.com/jwebster45206/npc-engine/internal/storage"
	"github.com/jwebster45206/npc-engine/pkg/engine"
)

// console is a read-only debug viewer: it loads a live session and
// renders the ranked candidate breakdown the selector would see for
// each NPC, so designers can explain and tune decisions without
// touching state.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.Setup(cfg)

	if cfg.WorldID == "" || cfg.SessionID == "" {
		fmt.Fprintln(os.Stderr, "WORLD_ID and SESSION_ID are required")
		os.Exit(1)
	}
	sessionID, err := uuid.Parse(cfg.SessionID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid SESSION_ID: %v\n", err)
		os.Exit(1)
	}

	store := storage.NewRedisStorage(cfg.RedisURL, cfg.DataDir, log)
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	def, err := store.GetWorld(ctx, cfg.WorldID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load world: %v\n", err)
		os.Exit(1)
	}
	sess, err := store.LoadSession(ctx, sessionID)
	if err != nil || sess == nil {
		fmt.Fprintf(os.Stderr, "load session %s: %v\n", sessionID, err)
		os.Exit(1)
	}

	npcIDs := make([]string, 0, len(sess.NPCs))
	for id := range sess.NPCs {
		npcIDs = append(npcIDs, id)
	}
	sort.Strings(npcIDs)
	if len(npcIDs) == 0 {
		fmt.Fprintln(os.Stderr, "session has no NPCs yet")
		os.Exit(1)
	}

	ui := &ConsoleUI{
		store:     store,
		sessionID: sessionID,
		sess:      sess,
		selector:  engine.NewSelector(def, log),
		npcIDs:    npcIDs,
	}

	if _, err := tea.NewProgram(ui, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "console: %v\n", err)
		os.Exit(1)
	}
}
