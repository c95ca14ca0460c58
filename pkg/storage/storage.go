package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/jwebster45206/npc-engine/pkg/state"
	"github.com/jwebster45206/npc-engine/pkg/world"
)

// Storage defines a unified interface for all storage operations:
// session persistence (Redis) and world config loading (filesystem).
// The engine itself does no I/O; cmd/sim and tooling go through this.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Session operations (Redis-backed)
	SaveSession(ctx context.Context, id uuid.UUID, sess *state.Session) error
	LoadSession(ctx context.Context, id uuid.UUID) (*state.Session, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error

	// World config operations (filesystem-backed). GetWorld returns a
	// validated, current-version WorldDef; config migration happens
	// before this layer.
	ListWorlds(ctx context.Context) ([]string, error)
	GetWorld(ctx context.Context, id string) (*world.WorldDef, error)
}
