package system

import (
	"time"

	"github.com/NathanVRyver/game-engine/internal/core/ecs"
	coresys "github.com/NathanVRyver/game-engine/internal/core/system"
)

// CleanupSystem destroys entities queued during the tick. Runs last so no
// earlier system ever observes a half-removed entity.
type CleanupSystem struct {
	world *ecs.World
}

func NewCleanupSystem(world *ecs.World) *CleanupSystem {
	return &CleanupSystem{world: world}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(dt time.Duration) {
	s.world.FlushDestroyQueue()
}
