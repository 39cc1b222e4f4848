package system

import (
	"context"
	"time"

	"go.uber.org/zap"

	coresys "github.com/NathanVRyver/game-engine/internal/core/system"
)

// SnapshotSaver persists the current game state under a named slot.
// Implemented by the game facade.
type SnapshotSaver interface {
	SaveSnapshot(ctx context.Context, slot string) error
}

// AutosaveSystem periodically saves the game into a fixed slot. A nil saver
// (persistence disabled) makes the system inert.
type AutosaveSystem struct {
	saver    SnapshotSaver
	slot     string
	interval time.Duration
	elapsed  time.Duration
	log      *zap.Logger
}

func NewAutosaveSystem(saver SnapshotSaver, slot string, interval time.Duration, log *zap.Logger) *AutosaveSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &AutosaveSystem{
		saver:    saver,
		slot:     slot,
		interval: interval,
		log:      log,
	}
}

func (s *AutosaveSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *AutosaveSystem) Update(dt time.Duration) {
	if s.saver == nil || s.interval <= 0 {
		return
	}
	s.elapsed += dt
	if s.elapsed < s.interval {
		return
	}
	s.elapsed = 0

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.saver.SaveSnapshot(ctx, s.slot); err != nil {
		s.log.Warn("autosave failed", zap.String("slot", s.slot), zap.Error(err))
		return
	}
	s.log.Debug("autosaved", zap.String("slot", s.slot))
}
