package system

import (
	"time"

	"github.com/NathanVRyver/game-engine/internal/core/event"
	coresys "github.com/NathanVRyver/game-engine/internal/core/system"
)

// EventDispatchSystem rotates the event bus at tick start and delivers last
// tick's events to their subscribers. It must be the only system that
// touches the buffers so delivery happens exactly once per tick.
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *EventDispatchSystem) Update(dt time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
