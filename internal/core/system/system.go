package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: apply buffered player input
	PhasePreUpdate               // 1: process last tick's events
	PhaseUpdate                  // 2: game logic
	PhasePostUpdate              // 3: derived state (quest auto-complete checks)
	PhaseOutput                  // 4: build render/read views
	PhasePersist                 // 5: autosave
	PhaseCleanup                 // 6: destroy queued entities
)

// System is the interface every game system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
