// Package quest tracks live quest state over the immutable definitions in
// the data catalog. Definitions never change at runtime; all mutation goes
// through the Log.
package quest

import "github.com/NathanVRyver/game-engine/internal/data"

// Status is the quest lifecycle state. Transitions are monotonic:
// NotStarted → Active → Completed or Failed. There is no way back.
type Status int

const (
	NotStarted Status = 0
	Active     Status = 1
	Completed  Status = 2
	Failed     Status = 3
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Active:
		return "active"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Objective is the live progress of one definition objective.
// Completed is derived: Current >= the definition's Required.
type Objective struct {
	Def       data.ObjectiveDef
	Current   int
	Completed bool
}

// Quest is one quest's live state: its definition, its status, and the
// progress of each objective in definition order.
type Quest struct {
	Def        *data.QuestDef
	Status     Status
	Objectives []Objective
}

// ObjectivesComplete reports whether every objective is done.
func (q *Quest) ObjectivesComplete() bool {
	for i := range q.Objectives {
		if !q.Objectives[i].Completed {
			return false
		}
	}
	return true
}

// Objective returns the live objective with the given ID, or nil.
func (q *Quest) Objective(objectiveID string) *Objective {
	for i := range q.Objectives {
		if q.Objectives[i].Def.ID == objectiveID {
			return &q.Objectives[i]
		}
	}
	return nil
}

func newQuest(def *data.QuestDef) *Quest {
	q := &Quest{
		Def:        def,
		Status:     NotStarted,
		Objectives: make([]Objective, 0, len(def.Objectives)),
	}
	for _, od := range def.Objectives {
		q.Objectives = append(q.Objectives, Objective{Def: od})
	}
	return q
}
