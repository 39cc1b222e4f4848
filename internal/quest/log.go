package quest

import (
	"go.uber.org/zap"

	"github.com/NathanVRyver/game-engine/internal/data"
	"github.com/NathanVRyver/game-engine/internal/world"
)

// ScriptEvaluator decides custom objective completion. Implemented by the
// scripting engine; nil disables custom objectives.
type ScriptEvaluator interface {
	EvalObjective(script string, current, required int) (bool, error)
}

// Log owns every instantiated quest. Quests iterate in instantiation order
// so ActiveQuests and snapshots replay deterministically.
type Log struct {
	defs    *data.QuestTable
	quests  map[string]*Quest
	order   []string
	tracked string

	scripts     ScriptEvaluator
	onCompleted func(*Quest)
	log         *zap.Logger
}

func NewLog(defs *data.QuestTable, log *zap.Logger) *Log {
	if log == nil {
		log = zap.NewNop()
	}
	return &Log{
		defs:   defs,
		quests: make(map[string]*Quest, 32),
		log:    log,
	}
}

// SetScriptEvaluator wires the Lua predicate used by custom objectives.
func (l *Log) SetScriptEvaluator(ev ScriptEvaluator) { l.scripts = ev }

// SetCompletionHook registers a callback fired whenever a quest reaches
// Completed, whether by auto-completion or by CompleteQuest.
func (l *Log) SetCompletionHook(fn func(*Quest)) { l.onCompleted = fn }

// LoadQuest instantiates a quest from the definition table. Already-loaded
// quests are left untouched. Reports whether the quest is now loaded.
func (l *Log) LoadQuest(questID string) bool {
	if _, ok := l.quests[questID]; ok {
		return true
	}
	def := l.defs.Get(questID)
	if def == nil {
		l.log.Warn("unknown quest", zap.String("quest_id", questID))
		return false
	}
	l.quests[questID] = newQuest(def)
	l.order = append(l.order, questID)
	return true
}

// Get returns the live quest, or nil if it was never loaded.
func (l *Log) Get(questID string) *Quest {
	return l.quests[questID]
}

// StartQuest transitions NotStarted → Active, loading the quest from the
// definition table if needed. Any other starting state is a no-op returning
// false — starting twice is harmless, not an error.
func (l *Log) StartQuest(questID string) bool {
	if !l.LoadQuest(questID) {
		return false
	}
	q := l.quests[questID]
	if q.Status != NotStarted {
		return false
	}
	q.Status = Active
	l.log.Info("quest started", zap.String("quest_id", questID), zap.String("title", q.Def.Title))
	return true
}

// UpdateObjective adds count to the named objective's progress, clamped at
// its required amount, and recomputes the completed flag. If that leaves an
// Active quest with every objective complete, the quest auto-completes in
// the same call. Reports whether the objective was found and updated.
func (l *Log) UpdateObjective(questID, objectiveID string, count int) bool {
	q := l.quests[questID]
	if q == nil {
		return false
	}
	obj := q.Objective(objectiveID)
	if obj == nil {
		return false
	}

	obj.Current += count
	if obj.Current > obj.Def.Required {
		obj.Current = obj.Def.Required
	}
	if obj.Current < 0 {
		obj.Current = 0
	}
	obj.Completed = obj.Current >= obj.Def.Required

	if q.Status == Active && q.ObjectivesComplete() {
		l.complete(q)
	}
	return true
}

// CheckCustomObjectives re-evaluates every custom objective of every active
// quest against the script evaluator. No-op without an evaluator.
func (l *Log) CheckCustomObjectives() {
	if l.scripts == nil {
		return
	}
	for _, id := range l.order {
		q := l.quests[id]
		if q.Status != Active {
			continue
		}
		changed := false
		for i := range q.Objectives {
			obj := &q.Objectives[i]
			if obj.Def.Kind != data.ObjectiveCustom || obj.Def.Script == "" || obj.Completed {
				continue
			}
			done, err := l.scripts.EvalObjective(obj.Def.Script, obj.Current, obj.Def.Required)
			if err != nil {
				l.log.Warn("custom objective script failed",
					zap.String("quest_id", id),
					zap.String("objective_id", obj.Def.ID),
					zap.Error(err),
				)
				continue
			}
			if done {
				obj.Current = obj.Def.Required
				obj.Completed = true
				changed = true
			}
		}
		if changed && q.ObjectivesComplete() {
			l.complete(q)
		}
	}
}

// CompleteQuest manually transitions Active → Completed. Any other state is
// a silent no-op returning false.
func (l *Log) CompleteQuest(questID string) bool {
	q := l.quests[questID]
	if q == nil || q.Status != Active {
		return false
	}
	l.complete(q)
	return true
}

// FailQuest transitions Active → Failed. Terminal; no further transitions.
func (l *Log) FailQuest(questID string) bool {
	q := l.quests[questID]
	if q == nil || q.Status != Active {
		return false
	}
	q.Status = Failed
	if l.tracked == questID {
		l.tracked = ""
	}
	l.log.Info("quest failed", zap.String("quest_id", questID))
	return true
}

func (l *Log) complete(q *Quest) {
	q.Status = Completed
	if l.tracked == q.Def.ID {
		l.tracked = ""
	}
	l.log.Info("quest completed", zap.String("quest_id", q.Def.ID), zap.String("title", q.Def.Title))
	if l.onCompleted != nil {
		l.onCompleted(q)
	}
}

// ActiveQuests returns the active quests in instantiation order.
func (l *Log) ActiveQuests() []*Quest {
	out := make([]*Quest, 0, len(l.order))
	for _, id := range l.order {
		if q := l.quests[id]; q.Status == Active {
			out = append(out, q)
		}
	}
	return out
}

// AllQuests returns every instantiated quest in instantiation order.
func (l *Log) AllQuests() []*Quest {
	out := make([]*Quest, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.quests[id])
	}
	return out
}

// SetTracked points the UI-focus cursor at a quest. Purely presentation
// state — tracking neither requires nor changes any status.
func (l *Log) SetTracked(questID string) { l.tracked = questID }

// ClearTracked drops the UI-focus cursor.
func (l *Log) ClearTracked() { l.tracked = "" }

// Tracked returns the UI-focused quest ID, or "".
func (l *Log) Tracked() string { return l.tracked }

// Export captures every instantiated quest for the save snapshot.
func (l *Log) Export() []world.QuestSnapshot {
	out := make([]world.QuestSnapshot, 0, len(l.order))
	for _, id := range l.order {
		q := l.quests[id]
		progress := make(map[string]int, len(q.Objectives))
		for i := range q.Objectives {
			progress[q.Objectives[i].Def.ID] = q.Objectives[i].Current
		}
		out = append(out, world.QuestSnapshot{
			QuestID:  id,
			Status:   int(q.Status),
			Progress: progress,
		})
	}
	return out
}

// Restore rebuilds the log from a save snapshot. Quests whose definition no
// longer exists are skipped. Progress is clamped, completion flags
// recomputed; statuses are restored as-is without firing completion hooks.
func (l *Log) Restore(snaps []world.QuestSnapshot) {
	l.quests = make(map[string]*Quest, len(snaps))
	l.order = l.order[:0]
	l.tracked = ""
	for _, snap := range snaps {
		def := l.defs.Get(snap.QuestID)
		if def == nil {
			l.log.Warn("saved quest no longer defined", zap.String("quest_id", snap.QuestID))
			continue
		}
		q := newQuest(def)
		q.Status = Status(snap.Status)
		for i := range q.Objectives {
			obj := &q.Objectives[i]
			cur := snap.Progress[obj.Def.ID]
			if cur > obj.Def.Required {
				cur = obj.Def.Required
			}
			if cur < 0 {
				cur = 0
			}
			obj.Current = cur
			obj.Completed = cur >= obj.Def.Required
		}
		l.quests[snap.QuestID] = q
		l.order = append(l.order, snap.QuestID)
	}
}
