package system

import (
	"time"

	"github.com/NathanVRyver/game-engine/internal/core/event"
	coresys "github.com/NathanVRyver/game-engine/internal/core/system"
	"github.com/NathanVRyver/game-engine/internal/data"
	"github.com/NathanVRyver/game-engine/internal/quest"
)

// QuestProgressSystem turns gameplay events into objective progress. The
// owning application emits ItemCollected / EnemyKilled / LocationReached,
// the NPC manager emits NpcTalkedTo, and this system forwards each to the
// matching objectives of every active quest.
type QuestProgressSystem struct {
	quests *quest.Log
}

func NewQuestProgressSystem(bus *event.Bus, quests *quest.Log) *QuestProgressSystem {
	s := &QuestProgressSystem{quests: quests}

	event.Subscribe(bus, func(ev event.ItemCollected) {
		s.advance(data.ObjectiveCollectItem, ev.ItemID, ev.Count)
	})
	event.Subscribe(bus, func(ev event.EnemyKilled) {
		s.advance(data.ObjectiveKillEnemy, ev.EnemyID, 1)
	})
	event.Subscribe(bus, func(ev event.LocationReached) {
		s.advance(data.ObjectiveReachLocation, ev.LocationID, 1)
	})
	event.Subscribe(bus, func(ev event.NpcTalkedTo) {
		s.advance(data.ObjectiveTalkToNPC, ev.NpcID, 1)
	})

	return s
}

func (s *QuestProgressSystem) advance(kind data.ObjectiveKind, targetID string, count int) {
	if count <= 0 {
		return
	}
	for _, q := range s.quests.ActiveQuests() {
		for i := range q.Objectives {
			obj := &q.Objectives[i]
			if obj.Def.Kind == kind && obj.Def.TargetID == targetID {
				s.quests.UpdateObjective(q.Def.ID, obj.Def.ID, count)
			}
		}
	}
}

func (s *QuestProgressSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

// Update re-checks script-driven custom objectives; event-driven kinds are
// handled by the subscriptions as events dispatch.
func (s *QuestProgressSystem) Update(dt time.Duration) {
	s.quests.CheckCustomObjectives()
}
