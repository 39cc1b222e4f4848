package event

import "github.com/NathanVRyver/game-engine/internal/core/ecs"

// Gameplay events that drive quest objective progress. The owning
// application (or a system) emits these; QuestProgressSystem consumes them.

type ItemCollected struct {
	ItemID string
	Count  int
}

type EnemyKilled struct {
	EnemyID string
	Killer  ecs.EntityID
}

type LocationReached struct {
	LocationID string
}

type NpcTalkedTo struct {
	NpcID    string // template ID, matches TalkToNPC objective targets
	EntityID ecs.EntityID
}

type QuestCompleted struct {
	QuestID string
}
