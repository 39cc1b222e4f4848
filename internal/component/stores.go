package component

import "github.com/NathanVRyver/game-engine/internal/core/ecs"

// Stores bundles one typed store per component kind. One map entry per
// entity per store is what makes "at most one component of each kind"
// structural rather than checked; Set on an existing entity replaces.
type Stores struct {
	Transforms   *ecs.PtrComponentStore[Transform]
	Sprites      *ecs.PtrComponentStore[Sprite]
	Colliders    *ecs.PtrComponentStore[Collider]
	DialogueRefs *ecs.PtrComponentStore[DialogueRef]
	NpcTags      *ecs.PtrComponentStore[NpcTag]
	QuestGivers  *ecs.PtrComponentStore[QuestGiver]
	Backpacks    *ecs.PtrComponentStore[Backpack]
}

// NewStores creates every store and registers them for bulk removal on
// entity destroy.
func NewStores(reg *ecs.Registry) *Stores {
	s := &Stores{
		Transforms:   ecs.NewPtrComponentStore[Transform](),
		Sprites:      ecs.NewPtrComponentStore[Sprite](),
		Colliders:    ecs.NewPtrComponentStore[Collider](),
		DialogueRefs: ecs.NewPtrComponentStore[DialogueRef](),
		NpcTags:      ecs.NewPtrComponentStore[NpcTag](),
		QuestGivers:  ecs.NewPtrComponentStore[QuestGiver](),
		Backpacks:    ecs.NewPtrComponentStore[Backpack](),
	}
	reg.Register(s.Transforms)
	reg.Register(s.Sprites)
	reg.Register(s.Colliders)
	reg.Register(s.DialogueRefs)
	reg.Register(s.NpcTags)
	reg.Register(s.QuestGivers)
	reg.Register(s.Backpacks)
	return s
}
