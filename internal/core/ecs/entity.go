package ecs

// EntityID is a monotonically increasing identifier. IDs are never reused,
// so a stale reference can only ever miss — it can never alias a newer entity.
type EntityID uint64

func (id EntityID) IsZero() bool { return id == 0 }

// EntityKind is the coarse classification of a game object.
type EntityKind int

const (
	KindPlayer EntityKind = iota
	KindNPC
	KindItem
	KindTrigger
)

func (k EntityKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindNPC:
		return "npc"
	case KindItem:
		return "item"
	case KindTrigger:
		return "trigger"
	}
	return "unknown"
}

// Entity carries the identity-level metadata of a game object. Typed data
// lives in component stores keyed by the entity's ID.
type Entity struct {
	ID     EntityID
	Kind   EntityKind
	Name   string
	Active bool
}
