package component

// DialogueRef links an NPC entity to a dialogue tree in the catalog.
// This is a reference, not the tree itself — the tree lives in data/.
type DialogueRef struct {
	TreeID string
}

// NpcTag marks a spawned NPC entity and records which template it came
// from, so interactions can report the NPC kind. Living in a registered
// store means it disappears with the entity on any removal path.
type NpcTag struct {
	TemplateID string
}

// QuestGiver links an NPC entity to the quests it can hand out.
type QuestGiver struct {
	QuestIDs []string
}

// Backpack links an entity to an owned inventory aggregate.
// The inventory itself lives in world/; this is the ECS-side handle.
type Backpack struct {
	InventoryID string
}
