// Package npc composes the entity store, the dialogue system, and the
// quest log into quest-giving characters the player can talk to.
package npc

import (
	"math"

	"go.uber.org/zap"

	"github.com/NathanVRyver/game-engine/internal/component"
	"github.com/NathanVRyver/game-engine/internal/core/ecs"
	"github.com/NathanVRyver/game-engine/internal/core/event"
	"github.com/NathanVRyver/game-engine/internal/data"
	"github.com/NathanVRyver/game-engine/internal/dialogue"
	"github.com/NathanVRyver/game-engine/internal/quest"
)

// Manager spawns NPC entities and mediates player interaction with them.
type Manager struct {
	world     *ecs.World
	comps     *component.Stores
	templates *data.NpcTable
	dialogues *data.DialogueTable
	convo     *dialogue.System
	quests    *quest.Log
	bus       *event.Bus // optional; emits NpcTalkedTo on interaction
	radius    float64
	log       *zap.Logger
}

func NewManager(
	world *ecs.World,
	comps *component.Stores,
	templates *data.NpcTable,
	dialogues *data.DialogueTable,
	convo *dialogue.System,
	quests *quest.Log,
	bus *event.Bus,
	interactionRadius float64,
	log *zap.Logger,
) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	if interactionRadius <= 0 {
		interactionRadius = 48
	}
	return &Manager{
		world:     world,
		comps:     comps,
		templates: templates,
		dialogues: dialogues,
		convo:     convo,
		quests:    quests,
		bus:       bus,
		radius:    interactionRadius,
		log:       log,
	}
}

// InteractionRadius returns the configured pickup radius for InteractNearest.
func (m *Manager) InteractionRadius() float64 { return m.radius }

// CreateNPC spawns an entity from an NPC template with Transform, Sprite,
// a solid Collider, and an NpcTag naming the template, then attaches the
// template's dialogue and quests. Returns the zero EntityID if the template
// is unknown.
func (m *Manager) CreateNPC(npcID string, x, y float64) ecs.EntityID {
	tmpl := m.templates.Get(npcID)
	if tmpl == nil {
		m.log.Warn("unknown npc template", zap.String("npc_id", npcID))
		return 0
	}
	e := m.world.CreateEntity(ecs.KindNPC, tmpl.Name)
	m.comps.Transforms.Set(e.ID, &component.Transform{
		X: x, Y: y, Width: tmpl.Width, Height: tmpl.Height,
	})
	m.comps.Sprites.Set(e.ID, &component.Sprite{TextureRef: tmpl.TextureRef})
	m.comps.Colliders.Set(e.ID, &component.Collider{Solid: true})
	m.comps.NpcTags.Set(e.ID, &component.NpcTag{TemplateID: tmpl.NpcID})

	if tmpl.DialogueID != "" {
		m.AttachDialogue(e.ID, tmpl.DialogueID)
	}
	for _, qid := range tmpl.QuestIDs {
		m.AttachQuest(e.ID, qid)
	}
	return e.ID
}

// AttachDialogue points an NPC at a dialogue tree. Fails if the entity is
// not a live NPC or the tree is not in the catalog.
func (m *Manager) AttachDialogue(id ecs.EntityID, treeID string) bool {
	e := m.world.Get(id)
	if e == nil || e.Kind != ecs.KindNPC {
		return false
	}
	if m.dialogues.Get(treeID) == nil {
		m.log.Warn("npc references unknown dialogue",
			zap.Uint64("entity_id", uint64(id)),
			zap.String("tree_id", treeID),
		)
		return false
	}
	m.comps.DialogueRefs.Set(id, &component.DialogueRef{TreeID: treeID})
	return true
}

// AttachQuest adds a quest to an NPC's give list, instantiating the quest
// in the log if it is not already loaded.
func (m *Manager) AttachQuest(id ecs.EntityID, questID string) bool {
	e := m.world.Get(id)
	if e == nil || e.Kind != ecs.KindNPC {
		return false
	}
	if !m.quests.LoadQuest(questID) {
		return false
	}
	if giver, ok := m.comps.QuestGivers.Get(id); ok {
		for _, existing := range giver.QuestIDs {
			if existing == questID {
				return true
			}
		}
		giver.QuestIDs = append(giver.QuestIDs, questID)
		return true
	}
	m.comps.QuestGivers.Set(id, &component.QuestGiver{QuestIDs: []string{questID}})
	return true
}

// Interact starts the NPC's dialogue tree. No dialogue attached, inactive
// entity, or a missing tree all no-op with false.
func (m *Manager) Interact(id ecs.EntityID) bool {
	e := m.world.Get(id)
	if e == nil || e.Kind != ecs.KindNPC || !e.Active {
		return false
	}
	ref, ok := m.comps.DialogueRefs.Get(id)
	if !ok {
		return false
	}
	if !m.convo.StartDialogue(ref.TreeID) {
		return false
	}
	if m.bus != nil {
		var npcID string
		if tag, ok := m.comps.NpcTags.Get(id); ok {
			npcID = tag.TemplateID
		}
		event.Emit(m.bus, event.NpcTalkedTo{NpcID: npcID, EntityID: id})
	}
	return true
}

// RemoveNPC queues the NPC entity for destruction. Its components, the
// template tag included, are released when the destroy queue flushes.
func (m *Manager) RemoveNPC(id ecs.EntityID) {
	m.world.MarkForDestruction(id)
}

// InteractNearest finds the closest active NPC within the interaction
// radius of the given point and interacts with it. The scan joins the
// transform and NPC tag stores, so visit order is unspecified; equidistant
// NPCs resolve to the lowest entity ID by explicit comparison.
func (m *Manager) InteractNearest(x, y float64) (ecs.EntityID, bool) {
	var best ecs.EntityID
	bestDist := math.MaxFloat64
	maxDist := m.radius * m.radius

	ecs.Each2(m.comps.Transforms, m.comps.NpcTags, func(id ecs.EntityID, t *component.Transform, _ *component.NpcTag) {
		e := m.world.Get(id)
		if e == nil || !e.Active {
			return
		}
		cx := t.X + t.Width/2
		cy := t.Y + t.Height/2
		dx, dy := cx-x, cy-y
		d := dx*dx + dy*dy
		if d > maxDist {
			return
		}
		if d < bestDist || (d == bestDist && id < best) {
			best = id
			bestDist = d
		}
	})

	if best.IsZero() {
		return 0, false
	}
	return best, m.Interact(best)
}
