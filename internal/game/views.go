package game

import (
	"github.com/NathanVRyver/game-engine/internal/component"
	"github.com/NathanVRyver/game-engine/internal/core/ecs"
	"github.com/NathanVRyver/game-engine/internal/data"
	"github.com/NathanVRyver/game-engine/internal/quest"
)

// Read views for the rendering layer. These return copies or stable
// references; nothing here mutates game state.

// Renderable is one drawable entity: its bounds plus its sprite.
type Renderable struct {
	ID        ecs.EntityID
	Transform component.Transform
	Sprite    component.Sprite
}

// Renderables returns every active entity that has both a transform and a
// sprite, in entity creation order.
func (g *Game) Renderables() []Renderable {
	out := make([]Renderable, 0, g.World.Len())
	g.World.Each(func(e *ecs.Entity) {
		if !e.Active {
			return
		}
		t, ok := g.Comps.Transforms.Get(e.ID)
		if !ok {
			return
		}
		s, ok := g.Comps.Sprites.Get(e.ID)
		if !ok {
			return
		}
		out = append(out, Renderable{ID: e.ID, Transform: *t, Sprite: *s})
	})
	return out
}

// DialogueView is the current conversation screen: the node, the options
// that pass their guards, and the cursor's position within that filtered
// list.
type DialogueView struct {
	Speaker  string
	Text     string
	Options  []data.OptionDef
	Selected int
}

// DialogueView returns the open conversation, or false when idle. Options
// whose guard fails against the live flags are filtered out, and Selected
// indexes the filtered list so a renderer can highlight the cursor directly.
func (g *Game) DialogueView() (DialogueView, bool) {
	node := g.Dialogue.CurrentNode()
	if node == nil {
		return DialogueView{}, false
	}
	sess, _ := g.Dialogue.Session()

	opts := make([]data.OptionDef, 0, len(node.Options))
	sel := 0
	for i, opt := range node.Options {
		if !g.optionVisible(opt) {
			continue
		}
		if i == sess.Selected {
			sel = len(opts)
		}
		opts = append(opts, opt)
	}
	return DialogueView{
		Speaker:  node.Speaker,
		Text:     node.Text,
		Options:  opts,
		Selected: sel,
	}, true
}

// ActiveQuests returns the active quests with live objective progress.
func (g *Game) ActiveQuests() []*quest.Quest {
	return g.QuestLog.ActiveQuests()
}

// TrackedQuest returns the UI-focused quest, or nil.
func (g *Game) TrackedQuest() *quest.Quest {
	id := g.QuestLog.Tracked()
	if id == "" {
		return nil
	}
	return g.QuestLog.Get(id)
}
