// Package game is the surface the owning application drives: it composes
// the entity store, inventory, quest log, dialogue system, and NPC manager,
// and exposes one entry point per player input. Rendering and input polling
// live outside; this package only mutates state and hands back read views.
package game

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/NathanVRyver/game-engine/internal/component"
	"github.com/NathanVRyver/game-engine/internal/config"
	"github.com/NathanVRyver/game-engine/internal/core/ecs"
	"github.com/NathanVRyver/game-engine/internal/core/event"
	"github.com/NathanVRyver/game-engine/internal/data"
	"github.com/NathanVRyver/game-engine/internal/dialogue"
	"github.com/NathanVRyver/game-engine/internal/npc"
	"github.com/NathanVRyver/game-engine/internal/quest"
	"github.com/NathanVRyver/game-engine/internal/scripting"
	"github.com/NathanVRyver/game-engine/internal/world"
)

// SaveStore persists snapshots by slot name. A nil store disables saving.
// Load returns (nil, nil) for a slot that does not exist.
type SaveStore interface {
	Save(ctx context.Context, slot string, snap *world.Snapshot) error
	Load(ctx context.Context, slot string) (*world.Snapshot, error)
}

// Deps holds the shared collaborators injected into the game facade.
type Deps struct {
	Config    *config.Config
	Log       *zap.Logger
	Items     *data.ItemTable
	Quests    *data.QuestTable
	Dialogues *data.DialogueTable
	Npcs      *data.NpcTable
	Scripts   *scripting.Engine // optional
	Saves     SaveStore         // optional
}

// Player is the player's own state outside the component stores: vitals,
// experience, and the current map.
type Player struct {
	EntityID  ecs.EntityID
	Health    int
	MaxHealth int
	Mana      int
	MaxMana   int
	Exp       int
	MapID     string
}

// Game owns all live state and is the single mutation path for player input.
type Game struct {
	deps Deps
	log  *zap.Logger

	World     *ecs.World
	Comps     *component.Stores
	Bus       *event.Bus
	Inventory *world.Inventory
	Flags     *world.Flags
	QuestLog  *quest.Log
	Dialogue  *dialogue.System
	NPCs      *npc.Manager

	player Player
}

// New builds a Game and spawns the player entity at the given position.
func New(deps Deps) (*Game, error) {
	if deps.Config == nil {
		return nil, fmt.Errorf("game: config is required")
	}
	if deps.Items == nil || deps.Quests == nil || deps.Dialogues == nil || deps.Npcs == nil {
		return nil, fmt.Errorf("game: all data tables are required")
	}
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	ecsWorld := ecs.NewWorld()
	comps := component.NewStores(ecsWorld.Registry())
	bus := event.NewBus()

	inv := world.NewInventory(deps.Config.Game.InventoryCapacity, deps.Items)
	flags := world.NewFlags()
	questLog := quest.NewLog(deps.Quests, log.Named("quest"))
	if deps.Scripts != nil {
		questLog.SetScriptEvaluator(deps.Scripts)
	}
	convo := dialogue.NewSystem(deps.Dialogues)
	npcs := npc.NewManager(
		ecsWorld, comps, deps.Npcs, deps.Dialogues, convo, questLog, bus,
		deps.Config.Game.InteractionRadius, log.Named("npc"),
	)

	g := &Game{
		deps:      deps,
		log:       log,
		World:     ecsWorld,
		Comps:     comps,
		Bus:       bus,
		Inventory: inv,
		Flags:     flags,
		QuestLog:  questLog,
		Dialogue:  convo,
		NPCs:      npcs,
	}
	questLog.SetCompletionHook(g.grantRewards)

	hp := deps.Config.Game.PlayerHealth
	if hp <= 0 {
		hp = 100
	}
	e := ecsWorld.CreateEntity(ecs.KindPlayer, "Player")
	comps.Transforms.Set(e.ID, &component.Transform{Width: 32, Height: 32})
	comps.Sprites.Set(e.ID, &component.Sprite{TextureRef: "player"})
	comps.Backpacks.Set(e.ID, &component.Backpack{InventoryID: "player"})
	g.player = Player{
		EntityID:  e.ID,
		Health:    hp,
		MaxHealth: hp,
		Mana:      50,
		MaxMana:   50,
		MapID:     deps.Config.Game.StartMap,
	}

	return g, nil
}

// Player returns a copy of the player's vitals and position bookkeeping.
func (g *Game) Player() Player { return g.player }

// PlayerTransform returns the player's transform for movement code.
func (g *Game) PlayerTransform() *component.Transform {
	t, _ := g.Comps.Transforms.Get(g.player.EntityID)
	return t
}

// DamagePlayer applies damage, clamping at zero.
func (g *Game) DamagePlayer(amount int) {
	if amount <= 0 {
		return
	}
	g.player.Health -= amount
	if g.player.Health < 0 {
		g.player.Health = 0
	}
}

// SetMap records the map the player currently occupies and emits a
// LocationReached event for quest progress.
func (g *Game) SetMap(mapID string) {
	g.player.MapID = mapID
	event.Emit(g.Bus, event.LocationReached{LocationID: mapID})
}

// grantRewards applies every reward of a completed quest: items, gold,
// experience, flags. Fired from the quest log's completion hook.
func (g *Game) grantRewards(q *quest.Quest) {
	for _, r := range q.Def.Rewards {
		if r.ItemID != "" {
			if !g.Inventory.AddItem(r.ItemID, r.ItemCount) {
				g.log.Warn("reward item lost, inventory full",
					zap.String("quest_id", q.Def.ID),
					zap.String("item_id", r.ItemID),
				)
			}
		}
		if r.Gold > 0 {
			g.Inventory.AddGold(r.Gold)
		}
		if r.Exp > 0 {
			g.player.Exp += r.Exp
		}
		if r.SetFlag != "" {
			g.Flags.Set(r.SetFlag, true)
		}
	}
	event.Emit(g.Bus, event.QuestCompleted{QuestID: q.Def.ID})
}

// Snapshot captures the full persistable state.
func (g *Game) Snapshot() *world.Snapshot {
	snap := &world.Snapshot{
		PlayerHealth: g.player.Health,
		MapID:        g.player.MapID,
		Flags:        g.Flags.All(),
	}
	if t := g.PlayerTransform(); t != nil {
		snap.PlayerX = t.X
		snap.PlayerY = t.Y
	}
	world.CaptureInventory(g.Inventory, snap)
	snap.Quests = g.QuestLog.Export()
	return snap
}

// RestoreSnapshot loads a snapshot into the live state.
func (g *Game) RestoreSnapshot(snap *world.Snapshot) {
	g.player.Health = snap.PlayerHealth
	if g.player.Health > g.player.MaxHealth {
		g.player.MaxHealth = g.player.Health
	}
	g.player.MapID = snap.MapID
	if t := g.PlayerTransform(); t != nil {
		t.X = snap.PlayerX
		t.Y = snap.PlayerY
	}
	world.RestoreInventory(g.Inventory, snap)
	g.QuestLog.Restore(snap.Quests)
	g.Flags.Replace(snap.Flags)
	g.Dialogue.EndDialogue()
}

// SaveSnapshot persists the current state under a slot. Satisfies
// system.SnapshotSaver; a missing store makes it a logged no-op.
func (g *Game) SaveSnapshot(ctx context.Context, slot string) error {
	if g.deps.Saves == nil {
		g.log.Debug("save skipped, no store configured", zap.String("slot", slot))
		return nil
	}
	return g.deps.Saves.Save(ctx, slot, g.Snapshot())
}

// LoadSnapshot restores state from a slot. Reports whether the slot existed.
func (g *Game) LoadSnapshot(ctx context.Context, slot string) (bool, error) {
	if g.deps.Saves == nil {
		return false, nil
	}
	snap, err := g.deps.Saves.Load(ctx, slot)
	if err != nil {
		return false, err
	}
	if snap == nil {
		return false, nil
	}
	g.RestoreSnapshot(snap)
	return true, nil
}
