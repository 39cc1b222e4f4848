package game

import (
	"go.uber.org/zap"

	"github.com/NathanVRyver/game-engine/internal/core/event"
	"github.com/NathanVRyver/game-engine/internal/data"
	"github.com/NathanVRyver/game-engine/internal/world"
)

// Input-driven entry points. The application calls exactly one of these per
// relevant keypress; each completes synchronously within the tick.

// Interact handles the talk key: with a conversation open it confirms the
// selected option, otherwise it tries to talk to the nearest NPC in range.
func (g *Game) Interact() bool {
	if g.Dialogue.Active() {
		return g.ConfirmDialogueOption()
	}
	t := g.PlayerTransform()
	if t == nil {
		return false
	}
	_, ok := g.NPCs.InteractNearest(t.X+t.Width/2, t.Y+t.Height/2)
	return ok
}

// NextDialogueOption moves the conversation cursor down, skipping options
// whose guard fails against the live flags.
func (g *Game) NextDialogueOption() {
	node := g.Dialogue.CurrentNode()
	if node == nil {
		return
	}
	for range node.Options {
		g.Dialogue.SelectNextOption()
		if sess, ok := g.Dialogue.Session(); ok && g.optionVisible(node.Options[sess.Selected]) {
			return
		}
	}
}

// PrevDialogueOption moves the conversation cursor up with the same skip rule.
func (g *Game) PrevDialogueOption() {
	node := g.Dialogue.CurrentNode()
	if node == nil {
		return
	}
	for range node.Options {
		g.Dialogue.SelectPrevOption()
		if sess, ok := g.Dialogue.Session(); ok && g.optionVisible(node.Options[sess.Selected]) {
			return
		}
	}
}

// ConfirmDialogueOption executes the selected option and applies its action.
// A guard-failing option is inert: the confirm no-ops until the cursor
// moves to a visible option, so hidden branches cannot be executed blind.
func (g *Game) ConfirmDialogueOption() bool {
	node := g.Dialogue.CurrentNode()
	if node == nil {
		return false
	}
	if sess, ok := g.Dialogue.Session(); ok &&
		sess.Selected >= 0 && sess.Selected < len(node.Options) &&
		!g.optionVisible(node.Options[sess.Selected]) {
		return false
	}
	opt, ok := g.Dialogue.ExecuteSelectedOption()
	if !ok {
		return false
	}
	g.applyAction(opt.Action)
	return true
}

// optionVisible evaluates an option's guard against the live flags. The
// dialogue system stores guards without reading them; this is the one
// place they are enforced.
func (g *Game) optionVisible(opt data.OptionDef) bool {
	return opt.Guard == nil || g.Flags.Get(opt.Guard.Flag) == opt.Guard.Value
}

// EndDialogue closes any open conversation.
func (g *Game) EndDialogue() { g.Dialogue.EndDialogue() }

// applyAction interprets a dialogue option's action descriptor. The
// dialogue system delivers each action exactly once; this is the only
// place actions take effect.
func (g *Game) applyAction(a data.Action) {
	switch a.Kind {
	case data.ActionNone:
	case data.ActionStartQuest:
		g.QuestLog.StartQuest(a.QuestID)
	case data.ActionGiveItem:
		count := a.ItemCount
		if count < 1 {
			count = 1
		}
		g.GiveItem(a.ItemID, count)
	case data.ActionSetFlag:
		g.Flags.Set(a.Flag, a.FlagValue)
	case data.ActionTeleportPlayer:
		if t := g.PlayerTransform(); t != nil {
			t.X = a.X
			t.Y = a.Y
		}
	default:
		g.log.Warn("unknown dialogue action", zap.Int("kind", int(a.Kind)))
	}
}

// GiveItem places items in the inventory and reports the pickup to the
// quest layer. Used for dialogue rewards and world pickups alike.
func (g *Game) GiveItem(itemID string, count int) bool {
	if !g.Inventory.AddItem(itemID, count) {
		return false
	}
	event.Emit(g.Bus, event.ItemCollected{ItemID: itemID, Count: count})
	return true
}

// ReportKill feeds an enemy kill into the quest layer.
func (g *Game) ReportKill(enemyID string) {
	event.Emit(g.Bus, event.EnemyKilled{EnemyID: enemyID, Killer: g.player.EntityID})
}

// NextInventorySlot moves the inventory cursor forward.
func (g *Game) NextInventorySlot() { g.Inventory.SelectNextSlot() }

// PrevInventorySlot moves the inventory cursor backward.
func (g *Game) PrevInventorySlot() { g.Inventory.SelectPrevSlot() }

// ToggleInventory opens or closes the inventory UI.
func (g *Game) ToggleInventory() { g.Inventory.ToggleVisible() }

// UseSelectedItem consumes the item under the cursor and applies its
// effect to the player. The scripting engine may tune the magnitude.
func (g *Game) UseSelectedItem() bool {
	eff, ok := g.Inventory.UseItem(g.Inventory.SelectedSlot())
	if !ok {
		return false
	}
	amount := eff.Amount
	if g.deps.Scripts != nil {
		amount = g.deps.Scripts.ItemEffectAmount(eff.ItemID, int(eff.Kind), eff.Amount)
	}
	g.applyEffect(eff.Kind, amount, eff.ItemID)
	return true
}

func (g *Game) applyEffect(kind data.EffectKind, amount int, itemID string) {
	switch kind {
	case data.EffectHeal:
		g.player.Health += amount
		if g.player.Health > g.player.MaxHealth {
			g.player.Health = g.player.MaxHealth
		}
	case data.EffectRestoreMana:
		g.player.Mana += amount
		if g.player.Mana > g.player.MaxMana {
			g.player.Mana = g.player.MaxMana
		}
	case data.EffectTriggerQuest:
		if info, ok := g.deps.Items.Get(itemID); ok && info.QuestID != "" {
			g.QuestLog.StartQuest(info.QuestID)
		}
	case data.EffectUnlock:
		// Door/world unlock is the map layer's concern; record the key use.
		g.Flags.Set("used_"+itemID, true)
	case data.EffectNone, data.EffectDamageBoost, data.EffectDefenseBoost:
		// Boosts apply while equipped, not on consumption.
	}
}

// EquipSelectedItem equips the item under the cursor into the named slot.
// The name goes through the validated slot lookup; unknown names fail.
func (g *Game) EquipSelectedItem(slotName string) bool {
	slot := world.EquipSlotFromName(slotName)
	if slot == world.SlotNone {
		return false
	}
	return g.Inventory.EquipItem(g.Inventory.SelectedSlot(), slot)
}

// UnequipItem returns the named equipment slot's item to storage.
func (g *Game) UnequipItem(slotName string) bool {
	slot := world.EquipSlotFromName(slotName)
	if slot == world.SlotNone {
		return false
	}
	return g.Inventory.UnequipItem(slot)
}

// StartQuest, CompleteQuest, FailQuest, UpdateObjective, and TrackQuest
// pass through to the quest log for application code that drives quests
// directly instead of through events.

func (g *Game) StartQuest(questID string) bool { return g.QuestLog.StartQuest(questID) }

func (g *Game) CompleteQuest(questID string) bool { return g.QuestLog.CompleteQuest(questID) }

func (g *Game) FailQuest(questID string) bool { return g.QuestLog.FailQuest(questID) }

func (g *Game) UpdateObjective(questID, objectiveID string, count int) bool {
	return g.QuestLog.UpdateObjective(questID, objectiveID, count)
}

func (g *Game) TrackQuest(questID string) { g.QuestLog.SetTracked(questID) }
