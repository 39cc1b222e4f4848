package game

import (
	"context"
	"testing"
	"time"

	"github.com/NathanVRyver/game-engine/internal/config"
	"github.com/NathanVRyver/game-engine/internal/data"
	"github.com/NathanVRyver/game-engine/internal/quest"
	"github.com/NathanVRyver/game-engine/internal/system"
	"github.com/NathanVRyver/game-engine/internal/world"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g, err := New(Deps{
		Config:    config.Defaults(),
		Items:     data.DefaultItemTable(),
		Quests:    data.DefaultQuestTable(),
		Dialogues: data.DefaultDialogueTable(),
		Npcs:      data.DefaultNpcTable(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

// pump runs one event cycle the way the runner does each tick.
func pump(g *Game, sys *system.QuestProgressSystem) {
	g.Bus.SwapBuffers()
	g.Bus.DispatchAll()
	if sys != nil {
		sys.Update(time.Millisecond)
	}
}

func TestNewSpawnsPlayer(t *testing.T) {
	g := newTestGame(t)
	p := g.Player()

	if p.EntityID.IsZero() {
		t.Fatal("player entity should exist")
	}
	if p.Health != 100 || p.MaxHealth != 100 {
		t.Fatalf("player vitals wrong: %+v", p)
	}
	if p.MapID != "village" {
		t.Fatalf("player should start on the configured map, got %q", p.MapID)
	}
	if g.PlayerTransform() == nil {
		t.Fatal("player should have a transform")
	}
}

func TestNewRejectsMissingTables(t *testing.T) {
	_, err := New(Deps{Config: config.Defaults()})
	if err == nil {
		t.Fatal("missing data tables should fail construction")
	}
	_, err = New(Deps{Items: data.DefaultItemTable()})
	if err == nil {
		t.Fatal("missing config should fail construction")
	}
}

func TestInteractTalksToNearestNPC(t *testing.T) {
	g := newTestGame(t)
	pt := g.PlayerTransform()
	pt.X, pt.Y = 100, 100
	g.NPCs.CreateNPC("village_elder", 110, 100)

	if !g.Interact() {
		t.Fatal("interact next to an NPC should start dialogue")
	}
	view, ok := g.DialogueView()
	if !ok || view.Speaker == "" {
		t.Fatalf("dialogue view should be open, got %+v", view)
	}
}

func TestInteractConfirmsWhileDialogueOpen(t *testing.T) {
	g := newTestGame(t)
	pt := g.PlayerTransform()
	pt.X, pt.Y = 100, 100
	g.NPCs.CreateNPC("village_elder", 110, 100)
	g.Interact()

	// The talk key now confirms options instead of re-interacting.
	for g.Dialogue.Active() {
		if !g.Interact() {
			t.Fatal("confirm should succeed while a node has options")
		}
	}
}

func TestDialogueStartQuestAction(t *testing.T) {
	g := newTestGame(t)
	pt := g.PlayerTransform()
	pt.X, pt.Y = 100, 100
	g.NPCs.CreateNPC("village_elder", 110, 100)
	g.Interact()

	// greeting -> "What troubles you" -> amulet_ask
	if !g.ConfirmDialogueOption() {
		t.Fatal("first option should execute")
	}
	// amulet_ask option 0 accepts the quest and exits.
	if !g.ConfirmDialogueOption() {
		t.Fatal("accept option should execute")
	}

	q := g.QuestLog.Get("lost_item")
	if q == nil || q.Status != quest.Active {
		t.Fatalf("accepting should start lost_item, got %+v", q)
	}
	if g.Dialogue.Active() {
		t.Fatal("exit option should close the conversation")
	}
}

func TestGuardedOptionsFilteredFromView(t *testing.T) {
	g := newTestGame(t)
	pt := g.PlayerTransform()
	pt.X, pt.Y = 100, 100
	g.NPCs.CreateNPC("village_elder", 110, 100)
	g.Interact()
	g.ConfirmDialogueOption() // to amulet_ask

	view, _ := g.DialogueView()
	before := len(view.Options)

	g.Flags.Set("has_amulet", true)
	view, _ = g.DialogueView()
	if len(view.Options) != before+1 {
		t.Fatalf("setting the guard flag should reveal an option: %d -> %d", before, len(view.Options))
	}
}

func TestGuardedOptionCannotBeExecuted(t *testing.T) {
	g := newTestGame(t)
	pt := g.PlayerTransform()
	pt.X, pt.Y = 100, 100
	g.NPCs.CreateNPC("village_elder", 110, 100)
	g.Interact()
	g.ConfirmDialogueOption() // to amulet_ask

	// Without has_amulet the cursor must skip the hidden branch; down
	// then confirm lands on the refusal, which exits the conversation.
	g.NextDialogueOption()
	if !g.ConfirmDialogueOption() {
		t.Fatal("the visible refusal option should execute")
	}
	if g.Dialogue.Active() {
		t.Fatal("hidden branch opened: conversation should have exited")
	}
}

func TestConfirmIgnoresGuardFailingOption(t *testing.T) {
	g := newTestGame(t)
	pt := g.PlayerTransform()
	pt.X, pt.Y = 100, 100
	g.NPCs.CreateNPC("village_elder", 110, 100)
	g.Interact()
	g.ConfirmDialogueOption() // to amulet_ask

	// Move onto the guarded option while it is visible, then flip the
	// flag back so the cursor sits on a now-hidden option.
	g.Flags.Set("has_amulet", true)
	g.NextDialogueOption()
	g.Flags.Set("has_amulet", false)

	if g.ConfirmDialogueOption() {
		t.Fatal("confirming a guard-failing option should no-op")
	}
	if !g.Dialogue.Active() {
		t.Fatal("the blocked confirm should leave the conversation open")
	}
}

func TestDialogueViewSelectedIndexesFilteredOptions(t *testing.T) {
	g := newTestGame(t)
	pt := g.PlayerTransform()
	pt.X, pt.Y = 100, 100
	g.NPCs.CreateNPC("village_elder", 110, 100)
	g.Interact()
	g.ConfirmDialogueOption() // to amulet_ask
	g.NextDialogueOption()    // skips the hidden option

	view, ok := g.DialogueView()
	if !ok || len(view.Options) != 2 {
		t.Fatalf("expected 2 visible options, got %+v", view)
	}
	if view.Selected != 1 || view.Options[view.Selected].Text != "Not my problem." {
		t.Fatalf("cursor should highlight the refusal, got Selected=%d", view.Selected)
	}
}

func TestCollectQuestCompletesWithRewards(t *testing.T) {
	g := newTestGame(t)
	sys := system.NewQuestProgressSystem(g.Bus, g.QuestLog)
	g.StartQuest("lost_item")

	if !g.GiveItem("quest_amulet", 1) {
		t.Fatal("amulet pickup should succeed")
	}
	pump(g, sys)

	q := g.QuestLog.Get("lost_item")
	if q.Status != quest.Completed {
		t.Fatalf("collecting the amulet should complete the quest, status=%v", q.Status)
	}
	if g.Inventory.Gold() != 100 {
		t.Fatalf("reward gold missing, got %d", g.Inventory.Gold())
	}
	if g.Player().Exp != 50 {
		t.Fatalf("reward exp missing, got %d", g.Player().Exp)
	}
	if !g.Flags.Get("elder_amulet_returned") {
		t.Fatal("reward flag not set")
	}
}

func TestKillQuestProgress(t *testing.T) {
	g := newTestGame(t)
	sys := system.NewQuestProgressSystem(g.Bus, g.QuestLog)
	g.StartQuest("rat_cull")

	for i := 0; i < 5; i++ {
		g.ReportKill("rat")
	}
	pump(g, sys)

	q := g.QuestLog.Get("rat_cull")
	if q.Status != quest.Completed {
		t.Fatalf("five rat kills should complete rat_cull, status=%v", q.Status)
	}
	if g.Inventory.ItemCount("health_potion") != 2 {
		t.Fatalf("reward potions missing, got %d", g.Inventory.ItemCount("health_potion"))
	}
}

func TestSetMapEmitsLocationReached(t *testing.T) {
	g := newTestGame(t)
	g.SetMap("cellar")
	if g.Player().MapID != "cellar" {
		t.Fatalf("map not updated: %q", g.Player().MapID)
	}
}

func TestUseSelectedItemHeals(t *testing.T) {
	g := newTestGame(t)
	g.DamagePlayer(50)
	g.GiveItem("health_potion", 1)

	if !g.UseSelectedItem() {
		t.Fatal("using the potion should succeed")
	}
	if g.Player().Health != 70 {
		t.Fatalf("expected 70 health after heal, got %d", g.Player().Health)
	}
	if g.Inventory.HasItem("health_potion") {
		t.Fatal("potion should be consumed")
	}
}

func TestHealClampsAtMax(t *testing.T) {
	g := newTestGame(t)
	g.DamagePlayer(5)
	g.GiveItem("health_potion", 1)
	g.UseSelectedItem()
	if g.Player().Health != 100 {
		t.Fatalf("heal should clamp at max, got %d", g.Player().Health)
	}
}

func TestDamagePlayerClampsAtZero(t *testing.T) {
	g := newTestGame(t)
	g.DamagePlayer(500)
	if g.Player().Health != 0 {
		t.Fatalf("health should clamp at zero, got %d", g.Player().Health)
	}
}

func TestEquipSelectedItemByName(t *testing.T) {
	g := newTestGame(t)
	g.GiveItem("sword_basic", 1)

	if g.EquipSelectedItem("hat") {
		t.Fatal("unknown slot name should fail")
	}
	if !g.EquipSelectedItem("weapon") {
		t.Fatal("equipping the sword should succeed")
	}
	if !g.UnequipItem("weapon") {
		t.Fatal("unequip should succeed")
	}
}

func TestRenderablesIncludePlayerAndNPCs(t *testing.T) {
	g := newTestGame(t)
	g.NPCs.CreateNPC("village_elder", 160, 96)

	rs := g.Renderables()
	if len(rs) != 2 {
		t.Fatalf("expected player + elder, got %d renderables", len(rs))
	}
	if rs[0].ID != g.Player().EntityID {
		t.Fatal("player created first should render first")
	}
}

type memSaveStore struct {
	slots map[string]*world.Snapshot
}

func (m *memSaveStore) Save(ctx context.Context, slot string, snap *world.Snapshot) error {
	m.slots[slot] = snap
	return nil
}

func (m *memSaveStore) Load(ctx context.Context, slot string) (*world.Snapshot, error) {
	return m.slots[slot], nil
}

func TestSnapshotRoundTripThroughStore(t *testing.T) {
	store := &memSaveStore{slots: make(map[string]*world.Snapshot)}
	g, err := New(Deps{
		Config:    config.Defaults(),
		Items:     data.DefaultItemTable(),
		Quests:    data.DefaultQuestTable(),
		Dialogues: data.DefaultDialogueTable(),
		Npcs:      data.DefaultNpcTable(),
		Saves:     store,
	})
	if err != nil {
		t.Fatal(err)
	}

	g.DamagePlayer(30)
	g.GiveItem("health_potion", 3)
	g.Inventory.AddGold(55)
	g.StartQuest("rat_cull")
	g.UpdateObjective("rat_cull", "kill_rats", 2)
	g.SetMap("cellar")
	pt := g.PlayerTransform()
	pt.X, pt.Y = 12, 34

	if err := g.SaveSnapshot(context.Background(), "slot1"); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Wreck the live state, then load it back.
	g.DamagePlayer(70)
	g.Inventory.RemoveItem("health_potion", 3)
	g.SetMap("village")

	loaded, err := g.LoadSnapshot(context.Background(), "slot1")
	if err != nil || !loaded {
		t.Fatalf("load: %v loaded=%v", err, loaded)
	}
	if g.Player().Health != 70 || g.Player().MapID != "cellar" {
		t.Fatalf("player state not restored: %+v", g.Player())
	}
	if g.Inventory.ItemCount("health_potion") != 3 || g.Inventory.Gold() != 55 {
		t.Fatal("inventory not restored")
	}
	q := g.QuestLog.Get("rat_cull")
	if q == nil || q.Status != quest.Active || q.Objective("kill_rats").Current != 2 {
		t.Fatalf("quest progress not restored: %+v", q)
	}
	if pt := g.PlayerTransform(); pt.X != 12 || pt.Y != 34 {
		t.Fatalf("position not restored: %v,%v", pt.X, pt.Y)
	}
}

func TestLoadMissingSlot(t *testing.T) {
	store := &memSaveStore{slots: make(map[string]*world.Snapshot)}
	g, _ := New(Deps{
		Config:    config.Defaults(),
		Items:     data.DefaultItemTable(),
		Quests:    data.DefaultQuestTable(),
		Dialogues: data.DefaultDialogueTable(),
		Npcs:      data.DefaultNpcTable(),
		Saves:     store,
	})
	loaded, err := g.LoadSnapshot(context.Background(), "empty")
	if err != nil || loaded {
		t.Fatalf("missing slot should be (false, nil), got %v %v", loaded, err)
	}
}

func TestSaveWithoutStoreIsNoOp(t *testing.T) {
	g := newTestGame(t)
	if err := g.SaveSnapshot(context.Background(), "slot"); err != nil {
		t.Fatalf("save without a store should be a no-op, got %v", err)
	}
}
