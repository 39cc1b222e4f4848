package quest

import (
	"errors"
	"testing"

	"github.com/NathanVRyver/game-engine/internal/data"
	"github.com/NathanVRyver/game-engine/internal/world"
)

func testDefs() *data.QuestTable {
	t := data.NewQuestTable()
	t.Register(&data.QuestDef{
		ID:    "fetch",
		Title: "Fetch",
		Type:  data.QuestSide,
		Objectives: []data.ObjectiveDef{
			{ID: "get_herb", Kind: data.ObjectiveCollectItem, TargetID: "herb", Required: 3},
		},
		Rewards: []data.RewardDef{{Gold: 10}},
	})
	t.Register(&data.QuestDef{
		ID:    "watch",
		Title: "Watch",
		Type:  data.QuestMain,
		Objectives: []data.ObjectiveDef{
			{ID: "initiation", Kind: data.ObjectiveTalkToNPC, TargetID: "captain", Required: 1},
			{ID: "stand", Kind: data.ObjectiveCustom, Required: 1, Script: "watch_done"},
		},
	})
	return t
}

func TestStartQuestTransitions(t *testing.T) {
	l := NewLog(testDefs(), nil)

	if !l.StartQuest("fetch") {
		t.Fatal("starting a fresh quest should succeed")
	}
	if l.Get("fetch").Status != Active {
		t.Fatal("started quest should be Active")
	}
	if l.StartQuest("fetch") {
		t.Fatal("starting an active quest should be a no-op")
	}
	if l.StartQuest("unknown") {
		t.Fatal("unknown quest should not start")
	}
}

func TestUpdateObjectiveClampsProgress(t *testing.T) {
	l := NewLog(testDefs(), nil)
	l.StartQuest("fetch")

	l.UpdateObjective("fetch", "get_herb", 2)
	obj := l.Get("fetch").Objective("get_herb")
	if obj.Current != 2 || obj.Completed {
		t.Fatalf("expected 2/3 incomplete, got %+v", obj)
	}

	l.UpdateObjective("fetch", "get_herb", 99)
	if obj.Current != 3 {
		t.Fatalf("progress should clamp at required, got %d", obj.Current)
	}

	l.UpdateObjective("fetch", "get_herb", -99)
	if obj.Current != 0 {
		t.Fatalf("progress should clamp at zero, got %d", obj.Current)
	}
}

func TestQuestAutoCompletesWhenObjectivesDone(t *testing.T) {
	l := NewLog(testDefs(), nil)
	completed := ""
	l.SetCompletionHook(func(q *Quest) { completed = q.Def.ID })
	l.StartQuest("fetch")

	l.UpdateObjective("fetch", "get_herb", 3)

	if l.Get("fetch").Status != Completed {
		t.Fatal("quest should auto-complete when all objectives finish")
	}
	if completed != "fetch" {
		t.Fatalf("completion hook not fired, got %q", completed)
	}
}

func TestProgressWithoutStartDoesNotComplete(t *testing.T) {
	l := NewLog(testDefs(), nil)
	l.LoadQuest("fetch")

	l.UpdateObjective("fetch", "get_herb", 3)

	if l.Get("fetch").Status != NotStarted {
		t.Fatal("a NotStarted quest must not auto-complete")
	}
}

func TestCompleteAndFailRequireActive(t *testing.T) {
	l := NewLog(testDefs(), nil)
	l.LoadQuest("fetch")

	if l.CompleteQuest("fetch") {
		t.Fatal("completing a NotStarted quest should fail")
	}
	l.StartQuest("fetch")
	if !l.FailQuest("fetch") {
		t.Fatal("failing an active quest should succeed")
	}
	if l.FailQuest("fetch") || l.CompleteQuest("fetch") {
		t.Fatal("Failed is terminal")
	}
}

func TestTrackedClearsOnCompletion(t *testing.T) {
	l := NewLog(testDefs(), nil)
	l.StartQuest("fetch")
	l.SetTracked("fetch")

	l.UpdateObjective("fetch", "get_herb", 3)

	if l.Tracked() != "" {
		t.Fatalf("tracked should clear on completion, got %q", l.Tracked())
	}
}

func TestActiveQuestsKeepInstantiationOrder(t *testing.T) {
	l := NewLog(testDefs(), nil)
	l.StartQuest("watch")
	l.StartQuest("fetch")

	active := l.ActiveQuests()
	if len(active) != 2 || active[0].Def.ID != "watch" || active[1].Def.ID != "fetch" {
		t.Fatalf("wrong order: %v", active)
	}
}

type scriptStub struct {
	done bool
	err  error
}

func (s scriptStub) EvalObjective(script string, current, required int) (bool, error) {
	return s.done, s.err
}

func TestCustomObjectiveViaScript(t *testing.T) {
	l := NewLog(testDefs(), nil)
	l.SetScriptEvaluator(scriptStub{done: true})
	l.StartQuest("watch")
	l.UpdateObjective("watch", "initiation", 1)

	l.CheckCustomObjectives()

	if l.Get("watch").Status != Completed {
		t.Fatal("custom objective pass should complete the quest")
	}
}

func TestCustomObjectiveScriptErrorLeavesQuestActive(t *testing.T) {
	l := NewLog(testDefs(), nil)
	l.SetScriptEvaluator(scriptStub{err: errors.New("boom")})
	l.StartQuest("watch")
	l.UpdateObjective("watch", "initiation", 1)

	l.CheckCustomObjectives()

	if l.Get("watch").Status != Active {
		t.Fatal("script errors must not complete objectives")
	}
}

func TestExportRestoreRoundTrip(t *testing.T) {
	l := NewLog(testDefs(), nil)
	l.StartQuest("fetch")
	l.UpdateObjective("fetch", "get_herb", 2)

	snaps := l.Export()

	restored := NewLog(testDefs(), nil)
	fired := false
	restored.SetCompletionHook(func(*Quest) { fired = true })
	restored.Restore(snaps)

	q := restored.Get("fetch")
	if q == nil || q.Status != Active {
		t.Fatalf("restored quest wrong: %+v", q)
	}
	if q.Objective("get_herb").Current != 2 {
		t.Fatalf("progress lost: %d", q.Objective("get_herb").Current)
	}
	if fired {
		t.Fatal("restore must not fire completion hooks")
	}
}

func TestRestoreSkipsUnknownQuests(t *testing.T) {
	l := NewLog(testDefs(), nil)
	l.Restore([]world.QuestSnapshot{
		{QuestID: "deleted_quest", Status: int(Active)},
		{QuestID: "fetch", Status: int(Active), Progress: map[string]int{"get_herb": 99}},
	})

	if l.Get("deleted_quest") != nil {
		t.Fatal("quest without a definition should be skipped")
	}
	q := l.Get("fetch")
	if q == nil {
		t.Fatal("fetch should restore")
	}
	if q.Objective("get_herb").Current != 3 {
		t.Fatalf("restored progress should clamp at required, got %d", q.Objective("get_herb").Current)
	}
}
