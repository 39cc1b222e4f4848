package data

import (
	"os"
	"path/filepath"
	"testing"
)

func TestObjectiveKindFromString(t *testing.T) {
	cases := map[string]ObjectiveKind{
		"collect_item":   ObjectiveCollectItem,
		"kill_enemy":     ObjectiveKillEnemy,
		"reach_location": ObjectiveReachLocation,
		"talk_to_npc":    ObjectiveTalkToNPC,
		"custom":         ObjectiveCustom,
	}
	for s, want := range cases {
		if got := ObjectiveKindFromString(s); got != want {
			t.Fatalf("ObjectiveKindFromString(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestLoadQuestTableClampsAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quests.yaml")
	src := `quests:
  - id: herb_run
    title: Herb Run
    type: side
    objectives:
      - id: pick_herbs
        kind: collect_item
        target_id: herb
        required: 0
    rewards:
      - item_id: bread
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	tbl, err := LoadQuestTable(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	def := tbl.Get("herb_run")
	if def == nil {
		t.Fatal("herb_run not registered")
	}
	if def.Objectives[0].Required != 1 {
		t.Fatalf("required should clamp to 1, got %d", def.Objectives[0].Required)
	}
	if def.Rewards[0].ItemCount != 1 {
		t.Fatalf("reward item count should default to 1, got %d", def.Rewards[0].ItemCount)
	}
}

func TestDefaultQuestTableSeeds(t *testing.T) {
	tbl := DefaultQuestTable()
	lost := tbl.Get("lost_item")
	if lost == nil {
		t.Fatal("default table missing lost_item")
	}
	if len(lost.Objectives) != 1 || lost.Objectives[0].Kind != ObjectiveCollectItem {
		t.Fatalf("lost_item objectives wrong: %+v", lost.Objectives)
	}
	rats := tbl.Get("rat_cull")
	if rats == nil || rats.Objectives[0].Required != 5 {
		t.Fatal("rat_cull misconfigured")
	}
}
