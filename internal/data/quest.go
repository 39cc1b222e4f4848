package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// QuestType separates the critical path from optional content.
type QuestType int

const (
	QuestMain QuestType = 0
	QuestSide QuestType = 1
)

var questTypeMap = map[string]QuestType{
	"main": QuestMain,
	"side": QuestSide,
}

func QuestTypeFromString(s string) QuestType {
	if v, ok := questTypeMap[s]; ok {
		return v
	}
	return QuestSide
}

// ObjectiveKind is what kind of progress an objective measures.
type ObjectiveKind int

const (
	ObjectiveCollectItem   ObjectiveKind = 0
	ObjectiveKillEnemy     ObjectiveKind = 1
	ObjectiveReachLocation ObjectiveKind = 2
	ObjectiveTalkToNPC     ObjectiveKind = 3
	ObjectiveCustom        ObjectiveKind = 4
)

var objectiveKindMap = map[string]ObjectiveKind{
	"collect_item":   ObjectiveCollectItem,
	"kill_enemy":     ObjectiveKillEnemy,
	"reach_location": ObjectiveReachLocation,
	"talk_to_npc":    ObjectiveTalkToNPC,
	"custom":         ObjectiveCustom,
}

func ObjectiveKindFromString(s string) ObjectiveKind {
	if v, ok := objectiveKindMap[s]; ok {
		return v
	}
	return ObjectiveCustom
}

// ObjectiveDef is the static definition of a single measurable sub-goal.
// TargetID names the item/enemy/location/NPC the kind refers to. Script
// names a Lua predicate for ObjectiveCustom; other kinds ignore it.
type ObjectiveDef struct {
	ID          string
	Description string
	Kind        ObjectiveKind
	TargetID    string
	Required    int
	Script      string
}

// RewardDef describes one reward granted on quest completion. Any subset of
// fields may be set; rewards are additive, not mutually exclusive.
type RewardDef struct {
	ItemID    string
	ItemCount int
	Gold      int
	Exp       int
	SetFlag   string
}

// QuestDef is the immutable definition of a quest. Runtime status lives in
// quest.Log, never here.
type QuestDef struct {
	ID          string
	Title       string
	Description string
	Type        QuestType
	Objectives  []ObjectiveDef
	Rewards     []RewardDef
}

// QuestTable holds all quest definitions indexed by quest ID.
type QuestTable struct {
	quests map[string]*QuestDef
}

func NewQuestTable() *QuestTable {
	return &QuestTable{quests: make(map[string]*QuestDef, 64)}
}

// Register inserts or overwrites a quest definition by ID.
func (t *QuestTable) Register(def *QuestDef) {
	t.quests[def.ID] = def
}

// Get returns a quest definition by ID, or nil if not found.
func (t *QuestTable) Get(questID string) *QuestDef {
	return t.quests[questID]
}

// Count returns total loaded quest definitions.
func (t *QuestTable) Count() int {
	return len(t.quests)
}

// --- YAML loading ---

type objectiveEntry struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
	Kind        string `yaml:"kind"`
	TargetID    string `yaml:"target_id"`
	Required    int    `yaml:"required"`
	Script      string `yaml:"script"`
}

type rewardEntry struct {
	ItemID    string `yaml:"item_id"`
	ItemCount int    `yaml:"item_count"`
	Gold      int    `yaml:"gold"`
	Exp       int    `yaml:"exp"`
	SetFlag   string `yaml:"set_flag"`
}

type questEntry struct {
	ID          string           `yaml:"id"`
	Title       string           `yaml:"title"`
	Description string           `yaml:"description"`
	Type        string           `yaml:"type"`
	Objectives  []objectiveEntry `yaml:"objectives"`
	Rewards     []rewardEntry    `yaml:"rewards"`
}

type questListFile struct {
	Quests []questEntry `yaml:"quests"`
}

// LoadQuestTable loads quest definitions from a YAML file.
func LoadQuestTable(path string) (*QuestTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read quests: %w", err)
	}
	var f questListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse quests: %w", err)
	}
	t := NewQuestTable()
	for i := range f.Quests {
		q := &f.Quests[i]
		def := &QuestDef{
			ID:          q.ID,
			Title:       q.Title,
			Description: q.Description,
			Type:        QuestTypeFromString(q.Type),
			Objectives:  make([]ObjectiveDef, 0, len(q.Objectives)),
			Rewards:     make([]RewardDef, 0, len(q.Rewards)),
		}
		for _, o := range q.Objectives {
			req := o.Required
			if req < 1 {
				req = 1
			}
			def.Objectives = append(def.Objectives, ObjectiveDef{
				ID:          o.ID,
				Description: o.Description,
				Kind:        ObjectiveKindFromString(o.Kind),
				TargetID:    o.TargetID,
				Required:    req,
				Script:      o.Script,
			})
		}
		for _, r := range q.Rewards {
			count := r.ItemCount
			if r.ItemID != "" && count < 1 {
				count = 1
			}
			def.Rewards = append(def.Rewards, RewardDef{
				ItemID:    r.ItemID,
				ItemCount: count,
				Gold:      r.Gold,
				Exp:       r.Exp,
				SetFlag:   r.SetFlag,
			})
		}
		t.Register(def)
	}
	return t, nil
}

// DefaultQuestTable seeds the built-in starter quests. Used when no quest
// file is configured and by tests.
func DefaultQuestTable() *QuestTable {
	t := NewQuestTable()
	t.Register(&QuestDef{
		ID:          "lost_item",
		Title:       "The Lost Amulet",
		Description: "The village elder lost an old amulet somewhere in the fields.",
		Type:        QuestSide,
		Objectives: []ObjectiveDef{
			{
				ID:          "find_amulet",
				Description: "Find the ancient amulet",
				Kind:        ObjectiveCollectItem,
				TargetID:    "quest_amulet",
				Required:    1,
			},
		},
		Rewards: []RewardDef{
			{Gold: 100, Exp: 50, SetFlag: "elder_amulet_returned"},
		},
	})
	t.Register(&QuestDef{
		ID:          "rat_cull",
		Title:       "Rats in the Cellar",
		Description: "The innkeeper wants the cellar rats gone.",
		Type:        QuestSide,
		Objectives: []ObjectiveDef{
			{
				ID:          "kill_rats",
				Description: "Kill 5 cellar rats",
				Kind:        ObjectiveKillEnemy,
				TargetID:    "rat",
				Required:    5,
			},
		},
		Rewards: []RewardDef{
			{ItemID: "health_potion", ItemCount: 2, Gold: 30, Exp: 25},
		},
	})
	return t
}
