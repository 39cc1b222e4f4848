package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ExitNode is the sentinel next-node ID that ends a conversation.
const ExitNode = "exit"

// ActionKind tags what executing a dialogue option does. The payload fields
// of Action that apply are determined by the kind; the rest stay zero.
type ActionKind int

const (
	ActionNone           ActionKind = 0
	ActionStartQuest     ActionKind = 1
	ActionGiveItem       ActionKind = 2
	ActionSetFlag        ActionKind = 3
	ActionTeleportPlayer ActionKind = 4
)

var actionKindMap = map[string]ActionKind{
	"none":            ActionNone,
	"start_quest":     ActionStartQuest,
	"give_item":       ActionGiveItem,
	"set_flag":        ActionSetFlag,
	"teleport_player": ActionTeleportPlayer,
}

func ActionKindFromString(s string) ActionKind {
	if v, ok := actionKindMap[s]; ok {
		return v
	}
	return ActionNone
}

// Action is a tagged action descriptor. The dialogue system never executes
// actions itself; the owning application interprets them.
type Action struct {
	Kind ActionKind

	QuestID   string  // ActionStartQuest
	ItemID    string  // ActionGiveItem
	ItemCount int     // ActionGiveItem
	Flag      string  // ActionSetFlag
	FlagValue bool    // ActionSetFlag
	X, Y      float64 // ActionTeleportPlayer
}

// Condition guards an option's visibility: the named flag must hold Value.
// The dialogue system stores guards; evaluating them against live flag
// state is the caller's job.
type Condition struct {
	Flag  string
	Value bool
}

// OptionDef is one selectable response on a dialogue node.
type OptionDef struct {
	Text   string
	Next   string // node ID, or ExitNode to end the conversation
	Guard  *Condition
	Action Action
}

// NodeDef is one screen of conversation: a speaker, body text, and the
// ordered options the player picks from.
type NodeDef struct {
	ID      string
	Speaker string
	Text    string
	Options []OptionDef
}

// TreeDef is a named collection of nodes plus the designated start node.
type TreeDef struct {
	ID    string
	Start string
	Nodes map[string]*NodeDef
}

// Node returns a node by ID, or nil.
func (t *TreeDef) Node(nodeID string) *NodeDef {
	return t.Nodes[nodeID]
}

// DialogueTable holds all dialogue trees indexed by tree ID.
type DialogueTable struct {
	trees map[string]*TreeDef
}

func NewDialogueTable() *DialogueTable {
	return &DialogueTable{trees: make(map[string]*TreeDef, 64)}
}

// Register inserts or overwrites a dialogue tree by ID.
func (t *DialogueTable) Register(tree *TreeDef) {
	t.trees[tree.ID] = tree
}

// Get returns a dialogue tree by ID, or nil if not found.
func (t *DialogueTable) Get(treeID string) *TreeDef {
	return t.trees[treeID]
}

// Count returns total loaded dialogue trees.
func (t *DialogueTable) Count() int {
	return len(t.trees)
}

// --- YAML loading ---

type conditionEntry struct {
	Flag  string `yaml:"flag"`
	Value bool   `yaml:"value"`
}

type optionEntry struct {
	Text   string          `yaml:"text"`
	Next   string          `yaml:"next"`
	Guard  *conditionEntry `yaml:"guard"`
	Action string          `yaml:"action"`

	QuestID   string  `yaml:"quest_id"`
	ItemID    string  `yaml:"item_id"`
	ItemCount int     `yaml:"item_count"`
	Flag      string  `yaml:"flag"`
	FlagValue bool    `yaml:"flag_value"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
}

type nodeEntry struct {
	ID      string        `yaml:"id"`
	Speaker string        `yaml:"speaker"`
	Text    string        `yaml:"text"`
	Options []optionEntry `yaml:"options"`
}

type treeEntry struct {
	ID    string      `yaml:"id"`
	Start string      `yaml:"start"`
	Nodes []nodeEntry `yaml:"nodes"`
}

type dialogueListFile struct {
	Dialogues []treeEntry `yaml:"dialogues"`
}

// LoadDialogueTable loads dialogue trees from a YAML file.
func LoadDialogueTable(path string) (*DialogueTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dialogues: %w", err)
	}
	var f dialogueListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse dialogues: %w", err)
	}
	t := NewDialogueTable()
	for i := range f.Dialogues {
		d := &f.Dialogues[i]
		tree := &TreeDef{
			ID:    d.ID,
			Start: d.Start,
			Nodes: make(map[string]*NodeDef, len(d.Nodes)),
		}
		for _, n := range d.Nodes {
			node := &NodeDef{
				ID:      n.ID,
				Speaker: n.Speaker,
				Text:    n.Text,
				Options: make([]OptionDef, 0, len(n.Options)),
			}
			for _, o := range n.Options {
				opt := OptionDef{
					Text: o.Text,
					Next: o.Next,
					Action: Action{
						Kind:      ActionKindFromString(o.Action),
						QuestID:   o.QuestID,
						ItemID:    o.ItemID,
						ItemCount: o.ItemCount,
						Flag:      o.Flag,
						FlagValue: o.FlagValue,
						X:         o.X,
						Y:         o.Y,
					},
				}
				if o.Guard != nil {
					opt.Guard = &Condition{Flag: o.Guard.Flag, Value: o.Guard.Value}
				}
				node.Options = append(node.Options, opt)
			}
			tree.Nodes[node.ID] = node
		}
		t.Register(tree)
	}
	return t, nil
}

// DefaultDialogueTable seeds the built-in starter conversations. Used when
// no dialogue file is configured and by tests.
func DefaultDialogueTable() *DialogueTable {
	t := NewDialogueTable()
	t.Register(&TreeDef{
		ID:    "elder_greeting",
		Start: "greeting",
		Nodes: map[string]*NodeDef{
			"greeting": {
				ID:      "greeting",
				Speaker: "Village Elder",
				Text:    "Ah, a traveler. These fields hide more than weeds, you know.",
				Options: []OptionDef{
					{Text: "What do you mean?", Next: "amulet_ask"},
					{Text: "Farewell.", Next: ExitNode},
				},
			},
			"amulet_ask": {
				ID:      "amulet_ask",
				Speaker: "Village Elder",
				Text:    "I lost an old amulet out there. Would you look for it?",
				Options: []OptionDef{
					{
						Text:   "I'll find it.",
						Next:   ExitNode,
						Action: Action{Kind: ActionStartQuest, QuestID: "lost_item"},
					},
					{
						Text:  "Here it is, actually.",
						Next:  "amulet_thanks",
						Guard: &Condition{Flag: "has_amulet", Value: true},
					},
					{Text: "Not my problem.", Next: ExitNode},
				},
			},
			"amulet_thanks": {
				ID:      "amulet_thanks",
				Speaker: "Village Elder",
				Text:    "My amulet! Take this for your trouble.",
				Options: []OptionDef{
					{
						Text:   "Thank you.",
						Next:   ExitNode,
						Action: Action{Kind: ActionGiveItem, ItemID: "health_potion", ItemCount: 1},
					},
				},
			},
		},
	})
	return t
}
