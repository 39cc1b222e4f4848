package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// NpcInfo holds NPC template data: spawn visuals plus the dialogue tree
// and quests the NPC is wired to. References only — the referenced
// definitions live in their own tables.
type NpcInfo struct {
	NpcID      string
	Name       string
	TextureRef string
	Width      float64
	Height     float64
	DialogueID string
	QuestIDs   []string

	// Spawn placement for templates the boot sequence creates directly.
	Spawn  bool
	SpawnX float64
	SpawnY float64
}

// NpcTable holds all NPC templates indexed by NpcID. Templates iterate in
// registration order so boot-time spawning is deterministic.
type NpcTable struct {
	npcs  map[string]*NpcInfo
	order []string
}

func NewNpcTable() *NpcTable {
	return &NpcTable{npcs: make(map[string]*NpcInfo, 128)}
}

// Register inserts or overwrites an NPC template by ID.
func (t *NpcTable) Register(info *NpcInfo) {
	if _, ok := t.npcs[info.NpcID]; !ok {
		t.order = append(t.order, info.NpcID)
	}
	t.npcs[info.NpcID] = info
}

// Each visits every template in registration order.
func (t *NpcTable) Each(fn func(*NpcInfo)) {
	for _, id := range t.order {
		fn(t.npcs[id])
	}
}

// Get returns an NPC template by ID, or nil if not found.
func (t *NpcTable) Get(npcID string) *NpcInfo {
	return t.npcs[npcID]
}

// Count returns total loaded NPC templates.
func (t *NpcTable) Count() int {
	return len(t.npcs)
}

// --- YAML loading ---

type npcEntry struct {
	NpcID      string   `yaml:"npc_id"`
	Name       string   `yaml:"name"`
	TextureRef string   `yaml:"texture_ref"`
	Width      float64  `yaml:"width"`
	Height     float64  `yaml:"height"`
	DialogueID string   `yaml:"dialogue_id"`
	QuestIDs   []string `yaml:"quest_ids"`
	Spawn      bool     `yaml:"spawn"`
	SpawnX     float64  `yaml:"spawn_x"`
	SpawnY     float64  `yaml:"spawn_y"`
}

type npcListFile struct {
	Npcs []npcEntry `yaml:"npcs"`
}

// LoadNpcTable loads NPC templates from a YAML file.
func LoadNpcTable(path string) (*NpcTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read npcs: %w", err)
	}
	var f npcListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse npcs: %w", err)
	}
	t := NewNpcTable()
	for i := range f.Npcs {
		n := &f.Npcs[i]
		w, h := n.Width, n.Height
		if w <= 0 {
			w = 32
		}
		if h <= 0 {
			h = 32
		}
		t.Register(&NpcInfo{
			NpcID:      n.NpcID,
			Name:       n.Name,
			TextureRef: n.TextureRef,
			Width:      w,
			Height:     h,
			DialogueID: n.DialogueID,
			QuestIDs:   n.QuestIDs,
			Spawn:      n.Spawn,
			SpawnX:     n.SpawnX,
			SpawnY:     n.SpawnY,
		})
	}
	return t, nil
}

// DefaultNpcTable seeds the built-in starter NPCs.
func DefaultNpcTable() *NpcTable {
	t := NewNpcTable()
	t.Register(&NpcInfo{
		NpcID:      "village_elder",
		Name:       "Village Elder",
		TextureRef: "elder",
		Width:      32,
		Height:     32,
		DialogueID: "elder_greeting",
		QuestIDs:   []string{"lost_item"},
		Spawn:      true,
		SpawnX:     160,
		SpawnY:     96,
	})
	return t
}
