package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ItemCategory distinguishes consumable/weapon/armor/quest/key items for game logic.
type ItemCategory int

const (
	CategoryConsumable ItemCategory = 0
	CategoryWeapon     ItemCategory = 1
	CategoryArmor      ItemCategory = 2
	CategoryQuestItem  ItemCategory = 3
	CategoryKey        ItemCategory = 4
)

// categoryMap maps YAML category strings to ItemCategory values.
var categoryMap = map[string]ItemCategory{
	"consumable": CategoryConsumable,
	"weapon":     CategoryWeapon,
	"armor":      CategoryArmor,
	"quest_item": CategoryQuestItem,
	"key":        CategoryKey,
}

// CategoryFromString converts a YAML category string to an ItemCategory.
// Unknown strings fall back to CategoryConsumable.
func CategoryFromString(s string) ItemCategory {
	if v, ok := categoryMap[s]; ok {
		return v
	}
	return CategoryConsumable
}

// EffectKind is what applying an item does. The amount is interpreted per kind.
type EffectKind int

const (
	EffectNone         EffectKind = 0
	EffectHeal         EffectKind = 1
	EffectRestoreMana  EffectKind = 2
	EffectDamageBoost  EffectKind = 3
	EffectDefenseBoost EffectKind = 4
	EffectUnlock       EffectKind = 5
	EffectTriggerQuest EffectKind = 6
)

var effectMap = map[string]EffectKind{
	"none":          EffectNone,
	"heal":          EffectHeal,
	"restore_mana":  EffectRestoreMana,
	"damage_boost":  EffectDamageBoost,
	"defense_boost": EffectDefenseBoost,
	"unlock":        EffectUnlock,
	"trigger_quest": EffectTriggerQuest,
}

// EffectFromString converts a YAML effect string to an EffectKind.
func EffectFromString(s string) EffectKind {
	if v, ok := effectMap[s]; ok {
		return v
	}
	return EffectNone
}

// ItemInfo holds item template data needed for game logic.
// Flat struct — fields that do not apply to a category are zero-valued.
// Values are immutable once registered; lookups hand out copies.
type ItemInfo struct {
	ItemID      string
	Name        string
	Description string
	Category    ItemCategory
	TextureRef  string
	Value       int

	// Effect applied on use (consumables) or referenced by the equip layer.
	Effect       EffectKind
	EffectAmount int

	// QuestID links a quest item to the quest it belongs to.
	QuestID string

	Stackable bool
	MaxStack  int // 1 for non-stackable items
}

// ItemTable holds all item templates indexed by ItemID.
type ItemTable struct {
	items map[string]ItemInfo
}

func NewItemTable() *ItemTable {
	return &ItemTable{items: make(map[string]ItemInfo, 256)}
}

// Register inserts or overwrites an item template by ID. Weapons and armor
// never stack — the equip layer moves them one unit at a time and relies on
// a displaced item always fitting back into the slot it freed. A zero or
// negative MaxStack is normalized to 1; non-stackable items always get
// MaxStack 1.
func (t *ItemTable) Register(info ItemInfo) {
	if info.Category == CategoryWeapon || info.Category == CategoryArmor {
		info.Stackable = false
	}
	if !info.Stackable || info.MaxStack < 1 {
		info.MaxStack = 1
	}
	t.items[info.ItemID] = info
}

// Get returns a copy of the item template, or false if not found.
func (t *ItemTable) Get(itemID string) (ItemInfo, bool) {
	info, ok := t.items[itemID]
	return info, ok
}

// Has reports whether an item ID is registered.
func (t *ItemTable) Has(itemID string) bool {
	_, ok := t.items[itemID]
	return ok
}

// Count returns total loaded items.
func (t *ItemTable) Count() int {
	return len(t.items)
}

// --- YAML loading ---

type itemEntry struct {
	ItemID       string `yaml:"item_id"`
	Name         string `yaml:"name"`
	Description  string `yaml:"description"`
	Category     string `yaml:"category"`
	TextureRef   string `yaml:"texture_ref"`
	Value        int    `yaml:"value"`
	Effect       string `yaml:"effect"`
	EffectAmount int    `yaml:"effect_amount"`
	QuestID      string `yaml:"quest_id"`
	Stackable    bool   `yaml:"stackable"`
	MaxStack     int    `yaml:"max_stack"`
}

type itemListFile struct {
	Items []itemEntry `yaml:"items"`
}

// LoadItemTable loads item templates from a YAML file.
func LoadItemTable(path string) (*ItemTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	var f itemListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse items: %w", err)
	}
	t := NewItemTable()
	for i := range f.Items {
		e := &f.Items[i]
		t.Register(ItemInfo{
			ItemID:       e.ItemID,
			Name:         e.Name,
			Description:  e.Description,
			Category:     CategoryFromString(e.Category),
			TextureRef:   e.TextureRef,
			Value:        e.Value,
			Effect:       EffectFromString(e.Effect),
			EffectAmount: e.EffectAmount,
			QuestID:      e.QuestID,
			Stackable:    e.Stackable,
			MaxStack:     e.MaxStack,
		})
	}
	return t, nil
}

// DefaultItemTable seeds the built-in starter catalog. Used when no item
// file is configured and by tests; real content replaces it via YAML.
func DefaultItemTable() *ItemTable {
	t := NewItemTable()
	t.Register(ItemInfo{
		ItemID:       "health_potion",
		Name:         "Health Potion",
		Description:  "Restores a small amount of health.",
		Category:     CategoryConsumable,
		TextureRef:   "potion_red",
		Value:        25,
		Effect:       EffectHeal,
		EffectAmount: 20,
		Stackable:    true,
		MaxStack:     10,
	})
	t.Register(ItemInfo{
		ItemID:       "mana_potion",
		Name:         "Mana Potion",
		Description:  "Restores a small amount of mana.",
		Category:     CategoryConsumable,
		TextureRef:   "potion_blue",
		Value:        25,
		Effect:       EffectRestoreMana,
		EffectAmount: 15,
		Stackable:    true,
		MaxStack:     10,
	})
	t.Register(ItemInfo{
		ItemID:      "gold_coin",
		Name:        "Gold Coin",
		Description: "Common currency.",
		Category:    CategoryKey,
		TextureRef:  "coin",
		Value:       1,
		Stackable:   true,
		MaxStack:    9999,
	})
	t.Register(ItemInfo{
		ItemID:      "quest_amulet",
		Name:        "Ancient Amulet",
		Description: "An amulet someone in the village is looking for.",
		Category:    CategoryQuestItem,
		TextureRef:  "amulet",
		Value:       0,
		QuestID:     "lost_item",
	})
	t.Register(ItemInfo{
		ItemID:       "sword_basic",
		Name:         "Iron Sword",
		Description:  "A plain but serviceable sword.",
		Category:     CategoryWeapon,
		TextureRef:   "sword",
		Value:        100,
		Effect:       EffectDamageBoost,
		EffectAmount: 5,
	})
	t.Register(ItemInfo{
		ItemID:       "armor_basic",
		Name:         "Leather Armor",
		Description:  "Worn leather armor.",
		Category:     CategoryArmor,
		TextureRef:   "armor",
		Value:        80,
		Effect:       EffectDefenseBoost,
		EffectAmount: 3,
	})
	return t
}
