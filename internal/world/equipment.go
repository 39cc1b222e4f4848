package world

import "github.com/NathanVRyver/game-engine/internal/data"

// EquipSlot identifies an equipment slot on a character.
type EquipSlot int

const (
	SlotNone   EquipSlot = 0
	SlotHead   EquipSlot = 1
	SlotChest  EquipSlot = 2
	SlotLegs   EquipSlot = 3
	SlotFeet   EquipSlot = 4
	SlotWeapon EquipSlot = 5
	SlotShield EquipSlot = 6
	SlotMax    EquipSlot = 7
)

func (s EquipSlot) String() string {
	switch s {
	case SlotHead:
		return "head"
	case SlotChest:
		return "chest"
	case SlotLegs:
		return "legs"
	case SlotFeet:
		return "feet"
	case SlotWeapon:
		return "weapon"
	case SlotShield:
		return "shield"
	}
	return "none"
}

// EquipSlotFromName maps a slot name to its EquipSlot. Free-form strings are
// a typo magnet, so every string entering the equipment layer goes through
// this validated lookup. Returns SlotNone for unknown names.
func EquipSlotFromName(name string) EquipSlot {
	switch name {
	case "head":
		return SlotHead
	case "chest":
		return SlotChest
	case "legs":
		return SlotLegs
	case "feet":
		return SlotFeet
	case "weapon":
		return SlotWeapon
	case "shield":
		return SlotShield
	default:
		return SlotNone
	}
}

// CategoryFitsSlot reports whether an item category may be equipped in a
// slot. Shields count as armor — there is no separate shield category.
func CategoryFitsSlot(cat data.ItemCategory, slot EquipSlot) bool {
	switch slot {
	case SlotHead, SlotChest, SlotLegs, SlotFeet, SlotShield:
		return cat == data.CategoryArmor
	case SlotWeapon:
		return cat == data.CategoryWeapon
	default:
		return false
	}
}
