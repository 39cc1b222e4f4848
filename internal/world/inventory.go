package world

import "github.com/NathanVRyver/game-engine/internal/data"

// Slot is one storage unit: an item template ID plus a stack count.
// A slot is empty when it has no item ID or a zero count.
type Slot struct {
	ItemID string
	Count  int
}

// Empty reports whether the slot holds nothing.
func (s Slot) Empty() bool {
	return s.ItemID == "" || s.Count == 0
}

// ItemEffect is what a consumed item does, handed back to the caller to
// apply. The inventory never applies effects itself.
type ItemEffect struct {
	ItemID string
	Kind   data.EffectKind
	Amount int
}

// Inventory is a fixed-capacity slot array plus gold, equipment, and a
// selection cursor. It references the shared item table for metadata but
// never mutates it. Accessed only from the game loop goroutine.
//
// AddItem and RemoveItem place or drain units as they scan and do NOT roll
// back on failure: a false return can leave the inventory partially
// changed. Callers that need all-or-nothing must check counts first.
type Inventory struct {
	slots     []Slot
	equipment [SlotMax]Slot
	gold      int
	selected  int
	visible   bool

	items *data.ItemTable
}

// NewInventory creates an empty inventory with the given slot capacity.
func NewInventory(capacity int, items *data.ItemTable) *Inventory {
	if capacity < 1 {
		capacity = 1
	}
	return &Inventory{
		slots: make([]Slot, capacity),
		items: items,
	}
}

// Capacity returns the number of slots.
func (inv *Inventory) Capacity() int {
	return len(inv.slots)
}

// Slot returns a copy of the slot at index i, or false if out of range.
func (inv *Inventory) Slot(i int) (Slot, bool) {
	if i < 0 || i >= len(inv.slots) {
		return Slot{}, false
	}
	return inv.slots[i], true
}

// Equipped returns a copy of the equipment slot's contents. The returned
// slot is empty for SlotNone or an unoccupied position.
func (inv *Inventory) Equipped(slot EquipSlot) Slot {
	if slot <= SlotNone || slot >= SlotMax {
		return Slot{}
	}
	return inv.equipment[slot]
}

// Gold returns the current gold amount.
func (inv *Inventory) Gold() int { return inv.gold }

// AddGold increases the gold counter. Negative amounts are ignored.
func (inv *Inventory) AddGold(amount int) {
	if amount > 0 {
		inv.gold += amount
	}
}

// SpendGold decreases gold if the balance covers the amount.
func (inv *Inventory) SpendGold(amount int) bool {
	if amount < 0 || amount > inv.gold {
		return false
	}
	inv.gold -= amount
	return true
}

// SetGold overwrites the gold counter. Used by snapshot restore.
func (inv *Inventory) SetGold(amount int) {
	if amount < 0 {
		amount = 0
	}
	inv.gold = amount
}

// AddItem places count units of an item. Stackable items first top off
// existing stacks, then fill empty slots; non-stackable items take one
// empty slot per unit. Returns true iff every unit was placed. Units placed
// before running out of room stay placed.
func (inv *Inventory) AddItem(itemID string, count int) bool {
	info, ok := inv.items.Get(itemID)
	if !ok || count <= 0 {
		return false
	}

	remaining := count
	if info.Stackable {
		for i := range inv.slots {
			if remaining == 0 {
				break
			}
			s := &inv.slots[i]
			if s.ItemID != itemID || s.Count >= info.MaxStack {
				continue
			}
			add := info.MaxStack - s.Count
			if add > remaining {
				add = remaining
			}
			s.Count += add
			remaining -= add
		}
	}
	for i := range inv.slots {
		if remaining == 0 {
			break
		}
		s := &inv.slots[i]
		if !s.Empty() {
			continue
		}
		add := info.MaxStack
		if add > remaining {
			add = remaining
		}
		s.ItemID = itemID
		s.Count = add
		remaining -= add
	}
	return remaining == 0
}

// RemoveItem drains count units of an item from matching slots in storage
// order. Returns true iff every unit was removed; like AddItem, a failed
// call may still have removed some units.
func (inv *Inventory) RemoveItem(itemID string, count int) bool {
	if count <= 0 {
		return false
	}
	remaining := count
	for i := range inv.slots {
		if remaining == 0 {
			break
		}
		s := &inv.slots[i]
		if s.Empty() || s.ItemID != itemID {
			continue
		}
		take := s.Count
		if take > remaining {
			take = remaining
		}
		s.Count -= take
		remaining -= take
		if s.Count == 0 {
			s.ItemID = ""
		}
	}
	return remaining == 0
}

// HasItem reports whether at least one unit of the item is stored.
func (inv *Inventory) HasItem(itemID string) bool {
	return inv.ItemCount(itemID) > 0
}

// ItemCount returns the total units of an item across all slots.
func (inv *Inventory) ItemCount(itemID string) int {
	total := 0
	for i := range inv.slots {
		if inv.slots[i].ItemID == itemID {
			total += inv.slots[i].Count
		}
	}
	return total
}

// EquipItem moves one unit from a storage slot into an equipment slot.
// The item's category must fit the slot. If something is already equipped
// there it is returned to storage first — equip is a swap, not a fail.
// Returns false with no state change on bad index, empty slot, unknown
// item, or category mismatch.
func (inv *Inventory) EquipItem(slotIndex int, slot EquipSlot) bool {
	if slot <= SlotNone || slot >= SlotMax {
		return false
	}
	if slotIndex < 0 || slotIndex >= len(inv.slots) {
		return false
	}
	src := &inv.slots[slotIndex]
	if src.Empty() {
		return false
	}
	info, ok := inv.items.Get(src.ItemID)
	if !ok || !CategoryFitsSlot(info.Category, slot) {
		return false
	}

	prev := inv.equipment[slot]
	inv.equipment[slot] = Slot{ItemID: src.ItemID, Count: 1}
	src.Count--
	if src.Count == 0 {
		src.ItemID = ""
	}
	if !prev.Empty() {
		// Registration forces weapons and armor non-stackable, so the
		// source slot just freed a unit and the returned item always
		// finds room.
		inv.AddItem(prev.ItemID, prev.Count)
	}
	return true
}

// UnequipItem returns the equipped item to storage. If storage has no room
// the unequip fails and the item stays equipped.
func (inv *Inventory) UnequipItem(slot EquipSlot) bool {
	if slot <= SlotNone || slot >= SlotMax {
		return false
	}
	eq := inv.equipment[slot]
	if eq.Empty() {
		return false
	}
	if !inv.AddItem(eq.ItemID, eq.Count) {
		return false
	}
	inv.equipment[slot] = Slot{}
	return true
}

// UseItem consumes one unit from a storage slot and returns its effect for
// the caller to apply. Only consumables are usable; empty, out-of-range,
// or non-consumable slots return false.
func (inv *Inventory) UseItem(slotIndex int) (ItemEffect, bool) {
	if slotIndex < 0 || slotIndex >= len(inv.slots) {
		return ItemEffect{}, false
	}
	s := &inv.slots[slotIndex]
	if s.Empty() {
		return ItemEffect{}, false
	}
	info, ok := inv.items.Get(s.ItemID)
	if !ok || info.Category != data.CategoryConsumable {
		return ItemEffect{}, false
	}
	s.Count--
	if s.Count == 0 {
		s.ItemID = ""
	}
	return ItemEffect{
		ItemID: info.ItemID,
		Kind:   info.Effect,
		Amount: info.EffectAmount,
	}, true
}

// SelectedSlot returns the cursor position.
func (inv *Inventory) SelectedSlot() int { return inv.selected }

// SelectNextSlot moves the cursor forward, wrapping at capacity.
func (inv *Inventory) SelectNextSlot() {
	inv.selected = (inv.selected + 1) % len(inv.slots)
}

// SelectPrevSlot moves the cursor backward, wrapping below zero.
func (inv *Inventory) SelectPrevSlot() {
	inv.selected = (inv.selected - 1 + len(inv.slots)) % len(inv.slots)
}

// Visible reports whether the inventory UI is open.
func (inv *Inventory) Visible() bool { return inv.visible }

// SetVisible opens or closes the inventory UI.
func (inv *Inventory) SetVisible(v bool) { inv.visible = v }

// ToggleVisible flips the inventory UI open state.
func (inv *Inventory) ToggleVisible() { inv.visible = !inv.visible }

// setSlot overwrites a slot directly. Used by snapshot restore.
func (inv *Inventory) setSlot(i int, s Slot) {
	if i >= 0 && i < len(inv.slots) {
		inv.slots[i] = s
	}
}

// setEquipped overwrites an equipment slot directly. Used by snapshot restore.
func (inv *Inventory) setEquipped(slot EquipSlot, s Slot) {
	if slot > SlotNone && slot < SlotMax {
		inv.equipment[slot] = s
	}
}

// clear empties all storage and equipment slots. Used by snapshot restore.
func (inv *Inventory) clear() {
	for i := range inv.slots {
		inv.slots[i] = Slot{}
	}
	for i := range inv.equipment {
		inv.equipment[i] = Slot{}
	}
}
