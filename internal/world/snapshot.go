package world

// Snapshot is the flat save-state blob: everything the persistence layer
// stores and nothing it has to understand. The concrete encoding (SQL rows,
// JSON, whatever) belongs to the persistence collaborator; the core only
// produces and consumes this shape.
type Snapshot struct {
	PlayerX      float64
	PlayerY      float64
	PlayerHealth int
	MapID        string

	Gold      int
	Slots     []SlotSnapshot
	Equipment []EquipSnapshot

	Quests []QuestSnapshot
	Flags  map[string]bool
}

// SlotSnapshot is one storage slot's contents at its index.
type SlotSnapshot struct {
	Index  int
	ItemID string
	Count  int
}

// EquipSnapshot is one occupied equipment slot.
type EquipSnapshot struct {
	Slot   EquipSlot
	ItemID string
	Count  int
}

// QuestSnapshot is one quest's live status plus per-objective progress,
// keyed by objective ID.
type QuestSnapshot struct {
	QuestID  string
	Status   int
	Progress map[string]int
}

// CaptureInventory records the inventory's slots, equipment, and gold.
func CaptureInventory(inv *Inventory, snap *Snapshot) {
	snap.Gold = inv.Gold()
	snap.Slots = snap.Slots[:0]
	for i := 0; i < inv.Capacity(); i++ {
		s, _ := inv.Slot(i)
		if s.Empty() {
			continue
		}
		snap.Slots = append(snap.Slots, SlotSnapshot{Index: i, ItemID: s.ItemID, Count: s.Count})
	}
	snap.Equipment = snap.Equipment[:0]
	for slot := SlotNone + 1; slot < SlotMax; slot++ {
		eq := inv.Equipped(slot)
		if eq.Empty() {
			continue
		}
		snap.Equipment = append(snap.Equipment, EquipSnapshot{Slot: slot, ItemID: eq.ItemID, Count: eq.Count})
	}
}

// RestoreInventory clears the inventory and loads the snapshot's contents.
// Slots beyond the current capacity are dropped.
func RestoreInventory(inv *Inventory, snap *Snapshot) {
	inv.clear()
	inv.SetGold(snap.Gold)
	for _, s := range snap.Slots {
		inv.setSlot(s.Index, Slot{ItemID: s.ItemID, Count: s.Count})
	}
	for _, e := range snap.Equipment {
		inv.setEquipped(e.Slot, Slot{ItemID: e.ItemID, Count: e.Count})
	}
}
