package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/NathanVRyver/game-engine/internal/world"
)

// SaveRepo stores and restores the flat game snapshot by slot name. One
// concrete encoding of the snapshot shape — the core never sees SQL.
type SaveRepo struct {
	db *DB
}

func NewSaveRepo(db *DB) *SaveRepo {
	return &SaveRepo{db: db}
}

// Save replaces the named slot with the snapshot (delete + bulk insert).
func (r *SaveRepo) Save(ctx context.Context, slot string, snap *world.Snapshot) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback(ctx)

	// Children cascade from the slot row.
	if _, err := tx.Exec(ctx, `DELETE FROM save_slots WHERE slot_name = $1`, slot); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO save_slots (slot_name, player_x, player_y, player_health, map_id, gold, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, now())`,
		slot, snap.PlayerX, snap.PlayerY, snap.PlayerHealth, snap.MapID, snap.Gold,
	); err != nil {
		return err
	}

	for _, s := range snap.Slots {
		if _, err := tx.Exec(ctx,
			`INSERT INTO save_items (slot_name, slot_index, item_id, count, equipped, equip_slot)
			 VALUES ($1, $2, $3, $4, FALSE, 0)`,
			slot, s.Index, s.ItemID, s.Count,
		); err != nil {
			return err
		}
	}
	for _, e := range snap.Equipment {
		if _, err := tx.Exec(ctx,
			`INSERT INTO save_items (slot_name, slot_index, item_id, count, equipped, equip_slot)
			 VALUES ($1, 0, $2, $3, TRUE, $4)`,
			slot, e.ItemID, e.Count, int16(e.Slot),
		); err != nil {
			return err
		}
	}
	for _, q := range snap.Quests {
		if _, err := tx.Exec(ctx,
			`INSERT INTO save_quests (slot_name, quest_id, status) VALUES ($1, $2, $3)`,
			slot, q.QuestID, int16(q.Status),
		); err != nil {
			return err
		}
		for objID, progress := range q.Progress {
			if _, err := tx.Exec(ctx,
				`INSERT INTO save_objectives (slot_name, quest_id, objective_id, progress)
				 VALUES ($1, $2, $3, $4)`,
				slot, q.QuestID, objID, progress,
			); err != nil {
				return err
			}
		}
	}
	for flag, value := range snap.Flags {
		if _, err := tx.Exec(ctx,
			`INSERT INTO save_flags (slot_name, flag, value) VALUES ($1, $2, $3)`,
			slot, flag, value,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Load reads the named slot. A missing slot returns (nil, nil).
func (r *SaveRepo) Load(ctx context.Context, slot string) (*world.Snapshot, error) {
	snap := &world.Snapshot{Flags: make(map[string]bool)}

	err := r.db.Pool.QueryRow(ctx,
		`SELECT player_x, player_y, player_health, map_id, gold
		 FROM save_slots WHERE slot_name = $1`, slot,
	).Scan(&snap.PlayerX, &snap.PlayerY, &snap.PlayerHealth, &snap.MapID, &snap.Gold)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load slot %s: %w", slot, err)
	}

	rows, err := r.db.Pool.Query(ctx,
		`SELECT slot_index, item_id, count, equipped, equip_slot
		 FROM save_items WHERE slot_name = $1 ORDER BY slot_index`, slot,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			index, count int
			itemID       string
			equipped     bool
			equipSlot    int16
		)
		if err := rows.Scan(&index, &itemID, &count, &equipped, &equipSlot); err != nil {
			return nil, err
		}
		if equipped {
			snap.Equipment = append(snap.Equipment, world.EquipSnapshot{
				Slot: world.EquipSlot(equipSlot), ItemID: itemID, Count: count,
			})
		} else {
			snap.Slots = append(snap.Slots, world.SlotSnapshot{
				Index: index, ItemID: itemID, Count: count,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	questRows, err := r.db.Pool.Query(ctx,
		`SELECT quest_id, status FROM save_quests WHERE slot_name = $1 ORDER BY quest_id`, slot,
	)
	if err != nil {
		return nil, err
	}
	defer questRows.Close()
	for questRows.Next() {
		var (
			questID string
			status  int16
		)
		if err := questRows.Scan(&questID, &status); err != nil {
			return nil, err
		}
		snap.Quests = append(snap.Quests, world.QuestSnapshot{
			QuestID:  questID,
			Status:   int(status),
			Progress: make(map[string]int),
		})
	}
	if err := questRows.Err(); err != nil {
		return nil, err
	}
	byID := make(map[string]*world.QuestSnapshot, len(snap.Quests))
	for i := range snap.Quests {
		byID[snap.Quests[i].QuestID] = &snap.Quests[i]
	}

	objRows, err := r.db.Pool.Query(ctx,
		`SELECT quest_id, objective_id, progress FROM save_objectives WHERE slot_name = $1`, slot,
	)
	if err != nil {
		return nil, err
	}
	defer objRows.Close()
	for objRows.Next() {
		var (
			questID, objID string
			progress       int
		)
		if err := objRows.Scan(&questID, &objID, &progress); err != nil {
			return nil, err
		}
		if q, ok := byID[questID]; ok {
			q.Progress[objID] = progress
		}
	}
	if err := objRows.Err(); err != nil {
		return nil, err
	}

	flagRows, err := r.db.Pool.Query(ctx,
		`SELECT flag, value FROM save_flags WHERE slot_name = $1`, slot,
	)
	if err != nil {
		return nil, err
	}
	defer flagRows.Close()
	for flagRows.Next() {
		var (
			flag  string
			value bool
		)
		if err := flagRows.Scan(&flag, &value); err != nil {
			return nil, err
		}
		snap.Flags[flag] = value
	}
	if err := flagRows.Err(); err != nil {
		return nil, err
	}

	return snap, nil
}

// Delete removes a save slot and all its rows.
func (r *SaveRepo) Delete(ctx context.Context, slot string) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM save_slots WHERE slot_name = $1`, slot)
	return err
}
