package ecs

// World is the top-level ECS container. It owns entity identity, the
// component registry, and a deferred destruction queue flushed by
// CleanupSystem each tick. Entities iterate in creation order, which keeps
// scans deterministic for replay.
type World struct {
	nextID       EntityID
	entities     map[EntityID]*Entity
	order        []EntityID
	registry     *Registry
	destroyQueue []EntityID
}

func NewWorld() *World {
	return &World{
		nextID:       1,
		entities:     make(map[EntityID]*Entity, 256),
		order:        make([]EntityID, 0, 256),
		registry:     NewRegistry(),
		destroyQueue: make([]EntityID, 0, 64),
	}
}

func (w *World) Registry() *Registry { return w.registry }

// CreateEntity mints a new active entity. IDs count up from 1 and are
// never reused, even after removal.
func (w *World) CreateEntity(kind EntityKind, name string) *Entity {
	e := &Entity{
		ID:     w.nextID,
		Kind:   kind,
		Name:   name,
		Active: true,
	}
	w.nextID++
	w.entities[e.ID] = e
	w.order = append(w.order, e.ID)
	return e
}

// Get returns the entity, or nil if it was never created or already removed.
func (w *World) Get(id EntityID) *Entity {
	return w.entities[id]
}

func (w *World) Alive(id EntityID) bool {
	_, ok := w.entities[id]
	return ok
}

func (w *World) Len() int {
	return len(w.entities)
}

// RemoveEntity releases all of the entity's components and then the entity
// itself. Reports whether the entity existed.
func (w *World) RemoveEntity(id EntityID) bool {
	if _, ok := w.entities[id]; !ok {
		return false
	}
	w.registry.RemoveAll(id)
	delete(w.entities, id)
	for i, oid := range w.order {
		if oid == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	return true
}

// Each visits every live entity in creation order.
func (w *World) Each(fn func(*Entity)) {
	for _, id := range w.order {
		if e, ok := w.entities[id]; ok {
			fn(e)
		}
	}
}

// MarkForDestruction queues an entity for end-of-tick cleanup.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// FlushDestroyQueue removes all queued entities and clears their components.
// Called by CleanupSystem at the end of each tick.
func (w *World) FlushDestroyQueue() {
	for _, id := range w.destroyQueue {
		w.RemoveEntity(id)
	}
	w.destroyQueue = w.destroyQueue[:0]
}
