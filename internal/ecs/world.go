package ecs

import "slices"

// World allocates entity ids and tracks which are alive. Component data lives
// in typed stores registered with the world so that destroyed entities can be
// swept from all of them at once.
type World struct {
	nextID EntityID
	alive  map[EntityID]struct{}
	doomed []EntityID
	stores []AnyStore
}

// NewWorld creates an empty World.
func NewWorld() *World {
	return &World{
		nextID: 1,
		alive:  make(map[EntityID]struct{}),
	}
}

// Register adds a component store to the world.
func (w *World) Register(stores ...AnyStore) {
	w.stores = append(w.stores, stores...)
}

// Spawn mints a new entity id and marks it alive.
func (w *World) Spawn() EntityID {
	id := w.nextID
	w.nextID++
	w.alive[id] = struct{}{}
	return id
}

// NextID is the id the next Spawn will return.
func (w *World) NextID() EntityID { return w.nextID }

// Alive reports whether the entity exists and has not been destroyed.
func (w *World) Alive(id EntityID) bool {
	_, ok := w.alive[id]
	return ok
}

// Destroy tombstones the entity. Its components stay readable until Sweep,
// which makes Destroy safe to call while iterating any store.
func (w *World) Destroy(id EntityID) {
	if !w.Alive(id) {
		return
	}
	delete(w.alive, id)
	w.doomed = append(w.doomed, id)
}

// Pending reports whether any destroyed entity is waiting for Sweep.
func (w *World) Pending() bool { return len(w.doomed) > 0 }

// Sweep removes the components of every destroyed entity from every store
// and returns the swept ids.
func (w *World) Sweep() []EntityID {
	if len(w.doomed) == 0 {
		return nil
	}
	swept := w.doomed
	w.doomed = nil
	for _, id := range swept {
		for _, s := range w.stores {
			s.Remove(id)
		}
	}
	return swept
}

// HasAll reports whether id carries a component in every given store.
func (w *World) HasAll(id EntityID, stores ...AnyStore) (bool, error) {
	if !w.Alive(id) {
		return false, &NotFoundError{Kind: NotFoundEntity, Entity: id}
	}
	for _, s := range stores {
		if !s.Has(id) {
			return false, nil
		}
	}
	return true, nil
}

// Entities returns the alive ids in ascending order.
func (w *World) Entities() []EntityID {
	ids := make([]EntityID, 0, len(w.alive))
	for id := range w.alive {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Reset empties every store and restores the allocator to the given state.
// Used when loading a saved game.
func (w *World) Reset(next EntityID, alive []EntityID) {
	for _, s := range w.stores {
		s.Clear()
	}
	w.doomed = nil
	w.alive = make(map[EntityID]struct{}, len(alive))
	for _, id := range alive {
		w.alive[id] = struct{}{}
	}
	if next < 1 {
		next = 1
	}
	w.nextID = next
}
