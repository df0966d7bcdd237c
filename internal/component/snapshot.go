package component

import "sneaky/internal/ecs"

// Record holds every component of one entity.
type Record struct {
	ID          ecs.EntityID `json:"id"`
	Position    *Position    `json:"position,omitempty"`
	Visual      *Visual      `json:"visual,omitempty"`
	Information *Information `json:"information,omitempty"`
	Stats       *Stats       `json:"stats,omitempty"`
	Flags       *Flags       `json:"flags,omitempty"`
	Controller  *Controller  `json:"controller,omitempty"`
	AIMemory    *AIMemory    `json:"ai_memory,omitempty"`
	Door        *Door        `json:"door,omitempty"`
	Item        *Item        `json:"item,omitempty"`
	Inventory   *Inventory   `json:"inventory,omitempty"`
	Equipment   *Equipment   `json:"equipment,omitempty"`
	SpellBook   *SpellBook   `json:"spell_book,omitempty"`
	MapMemory   *MapMemory   `json:"map_memory,omitempty"`
	Duration    *Duration    `json:"duration,omitempty"`
	Trigger     *Trigger     `json:"trigger,omitempty"`
	Stairs      *Stairs      `json:"stairs,omitempty"`
	Portal      *Portal      `json:"portal,omitempty"`
}

// Snapshot is an entity-major copy of the registry.
type Snapshot struct {
	NextID   ecs.EntityID `json:"next_id"`
	Entities []Record     `json:"entities"`
}

func copyOf[T any](s ecs.Store[T], id ecs.EntityID, clone func(T) T) *T {
	v, ok := s.Get(id)
	if !ok {
		return nil
	}
	c := *v
	if clone != nil {
		c = clone(c)
	}
	return &c
}

func restore[T any](s ecs.Store[T], id ecs.EntityID, v *T, clone func(T) T) {
	if v == nil {
		return
	}
	c := *v
	if clone != nil {
		c = clone(c)
	}
	s.Set(id, c)
}

// Snapshot copies every live entity. Tombstoned entities are left out.
func (r *Registry) Snapshot() Snapshot {
	ids := r.Entities()
	snap := Snapshot{NextID: r.NextID(), Entities: make([]Record, 0, len(ids))}
	for _, id := range ids {
		snap.Entities = append(snap.Entities, Record{
			ID:          id,
			Position:    copyOf(r.Position, id, nil),
			Visual:      copyOf(r.Visual, id, nil),
			Information: copyOf(r.Information, id, nil),
			Stats:       copyOf(r.Stats, id, Stats.clone),
			Flags:       copyOf(r.Flags, id, nil),
			Controller:  copyOf(r.Controller, id, nil),
			AIMemory:    copyOf(r.AIMemory, id, AIMemory.clone),
			Door:        copyOf(r.Door, id, nil),
			Item:        copyOf(r.Item, id, nil),
			Inventory:   copyOf(r.Inventory, id, Inventory.clone),
			Equipment:   copyOf(r.Equipment, id, Equipment.clone),
			SpellBook:   copyOf(r.SpellBook, id, SpellBook.clone),
			MapMemory:   copyOf(r.MapMemory, id, MapMemory.clone),
			Duration:    copyOf(r.Duration, id, nil),
			Trigger:     copyOf(r.Trigger, id, nil),
			Stairs:      copyOf(r.Stairs, id, nil),
			Portal:      copyOf(r.Portal, id, nil),
		})
	}
	return snap
}

// Restore replaces the registry's contents with snap.
func (r *Registry) Restore(snap Snapshot) {
	ids := make([]ecs.EntityID, len(snap.Entities))
	for i, rec := range snap.Entities {
		ids[i] = rec.ID
	}
	r.Reset(snap.NextID, ids)
	for _, rec := range snap.Entities {
		id := rec.ID
		restore(r.Position, id, rec.Position, nil)
		restore(r.Visual, id, rec.Visual, nil)
		restore(r.Information, id, rec.Information, nil)
		restore(r.Stats, id, rec.Stats, Stats.clone)
		restore(r.Flags, id, rec.Flags, nil)
		restore(r.Controller, id, rec.Controller, nil)
		restore(r.AIMemory, id, rec.AIMemory, AIMemory.clone)
		restore(r.Door, id, rec.Door, nil)
		restore(r.Item, id, rec.Item, nil)
		restore(r.Inventory, id, rec.Inventory, Inventory.clone)
		restore(r.Equipment, id, rec.Equipment, Equipment.clone)
		restore(r.SpellBook, id, rec.SpellBook, SpellBook.clone)
		restore(r.MapMemory, id, rec.MapMemory, MapMemory.clone)
		restore(r.Duration, id, rec.Duration, nil)
		restore(r.Trigger, id, rec.Trigger, nil)
		restore(r.Stairs, id, rec.Stairs, nil)
		restore(r.Portal, id, rec.Portal, nil)
	}
}
