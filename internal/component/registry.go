package component

import (
	"sneaky/internal/ecs"
	"sneaky/internal/geo"
)

// Registry is the game's component database: one typed store per component.
// Components nearly every entity carries are dense; the rest are sparse.
type Registry struct {
	*ecs.World

	Position    *ecs.DenseStore[Position]
	Visual      *ecs.DenseStore[Visual]
	Information *ecs.DenseStore[Information]
	Stats       *ecs.DenseStore[Stats]

	Flags      *ecs.SparseStore[Flags]
	Controller *ecs.SparseStore[Controller]
	AIMemory   *ecs.SparseStore[AIMemory]
	Door       *ecs.SparseStore[Door]
	Item       *ecs.SparseStore[Item]
	Inventory  *ecs.SparseStore[Inventory]
	Equipment  *ecs.SparseStore[Equipment]
	SpellBook  *ecs.SparseStore[SpellBook]
	MapMemory  *ecs.SparseStore[MapMemory]
	Duration   *ecs.SparseStore[Duration]
	Trigger    *ecs.SparseStore[Trigger]
	Stairs     *ecs.SparseStore[Stairs]
	Portal     *ecs.SparseStore[Portal]
}

// NewRegistry creates an empty registry with every store registered.
func NewRegistry() *Registry {
	r := &Registry{
		World:       ecs.NewWorld(),
		Position:    ecs.NewDenseStore[Position](),
		Visual:      ecs.NewDenseStore[Visual](),
		Information: ecs.NewDenseStore[Information](),
		Stats:       ecs.NewDenseStore[Stats](),
		Flags:       ecs.NewSparseStore[Flags](),
		Controller:  ecs.NewSparseStore[Controller](),
		AIMemory:    ecs.NewSparseStore[AIMemory](),
		Door:        ecs.NewSparseStore[Door](),
		Item:        ecs.NewSparseStore[Item](),
		Inventory:   ecs.NewSparseStore[Inventory](),
		Equipment:   ecs.NewSparseStore[Equipment](),
		SpellBook:   ecs.NewSparseStore[SpellBook](),
		MapMemory:   ecs.NewSparseStore[MapMemory](),
		Duration:    ecs.NewSparseStore[Duration](),
		Trigger:     ecs.NewSparseStore[Trigger](),
		Stairs:      ecs.NewSparseStore[Stairs](),
		Portal:      ecs.NewSparseStore[Portal](),
	}
	r.Register(
		r.Position, r.Visual, r.Information, r.Stats,
		r.Flags, r.Controller, r.AIMemory, r.Door, r.Item, r.Inventory,
		r.Equipment, r.SpellBook, r.MapMemory, r.Duration, r.Trigger,
		r.Stairs, r.Portal,
	)
	return r
}

// Name returns the entity's display name.
func (r *Registry) Name(id ecs.EntityID) string {
	if info, ok := r.Information.Get(id); ok {
		return info.Name
	}
	return "something"
}

// PositionOf returns where id stands.
func (r *Registry) PositionOf(id ecs.EntityID) (geo.Point, bool) {
	if pos, ok := r.Position.Get(id); ok {
		return pos.Coord, true
	}
	return geo.NoPosition, false
}

// StrengthBonus sums the strength bonus of everything id has equipped.
func (r *Registry) StrengthBonus(id ecs.EntityID) int {
	b := 0
	r.eachWorn(id, func(it *Item) { b += it.Bonus.Strength })
	return b
}

// DefenseBonus sums the defense bonus of everything id has equipped.
func (r *Registry) DefenseBonus(id ecs.EntityID) int {
	b := 0
	r.eachWorn(id, func(it *Item) { b += it.Bonus.Defense })
	return b
}

func (r *Registry) eachWorn(id ecs.EntityID, fn func(*Item)) {
	eq, ok := r.Equipment.Get(id)
	if !ok {
		return
	}
	for _, itemID := range eq.Items {
		if it, ok := r.Item.Get(itemID); ok {
			fn(it)
		}
	}
}

// At returns the entities at p that carry a component in store s.
func At[T any](r *Registry, s ecs.Store[T], p geo.Point) []ecs.EntityID {
	var out []ecs.EntityID
	for id, pos := range r.Position.All() {
		if pos.Coord == p && r.Alive(id) && s.Has(id) {
			out = append(out, id)
		}
	}
	return out
}
