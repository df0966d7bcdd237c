package factory

import (
	"slices"

	"sneaky/assets"
	"sneaky/internal/component"
	"sneaky/internal/data"
	"sneaky/internal/ecs"
	"sneaky/internal/geo"
	"sneaky/internal/spell"
)

// PlayerStats are the starting numbers of a new player.
var PlayerStats = component.Stats{
	Faction:   component.FactionPlayer,
	Level:     1,
	MaxHealth: 20,
	Health:    20,
	Strength:  3,
	Defense:   1,
}

// PlayerSpells is the spell book a new player starts with.
var PlayerSpells = []spell.Kind{spell.MagicMissile, spell.Heal}

// NewPlayer creates the player entity at pos. mapW and mapH size its map memory.
func NewPlayer(r *component.Registry, pos geo.Point, mapW, mapH, sight int) ecs.EntityID {
	id := r.Spawn()
	r.Position.Set(id, component.Position{Coord: pos})
	r.Visual.Set(id, component.Visual{Glyph: assets.GlyphPlayer, Color: assets.ColorPlayer})
	r.Information.Set(id, component.Information{Name: "player"})
	r.Stats.Set(id, PlayerStats)
	r.Controller.Set(id, component.Controller{AI: component.AIPlayer})
	r.Flags.Set(id, component.Flags{Solid: true})
	r.Inventory.Set(id, component.Inventory{})
	r.Equipment.Set(id, component.Equipment{})
	r.SpellBook.Set(id, component.SpellBook{Spells: slices.Clone(PlayerSpells)})
	r.MapMemory.Set(id, component.NewMapMemory(mapW, mapH, sight))
	return id
}

// NewCreature creates a monster from its definition. Spell casters get a map
// memory so they can tell when the player is in sight.
func NewCreature(r *component.Registry, def data.CreatureDef, pos geo.Point, mapW, mapH, sight int) ecs.EntityID {
	id := r.Spawn()
	r.Position.Set(id, component.Position{Coord: pos})
	r.Visual.Set(id, component.Visual{Glyph: def.Glyph, Color: def.Color})
	r.Information.Set(id, component.Information{Name: def.Name})
	r.Stats.Set(id, component.Stats{
		Faction:   component.FactionEnemy,
		Level:     1,
		MaxHealth: def.MaxHealth,
		Health:    def.MaxHealth,
		Strength:  def.Strength,
		Defense:   def.Defense,
	})
	r.Controller.Set(id, component.Controller{AI: def.AI})
	r.AIMemory.Set(id, component.AIMemory{})
	r.Flags.Set(id, component.Flags{Solid: true})
	if len(def.Spells) > 0 {
		r.SpellBook.Set(id, component.SpellBook{Spells: slices.Clone(def.Spells)})
	}
	if def.AI == component.AISpellCaster {
		r.MapMemory.Set(id, component.NewMapMemory(mapW, mapH, sight))
	}
	return id
}

// NewItem creates an item. Pass geo.NoPosition for an item that starts in an inventory.
func NewItem(r *component.Registry, def data.ItemDef, pos geo.Point) ecs.EntityID {
	id := r.Spawn()
	if pos != geo.NoPosition {
		r.Position.Set(id, component.Position{Coord: pos})
	}
	r.Visual.Set(id, component.Visual{Glyph: def.Glyph, Color: def.Color})
	r.Information.Set(id, component.Information{Name: def.Name})
	r.Item.Set(id, component.Item{Kind: def.Kind, Slot: def.Slot, Bonus: def.Bonus, OnUse: def.OnUse})
	return id
}

// NewDoor creates a closed door.
func NewDoor(r *component.Registry, pos geo.Point) ecs.EntityID {
	id := r.Spawn()
	r.Position.Set(id, component.Position{Coord: pos})
	r.Visual.Set(id, component.Visual{Glyph: assets.GlyphDoorClosed, Color: assets.ColorDoor, AlwaysDisplay: true})
	r.Information.Set(id, component.Information{Name: "door"})
	r.Flags.Set(id, component.Flags{Solid: true, BlockSight: true})
	r.Door.Set(id, component.Door{})
	return id
}

// NewStairs creates a stairs-down entity.
func NewStairs(r *component.Registry, pos geo.Point) ecs.EntityID {
	id := r.Spawn()
	r.Position.Set(id, component.Position{Coord: pos})
	r.Visual.Set(id, component.Visual{Glyph: assets.GlyphStairsDown, Color: assets.ColorStairs, AlwaysDisplay: true})
	r.Information.Set(id, component.Information{Name: "stairs"})
	r.Stairs.Set(id, component.Stairs{})
	return id
}

// NewPortal creates the exit of the last level.
func NewPortal(r *component.Registry, pos geo.Point) ecs.EntityID {
	id := r.Spawn()
	r.Position.Set(id, component.Position{Coord: pos})
	r.Visual.Set(id, component.Visual{Glyph: assets.GlyphPortal, Color: assets.ColorPortal, AlwaysDisplay: true})
	r.Information.Set(id, component.Information{Name: "portal"})
	r.Portal.Set(id, component.Portal{})
	return id
}

// NewFog creates a sight-blocking cloud that lasts d time units from now.
func NewFog(r *component.Registry, pos geo.Point, now, d int) ecs.EntityID {
	id := r.Spawn()
	r.Position.Set(id, component.Position{Coord: pos})
	r.Visual.Set(id, component.Visual{Glyph: assets.GlyphFog, Color: assets.ColorFog})
	r.Information.Set(id, component.Information{Name: "fog"})
	r.Flags.Set(id, component.Flags{BlockSight: true})
	r.Duration.Set(id, component.NewDuration(now, d))
	return id
}

// NewRune creates a step trigger that casts kind on whoever walks onto it.
func NewRune(r *component.Registry, pos geo.Point, kind spell.Kind) ecs.EntityID {
	id := r.Spawn()
	r.Position.Set(id, component.Position{Coord: pos})
	r.Visual.Set(id, component.Visual{Glyph: assets.GlyphRune, Color: assets.ColorRune})
	r.Information.Set(id, component.Information{Name: "rune of " + string(kind)})
	r.Trigger.Set(id, component.Trigger{Kind: component.TriggerStep, Spell: kind})
	return id
}
