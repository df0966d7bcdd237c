package component

import (
	"maps"
	"slices"

	"sneaky/internal/ecs"
	"sneaky/internal/spell"
)

// ItemKind decides how an item is used.
type ItemKind string

const (
	ItemScroll    ItemKind = "scroll"    // cast OnUse at a chosen target
	ItemPotion    ItemKind = "potion"    // cast OnUse on the user
	ItemEquipment ItemKind = "equipment" // worn in Slot for Bonus
)

// Slot is where a piece of equipment is worn.
type Slot string

const (
	SlotLeftHand  Slot = "left_hand"
	SlotRightHand Slot = "right_hand"
	SlotHead      Slot = "head"
)

// StatisticsBonus is added to the wearer's stats in combat.
type StatisticsBonus struct {
	Strength int `json:"strength" yaml:"strength"`
	Defense  int `json:"defense" yaml:"defense"`
}

// Item makes an entity pick-up-able.
type Item struct {
	Kind  ItemKind        `json:"kind"`
	Slot  Slot            `json:"slot,omitempty"`
	Bonus StatisticsBonus `json:"bonus"`
	OnUse spell.Kind      `json:"on_use,omitempty"`
}

// Inventory lists carried item entities.
type Inventory struct {
	Items []ecs.EntityID `json:"items"`
}

// Contains reports whether item is carried.
func (inv *Inventory) Contains(item ecs.EntityID) bool {
	return slices.Contains(inv.Items, item)
}

// Remove drops item from the list and reports whether it was there.
func (inv *Inventory) Remove(item ecs.EntityID) bool {
	i := slices.Index(inv.Items, item)
	if i < 0 {
		return false
	}
	inv.Items = slices.Delete(inv.Items, i, i+1)
	return true
}

func (inv Inventory) clone() Inventory {
	return Inventory{Items: slices.Clone(inv.Items)}
}

// Equipment maps worn slots to item entities.
type Equipment struct {
	Items map[Slot]ecs.EntityID `json:"items"`
}

// Equip wears item in slot and returns what it replaced.
func (eq *Equipment) Equip(slot Slot, item ecs.EntityID) ecs.EntityID {
	if eq.Items == nil {
		eq.Items = make(map[Slot]ecs.EntityID)
	}
	prev := eq.Items[slot]
	eq.Items[slot] = item
	return prev
}

// Unequip removes item from whichever slot holds it.
func (eq *Equipment) Unequip(item ecs.EntityID) bool {
	for s, id := range eq.Items {
		if id == item {
			delete(eq.Items, s)
			return true
		}
	}
	return false
}

// Worn reports whether item is equipped.
func (eq *Equipment) Worn(item ecs.EntityID) bool {
	for _, id := range eq.Items {
		if id == item {
			return true
		}
	}
	return false
}

func (eq Equipment) clone() Equipment {
	return Equipment{Items: maps.Clone(eq.Items)}
}

// SpellBook lists the spells a caster knows.
type SpellBook struct {
	Spells []spell.Kind `json:"spells"`
}

func (b SpellBook) clone() SpellBook {
	return SpellBook{Spells: slices.Clone(b.Spells)}
}
