package rules

import (
	"sneaky/internal/action"
	"sneaky/internal/component"
	"sneaky/internal/ecs"
	"sneaky/internal/world"
)

// UseTime is the cost of the spell cast by using a scroll or potion.
const UseTime = 50

func itemUsability(s *world.State, a *action.Action, out *Result) Status {
	r := s.Registry
	switch cmd := a.Command.(type) {
	case action.UseItem:
		it, ok := carried(s, a.Actor, cmd.Item)
		if !ok {
			return Reject
		}
		if it.Kind == component.ItemEquipment {
			out.substitute(action.New(a.Actor, action.EquipItem{Item: cmd.Item}))
			return Reject
		}
		sp, ok := s.Spells.Get(it.OnUse)
		if !ok {
			return Reject
		}
		cast := action.New(a.Actor, action.CastSpell{Spell: sp}).WithTarget(a.Target).WithTime(UseTime)
		if it.Kind == component.ItemPotion {
			cast.Target = action.AtEntity(a.Actor)
		}
		out.react(action.New(a.Actor, action.DestroyItem{Item: cmd.Item}))
		out.react(cast)
	case action.PickUpItem:
		if !r.Item.Has(cmd.Item) || !r.Inventory.Has(a.Actor) {
			return Reject
		}
		at, ok := r.PositionOf(a.Actor)
		if !ok {
			return Reject
		}
		if c := s.Spatial.Get(at); c == nil || !c.Has(cmd.Item) {
			return Reject
		}
	case action.DropItem:
		if _, ok := carried(s, a.Actor, cmd.Item); !ok || !r.Position.Has(a.Actor) {
			return Reject
		}
	case action.EquipItem:
		it, ok := carried(s, a.Actor, cmd.Item)
		if !ok || it.Kind != component.ItemEquipment || it.Slot == "" {
			return Reject
		}
		eq, ok := r.Equipment.Get(a.Actor)
		if !ok || eq.Worn(cmd.Item) {
			return Reject
		}
	case action.UnequipItem:
		eq, ok := r.Equipment.Get(a.Actor)
		if !ok || !eq.Worn(cmd.Item) {
			return Reject
		}
	case action.DestroyItem:
		if !r.Item.Has(cmd.Item) || !r.Alive(cmd.Item) {
			return Reject
		}
	}
	return Accept
}

// carried returns the item if actor has it in its inventory.
func carried(s *world.State, actor, item ecs.EntityID) (*component.Item, bool) {
	inv, ok := s.Registry.Inventory.Get(actor)
	if !ok || !inv.Contains(item) {
		return nil, false
	}
	return s.Registry.Item.Get(item)
}

func equipmentBonus(s *world.State, a *action.Action, _ *Result) Status {
	if _, ok := a.Command.(action.AttackEntity); !ok {
		return Accept
	}
	target, ok := a.TargetEntity()
	if !ok || a.Actor == ecs.NilEntity {
		return Accept
	}
	a.Command = action.AttackEntity{
		BonusStrength: s.Registry.StrengthBonus(a.Actor),
		BonusDefense:  s.Registry.DefenseBonus(target),
	}
	return Accept
}
