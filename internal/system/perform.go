package system

import (
	"sneaky/assets"
	"sneaky/internal/action"
	"sneaky/internal/component"
	"sneaky/internal/ecs"
	"sneaky/internal/factory"
	"sneaky/internal/geo"
	"sneaky/internal/message"
	"sneaky/internal/world"
)

// Perform applies the effect of an accepted action to the state. The spatial
// index must already have been updated for a. It returns false when the
// action turned out to have nothing to act on, which the pipeline treats as
// not committed.
func Perform(s *world.State, a action.Action) bool {
	r := s.Registry
	switch cmd := a.Command.(type) {
	case action.Wait:
		return true
	case action.Abort:
		return false
	case action.Win:
		s.Won = true
		s.Log.Add(message.Important, "you step through the portal and escape the dungeon")
		return true
	case action.DescendStairs:
		return descend(s)
	case action.WalkDirection:
		pos, ok := r.Position.Get(a.Actor)
		if !ok {
			return false
		}
		pos.Coord = pos.Coord.Add(cmd.Dir)
		return true
	case action.AttackEntity:
		return true
	case action.OpenDoor:
		return openDoor(s, cmd.Door)
	case action.TakeDamage:
		return takeDamage(s, a, cmd.Damage)
	case action.UseItem:
		s.Log.Addf(message.Info, "the %s uses the %s", r.Name(a.Actor), r.Name(cmd.Item))
		return true
	case action.EquipItem:
		return equip(s, a.Actor, cmd.Item)
	case action.UnequipItem:
		eq, ok := r.Equipment.Get(a.Actor)
		if !ok || !eq.Unequip(cmd.Item) {
			return false
		}
		s.Log.Addf(message.Info, "the %s takes off the %s", r.Name(a.Actor), r.Name(cmd.Item))
		return true
	case action.DestroyItem:
		release(s, a.Actor, cmd.Item)
		r.Destroy(cmd.Item)
		return true
	case action.DropItem:
		pos, ok := r.PositionOf(a.Actor)
		if !ok {
			return false
		}
		release(s, a.Actor, cmd.Item)
		r.Position.Set(cmd.Item, component.Position{Coord: pos})
		s.Log.Addf(message.Info, "the %s drops the %s", r.Name(a.Actor), r.Name(cmd.Item))
		return true
	case action.PickUpItem:
		inv, ok := r.Inventory.Get(a.Actor)
		if !ok {
			return false
		}
		inv.Items = append(inv.Items, cmd.Item)
		r.Position.Remove(cmd.Item)
		s.Log.Addf(message.Info, "the %s picks up the %s", r.Name(a.Actor), r.Name(cmd.Item))
		return true
	case action.CastSpell:
		if a.Target != nil && a.Actor != ecs.NilEntity {
			s.Log.Addf(message.Spell, "the %s casts %s on %s", r.Name(a.Actor), cmd.Spell.Name, targetName(s, a.Target))
		} else {
			s.Log.Addf(message.Spell, "%s is cast", cmd.Spell.Name)
		}
		return true
	case action.WriteRune:
		pos, ok := r.PositionOf(a.Actor)
		if !ok {
			return false
		}
		factory.NewRune(r, pos, cmd.Spell)
		s.Log.Addf(message.Spell, "the %s inscribes a rune of %s", r.Name(a.Actor), cmd.Spell)
		return true
	case action.Heal:
		return heal(s, a, cmd.Amount)
	case action.SpawnFog:
		spawnFog(s, cmd.Pos)
		return true
	case action.KillEntity:
		if !r.Alive(a.Actor) {
			return false
		}
		s.Log.Addf(levelFor(s, a.Actor), "the %s has died!", r.Name(a.Actor))
		r.Destroy(a.Actor)
		return true
	case action.LightningStrike:
		s.Log.Addf(message.Spell, "lightning strikes %s", targetName(s, a.Target))
		return true
	case action.Confuse:
		return afflict(s, a, component.EffectConfuse, "confused")
	case action.Slow:
		return afflict(s, a, component.EffectSlow, "slowed")
	case action.Stun:
		return afflict(s, a, component.EffectStun, "stunned")
	case action.GainPoint:
		st, ok := r.Stats.Get(a.Actor)
		if !ok {
			return false
		}
		st.Points++
		s.Log.Add(message.Important, "you feel more experienced; a level up is available")
		return true
	case action.LevelUp:
		return levelUp(s, a.Actor, cmd.Choice)
	}
	return false
}

func targetName(s *world.State, t *action.Target) string {
	if t == nil {
		return "nothing"
	}
	if t.Kind == action.TargetEntity {
		return "the " + s.Registry.Name(t.Entity)
	}
	return t.Pos.String()
}

func descend(s *world.State) bool {
	if s.NextLevel == nil {
		return false
	}
	s.Level++
	s.NextLevel(s)
	s.Log.Addf(message.Important, "you descend to level %d", s.Level)
	return true
}

func openDoor(s *world.State, door ecs.EntityID) bool {
	r := s.Registry
	d, ok := r.Door.Get(door)
	if !ok {
		return false
	}
	d.Opened = true
	if f, ok := r.Flags.Get(door); ok {
		f.Solid = false
		f.BlockSight = false
	}
	if v, ok := r.Visual.Get(door); ok {
		v.Glyph = assets.GlyphDoorOpen
	}
	r.Information.Set(door, component.Information{Name: "open door"})
	return true
}

func takeDamage(s *world.State, a action.Action, dmg int) bool {
	r := s.Registry
	target, ok := a.TargetEntity()
	if !ok {
		return false
	}
	st, ok := r.Stats.Get(target)
	if !ok {
		return false
	}
	st.Health -= dmg
	if a.Actor == ecs.NilEntity {
		s.Log.Addf(levelFor(s, target), "the %s takes %d damage", r.Name(target), dmg)
	} else {
		s.Log.Addf(levelFor(s, target), "the %s hits the %s for %d", r.Name(a.Actor), r.Name(target), dmg)
	}
	return true
}

func heal(s *world.State, a action.Action, amount int) bool {
	r := s.Registry
	target, ok := a.TargetEntity()
	if !ok {
		return false
	}
	st, ok := r.Stats.Get(target)
	if !ok {
		return false
	}
	st.Health = min(st.Health+amount, st.MaxHealth)
	if target == a.Actor || a.Actor == ecs.NilEntity {
		s.Log.Addf(message.Info, "the %s is healed for %d", r.Name(target), amount)
	} else {
		s.Log.Addf(message.Info, "the %s heals the %s for %d", r.Name(a.Actor), r.Name(target), amount)
	}
	return true
}

func afflict(s *world.State, a action.Action, e component.Effect, verb string) bool {
	target, ok := a.TargetEntity()
	if !ok {
		return false
	}
	st, ok := s.Registry.Stats.Get(target)
	if !ok {
		return false
	}
	st.SetEffect(e, s.Now()+s.Settings.EffectDuration)
	s.Log.Addf(levelFor(s, target), "the %s is %s!", s.Registry.Name(target), verb)
	return true
}

func equip(s *world.State, actor, item ecs.EntityID) bool {
	r := s.Registry
	it, ok := r.Item.Get(item)
	if !ok || it.Slot == "" {
		return false
	}
	eq, ok := r.Equipment.Get(actor)
	if !ok {
		return false
	}
	eq.Equip(it.Slot, item)
	s.Log.Addf(message.Info, "the %s equips the %s", r.Name(actor), r.Name(item))
	return true
}

// release takes item out of actor's inventory and equipment.
func release(s *world.State, actor, item ecs.EntityID) {
	if inv, ok := s.Registry.Inventory.Get(actor); ok {
		inv.Remove(item)
	}
	if eq, ok := s.Registry.Equipment.Get(actor); ok {
		eq.Unequip(item)
	}
}

// spawnFog fills pos and its floor neighbours with fog.
func spawnFog(s *world.State, pos geo.Point) {
	cells := make([]geo.Point, 0, 9)
	for _, n := range pos.Neighbours() {
		if s.Map.IsFloor(n) {
			cells = append(cells, n)
		}
	}
	if s.Map.IsFloor(pos) {
		cells = append(cells, pos)
	}
	for _, p := range cells {
		factory.NewFog(s.Registry, p, s.Now(), s.Settings.FogDuration)
	}
}

func levelUp(s *world.State, actor ecs.EntityID, choice action.Attribute) bool {
	st, ok := s.Registry.Stats.Get(actor)
	if !ok || st.Points <= 0 {
		return false
	}
	switch choice {
	case action.Strength:
		st.Strength++
	case action.Defense:
		st.Defense++
	default:
		return false
	}
	st.Points--
	st.Level++
	st.MaxHealth += 2
	st.Health = min(st.Health+2, st.MaxHealth)
	s.Log.Addf(message.Important, "you reach level %d and feel your %s grow", st.Level, choice)
	return true
}
