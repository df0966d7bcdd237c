package rules

import (
	"sneaky/internal/action"
	"sneaky/internal/component"
	"sneaky/internal/ecs"
	"sneaky/internal/geo"
	"sneaky/internal/spell"
	"sneaky/internal/world"
)

// destination returns where a walking solid actor would end up. Non-solid
// walkers pass through everything, so ok is false for them.
func destination(s *world.State, a *action.Action) (geo.Point, bool) {
	walk, ok := a.Command.(action.WalkDirection)
	if !ok {
		return geo.Point{}, false
	}
	if f, ok := s.Registry.Flags.Get(a.Actor); !ok || !f.Solid {
		return geo.Point{}, false
	}
	pos := ecs.MustGet[component.Position](s.Registry.World, s.Registry.Position, a.Actor)
	return pos.Coord.Add(walk.Dir), true
}

// collision stops walks into walls and solid entities. Bumping a closed door
// opens it and bumping a creature of another faction attacks it.
func collision(s *world.State, a *action.Action, out *Result) Status {
	to, ok := destination(s, a)
	if !ok {
		return Accept
	}
	if !s.Map.IsFloor(to) {
		return Reject
	}
	cell := s.Spatial.Get(to)
	if cell == nil || !cell.Solid {
		return Accept
	}
	r := s.Registry
	mine, hasStats := r.Stats.Get(a.Actor)
	for _, id := range cell.Entities {
		if d, ok := r.Door.Get(id); ok && !d.Opened {
			out.substitute(action.New(a.Actor, action.OpenDoor{Door: id}))
			continue
		}
		if !hasStats {
			continue
		}
		if theirs, ok := r.Stats.Get(id); ok && theirs.Faction != mine.Faction {
			out.substitute(action.New(a.Actor, action.AttackEntity{}).WithTarget(action.AtEntity(id)))
		}
	}
	return Reject
}

// openDoor only lets an actor open a closed door next to it.
func openDoor(s *world.State, a *action.Action, _ *Result) Status {
	cmd, ok := a.Command.(action.OpenDoor)
	if !ok {
		return Accept
	}
	r := s.Registry
	if d, ok := r.Door.Get(cmd.Door); !ok || d.Opened {
		return Reject
	}
	me, ok := r.PositionOf(a.Actor)
	if !ok {
		return Reject
	}
	door, ok := r.PositionOf(cmd.Door)
	if !ok || geo.TileDistance(me, door) > 1 {
		return Reject
	}
	return Accept
}

// trigger fires step triggers at a walker's destination: the trigger's spell
// is cast on the walker and the trigger is consumed.
func trigger(s *world.State, a *action.Action, out *Result) Status {
	if cmd, ok := a.Command.(action.WriteRune); ok {
		return validateRune(s, a, cmd)
	}
	to, ok := destination(s, a)
	if !ok {
		return Accept
	}
	cell := s.Spatial.Get(to)
	if cell == nil {
		return Accept
	}
	r := s.Registry
	for _, id := range cell.Entities {
		tr, ok := r.Trigger.Get(id)
		if !ok || tr.Kind != component.TriggerStep {
			continue
		}
		sp, ok := s.Spells.Get(tr.Spell)
		if !ok {
			continue
		}
		target := action.AtEntity(a.Actor)
		if sp.Target == spell.TargetSpot {
			target = action.AtPosition(to)
		}
		out.react(action.New(ecs.NilEntity, action.CastSpell{Spell: sp}).WithTarget(target))
		out.react(action.New(id, action.KillEntity{}))
	}
	return Accept
}

func validateRune(s *world.State, a *action.Action, cmd action.WriteRune) Status {
	pos, ok := s.Registry.PositionOf(a.Actor)
	if !ok {
		return Reject
	}
	if _, ok := s.Spells.Get(cmd.Spell); !ok {
		return Reject
	}
	if len(component.At(s.Registry, s.Registry.Trigger, pos)) > 0 {
		return Reject
	}
	return Accept
}

// exits checks that stairs and portals are used where they stand. Descending
// on the portal wins instead.
func exits(s *world.State, a *action.Action, out *Result) Status {
	r := s.Registry
	switch a.Command.(type) {
	case action.DescendStairs:
		pos, ok := r.PositionOf(a.Actor)
		if !ok || a.Actor != s.Player {
			return Reject
		}
		if len(component.At(r, r.Portal, pos)) > 0 {
			out.substitute(action.New(a.Actor, action.Win{}))
			return Reject
		}
		if len(component.At(r, r.Stairs, pos)) == 0 {
			return Reject
		}
	case action.Win:
		pos, ok := r.PositionOf(a.Actor)
		if !ok || a.Actor != s.Player || len(component.At(r, r.Portal, pos)) == 0 {
			return Reject
		}
	}
	return Accept
}
