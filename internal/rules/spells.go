package rules

import (
	"sneaky/internal/action"
	"sneaky/internal/ecs"
	"sneaky/internal/geo"
	"sneaky/internal/spell"
	"sneaky/internal/world"
)

// validateSpell checks that caster and target exist and that the target is
// within range and in sight. Casts without a caster, such as a rune going
// off, skip the range checks.
func validateSpell(s *world.State, a *action.Action, _ *Result) Status {
	cmd, ok := a.Command.(action.CastSpell)
	if !ok {
		return Accept
	}
	var from geo.Point
	if a.Actor != ecs.NilEntity {
		if from, ok = s.Registry.PositionOf(a.Actor); !ok {
			return Reject
		}
	}
	if a.Target == nil {
		return Accept
	}
	if id, ok := a.TargetEntity(); ok && !s.Registry.Alive(id) {
		return Reject
	}
	to, ok := s.TargetPoint(a.Target)
	if !ok {
		return Reject
	}
	if a.Actor == ecs.NilEntity {
		return Accept
	}
	if geo.Distance(from, to) > float64(cmd.Spell.Range) {
		return Reject
	}
	if !s.LineOfSight(from, to) {
		return Reject
	}
	return Accept
}

// castSpell expands a cast into the effects it has on each thing it hits.
func castSpell(s *world.State, a *action.Action, out *Result) Status {
	cmd, ok := a.Command.(action.CastSpell)
	if !ok {
		return Accept
	}
	sp := cmd.Spell
	var hits []ecs.EntityID
	switch sp.Target {
	case spell.TargetEntity:
		id, ok := entityAt(s, a.Target)
		if !ok {
			return Reject
		}
		hits = append(hits, id)
	case spell.TargetClosest:
		id, ok := closest(s, a.Actor, sp.Range)
		if !ok {
			return Reject
		}
		hits = append(hits, id)
	case spell.TargetSpot:
		p, ok := s.TargetPoint(a.Target)
		if !ok {
			return Reject
		}
		if sp.Kind == spell.Fog {
			out.react(action.New(a.Actor, action.SpawnFog{Pos: p}))
			return Accept
		}
		hits = statted(s, p, a.Actor)
	case spell.TargetRay, spell.TargetProjectile:
		if a.Target == nil {
			return Reject
		}
		hits = alongPath(s, a, sp)
	default:
		return Reject
	}
	for _, id := range hits {
		out.react(effect(s, sp, a.Actor, id))
	}
	return Accept
}

// effect is the action a spell of sp's kind has on target.
func effect(s *world.State, sp spell.Spell, caster, target ecs.EntityID) action.Action {
	var cmd action.Command
	switch sp.Kind {
	case spell.MagicMissile:
		cmd = action.TakeDamage{Damage: sp.Power}
	case spell.LightningStrike:
		cmd = action.LightningStrike{Damage: sp.Power}
	case spell.Confusion:
		cmd = action.Confuse{}
	case spell.Heal:
		cmd = action.Heal{Amount: sp.Power}
	case spell.Frost:
		cmd = action.Slow{}
	case spell.Stun:
		cmd = action.Stun{}
	case spell.Fog:
		pos, _ := s.Registry.PositionOf(target)
		return action.New(caster, action.SpawnFog{Pos: pos})
	}
	return action.New(caster, cmd).WithTarget(action.AtEntity(target))
}

// entityAt resolves t to a creature: the targeted entity itself, or the first
// creature standing on a targeted position.
func entityAt(s *world.State, t *action.Target) (ecs.EntityID, bool) {
	if t == nil {
		return ecs.NilEntity, false
	}
	if t.Kind == action.TargetEntity {
		return t.Entity, s.Registry.Alive(t.Entity)
	}
	if hits := statted(s, t.Pos, ecs.NilEntity); len(hits) > 0 {
		return hits[0], true
	}
	return ecs.NilEntity, false
}

// statted lists the live creatures at p other than skip.
func statted(s *world.State, p geo.Point, skip ecs.EntityID) []ecs.EntityID {
	cell := s.Spatial.Get(p)
	if cell == nil {
		return nil
	}
	var out []ecs.EntityID
	for _, id := range cell.Entities {
		if id != skip && s.Registry.Alive(id) && s.Registry.Stats.Has(id) {
			out = append(out, id)
		}
	}
	return out
}

// closest finds the nearest creature the caster can see within radius.
func closest(s *world.State, caster ecs.EntityID, radius int) (ecs.EntityID, bool) {
	from, ok := s.Registry.PositionOf(caster)
	if !ok {
		return ecs.NilEntity, false
	}
	for _, h := range s.Spatial.ByProximity(from, radius) {
		if h.Entity == caster || !s.Registry.Stats.Has(h.Entity) || !s.Registry.Alive(h.Entity) {
			continue
		}
		if s.LineOfSight(from, h.Pos) {
			return h.Entity, true
		}
	}
	return ecs.NilEntity, false
}

// alongPath walks a ray or projectile from the caster towards the target.
// A ray hits every creature until a wall; a projectile stops at the first
// creature or solid cell. Without a caster position the spell lands on the
// target directly.
func alongPath(s *world.State, a *action.Action, sp spell.Spell) []ecs.EntityID {
	from, ok := s.Registry.PositionOf(a.Actor)
	to, tok := s.TargetPoint(a.Target)
	if !ok || !tok {
		if id, ok := entityAt(s, a.Target); ok {
			return []ecs.EntityID{id}
		}
		return nil
	}
	var hits []ecs.EntityID
	for _, p := range geo.Ray(from, to, sp.Range) {
		if !s.Map.IsFloor(p) {
			break
		}
		here := statted(s, p, a.Actor)
		if sp.Target == spell.TargetProjectile {
			if len(here) > 0 {
				return here[:1]
			}
			if s.Spatial.IsSolid(p) {
				return nil
			}
			continue
		}
		hits = append(hits, here...)
	}
	return hits
}
