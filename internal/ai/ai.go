// Package ai decides what computer-controlled creatures do on their turn.
package ai

import (
	"sneaky/internal/action"
	"sneaky/internal/component"
	"sneaky/internal/ecs"
	"sneaky/internal/geo"
	"sneaky/internal/path"
	"sneaky/internal/world"
)

// Plan returns the actions id takes this turn. Anything it cannot decide
// becomes a Wait.
func Plan(s *world.State, id ecs.EntityID) []action.Action {
	ctrl, ok := s.Registry.Controller.Get(id)
	if !ok {
		return waitAndForget(s, id)
	}
	var acts []action.Action
	switch ctrl.AI {
	case component.AIBasic:
		acts = basic(s, id)
	case component.AISpellCaster:
		if acts = castAtPlayer(s, id); acts == nil {
			acts = basic(s, id)
		}
	}
	if acts == nil {
		return waitAndForget(s, id)
	}
	return acts
}

// basic attacks the player when adjacent and otherwise walks towards where
// it last knew the player to be.
func basic(s *world.State, id ecs.EntityID) []action.Action {
	if acts := meleePlayer(s, id); acts != nil {
		return acts
	}
	goal, ok := playerPosition(s, id)
	if !ok {
		return nil
	}
	return walkTo(s, id, goal)
}

func meleePlayer(s *world.State, id ecs.EntityID) []action.Action {
	me, ok := s.Registry.PositionOf(id)
	if !ok {
		return nil
	}
	them, ok := s.Registry.PositionOf(s.Player)
	if !ok || geo.TileDistance(me, them) != 1 {
		return nil
	}
	return []action.Action{action.New(id, action.AttackEntity{}).WithTarget(action.AtEntity(s.Player))}
}

// playerPosition is where id believes the player stands. Creatures with a
// map memory only know what they see, falling back to their path goal.
func playerPosition(s *world.State, id ecs.EntityID) (geo.Point, bool) {
	pos, ok := s.Registry.PositionOf(s.Player)
	if !ok {
		if mem, ok := s.Registry.AIMemory.Get(id); ok {
			mem.Forget()
		}
		return geo.NoPosition, false
	}
	sight, ok := s.Registry.MapMemory.Get(id)
	if !ok || sight.IsVisible(pos) {
		return pos, true
	}
	if mem, ok := s.Registry.AIMemory.Get(id); ok && mem.PathGoal != nil {
		return *mem.PathGoal, true
	}
	return geo.NoPosition, false
}

// walkTo steps along the cached route to goal, recomputing it when the goal
// moved or the next step is blocked.
func walkTo(s *world.State, id ecs.EntityID, goal geo.Point) []action.Action {
	start, ok := s.Registry.PositionOf(id)
	if !ok || start == goal {
		return nil
	}
	mem, ok := s.Registry.AIMemory.Get(id)
	if !ok {
		return nil
	}
	next, ok := geo.NoPosition, false
	if mem.PathGoal != nil && *mem.PathGoal == goal {
		next, ok = mem.NextStep()
	}
	if !ok || geo.TileDistance(start, next) != 1 || !s.CanWalk(next) {
		route := path.Find(start, goal, s.Spatial, s.Map)
		if route == nil {
			mem.Forget()
			return nil
		}
		mem.RememberPathTo(goal, route)
		next, _ = mem.NextStep()
	}
	prev := start
	mem.PreviousPosition = &prev
	return []action.Action{action.New(id, action.WalkDirection{Dir: next.Sub(start)})}
}

// castAtPlayer casts a random known spell at the player when the player is
// visible and within the spell's range.
func castAtPlayer(s *world.State, id ecs.EntityID) []action.Action {
	me, ok := s.Registry.PositionOf(id)
	if !ok {
		return nil
	}
	them, ok := s.Registry.PositionOf(s.Player)
	if !ok {
		return nil
	}
	sight, ok := s.Registry.MapMemory.Get(id)
	if !ok || !sight.IsVisible(them) {
		return nil
	}
	book, ok := s.Registry.SpellBook.Get(id)
	if !ok || len(book.Spells) == 0 {
		return nil
	}
	sp, ok := s.Spells.Get(book.Spells[s.Rand().IntN(len(book.Spells))])
	if !ok || geo.Distance(me, them) >= float64(sp.Range) {
		return nil
	}
	return []action.Action{action.New(id, action.CastSpell{Spell: sp}).WithTarget(action.AtEntity(s.Player))}
}

func waitAndForget(s *world.State, id ecs.EntityID) []action.Action {
	if mem, ok := s.Registry.AIMemory.Get(id); ok {
		mem.Forget()
	}
	return []action.Action{action.New(id, action.Wait{})}
}
