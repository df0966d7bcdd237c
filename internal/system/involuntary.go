package system

import (
	"sneaky/internal/action"
	"sneaky/internal/component"
	"sneaky/internal/ecs"
	"sneaky/internal/world"
)

// InvoluntaryActions returns the actions a status effect forces on id this
// turn, or nil when id may act freely. A stunned creature waits; a confused
// one stumbles onto a random walkable neighbour, or waits if boxed in.
func InvoluntaryActions(s *world.State, id ecs.EntityID) []action.Action {
	st, ok := s.Registry.Stats.Get(id)
	if !ok {
		return nil
	}
	switch {
	case st.HasEffect(component.EffectStun):
		return []action.Action{action.New(id, action.Wait{})}
	case st.HasEffect(component.EffectConfuse):
		pos, ok := s.Registry.PositionOf(id)
		if !ok {
			return nil
		}
		var options []action.Action
		for _, n := range pos.Neighbours() {
			if s.CanWalk(n) {
				options = append(options, action.New(id, action.WalkDirection{Dir: n.Sub(pos)}))
			}
		}
		if len(options) == 0 {
			return []action.Action{action.New(id, action.Wait{})}
		}
		return []action.Action{options[s.Rand().IntN(len(options))]}
	}
	return nil
}
