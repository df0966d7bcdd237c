package system

import (
	"slices"

	"sneaky/internal/component"
	"sneaky/internal/ecs"
	"sneaky/internal/message"
	"sneaky/internal/world"
)

var effectEnded = map[component.Effect]string{
	component.EffectSlow:    "%s is no longer slowed",
	component.EffectConfuse: "%s is no longer confused",
	component.EffectStun:    "%s is no longer stunned",
}

// ExpireDurations removes timed entities and status effects that have run
// out. It does nothing until Settings.EffectTick time units have passed since
// the previous sweep. It reports whether any entity was destroyed, in which
// case the caller must sweep the registry and rebuild the spatial index.
func ExpireDurations(s *world.State) bool {
	now := s.Now()
	if now-s.ExpiredAt < s.Settings.EffectTick {
		return false
	}
	s.ExpiredAt = now

	destroyed := false
	for id, d := range s.Registry.Duration.All() {
		if d.ExpireTime <= now && s.Registry.Alive(id) {
			s.Registry.Destroy(id)
			destroyed = true
		}
	}

	for id, st := range s.Registry.Stats.All() {
		gone := st.ExpireEffects(now)
		if len(gone) == 0 || !s.Registry.Alive(id) {
			continue
		}
		slices.Sort(gone)
		for _, e := range gone {
			s.Log.Addf(levelFor(s, id), effectEnded[e], "the "+s.Registry.Name(id))
		}
	}
	return destroyed
}

// levelFor highlights messages about the player.
func levelFor(s *world.State, id ecs.EntityID) message.Level {
	if id == s.Player {
		return message.Important
	}
	return message.Info
}
