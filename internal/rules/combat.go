package rules

import (
	"sneaky/internal/action"
	"sneaky/internal/world"
)

func lightningStrike(_ *world.State, a *action.Action, out *Result) Status {
	if cmd, ok := a.Command.(action.LightningStrike); ok {
		dmg := *a
		dmg.Command = action.TakeDamage{Damage: cmd.Damage}
		dmg.TimeOverride = nil
		out.react(dmg)
	}
	return Accept
}

// attack turns a melee attack into damage using the state's melee formula.
func attack(s *world.State, a *action.Action, out *Result) Status {
	cmd, ok := a.Command.(action.AttackEntity)
	if !ok {
		return Accept
	}
	target, ok := a.TargetEntity()
	if !ok {
		return Reject
	}
	r := s.Registry
	in := world.MeleeInput{BonusStrength: cmd.BonusStrength, BonusDefense: cmd.BonusDefense}
	if st, ok := r.Stats.Get(a.Actor); ok {
		in.Strength = st.Strength
	}
	theirs, ok := r.Stats.Get(target)
	if !ok {
		return Reject
	}
	in.Defense = theirs.Defense
	out.react(action.New(a.Actor, action.TakeDamage{Damage: s.Melee.MeleeDamage(in)}).WithTarget(action.AtEntity(target)))
	return Accept
}

// takeDamage kills the target when the damage is lethal. A player kill earns
// a level-up point.
func takeDamage(s *world.State, a *action.Action, out *Result) Status {
	cmd, ok := a.Command.(action.TakeDamage)
	if !ok {
		return Accept
	}
	target, ok := a.TargetEntity()
	if !ok || !s.Registry.Alive(target) {
		return Reject
	}
	st, ok := s.Registry.Stats.Get(target)
	if !ok {
		return Reject
	}
	if st.Health-cmd.Damage > 0 {
		return Accept
	}
	out.react(action.New(target, action.KillEntity{}))
	if a.Actor == s.Player && target != s.Player {
		out.react(action.New(s.Player, action.GainPoint{}))
	}
	return Accept
}

// statusTarget rejects status effects aimed at something without stats.
func statusTarget(s *world.State, a *action.Action, _ *Result) Status {
	switch a.Command.(type) {
	case action.Confuse, action.Slow, action.Stun:
		target, ok := a.TargetEntity()
		if !ok || !s.Registry.Stats.Has(target) {
			return Reject
		}
	}
	return Accept
}

func levelUp(s *world.State, a *action.Action, _ *Result) Status {
	cmd, ok := a.Command.(action.LevelUp)
	if !ok {
		return Accept
	}
	st, ok := s.Registry.Stats.Get(a.Actor)
	if !ok || st.Points <= 0 {
		return Reject
	}
	if cmd.Choice != action.Strength && cmd.Choice != action.Defense {
		return Reject
	}
	return Accept
}
