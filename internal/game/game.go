// Package game runs the simulation: it hands turns to actors, resolves what
// they ask for through the rule chain, and commits the result.
package game

import (
	"go.uber.org/zap"

	"sneaky/internal/action"
	"sneaky/internal/ai"
	"sneaky/internal/component"
	"sneaky/internal/ecs"
	"sneaky/internal/rules"
	"sneaky/internal/spell"
	"sneaky/internal/system"
	"sneaky/internal/world"
)

// Status is the outcome of a Tick.
type Status uint8

const (
	Passed Status = iota
	WaitingForInput
	NeedTarget
	PlayerDead
	Won
)

func (s Status) String() string {
	switch s {
	case Passed:
		return "passed"
	case WaitingForInput:
		return "waiting_for_input"
	case NeedTarget:
		return "need_target"
	case PlayerDead:
		return "player_dead"
	case Won:
		return "won"
	}
	return "unknown"
}

// Need says what kind of target a suspended action is missing.
type Need uint8

const (
	NeedNone Need = iota
	NeedEntity
	NeedSpot
	NeedRay
	NeedProjectile
)

func (n Need) String() string {
	switch n {
	case NeedEntity:
		return "entity"
	case NeedSpot:
		return "spot"
	case NeedRay:
		return "ray"
	case NeedProjectile:
		return "projectile"
	}
	return "none"
}

// Result is returned by Tick. Need and Action are set for NeedTarget: the
// caller resubmits Action with a target filled in.
type Result struct {
	Status Status
	Need   Need
	Action action.Action
}

// Game owns the action queue of the turn in progress.
type Game struct {
	State *world.State

	log       *zap.Logger
	input     []action.Action
	queue     []action.Action
	suspended *Result
	started   bool
	accepted  bool
	committed int
	elapsed   int
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger used for turn tracing.
func WithLogger(log *zap.Logger) Option {
	return func(g *Game) {
		if log != nil {
			g.log = log
		}
	}
}

// New wraps s. Nothing is logged unless WithLogger is given.
func New(s *world.State, opts ...Option) *Game {
	g := &Game{State: s, log: zap.NewNop()}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Submit queues player actions for the next player turn.
func (g *Game) Submit(acts ...action.Action) {
	g.input = append(g.input, acts...)
}

// Run ticks until the game needs something from the caller.
func (g *Game) Run(input ...action.Action) Result {
	g.Submit(input...)
	for {
		if r := g.Tick(); r.Status != Passed {
			return r
		}
	}
}

// Tick plays at most one turn.
func (g *Game) Tick(input ...action.Action) Result {
	g.Submit(input...)
	s := g.State
	if s.Won {
		return Result{Status: Won}
	}
	if !s.Registry.Alive(s.Player) {
		return Result{Status: PlayerDead}
	}

	s.Scheduler.Advance(s.Registry.Controller)
	if s.Scheduler.Idle() {
		// nobody left to act: the player has no controller
		return Result{Status: PlayerDead}
	}
	actor := s.Scheduler.Current()

	if !g.started {
		g.startTurn(actor)
	}

	if g.suspended != nil {
		if len(g.input) == 0 {
			return *g.suspended
		}
		g.suspended = nil
	}

	if len(g.queue) == 0 {
		g.queue = g.acquire(actor)
	} else if actor == s.Player && len(g.input) > 0 {
		g.queue = append(g.takeInput(actor), g.queue...)
	}
	if len(g.queue) == 0 && actor == s.Player {
		return Result{Status: WaitingForInput}
	}

	if r, ok := g.resolve(); !ok {
		return r
	}
	return g.close(actor)
}

func (g *Game) startTurn(actor ecs.EntityID) {
	s := g.State
	if system.ExpireDurations(s) {
		s.Registry.Sweep()
		s.Spatial.Reset(s.Registry)
	}
	system.UpdateFOV(s, actor)
	g.started = true
}

// acquire produces the actions actor takes this turn. Status effects
// pre-empt everything else, swallowing any pending player input.
func (g *Game) acquire(actor ecs.EntityID) []action.Action {
	s := g.State
	if acts := system.InvoluntaryActions(s, actor); acts != nil {
		if actor == s.Player {
			g.input = nil
		}
		return acts
	}
	if actor == s.Player {
		return g.takeInput(actor)
	}
	return ai.Plan(s, actor)
}

// takeInput empties the input buffer, keeping only actions by actor.
func (g *Game) takeInput(actor ecs.EntityID) []action.Action {
	var acts []action.Action
	for _, a := range g.input {
		if a.Actor != actor {
			g.log.Debug("dropped input for another actor", g.fields(a)...)
			continue
		}
		acts = append(acts, a)
	}
	g.input = nil
	return acts
}

// resolve drains the queue. It returns false with the result to hand back
// when an action is suspended for a target.
func (g *Game) resolve() (Result, bool) {
	s := g.State
	for len(g.queue) > 0 {
		a := g.queue[0]
		g.queue = g.queue[1:]

		if a.Actor != ecs.NilEntity && !s.Registry.Alive(a.Actor) {
			continue
		}
		if need := g.complete(&a); need != NeedNone {
			if a.Actor != s.Player {
				g.log.Debug("dropped untargeted action", g.fields(a)...)
				continue
			}
			g.log.Debug("suspended", append(g.fields(a), zap.Stringer("need", need))...)
			r := Result{Status: NeedTarget, Need: need, Action: a}
			g.suspended = &r
			return r, false
		}

		status, out := rules.Apply(s, &a)
		if status == rules.Reject {
			g.log.Debug("rejected", append(g.fields(a), zap.Int("substitutes", len(out.Substitutes)))...)
			g.queue = out.Substitutes
			continue
		}
		g.accepted = true
		level := s.Level
		s.Spatial.Update(a, s.Registry)
		if !system.Perform(s, a) {
			g.log.Debug("not performed", g.fields(a)...)
			continue
		}
		g.committed++
		g.elapsed += a.Time()
		g.log.Debug("committed", g.fields(a)...)
		g.announce(a, level)
		for _, r := range out.Reactions {
			g.queue = append([]action.Action{r}, g.queue...)
		}
	}
	return Result{}, true
}

// complete fills in targets the actor does not pick and reports what is
// still missing.
func (g *Game) complete(a *action.Action) Need {
	if a.Target != nil {
		return NeedNone
	}
	s := g.State
	sp, ok := spellOf(s, *a)
	if !ok {
		return NeedNone
	}
	if sp.Targeting == spell.Caster {
		a.Target = action.AtEntity(a.Actor)
		if sp.Target == spell.TargetSpot {
			if pos, ok := s.Registry.PositionOf(a.Actor); ok {
				a.Target = action.AtPosition(pos)
			}
		}
		return NeedNone
	}
	switch sp.Target {
	case spell.TargetEntity:
		return NeedEntity
	case spell.TargetSpot:
		return NeedSpot
	case spell.TargetRay:
		return NeedRay
	case spell.TargetProjectile:
		return NeedProjectile
	}
	return NeedNone
}

// spellOf is the spell a cast, or the use of a scroll, will aim.
func spellOf(s *world.State, a action.Action) (spell.Spell, bool) {
	switch cmd := a.Command.(type) {
	case action.CastSpell:
		return cmd.Spell, true
	case action.UseItem:
		it, ok := s.Registry.Item.Get(cmd.Item)
		if !ok || it.Kind != component.ItemScroll {
			return spell.Spell{}, false
		}
		return s.Spells.Get(it.OnUse)
	}
	return spell.Spell{}, false
}

func (g *Game) close(actor ecs.EntityID) Result {
	s := g.State
	if g.committed == 0 && actor == s.Player {
		if g.accepted {
			s.Spatial.Reset(s.Registry)
		}
		g.resetTurn()
		return Result{Status: WaitingForInput}
	}
	if g.committed > 0 {
		s.Registry.Sweep()
		delay := g.elapsed
		if st, ok := s.Registry.Stats.Get(actor); ok && st.HasEffect(component.EffectSlow) {
			delay *= s.Settings.SlowMultiplier
		}
		s.Scheduler.Schedule(actor, delay, s.Registry.Controller)
	} else {
		s.Scheduler.Schedule(actor, s.Settings.FallbackDelay, s.Registry.Controller)
	}
	s.Spatial.Reset(s.Registry)
	g.resetTurn()
	g.started = false

	switch {
	case s.Won:
		return Result{Status: Won}
	case !s.Registry.Alive(s.Player):
		return Result{Status: PlayerDead}
	}
	return Result{Status: Passed}
}

func (g *Game) resetTurn() {
	g.queue = nil
	g.accepted = false
	g.committed = 0
	g.elapsed = 0
}

func (g *Game) announce(a action.Action, level int) {
	s := g.State
	switch a.Command.(type) {
	case action.KillEntity:
		g.log.Info("entity died", zap.Uint64("entity", uint64(a.Actor)), zap.Bool("player", a.Actor == s.Player))
	case action.Win:
		g.log.Info("game won", zap.Int("time", s.Now()))
	}
	if s.Level != level {
		g.log.Info("entered level", zap.Int("level", s.Level), zap.Int("time", s.Now()))
	}
}

func (g *Game) fields(a action.Action) []zap.Field {
	return []zap.Field{
		zap.Uint64("actor", uint64(a.Actor)),
		zap.String("command", a.Command.Name()),
		zap.Stringer("target", a.Target),
		zap.Int("time", g.State.Now()),
	}
}
