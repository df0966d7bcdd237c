package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"sneaky/internal/action"
	"sneaky/internal/component"
	"sneaky/internal/data"
	"sneaky/internal/ecs"
	"sneaky/internal/factory"
	"sneaky/internal/gamemap"
	"sneaky/internal/geo"
	"sneaky/internal/rules"
	"sneaky/internal/schedule"
	"sneaky/internal/spell"
	"sneaky/internal/world"
)

// newGame is a 12x12 open room with the player at (5,5), first to act.
func newGame(t *testing.T) (*Game, *world.State) {
	t.Helper()
	m := gamemap.New(12, 12)
	for y := 1; y < 11; y++ {
		for x := 1; x < 11; x++ {
			m.Set(geo.Pt(x, y), gamemap.MakeFloor())
		}
	}
	s := world.New(m, 11)
	s.Player = factory.NewPlayer(s.Registry, geo.Pt(5, 5), 12, 12, 6)
	s.Scheduler.Schedule(s.Player, 0, s.Registry.Controller)
	s.Spatial.Reset(s.Registry)
	return New(s), s
}

func monster(s *world.State, p geo.Point, hp, str int) ecs.EntityID {
	id := factory.NewCreature(s.Registry, data.CreatureDef{
		ID: "orc", Name: "orc", Glyph: "o", AI: component.AIBasic, MaxHealth: hp, Strength: str,
	}, p, s.Map.Width, s.Map.Height, 6)
	s.Spatial.Reset(s.Registry)
	return id
}

func nextTurn(t *testing.T, s *world.State) (ecs.EntityID, int) {
	t.Helper()
	pending := s.Scheduler.Pending()
	require.NotEmpty(t, pending)
	return pending[0].Entity, pending[0].Time
}

func TestLethalSpellRemovesTargetInSameTick(t *testing.T) {
	g, s := newGame(t)
	orc := monster(s, geo.Pt(6, 5), 10, 1)
	missile := s.Spells.MustGet(spell.MagicMissile)
	missile.Power = 12

	r := g.Tick(action.New(s.Player, action.CastSpell{Spell: missile}).WithTarget(action.AtEntity(orc)))

	assert.Equal(t, Passed, r.Status)
	assert.False(t, s.Registry.Alive(orc))
	assert.False(t, s.Registry.Stats.Has(orc), "swept at turn closure")
	assert.Empty(t, s.Spatial.Get(geo.Pt(6, 5)).Entities)
	st, _ := s.Registry.Stats.Get(s.Player)
	assert.Equal(t, 1, st.Points)

	who, when := nextTurn(t, s)
	assert.Equal(t, s.Player, who)
	assert.Equal(t, 100, when)
}

func TestBumpingDoorOpensIt(t *testing.T) {
	g, s := newGame(t)
	door := factory.NewDoor(s.Registry, geo.Pt(6, 5))
	s.Spatial.Reset(s.Registry)

	r := g.Tick(action.New(s.Player, action.WalkDirection{Dir: geo.Pt(1, 0)}))

	assert.Equal(t, Passed, r.Status)
	d, _ := s.Registry.Door.Get(door)
	assert.True(t, d.Opened)
	cell := s.Spatial.Get(geo.Pt(6, 5))
	assert.False(t, cell.Solid)
	assert.False(t, cell.Opaque)
	pos, _ := s.Registry.PositionOf(s.Player)
	assert.Equal(t, geo.Pt(5, 5), pos, "opening costs the move")
}

func TestRaySpellSuspendsUntilTargeted(t *testing.T) {
	g, s := newGame(t)
	orc := monster(s, geo.Pt(7, 5), 10, 1)
	frost := s.Spells.MustGet(spell.Frost)

	r := g.Tick(action.New(s.Player, action.CastSpell{Spell: frost}))
	require.Equal(t, NeedTarget, r.Status)
	assert.Equal(t, NeedRay, r.Need)
	assert.Nil(t, r.Action.Target)

	again := g.Tick()
	assert.Equal(t, r, again, "stays suspended without input")

	r = g.Tick(r.Action.WithTarget(action.AtPosition(geo.Pt(8, 5))))
	assert.Equal(t, Passed, r.Status)
	st, _ := s.Registry.Stats.Get(orc)
	assert.True(t, st.HasEffect(component.EffectSlow))
}

func TestScrollSuspendsItsUse(t *testing.T) {
	g, s := newGame(t)
	scroll := factory.NewItem(s.Registry, data.ItemDef{
		ID: "stun", Name: "scroll of stun", Glyph: "?", Kind: component.ItemScroll, OnUse: spell.Stun,
	}, geo.NoPosition)
	inv, _ := s.Registry.Inventory.Get(s.Player)
	inv.Items = append(inv.Items, scroll)
	orc := monster(s, geo.Pt(7, 5), 10, 1)

	r := g.Tick(action.New(s.Player, action.UseItem{Item: scroll}))
	require.Equal(t, NeedTarget, r.Status)
	assert.Equal(t, NeedEntity, r.Need)
	assert.Equal(t, action.UseItem{Item: scroll}, r.Action.Command)

	r = g.Tick(r.Action.WithTarget(action.AtEntity(orc)))
	assert.Equal(t, Passed, r.Status)
	st, _ := s.Registry.Stats.Get(orc)
	assert.True(t, st.HasEffect(component.EffectStun))
	assert.False(t, s.Registry.Alive(scroll))
}

func TestAbortKeepsTheTurn(t *testing.T) {
	g, s := newGame(t)

	r := g.Tick(action.New(s.Player, action.Abort{}))

	assert.Equal(t, WaitingForInput, r.Status)
	assert.False(t, s.Scheduler.Idle())
	assert.Equal(t, s.Player, s.Scheduler.Current())
	assert.Equal(t, 0, s.Now())
}

func TestAbortCancelsSuspendedTarget(t *testing.T) {
	g, s := newGame(t)
	r := g.Tick(action.New(s.Player, action.CastSpell{Spell: s.Spells.MustGet(spell.Stun)}))
	require.Equal(t, NeedTarget, r.Status)

	r = g.Tick(action.New(s.Player, action.Abort{}))
	assert.Equal(t, WaitingForInput, r.Status)
}

func TestRejectedMonsterFallsBack(t *testing.T) {
	g, s := newGame(t)
	s.Scheduler = schedule.New()
	orc := monster(s, geo.Pt(1, 1), 5, 1)
	s.Scheduler.Schedule(orc, 0, s.Registry.Controller)
	s.Scheduler.Schedule(s.Player, 0, s.Registry.Controller)
	g.queue = []action.Action{action.New(orc, action.WalkDirection{Dir: geo.Pt(-1, 0)})}

	r := g.Tick()

	assert.Equal(t, Passed, r.Status)
	pending := s.Scheduler.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, s.Player, pending[0].Entity)
	assert.Equal(t, orc, pending[1].Entity)
	assert.Equal(t, s.Settings.FallbackDelay, pending[1].Time)
}

func TestSlowDoublesTurnCost(t *testing.T) {
	g, s := newGame(t)
	st, _ := s.Registry.Stats.Get(s.Player)
	st.SetEffect(component.EffectSlow, 10_000)

	g.Tick(action.New(s.Player, action.Wait{}))

	_, when := nextTurn(t, s)
	assert.Equal(t, 200, when)
}

func TestReactionsRunDepthFirst(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	g, s := newGame(t)
	g = New(s, WithLogger(zap.New(core)))
	potion := factory.NewItem(s.Registry, data.ItemDef{
		ID: "hp", Name: "healing potion", Glyph: "!", Kind: component.ItemPotion, OnUse: spell.Heal,
	}, geo.NoPosition)
	inv, _ := s.Registry.Inventory.Get(s.Player)
	inv.Items = append(inv.Items, potion)
	st, _ := s.Registry.Stats.Get(s.Player)
	st.Health = 10

	r := g.Tick(action.New(s.Player, action.UseItem{Item: potion}))
	require.Equal(t, Passed, r.Status)

	var order []string
	for _, e := range logs.FilterMessage("committed").All() {
		order = append(order, e.ContextMap()["command"].(string))
	}
	assert.Equal(t, []string{"use_item", "cast_spell", "heal", "destroy_item"}, order)
	st, _ = s.Registry.Stats.Get(s.Player)
	assert.Equal(t, 15, st.Health)
	assert.False(t, inv.Contains(potion))

	_, when := nextTurn(t, s)
	assert.Equal(t, rules.UseTime, when)
}

func TestDeadActorsActionsAreDropped(t *testing.T) {
	g, s := newGame(t)
	orc := monster(s, geo.Pt(6, 5), 3, 1)
	g.queue = []action.Action{
		action.New(s.Player, action.TakeDamage{Damage: 5}).WithTarget(action.AtEntity(orc)),
		action.New(orc, action.WalkDirection{Dir: geo.Pt(1, 0)}),
	}

	g.Tick()

	assert.False(t, s.Registry.Alive(orc))
	assert.Empty(t, s.Spatial.Get(geo.Pt(6, 5)).Entities)
	assert.Empty(t, s.Spatial.Get(geo.Pt(7, 5)).Entities)
}

func TestPlayerDeath(t *testing.T) {
	g, s := newGame(t)
	st, _ := s.Registry.Stats.Get(s.Player)
	st.Health = 1
	orc := monster(s, geo.Pt(6, 5), 5, 6)
	s.Scheduler = schedule.New()
	s.Scheduler.Schedule(orc, 0, s.Registry.Controller)
	s.Scheduler.Schedule(s.Player, 10, s.Registry.Controller)

	r := g.Run()

	assert.Equal(t, PlayerDead, r.Status)
	assert.False(t, s.Registry.Alive(s.Player))
	assert.Equal(t, PlayerDead, g.Tick().Status)
}

func TestRunPlaysMonstersUntilInputNeeded(t *testing.T) {
	g, s := newGame(t)
	orc := monster(s, geo.Pt(9, 9), 5, 1)
	s.Scheduler.Schedule(orc, 0, s.Registry.Controller)

	r := g.Run(action.New(s.Player, action.Wait{}))

	assert.Equal(t, WaitingForInput, r.Status)
	assert.Equal(t, s.Player, s.Scheduler.Current())
	assert.Equal(t, 100, s.Now())
	pos, _ := s.Registry.PositionOf(orc)
	assert.Equal(t, geo.Pt(8, 8), pos)
}

func TestExpiredFogIsRemovedAtTurnStart(t *testing.T) {
	g, s := newGame(t)
	fog := factory.NewFog(s.Registry, geo.Pt(3, 3), 0, 100)
	s.Spatial.Reset(s.Registry)

	g.Run(action.New(s.Player, action.Wait{}))

	assert.False(t, s.Registry.Alive(fog))
	assert.False(t, s.Spatial.IsOpaque(geo.Pt(3, 3)))
}

func TestPlayerSeesAtTurnStart(t *testing.T) {
	g, s := newGame(t)

	r := g.Tick()

	assert.Equal(t, WaitingForInput, r.Status)
	mem, _ := s.Registry.MapMemory.Get(s.Player)
	assert.True(t, mem.IsVisible(geo.Pt(7, 5)))
}

func TestOpeningAnOpenDoorIsRejected(t *testing.T) {
	g, s := newGame(t)
	door := factory.NewDoor(s.Registry, geo.Pt(6, 5))
	s.Spatial.Reset(s.Registry)
	require.Equal(t, Passed, g.Tick(action.New(s.Player, action.WalkDirection{Dir: geo.Pt(1, 0)})).Status)
	orc := monster(s, geo.Pt(6, 5), 5, 1)

	r := g.Tick(
		action.New(s.Player, action.OpenDoor{Door: door}),
		action.New(s.Player, action.WalkDirection{Dir: geo.Pt(1, 0)}),
	)

	assert.Equal(t, WaitingForInput, r.Status)
	pos, _ := s.Registry.PositionOf(s.Player)
	assert.Equal(t, geo.Pt(5, 5), pos)
	pos, _ = s.Registry.PositionOf(orc)
	assert.Equal(t, geo.Pt(6, 5), pos)
	cell := s.Spatial.Get(geo.Pt(6, 5))
	assert.True(t, cell.Solid)
	assert.Equal(t, 1, cell.SolidCount)
}

func TestDistantDoorStaysClosed(t *testing.T) {
	g, s := newGame(t)
	door := factory.NewDoor(s.Registry, geo.Pt(10, 10))
	s.Spatial.Reset(s.Registry)

	r := g.Tick(action.New(s.Player, action.OpenDoor{Door: door}))

	assert.Equal(t, WaitingForInput, r.Status)
	d, _ := s.Registry.Door.Get(door)
	assert.False(t, d.Opened)
	assert.True(t, s.Spatial.IsSolid(geo.Pt(10, 10)))
	assert.True(t, s.Spatial.IsOpaque(geo.Pt(10, 10)))
	assert.Equal(t, 0, s.Now())
}

func TestInputForOtherActorsIsDropped(t *testing.T) {
	g, s := newGame(t)
	orc := monster(s, geo.Pt(2, 2), 5, 1)

	r := g.Tick(action.New(orc, action.WalkDirection{Dir: geo.Pt(1, 0)}))

	assert.Equal(t, WaitingForInput, r.Status)
	pos, _ := s.Registry.PositionOf(orc)
	assert.Equal(t, geo.Pt(2, 2), pos)
	assert.Equal(t, s.Player, s.Scheduler.Current())

	r = g.Tick(
		action.New(orc, action.WalkDirection{Dir: geo.Pt(1, 0)}),
		action.New(s.Player, action.Wait{}),
	)
	assert.Equal(t, Passed, r.Status)
	pos, _ = s.Registry.PositionOf(orc)
	assert.Equal(t, geo.Pt(2, 2), pos)
	who, when := nextTurn(t, s)
	assert.Equal(t, s.Player, who)
	assert.Equal(t, 100, when)
}
