package play

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sneaky/internal/component"
	"sneaky/internal/data"
	"sneaky/internal/ecs"
	"sneaky/internal/factory"
	"sneaky/internal/game"
	"sneaky/internal/gamemap"
	"sneaky/internal/geo"
	"sneaky/internal/save"
	"sneaky/internal/spell"
	"sneaky/internal/world"
)

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func special(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

// newSession is a 12x12 open room with the player at (5,5), waiting for input.
func newSession(t *testing.T, opts Options) (*Session, *world.State) {
	t.Helper()
	m := gamemap.New(12, 12)
	for y := 1; y < 11; y++ {
		for x := 1; x < 11; x++ {
			m.Set(geo.Pt(x, y), gamemap.MakeFloor())
		}
	}
	s := world.New(m, 5)
	s.Player = factory.NewPlayer(s.Registry, geo.Pt(5, 5), 12, 12, 8)
	s.Scheduler.Schedule(s.Player, 0, s.Registry.Controller)
	s.Spatial.Reset(s.Registry)

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(60, 24)
	t.Cleanup(screen.Fini)

	sess := New(screen, game.New(s), nil, opts)
	sess.advance()
	require.Equal(t, modePlaying, sess.mode)
	return sess, s
}

func orc(s *world.State, p geo.Point, hp, str int) ecs.EntityID {
	id := factory.NewCreature(s.Registry, data.CreatureDef{
		ID: "orc", Name: "orc", Glyph: "o", AI: component.AIBasic, MaxHealth: hp, Strength: str,
	}, p, s.Map.Width, s.Map.Height, 8)
	s.Spatial.Reset(s.Registry)
	return id
}

func give(s *world.State, def data.ItemDef) ecs.EntityID {
	id := factory.NewItem(s.Registry, def, geo.NoPosition)
	inv, _ := s.Registry.Inventory.Get(s.Player)
	inv.Items = append(inv.Items, id)
	return id
}

func TestWalking(t *testing.T) {
	sess, s := newSession(t, Options{})

	assert.True(t, sess.HandleKey(key('l')))
	assert.True(t, sess.HandleKey(special(tcell.KeyDown)))

	pos, _ := s.Registry.PositionOf(s.Player)
	assert.Equal(t, geo.Pt(6, 6), pos)
	assert.Equal(t, 200, s.Now())
}

func TestCastAtNearestEnemy(t *testing.T) {
	sess, s := newSession(t, Options{})
	target := orc(s, geo.Pt(8, 5), 10, 1)
	orc(s, geo.Pt(1, 1), 10, 1)

	sess.HandleKey(key('z'))
	require.Equal(t, modeSpells, sess.mode)
	sess.HandleKey(key('a'))
	require.Equal(t, modeTargeting, sess.mode)
	assert.Equal(t, game.NeedProjectile, sess.last.Need)
	assert.Equal(t, geo.Pt(8, 5), sess.cursor, "nearest visible enemy")

	sess.HandleKey(special(tcell.KeyEnter))

	assert.Equal(t, modePlaying, sess.mode)
	st, _ := s.Registry.Stats.Get(target)
	assert.Less(t, st.Health, 10)
}

func TestTabCyclesTargets(t *testing.T) {
	sess, s := newSession(t, Options{})
	orc(s, geo.Pt(7, 5), 10, 1)
	orc(s, geo.Pt(5, 8), 10, 1)

	sess.HandleKey(key('z'))
	sess.HandleKey(key('a'))
	require.Equal(t, geo.Pt(7, 5), sess.cursor)

	sess.HandleKey(special(tcell.KeyTab))
	assert.Equal(t, geo.Pt(5, 8), sess.cursor)
	sess.HandleKey(special(tcell.KeyTab))
	assert.Equal(t, geo.Pt(7, 5), sess.cursor)
}

func TestEscapeAbortsTargeting(t *testing.T) {
	sess, s := newSession(t, Options{})

	sess.HandleKey(key('z'))
	sess.HandleKey(key('a'))
	require.Equal(t, modeTargeting, sess.mode)
	sess.HandleKey(key('h'))
	assert.Equal(t, geo.Pt(4, 5), sess.cursor)

	sess.HandleKey(special(tcell.KeyEscape))

	assert.Equal(t, modePlaying, sess.mode)
	assert.Equal(t, 0, s.Now(), "the turn is kept")
}

func TestEntityTargetNeedsACreature(t *testing.T) {
	sess, s := newSession(t, Options{})
	book, _ := s.Registry.SpellBook.Get(s.Player)
	book.Spells = []spell.Kind{spell.Stun}
	o := orc(s, geo.Pt(7, 5), 10, 1)

	sess.HandleKey(key('z'))
	sess.HandleKey(key('a'))
	require.Equal(t, game.NeedEntity, sess.last.Need)
	sess.HandleKey(key('k'))
	sess.HandleKey(special(tcell.KeyEnter))

	assert.Equal(t, modeTargeting, sess.mode)
	assert.Equal(t, "There is nothing there to target", s.Log.Last(1)[0].Text)

	sess.HandleKey(key('j'))
	sess.HandleKey(key('.'))
	assert.Equal(t, modePlaying, sess.mode)
	st, _ := s.Registry.Stats.Get(o)
	assert.True(t, st.HasEffect(component.EffectStun))
}

func TestInventoryUseAndEquip(t *testing.T) {
	sess, s := newSession(t, Options{})
	give(s, data.ItemDef{ID: "hp", Name: "healing potion", Glyph: "!", Kind: component.ItemPotion, OnUse: spell.Heal})
	sword := give(s, data.ItemDef{
		ID: "sword", Name: "sword", Glyph: "/", Kind: component.ItemEquipment,
		Slot: component.SlotRightHand, Bonus: component.StatisticsBonus{Strength: 2},
	})
	st, _ := s.Registry.Stats.Get(s.Player)
	st.Health = 10

	sess.HandleKey(key('i'))
	assert.Equal(t, []string{"a) healing potion", "b) sword"}, sess.inventoryLines())
	sess.HandleKey(key('a'))
	require.Equal(t, modeItem, sess.mode)
	sess.HandleKey(key('u'))
	assert.Equal(t, 15, st.Health)

	sess.HandleKey(key('i'))
	sess.HandleKey(key('a'))
	sess.HandleKey(key('e'))
	eq, _ := s.Registry.Equipment.Get(s.Player)
	assert.True(t, eq.Worn(sword))
	assert.Equal(t, []string{"a) sword (worn)"}, sess.inventoryLines())

	sess.HandleKey(key('i'))
	sess.HandleKey(key('a'))
	sess.HandleKey(key('e'))
	assert.False(t, eq.Worn(sword))
}

func TestInventoryEscape(t *testing.T) {
	sess, _ := newSession(t, Options{})
	sess.HandleKey(key('i'))
	sess.HandleKey(key('x'))
	assert.Equal(t, modeInventory, sess.mode, "no such item")
	sess.HandleKey(special(tcell.KeyEscape))
	assert.Equal(t, modePlaying, sess.mode)
}

func TestPickUp(t *testing.T) {
	sess, s := newSession(t, Options{})

	sess.HandleKey(key(','))
	assert.Equal(t, "There is nothing here to pick up", s.Log.Last(1)[0].Text)

	item := factory.NewItem(s.Registry, data.ItemDef{ID: "hp", Name: "potion", Glyph: "!", Kind: component.ItemPotion, OnUse: spell.Heal}, geo.Pt(5, 5))
	s.Spatial.Reset(s.Registry)
	sess.HandleKey(key(','))

	inv, _ := s.Registry.Inventory.Get(s.Player)
	assert.True(t, inv.Contains(item))
	assert.False(t, s.Registry.Position.Has(item))
}

func TestWriteRune(t *testing.T) {
	sess, s := newSession(t, Options{})

	sess.HandleKey(key('r'))
	require.Equal(t, modeRunes, sess.mode)
	sess.HandleKey(key('a'))

	runes := component.At(s.Registry, s.Registry.Trigger, geo.Pt(5, 5))
	assert.Len(t, runes, 1)
}

func TestLevelUpNeedsPoints(t *testing.T) {
	sess, s := newSession(t, Options{})

	sess.HandleKey(key('p'))
	assert.Equal(t, modePlaying, sess.mode)

	st, _ := s.Registry.Stats.Get(s.Player)
	st.Points = 1
	sess.HandleKey(key('p'))
	require.Equal(t, modeLevelUp, sess.mode)
	sess.HandleKey(key('d'))
	assert.Equal(t, 2, st.Defense)
	assert.Equal(t, 0, st.Points)
	assert.Equal(t, 1, sess.kills)
}

func TestQuitSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	id := uuid.New()
	sess, s := newSession(t, Options{SavePath: path, GameID: id})
	sess.HandleKey(key('.'))

	assert.False(t, sess.HandleKey(key('q')))
	require.NoError(t, sess.finish())

	f, err := save.Read(path)
	require.NoError(t, err)
	assert.Equal(t, id, f.GameID)
	assert.Equal(t, s.Player, f.Player)
}

func TestDeathEndsTheRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "save.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))
	sess, s := newSession(t, Options{SavePath: path, JournalDir: dir, Seed: 5})
	st, _ := s.Registry.Stats.Get(s.Player)
	st.Health = 1
	o := orc(s, geo.Pt(6, 5), 5, 6)
	s.Scheduler.Schedule(o, 0, s.Registry.Controller)

	sess.HandleKey(key('.'))

	require.Equal(t, modeEnd, sess.mode)
	assert.Equal(t, "You died.", sess.endTitle())
	assert.False(t, sess.HandleKey(key('x')))
	require.NoError(t, sess.finish())

	_, err := os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
	journal, err := os.ReadFile(filepath.Join(dir, "runs.jsonl"))
	require.NoError(t, err)
	assert.Contains(t, string(journal), `"won":false`)
	assert.Contains(t, string(journal), `"seed":5`)
}

func TestKeyToIntent(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want Intent
	}{
		{key('k'), IntentMoveN},
		{key('y'), IntentMoveNW},
		{special(tcell.KeyLeft), IntentMoveW},
		{key('.'), IntentWait},
		{key(','), IntentPickup},
		{key('>'), IntentDescend},
		{key('z'), IntentCast},
		{special(tcell.KeyEnter), IntentConfirm},
		{special(tcell.KeyEscape), IntentCancel},
		{key('Q'), IntentQuit},
		{key('?'), IntentNone},
		{special(tcell.KeyF1), IntentNone},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, keyToIntent(tc.ev), tc.ev.Name())
	}
}
