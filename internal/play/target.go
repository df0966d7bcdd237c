package play

import (
	"slices"

	"github.com/gdamore/tcell/v2"

	"sneaky/internal/action"
	"sneaky/internal/ecs"
	"sneaky/internal/game"
	"sneaky/internal/geo"
	"sneaky/internal/message"
)

// initialCursor starts on the nearest visible enemy, or the player when
// there is none.
func (s *Session) initialCursor() geo.Point {
	if enemies := s.visibleEnemies(); len(enemies) > 0 {
		if pos, ok := s.state.Registry.PositionOf(enemies[0]); ok {
			return pos
		}
	}
	pos, _ := s.state.Registry.PositionOf(s.state.Player)
	return pos
}

// target moves the cursor while an action waits for a target. Enter picks
// the tile under the cursor and escape gives the action up.
func (s *Session) target(ev *tcell.EventKey) {
	intent := keyToIntent(ev)
	if dir, ok := intentToDelta(intent); ok {
		if next := s.cursor.Add(dir); s.state.Map.InBounds(next) {
			s.cursor = next
		}
		return
	}
	switch intent {
	case IntentNextTarget:
		s.cycleTarget()
	case IntentConfirm, IntentWait:
		s.confirm()
	case IntentCancel:
		s.run(action.New(s.state.Player, action.Abort{}))
	}
}

// cycleTarget jumps to the next visible enemy after the one under the cursor.
func (s *Session) cycleTarget() {
	enemies := s.visibleEnemies()
	if len(enemies) == 0 {
		return
	}
	i := slices.IndexFunc(enemies, func(id ecs.EntityID) bool {
		pos, _ := s.state.Registry.PositionOf(id)
		return pos == s.cursor
	})
	next := enemies[(i+1)%len(enemies)]
	s.cursor, _ = s.state.Registry.PositionOf(next)
}

func (s *Session) confirm() {
	t := action.AtPosition(s.cursor)
	if s.last.Need == game.NeedEntity {
		id, ok := s.creatureAt(s.cursor)
		if !ok {
			s.state.Log.Add(message.Info, "there is nothing there to target")
			return
		}
		t = action.AtEntity(id)
	}
	s.run(s.last.Action.WithTarget(t))
}

func (s *Session) creatureAt(p geo.Point) (ecs.EntityID, bool) {
	cell := s.state.Spatial.Get(p)
	if cell == nil {
		return ecs.NilEntity, false
	}
	for _, id := range cell.Entities {
		if s.state.Registry.Stats.Has(id) {
			return id, true
		}
	}
	return ecs.NilEntity, false
}
