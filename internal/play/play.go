// Package play is the interactive terminal front end: it turns key presses
// into actions, feeds them to the game and draws the result.
package play

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"sneaky/internal/action"
	"sneaky/internal/component"
	"sneaky/internal/ecs"
	"sneaky/internal/game"
	"sneaky/internal/geo"
	"sneaky/internal/message"
	"sneaky/internal/render"
	"sneaky/internal/save"
	"sneaky/internal/spell"
	"sneaky/internal/world"
)

type mode uint8

const (
	modePlaying mode = iota
	modeTargeting
	modeInventory
	modeItem
	modeSpells
	modeRunes
	modeLevelUp
	modeEnd
)

// Options say where a session keeps its files.
type Options struct {
	// SavePath is written on quit and removed once the game ends.
	SavePath string
	// JournalDir receives a line per finished game. Empty disables the journal.
	JournalDir string
	GameID     uuid.UUID
	Seed       uint64
}

// Session is one interactive game on a terminal.
type Session struct {
	screen   tcell.Screen
	renderer *render.Renderer
	game     *game.Game
	state    *world.State
	log      *zap.Logger
	opts     Options

	mode     mode
	last     game.Result
	cursor   geo.Point
	selected ecs.EntityID
	kills    int
}

// New creates a session drawing g on screen.
func New(screen tcell.Screen, g *game.Game, log *zap.Logger, opts Options) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		screen:   screen,
		renderer: render.New(screen),
		game:     g,
		state:    g.State,
		log:      log,
		opts:     opts,
	}
}

// Run plays until the player quits or the game ends. Quitting saves the
// game; a finished game is written to the journal and its save removed.
func (s *Session) Run() error {
	s.advance()
	for {
		s.draw()
		switch ev := s.screen.PollEvent().(type) {
		case nil:
			return s.finish()
		case *tcell.EventResize:
			s.renderer.Resize()
			s.screen.Sync()
		case *tcell.EventKey:
			if !s.HandleKey(ev) {
				return s.finish()
			}
		}
	}
}

// HandleKey processes one key press. It returns false when the session is over.
func (s *Session) HandleKey(ev *tcell.EventKey) bool {
	switch s.mode {
	case modeEnd:
		return false
	case modeTargeting:
		s.target(ev)
	case modeInventory:
		s.inventory(ev)
	case modeItem:
		s.item(ev)
	case modeSpells, modeRunes:
		s.spells(ev)
	case modeLevelUp:
		s.levelUp(ev)
	default:
		return s.playing(ev)
	}
	return true
}

func (s *Session) playing(ev *tcell.EventKey) bool {
	intent := keyToIntent(ev)
	if dir, ok := intentToDelta(intent); ok {
		s.submit(action.WalkDirection{Dir: dir})
		return true
	}
	switch intent {
	case IntentWait:
		s.submit(action.Wait{})
	case IntentPickup:
		s.pickUp()
	case IntentDescend:
		s.submit(action.DescendStairs{})
	case IntentInventory:
		s.mode = modeInventory
	case IntentCast:
		s.openSpellMenu(modeSpells)
	case IntentWriteRune:
		s.openSpellMenu(modeRunes)
	case IntentLevelUp:
		if st, ok := s.state.Registry.Stats.Get(s.state.Player); ok && st.Points > 0 {
			s.mode = modeLevelUp
		} else {
			s.state.Log.Add(message.Info, "you have no points to spend")
		}
	case IntentQuit:
		return false
	}
	return true
}

// submit hands the player's command to the game and plays on until the
// player is needed again.
func (s *Session) submit(cmd action.Command) {
	s.run(action.New(s.state.Player, cmd))
}

func (s *Session) run(a action.Action) {
	s.handle(s.game.Run(a))
}

func (s *Session) advance() {
	s.handle(s.game.Run())
}

func (s *Session) handle(r game.Result) {
	s.last = r
	if st, ok := s.state.Registry.Stats.Get(s.state.Player); ok {
		s.kills = st.Points + st.Level - 1
	}
	switch r.Status {
	case game.NeedTarget:
		s.mode = modeTargeting
		s.cursor = s.initialCursor()
	case game.PlayerDead:
		s.mode = modeEnd
		s.state.Log.Add(message.Important, "you die...")
	case game.Won:
		s.mode = modeEnd
	default:
		s.mode = modePlaying
	}
}

func (s *Session) pickUp() {
	r := s.state.Registry
	pos, ok := r.PositionOf(s.state.Player)
	if !ok {
		return
	}
	items := component.At(r, r.Item, pos)
	if len(items) == 0 {
		s.state.Log.Add(message.Info, "there is nothing here to pick up")
		return
	}
	s.submit(action.PickUpItem{Item: items[0]})
}

// carried lists the player's items in inventory order.
func (s *Session) carried() []ecs.EntityID {
	inv, ok := s.state.Registry.Inventory.Get(s.state.Player)
	if !ok {
		return nil
	}
	return slices.Clone(inv.Items)
}

func (s *Session) inventory(ev *tcell.EventKey) {
	if keyToIntent(ev) == IntentCancel {
		s.mode = modePlaying
		return
	}
	items := s.carried()
	if i, ok := menuIndex(ev, len(items)); ok {
		s.selected = items[i]
		s.mode = modeItem
	}
}

func (s *Session) item(ev *tcell.EventKey) {
	if keyToIntent(ev) == IntentCancel {
		s.mode = modeInventory
		return
	}
	if ev.Key() != tcell.KeyRune {
		return
	}
	id := s.selected
	switch ev.Rune() {
	case 'u':
		s.submit(action.UseItem{Item: id})
	case 'e':
		if eq, ok := s.state.Registry.Equipment.Get(s.state.Player); ok && eq.Worn(id) {
			s.submit(action.UnequipItem{Item: id})
		} else {
			s.submit(action.EquipItem{Item: id})
		}
	case 'd':
		s.submit(action.DropItem{Item: id})
	}
}

func (s *Session) known() []spell.Kind {
	book, ok := s.state.Registry.SpellBook.Get(s.state.Player)
	if !ok {
		return nil
	}
	return book.Spells
}

func (s *Session) openSpellMenu(m mode) {
	if len(s.known()) == 0 {
		s.state.Log.Add(message.Info, "you know no spells")
		return
	}
	s.mode = m
}

func (s *Session) spells(ev *tcell.EventKey) {
	if keyToIntent(ev) == IntentCancel {
		s.mode = modePlaying
		return
	}
	kinds := s.known()
	i, ok := menuIndex(ev, len(kinds))
	if !ok {
		return
	}
	if s.mode == modeRunes {
		s.submit(action.WriteRune{Spell: kinds[i]})
		return
	}
	sp, ok := s.state.Spells.Get(kinds[i])
	if !ok {
		s.state.Log.Addf(message.Info, "you have forgotten how to cast %s", kinds[i])
		s.mode = modePlaying
		return
	}
	s.submit(action.CastSpell{Spell: sp})
}

func (s *Session) levelUp(ev *tcell.EventKey) {
	if keyToIntent(ev) == IntentCancel {
		s.mode = modePlaying
		return
	}
	if ev.Key() != tcell.KeyRune {
		return
	}
	switch ev.Rune() {
	case 's':
		s.submit(action.LevelUp{Choice: action.Strength})
	case 'd':
		s.submit(action.LevelUp{Choice: action.Defense})
	}
}

// finish persists the session: a running game is saved, a finished one
// goes to the journal.
func (s *Session) finish() error {
	if s.mode != modeEnd {
		if s.opts.SavePath == "" {
			return nil
		}
		if err := save.Write(s.opts.SavePath, s.state, s.opts.GameID); err != nil {
			return err
		}
		s.log.Info("game saved", zap.String("path", s.opts.SavePath), zap.Int("time", s.state.Now()))
		return nil
	}
	if s.opts.SavePath != "" {
		if err := os.Remove(s.opts.SavePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove save: %w", err)
		}
	}
	if s.opts.JournalDir == "" {
		return nil
	}
	run := save.Run{
		GameID:  s.opts.GameID,
		Won:     s.state.Won,
		Level:   s.state.Level,
		Time:    s.state.Now(),
		Kills:   s.kills,
		Seed:    s.opts.Seed,
		EndedAt: time.Now().UTC(),
	}
	if err := save.AppendRun(s.opts.JournalDir, run); err != nil {
		return err
	}
	s.log.Info("run recorded", zap.Bool("won", run.Won), zap.Int("level", run.Level), zap.Int("kills", run.Kills))
	return nil
}

func (s *Session) draw() {
	switch s.mode {
	case modeInventory:
		s.renderer.DrawMenu("Inventory (letter to select, esc to close)", s.inventoryLines())
	case modeItem:
		name := s.state.Registry.Name(s.selected)
		s.renderer.DrawMenu(name, []string{"u) use", "e) equip / unequip", "d) drop"})
	case modeSpells:
		s.renderer.DrawMenu("Cast which spell?", s.spellLines())
	case modeRunes:
		s.renderer.DrawMenu("Write a rune of which spell?", s.spellLines())
	case modeLevelUp:
		s.renderer.DrawMenu("Spend a point on", []string{"s) strength", "d) defense"})
	case modeEnd:
		s.renderer.DrawMenu(s.endTitle(), s.endLines())
	case modeTargeting:
		cursor := s.cursor
		s.renderer.Draw(s.state, s.state.Player, &cursor)
	default:
		s.renderer.Draw(s.state, s.state.Player, nil)
	}
}

func (s *Session) inventoryLines() []string {
	items := s.carried()
	if len(items) == 0 {
		return []string{"(empty)"}
	}
	eq, _ := s.state.Registry.Equipment.Get(s.state.Player)
	lines := make([]string, len(items))
	for i, id := range items {
		lines[i] = menuLetter(i) + ") " + s.state.Registry.Name(id)
		if eq != nil && eq.Worn(id) {
			lines[i] += " (worn)"
		}
	}
	return lines
}

func (s *Session) spellLines() []string {
	var lines []string
	for i, k := range s.known() {
		name := string(k)
		if sp, ok := s.state.Spells.Get(k); ok {
			name = fmt.Sprintf("%s (range %d)", sp.Name, sp.Range)
		}
		lines = append(lines, menuLetter(i)+") "+name)
	}
	return lines
}

func (s *Session) endTitle() string {
	if s.state.Won {
		return "You escaped through the portal!"
	}
	return "You died."
}

func (s *Session) endLines() []string {
	return []string{
		fmt.Sprintf("Deepest level: %d", s.state.Level),
		fmt.Sprintf("Time: %d", s.state.Now()),
		fmt.Sprintf("Kills: %d", s.kills),
		"",
		"Press any key to exit.",
	}
}

// visibleEnemies lists creatures the player can see, nearest first.
func (s *Session) visibleEnemies() []ecs.EntityID {
	r := s.state.Registry
	me, ok := r.PositionOf(s.state.Player)
	if !ok {
		return nil
	}
	mem, _ := r.MapMemory.Get(s.state.Player)
	type seen struct {
		id   ecs.EntityID
		dist float64
	}
	var list []seen
	for id, st := range r.Stats.All() {
		if id == s.state.Player || st.Faction == component.FactionPlayer {
			continue
		}
		pos, ok := r.PositionOf(id)
		if !ok || (mem != nil && !mem.IsVisible(pos)) {
			continue
		}
		list = append(list, seen{id, geo.Distance(me, pos)})
	}
	slices.SortFunc(list, func(a, b seen) int {
		return cmp.Or(cmp.Compare(a.dist, b.dist), cmp.Compare(a.id, b.id))
	})
	ids := make([]ecs.EntityID, len(list))
	for i, e := range list {
		ids[i] = e.id
	}
	return ids
}
