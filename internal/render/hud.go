package render

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"sneaky/internal/ecs"
	"sneaky/internal/geo"
	"sneaky/internal/world"
)

// drawHUD renders the status bar and the newest messages at the bottom of
// the screen. While targeting, the first line describes the tile under the
// cursor instead.
func (r *Renderer) drawHUD(s *world.State, viewer ecs.EntityID, cursor *geo.Point) {
	_, screenH := r.screen.Size()
	hudY := screenH - HUDRows
	if hudY < 0 {
		return
	}
	r.drawHLine(hudY, tcell.ColorGray)

	status := StatusLine(s, viewer)
	if cursor != nil {
		status = r.describe(s, viewer, *cursor)
	}
	r.drawText(0, hudY+1, status, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	for i, m := range s.Log.Last(HUDRows - 2) {
		r.drawText(0, hudY+2+i, m.Text, tcell.StyleDefault.Foreground(messageColor(m.Level)))
	}
}

// StatusLine summarises the viewer's stats, the dungeon level and the clock.
func StatusLine(s *world.State, viewer ecs.EntityID) string {
	st, ok := s.Registry.Stats.Get(viewer)
	if !ok {
		return fmt.Sprintf("Dead  Level: %d  Time: %d", s.Level, s.Now())
	}
	line := fmt.Sprintf("HP: %d/%d  STR:%d%s DEF:%d%s  Level: %d  Time: %d",
		st.Health, st.MaxHealth,
		st.Strength, bonus(s.Registry.StrengthBonus(viewer)),
		st.Defense, bonus(s.Registry.DefenseBonus(viewer)),
		s.Level, s.Now())
	if st.Points > 0 {
		line += fmt.Sprintf("  Points: %d", st.Points)
	}
	if len(st.Effects) > 0 {
		var names []string
		for e := range st.Effects {
			names = append(names, string(e))
		}
		slices.Sort(names)
		line += "  [" + strings.Join(names, " ") + "]"
	}
	return line
}

func bonus(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("(%+d)", n)
}

func (r *Renderer) describe(s *world.State, viewer ecs.EntityID, p geo.Point) string {
	if mem, ok := s.Registry.MapMemory.Get(viewer); ok && !mem.IsVisible(p) {
		return fmt.Sprintf("Target (%d,%d): you can't see there", p.X, p.Y)
	}
	var names []string
	if cell := s.Spatial.Get(p); cell != nil {
		for _, id := range cell.Entities {
			names = append(names, s.Registry.Name(id))
		}
	}
	if len(names) == 0 {
		return fmt.Sprintf("Target (%d,%d)", p.X, p.Y)
	}
	return fmt.Sprintf("Target (%d,%d): %s", p.X, p.Y, strings.Join(names, ", "))
}

// DrawMenu clears the screen and shows a titled list, used for the
// inventory and the end screen.
func (r *Renderer) DrawMenu(title string, lines []string) {
	r.screen.Clear()
	r.drawText(1, 1, title, tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))
	for i, l := range lines {
		r.drawText(2, 3+i, l, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	}
	r.screen.Show()
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := range w {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	w, _ := r.screen.Size()
	col := x
	for _, ch := range text {
		if col >= w {
			return
		}
		r.screen.SetContent(col, y, ch, nil, style)
		col += max(1, runewidth.RuneWidth(ch))
	}
}
