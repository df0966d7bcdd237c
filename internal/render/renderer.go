// Package render draws a world.State onto a tcell screen.
package render

import (
	"cmp"
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"sneaky/internal/component"
	"sneaky/internal/ecs"
	"sneaky/internal/geo"
	"sneaky/internal/world"
)

// HUDRows is the height reserved at the bottom of the screen for the
// status line and message log.
const HUDRows = 6

// Renderer draws the game world onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
}

// New creates a Renderer for screen.
func New(screen tcell.Screen) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		camera: NewCamera(geo.Pt(0, 0), w, max(0, h-HUDRows)),
	}
}

// Camera exposes the viewport, for mapping mouse clicks to tiles.
func (r *Renderer) Camera() *Camera { return r.camera }

// Resize picks up a new terminal size.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera.Resize(w, max(0, h-HUDRows))
}

// Draw renders the map as viewer remembers it, the entities viewer can see,
// the HUD and, when cursor is not nil, a target cursor. The camera follows
// the cursor while targeting and the viewer otherwise.
func (r *Renderer) Draw(s *world.State, viewer ecs.EntityID, cursor *geo.Point) {
	r.screen.Clear()
	if cursor != nil {
		r.camera.Center(*cursor)
	} else if pos, ok := s.Registry.PositionOf(viewer); ok {
		r.camera.Center(pos)
	}
	mem, _ := s.Registry.MapMemory.Get(viewer)
	r.drawMap(s, mem)
	r.drawEntities(s, viewer, mem)
	if cursor != nil {
		r.drawCursor(*cursor)
	}
	r.drawHUD(s, viewer, cursor)
	r.screen.Show()
}

// seen reports whether p is lit and whether it was ever seen. Without a map
// memory the whole map counts as lit.
func seen(mem *component.MapMemory, p geo.Point) (visible, explored bool) {
	if mem == nil {
		return true, true
	}
	return mem.IsVisible(p), mem.IsExplored(p)
}

// drawMap renders all visible and explored tiles in the level's theme.
func (r *Renderer) drawMap(s *world.State, mem *component.MapMemory) {
	theme := ThemeFor(s.Level)
	for y := range s.Map.Height {
		for x := range s.Map.Width {
			p := geo.Pt(x, y)
			visible, explored := seen(mem, p)
			if !visible && !explored {
				continue
			}
			sx, sy, onScreen := r.camera.WorldToScreen(p)
			if !onScreen {
				continue
			}
			glyph, color := theme.Floor, theme.FloorColor
			if !s.Map.IsFloor(p) {
				glyph, color = theme.Wall, theme.WallColor
			}
			if !visible {
				color = dimColor
			}
			r.screen.SetContent(sx, sy, glyph, nil, tcell.StyleDefault.Foreground(color).Background(tcell.ColorBlack))
		}
	}
}

type drawable struct {
	id    ecs.EntityID
	layer int
	pos   geo.Point
	vis   component.Visual
}

// layer orders drawing: floor furniture, then items, then creatures, then
// the viewer on top.
func layer(s *world.State, id, viewer ecs.EntityID) int {
	switch {
	case id == viewer:
		return 3
	case s.Registry.Stats.Has(id):
		return 2
	case s.Registry.Item.Has(id):
		return 1
	}
	return 0
}

// drawEntities renders entities on visible tiles, plus remembered ones that
// are always displayed on explored tiles.
func (r *Renderer) drawEntities(s *world.State, viewer ecs.EntityID, mem *component.MapMemory) {
	var list []drawable
	for id, pos := range s.Registry.Position.All() {
		vis, ok := s.Registry.Visual.Get(id)
		if !ok || !s.Registry.Alive(id) {
			continue
		}
		visible, explored := seen(mem, pos.Coord)
		if !visible && !(explored && vis.AlwaysDisplay) {
			continue
		}
		list = append(list, drawable{id: id, layer: layer(s, id, viewer), pos: pos.Coord, vis: *vis})
	}
	slices.SortFunc(list, func(a, b drawable) int {
		return cmp.Or(cmp.Compare(a.layer, b.layer), cmp.Compare(a.id, b.id))
	})

	for _, e := range list {
		sx, sy, onScreen := r.camera.WorldToScreen(e.pos)
		if !onScreen {
			continue
		}
		color := ColorByName(e.vis.Color)
		if visible, _ := seen(mem, e.pos); !visible {
			color = dimColor
		}
		r.putGlyph(sx, sy, e.vis.Glyph, tcell.StyleDefault.Foreground(color).Background(tcell.ColorBlack))
	}
}

func (r *Renderer) drawCursor(p geo.Point) {
	sx, sy, onScreen := r.camera.WorldToScreen(p)
	if !onScreen {
		return
	}
	mainc, combc, style, _ := r.screen.GetContent(sx, sy)
	if mainc == 0 {
		mainc = ' '
	}
	r.screen.SetContent(sx, sy, mainc, combc, style.Reverse(true))
}

// putGlyph draws a single glyph at screen position (x, y). Wide glyphs
// take a second column.
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	r.screen.SetContent(x, y, runes[0], runes[1:], style)
	if runewidth.StringWidth(glyph) == 2 {
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
