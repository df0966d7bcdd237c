package render

import (
	"github.com/gdamore/tcell/v2"

	"sneaky/internal/message"
)

// LevelTiles holds the glyphs and colors used to draw one level's terrain.
// Explored but dark tiles keep their glyph and lose their color.
type LevelTiles struct {
	Wall       rune
	Floor      rune
	WallColor  tcell.Color
	FloorColor tcell.Color
}

var dimColor = tcell.ColorDimGray

// TileThemes is indexed by dungeon level minus one, wrapping around.
var TileThemes = []LevelTiles{
	{Wall: '#', Floor: '.', WallColor: tcell.ColorSilver, FloorColor: tcell.ColorGray},
	{Wall: '#', Floor: '.', WallColor: tcell.ColorTan, FloorColor: tcell.ColorSaddleBrown},
	{Wall: '#', Floor: '.', WallColor: tcell.ColorLightSteelBlue, FloorColor: tcell.ColorSteelBlue},
	{Wall: '#', Floor: ',', WallColor: tcell.ColorDarkSeaGreen, FloorColor: tcell.ColorDarkOliveGreen},
	{Wall: '#', Floor: '.', WallColor: tcell.ColorIndianRed, FloorColor: tcell.ColorMaroon},
}

// ThemeFor returns the terrain theme of a dungeon level.
func ThemeFor(level int) LevelTiles {
	if level < 1 {
		level = 1
	}
	return TileThemes[(level-1)%len(TileThemes)]
}

// ColorByName resolves a content color name, falling back to white.
func ColorByName(name string) tcell.Color {
	if c := tcell.GetColor(name); c != tcell.ColorDefault {
		return c
	}
	return tcell.ColorWhite
}

func messageColor(l message.Level) tcell.Color {
	switch l {
	case message.Spell:
		return tcell.ColorAqua
	case message.Important:
		return tcell.ColorYellow
	}
	return tcell.ColorLightGray
}
