package component

import "sneaky/internal/geo"

// Position places an entity on the grid. Every entity in the spatial index has one.
type Position struct {
	Coord geo.Point `json:"coord"`
}

// Visual is how an entity is drawn.
type Visual struct {
	Glyph string `json:"glyph"`
	Color string `json:"color"`
	// AlwaysDisplay keeps the entity drawn on explored but not visible tiles.
	AlwaysDisplay bool `json:"always_display,omitempty"`
}
