package render

import "sneaky/internal/geo"

// Camera translates between world coordinates and screen coordinates.
// Every world tile is one terminal column wide.
type Camera struct {
	Offset     geo.Point
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
}

// NewCamera creates a camera of the given view size centered on c.
func NewCamera(c geo.Point, viewW, viewH int) *Camera {
	cam := &Camera{ViewWidth: viewW, ViewHeight: viewH}
	cam.Center(c)
	return cam
}

// Center repositions the camera so that c is in the middle of the view.
func (c *Camera) Center(p geo.Point) {
	c.Offset = geo.Pt(p.X-c.ViewWidth/2, p.Y-c.ViewHeight/2)
}

// Resize changes the view size, keeping the same center.
func (c *Camera) Resize(viewW, viewH int) {
	center := geo.Pt(c.Offset.X+c.ViewWidth/2, c.Offset.Y+c.ViewHeight/2)
	c.ViewWidth, c.ViewHeight = viewW, viewH
	c.Center(center)
}

// WorldToScreen converts p to screen coordinates.
// visible is false when the result falls outside the viewport.
func (c *Camera) WorldToScreen(p geo.Point) (sx, sy int, visible bool) {
	sx = p.X - c.Offset.X
	sy = p.Y - c.Offset.Y
	visible = sx >= 0 && sx < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// ScreenToWorld converts screen (sx, sy) to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy int) geo.Point {
	return geo.Pt(sx+c.Offset.X, sy+c.Offset.Y)
}
