package geo

// Line returns the Bresenham line from a to b, both ends included.
func Line(a, b Point) []Point {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := sign(b.X-a.X), sign(b.Y-a.Y)
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	err := dx + dy
	pts := make([]Point, 0, max(dx, -dy)+1)
	p := a
	for {
		pts = append(pts, p)
		if p == b {
			return pts
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			p.X += sx
		}
		if e2 <= dx {
			err += dx
			p.Y += sy
		}
	}
}

// Ray extends the line from a through b until it is length steps long
// (a excluded). It is used for spells that keep travelling past their aim point.
func Ray(a, b Point, length int) []Point {
	if a == b || length <= 0 {
		return nil
	}
	dx, dy := b.X-a.X, b.Y-a.Y
	n := max(abs(dx), abs(dy))
	// scale the aim point far enough out that the line covers length steps
	k := (length + n - 1) / n
	far := Point{a.X + dx*k, a.Y + dy*k}
	pts := Line(a, far)[1:]
	if len(pts) > length {
		pts = pts[:length]
	}
	return pts
}
