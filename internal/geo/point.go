package geo

import (
	"fmt"
	"math"
)

// Point is an integer grid coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NoPosition is the sentinel used for "no meaningful position".
var NoPosition = Point{X: -1, Y: -1}

// Directions lists the eight neighbour offsets in a fixed order so searches
// over them are deterministic.
var Directions = [8]Point{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

func Pt(x, y int) Point { return Point{X: x, Y: y} }

func (p Point) Add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y} }

func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Neighbours returns the eight surrounding points in Directions order.
func (p Point) Neighbours() [8]Point {
	var out [8]Point
	for i, d := range Directions {
		out[i] = p.Add(d)
	}
	return out
}

// DistanceSquared is the squared Euclidean distance.
func DistanceSquared(a, b Point) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

// Distance is the Euclidean distance.
func Distance(a, b Point) float64 {
	return math.Sqrt(float64(DistanceSquared(a, b)))
}

// TileDistance is the Chebyshev distance: the number of king moves between a and b.
func TileDistance(a, b Point) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y))
}

// Step returns the unit direction from a towards b.
func Step(a, b Point) Point {
	return Point{sign(b.X - a.X), sign(b.Y - a.Y)}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
