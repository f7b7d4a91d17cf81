package entities

import "math"

// Rect is the rendered bounding box of an element in CSS pixels
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Position represents a point on the page
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center - returns the center point of the rectangle
func (r Rect) Center() Position {
	return Position{
		X: int(math.Round(r.X + r.Width/2)),
		Y: int(math.Round(r.Y + r.Height/2)),
	}
}

// Distance - returns the distance between the centers of r and o
func (r Rect) Distance(o Rect) float64 {
	dx := (r.X + r.Width/2) - (o.X + o.Width/2)
	dy := (r.Y + r.Height/2) - (o.Y + o.Height/2)
	return math.Hypot(dx, dy)
}

// Satisfies - reports whether r lies in direction dir relative to anchor
func (r Rect) Satisfies(dir Direction, anchor Rect) bool {
	switch dir {
	case Above:
		return r.Bottom() <= anchor.Top()
	case Below:
		return r.Top() >= anchor.Bottom()
	case LeftOf:
		return r.Right() <= anchor.Left()
	case RightOf:
		return r.Left() >= anchor.Right()
	}
	return false
}
