package main

// Rect is an axis-aligned box in world coordinates, edges inclusive.
type Rect struct {
	Top    float64
	Left   float64
	Right  float64
	Bottom float64
}

// rectAround builds a Rect centered on (x, y) with the given full side length.
func rectAround(x, y, side float64) Rect {
	half := side / 2
	return Rect{
		Top:    y - half,
		Left:   x - half,
		Right:  x + half,
		Bottom: y + half,
	}
}

// intersect reports whether two axis-aligned rectangles overlap.
// Separating-axis test on both axes; edges are inclusive, no tolerance.
func intersect(a, b Rect) bool {
	if a.Right < b.Left || b.Right < a.Left {
		return false
	}
	if a.Bottom < b.Top || b.Bottom < a.Top {
		return false
	}
	return true
}
