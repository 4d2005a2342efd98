package main

import "testing"

func TestIntersectOverlapping(t *testing.T) {
	a := rectAround(100, 100, 20)
	b := rectAround(105, 105, 20)
	if !intersect(a, b) {
		t.Fatalf("expected overlapping boxes to intersect")
	}
}

func TestIntersectSeparated(t *testing.T) {
	a := rectAround(100, 100, 10)
	b := rectAround(200, 200, 10)
	if intersect(a, b) {
		t.Fatalf("expected far-apart boxes not to intersect")
	}
}

func TestIntersectTouchingEdgeIsInclusive(t *testing.T) {
	a := rectAround(0, 0, 10) // [-5,5]x[-5,5]
	b := rectAround(10, 0, 10) // [5,15]x[-5,5]
	if !intersect(a, b) {
		t.Fatalf("expected touching edges to count as intersecting")
	}
}

func TestRectAroundCentering(t *testing.T) {
	r := rectAround(10, 20, 4)
	if r.Left != 8 || r.Right != 12 || r.Top != 18 || r.Bottom != 22 {
		t.Fatalf("unexpected rect bounds: %+v", r)
	}
}
