package geometry

import "testing"

func TestRectContains(t *testing.T) {
	r := Rect{X: 2, Y: 3, Width: 4, Height: 2}

	if !r.Contains(Point{X: 2, Y: 3}) {
		t.Error("expected rect to contain its origin")
	}
	if !r.Contains(Point{X: 5, Y: 4}) {
		t.Error("expected rect to contain its last cell")
	}
	if r.Contains(Point{X: 6, Y: 3}) {
		t.Error("Right() column must be outside the rect")
	}
	if r.Contains(Point{X: 2, Y: 5}) {
		t.Error("Bottom() row must be outside the rect")
	}
}

func TestRectIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 5, Y: 5, Width: 10, Height: 10}

	got := a.Intersect(b)
	want := Rect{X: 5, Y: 5, Width: 5, Height: 5}
	if got != want {
		t.Errorf("Intersect = %+v, want %+v", got, want)
	}

	c := Rect{X: 20, Y: 20, Width: 5, Height: 5}
	if !a.Intersect(c).IsEmpty() {
		t.Errorf("disjoint rects should intersect to an empty rect, got %+v", a.Intersect(c))
	}
}

func TestRectIntersectIsCommutative(t *testing.T) {
	a := Rect{X: 1, Y: 2, Width: 8, Height: 6}
	b := Rect{X: 4, Y: 0, Width: 3, Height: 12}
	if a.Intersect(b) != b.Intersect(a) {
		t.Errorf("Intersect not commutative: %+v vs %+v", a.Intersect(b), b.Intersect(a))
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 2, Height: 2}
	b := Rect{X: 5, Y: 5, Width: 1, Height: 1}

	got := a.Union(b)
	want := Rect{X: 0, Y: 0, Width: 6, Height: 6}
	if got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}

	if a.Union(Rect{}) != a {
		t.Error("union with empty rect should return the original")
	}
	if (Rect{}).Union(b) != b {
		t.Error("union of empty rect with b should return b")
	}
}

func TestRectInset(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 4}

	got := r.Inset(1)
	want := Rect{X: 1, Y: 1, Width: 8, Height: 2}
	if got != want {
		t.Errorf("Inset(1) = %+v, want %+v", got, want)
	}

	if !r.Inset(3).IsEmpty() {
		t.Errorf("over-inset rect should be empty, got %+v", r.Inset(3))
	}
}

func TestSizeArea(t *testing.T) {
	if got := (Size{Width: 3, Height: 4}).Area(); got != 12 {
		t.Errorf("Area = %d, want 12", got)
	}
	if got := (Size{Width: -3, Height: 4}).Area(); got != 0 {
		t.Errorf("negative width should have zero area, got %d", got)
	}
}

func TestRectShift(t *testing.T) {
	r := Rect{X: 1, Y: 1, Width: 2, Height: 2}
	got := r.Shift(3, -1)
	want := Rect{X: 4, Y: 0, Width: 2, Height: 2}
	if got != want {
		t.Errorf("Shift = %+v, want %+v", got, want)
	}
}
