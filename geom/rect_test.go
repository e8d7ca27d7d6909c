package geom

import "testing"

func TestRect_Center(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}
	if c := r.Center(); c != (Point{X: 25, Y: 40}) {
		t.Fatalf("unexpected center: %+v", c)
	}
}

func TestRect_ApproxEqual(t *testing.T) {
	a := Rect{X: 100, Y: 100, Width: 50, Height: 20}
	cases := []struct {
		name string
		b    Rect
		want bool
	}{
		{"identical", a, true},
		{"within tolerance", Rect{X: 103, Y: 98, Width: 54, Height: 21}, true},
		{"x outside", Rect{X: 106, Y: 100, Width: 50, Height: 20}, false},
		{"height outside", Rect{X: 100, Y: 100, Width: 50, Height: 26}, false},
		{"exactly at tolerance", Rect{X: 105, Y: 100, Width: 50, Height: 20}, false},
	}
	for _, tc := range cases {
		if got := a.ApproxEqual(tc.b, 5); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestRect_ApproxEqualZeroTolerance(t *testing.T) {
	a := Rect{X: 1, Y: 2, Width: 3, Height: 4}
	if !a.ApproxEqual(a, 0) {
		t.Fatalf("identical rects must match with zero tolerance")
	}
	if a.ApproxEqual(Rect{X: 1.5, Y: 2, Width: 3, Height: 4}, 0) {
		t.Fatalf("any offset must differ with zero tolerance")
	}
}

func TestRect_IntersectsWithMargin(t *testing.T) {
	screen := Rect{Width: 800, Height: 600}
	justOff := Rect{X: -15, Y: 10, Width: 10, Height: 10}
	if justOff.Intersects(screen) {
		t.Fatalf("expected no intersection without margin")
	}
	if !justOff.Intersects(screen.Expand(20)) {
		t.Fatalf("expected intersection within margin")
	}
	farOff := Rect{X: -500, Y: 10, Width: 10, Height: 10}
	if farOff.Intersects(screen.Expand(20)) {
		t.Fatalf("expected far off-screen rect to be rejected")
	}
}

func TestRect_EmptyNeverIntersects(t *testing.T) {
	if (Rect{X: 1, Y: 1}).Intersects(Rect{Width: 10, Height: 10}) {
		t.Fatalf("expected empty rect not to intersect")
	}
}
