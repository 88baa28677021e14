package scene

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestNewViewportRejectsEmpty(t *testing.T) {
	cases := [][2]int{{0, 10}, {10, 0}, {-1, 5}, {0, 0}}
	for _, c := range cases {
		if _, err := NewViewport(c[0], c[1]); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("NewViewport(%d, %d) err = %v, want ErrInvalidDimensions", c[0], c[1], err)
		}
	}
}

func TestNewViewportDefaults(t *testing.T) {
	v, err := NewViewport(250, 100)
	if err != nil {
		t.Fatal(err)
	}
	minX, _, maxX, _ := v.Bounds()
	if !near(minX, -1.5, eps) || !near(maxX, 1.0, eps) {
		t.Errorf("default x range = [%v, %v], want [-1.5, 1]", minX, maxX)
	}
	if v.Scale <= 0 {
		t.Errorf("scale = %v, want > 0", v.Scale)
	}
}

func TestScreenPlaneRoundTrip(t *testing.T) {
	v, _ := NewViewport(640, 480)
	v.CenterX, v.CenterY = 0.37, -1.25
	v.Zoom(-17.5)

	for _, p := range [][2]float64{{0, 0}, {639, 479}, {320, 240}, {12.5, 400.25}, {-30, 900}} {
		x, y := v.ScreenToPlane(p[0], p[1])
		px, py := v.PlaneToScreen(x, y)
		if !near(px, p[0], 1e-6) || !near(py, p[1], 1e-6) {
			t.Errorf("round trip %v -> (%v, %v)", p, px, py)
		}
	}
}

func TestYAxisGrowsDown(t *testing.T) {
	v, _ := NewViewport(100, 100)
	_, top := v.ScreenToPlane(50, 0)
	_, bottom := v.ScreenToPlane(50, 99)
	if !(bottom > top) {
		t.Errorf("plane y at bottom (%v) should exceed top (%v)", bottom, top)
	}
}

func TestPanFollowsDrag(t *testing.T) {
	cases := []struct{ x0, y0, x1, y1 float64 }{
		{50, 50, 60, 50},
		{10, 90, 80, 5},
		{33.3, 12.1, 33.3, 12.1},
		{0, 0, -40, 250},
	}
	for _, c := range cases {
		v, _ := NewViewport(100, 100)
		v.Zoom(-5)
		wantX, wantY := v.ScreenToPlane(c.x0, c.y0)
		v.Pan(c.x0, c.y0, c.x1, c.y1)
		gotX, gotY := v.ScreenToPlane(c.x1, c.y1)
		if !near(gotX, wantX, eps) || !near(gotY, wantY, eps) {
			t.Errorf("pan %+v: plane under target = (%v, %v), want (%v, %v)", c, gotX, gotY, wantX, wantY)
		}
	}
}

func TestZoomComposes(t *testing.T) {
	deltas := [][2]float64{{1, 2}, {-3, 3}, {0.25, -7.5}, {-100, 40}, {0, 0}}
	for _, d := range deltas {
		a, _ := NewViewport(320, 200)
		b := a
		a.Zoom(d[0])
		a.Zoom(d[1])
		b.Zoom(d[0] + d[1])
		if !near(a.Scale/b.Scale, 1, 1e-12) {
			t.Errorf("zoom(%v)+zoom(%v) scale %v != zoom(%v) scale %v", d[0], d[1], a.Scale, d[0]+d[1], b.Scale)
		}
	}
}

func TestZoomDirection(t *testing.T) {
	v, _ := NewViewport(100, 100)
	s := v.Scale
	v.Zoom(0)
	if v.Scale != s {
		t.Fatalf("zero delta changed scale")
	}
	v.Zoom(1)
	if !(v.Scale > s) {
		t.Errorf("positive delta should zoom out (scale grows)")
	}
	v.Zoom(-2)
	if !(v.Scale < s) {
		t.Errorf("negative delta should zoom in (scale shrinks)")
	}
	cx, cy := v.CenterX, v.CenterY
	v.Zoom(3)
	if v.CenterX != cx || v.CenterY != cy {
		t.Errorf("zoom moved the center")
	}
}

func TestZoomRejectsDegenerateScale(t *testing.T) {
	v, _ := NewViewport(100, 100)
	s := v.Scale
	v.Zoom(math.Inf(1))
	if v.Scale != s {
		t.Errorf("infinite zoom changed scale to %v", v.Scale)
	}
	v.Zoom(-1e6)
	if v.Scale != s {
		t.Errorf("underflowing zoom changed scale to %v", v.Scale)
	}
}

func TestSetLevel(t *testing.T) {
	v, _ := NewViewport(200, 100)
	base := DefaultScale(200)
	for _, c := range []struct {
		level int
		want  float64
	}{
		{1, base},
		{4, base / 4},
		{9, base / 9},
		{0, base},
		{42, base / 9},
	} {
		v.SetLevel(c.level)
		if !near(v.Scale, c.want, 1e-15) {
			t.Errorf("SetLevel(%d) scale = %v, want %v", c.level, v.Scale, c.want)
		}
	}
}
