package explorer

import (
	"errors"
	"image"
	"math"
	"testing"
	"time"

	"github.com/hubastard/fractalgrove/engine/colors"
	"github.com/hubastard/fractalgrove/engine/core"
	"github.com/hubastard/fractalgrove/engine/scene"
)

type recordSurface struct {
	presents int
	last     *image.RGBA
	err      error
}

func (r *recordSurface) Present(img *image.RGBA) error {
	r.presents++
	r.last = img
	return r.err
}

func newTestState(t *testing.T, w, h int) (*State, *core.ManualClock) {
	t.Helper()
	clk := core.NewManualClock(time.Unix(0, 0))
	s, err := New(w, h, WithClock(clk), WithWorkers(2))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Close)
	return s, clk
}

func TestNewRejectsInvalidDimensions(t *testing.T) {
	for _, d := range [][2]int{{0, 100}, {100, 0}, {0, 0}} {
		if _, err := New(d[0], d[1]); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("New(%d, %d) err = %v", d[0], d[1], err)
		}
	}
}

func TestPanScenario(t *testing.T) {
	s, _ := newTestState(t, 100, 100)
	bx, by := s.ScreenToPlane(50, 50)
	s.Pan(50, 50, 60, 50)
	ax, ay := s.ScreenToPlane(60, 50)
	if math.Abs(ax-bx) > 1e-9 || math.Abs(ay-by) > 1e-9 {
		t.Errorf("after pan (60,50) -> (%v, %v), want (%v, %v)", ax, ay, bx, by)
	}
}

func TestDrawPresentsFullSizeFrame(t *testing.T) {
	s, _ := newTestState(t, 40, 30)
	out := &recordSurface{}
	if err := s.Draw(out); err != nil {
		t.Fatal(err)
	}
	if out.presents != 1 || out.last.Bounds() != image.Rect(0, 0, 40, 30) {
		t.Fatalf("presented %d frames, bounds %v", out.presents, out.last.Bounds())
	}
	if st := s.Snapshot().LastFrame; st.Samples != 40*30 {
		t.Errorf("samples = %d, want %d", st.Samples, 40*30)
	}
}

func TestDrawSkipsRenderWhenClean(t *testing.T) {
	s, _ := newTestState(t, 20, 20)
	out := &recordSurface{}
	s.Draw(out)
	first := s.Snapshot().LastFrame
	s.Draw(out)
	if out.presents != 2 {
		t.Errorf("presents = %d, want 2", out.presents)
	}
	if s.Snapshot().LastFrame != first {
		t.Error("clean frame was re-rendered")
	}
}

func TestDrawPropagatesSurfaceError(t *testing.T) {
	s, _ := newTestState(t, 8, 8)
	boom := errors.New("boom")
	if err := s.Draw(&recordSurface{err: boom}); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}

func TestMutatorsTakeEffectOnNextDraw(t *testing.T) {
	s, _ := newTestState(t, 16, 16)
	s.IncPower(PowerStep)
	s.IncPower(PowerStep)
	s.ToggleFast()
	if got := s.Frame(); math.Abs(got.Power-2.2) > 1e-12 || !got.Fast {
		t.Errorf("frame = %+v", got)
	}
	s.ToggleFast()
	if s.Frame().Fast {
		t.Error("ToggleFast twice should clear the flag")
	}
	s.IncPower(-10)
	if p := s.Frame().Power; math.Abs(p+7.8) > 1e-12 {
		t.Errorf("power = %v, want unbounded drift to -7.8", p)
	}
}

func TestFastFlagLowersIterationCap(t *testing.T) {
	s, _ := newTestState(t, 16, 16)
	out := &recordSurface{}
	s.Draw(out)
	normal := s.Snapshot().LastFrame.MaxIter
	s.ToggleFast()
	s.Draw(out)
	if fast := s.Snapshot().LastFrame.MaxIter; fast > normal {
		t.Errorf("fast cap %d > normal cap %d", fast, normal)
	}
}

func TestSetScaleChangesStride(t *testing.T) {
	s, _ := newTestState(t, 30, 30)
	if got := s.Frame().Stride; got != 1 {
		t.Fatalf("default stride = %d, want 1", got)
	}
	for _, c := range []struct{ level, stride int }{{9, 1}, {5, 5}, {1, 9}, {0, 9}, {12, 1}} {
		s.SetScale(c.level)
		if got := s.Frame().Stride; got != c.stride {
			t.Errorf("SetScale(%d) stride = %d, want %d", c.level, got, c.stride)
		}
	}
}

func TestSetZoomLevel(t *testing.T) {
	s, _ := newTestState(t, 50, 50)
	s.SetZoomLevel(5)
	if got, want := s.Frame().View.Scale, scene.DefaultScale(50)/5; math.Abs(got-want) > 1e-15 {
		t.Errorf("scale = %v, want %v", got, want)
	}
}

func TestInteractionDegradesThenRestores(t *testing.T) {
	s, clk := newTestState(t, 32, 32)
	out := &recordSurface{}
	s.Draw(out)

	s.Interact(func(s *State) { s.Pan(10, 10, 12, 10) })
	clk.Advance(200 * time.Millisecond)
	s.Interact(func(s *State) { s.Zoom(-1) })

	s.Draw(out)
	if snap := s.Snapshot(); !snap.Degraded || snap.LastFrame.Stride != 2 {
		t.Fatalf("during interaction: %+v", snap)
	}

	clk.Advance(RestoreDelay - time.Millisecond)
	s.Draw(out)
	if s.Snapshot().LastFrame.Stride != 2 {
		t.Fatal("restored before the idle delay after the last gesture")
	}

	clk.Advance(time.Millisecond)
	s.Draw(out)
	if snap := s.Snapshot(); snap.Degraded || snap.LastFrame.Stride != 1 {
		t.Errorf("after idle: %+v", snap)
	}
}

func TestInteractionRestoresToUserLevel(t *testing.T) {
	s, clk := newTestState(t, 32, 32)
	s.SetScale(6) // stride 4
	s.Interact(func(s *State) { s.Pan(0, 0, 1, 1) })
	if got := s.Frame().Stride; got != 4 {
		t.Errorf("interaction made the frame finer: stride %d", got)
	}
	clk.Advance(RestoreDelay)
	s.Draw(&recordSurface{})
	if got := s.Frame().Stride; got != 4 {
		t.Errorf("restored stride = %d, want 4", got)
	}
}

func TestCloseMakesDrawAndTimerNoOps(t *testing.T) {
	s, clk := newTestState(t, 16, 16)
	s.Interact(func(s *State) { s.Zoom(2) })
	s.Close()
	s.Close()

	clk.Advance(time.Hour)
	out := &recordSurface{}
	if err := s.Draw(out); err != nil || out.presents != 0 {
		t.Errorf("draw after close: err=%v presents=%d", err, out.presents)
	}
	if !s.Closed() {
		t.Error("Closed() = false")
	}
	Destroy(s)
	Destroy(nil)
}

func TestResizeResetsView(t *testing.T) {
	s, _ := newTestState(t, 100, 80)
	s.Pan(0, 0, 30, 30)
	s.Zoom(-4)
	s.IncPower(1)
	if err := s.Resize(0, 10); !errors.Is(err, ErrInvalidDimensions) {
		t.Fatalf("Resize(0, 10) err = %v", err)
	}
	if s.Frame().View.Width != 100 {
		t.Fatal("failed resize replaced the view")
	}

	if err := s.Resize(200, 120); err != nil {
		t.Fatal(err)
	}
	want, _ := scene.NewViewport(200, 120)
	if got := s.Frame(); got.View != want || got.Power != 2 {
		t.Errorf("after resize: %+v, want fresh view %+v and power 2", got, want)
	}
	out := &recordSurface{}
	s.Draw(out)
	if out.last.Bounds().Dx() != 200 || out.last.Bounds().Dy() != 120 {
		t.Errorf("presented %v after resize", out.last.Bounds())
	}
}

func TestWithPowerSurvivesResize(t *testing.T) {
	s, err := New(10, 10, WithPower(3))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	s.IncPower(0.5)
	s.Resize(20, 20)
	if s.Frame().Power != 3 {
		t.Errorf("power after resize = %v, want 3", s.Frame().Power)
	}
}

func TestCenterOnAndImage(t *testing.T) {
	s, _ := newTestState(t, 21, 11)
	s.CenterOn(-0.75, 0.1)
	x, y := s.ScreenToPlane(10.5, 5.5)
	if math.Abs(x+0.75) > 1e-12 || math.Abs(y-0.1) > 1e-12 {
		t.Errorf("surface center maps to (%v, %v)", x, y)
	}

	out := &recordSurface{}
	if err := s.Draw(out); err != nil {
		t.Fatal(err)
	}
	if s.Image() != out.last {
		t.Error("Image is not the presented frame")
	}
	s.Close()
	if s.Image() != nil {
		t.Error("Image after Close")
	}
}

func TestWithMapperFallsBackOnZeroPeriod(t *testing.T) {
	m := colors.DefaultMapper()
	m.Period = 0
	m.Palette = nil
	s, err := New(16, 8, WithMapper(m), WithWorkers(1))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	out := &recordSurface{}
	if err := s.Draw(out); err != nil {
		t.Fatal(err)
	}
	// the left edge of the default view lies outside the set
	if c := out.last.RGBAAt(0, 0); c == m.InSet || c.A != 255 {
		t.Errorf("corner pixel = %v", c)
	}
}
