// Package explorer holds the session state the shell drives: the view, the
// exponent, the fast flag and the render resolution. The shell creates one
// State per surface size, calls mutators from its input handlers and Draw once
// per frame, all from the same goroutine.
package explorer

import (
	"image"
	"time"

	"github.com/hubastard/fractalgrove/engine/fractal"
	"github.com/hubastard/fractalgrove/engine/profiler"
	"github.com/hubastard/fractalgrove/engine/render"
	"github.com/hubastard/fractalgrove/engine/resolution"
	"github.com/hubastard/fractalgrove/engine/scene"
)

// ErrInvalidDimensions is returned by New and Resize for an empty surface.
var ErrInvalidDimensions = scene.ErrInvalidDimensions

const (
	// RestoreDelay is how long input must be idle before full detail returns.
	RestoreDelay = 500 * time.Millisecond
	// PowerStep is the exponent change bound to +/- in the shells.
	PowerStep = 0.1
	// DefaultLevel renders every pixel.
	DefaultLevel = scene.MaxLevel
)

// Surface is the raster target a frame is presented to.
type Surface interface {
	Present(img *image.RGBA) error
}

// Snapshot is a copy of the render parameters, for display.
type Snapshot struct {
	View      scene.Viewport
	Power     float64
	Fast      bool
	Level     int
	Stride    int
	Degraded  bool
	MaxIter   uint32
	LastFrame render.Stats
}

type State struct {
	opts options

	view  scene.Viewport
	power float64
	fast  bool
	level int

	res  *resolution.Controller
	pipe *render.Pipeline
	buf  *render.PixelBuffer

	stats  render.Stats
	dirty  bool
	closed bool
}

// New creates the state for a w×h surface.
func New(w, h int, opts ...Option) (*State, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	s := &State{opts: o}
	if err := s.reset(w, h); err != nil {
		return nil, err
	}
	return s, nil
}

// reset rebuilds everything sized to the surface from the options.
func (s *State) reset(w, h int) error {
	view, err := scene.NewViewport(w, h)
	if err != nil {
		return err
	}
	if s.res != nil {
		s.res.Close()
	}
	s.view = view
	s.power = s.opts.power
	s.fast = false
	s.level = DefaultLevel
	s.res = resolution.New(s.opts.clock, strideForLevel(s.level))
	s.pipe = &render.Pipeline{Workers: s.opts.workers, Mapper: s.opts.mapper}
	s.buf = render.NewPixelBuffer(w, h)
	s.stats = render.Stats{}
	s.dirty = true
	s.closed = false
	return nil
}

// Resize discards the current view and starts over at the new size. On error
// the previous state is kept.
func (s *State) Resize(w, h int) error {
	return s.reset(w, h)
}

// Close releases the state. Pending restores are cancelled and Draw becomes a
// no-op. Close is idempotent.
func (s *State) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.res.Close()
	s.buf = nil
}

func (s *State) Closed() bool { return s.closed }

func (s *State) Pan(x0, y0, x1, y1 float64) {
	s.view.Pan(x0, y0, x1, y1)
	s.dirty = true
}

func (s *State) Zoom(delta float64) {
	if delta == 0 {
		return
	}
	s.view.Zoom(delta)
	s.dirty = true
}

// SetScale selects the base render level, 1 (coarsest) to 9 (every pixel).
func (s *State) SetScale(level int) {
	s.level = scene.ClampLevel(level)
	s.res.SetBase(strideForLevel(s.level))
	s.dirty = true
}

// CenterOn moves the view so the plane point (x, y) is at the surface center.
func (s *State) CenterOn(x, y float64) {
	s.view.CenterX, s.view.CenterY = x, y
	s.dirty = true
}

// SetZoomLevel jumps the view to a discrete magnification.
func (s *State) SetZoomLevel(n int) {
	s.view.SetLevel(n)
	s.dirty = true
}

func (s *State) IncPower(delta float64) {
	s.power += delta
	s.dirty = true
}

func (s *State) ToggleFast() {
	s.fast = !s.fast
	s.dirty = true
}

// Interact runs a continuous-gesture mutation at coarse resolution and
// schedules full detail to return once input has been idle for the restore delay.
func (s *State) Interact(fn func(*State)) {
	s.res.BeginInteraction()
	fn(s)
	s.res.EndInteractionAfter(s.opts.restoreDelay)
	s.dirty = true
}

// Frame is the render input for the next draw.
func (s *State) Frame() render.Frame {
	return render.Frame{View: s.view, Power: s.power, Fast: s.fast, Stride: s.res.Effective()}
}

// Draw renders the frame if anything changed since the last one and presents
// the buffer to out.
func (s *State) Draw(out Surface) error {
	if s.closed {
		return nil
	}
	end := profiler.Start("explorer.State.Draw")
	defer end()

	if s.res.Poll() {
		s.dirty = true
	}
	if s.dirty {
		s.stats = s.pipe.Render(s.Frame(), s.buf)
		s.dirty = false
	}
	return out.Present(s.buf.Image())
}

func (s *State) Snapshot() Snapshot {
	return Snapshot{
		View:      s.view,
		Power:     s.power,
		Fast:      s.fast,
		Level:     s.level,
		Stride:    s.res.Effective(),
		Degraded:  s.res.Degraded(),
		MaxIter:   fractal.ParamsFor(s.fast).MaxIter,
		LastFrame: s.stats,
	}
}

// Image returns the last rendered frame, or nil after Close. It is
// overwritten by the next Draw.
func (s *State) Image() *image.RGBA {
	if s.closed {
		return nil
	}
	return s.buf.Image()
}

// ScreenToPlane maps a surface pixel through the current view.
func (s *State) ScreenToPlane(px, py float64) (float64, float64) {
	return s.view.ScreenToPlane(px, py)
}

// strideForLevel maps render level 1..9 to block stride 9..1.
func strideForLevel(level int) int {
	return scene.MaxLevel + 1 - scene.ClampLevel(level)
}

// Create is New for shells that prefer the create/destroy pairing.
func Create(w, h int, opts ...Option) (*State, error) { return New(w, h, opts...) }

// Destroy is Close.
func Destroy(s *State) {
	if s != nil {
		s.Close()
	}
}
