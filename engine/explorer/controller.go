package explorer

import "github.com/hubastard/fractalgrove/engine/core"

// ScrollZoom is the zoom delta per unit of scroll offset.
const ScrollZoom = 1.0

// Controller maps engine input events onto State mutators:
// left-drag pans, the wheel zooms, space toggles fast mode, +/- change the
// exponent, digits pick the render level and Ctrl+digit the zoom level.
// Drags and wheel zooms run as interactions, at coarse resolution.
type Controller struct {
	State *State
}

func NewController(s *State) *Controller { return &Controller{State: s} }

// HandleEvent applies ev and reports whether it was consumed. in must already
// reflect ev (see core.Engine.Dispatch).
func (c *Controller) HandleEvent(in *core.Input, ev core.Event) bool {
	s := c.State
	if s == nil || s.Closed() {
		return false
	}
	switch e := ev.(type) {
	case core.EventMouseMove:
		if !in.IsButtonDown(core.MouseLeft) {
			return false
		}
		px, py := in.PrevMouse()
		s.Interact(func(s *State) { s.Pan(px, py, e.X, e.Y) })
		return true

	case core.EventScroll:
		if e.Yoff == 0 {
			return false
		}
		// scrolling up (away from the user) zooms in
		s.Interact(func(s *State) { s.Zoom(-e.Yoff * ScrollZoom) })
		return true

	case core.EventChar:
		return c.handleChar(e.Rune)

	case core.EventKey:
		if !e.Down || e.Mods&core.ModCtrl == 0 {
			return false
		}
		if n, ok := e.Key.Digit(); ok {
			s.SetZoomLevel(n)
			return true
		}
	}
	return false
}

func (c *Controller) handleChar(r rune) bool {
	s := c.State
	switch {
	case r == ' ':
		s.ToggleFast()
	case r == '+' || r == '=':
		s.IncPower(PowerStep)
	case r == '-' || r == '_':
		s.IncPower(-PowerStep)
	case r >= '1' && r <= '9':
		s.SetScale(int(r - '0'))
	default:
		return false
	}
	return true
}
