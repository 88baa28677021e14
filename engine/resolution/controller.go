// Package resolution decides the sampling stride of each frame.
//
// While the user drags or zooms the stride is forced coarse so frames stay
// cheap; once input has been quiet for a delay the stride returns to the
// user-selected base. Only the most recently armed restore may fire.
package resolution

import (
	"time"

	"github.com/hubastard/fractalgrove/engine/core"
)

// Transient is the stride used while an interaction is in progress.
const Transient = 2

type restore struct {
	gen uint64
	due time.Time
}

// Controller is driven from the frame loop and is not safe for concurrent use.
type Controller struct {
	clock     core.Clock
	base      int
	effective int
	degraded  bool

	gen      uint64
	pending  *restore
	restores int
	closed   bool
}

// New returns an idle controller at the given base stride.
func New(clock core.Clock, base int) *Controller {
	if clock == nil {
		clock = core.SystemClock{}
	}
	base = clampStride(base)
	return &Controller{clock: clock, base: base, effective: base}
}

func (c *Controller) Base() int      { return c.base }
func (c *Controller) Effective() int { return c.effective }
func (c *Controller) Degraded() bool { return c.degraded }

// Restores counts how many deferred restores have fired.
func (c *Controller) Restores() int { return c.restores }

// Pending reports whether a restore is armed.
func (c *Controller) Pending() bool { return c.pending != nil }

// SetBase changes the persistent stride. An interaction in progress keeps its
// coarse stride until the restore fires.
func (c *Controller) SetBase(stride int) {
	c.base = clampStride(stride)
	if !c.degraded {
		c.effective = c.base
	}
}

// BeginInteraction switches to the coarse stride immediately. The coarse
// stride never gives more detail than the base.
func (c *Controller) BeginInteraction() {
	if c.closed {
		return
	}
	c.degraded = true
	c.effective = max(Transient, c.base)
}

// EndInteractionAfter arms a single restore after delay, superseding any
// restore armed earlier.
func (c *Controller) EndInteractionAfter(delay time.Duration) {
	if c.closed {
		return
	}
	c.gen++
	c.pending = &restore{gen: c.gen, due: c.clock.Now().Add(delay)}
}

// Poll fires the pending restore when it is due. It reports whether the
// effective stride changed back to the base.
func (c *Controller) Poll() bool {
	if c.closed || c.pending == nil {
		return false
	}
	p := c.pending
	if p.gen != c.gen || c.clock.Now().Before(p.due) {
		return false
	}
	c.pending = nil
	c.restores++
	changed := c.effective != c.base
	c.effective = c.base
	c.degraded = false
	return changed
}

// Close cancels any pending restore; later calls are no-ops.
func (c *Controller) Close() {
	c.closed = true
	c.pending = nil
}

func clampStride(s int) int {
	if s < 1 {
		return 1
	}
	return s
}
