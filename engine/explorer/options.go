package explorer

import (
	"time"

	"github.com/hubastard/fractalgrove/engine/colors"
	"github.com/hubastard/fractalgrove/engine/core"
)

type options struct {
	power        float64
	workers      int
	clock        core.Clock
	mapper       colors.Mapper
	restoreDelay time.Duration
}

func defaultOptions() options {
	return options{
		power:        2,
		clock:        core.SystemClock{},
		mapper:       colors.DefaultMapper(),
		restoreDelay: RestoreDelay,
	}
}

// Option configures a State at creation. Options survive Resize.
type Option func(*options)

// WithPower sets the starting exponent.
func WithPower(p float64) Option { return func(o *options) { o.power = p } }

// WithWorkers bounds render goroutines; n <= 0 uses GOMAXPROCS.
func WithWorkers(n int) Option { return func(o *options) { o.workers = n } }

// WithClock replaces the clock the restore timer reads.
func WithClock(c core.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithMapper replaces the coloring; a nil palette or a period <= 0 falls back to the default.
func WithMapper(m colors.Mapper) Option { return func(o *options) { o.mapper = m.Normalized() } }

func WithRestoreDelay(d time.Duration) Option { return func(o *options) { o.restoreDelay = d } }
