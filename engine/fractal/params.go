package fractal

// Params are the per-frame iteration limits.
type Params struct {
	MaxIter uint32
	Bailout float64
}

var (
	// Normal trades throughput for detail; the wide bailout keeps smooth
	// coloring free of banding.
	Normal = Params{MaxIter: 900, Bailout: 8}
	// Fast caps iterations low and escapes at the classic radius.
	Fast = Params{MaxIter: 150, Bailout: 2}
)

// ParamsFor picks the iteration limits for the fast flag.
func ParamsFor(fast bool) Params {
	if fast {
		return Fast
	}
	return Normal
}

// Evaluate runs the escape-time iteration with these limits.
func (p Params) Evaluate(c Point, power float64) Result {
	return Evaluate(c, power, p.MaxIter, p.Bailout)
}
