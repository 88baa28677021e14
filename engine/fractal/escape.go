// Package fractal evaluates the generalized escape-time map z <- z^p + c.
//
// Evaluation is a pure function of its inputs, so callers may run it for many
// points concurrently.
package fractal

import "math"

// Result is the outcome of iterating a single point.
// A point that never escaped within the iteration cap is Bounded.
type Result struct {
	Escaped    bool
	Iterations uint32  // iteration at which |z| first exceeded the bailout
	Magnitude  float64 // |z| at escape
}

func (r Result) Bounded() bool { return !r.Escaped }

// Smooth returns a fractional iteration count in [Iterations, Iterations+1]
// that varies continuously across escape bands. For |power| <= 1 the
// normalization is undefined and the integer count is returned.
func (r Result) Smooth(power, bailout float64) float64 {
	n := float64(r.Iterations)
	if !r.Escaped {
		return n
	}
	lp := math.Log(math.Abs(power))
	lb := math.Log(bailout)
	if lp <= 0 || lb <= 0 || r.Magnitude <= bailout {
		return n
	}
	mu := n + 1 - math.Log(math.Log(r.Magnitude)/lb)/lp
	switch {
	case math.IsNaN(mu) || mu < n:
		return n
	case mu > n+1:
		return n + 1
	}
	return mu
}

// Evaluate iterates z <- z^power + c from z = 0 for at most maxIter steps and
// reports whether |z| exceeded bailout. Samples whose iterate becomes undefined
// are treated as bounded.
func Evaluate(c Point, power float64, maxIter uint32, bailout float64) Result {
	b2 := bailout * bailout
	var z Point
	for i := uint32(1); i <= maxIter; i++ {
		zp, ok := Pow(z, power)
		if !ok {
			return Result{}
		}
		z = zp.Add(c)
		m2 := z.Abs2()
		if math.IsNaN(m2) {
			return Result{}
		}
		if m2 > b2 {
			return Result{Escaped: true, Iterations: i, Magnitude: math.Sqrt(m2)}
		}
	}
	return Result{}
}
