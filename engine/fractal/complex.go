package fractal

import "math"

// Point is a point in the parameter plane, read as the complex number X + iY.
type Point struct{ X, Y float64 }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

func (p Point) Mul(q Point) Point {
	return Point{p.X*q.X - p.Y*q.Y, p.X*q.Y + p.Y*q.X}
}

// Abs2 is the squared magnitude.
func (p Point) Abs2() float64 { return p.X*p.X + p.Y*p.Y }

// maxIntPower bounds the exponents taken by repeated squaring.
const maxIntPower = 16

// Pow raises z to a real power. ok is false when the result is undefined:
// zero raised to a non-positive power, or a NaN component. Overflow to
// infinity is a valid (escaping) result.
func Pow(z Point, p float64) (Point, bool) {
	r2 := z.Abs2()
	if r2 == 0 {
		if p > 0 {
			return Point{}, true
		}
		return Point{}, false
	}

	var out Point
	if n := int(p); float64(n) == p && n >= -maxIntPower && n <= maxIntPower {
		out = powInt(z, n)
	} else {
		// polar form: r^p at angle θp, with r^p = exp(p·ln r)
		mag := math.Exp(p * 0.5 * math.Log(r2))
		if math.IsInf(mag, 1) {
			// Inf times a zero sin or cos would be NaN
			return Point{mag, 0}, true
		}
		sin, cos := math.Sincos(p * math.Atan2(z.Y, z.X))
		out = Point{mag * cos, mag * sin}
	}
	if math.IsNaN(out.X) || math.IsNaN(out.Y) {
		return Point{}, false
	}
	return out, true
}

func powInt(z Point, n int) Point {
	inv := n < 0
	if inv {
		n = -n
	}
	acc := Point{1, 0}
	for n > 0 {
		if n&1 == 1 {
			acc = acc.Mul(z)
		}
		z = z.Mul(z)
		n >>= 1
	}
	if inv {
		d := acc.Abs2()
		acc = Point{acc.X / d, -acc.Y / d}
	}
	return acc
}
