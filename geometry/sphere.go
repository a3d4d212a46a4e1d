package geometry

import (
	"math"
)

// Hypersphere is a sphere of any dimension.
type Hypersphere struct {
	Center []float64
	Radius float64
}

// SquaredRadius returns Radius².
func (h Hypersphere) SquaredRadius() float64 { return h.Radius * h.Radius }

// Unit returns the unit hypersphere centred at the origin of dimension dim.
func Unit(dim int) Hypersphere {
	return Hypersphere{Center: make([]float64, dim), Radius: 1}
}

// Reciprocate maps p to its pole-polar reciprocal c + r²·(p−c)/|p−c|².
// The second result is false when p sits at the centre.
func (h Hypersphere) Reciprocate(p []float64, tol float64) ([]float64, bool) {
	d := Sub(p, h.Center)
	nn := Dot(d, d)
	if nn <= tol*tol {
		return nil, false
	}

	return Add(h.Center, Scaled(d, h.SquaredRadius()/nn)), true
}

// Circumsphere returns the sphere through every point, if one exists.
//
// Implementation:
//   - Stage 1: start at o = v0 with the 0-dimensional subspace {v0}.
//   - Stage 2: for each further v, if v leaves the current affine span,
//     extend the span by the new unit direction b and slide o along b by
//     k = (|o−v|² − |o−v0|²) / (2·(v−v0)·b), which keeps o equidistant from
//     every point seen so far.
//   - Stage 3: if v is already in the span, it must be at the same distance
//     from o as v0 (within tol), otherwise no circumsphere exists.
//
// Complexity:
//   - Time O(n·d²), Space O(d²).
func Circumsphere(points [][]float64, tol float64) (Hypersphere, bool) {
	if len(points) == 0 {
		return Hypersphere{}, false
	}
	v0 := points[0]
	o := Clone(v0)
	span := NewSubspace(v0, tol)
	for _, v := range points[1:] {
		if b := span.Add(v); b != nil {
			ov, ov0 := Sub(o, v), Sub(o, v0)
			k := (Dot(ov, ov) - Dot(ov0, ov0)) / (2 * Dot(Sub(v, v0), b))
			o = Add(o, Scaled(b, k))

			continue
		}
		if math.Abs(Distance(o, v0)-Distance(o, v)) > tol {
			return Hypersphere{}, false
		}
	}

	return Hypersphere{Center: o, Radius: Distance(o, v0)}, true
}
