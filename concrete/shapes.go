package concrete

import (
	"fmt"
	"math"

	"github.com/katalvlaran/polytope/abstract"
)

// Point returns the point in 0-dimensional space.
func Point() *Polytope {
	return derive(abstract.Point(), [][]float64{{}}, 0, defaultOptions().eps)
}

// Dyad returns the segment [-length/2, length/2] on the line.
func Dyad(length float64) *Polytope {
	return derive(abstract.Dyad(), [][]float64{{-length / 2}, {length / 2}}, 1, defaultOptions().eps)
}

// Polygon returns the regular n-gon with unit edges, centred at the origin,
// vertex k at angle 2πk/n.
func Polygon(n int) (*Polytope, error) {
	abs, err := abstract.Polygon(n)
	if err != nil {
		return nil, concreteErrorf("Polygon", err)
	}
	r := 1 / (2 * math.Sin(math.Pi/float64(n)))
	vs := make([][]float64, n)
	for k := range vs {
		t := 2 * math.Pi * float64(k) / float64(n)
		vs[k] = []float64{r * math.Cos(t), r * math.Sin(t)}
	}

	return derive(abs, vs, 2, defaultOptions().eps), nil
}

// Simplex returns the regular rank r simplex with unit edges, centred at the
// origin, in r dimensions.
//
// Implementation:
//   - Stage 1: start from the point.
//   - Stage 2: raise a pyramid over the (k-1)-simplex of circumradius
//     R = √((k-1)/(2k)); the apex height √(1-R²) makes its edges unit.
//   - Stage 3: recenter.
func Simplex(r int) (*Polytope, error) {
	if r < 0 {
		return nil, concreteErrorf("Simplex", fmt.Errorf("rank %d: %w", r, abstract.ErrInvalidOperand))
	}
	out := Point()
	for k := 1; k <= r; k++ {
		rad := math.Sqrt(float64(k-1) / float64(2*k))
		next, err := Pyramid(out, math.Sqrt(1-rad*rad))
		if err != nil {
			return nil, err
		}
		if out, err = next.Recenter(); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Hypercube returns the rank r hypercube with unit edges, vertices at ±1/2.
func Hypercube(r int) (*Polytope, error) {
	if r < 0 {
		return nil, concreteErrorf("Hypercube", fmt.Errorf("rank %d: %w", r, abstract.ErrInvalidOperand))
	}
	dyads := make([]*Polytope, r)
	for i := range dyads {
		dyads[i] = Dyad(1)
	}

	return Multiprism(dyads...)
}

// Orthoplex returns the rank r orthoplex with vertices at ±(√2/2)·eᵢ, so
// its edges are unit for r ≥ 2.
func Orthoplex(r int) (*Polytope, error) {
	if r < 0 {
		return nil, concreteErrorf("Orthoplex", fmt.Errorf("rank %d: %w", r, abstract.ErrInvalidOperand))
	}
	dyads := make([]*Polytope, r)
	for i := range dyads {
		dyads[i] = Dyad(math.Sqrt2)
	}

	return Multitegum(dyads...)
}
