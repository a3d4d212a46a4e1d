package geometry

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultEpsilon is the relative tolerance applied to coordinate comparisons.
const DefaultEpsilon = 1e-9

var (
	// ErrDimensionMismatch is returned when points of different lengths are combined.
	ErrDimensionMismatch = errors.New("geometry: dimension mismatch")

	// ErrEmpty is returned when an operation needs at least one point.
	ErrEmpty = errors.New("geometry: no points")
)

// Scale returns max(1, largest absolute coordinate over points).
func Scale(points [][]float64) float64 {
	s := 1.0
	for _, p := range points {
		for _, x := range p {
			s = math.Max(s, math.Abs(x))
		}
	}

	return s
}

// Tolerance returns the absolute tolerance eps·Scale(points).
func Tolerance(eps float64, points [][]float64) float64 {
	return eps * Scale(points)
}

// Approx reports |a-b| ≤ tol.
func Approx(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

// Sub returns a-b.
func Sub(a, b []float64) []float64 {
	out := make([]float64, len(a))
	floats.SubTo(out, a, b)

	return out
}

// Add returns a+b.
func Add(a, b []float64) []float64 {
	out := make([]float64, len(a))
	floats.AddTo(out, a, b)

	return out
}

// Scaled returns k·a.
func Scaled(a []float64, k float64) []float64 {
	out := make([]float64, len(a))
	floats.ScaleTo(out, k, a)

	return out
}

// Dot returns a·b.
func Dot(a, b []float64) float64 { return floats.Dot(a, b) }

// Norm returns the Euclidean length of a.
func Norm(a []float64) float64 { return floats.Norm(a, 2) }

// Distance returns |a-b|.
func Distance(a, b []float64) float64 { return floats.Distance(a, b, 2) }

// Clone copies a point.
func Clone(a []float64) []float64 {
	out := make([]float64, len(a))
	copy(out, a)

	return out
}

// Pad returns p with left zeros prepended and right zeros appended.
func Pad(p []float64, left, right int) []float64 {
	out := make([]float64, left+len(p)+right)
	copy(out[left:], p)

	return out
}

// Concat returns the concatenation (p, q).
func Concat(p, q []float64) []float64 {
	out := make([]float64, 0, len(p)+len(q))

	return append(append(out, p...), q...)
}

// Centroid returns the arithmetic mean of points.
//
// Errors:
//   - ErrEmpty for no points, ErrDimensionMismatch for ragged input.
func Centroid(points [][]float64) ([]float64, error) {
	if len(points) == 0 {
		return nil, ErrEmpty
	}
	d := len(points[0])
	out := make([]float64, d)
	for i, p := range points {
		if len(p) != d {
			return nil, fmt.Errorf("Centroid: point %d: %w", i, ErrDimensionMismatch)
		}
		floats.Add(out, p)
	}
	floats.Scale(1/float64(len(points)), out)

	return out, nil
}

// Quantize maps a point to a string key by rounding each coordinate to a
// multiple of step. Points within step/2 of each other per coordinate map to
// the same key except across rounding boundaries; callers pick step well
// above accumulated error and well below the minimum feature distance.
func Quantize(p []float64, step float64) string {
	buf := make([]byte, 0, len(p)*8)
	for i, x := range p {
		if i > 0 {
			buf = append(buf, ',')
		}
		q := math.Round(x / step)
		if q == 0 {
			q = 0 // fold -0
		}
		buf = fmt.Appendf(buf, "%d", int64(q))
	}

	return string(buf)
}
