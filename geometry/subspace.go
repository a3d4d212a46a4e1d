package geometry

import (
	"gonum.org/v1/gonum/floats"
)

// Subspace is an affine subspace: an offset point plus an orthonormal basis
// of directions. It grows one direction at a time through Add.
type Subspace struct {
	Offset []float64   // a point on the subspace
	Basis  [][]float64 // orthonormal directions
	tol    float64     // residual length below which a point counts as inside
}

// NewSubspace starts a 0-dimensional subspace at offset with the given
// absolute tolerance.
func NewSubspace(offset []float64, tol float64) *Subspace {
	return &Subspace{Offset: Clone(offset), tol: tol}
}

// SubspaceOf spans every point in points. It returns nil for no points.
func SubspaceOf(points [][]float64, tol float64) *Subspace {
	if len(points) == 0 {
		return nil
	}
	s := NewSubspace(points[0], tol)
	for _, p := range points[1:] {
		s.Add(p)
	}

	return s
}

// Rank returns the number of basis directions.
func (s *Subspace) Rank() int { return len(s.Basis) }

// Dimension returns the ambient dimension.
func (s *Subspace) Dimension() int { return len(s.Offset) }

// IsFull reports whether the subspace spans the whole ambient space.
func (s *Subspace) IsFull() bool { return s.Rank() == s.Dimension() }

// residual returns p-offset with every basis component removed.
func (s *Subspace) residual(p []float64) []float64 {
	r := Sub(p, s.Offset)
	for _, b := range s.Basis {
		floats.AddScaled(r, -floats.Dot(r, b), b)
	}

	return r
}

// Add extends the subspace with p by one Gram–Schmidt step. It returns the
// new unit direction, or nil when p already lies in the subspace.
func (s *Subspace) Add(p []float64) []float64 {
	if s.IsFull() {
		return nil
	}
	r := s.residual(p)
	// second pass keeps the basis orthogonal under cancellation
	for _, b := range s.Basis {
		floats.AddScaled(r, -floats.Dot(r, b), b)
	}
	n := Norm(r)
	if n <= s.tol {
		return nil
	}
	floats.Scale(1/n, r)
	s.Basis = append(s.Basis, r)

	return r
}

// DistanceTo returns the distance from p to the subspace.
func (s *Subspace) DistanceTo(p []float64) float64 { return Norm(s.residual(p)) }

// Contains reports whether p lies in the subspace within tolerance.
func (s *Subspace) Contains(p []float64) bool { return s.DistanceTo(p) <= s.tol }

// Project returns the closest point of the subspace to p.
func (s *Subspace) Project(p []float64) []float64 {
	return Sub(p, s.residual(p))
}

// Coordinates expresses p (projected) in the subspace's own basis.
func (s *Subspace) Coordinates(p []float64) []float64 {
	d := Sub(p, s.Offset)
	out := make([]float64, len(s.Basis))
	for i, b := range s.Basis {
		out[i] = floats.Dot(d, b)
	}

	return out
}
