// Package concrete: sentinel error set.
// Errors from the abstract layer pass through wrapped, so callers can match
// abstract.ErrInvalidOperand and friends as well as the sentinels below.

package concrete

import (
	"errors"
	"fmt"
)

var (
	// ErrVertexCount indicates the coordinate list does not match the number
	// of rank-0 elements.
	ErrVertexCount = errors.New("concrete: vertex count does not match the abstract polytope")

	// ErrDimensionMismatch indicates vertices, matrices or vectors of
	// incompatible lengths.
	ErrDimensionMismatch = errors.New("concrete: dimension mismatch")

	// ErrNaNInf indicates a non-finite coordinate.
	ErrNaNInf = errors.New("concrete: NaN or Inf coordinate")

	// ErrDegenerate indicates coincident vertices, zero-length edges,
	// coinciding elements, or a facet through the centre of reciprocation.
	ErrDegenerate = errors.New("concrete: degenerate polytope")

	// ErrNoCircumsphere indicates the vertices do not lie on a common sphere.
	ErrNoCircumsphere = errors.New("concrete: vertices are not concyclic")

	// ErrNoMidsphere indicates the edges are not all tangent to one sphere
	// about the circumcentre.
	ErrNoMidsphere = errors.New("concrete: edges are not tangent to a common sphere")

	// ErrNilPolytope indicates a nil *Polytope operand.
	ErrNilPolytope = errors.New("concrete: nil polytope")
)

// DegenerateError reports the first pair of distinct elements of the same
// Rank found to coincide. For Rank 1, First is the zero-length edge and
// Second is -1.
type DegenerateError struct {
	Rank   int
	First  int
	Second int
}

func (e *DegenerateError) Error() string {
	if e.Second < 0 {
		return fmt.Sprintf("concrete: degenerate polytope: element %d of rank %d has zero size", e.First, e.Rank)
	}

	return fmt.Sprintf("concrete: degenerate polytope: elements %d and %d of rank %d coincide",
		e.First, e.Second, e.Rank)
}

// Unwrap lets errors.Is(err, ErrDegenerate) match.
func (e *DegenerateError) Unwrap() error { return ErrDegenerate }

// concreteErrorf tags err with the failing operation.
func concreteErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
