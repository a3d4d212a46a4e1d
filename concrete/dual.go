package concrete

import (
	"fmt"

	"github.com/katalvlaran/polytope/abstract"
	"github.com/katalvlaran/polytope/geometry"
)

// Dual returns the reciprocal of p with respect to sphere.
// MAIN DESCRIPTION:
//   - The abstract part is abstract.Dual, so facet i of p becomes vertex i
//     of the result.
//   - Vertex i is the pole of facet i's hyperplane: the point closest to the
//     centre on that hyperplane, reciprocated through the sphere.
//
// Errors:
//   - abstract.ErrInvalidOperand for rank below 1.
//   - ErrDimensionMismatch when p is not full-rank in its space, or the
//     sphere centre has the wrong length.
//   - *DegenerateError (ErrDegenerate) when a facet does not span a
//     hyperplane or its hyperplane passes through the centre.
//
// Complexity:
//   - Time O(F·v·d²) for F facets of at most v vertices.
func (p *Polytope) Dual(sphere geometry.Hypersphere) (*Polytope, error) {
	d := p.Rank()
	if d < 1 {
		return nil, concreteErrorf("Dual", fmt.Errorf("rank %d: %w", d, abstract.ErrInvalidOperand))
	}
	if p.dim != d || len(sphere.Center) != p.dim {
		return nil, concreteErrorf("Dual", fmt.Errorf("rank %d in dimension %d, centre of length %d: %w",
			d, p.dim, len(sphere.Center), ErrDimensionMismatch))
	}
	tol := p.tol()
	facets, err := p.abs.Vertices(d - 1)
	if err != nil {
		return nil, concreteErrorf("Dual", err)
	}
	out := make([][]float64, len(facets))
	for i, vs := range facets {
		pts := make([][]float64, len(vs))
		for k, v := range vs {
			pts[k] = p.vertices[v]
		}
		plane := geometry.SubspaceOf(pts, tol)
		if plane.Rank() != p.dim-1 {
			return nil, concreteErrorf("Dual", &DegenerateError{Rank: d - 1, First: i, Second: -1})
		}
		foot := plane.Project(sphere.Center)
		pole, ok := sphere.Reciprocate(foot, tol)
		if !ok {
			return nil, concreteErrorf("Dual", fmt.Errorf("facet %d passes through the centre: %w", i, &DegenerateError{Rank: d - 1, First: i, Second: -1}))
		}
		out[i] = pole
	}

	return derive(p.abs.Dual(), out, p.dim, p.eps), nil
}

// Petrial returns the Petrial of a polyhedron with its coordinates kept.
func (p *Polytope) Petrial(opts ...abstract.PetrialOption) (*Polytope, error) {
	abs, err := p.abs.Petrial(opts...)
	if err != nil {
		return nil, concreteErrorf("Petrial", err)
	}

	return derive(abs, p.Vertices(), p.dim, p.eps), nil
}

// ElementPolytope returns element (r, i) as a polytope in its own right,
// keeping the coordinates of its vertices.
func (p *Polytope) ElementPolytope(r, i int) (*Polytope, error) {
	abs, err := p.abs.ElementPolytope(r, i)
	if err != nil {
		return nil, concreteErrorf("ElementPolytope", err)
	}
	_, pts, err := p.ElementVertices(r, i)
	if err != nil {
		return nil, err
	}

	return derive(abs, pts, p.dim, p.eps), nil
}

// Facet returns facet i as a polytope.
func (p *Polytope) Facet(i int) (*Polytope, error) { return p.ElementPolytope(p.Rank()-1, i) }
