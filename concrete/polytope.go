// SPDX-License-Identifier: MIT

package concrete

import (
	"fmt"
	"math"

	"github.com/katalvlaran/polytope/abstract"
	"github.com/katalvlaran/polytope/geometry"
)

// Polytope is an abstract polytope together with one coordinate vector per
// vertex. Vertex i of the coordinates is rank-0 element i of the abstract
// structure. A Polytope is immutable; every operator returns a new value.
type Polytope struct {
	abs      *abstract.Abstract
	vertices [][]float64
	dim      int
	eps      float64
}

// New attaches coordinates to abs. Both arguments are copied.
//
// Errors:
//   - ErrNilPolytope for a nil abs.
//   - ErrVertexCount when len(vertices) != abs.ElementCount(0).
//   - ErrDimensionMismatch for vertices of different lengths.
//   - ErrNaNInf for non-finite coordinates.
func New(abs *abstract.Abstract, vertices [][]float64, opts ...Option) (*Polytope, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if abs == nil {
		return nil, concreteErrorf("New", ErrNilPolytope)
	}
	if len(vertices) != abs.ElementCount(0) {
		return nil, concreteErrorf("New", fmt.Errorf("%d coordinates for %d vertices: %w",
			len(vertices), abs.ElementCount(0), ErrVertexCount))
	}
	dim := 0
	if len(vertices) > 0 {
		dim = len(vertices[0])
	}
	vs := make([][]float64, len(vertices))
	for i, v := range vertices {
		if len(v) != dim {
			return nil, concreteErrorf("New", fmt.Errorf("vertex %d has %d coordinates, want %d: %w",
				i, len(v), dim, ErrDimensionMismatch))
		}
		for _, x := range v {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return nil, concreteErrorf("New", fmt.Errorf("vertex %d: %w", i, ErrNaNInf))
			}
		}
		vs[i] = geometry.Clone(v)
	}

	return &Polytope{abs: abs.Clone(), vertices: vs, dim: dim, eps: o.eps}, nil
}

// derive wraps freshly computed parts without copying; callers hand over
// ownership.
func derive(abs *abstract.Abstract, vertices [][]float64, dim int, eps float64) *Polytope {
	return &Polytope{abs: abs, vertices: vertices, dim: dim, eps: eps}
}

// Abstract returns a copy of the underlying incidence structure.
func (p *Polytope) Abstract() *abstract.Abstract { return p.abs.Clone() }

// Rank returns the rank of the polytope.
func (p *Polytope) Rank() int { return p.abs.Rank() }

// Dimension returns the number of coordinates per vertex.
func (p *Polytope) Dimension() int { return p.dim }

// Epsilon returns the relative tolerance in use.
func (p *Polytope) Epsilon() float64 { return p.eps }

// ElementCount is a shortcut for the abstract element count.
func (p *Polytope) ElementCount(r int) int { return p.abs.ElementCount(r) }

// Vertices returns a copy of the coordinates.
func (p *Polytope) Vertices() [][]float64 {
	out := make([][]float64, len(p.vertices))
	for i, v := range p.vertices {
		out[i] = geometry.Clone(v)
	}

	return out
}

// Vertex returns a copy of vertex i.
func (p *Polytope) Vertex(i int) ([]float64, error) {
	if i < 0 || i >= len(p.vertices) {
		return nil, concreteErrorf("Vertex", fmt.Errorf("index %d: %w", i, abstract.ErrOutOfRange))
	}

	return geometry.Clone(p.vertices[i]), nil
}

// ElementVertices returns the coordinates of the vertices of element (r, i),
// in ascending vertex index order, together with those indices.
func (p *Polytope) ElementVertices(r, i int) ([]int, [][]float64, error) {
	all, err := p.abs.Vertices(r)
	if err != nil {
		return nil, nil, concreteErrorf("ElementVertices", err)
	}
	if i < 0 || i >= len(all) {
		return nil, nil, concreteErrorf("ElementVertices", fmt.Errorf("rank %d index %d: %w", r, i, abstract.ErrOutOfRange))
	}
	idx := all[i]
	pts := make([][]float64, len(idx))
	for k, v := range idx {
		pts[k] = geometry.Clone(p.vertices[v])
	}

	return idx, pts, nil
}

// Validate checks the abstract structure and then rejects degenerate
// realizations.
func (p *Polytope) Validate() error {
	if err := p.abs.Validate(); err != nil {
		return concreteErrorf("Validate", err)
	}

	return p.CheckDegenerate()
}

// tol is the absolute tolerance for this polytope's coordinates.
func (p *Polytope) tol() float64 { return geometry.Tolerance(p.eps, p.vertices) }
