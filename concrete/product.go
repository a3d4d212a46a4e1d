package concrete

import (
	"fmt"

	"github.com/katalvlaran/polytope/abstract"
	"github.com/katalvlaran/polytope/geometry"
)

// The abstract products lay vertices out as follows, and the coordinate
// lists below must follow the same order:
//
//	pyramid  Q's vertices, then P's
//	tegum    Q's vertices (if rank Q ≥ 1), then P's (if rank P ≥ 1)
//	prism    pair (i, j) at index i·|Q₀| + j
//	comb     as prism

func checkPair(op string, p, q *Polytope) error {
	if p == nil || q == nil {
		return concreteErrorf(op, ErrNilPolytope)
	}

	return nil
}

// pairEps keeps the coarser tolerance of the two operands.
func pairEps(p, q *Polytope) float64 { return max(p.eps, q.eps) }

// Duopyramid returns the pyramid product of p and q with q's vertices lifted
// to +height/2 and p's lowered to -height/2 along a new last axis; p and q
// occupy complementary coordinate blocks.
func Duopyramid(p, q *Polytope, height float64) (*Polytope, error) {
	if err := checkPair("Duopyramid", p, q); err != nil {
		return nil, err
	}
	abs := abstract.Duopyramid(p.abs, q.abs)
	dim := p.dim + q.dim + 1
	out := make([][]float64, 0, len(p.vertices)+len(q.vertices))
	for _, v := range q.vertices {
		w := geometry.Pad(v, p.dim, 1)
		w[dim-1] = height / 2
		out = append(out, w)
	}
	for _, v := range p.vertices {
		w := geometry.Pad(v, 0, q.dim+1)
		w[dim-1] = -height / 2
		out = append(out, w)
	}

	return derive(abs, out, dim, pairEps(p, q)), nil
}

// Pyramid returns the pyramid over p with its apex at height above the
// gravicenter of p, on a new last axis. The apex is vertex 0.
func Pyramid(p *Polytope, height float64) (*Polytope, error) {
	if p == nil {
		return nil, concreteErrorf("Pyramid", ErrNilPolytope)
	}
	g := make([]float64, p.dim)
	if len(p.vertices) > 0 {
		var err error
		if g, err = p.Gravicenter(); err != nil {
			return nil, concreteErrorf("Pyramid", err)
		}
	}
	out := make([][]float64, 0, len(p.vertices)+1)
	out = append(out, append(g, height))
	for _, v := range p.vertices {
		out = append(out, geometry.Pad(v, 0, 1))
	}

	return derive(p.abs.Pyramid(), out, p.dim+1, p.eps), nil
}

// Duoprism returns the Cartesian product of p and q: vertex (i, j) sits at
// the concatenation of p's vertex i and q's vertex j.
func Duoprism(p, q *Polytope) (*Polytope, error) {
	if err := checkPair("Duoprism", p, q); err != nil {
		return nil, err
	}
	abs, err := abstract.Duoprism(p.abs, q.abs)
	if err != nil {
		return nil, concreteErrorf("Duoprism", err)
	}

	return derive(abs, concatPairs(p, q), p.dim+q.dim, pairEps(p, q)), nil
}

// Prism returns the prism of height height over p.
func Prism(p *Polytope, height float64) (*Polytope, error) {
	if p == nil {
		return nil, concreteErrorf("Prism", ErrNilPolytope)
	}

	return Duoprism(p, Dyad(height))
}

// Duotegum returns the direct sum of p and q: both embedded in
// complementary coordinate blocks, sharing the origin. p and q should
// contain the origin in their interiors for the result to be convex.
func Duotegum(p, q *Polytope) (*Polytope, error) {
	if err := checkPair("Duotegum", p, q); err != nil {
		return nil, err
	}
	abs, err := abstract.Duotegum(p.abs, q.abs)
	if err != nil {
		return nil, concreteErrorf("Duotegum", err)
	}
	var out [][]float64
	if q.Rank() >= 1 {
		for _, v := range q.vertices {
			out = append(out, geometry.Pad(v, p.dim, 0))
		}
	}
	if p.Rank() >= 1 {
		for _, v := range p.vertices {
			out = append(out, geometry.Pad(v, 0, q.dim))
		}
	}
	if len(out) != abs.ElementCount(0) {
		return nil, concreteErrorf("Duotegum", fmt.Errorf("%d coordinates for %d vertices: %w",
			len(out), abs.ElementCount(0), ErrVertexCount))
	}

	return derive(abs, out, p.dim+q.dim, pairEps(p, q)), nil
}

// Tegum returns the bipyramid over p with apexes at ±height/2.
func Tegum(p *Polytope, height float64) (*Polytope, error) {
	if p == nil {
		return nil, concreteErrorf("Tegum", ErrNilPolytope)
	}

	return Duotegum(p, Dyad(height))
}

// Duocomb returns the comb product of p and q. Vertices are placed as in
// Duoprism.
func Duocomb(p, q *Polytope) (*Polytope, error) {
	if err := checkPair("Duocomb", p, q); err != nil {
		return nil, err
	}
	abs, err := abstract.Duocomb(p.abs, q.abs)
	if err != nil {
		return nil, concreteErrorf("Duocomb", err)
	}

	return derive(abs, concatPairs(p, q), p.dim+q.dim, pairEps(p, q)), nil
}

func concatPairs(p, q *Polytope) [][]float64 {
	out := make([][]float64, 0, len(p.vertices)*len(q.vertices))
	for _, v := range p.vertices {
		for _, w := range q.vertices {
			out = append(out, geometry.Concat(v, w))
		}
	}

	return out
}

// Multiprism folds Duoprism over ps, starting from the point.
func Multiprism(ps ...*Polytope) (*Polytope, error) {
	out := Point()
	for _, p := range ps {
		var err error
		if out, err = Duoprism(out, p); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Multitegum folds Duotegum over ps, starting from the point.
func Multitegum(ps ...*Polytope) (*Polytope, error) {
	out := Point()
	for _, p := range ps {
		var err error
		if out, err = Duotegum(out, p); err != nil {
			return nil, err
		}
	}

	return out, nil
}
