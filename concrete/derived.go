package concrete

import (
	"fmt"
	"math"

	"github.com/katalvlaran/polytope/abstract"
	"github.com/katalvlaran/polytope/geometry"
)

// AntiprismSphere returns the sphere about the gravicenter of p whose
// reciprocation gives a dual with the circumradius of p. For a regular p
// this is the sphere of the uniform antiprism.
//
// Errors:
//   - ErrNoCircumsphere or ErrNoMidsphere from Midradius.
func (p *Polytope) AntiprismSphere() (geometry.Hypersphere, error) {
	r, err := p.Circumradius()
	if err != nil {
		return geometry.Hypersphere{}, concreteErrorf("AntiprismSphere", err)
	}
	m, err := p.Midradius()
	if err != nil {
		return geometry.Hypersphere{}, concreteErrorf("AntiprismSphere", err)
	}
	g, err := p.Gravicenter()
	if err != nil {
		return geometry.Hypersphere{}, concreteErrorf("AntiprismSphere", err)
	}

	return geometry.Hypersphere{Center: g, Radius: math.Sqrt(r * m)}, nil
}

// Antiprism returns the antiprism of p: p lifted to +height/2 on a new last
// axis, and its dual with respect to sphere lowered to -height/2. The
// vertices of p come first, then the dual vertex of every facet in facet
// order.
//
// Errors:
//   - ErrNilPolytope for a nil p.
//   - anything Dual returns for p and sphere.
func Antiprism(p *Polytope, sphere geometry.Hypersphere, height float64) (*Polytope, error) {
	if p == nil {
		return nil, concreteErrorf("Antiprism", ErrNilPolytope)
	}
	dual, err := p.Dual(sphere)
	if err != nil {
		return nil, concreteErrorf("Antiprism", err)
	}
	abs, err := p.abs.Antiprism()
	if err != nil {
		return nil, concreteErrorf("Antiprism", err)
	}
	out := make([][]float64, 0, len(p.vertices)+len(dual.vertices))
	for _, v := range p.vertices {
		w := geometry.Pad(v, 0, 1)
		w[p.dim] = height / 2
		out = append(out, w)
	}
	for _, v := range dual.vertices {
		w := geometry.Pad(v, 0, 1)
		w[p.dim] = -height / 2
		out = append(out, w)
	}

	return derive(abs, out, p.dim+1, p.eps), nil
}

// Compound places the components together, keeping every coordinate. The
// vertices of ps[0] come first, then those of ps[1], and so on.
//
// Errors:
//   - ErrNilPolytope for a nil component.
//   - ErrDimensionMismatch when the components live in different spaces.
//   - abstract.ErrInvalidOperand from abstract.Compound.
func Compound(ps ...*Polytope) (*Polytope, error) {
	abs := make([]*abstract.Abstract, len(ps))
	eps := defaultOptions().eps
	var out [][]float64
	for i, p := range ps {
		if p == nil {
			return nil, concreteErrorf("Compound", ErrNilPolytope)
		}
		if p.dim != ps[0].dim {
			return nil, concreteErrorf("Compound", fmt.Errorf("component %d in dimension %d, component 0 in %d: %w",
				i, p.dim, ps[0].dim, ErrDimensionMismatch))
		}
		abs[i] = p.abs
		eps = max(eps, p.eps)
		for _, v := range p.vertices {
			out = append(out, geometry.Clone(v))
		}
	}
	c, err := abstract.Compound(abs...)
	if err != nil {
		return nil, concreteErrorf("Compound", err)
	}
	dim := 0
	if len(ps) > 0 {
		dim = ps[0].dim
	}

	return derive(c, out, dim, eps), nil
}

// Multicomb folds Duocomb over ps. No operands give the nullitope.
func Multicomb(ps ...*Polytope) (*Polytope, error) {
	if len(ps) == 0 {
		return derive(abstract.Nullitope(), nil, 0, defaultOptions().eps), nil
	}
	if ps[0] == nil {
		return nil, concreteErrorf("Multicomb", ErrNilPolytope)
	}
	out := ps[0]
	for _, p := range ps[1:] {
		var err error
		if out, err = Duocomb(out, p); err != nil {
			return nil, err
		}
	}
	if len(ps) == 1 {
		return derive(out.abs.Clone(), out.Vertices(), out.dim, out.eps), nil
	}

	return out, nil
}
