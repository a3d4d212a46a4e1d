package concrete

import (
	"fmt"

	"github.com/katalvlaran/polytope/geometry"
	"github.com/katalvlaran/polytope/matrix"
)

// AffineTransform returns the polytope with every vertex v mapped to
// m·v + translation. m has one column per current coordinate; its row count
// becomes the new dimension. A nil translation means none.
//
// Errors:
//   - matrix.ErrNilMatrix for a nil m.
//   - ErrDimensionMismatch when m or translation do not fit.
func (p *Polytope) AffineTransform(m matrix.Matrix, translation []float64) (*Polytope, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, concreteErrorf("AffineTransform", err)
	}
	if m.Cols() != p.dim {
		return nil, concreteErrorf("AffineTransform", fmt.Errorf("matrix has %d columns for dimension %d: %w",
			m.Cols(), p.dim, ErrDimensionMismatch))
	}
	if translation != nil && len(translation) != m.Rows() {
		return nil, concreteErrorf("AffineTransform", fmt.Errorf("translation of length %d for dimension %d: %w",
			len(translation), m.Rows(), ErrDimensionMismatch))
	}
	out := make([][]float64, len(p.vertices))
	for i, v := range p.vertices {
		w, err := matrix.MatVec(m, v)
		if err != nil {
			return nil, concreteErrorf("AffineTransform", err)
		}
		if translation != nil {
			w = geometry.Add(w, translation)
		}
		out[i] = w
	}

	return derive(p.abs.Clone(), out, m.Rows(), p.eps), nil
}

// Translate moves every vertex by v.
func (p *Polytope) Translate(v []float64) (*Polytope, error) {
	if len(v) != p.dim {
		return nil, concreteErrorf("Translate", fmt.Errorf("vector of length %d for dimension %d: %w",
			len(v), p.dim, ErrDimensionMismatch))
	}
	out := make([][]float64, len(p.vertices))
	for i, w := range p.vertices {
		out[i] = geometry.Add(w, v)
	}

	return derive(p.abs.Clone(), out, p.dim, p.eps), nil
}

// Scale multiplies every coordinate by k.
func (p *Polytope) Scale(k float64) *Polytope {
	out := make([][]float64, len(p.vertices))
	for i, w := range p.vertices {
		out[i] = geometry.Scaled(w, k)
	}

	return derive(p.abs.Clone(), out, p.dim, p.eps)
}

// Recenter translates the polytope so that its gravicenter is the origin.
func (p *Polytope) Recenter() (*Polytope, error) {
	g, err := p.Gravicenter()
	if err != nil {
		return nil, concreteErrorf("Recenter", err)
	}

	return p.Translate(geometry.Scaled(g, -1))
}
