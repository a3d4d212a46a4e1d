package concrete

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/polytope/geometry"
)

// Circumsphere returns the hypersphere through every vertex. The second
// result is false when the vertices are not concyclic within tolerance.
func (p *Polytope) Circumsphere() (geometry.Hypersphere, bool) {
	return geometry.Circumsphere(p.vertices, p.tol())
}

// Circumradius returns the radius of the circumsphere.
//
// Errors:
//   - ErrNoCircumsphere when the vertices are not concyclic.
func (p *Polytope) Circumradius() (float64, error) {
	s, ok := p.Circumsphere()
	if !ok {
		return 0, concreteErrorf("Circumradius", ErrNoCircumsphere)
	}

	return s.Radius, nil
}

// Midradius returns the common distance from the circumcentre to the lines
// through every edge.
//
// Errors:
//   - ErrNoCircumsphere when the vertices are not concyclic.
//   - ErrNoMidsphere when there are no edges or the distances differ.
func (p *Polytope) Midradius() (float64, error) {
	s, ok := p.Circumsphere()
	if !ok {
		return 0, concreteErrorf("Midradius", ErrNoCircumsphere)
	}
	edges, err := p.abs.Vertices(1)
	if err != nil || len(edges) == 0 {
		return 0, concreteErrorf("Midradius", ErrNoMidsphere)
	}
	tol := p.tol()
	m := -1.0
	for i, e := range edges {
		line := geometry.SubspaceOf([][]float64{p.vertices[e[0]], p.vertices[e[1]]}, tol)
		dist := line.DistanceTo(s.Center)
		if m < 0 {
			m = dist
		} else if !geometry.Approx(dist, m, tol) {
			return 0, concreteErrorf("Midradius", fmt.Errorf("edge %d at %g, edge 0 at %g: %w", i, dist, m, ErrNoMidsphere))
		}
	}

	return m, nil
}

// EdgeLength returns the length of edge i.
func (p *Polytope) EdgeLength(i int) (float64, error) {
	subs, err := p.abs.Subelements(1, i)
	if err != nil {
		return 0, concreteErrorf("EdgeLength", err)
	}
	if len(subs) != 2 {
		return 0, concreteErrorf("EdgeLength", fmt.Errorf("edge %d has %d endpoints: %w", i, len(subs), ErrDegenerate))
	}

	return geometry.Distance(p.vertices[subs[0]], p.vertices[subs[1]]), nil
}

// EdgeLengths returns the length of every edge, indexed like the edges.
func (p *Polytope) EdgeLengths() ([]float64, error) {
	out := make([]float64, p.abs.ElementCount(1))
	for i := range out {
		l, err := p.EdgeLength(i)
		if err != nil {
			return nil, err
		}
		out[i] = l
	}

	return out, nil
}

// IsEquilateral reports whether every edge has the same length within
// tolerance. Polytopes without edges are equilateral.
func (p *Polytope) IsEquilateral() bool {
	ls, err := p.EdgeLengths()
	if err != nil {
		return false
	}
	tol := p.tol()
	for _, l := range ls {
		if !geometry.Approx(l, ls[0], tol) {
			return false
		}
	}

	return true
}

// Gravicenter returns the mean of the vertices.
func (p *Polytope) Gravicenter() ([]float64, error) {
	g, err := geometry.Centroid(p.vertices)
	if err != nil {
		return nil, concreteErrorf("Gravicenter", err)
	}

	return g, nil
}

// IsFlat reports whether the vertices span fewer dimensions than the rank,
// i.e. the realization is squashed into a lower-dimensional subspace.
func (p *Polytope) IsFlat() bool {
	if len(p.vertices) == 0 {
		return false
	}

	return geometry.SubspaceOf(p.vertices, p.tol()).Rank() < p.Rank()
}

// IsDegenerate reports whether CheckDegenerate finds a defect.
func (p *Polytope) IsDegenerate() bool { return p.CheckDegenerate() != nil }

// CheckDegenerate looks for distinct elements that coincide.
// MAIN DESCRIPTION:
//   - zero-length edges;
//   - distinct vertices at the same position;
//   - distinct elements of rank 1..d-1 spanned by the same vertex set.
//
// Implementation:
//   - Stage 1: edge lengths against the tolerance.
//   - Stage 2: sort vertices along the first axis and sweep a window of
//     width tol, comparing full distances only inside the window.
//   - Stage 3: key every element by its sorted vertex set.
//
// Errors:
//   - *DegenerateError (matching ErrDegenerate) for the first defect.
//
// Complexity:
//   - Time O(V log V + V·w + Σ|vertex sets|) with w the window size.
func (p *Polytope) CheckDegenerate() error {
	tol := p.tol()
	for i := 0; i < p.abs.ElementCount(1); i++ {
		l, err := p.EdgeLength(i)
		if err != nil {
			return concreteErrorf("CheckDegenerate", err)
		}
		if l <= tol {
			return concreteErrorf("CheckDegenerate", &DegenerateError{Rank: 1, First: i, Second: -1})
		}
	}

	if p.dim > 0 {
		order := make([]int, len(p.vertices))
		for i := range order {
			order[i] = i
		}
		slices.SortStableFunc(order, func(a, b int) int {
			switch x, y := p.vertices[a][0], p.vertices[b][0]; {
			case x < y:
				return -1
			case x > y:
				return 1
			}

			return a - b
		})
		for k, i := range order {
			for _, j := range order[k+1:] {
				if p.vertices[j][0]-p.vertices[i][0] > tol {
					break
				}
				if geometry.Distance(p.vertices[i], p.vertices[j]) <= tol {
					return concreteErrorf("CheckDegenerate", &DegenerateError{Rank: 0, First: min(i, j), Second: max(i, j)})
				}
			}
		}
	} else if len(p.vertices) > 1 {
		return concreteErrorf("CheckDegenerate", &DegenerateError{Rank: 0, First: 0, Second: 1})
	}

	for r := 1; r < p.Rank(); r++ {
		sets, err := p.abs.Vertices(r)
		if err != nil {
			return concreteErrorf("CheckDegenerate", err)
		}
		seen := make(map[string]int, len(sets))
		for i, s := range sets {
			key := fmt.Sprint(s)
			if j, ok := seen[key]; ok {
				return concreteErrorf("CheckDegenerate", &DegenerateError{Rank: r, First: j, Second: i})
			}
			seen[key] = i
		}
	}

	return nil
}
