package abstract

import (
	"fmt"
	"slices"
)

// PetrialOption configures Petrial.
type PetrialOption func(*petrialOptions)

type petrialOptions struct {
	revalidate bool
}

// WithRevalidate makes Petrial run Validate on its result and fail with the
// validation error instead of returning a non-polytopal structure.
func WithRevalidate(on bool) PetrialOption {
	return func(o *petrialOptions) { o.revalidate = on }
}

// PetriePolygon walks the Petrie polygon through flag f of a polyhedron by
// applying the 0-, 1- and 2-changes in turn until f recurs. It returns the
// visited vertices and, in the same order, the edges leading to them.
//
// Errors:
//   - ErrInvalidOperand when a is not of rank 3, or when the walk revisits a
//     vertex before closing (the polygon would not be simple).
//   - *BrokenDiamondError when a flag change is not defined.
func (a *Abstract) PetriePolygon(f Flag) (vertices, edges []int, err error) {
	if a.Rank() != 3 {
		return nil, nil, fmt.Errorf("PetriePolygon: rank %d: %w", a.Rank(), ErrInvalidOperand)
	}
	vertices, edges, _, err = a.petrieWalk(f)

	return vertices, edges, err
}

// petrieWalk also returns every flag the walk stood on after a full round.
func (a *Abstract) petrieWalk(start Flag) (vertices, edges []int, visited []Flag, err error) {
	c := a.whole()
	f := slices.Clone(start)
	seen := make(map[int]bool)
	limit := 2 * a.ElementCount(1) // a Petrie polygon uses each edge at most once
	for step := 0; ; step++ {
		if step > limit {
			return nil, nil, nil, fmt.Errorf("PetriePolygon: walk does not close: %w", ErrInvalidOperand)
		}
		for k := 0; k < 3; k++ {
			other, cerr := c.change(f, k)
			if cerr != nil {
				return nil, nil, nil, cerr
			}
			f[k] = other
			if k == 0 {
				edges = append(edges, f[1])
			}
		}
		v := f[0]
		if seen[v] {
			return nil, nil, nil, fmt.Errorf("PetriePolygon: vertex %d revisited: %w", v, ErrInvalidOperand)
		}
		seen[v] = true
		vertices = append(vertices, v)
		visited = append(visited, slices.Clone(f))
		if slices.Equal(f, start) {
			return vertices, edges, visited, nil
		}
	}
}

// Petrial returns the Petrial of a polyhedron: same vertices and edges, with
// the faces replaced by the Petrie polygons.
// MAIN DESCRIPTION:
//   - A Petrie polygon is a closed edge path in which every two consecutive
//     edges, but no three, share a face.
//
// Implementation:
//   - Stage 1: walk the Petrie polygon of every flag not yet covered by an
//     earlier walk, in Flags() order.
//   - Stage 2: de-duplicate polygons by their edge sets (each polygon is met
//     once per direction).
//   - Stage 3: rebuild vertices/edges unchanged, the polygons as faces, and
//     a body over all of them.
//
// Behavior highlights:
//   - The result is not validated unless WithRevalidate(true) is given: the
//     Petrial of a polytope need not be a polytope.
//
// Errors:
//   - ErrInvalidOperand for ranks other than 3 or non-simple Petrie polygons.
//   - Validation errors when revalidation is requested.
func (a *Abstract) Petrial(opts ...PetrialOption) (*Abstract, error) {
	var o petrialOptions
	for _, opt := range opts {
		opt(&o)
	}
	if a.Rank() != 3 {
		return nil, fmt.Errorf("Petrial: rank %d: %w", a.Rank(), ErrInvalidOperand)
	}

	covered := make(map[string]bool)
	faces := make(map[string]bool)
	var faceList [][]int
	for f := range a.Flags() {
		if covered[f.key()] {
			continue
		}
		_, edges, visited, err := a.petrieWalk(f)
		if err != nil {
			return nil, fmt.Errorf("Petrial: %w", err)
		}
		for _, g := range visited {
			covered[g.key()] = true
		}
		slices.Sort(edges)
		key := Flag(edges).key()
		if !faces[key] {
			faces[key] = true
			faceList = append(faceList, edges)
		}
	}

	b := NewBuilder()
	edgeSubs := make([][]int, a.ElementCount(1))
	for i := range edgeSubs {
		edgeSubs[i] = a.get(1, i).Subs
	}
	steps := []func() error{
		b.PushMin,
		func() error { return b.PushVertices(a.ElementCount(0)) },
		func() error { return b.Push(edgeSubs) },
		func() error { return b.Push(faceList) },
		b.PushMax,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, fmt.Errorf("Petrial: %w", err)
		}
	}
	out, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("Petrial: %w", err)
	}
	if o.revalidate {
		if err = out.Validate(); err != nil {
			return nil, fmt.Errorf("Petrial: %w", err)
		}
	}

	return out, nil
}
