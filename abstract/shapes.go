package abstract

import "fmt"

// Nullitope returns the rank -1 polytope: a single empty element.
func Nullitope() *Abstract {
	return &Abstract{ranks: []ElementList{{{}}}}
}

// Point returns the rank 0 polytope.
func Point() *Abstract {
	return &Abstract{ranks: []ElementList{
		{{Sups: []int{0}}},
		{{Subs: []int{0}}},
	}}
}

// Dyad returns the rank 1 polytope: a segment with two endpoints.
func Dyad() *Abstract {
	return &Abstract{ranks: []ElementList{
		{{Sups: []int{0, 1}}},
		{{Subs: []int{0}, Sups: []int{0}}, {Subs: []int{0}, Sups: []int{0}}},
		{{Subs: []int{0, 1}}},
	}}
}

// Polygon returns the n-gon: vertices 0..n-1, edge i joining vertices i and
// i+1 (mod n).
//
// Errors:
//   - ErrInvalidOperand for n < 2.
func Polygon(n int) (*Abstract, error) {
	if n < 2 {
		return nil, fmt.Errorf("Polygon(%d): %w", n, ErrInvalidOperand)
	}
	edges := make([][]int, n)
	for i := range edges {
		edges[i] = []int{i, (i + 1) % n}
	}
	b := NewBuilder()
	_ = b.PushMin()
	_ = b.PushVertices(n)
	if err := b.Push(edges); err != nil {
		return nil, err
	}
	_ = b.PushMax()

	return b.Build()
}

// Simplex returns the rank r simplex, the pyramid over the (r-1)-simplex.
func Simplex(r int) (*Abstract, error) {
	if r < -1 {
		return nil, fmt.Errorf("Simplex(%d): %w", r, ErrInvalidOperand)
	}
	points := make([]*Abstract, r+1)
	for i := range points {
		points[i] = Point()
	}

	return Multipyramid(points...), nil
}

// Hypercube returns the rank r hypercube, the prism product of r dyads.
func Hypercube(r int) (*Abstract, error) {
	if r < 0 {
		return nil, fmt.Errorf("Hypercube(%d): %w", r, ErrInvalidOperand)
	}
	dyads := make([]*Abstract, r)
	for i := range dyads {
		dyads[i] = Dyad()
	}

	return Multiprism(dyads...)
}

// Orthoplex returns the rank r orthoplex, the tegum product of r dyads.
func Orthoplex(r int) (*Abstract, error) {
	if r < 0 {
		return nil, fmt.Errorf("Orthoplex(%d): %w", r, ErrInvalidOperand)
	}
	dyads := make([]*Abstract, r)
	for i := range dyads {
		dyads[i] = Dyad()
	}

	return Multitegum(dyads...)
}
