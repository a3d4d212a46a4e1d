package coxeter

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/polytope/geometry"
	"github.com/katalvlaran/polytope/matrix"
)

// Group is a finite reflection group listed element by element. Element 0
// is the identity; the rest appear in breadth-first order of word length.
// Every element is stored as its matrix on the standard frame, and the
// right-multiplication table by the generators is kept alongside.
type Group struct {
	rank    int
	gens    []matrix.Matrix
	elems   []matrix.Matrix
	product []int // product[e*rank+i] = index of elems[e]·gens[i]
	index   map[string]int
	step    float64
}

// Rank returns the number of generators.
func (g *Group) Rank() int { return g.rank }

// Order returns the number of elements.
func (g *Group) Order() int { return len(g.elems) }

// Element returns a copy of element e's matrix.
func (g *Group) Element(e int) (matrix.Matrix, error) {
	if e < 0 || e >= len(g.elems) {
		return nil, coxeterErrorf("Element", fmt.Errorf("index %d of %d: %w", e, len(g.elems), matrix.ErrOutOfRange))
	}

	return g.elems[e].Clone(), nil
}

// Mul returns the index of element e multiplied on the right by
// generator i.
func (g *Group) Mul(e, i int) int { return g.product[e*g.rank+i] }

// Apply returns element e applied to p.
func (g *Group) Apply(e int, p []float64) ([]float64, error) {
	out, err := matrix.MatVec(g.elems[e], p)
	if err != nil {
		return nil, coxeterErrorf("Apply", err)
	}

	return out, nil
}

// Inverse returns the index of the inverse of element e.
//
// Errors:
//   - matrix.ErrOutOfRange for a bad index.
//   - ErrInfiniteGroup when the inverse matrix is not among the elements,
//     i.e. the tolerance merged or split elements.
func (g *Group) Inverse(e int) (int, error) {
	if e < 0 || e >= len(g.elems) {
		return 0, coxeterErrorf("Inverse", fmt.Errorf("index %d of %d: %w", e, len(g.elems), matrix.ErrOutOfRange))
	}
	inv, err := matrix.Inverse(g.elems[e])
	if err != nil {
		return 0, coxeterErrorf("Inverse", err)
	}
	idx, ok := g.index[geometry.Quantize(inv.(*matrix.Dense).RawData(), g.step)]
	if !ok {
		return 0, coxeterErrorf("Inverse", fmt.Errorf("element %d: %w", e, ErrInfiniteGroup))
	}

	return idx, nil
}

// Generate enumerates the reflection group of d.
// MAIN DESCRIPTION:
//   - Generators are the reflections through the mirror normals from
//     Normals; elements are found breadth-first by right multiplication,
//     starting from the identity.
//   - Two products are the same element when their matrices agree after
//     quantization, i.e. when they act alike on the standard frame.
//
// Implementation:
//   - Stage 1: Classify and compare EstimatedOrder with the cap; realize
//     the mirrors (Cholesky of the Gram matrix). Diagrams with star labels
//     (n/d, d > 1) skip the classification and rely on the cap.
//   - Stage 2: per frontier level, multiply every (frontier element,
//     generator) pair. With WithWorkers(n > 1) the frontier is cut into
//     batches run on an errgroup; each batch writes only its own slots.
//   - Stage 3: merge candidates in (frontier position, generator) order,
//     assigning indices to unseen elements. The merge is sequential, so the
//     numbering does not depend on scheduling.
//   - Stage 4: without an expected order, check that the inverse of every
//     element was found.
//
// Errors:
//   - ErrInfiniteGroup for non-finite diagrams.
//   - ErrTooLarge when the order exceeds WithMaxOrder.
//   - ctx.Err() on cancellation; no partial group is returned.
//
// Complexity:
//   - Time O(|G|·n·n³), Space O(|G|·n²).
func Generate(ctx context.Context, d *Diagram, opts ...Option) (*Group, error) {
	o := collect(opts)
	log := logr.FromContextOrDiscard(ctx).WithValues("diagram", d.String())

	order, err := d.EstimatedOrder()
	switch {
	case err == nil:
		if !order.IsInt64() || order.Int64() > int64(o.maxOrder) {
			return nil, coxeterErrorf("Generate", fmt.Errorf("order %v above cap %d: %w", order, o.maxOrder, ErrTooLarge))
		}
	case d.hasStarLabels():
		// Schwarz-type labels fall outside the classification; the
		// positive-definiteness check and the cap still bound the search.
		order = nil
		log.V(1).Info("star labels, order unknown until generated")
	default:
		return nil, coxeterErrorf("Generate", err)
	}
	normals, err := d.Normals()
	if err != nil {
		return nil, coxeterErrorf("Generate", err)
	}
	n := d.Rank()
	g := &Group{rank: n, gens: make([]matrix.Matrix, n)}
	for i := range g.gens {
		if g.gens[i], err = matrix.Reflection(normals.Row(i)); err != nil {
			return nil, coxeterErrorf("Generate", err)
		}
	}

	step := o.eps * keyScale
	id, err := matrix.Identity(n)
	if err != nil {
		return nil, coxeterErrorf("Generate", err)
	}
	index := map[string]int{geometry.Quantize(id.RawData(), step): 0}
	g.index, g.step = index, step
	g.elems = []matrix.Matrix{id}
	g.product = make([]int, n)
	frontier := []int{0}

	for level := 0; len(frontier) > 0; level++ {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		cands, keys, err := g.expand(ctx, frontier, step, o.workers)
		if err != nil {
			return nil, err
		}
		var next []int
		for k, key := range keys {
			e, gen := frontier[k/n], k%n
			idx, ok := index[key]
			if !ok {
				idx = len(g.elems)
				if idx >= o.maxOrder {
					return nil, coxeterErrorf("Generate", fmt.Errorf("more than %d elements: %w", o.maxOrder, ErrTooLarge))
				}
				index[key] = idx
				g.elems = append(g.elems, cands[k])
				g.product = append(g.product, make([]int, n)...)
				next = append(next, idx)
			}
			g.product[e*n+gen] = idx
		}
		log.V(1).Info("frontier expanded", "level", level, "frontier", len(frontier), "found", len(next), "order", len(g.elems))
		frontier = next
	}
	if order != nil && int64(len(g.elems)) != order.Int64() {
		// rounding merged or split elements; the tolerance does not fit
		return nil, coxeterErrorf("Generate", fmt.Errorf("found %d elements, expected %v: %w",
			len(g.elems), order, ErrInfiniteGroup))
	}
	if order == nil {
		for e := range g.elems {
			if _, err = g.Inverse(e); err != nil {
				return nil, coxeterErrorf("Generate", err)
			}
		}
	}
	log.Info("group generated", "order", len(g.elems))

	return g, nil
}

// hasStarLabels reports whether some edge label n/d has d > 1.
func (d *Diagram) hasStarLabels() bool {
	for _, e := range d.Edges() {
		if d.orders[e[0]][e[1]].Den > 1 {
			return true
		}
	}

	return false
}

// expand multiplies every frontier element by every generator. Slot
// k = position·rank + generator.
func (g *Group) expand(ctx context.Context, frontier []int, step float64, workers int) ([]matrix.Matrix, []string, error) {
	n := g.rank
	cands := make([]matrix.Matrix, len(frontier)*n)
	keys := make([]string, len(frontier)*n)
	run := func(lo, hi int) error {
		for pos := lo; pos < hi; pos++ {
			for i, r := range g.gens {
				m, err := matrix.Mul(g.elems[frontier[pos]], r)
				if err != nil {
					return coxeterErrorf("Generate", err)
				}
				cands[pos*n+i] = m
				keys[pos*n+i] = geometry.Quantize(m.(*matrix.Dense).RawData(), step)
			}
		}

		return nil
	}
	if workers <= 1 || len(frontier) <= batchSize {
		return cands, keys, run(0, len(frontier))
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for lo := 0; lo < len(frontier); lo += batchSize {
		hi := min(lo+batchSize, len(frontier))
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			return run(lo, hi)
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	return cands, keys, nil
}
