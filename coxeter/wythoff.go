package coxeter

import (
	"context"
	"fmt"
	"math/bits"
	"slices"
	"strconv"
	"strings"

	"github.com/go-logr/logr"

	"github.com/katalvlaran/polytope/abstract"
	"github.com/katalvlaran/polytope/concrete"
	"github.com/katalvlaran/polytope/geometry"
)

// Wythoff builds the Wythoffian of d: the convex hull of the orbit of the
// seed point under the reflection group.
// MAIN DESCRIPTION:
//   - Vertices are the distinct images of the seed, numbered in group
//     order.
//   - A generator subset J is active when each connected component of J
//     holds a ringed node. Every coset of the subgroup ⟨J⟩ spans one face
//     of rank |J|; cosets with equal vertex sets are the same face.
//   - The subfaces of a face from coset g⟨J⟩ are the faces of the cosets
//     g⟨J∖{j}⟩ for active J∖{j}.
//
// Implementation:
//   - Stage 1: reject seeds on every mirror of some component; generate the
//     group; place one vertex per coset of the seed's stabilizer, the
//     subgroup of the unringed mirrors, and reject coinciding vertices.
//   - Stage 2: for ranks 1..n and each active mask, split the group into
//     cosets along the Cayley graph restricted to the mask, key faces by
//     vertex set, and collect subfaces from the previous rank's masks.
//   - Stage 3: push ranks through abstract.Builder, validate, attach
//     coordinates.
//
// Errors:
//   - ErrDegenerateSeed when no node is ringed, a component has no ringed
//     node, or two cosets of the stabilizer land on the same point (the
//     seed sits on a mirror that is not one of the generators).
//   - Everything Generate returns.
//   - abstract validation errors, wrapped.
//
// Complexity:
//   - Time O(2ⁿ·|G|·n) beyond generation, Space O(C(n, n/2)·|G|).
func Wythoff(ctx context.Context, d *Diagram, opts ...Option) (*concrete.Polytope, error) {
	o := collect(opts)
	log := logr.FromContextOrDiscard(ctx).WithValues("diagram", d.String())
	n := d.Rank()
	all := uint(1)<<n - 1
	if !d.active(all) {
		return nil, coxeterErrorf("Wythoff", fmt.Errorf("a component has no ringed node: %w", ErrDegenerateSeed))
	}

	g, err := Generate(ctx, d, opts...)
	if err != nil {
		return nil, coxeterErrorf("Wythoff", err)
	}
	seed, err := d.Seed()
	if err != nil {
		return nil, coxeterErrorf("Wythoff", err)
	}

	var unringed uint
	for i := 0; i < n; i++ {
		if !d.Ringed(i) {
			unringed |= 1 << i
		}
	}
	vertexOf, vertices, err := orbit(g, seed, unringed)
	if err != nil {
		return nil, coxeterErrorf("Wythoff", err)
	}
	if distinct(vertices, o.eps*keyScale*geometry.Scale([][]float64{seed})) < len(vertices) {
		return nil, coxeterErrorf("Wythoff", fmt.Errorf("orbit points coincide: %w", ErrDegenerateSeed))
	}
	log.V(1).Info("orbit", "vertices", len(vertices))

	subs := make([][][]int, n+1) // subs[k][face] for ranks 1..n
	prev := map[uint][]int32{0: vertexOf}
	for k := 1; k <= n; k++ {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		cur := make(map[uint][]int32)
		faces := make(map[string]int)
		for mask := uint(1); mask <= all; mask++ {
			if bits.OnesCount(mask) != k || !d.active(mask) {
				continue
			}
			faceOf := g.faces(mask, vertexOf, faces, &subs[k])
			for j := 0; j < n; j++ {
				below, ok := prev[mask&^(1<<j)]
				if mask&(1<<j) == 0 || !ok {
					continue
				}
				for e, f := range faceOf {
					subs[k][f] = append(subs[k][f], int(below[e]))
				}
			}
			cur[mask] = faceOf
		}
		for f := range subs[k] {
			slices.Sort(subs[k][f])
			subs[k][f] = slices.Compact(subs[k][f])
		}
		prev = cur
	}

	b := abstract.NewBuilder()
	steps := []func() error{b.PushMin, func() error { return b.PushVertices(len(vertices)) }}
	for k := 1; k < n; k++ {
		rows := subs[k]
		steps = append(steps, func() error { return b.Push(rows) })
	}
	steps = append(steps, b.PushMax)
	for _, step := range steps {
		if err = step(); err != nil {
			return nil, coxeterErrorf("Wythoff", err)
		}
	}
	abs, err := b.Build()
	if err != nil {
		return nil, coxeterErrorf("Wythoff", err)
	}
	if err = abs.Validate(); err != nil {
		return nil, coxeterErrorf("Wythoff", err)
	}
	p, err := concrete.New(abs, vertices, concrete.WithEpsilon(o.eps))
	if err != nil {
		return nil, coxeterErrorf("Wythoff", err)
	}
	log.Info("wythoffian built", "counts", abs.Counts()[1:n+1], "order", g.Order())

	return p, nil
}

// BuildFromString parses cd and builds its Wythoffian.
func BuildFromString(ctx context.Context, cd string, opts ...Option) (*concrete.Polytope, error) {
	d, err := Parse(cd)
	if err != nil {
		return nil, err
	}

	return Wythoff(ctx, d, opts...)
}

// active reports whether every connected component of the nodes in mask
// holds a ringed node. The empty mask is active.
func (d *Diagram) active(mask uint) bool {
	in := make([]bool, d.Rank())
	for i := range in {
		in[i] = mask&(1<<i) != 0
	}
	for _, comp := range d.Components(in) {
		if !slices.ContainsFunc(comp, d.Ringed) {
			return false
		}
	}

	return true
}

// orbit places one vertex per coset of the seed's stabilizer ⟨unringed⟩
// and maps every group element to its coset's vertex.
func orbit(g *Group, seed []float64, unringed uint) ([]int32, [][]float64, error) {
	vertexOf := make([]int32, g.Order())
	done := make([]bool, g.Order())
	var vertices [][]float64
	for e := range vertexOf {
		if done[e] {
			continue
		}
		p, err := g.Apply(e, seed)
		if err != nil {
			return nil, nil, err
		}
		v := int32(len(vertices))
		vertices = append(vertices, p)
		for _, m := range g.coset(e, unringed) {
			done[m] = true
			vertexOf[m] = v
		}
	}

	return vertexOf, vertices, nil
}

// distinct counts points with distinct quantized keys. Rounding can only
// split a point across keys, never merge two far-apart points.
func distinct(points [][]float64, step float64) int {
	seen := make(map[string]bool, len(points))
	for _, p := range points {
		seen[geometry.Quantize(p, step)] = true
	}

	return len(seen)
}

// coset returns the elements of e·⟨mask⟩ in breadth-first order.
func (g *Group) coset(e int, mask uint) []int {
	seen := map[int]bool{e: true}
	out := []int{e}
	for k := 0; k < len(out); k++ {
		for i := 0; i < g.rank; i++ {
			if mask&(1<<i) == 0 {
				continue
			}
			if next := g.Mul(out[k], i); !seen[next] {
				seen[next] = true
				out = append(out, next)
			}
		}
	}

	return out
}

// faces splits the group into cosets of ⟨mask⟩ and returns, for every
// element, the index of its coset's face in the current rank. New faces
// are registered in faces (keyed by vertex set) and get an empty subs row.
func (g *Group) faces(mask uint, vertexOf []int32, faces map[string]int, subs *[][]int) []int32 {
	faceOf := make([]int32, g.Order())
	done := make([]bool, g.Order())
	for e := range faceOf {
		if done[e] {
			continue
		}
		members := g.coset(e, mask)
		vs := make([]int, len(members))
		for k, m := range members {
			done[m] = true
			vs[k] = int(vertexOf[m])
		}
		slices.Sort(vs)
		vs = slices.Compact(vs)
		key := vertexKey(vs)
		f, ok := faces[key]
		if !ok {
			f = len(*subs)
			faces[key] = f
			*subs = append(*subs, nil)
		}
		for _, m := range members {
			faceOf[m] = int32(f)
		}
	}

	return faceOf
}

func vertexKey(vs []int) string {
	var b strings.Builder
	for i, v := range vs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}

	return b.String()
}
