package mesh

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/polytope/abstract"
	"github.com/katalvlaran/polytope/concrete"
	"github.com/katalvlaran/polytope/geometry"
)

// Polygon is one 2-face. Vertices walk the face's edge cycle; Triangles
// index into Mesh.Vertices.
type Polygon struct {
	Face      int      `yaml:"face" json:"face"`
	Vertices  []int    `yaml:"vertices" json:"vertices"`
	Planar    bool     `yaml:"planar" json:"planar"`
	Triangles [][3]int `yaml:"triangles" json:"triangles"`
}

// Batch holds the polygons under one element of the batch rank.
type Batch struct {
	Element  int       `yaml:"element" json:"element"`
	Polygons []Polygon `yaml:"polygons" json:"polygons"`
}

// Mesh is a render-ready view of a polytope.
type Mesh struct {
	Rank     int         `yaml:"rank" json:"rank"` // batch rank
	Vertices [][]float64 `yaml:"vertices" json:"vertices"`
	Batches  []Batch     `yaml:"batches" json:"batches"`
	Edges    [][2]int    `yaml:"edges" json:"edges"`
}

// Triangles returns the triangles of every batch in order. Faces shared
// by several batches appear once per batch.
func (m *Mesh) Triangles() [][3]int {
	var out [][3]int
	for _, b := range m.Batches {
		for _, p := range b.Polygons {
			out = append(out, p.Triangles...)
		}
	}

	return out
}

// Project builds the mesh of p.
// MAIN DESCRIPTION:
//   - Every 2-face is ordered into a vertex cycle and triangulated once.
//   - Batches follow the elements of the batch rank (default: facets for
//     rank ≥ 3, the polygon itself for rank 2) and list the 2-faces below
//     each element in ascending order.
//   - Edges lists the vertex pairs of every edge, lower index first.
//
// Errors:
//   - ErrRank for rank < 2 or a batch rank above the polytope's.
//   - ErrBrokenFace when a face's edges do not close into one cycle.
//
// Determinism:
//   - Output order follows element indices only.
func Project(p *concrete.Polytope, opts ...Option) (*Mesh, error) {
	if p == nil {
		return nil, meshErrorf("Project", concrete.ErrNilPolytope)
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	d := p.Rank()
	if d < 2 {
		return nil, meshErrorf("Project", fmt.Errorf("polytope rank %d: %w", d, ErrRank))
	}
	if o.rank == 0 {
		o.rank = max(2, d-1)
	}
	if o.rank > d {
		return nil, meshErrorf("Project", fmt.Errorf("batch rank %d above polytope rank %d: %w", o.rank, d, ErrRank))
	}

	abs := p.Abstract()
	m := &Mesh{Rank: o.rank, Vertices: p.Vertices()}
	tol := geometry.Tolerance(p.Epsilon(), m.Vertices)

	polygons := make([]Polygon, abs.ElementCount(2))
	for f := range polygons {
		cyc, err := cycle(abs, f)
		if err != nil {
			return nil, meshErrorf("Project", err)
		}
		points := make([][]float64, len(cyc))
		for k, v := range cyc {
			points[k] = m.Vertices[v]
		}
		local, planar := triangulate(points, tol)
		tris := make([][3]int, len(local))
		for k, t := range local {
			tris[k] = [3]int{cyc[t[0]], cyc[t[1]], cyc[t[2]]}
		}
		polygons[f] = Polygon{Face: f, Vertices: cyc, Planar: planar, Triangles: tris}
	}

	for e := 0; e < abs.ElementCount(o.rank); e++ {
		faces, err := facesBelow(abs, o.rank, e)
		if err != nil {
			return nil, meshErrorf("Project", err)
		}
		b := Batch{Element: e, Polygons: make([]Polygon, len(faces))}
		for k, f := range faces {
			b.Polygons[k] = polygons[f].clone()
		}
		m.Batches = append(m.Batches, b)
	}

	for e := 0; e < abs.ElementCount(1); e++ {
		vs, err := abs.Subelements(1, e)
		if err != nil {
			return nil, meshErrorf("Project", err)
		}
		if len(vs) == 2 {
			m.Edges = append(m.Edges, [2]int{vs[0], vs[1]})
		}
	}

	return m, nil
}

func (p Polygon) clone() Polygon {
	p.Vertices = slices.Clone(p.Vertices)
	p.Triangles = slices.Clone(p.Triangles)

	return p
}

// cycle orders the vertices of face f by walking its edges.
func cycle(abs *abstract.Abstract, f int) ([]int, error) {
	edges, err := abs.Subelements(2, f)
	if err != nil {
		return nil, err
	}
	ends := make([][2]int, len(edges))
	for k, e := range edges {
		vs, err := abs.Subelements(1, e)
		if err != nil {
			return nil, err
		}
		if len(vs) != 2 {
			return nil, fmt.Errorf("face %d: edge %d has %d vertices: %w", f, e, len(vs), ErrBrokenFace)
		}
		ends[k] = [2]int{vs[0], vs[1]}
	}
	if len(ends) < 2 {
		return nil, fmt.Errorf("face %d has %d edges: %w", f, len(ends), ErrBrokenFace)
	}

	used := make([]bool, len(ends))
	used[0] = true
	out := []int{ends[0][0]}
	cur := ends[0][1]
	for len(out) < len(ends) {
		next := -1
		for k, e := range ends {
			if used[k] {
				continue
			}
			switch cur {
			case e[0]:
				next = e[1]
			case e[1]:
				next = e[0]
			default:
				continue
			}
			used[k] = true

			break
		}
		if next < 0 {
			return nil, fmt.Errorf("face %d: no edge leaves vertex %d: %w", f, cur, ErrBrokenFace)
		}
		out = append(out, cur)
		cur = next
	}
	if cur != out[0] {
		return nil, fmt.Errorf("face %d: walk ends at %d, not %d: %w", f, cur, out[0], ErrBrokenFace)
	}

	return out, nil
}

// facesBelow returns the ascending 2-faces under element (r, e).
func facesBelow(abs *abstract.Abstract, r, e int) ([]int, error) {
	cur := []int{e}
	for k := r; k > 2; k-- {
		var next []int
		for _, x := range cur {
			subs, err := abs.Subelements(k, x)
			if err != nil {
				return nil, err
			}
			next = append(next, subs...)
		}
		slices.Sort(next)
		cur = slices.Compact(next)
	}

	return cur, nil
}
