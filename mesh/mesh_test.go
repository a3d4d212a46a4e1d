package mesh_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/polytope/abstract"
	"github.com/katalvlaran/polytope/concrete"
	"github.com/katalvlaran/polytope/coxeter"
	"github.com/katalvlaran/polytope/geometry"
	"github.com/katalvlaran/polytope/mesh"
)

func triangleArea(a, b, c []float64) float64 {
	u, v := geometry.Sub(b, a), geometry.Sub(c, a)
	uu, vv, uv := geometry.Dot(u, u), geometry.Dot(v, v), geometry.Dot(u, v)

	return math.Sqrt(math.Max(0, uu*vv-uv*uv)) / 2
}

func TestProjectCube(t *testing.T) {
	t.Parallel()
	cube, err := concrete.Hypercube(3)
	require.NoError(t, err)

	m, err := mesh.Project(cube)
	require.NoError(t, err)
	require.Equal(t, 2, m.Rank)
	require.Len(t, m.Batches, 6)
	require.Len(t, m.Edges, 12)
	require.Len(t, m.Vertices, 8)
	for _, b := range m.Batches {
		require.Len(t, b.Polygons, 1)
		p := b.Polygons[0]
		require.Equal(t, b.Element, p.Face)
		require.Len(t, p.Vertices, 4)
		require.True(t, p.Planar)
		require.Len(t, p.Triangles, 2)
		var area float64
		for _, tr := range p.Triangles {
			area += triangleArea(m.Vertices[tr[0]], m.Vertices[tr[1]], m.Vertices[tr[2]])
		}
		require.InDelta(t, 1.0, area, 1e-9)
		// consecutive cycle vertices share an edge of length 1
		for k, v := range p.Vertices {
			w := p.Vertices[(k+1)%4]
			require.InDelta(t, 1.0, geometry.Distance(m.Vertices[v], m.Vertices[w]), 1e-9)
		}
	}
	require.Len(t, m.Triangles(), 12)

	whole, err := mesh.Project(cube, mesh.WithRank(3))
	require.NoError(t, err)
	require.Len(t, whole.Batches, 1)
	require.Len(t, whole.Batches[0].Polygons, 6)
}

func TestProjectPolygon(t *testing.T) {
	t.Parallel()
	pentagon, err := concrete.Polygon(5)
	require.NoError(t, err)
	m, err := mesh.Project(pentagon)
	require.NoError(t, err)
	require.Len(t, m.Batches, 1)
	tris := m.Triangles()
	require.Len(t, tris, 3)
	var area float64
	for _, tr := range tris {
		area += triangleArea(m.Vertices[tr[0]], m.Vertices[tr[1]], m.Vertices[tr[2]])
	}
	require.InDelta(t, 5.0/4/math.Tan(math.Pi/5), area, 1e-9)
}

func TestProjectTesseract(t *testing.T) {
	t.Parallel()
	p, err := coxeter.BuildFromString(context.Background(), "x4o3o3o")
	require.NoError(t, err)

	cells, err := mesh.Project(p)
	require.NoError(t, err)
	require.Equal(t, 3, cells.Rank)
	require.Len(t, cells.Batches, 8)
	for _, b := range cells.Batches {
		require.Len(t, b.Polygons, 6)
	}
	require.Len(t, cells.Triangles(), 96)

	faces, err := mesh.Project(p, mesh.WithRank(2))
	require.NoError(t, err)
	require.Len(t, faces.Batches, 24)
	require.Len(t, faces.Triangles(), 48)
}

func TestProjectNonPlanar(t *testing.T) {
	t.Parallel()
	square, err := abstract.Polygon(4)
	require.NoError(t, err)
	skew, err := concrete.New(square, [][]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0.5}, {0, 1, 0}})
	require.NoError(t, err)

	m, err := mesh.Project(skew)
	require.NoError(t, err)
	p := m.Batches[0].Polygons[0]
	require.False(t, p.Planar)
	require.Len(t, p.Triangles, 2)
}

func TestProjectNoAliasing(t *testing.T) {
	t.Parallel()
	cube, err := concrete.Hypercube(3)
	require.NoError(t, err)
	before := cube.Vertices()
	m, err := mesh.Project(cube)
	require.NoError(t, err)
	m.Vertices[0][0] = 42
	m.Batches[0].Polygons[0].Vertices[0] = 42
	require.Equal(t, before, cube.Vertices())

	again, err := mesh.Project(cube)
	require.NoError(t, err)
	require.NotEqual(t, 42, again.Batches[0].Polygons[0].Vertices[0])
}

func TestProjectErrors(t *testing.T) {
	t.Parallel()
	_, err := mesh.Project(concrete.Dyad(1))
	require.ErrorIs(t, err, mesh.ErrRank)

	cube, err := concrete.Hypercube(3)
	require.NoError(t, err)
	_, err = mesh.Project(cube, mesh.WithRank(4))
	require.ErrorIs(t, err, mesh.ErrRank)

	_, err = mesh.Project(nil)
	require.ErrorIs(t, err, concrete.ErrNilPolytope)

	require.Panics(t, func() { mesh.WithRank(1) })

	// one face over two disjoint edges
	broken, err := abstract.FromSubelements(
		[][]int{{0}, {0}, {0}, {0}},
		[][]int{{0, 1}, {2, 3}},
		[][]int{{0, 1}},
	)
	require.NoError(t, err)
	p, err := concrete.New(broken, [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
	require.NoError(t, err)
	_, err = mesh.Project(p)
	require.ErrorIs(t, err, mesh.ErrBrokenFace)
}
