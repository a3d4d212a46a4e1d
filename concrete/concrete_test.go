package concrete_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/polytope/abstract"
	"github.com/katalvlaran/polytope/concrete"
	"github.com/katalvlaran/polytope/geometry"
	"github.com/katalvlaran/polytope/matrix"
)

const tol = 1e-9

func counts(p *concrete.Polytope) []int {
	out := make([]int, 0, p.Rank())
	for r := 0; r < p.Rank(); r++ {
		out = append(out, p.ElementCount(r))
	}

	return out
}

func mustCube(t *testing.T) *concrete.Polytope {
	t.Helper()
	c, err := concrete.Hypercube(3)
	require.NoError(t, err)

	return c
}

func requireClosePoint(t *testing.T, want, got []float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.InDelta(t, want[i], got[i], tol, "coordinate %d of %v vs %v", i, got, want)
	}
}

// ShapesSuite checks the unit-edge canonical shapes.
type ShapesSuite struct {
	suite.Suite
}

func (s *ShapesSuite) requireUnit(p *concrete.Polytope, name string) {
	s.Require().NoError(p.Validate(), name)
	ls, err := p.EdgeLengths()
	s.Require().NoError(err)
	for i, l := range ls {
		s.InDelta(1.0, l, tol, "%s edge %d", name, i)
	}
	s.True(p.IsEquilateral(), name)
	s.False(p.IsFlat(), name)
}

func (s *ShapesSuite) TestPolygons() {
	for n := 3; n <= 8; n++ {
		p, err := concrete.Polygon(n)
		s.Require().NoError(err)
		s.requireUnit(p, "polygon")
		r, err := p.Circumradius()
		s.Require().NoError(err)
		s.InDelta(1/(2*math.Sin(math.Pi/float64(n))), r, tol)
	}
}

func (s *ShapesSuite) TestSimplices() {
	for r := 1; r <= 5; r++ {
		p, err := concrete.Simplex(r)
		s.Require().NoError(err)
		s.Equal(r, p.Dimension())
		s.requireUnit(p, "simplex")
		rad, err := p.Circumradius()
		s.Require().NoError(err)
		s.InDelta(math.Sqrt(float64(r)/float64(2*(r+1))), rad, tol, "simplex %d", r)
		g, err := p.Gravicenter()
		s.Require().NoError(err)
		requireClosePoint(s.T(), make([]float64, r), g)
	}
}

func (s *ShapesSuite) TestCubesAndOrthoplexes() {
	for r := 2; r <= 4; r++ {
		cube, err := concrete.Hypercube(r)
		s.Require().NoError(err)
		s.requireUnit(cube, "hypercube")
		rad, err := cube.Circumradius()
		s.Require().NoError(err)
		s.InDelta(math.Sqrt(float64(r))/2, rad, tol)

		orth, err := concrete.Orthoplex(r)
		s.Require().NoError(err)
		s.requireUnit(orth, "orthoplex")
		rad, err = orth.Circumradius()
		s.Require().NoError(err)
		s.InDelta(math.Sqrt2/2, rad, tol)
	}
}

func (s *ShapesSuite) TestInvalidRanks() {
	_, err := concrete.Simplex(-1)
	s.ErrorIs(err, abstract.ErrInvalidOperand)
	_, err = concrete.Polygon(1)
	s.ErrorIs(err, abstract.ErrInvalidOperand)
}

func TestShapesSuite(t *testing.T) {
	suite.Run(t, new(ShapesSuite))
}

func TestNew(t *testing.T) {
	tri, err := abstract.Polygon(3)
	require.NoError(t, err)

	p, err := concrete.New(tri, [][]float64{{0, 0}, {1, 0}, {0, 1}})
	require.NoError(t, err)
	require.Equal(t, 2, p.Dimension())
	require.Equal(t, 2, p.Rank())

	_, err = concrete.New(tri, [][]float64{{0, 0}, {1, 0}})
	require.ErrorIs(t, err, concrete.ErrVertexCount)
	_, err = concrete.New(tri, [][]float64{{0, 0}, {1, 0}, {0}})
	require.ErrorIs(t, err, concrete.ErrDimensionMismatch)
	_, err = concrete.New(tri, [][]float64{{0, 0}, {1, math.NaN()}, {0, 1}})
	require.ErrorIs(t, err, concrete.ErrNaNInf)
	_, err = concrete.New(nil, nil)
	require.ErrorIs(t, err, concrete.ErrNilPolytope)

	// inputs are copied
	vs := [][]float64{{0, 0}, {1, 0}, {0, 1}}
	p, err = concrete.New(tri, vs)
	require.NoError(t, err)
	vs[0][0] = 42
	v, err := p.Vertex(0)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0}, v)
	v[1] = 7
	again, _ := p.Vertex(0)
	require.Equal(t, []float64{0, 0}, again)

	_, err = p.Vertex(3)
	require.ErrorIs(t, err, abstract.ErrOutOfRange)
}

func TestWithEpsilonPanics(t *testing.T) {
	require.Panics(t, func() { concrete.WithEpsilon(-1) })
	require.Panics(t, func() { concrete.WithEpsilon(math.Inf(1)) })
	require.NotPanics(t, func() { concrete.WithEpsilon(0) })
}

func TestCheckDegenerate(t *testing.T) {
	sq, err := abstract.Polygon(4)
	require.NoError(t, err)

	t.Run("zero-length edge", func(t *testing.T) {
		p, err := concrete.New(sq, [][]float64{{0, 0}, {0, 0}, {1, 1}, {0, 1}})
		require.NoError(t, err)
		require.True(t, p.IsDegenerate())
		var de *concrete.DegenerateError
		require.ErrorAs(t, p.CheckDegenerate(), &de)
		require.Equal(t, 1, de.Rank)
		require.Equal(t, 0, de.First)
		require.ErrorIs(t, p.Validate(), concrete.ErrDegenerate)
	})

	t.Run("coincident vertices", func(t *testing.T) {
		p, err := concrete.New(sq, [][]float64{{0, 0}, {1, 0}, {0, 1e-12}, {0, 1}})
		require.NoError(t, err)
		var de *concrete.DegenerateError
		require.ErrorAs(t, p.CheckDegenerate(), &de)
		require.Equal(t, concrete.DegenerateError{Rank: 0, First: 0, Second: 2}, *de)
	})

	t.Run("coinciding faces", func(t *testing.T) {
		di, err := sq.Ditope()
		require.NoError(t, err)
		p, err := concrete.New(di, [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
		require.NoError(t, err)
		var de *concrete.DegenerateError
		require.ErrorAs(t, p.CheckDegenerate(), &de)
		require.Equal(t, 2, de.Rank)
		require.True(t, p.IsFlat())
	})

	t.Run("tolerance is relative", func(t *testing.T) {
		p, err := concrete.New(sq, [][]float64{{0, 0}, {1e6, 0}, {1e6, 1e6}, {0, 1e6}})
		require.NoError(t, err)
		require.False(t, p.IsDegenerate())
		q, err := concrete.New(sq, [][]float64{{0, 0}, {1e6, 0}, {1e6, 1e6}, {1e-4, 1e-4}})
		require.NoError(t, err)
		require.True(t, q.IsDegenerate())
	})
}

func TestCircumradiusFails(t *testing.T) {
	sq, err := abstract.Polygon(4)
	require.NoError(t, err)
	p, err := concrete.New(sq, [][]float64{{0, 0}, {2, 0}, {2, 1}, {0, 1.5}})
	require.NoError(t, err)
	_, err = p.Circumradius()
	require.ErrorIs(t, err, concrete.ErrNoCircumsphere)
}

func TestAffineTransform(t *testing.T) {
	sq, err := concrete.Polygon(4)
	require.NoError(t, err)

	rot, err := matrix.NewDenseFromRows([][]float64{{0, -1}, {1, 0}})
	require.NoError(t, err)
	turned, err := sq.AffineTransform(rot, []float64{1, 0})
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		v, _ := sq.Vertex(i)
		w, _ := turned.Vertex(i)
		requireClosePoint(t, []float64{-v[1] + 1, v[0]}, w)
	}
	require.True(t, turned.IsEquilateral())

	embed, err := matrix.NewDenseFromRows([][]float64{{1, 0}, {0, 1}, {0, 0}})
	require.NoError(t, err)
	up, err := sq.AffineTransform(embed, nil)
	require.NoError(t, err)
	require.Equal(t, 3, up.Dimension())
	require.False(t, up.IsFlat())

	squash, err := matrix.NewDenseFromRows([][]float64{{1, 0}, {0, 0}})
	require.NoError(t, err)
	flat, err := sq.AffineTransform(squash, nil)
	require.NoError(t, err)
	require.True(t, flat.IsFlat())

	_, err = sq.AffineTransform(embed, []float64{1, 2})
	require.ErrorIs(t, err, concrete.ErrDimensionMismatch)
	_, err = up.AffineTransform(rot, nil)
	require.ErrorIs(t, err, concrete.ErrDimensionMismatch)
	_, err = sq.AffineTransform(nil, nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	scaled := sq.Scale(3)
	l, err := scaled.EdgeLength(0)
	require.NoError(t, err)
	require.InDelta(t, 3.0, l, tol)

	moved, err := sq.Translate([]float64{5, 5})
	require.NoError(t, err)
	back, err := moved.Recenter()
	require.NoError(t, err)
	g, err := back.Gravicenter()
	require.NoError(t, err)
	requireClosePoint(t, []float64{0, 0}, g)
}

func TestDual(t *testing.T) {
	cube := mustCube(t)
	oct, err := cube.Dual(geometry.Unit(3))
	require.NoError(t, err)
	require.Equal(t, []int{6, 12, 8}, counts(oct))
	require.NoError(t, oct.Validate())
	r, err := oct.Circumradius()
	require.NoError(t, err)
	require.InDelta(t, 2.0, r, tol)

	back, err := oct.Dual(geometry.Unit(3))
	require.NoError(t, err)
	for i := 0; i < 8; i++ {
		want, _ := cube.Vertex(i)
		got, _ := back.Vertex(i)
		requireClosePoint(t, want, got)
	}

	off := geometry.Hypersphere{Center: []float64{0.5, 0, 0}, Radius: 1}
	_, err = cube.Dual(off)
	require.ErrorIs(t, err, concrete.ErrDegenerate)

	_, err = cube.Dual(geometry.Unit(2))
	require.ErrorIs(t, err, concrete.ErrDimensionMismatch)
	_, err = concrete.Point().Dual(geometry.Unit(0))
	require.ErrorIs(t, err, abstract.ErrInvalidOperand)
}

func TestProducts(t *testing.T) {
	sq, err := concrete.Polygon(4)
	require.NoError(t, err)
	tri, err := concrete.Polygon(3)
	require.NoError(t, err)

	t.Run("pyramid", func(t *testing.T) {
		pyr, err := concrete.Pyramid(sq, 1)
		require.NoError(t, err)
		require.Equal(t, []int{5, 8, 5}, counts(pyr))
		require.Equal(t, 3, pyr.Dimension())
		apex, _ := pyr.Vertex(0)
		requireClosePoint(t, []float64{0, 0, 1}, apex)
		require.NoError(t, pyr.Validate())
	})

	t.Run("prism", func(t *testing.T) {
		pr, err := concrete.Prism(tri, 1)
		require.NoError(t, err)
		require.Equal(t, []int{6, 9, 5}, counts(pr))
		require.True(t, pr.IsEquilateral())
		require.NoError(t, pr.Validate())
	})

	t.Run("duoprism layout", func(t *testing.T) {
		dp, err := concrete.Duoprism(tri, sq)
		require.NoError(t, err)
		require.Equal(t, 12, dp.ElementCount(0))
		require.Equal(t, 4, dp.Dimension())
		for i := 0; i < 3; i++ {
			for j := 0; j < 4; j++ {
				a, _ := tri.Vertex(i)
				b, _ := sq.Vertex(j)
				got, _ := dp.Vertex(i*4 + j)
				requireClosePoint(t, geometry.Concat(a, b), got)
			}
		}
		require.True(t, dp.IsEquilateral())
		require.NoError(t, dp.Validate())
	})

	t.Run("tegum of square is the octahedron", func(t *testing.T) {
		teg, err := concrete.Tegum(sq, math.Sqrt2)
		require.NoError(t, err)
		require.Equal(t, []int{6, 12, 8}, counts(teg))
		require.True(t, teg.IsEquilateral())
		require.NoError(t, teg.Validate())
	})

	t.Run("duopyramid of dyads is the tetrahedron", func(t *testing.T) {
		dp, err := concrete.Duopyramid(concrete.Dyad(1), concrete.Dyad(1), 1/math.Sqrt2)
		require.NoError(t, err)
		require.Equal(t, []int{4, 6, 4}, counts(dp))
		require.True(t, dp.IsEquilateral())
		require.NoError(t, dp.Validate())
	})

	t.Run("duocomb", func(t *testing.T) {
		dc, err := concrete.Duocomb(sq, sq)
		require.NoError(t, err)
		require.Equal(t, []int{16, 32, 16}, counts(dc))
		require.Equal(t, 4, dc.Dimension())
	})

	t.Run("operands", func(t *testing.T) {
		_, err := concrete.Duoprism(nil, sq)
		require.ErrorIs(t, err, concrete.ErrNilPolytope)
		_, err = concrete.Duocomb(concrete.Point(), sq)
		require.ErrorIs(t, err, abstract.ErrInvalidOperand)
	})
}

func TestPetrialAndElements(t *testing.T) {
	cube := mustCube(t)
	pet, err := cube.Petrial()
	require.NoError(t, err)
	require.Equal(t, []int{8, 12, 4}, counts(pet))
	require.Equal(t, cube.Vertices(), pet.Vertices())

	face, err := cube.Facet(0)
	require.NoError(t, err)
	require.Equal(t, 2, face.Rank())
	require.Equal(t, 4, face.ElementCount(0))
	require.True(t, face.IsEquilateral())
	require.False(t, face.IsFlat())

	edge, err := cube.ElementPolytope(1, 0)
	require.NoError(t, err)
	require.Equal(t, 1, edge.Rank())
	l, err := edge.EdgeLength(0)
	require.NoError(t, err)
	require.InDelta(t, 1.0, l, tol)
	idx, pts, err := cube.ElementVertices(1, 0)
	require.NoError(t, err)
	require.Len(t, idx, 2)
	require.InDelta(t, 1.0, geometry.Distance(pts[0], pts[1]), tol)

	_, err = cube.ElementPolytope(5, 0)
	require.True(t, errors.Is(err, abstract.ErrOutOfRange))
}

func TestMidradius(t *testing.T) {
	sq, err := concrete.Polygon(4)
	require.NoError(t, err)
	tet, err := concrete.Simplex(3)
	require.NoError(t, err)
	for _, tc := range []struct {
		name string
		p    *concrete.Polytope
		want float64
	}{
		{"square", sq, 0.5},
		{"cube", mustCube(t), math.Sqrt2 / 2},
		{"tetrahedron", tet, 1 / (2 * math.Sqrt2)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m, err := tc.p.Midradius()
			require.NoError(t, err)
			require.InDelta(t, tc.want, m, tol)
		})
	}

	rect, err := concrete.New(sq.Abstract(), [][]float64{{1, 2}, {-1, 2}, {-1, -2}, {1, -2}})
	require.NoError(t, err)
	_, err = rect.Midradius()
	require.ErrorIs(t, err, concrete.ErrNoMidsphere)
	_, err = concrete.Point().Midradius()
	require.ErrorIs(t, err, concrete.ErrNoMidsphere)
}

func TestAntiprism(t *testing.T) {
	sq, err := concrete.Polygon(4)
	require.NoError(t, err)
	sphere, err := sq.AntiprismSphere()
	require.NoError(t, err)
	requireClosePoint(t, []float64{0, 0}, sphere.Center)
	require.InDelta(t, math.Sqrt(math.Sqrt2/4), sphere.Radius, tol)

	height := math.Pow(2, -0.25)
	ap, err := concrete.Antiprism(sq, sphere, height)
	require.NoError(t, err)
	require.Equal(t, []int{8, 16, 10}, counts(ap))
	require.Equal(t, 3, ap.Dimension())
	require.True(t, ap.IsEquilateral())
	require.NoError(t, ap.Validate())
	for i := 0; i < 4; i++ {
		v, _ := sq.Vertex(i)
		got, _ := ap.Vertex(i)
		requireClosePoint(t, append(v, height/2), got)
	}
	r, err := ap.Circumradius()
	require.NoError(t, err)
	require.InDelta(t, math.Sqrt(0.5+height*height/4), r, tol)

	tri, err := concrete.Polygon(3)
	require.NoError(t, err)
	sphere, err = tri.AntiprismSphere()
	require.NoError(t, err)
	oct, err := concrete.Antiprism(tri, sphere, math.Sqrt(2.0/3))
	require.NoError(t, err)
	require.Equal(t, []int{6, 12, 8}, counts(oct))
	require.True(t, oct.IsEquilateral())

	_, err = concrete.Antiprism(nil, sphere, 1)
	require.ErrorIs(t, err, concrete.ErrNilPolytope)
	_, err = concrete.Antiprism(sq, geometry.Unit(3), 1)
	require.ErrorIs(t, err, concrete.ErrDimensionMismatch)
}

func TestCompoundAndMulticomb(t *testing.T) {
	sq, err := concrete.Polygon(4)
	require.NoError(t, err)
	turned, err := sq.Scale(2).Translate([]float64{3, 0})
	require.NoError(t, err)

	c, err := concrete.Compound(sq, turned)
	require.NoError(t, err)
	require.Equal(t, []int{8, 8}, counts(c))
	for i := 0; i < 4; i++ {
		want, _ := turned.Vertex(i)
		got, _ := c.Vertex(4 + i)
		requireClosePoint(t, want, got)
	}
	require.ErrorIs(t, c.Validate(), abstract.ErrDisconnected)

	_, err = concrete.Compound(sq, mustCube(t))
	require.ErrorIs(t, err, concrete.ErrDimensionMismatch)
	_, err = concrete.Compound(sq, nil)
	require.ErrorIs(t, err, concrete.ErrNilPolytope)
	empty, err := concrete.Compound()
	require.NoError(t, err)
	require.Equal(t, -1, empty.Rank())

	torus, err := concrete.Multicomb(sq, sq)
	require.NoError(t, err)
	require.Equal(t, []int{16, 32, 16}, counts(torus))
	require.Equal(t, 4, torus.Dimension())
	require.NoError(t, torus.Validate())

	one, err := concrete.Multicomb(sq)
	require.NoError(t, err)
	require.Equal(t, counts(sq), counts(one))
	none, err := concrete.Multicomb()
	require.NoError(t, err)
	require.Equal(t, -1, none.Rank())
	_, err = concrete.Multicomb(sq, concrete.Point())
	require.ErrorIs(t, err, abstract.ErrInvalidOperand)
}
