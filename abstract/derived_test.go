package abstract_test

import (
	"math/big"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/polytope/abstract"
)

func TestAntiprism(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		base   *abstract.Abstract
		counts []int
	}{
		{"dyad from point", abstract.Point(), []int{2}},
		{"square from dyad", abstract.Dyad(), []int{4, 4}},
		{"octahedron from triangle", mustPolygon(t, 3), []int{6, 12, 8}},
		{"square antiprism", mustPolygon(t, 4), []int{8, 16, 10}},
		{"pentagonal antiprism", mustPolygon(t, 5), []int{10, 20, 12}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ap, err := tc.base.Antiprism()
			require.NoError(t, err)
			require.Equal(t, tc.base.Rank()+1, ap.Rank())
			require.Equal(t, tc.counts, counts(ap))
			require.NoError(t, ap.Validate())
		})
	}

	cube, err := abstract.Hypercube(3)
	require.NoError(t, err)
	ap, err := cube.Antiprism()
	require.NoError(t, err)
	require.Equal(t, 14, ap.ElementCount(0)) // 8 base vertices, 6 dual vertices
	require.NoError(t, ap.Validate())

	_, err = abstract.Nullitope().Antiprism()
	require.ErrorIs(t, err, abstract.ErrInvalidOperand)
}

func TestAntiprismBasesKeepVertexOrder(t *testing.T) {
	t.Parallel()

	ap, err := mustPolygon(t, 4).Antiprism()
	require.NoError(t, err)
	faces, err := ap.Vertices(2)
	require.NoError(t, err)
	require.True(t, slices.ContainsFunc(faces, func(vs []int) bool { return slices.Equal(vs, []int{0, 1, 2, 3}) }))
	require.True(t, slices.ContainsFunc(faces, func(vs []int) bool { return slices.Equal(vs, []int{4, 5, 6, 7}) }))
}

func TestOmnitruncate(t *testing.T) {
	t.Parallel()

	tet, err := abstract.Simplex(3)
	require.NoError(t, err)
	cube, err := abstract.Hypercube(3)
	require.NoError(t, err)
	tess, err := abstract.Hypercube(4)
	require.NoError(t, err)

	tests := []struct {
		name   string
		p      *abstract.Abstract
		counts []int
	}{
		{"dyad", abstract.Dyad(), []int{2}},
		{"hexagon from triangle", mustPolygon(t, 3), []int{6, 6}},
		{"truncated octahedron from tetrahedron", tet, []int{24, 36, 14}},
		{"great rhombicuboctahedron from cube", cube, []int{48, 72, 26}},
		{"great disprismatotesseractitesseract", tess, []int{384, 768, 464, 80}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o, err := tc.p.Omnitruncate()
			require.NoError(t, err)
			require.Equal(t, tc.counts, counts(o))
			want := new(big.Int).Mul(tc.p.FlagCount(), factorial(int64(tc.p.Rank())))
			require.Zero(t, o.FlagCount().Cmp(want)) // every vertex figure is a simplex
			require.NoError(t, o.Validate())
		})
	}

	_, err = abstract.Point().Omnitruncate()
	require.ErrorIs(t, err, abstract.ErrInvalidOperand)
}

func TestCompound(t *testing.T) {
	t.Parallel()

	c, err := abstract.Compound(mustPolygon(t, 3), mustPolygon(t, 4))
	require.NoError(t, err)
	require.Equal(t, 2, c.Rank())
	require.Equal(t, []int{7, 7}, counts(c))
	require.ErrorIs(t, c.Validate(), abstract.ErrDisconnected)
	square, err := c.Vertices(1)
	require.NoError(t, err)
	require.Equal(t, []int{3, 4}, square[3]) // first edge of the square, shifted past the triangle

	empty, err := abstract.Compound()
	require.NoError(t, err)
	require.Equal(t, -1, empty.Rank())

	one, err := abstract.Compound(mustPolygon(t, 5))
	require.NoError(t, err)
	require.NoError(t, one.Validate())

	_, err = abstract.Compound(mustPolygon(t, 3), abstract.Dyad())
	require.ErrorIs(t, err, abstract.ErrInvalidOperand)
	_, err = abstract.Compound(abstract.Point(), abstract.Point())
	require.ErrorIs(t, err, abstract.ErrInvalidOperand)
}

func TestMulticomb(t *testing.T) {
	t.Parallel()

	torus, err := abstract.Multicomb(mustPolygon(t, 4), mustPolygon(t, 4))
	require.NoError(t, err)
	require.Equal(t, []int{16, 32, 16}, counts(torus))
	require.NoError(t, torus.Validate())
	ok, err := torus.Orientable()
	require.NoError(t, err)
	require.True(t, ok)

	empty, err := abstract.Multicomb()
	require.NoError(t, err)
	require.Equal(t, -1, empty.Rank())

	_, err = abstract.Multicomb(mustPolygon(t, 4), abstract.Point())
	require.ErrorIs(t, err, abstract.ErrInvalidOperand)
}
