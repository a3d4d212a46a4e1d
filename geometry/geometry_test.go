package geometry_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/polytope/geometry"
)

func TestPointHelpers(t *testing.T) {
	t.Parallel()

	a, b := []float64{1, 2, 3}, []float64{1, 0, -1}
	require.Equal(t, []float64{0, 2, 4}, geometry.Sub(a, b))
	require.Equal(t, []float64{2, 2, 2}, geometry.Add(a, b))
	require.Equal(t, -2.0, geometry.Dot(a, b))
	require.Equal(t, []float64{0, 0, 1, 2, 3, 0}, geometry.Pad(a, 2, 1))
	require.Equal(t, []float64{1, 2, 3, 1, 0, -1}, geometry.Concat(a, b))
	require.InDelta(t, math.Sqrt(20), geometry.Distance(a, b), 1e-12)

	c, err := geometry.Centroid([][]float64{{0, 0}, {2, 0}, {2, 2}, {0, 2}})
	require.NoError(t, err)
	require.Equal(t, []float64{1, 1}, c)

	_, err = geometry.Centroid(nil)
	require.ErrorIs(t, err, geometry.ErrEmpty)
	_, err = geometry.Centroid([][]float64{{0}, {1, 2}})
	require.ErrorIs(t, err, geometry.ErrDimensionMismatch)
}

func TestToleranceScalesWithCoordinates(t *testing.T) {
	t.Parallel()

	require.Equal(t, 1e-9, geometry.Tolerance(1e-9, [][]float64{{0.5, -0.25}}))
	require.InDelta(t, 1e-7, geometry.Tolerance(1e-9, [][]float64{{0.5, -100}}), 1e-20)
}

func TestQuantizeFoldsNoise(t *testing.T) {
	t.Parallel()

	step := 1e-6
	require.Equal(t,
		geometry.Quantize([]float64{0.5, math.Copysign(0, -1), 1.0 / 3}, step),
		geometry.Quantize([]float64{0.5 + 1e-13, 1e-14, 1.0/3 - 1e-13}, step))
	require.NotEqual(t,
		geometry.Quantize([]float64{0.5, 0}, step),
		geometry.Quantize([]float64{0.5, 0.001}, step))
}

func TestSubspace(t *testing.T) {
	t.Parallel()

	s := geometry.SubspaceOf([][]float64{{1, 0, 0}, {0, 1, 0}, {1, 1, 0}, {2, 2, 0}}, 1e-9)
	require.Equal(t, 2, s.Rank())
	require.Equal(t, 3, s.Dimension())
	require.False(t, s.IsFull())
	require.True(t, s.Contains([]float64{5, -3, 0}))
	require.False(t, s.Contains([]float64{0, 0, 1}))
	require.InDelta(t, 2.0, s.DistanceTo([]float64{3, 3, 2}), 1e-12)
	require.InDeltaSlice(t, []float64{3, 3, 0}, s.Project([]float64{3, 3, 2}), 1e-12)

	// the basis is orthonormal
	require.InDelta(t, 1.0, geometry.Norm(s.Basis[0]), 1e-12)
	require.InDelta(t, 0.0, geometry.Dot(s.Basis[0], s.Basis[1]), 1e-12)

	coords := s.Coordinates([]float64{1, 0, 0})
	require.InDeltaSlice(t, []float64{0, 0}, coords, 1e-12)

	line := geometry.SubspaceOf([][]float64{{0, 0}, {1, 1}, {2, 2}}, 1e-9)
	require.Equal(t, 1, line.Rank())
	require.Nil(t, geometry.SubspaceOf(nil, 1e-9))
}

func TestCircumsphere(t *testing.T) {
	t.Parallel()

	cube := [][]float64{}
	for i := 0; i < 8; i++ {
		cube = append(cube, []float64{
			float64(i&1) - 0.5, float64(i>>1&1) - 0.5, float64(i>>2&1) - 0.5,
		})
	}
	s, ok := geometry.Circumsphere(cube, 1e-9)
	require.True(t, ok)
	require.InDelta(t, math.Sqrt(3)/2, s.Radius, 1e-12)
	require.InDeltaSlice(t, []float64{0, 0, 0}, s.Center, 1e-12)

	// a right triangle's circumcentre is its hypotenuse midpoint
	s, ok = geometry.Circumsphere([][]float64{{0, 0}, {4, 0}, {0, 3}}, 1e-9)
	require.True(t, ok)
	require.InDeltaSlice(t, []float64{2, 1.5}, s.Center, 1e-12)
	require.InDelta(t, 2.5, s.Radius, 1e-12)

	// four points in a plane that are not concyclic
	_, ok = geometry.Circumsphere([][]float64{{0, 0}, {1, 0}, {0, 1}, {3, 3}}, 1e-9)
	require.False(t, ok)
}

func TestReciprocate(t *testing.T) {
	t.Parallel()

	h := geometry.Unit(2)
	p, ok := h.Reciprocate([]float64{2, 0}, 1e-9)
	require.True(t, ok)
	require.InDeltaSlice(t, []float64{0.5, 0}, p, 1e-12)

	_, ok = h.Reciprocate([]float64{0, 0}, 1e-9)
	require.False(t, ok)
}
