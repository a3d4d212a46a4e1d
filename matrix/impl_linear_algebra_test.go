// Package matrix_test contains unit tests for universal Matrix (linear algebra) operations.
package matrix_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/polytope/matrix"
)

func TestNewDenseRejectsBadShapes(t *testing.T) {
	t.Parallel()

	_, err := matrix.NewDense(0, 3)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDenseFromRows([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.NewDenseFromRows([][]float64{{math.NaN()}})
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestDenseAccessors(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	require.NoError(t, m.Set(1, 2, 5))
	require.Equal(t, 5.0, MustAt(t, m, 1, 2))

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, 0, math.Inf(1)), matrix.ErrNaNInf)

	c := m.Clone()
	require.NoError(t, c.Set(1, 2, 7))
	require.Equal(t, 5.0, MustAt(t, m, 1, 2), "clone must not alias")
	require.Equal(t, []float64{0, 0, 5}, m.Row(1))
	require.Nil(t, m.Row(9))
}

func TestMulFastPathMatchesFallback(t *testing.T) {
	t.Parallel()

	a := MustDense(t, [][]float64{{1, 2}, {3, 4}, {5, 6}})
	b := MustDense(t, [][]float64{{7, 8, 9}, {10, 11, 12}})

	fast, err := matrix.Mul(a, b)
	require.NoError(t, err)
	slow, err := matrix.Mul(hide{a}, hide{b})
	require.NoError(t, err)

	want := MustDense(t, [][]float64{{27, 30, 33}, {61, 68, 75}, {95, 106, 117}})
	MustClose(t, fast, want, 0)
	MustClose(t, slow, want, 0)

	_, err = matrix.Mul(a, a)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Mul(nil, a)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestMatVecAndTranspose(t *testing.T) {
	t.Parallel()

	m := MustDense(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	y, err := matrix.MatVec(m, []float64{1, 0, -1})
	require.NoError(t, err)
	require.Equal(t, []float64{-2, -2}, y)

	y2, err := matrix.MatVec(hide{m}, []float64{1, 0, -1})
	require.NoError(t, err)
	require.Equal(t, y, y2)

	_, err = matrix.MatVec(m, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	tr, err := matrix.Transpose(m)
	require.NoError(t, err)
	require.Equal(t, 3, tr.Rows())
	require.Equal(t, 6.0, MustAt(t, tr, 2, 1))
}

func TestInverseWithPivoting(t *testing.T) {
	t.Parallel()

	// zero diagonal: requires a row swap
	m := MustDense(t, [][]float64{{0, 1}, {1, 0}})
	inv, err := matrix.Inverse(m)
	require.NoError(t, err)
	MustClose(t, inv, m, 1e-12)

	m = MustDense(t, [][]float64{{4, 7}, {2, 6}})
	inv, err = matrix.Inverse(m)
	require.NoError(t, err)
	prod, err := matrix.Mul(m, inv)
	require.NoError(t, err)
	id, err := matrix.Identity(2)
	require.NoError(t, err)
	MustClose(t, prod, id, 1e-12)

	_, err = matrix.Inverse(MustDense(t, [][]float64{{1, 2}, {2, 4}}))
	require.True(t, errors.Is(err, matrix.ErrSingular))
	_, err = matrix.Inverse(MustDense(t, [][]float64{{1, 2, 3}}))
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestCholesky(t *testing.T) {
	t.Parallel()

	// Gram matrix of the A2 mirror system: diag 1, off-diagonal -cos(π/3).
	g := MustDense(t, [][]float64{{1, -0.5}, {-0.5, 1}})
	l, err := matrix.Cholesky(g, 1e-12)
	require.NoError(t, err)
	require.Equal(t, 0.0, MustAt(t, l, 0, 1), "L must be lower triangular")

	lt, err := matrix.Transpose(l)
	require.NoError(t, err)
	back, err := matrix.Mul(l, lt)
	require.NoError(t, err)
	MustClose(t, back, g, 1e-12)

	// Affine Ã1: -cos(π/∞) = -1 gives a singular Gram matrix.
	_, err = matrix.Cholesky(MustDense(t, [][]float64{{1, -1}, {-1, 1}}), 1e-12)
	require.ErrorIs(t, err, matrix.ErrNotPositiveDefinite)

	_, err = matrix.Cholesky(MustDense(t, [][]float64{{1, 0.2}, {0.1, 1}}), 1e-12)
	require.ErrorIs(t, err, matrix.ErrAsymmetry)
}

func TestForwardSubstitute(t *testing.T) {
	t.Parallel()

	l := MustDense(t, [][]float64{{2, 0, 0}, {1, 1, 0}, {0, 3, 1}})
	x, err := matrix.ForwardSubstitute(l, []float64{4, 3, 5})
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{2, 1, 2}, x, 1e-12)

	_, err = matrix.ForwardSubstitute(MustDense(t, [][]float64{{0, 0}, {1, 1}}), []float64{1, 1})
	require.ErrorIs(t, err, matrix.ErrSingular)
}

func TestReflection(t *testing.T) {
	t.Parallel()

	r, err := matrix.Reflection([]float64{0, 2})
	require.NoError(t, err)
	y, err := matrix.MatVec(r, []float64{3, 4})
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{3, -4}, y, 1e-12)

	// involution
	rr, err := matrix.Mul(r, r)
	require.NoError(t, err)
	id, err := matrix.Identity(2)
	require.NoError(t, err)
	MustClose(t, rr, id, 1e-12)

	_, err = matrix.Reflection([]float64{0, 0})
	require.ErrorIs(t, err, matrix.ErrZeroVector)
}
