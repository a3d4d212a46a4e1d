// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// matrix multiplication, matrix-vector products, transpose, inversion and
// approximate comparison. All functions perform strict fail-fast validation
// and return clear errors on dimension mismatches.
//
// Notes:
//   - All kernels use central validators and wrap failures via matrixErrorf.
//   - *Dense operands take a flat fast-path; other implementations fall back
//     to At/Set with identical loop order, so results are bitwise equal.

package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ZeroSum is the initial sum value for accumulations and substitutions.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMul       = "Mul"
	opTranspose = "Transpose"
	opInverse   = "Inverse"
	opMatVec    = "MatVec"
	opCholesky  = "Cholesky"
	opForward   = "ForwardSubstitute"
	opReflect   = "Reflection"
	opAllClose  = "AllClose"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// Implementation:
//   - Stage 1: Wrap using fmt.Errorf("%s: %w", tag, err) to enable errors.Is/As.
//
// Complexity:
//   - Time O(1), Space O(1).
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Mul returns the matrix product a×b.
// MAIN DESCRIPTION:
//   - Computes res[i,j] = Σ_k a[i,k]·b[k,j] into a fresh Dense.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b).
//   - Stage 2: Fast-path for *Dense×*Dense in i-k-j order over flat buffers.
//   - Stage 3: Fallback i-j-k via At/Set.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (wrapped with "Mul").
//
// Determinism:
//   - Fixed loop orders; inputs are never mutated.
//
// Complexity:
//   - Time O(r·k·c), Space O(r·c).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var (
		i, j, k         int // loop iterators
		av, bv, current float64
	)
	// Fast-path for two Dense matrices
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			var rowOffsetA, rowOffsetB, rowOffsetR int
			for i = 0; i < aRows; i++ {
				rowOffsetA = i * aCols
				rowOffsetR = i * bCols
				for k = 0; k < aCols; k++ {
					av = da.data[rowOffsetA+k]
					if av == 0 {
						continue
					}
					rowOffsetB = k * bCols
					for j = 0; j < bCols; j++ {
						res.data[rowOffsetR+j] += av * db.data[rowOffsetB+j]
					}
				}
			}

			return res, nil
		}
	}

	// Fallback: generic interface triple-loop (i-j-k)
	for i = 0; i < aRows; i++ {
		for j = 0; j < bCols; j++ {
			current = ZeroSum
			for k = 0; k < aCols; k++ {
				if av, err = a.At(i, k); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				if av == 0 {
					continue
				}
				if bv, err = b.At(k, j); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				current += av * bv
			}
			res.data[i*bCols+j] = current
		}
	}

	return res, nil
}

// MatVec returns y = m·x.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch when len(x) != m.Cols().
//
// Complexity:
//   - Time O(r·c), Space O(r).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)

	// Fast-path: row-major rows are contiguous, so each output is one dot product.
	if d, ok := m.(*Dense); ok {
		for i := 0; i < d.r; i++ {
			y[i] = floats.Dot(d.data[i*d.c:(i+1)*d.c], x)
		}

		return y, nil
	}

	var (
		i, j int
		mv   float64
		err  error
	)
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if mv, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opMatVec, err)
			}
			y[i] += mv * x[j]
		}
	}

	return y, nil
}

// Transpose returns mᵀ as a fresh Dense.
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(cols, rows)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var (
		i, j int
		v    float64
	)
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opTranspose, err)
			}
			res.data[j*rows+i] = v
		}
	}

	return res, nil
}

// Inverse computes m⁻¹ by Gauss–Jordan elimination with partial pivoting.
// MAIN DESCRIPTION:
//   - Row-reduces the augmented block [m | I] to [I | m⁻¹].
//
// Implementation:
//   - Stage 1: validate non-nil & square; copy m into a working buffer.
//   - Stage 2: for each column pick the row with the largest |pivot|
//     (lowest index on ties), swap, normalize, eliminate all other rows.
//   - Stage 3: a pivot with |p| ≤ DefaultEpsilon·scale yields ErrSingular.
//
// Behavior highlights:
//   - Pivoting makes orthogonal matrices with zero diagonal entries (e.g.
//     reflections and rotations by π/2) invertible, which plain Doolittle LU
//     rejects.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrSingular (wrapped with "Inverse").
//
// Complexity:
//   - Time O(n³), Space O(n²).
func Inverse(m Matrix) (Matrix, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	n := m.Rows()
	work := make([]float64, n*n)
	inv, err := Identity(n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	var (
		i, j, col, pivotRow int
		v, scale, best, f   float64
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opInverse, err)
			}
			work[i*n+j] = v
			scale = math.Max(scale, math.Abs(v))
		}
	}
	if scale == 0 {
		return nil, matrixErrorf(opInverse, ErrSingular)
	}

	for col = 0; col < n; col++ {
		pivotRow, best = -1, 0
		for i = col; i < n; i++ {
			if a := math.Abs(work[i*n+col]); a > best {
				pivotRow, best = i, a
			}
		}
		if pivotRow < 0 || best <= DefaultEpsilon*scale {
			return nil, matrixErrorf(opInverse, ErrSingular)
		}
		if pivotRow != col {
			swapRows(work, n, pivotRow, col)
			swapRows(inv.data, n, pivotRow, col)
		}
		f = 1 / work[col*n+col]
		floats.Scale(f, work[col*n:(col+1)*n])
		floats.Scale(f, inv.data[col*n:(col+1)*n])
		for i = 0; i < n; i++ {
			if i == col {
				continue
			}
			f = work[i*n+col]
			if f == 0 {
				continue
			}
			floats.AddScaled(work[i*n:(i+1)*n], -f, work[col*n:(col+1)*n])
			floats.AddScaled(inv.data[i*n:(i+1)*n], -f, inv.data[col*n:(col+1)*n])
		}
	}

	return inv, nil
}

// swapRows exchanges rows a and b of an n-column row-major buffer.
func swapRows(buf []float64, n, a, b int) {
	ra, rb := buf[a*n:(a+1)*n], buf[b*n:(b+1)*n]
	for j := 0; j < n; j++ {
		ra[j], rb[j] = rb[j], ra[j]
	}
}

// AllClose reports whether a and b have the same shape and every pair of
// entries differs by at most tol.
func AllClose(a, b Matrix, tol float64) (bool, error) {
	if a == nil || b == nil {
		return false, matrixErrorf(opAllClose, ErrNilMatrix)
	}
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return false, nil
	}
	var (
		i, j   int
		av, bv float64
		err    error
	)
	for i = 0; i < a.Rows(); i++ {
		for j = 0; j < a.Cols(); j++ {
			if av, err = a.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, err)
			}
			if math.Abs(av-bv) > tol {
				return false, nil
			}
		}
	}

	return true, nil
}
