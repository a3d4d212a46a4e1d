// SPDX-License-Identifier: MIT

// Package matrix: Cholesky factorization, triangular solves and reflection
// builders. These are the kernels the Coxeter engine leans on: the Gram
// matrix of a mirror system factors as L·Lᵀ exactly when the reflection
// group is finite, the rows of L are unit mirror normals, and the Wythoff
// seed solves L·p = b.
package matrix

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Cholesky factors a symmetric positive-definite matrix as m = L·Lᵀ and
// returns the lower-triangular L.
// MAIN DESCRIPTION:
//   - Classic Cholesky–Banachiewicz, row by row.
//
// Implementation:
//   - Stage 1: validate non-nil, square, symmetric within tol.
//   - Stage 2: for i, j ≤ i: s = m[i,j] − Σ_k<j L[i,k]·L[j,k];
//     diagonal L[i,i] = √s requires s > tol, else ErrNotPositiveDefinite;
//     off-diagonal L[i,j] = s / L[j,j].
//
// Inputs:
//   - m: symmetric matrix.
//   - tol: non-negative tolerance for symmetry and pivot positivity.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrAsymmetry, ErrNotPositiveDefinite
//     (wrapped with "Cholesky").
//
// Determinism:
//   - Fixed i→j→k loop order.
//
// Complexity:
//   - Time O(n³/3), Space O(n²).
func Cholesky(m Matrix, tol float64) (*Dense, error) {
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	n := m.Rows()
	l, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	var (
		i, j int
		s    float64
	)
	for i = 0; i < n; i++ {
		for j = 0; j <= i; j++ {
			if s, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opCholesky, err)
			}
			// rows i and j of L restricted to columns < j
			s -= floats.Dot(l.data[i*n:i*n+j], l.data[j*n:j*n+j])
			if i == j {
				if s <= tol {
					return nil, matrixErrorf(opCholesky, ErrNotPositiveDefinite)
				}
				l.data[i*n+i] = math.Sqrt(s)
			} else {
				l.data[i*n+j] = s / l.data[j*n+j]
			}
		}
	}

	return l, nil
}

// ForwardSubstitute solves L·x = b for lower-triangular L.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch, ErrSingular on a zero
//     diagonal entry.
//
// Complexity:
//   - Time O(n²), Space O(n).
func ForwardSubstitute(l Matrix, b []float64) ([]float64, error) {
	if err := ValidateSquare(l); err != nil {
		return nil, matrixErrorf(opForward, err)
	}
	n := l.Rows()
	if err := ValidateVecLen(b, n); err != nil {
		return nil, matrixErrorf(opForward, err)
	}
	x := make([]float64, n)
	var (
		i, k      int
		sum, v, d float64
		err       error
	)
	for i = 0; i < n; i++ {
		sum = ZeroSum
		for k = 0; k < i; k++ {
			if v, err = l.At(i, k); err != nil {
				return nil, matrixErrorf(opForward, err)
			}
			sum += v * x[k]
		}
		if d, err = l.At(i, i); err != nil {
			return nil, matrixErrorf(opForward, err)
		}
		if d == 0 {
			return nil, matrixErrorf(opForward, ErrSingular)
		}
		x[i] = (b[i] - sum) / d
	}

	return x, nil
}

// Reflection returns the Householder matrix I − 2·n·nᵀ/(n·n) that mirrors
// space through the hyperplane orthogonal to normal.
//
// Errors:
//   - ErrInvalidDimensions for an empty normal, ErrZeroVector for a zero one.
//
// Complexity:
//   - Time O(d²), Space O(d²).
func Reflection(normal []float64) (*Dense, error) {
	d := len(normal)
	if d == 0 {
		return nil, matrixErrorf(opReflect, ErrInvalidDimensions)
	}
	nn := floats.Dot(normal, normal)
	if nn == 0 {
		return nil, matrixErrorf(opReflect, ErrZeroVector)
	}
	r, err := Identity(d)
	if err != nil {
		return nil, matrixErrorf(opReflect, err)
	}
	var i, j int
	for i = 0; i < d; i++ {
		for j = 0; j < d; j++ {
			r.data[i*d+j] -= 2 * normal[i] * normal[j] / nn
		}
	}

	return r, nil
}
