// Package matrix offers a small dense linear-algebra toolkit.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with error-returning accessors.
//   - Kernels over the Matrix interface: Mul, MatVec, Transpose, Inverse
//     (Gauss–Jordan with partial pivoting) and AllClose.
//   - Cholesky factorization and forward substitution, used to turn a
//     Coxeter Gram matrix into mirror normals and a Wythoff seed point.
//   - Reflection, the Householder matrix of a mirror.
//
// Every kernel validates its inputs and returns sentinel errors (ErrNilMatrix,
// ErrDimensionMismatch, ErrSingular, ErrNotPositiveDefinite, ...) wrapped with
// the operation name, so callers match with errors.Is.
package matrix
