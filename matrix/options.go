// SPDX-License-Identifier: MIT

// Package matrix: numeric policy defaults.
// Single source of truth for tolerances used by kernels that must decide
// whether a floating value is "zero" (pivots, symmetry checks).
package matrix

// DefaultEpsilon defines the relative tolerance used by Inverse to reject
// pivots that are numerically zero compared with the largest entry.
const DefaultEpsilon = 1e-12
