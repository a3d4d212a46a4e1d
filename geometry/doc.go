// Package geometry holds the numeric primitives shared by the concrete,
// coxeter and mesh packages: point arithmetic, affine subspaces built by
// Gram–Schmidt, hyperspheres and the relative tolerance policy.
//
// Points are plain []float64 values. Every helper allocates its result and
// never mutates its arguments, except where the name says so (Subspace.Add
// grows the receiver).
//
// Tolerance policy:
//
//	tol = eps · max(1, max_i |coordinate_i|)
//
// All comparisons in the engine go through Tolerance/Approx so accumulated
// floating error from repeated reflections never flips a decision.
package geometry
