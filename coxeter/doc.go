// Package coxeter builds polytopes from Coxeter diagrams.
//
// A Diagram lists n mirrors through the origin of Rⁿ, the angle π·d/m
// between each pair (label m/d, 2 meaning orthogonal) and, per mirror, how
// far the seed point sits from it. Diagrams are usually written inline:
//
//	x4o3o          the cube
//	o3x3o3o        the rectified 5-cell
//	x3o3o *b3o     the demitesseract (D4 branch via a virtual node)
//	x5/2o5o        the small stellated dodecahedron
//
// The pipeline:
//
//   - Parse / NewDiagram / Linear build a *Diagram.
//   - Classify names each connected component (A, B, D, E, F, H, I2) or
//     fails with ErrInfiniteGroup; EstimatedOrder gives the exact order.
//   - Normals factors the Gram matrix by Cholesky: the rows of L are the
//     mirror normals, and a failed factorization means the mirrors do not
//     close up in spherical space.
//   - Generate enumerates the group breadth-first, optionally with several
//     workers, always numbering elements the same way.
//   - Wythoff places the seed, takes its orbit as vertices and reads faces
//     off the cosets of generator subgroups; BuildFromString does
//     Parse+Wythoff.
//
// Progress is logged through the logr.Logger carried by the context, if
// any (logr.NewContext); V(1) reports frontier and orbit sizes.
package coxeter
