// Package concrete realizes abstract polytopes in Euclidean space.
//
// A Polytope pairs an *abstract.Abstract with one coordinate vector per
// vertex. On top of the incidence structure it offers:
//
//   - measures: Circumsphere, Circumradius, EdgeLength(s), IsEquilateral,
//     Gravicenter, IsFlat;
//   - degeneracy checks: CheckDegenerate / IsDegenerate report coincident
//     vertices, zero-length edges and coinciding elements;
//   - transforms: AffineTransform, Translate, Scale, Recenter;
//   - operators: Dual (reciprocation about a hypersphere), Petrial,
//     ElementPolytope, and the products Pyramid, Duopyramid, Prism,
//     Duoprism, Tegum, Duotegum, Duocomb, Multiprism, Multitegum,
//     Multicomb, Antiprism and Compound;
//   - shapes: Point, Dyad, Polygon, Simplex, Hypercube, Orthoplex, all
//     with unit edges where that makes sense.
//
// Every comparison uses the relative tolerance eps·max(1, |largest
// coordinate|), eps set by WithEpsilon (default geometry.DefaultEpsilon).
// Values are immutable; operators always return fresh polytopes.
package concrete
