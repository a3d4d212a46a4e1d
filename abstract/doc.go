// Package abstract implements abstract polytopes: ranked posets of faces
// with the incidence axioms of polytopes, independent of any coordinates.
//
// Storage is arena-style. Elements live in one flat list per rank, from the
// nullitope (rank -1) to the body (rank d), and refer to each other only by
// index. Each element keeps its subelements and superelements as sorted
// index lists; the Builder maintains the two relations as exact inverses as
// elements are pushed bottom-up, so no full rebuild is needed.
//
// What lives here:
//
//   - Builder / FromSubelements: bottom-up construction.
//   - Validate: boundedness, inverse incidences, diamond property and strong
//     flag-connectivity, reported as typed errors (ErrBrokenDiamond with
//     *BrokenDiamondError details, ErrDisconnected, ...).
//   - Dual, Petrial, Ditope, Hosotope.
//   - Flags: FlagCount, Flags (an iter.Seq), FirstFlag, FlagChange,
//     Orientable.
//   - Sections: Section, ElementPolytope, ElementFigure, VertexFigure, Facet.
//   - Products: Duopyramid, Duoprism, Duotegum, Duocomb and their
//     Pyramid/Prism/Tegum and Multi* forms.
//   - Antiprism, Omnitruncate and Compound.
//   - Shapes: Nullitope, Point, Dyad, Polygon, Simplex, Hypercube, Orthoplex.
//
// Built values are immutable: every operator returns a fresh *Abstract that
// shares no slices with its inputs, so concurrent readers never race.
//
// Example:
//
//	sq, _ := abstract.Polygon(4)
//	cube, _ := sq.Prism()
//	cube.ElementCount(2)  // 6
//	cube.FlagCount()      // 48
package abstract
