// Package mesh flattens a concrete polytope into polygon and triangle
// batches for a renderer.
//
// Every 2-face becomes a Polygon: its vertex indices ordered around the
// face's edge cycle, triangulated by ear clipping in the face's own plane.
// Polygons are grouped into one Batch per element of a chosen rank
// (facets by default), so a renderer can draw, hide or colour cells of a
// 4-polytope independently. Faces that do not lie in a plane are kept,
// flagged Planar=false and fan-triangulated.
//
// A Mesh shares no memory with the polytope it came from.
//
//	m, err := mesh.Project(cube)
//	// len(m.Batches) == 6, len(m.Triangles()) == 12
package mesh
