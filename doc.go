// Package polytope is an engine for abstract and concrete polytopes of any
// rank, and for the operators that build new polytopes out of old ones.
//
// What is in the box:
//
//	• Rank-graded element store with mutual sub/super incidences
//	• Validation of the polytope axioms: diamond property, strong connectivity
//	• Duals, Petrials, flags, sections, element and vertex figures
//	• Products: pyramid, prism, tegum, comb and their iterated forms
//	• Coordinates: circumsphere, edge lengths, degeneracy, affine transforms
//	• Coxeter diagrams and Wythoff constructions of uniform polytopes
//	• Mesh projection into planar polygons and triangles for renderers
//
// Under the hood, everything is organized into subpackages:
//
//	abstract/  — element store, validation, dual, Petrial, flags, products, antiprisms, shapes
//	concrete/  — vertex coordinates, measures, transforms, realized products
//	coxeter/   — diagram parsing, finite-group classification, group generation, Wythoff
//	geometry/  — points, subspaces, hyperspheres, tolerances
//	matrix/    — dense linear algebra (Cholesky, reflections, inverses)
//	mesh/      — polygon/triangle batches for display
//	polyio/    — YAML/JSON documents and OFF files
//	config/    — viper-backed engine configuration
//	cmd/polytope — command-line front end
//
// Quick example (the cube from its Coxeter diagram):
//
//	p, err := coxeter.BuildFromString(ctx, "x4o3o")
//	// p.Abstract().ElementCount(0) == 8
//
//	go get github.com/katalvlaran/polytope
package polytope
