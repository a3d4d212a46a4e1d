// Package polyio reads and writes concrete polytopes.
//
// A Document is the serialized form: rank, ambient dimension, one
// coordinate list per vertex and, for every rank from edges up to ridges,
// the subelement lists of each element. The nullitope, the vertices'
// links to it and the body are implicit. Documents travel as YAML or JSON
// and are checked with validator tags before anything is built.
//
// Rank-3 polytopes in three dimensions also round-trip through OFF, where
// edges are implicit in the face cycles.
package polyio
