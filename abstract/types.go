// SPDX-License-Identifier: MIT

// Package abstract: rank-graded element store.
//
// Storage model:
//   - One ElementList per rank, from -1 (nullitope) to d (body), held in a
//     flat slice addressed by rank+1.
//   - Every Element keeps sorted, duplicate-free index lists of its
//     subelements (rank-1) and superelements (rank+1). Back-references are
//     plain indices; no element owns another.
//   - A built *Abstract is read-only. Accessors hand out copies.
package abstract

import (
	"slices"
)

// Element is one face of a polytope.
//   - Subs: indices of the elements one rank below contained in it.
//   - Sups: indices of the elements one rank above containing it; always the
//     exact inverse of Subs.
type Element struct {
	Subs []int
	Sups []int
}

// clone returns a deep copy of e.
func (e Element) clone() Element {
	return Element{Subs: slices.Clone(e.Subs), Sups: slices.Clone(e.Sups)}
}

// ElementList is the set of elements of one rank.
type ElementList []Element

func (l ElementList) clone() ElementList {
	out := make(ElementList, len(l))
	for i := range l {
		out[i] = l[i].clone()
	}

	return out
}

// ElementRef addresses an element by rank and index.
type ElementRef struct {
	Rank  int
	Index int
}

// Abstract is an abstract polytope: its incidence structure only.
type Abstract struct {
	ranks []ElementList // ranks[r+1] holds the elements of rank r
}

// Rank returns d, the rank of the body. The nullitope has rank -1.
func (a *Abstract) Rank() int { return len(a.ranks) - 2 }

// ElementCount returns the number of elements of rank r, or 0 when r is
// outside [-1, d].
func (a *Abstract) ElementCount(r int) int {
	if r < -1 || r > a.Rank() {
		return 0
	}

	return len(a.ranks[r+1])
}

// Counts returns the element counts for ranks -1..d.
func (a *Abstract) Counts() []int {
	out := make([]int, len(a.ranks))
	for i, l := range a.ranks {
		out[i] = len(l)
	}

	return out
}

// Elements returns a copy of the elements of rank r.
func (a *Abstract) Elements(r int) ([]Element, error) {
	if r < -1 || r > a.Rank() {
		return nil, rangeErrorf("Elements", r, 0)
	}

	return a.ranks[r+1].clone(), nil
}

// Element returns a copy of element (r, i).
func (a *Abstract) Element(r, i int) (Element, error) {
	if !a.has(r, i) {
		return Element{}, rangeErrorf("Element", r, i)
	}

	return a.ranks[r+1][i].clone(), nil
}

// Subelements returns the indices of the rank r-1 elements contained in (r, i).
func (a *Abstract) Subelements(r, i int) ([]int, error) {
	if !a.has(r, i) {
		return nil, rangeErrorf("Subelements", r, i)
	}

	return slices.Clone(a.ranks[r+1][i].Subs), nil
}

// Superelements returns the indices of the rank r+1 elements containing (r, i).
func (a *Abstract) Superelements(r, i int) ([]int, error) {
	if !a.has(r, i) {
		return nil, rangeErrorf("Superelements", r, i)
	}

	return slices.Clone(a.ranks[r+1][i].Sups), nil
}

// Vertices returns, for every element of rank r, the sorted indices of the
// vertices it contains.
func (a *Abstract) Vertices(r int) ([][]int, error) {
	if r < -1 || r > a.Rank() {
		return nil, rangeErrorf("Vertices", r, 0)
	}
	out := make([][]int, a.ElementCount(r))
	for i := range out {
		out[i] = a.vertexSet(r, i)
	}

	return out, nil
}

// Clone returns a deep copy of a.
func (a *Abstract) Clone() *Abstract {
	out := &Abstract{ranks: make([]ElementList, len(a.ranks))}
	for i, l := range a.ranks {
		out.ranks[i] = l.clone()
	}

	return out
}

// ---------- internal accessors (unchecked) ----------

func (a *Abstract) has(r, i int) bool {
	return r >= -1 && r <= a.Rank() && i >= 0 && i < len(a.ranks[r+1])
}

func (a *Abstract) get(r, i int) *Element { return &a.ranks[r+1][i] }

// vertexSet collects the vertices below (r, i) by walking subs downward.
func (a *Abstract) vertexSet(r, i int) []int {
	if r < 0 {
		return []int{}
	}
	cur := []int{i}
	for k := r; k > 0; k-- {
		var next []int
		for _, e := range cur {
			next = append(next, a.get(k, e).Subs...)
		}
		slices.Sort(next)
		cur = slices.Compact(next)
	}

	return cur
}

// rebuildSups recomputes every Sups list from the Subs lists. Used by
// operators that assemble Subs wholesale (products, sections).
func (a *Abstract) rebuildSups() {
	for _, l := range a.ranks {
		for i := range l {
			l[i].Sups = nil
		}
	}
	for k := 1; k < len(a.ranks); k++ {
		for i, e := range a.ranks[k] {
			for _, s := range e.Subs {
				a.ranks[k-1][s].Sups = append(a.ranks[k-1][s].Sups, i)
			}
		}
	}
	// appended in ascending i, already sorted
}

// intersectSorted returns the common entries of two ascending lists.
func intersectSorted(x, y []int) []int {
	var out []int
	i, j := 0, 0
	for i < len(x) && j < len(y) {
		switch {
		case x[i] < y[j]:
			i++
		case x[i] > y[j]:
			j++
		default:
			out = append(out, x[i])
			i++
			j++
		}
	}

	return out
}
