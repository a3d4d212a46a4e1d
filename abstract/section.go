package abstract

import (
	"fmt"
	"slices"
)

// interval returns, per rank lo.Rank..hi.Rank, the ascending indices of the
// elements G with lo ≤ G ≤ hi. Row 0 is {lo.Index}; the last row is
// {hi.Index}, or empty when lo is not below hi.
//
// Implementation:
//   - lo is the nullitope: the down-closure of hi via Subs.
//   - hi is the body: the up-closure of lo via Sups.
//   - otherwise: the up-closure of lo restricted to the down-closure of hi.
//
// Complexity:
//   - Time O(size of the closures · log), Space O(size of the closures).
func (a *Abstract) interval(lo, hi ElementRef) [][]int {
	span := hi.Rank - lo.Rank
	out := make([][]int, span+1)
	if span < 0 {
		return out
	}
	if lo.Rank == -1 && len(a.ranks[0]) == 1 {
		down := a.closure(hi, lo.Rank, nil)
		if !down[0][lo.Index] {
			return out
		}
		for k := range out {
			out[k] = sortedKeys(down[k])
		}

		return out
	}
	var down []map[int]bool
	if hi.Rank != a.Rank() || len(a.ranks[len(a.ranks)-1]) != 1 {
		down = a.closure(hi, lo.Rank, nil)
		if !down[0][lo.Index] {
			return out
		}
	}
	up := a.closure(lo, hi.Rank, down)
	if !up[span][hi.Index] {
		return out
	}
	for k := range out {
		out[k] = sortedKeys(up[k])
	}

	return out
}

// closure walks from e toward rank stop (down via Subs when stop < e.Rank,
// up via Sups otherwise). The result is indexed by rank offset from
// min(e.Rank, stop). When within is non-nil, only elements it marks are kept.
func (a *Abstract) closure(e ElementRef, stop int, within []map[int]bool) []map[int]bool {
	base := min(e.Rank, stop)
	span := max(e.Rank, stop) - base
	out := make([]map[int]bool, span+1)
	for k := range out {
		out[k] = make(map[int]bool)
	}
	out[e.Rank-base][e.Index] = true
	frontier := []int{e.Index}
	step := 1
	if stop < e.Rank {
		step = -1
	}
	for r := e.Rank; r != stop; r += step {
		nk := r + step - base
		var next []int
		for _, x := range frontier {
			el := a.get(r, x)
			links := el.Sups
			if step < 0 {
				links = el.Subs
			}
			for _, y := range links {
				if out[nk][y] || (within != nil && !within[nk][y]) {
					continue
				}
				out[nk][y] = true
				next = append(next, y)
			}
		}
		frontier = next
	}

	return out
}

func sortedKeys(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)

	return out
}

// Section returns the section hi/lo: every element G with lo ≤ G ≤ hi,
// re-indexed as a polytope of rank hi.Rank-lo.Rank-1 whose nullitope is lo
// and whose body is hi.
//
// Errors:
//   - ErrOutOfRange for unknown elements.
//   - ErrInvalidOperand when lo is not below (or equal to) hi.
func (a *Abstract) Section(lo, hi ElementRef) (*Abstract, error) {
	if !a.has(lo.Rank, lo.Index) {
		return nil, rangeErrorf("Section", lo.Rank, lo.Index)
	}
	if !a.has(hi.Rank, hi.Index) {
		return nil, rangeErrorf("Section", hi.Rank, hi.Index)
	}
	if hi.Rank < lo.Rank {
		return nil, fmt.Errorf("Section: rank %d above rank %d: %w", lo.Rank, hi.Rank, ErrInvalidOperand)
	}
	rows := a.interval(lo, hi)
	if len(rows[len(rows)-1]) == 0 {
		return nil, fmt.Errorf("Section: (%d,%d) is not below (%d,%d): %w",
			lo.Rank, lo.Index, hi.Rank, hi.Index, ErrInvalidOperand)
	}

	return a.fromRows(lo.Rank, rows), nil
}

// fromRows materializes the sub-poset given by per-rank index rows starting
// at rank base, remapping indices and rebuilding Sups.
func (a *Abstract) fromRows(base int, rows [][]int) *Abstract {
	out := &Abstract{ranks: make([]ElementList, len(rows))}
	var prev map[int]int // old index -> new index at the previous rank
	for k, row := range rows {
		cur := make(map[int]int, len(row))
		list := make(ElementList, len(row))
		for ni, oi := range row {
			cur[oi] = ni
			if k == 0 {
				continue
			}
			for _, s := range a.get(base+k, oi).Subs {
				if ns, ok := prev[s]; ok {
					list[ni].Subs = append(list[ni].Subs, ns)
				}
			}
			// rows are ascending, so remapped subs stay ascending
		}
		out.ranks[k] = list
		prev = cur
	}
	out.rebuildSups()

	return out
}

// ElementPolytope returns element (r, i) as a polytope of rank r: the
// section between the nullitope and the element.
func (a *Abstract) ElementPolytope(r, i int) (*Abstract, error) {
	return a.Section(ElementRef{Rank: -1, Index: 0}, ElementRef{Rank: r, Index: i})
}

// ElementFigure returns the section between element (r, i) and the body.
func (a *Abstract) ElementFigure(r, i int) (*Abstract, error) {
	return a.Section(ElementRef{Rank: r, Index: i}, ElementRef{Rank: a.Rank(), Index: 0})
}

// VertexFigure returns the element figure of vertex i.
func (a *Abstract) VertexFigure(i int) (*Abstract, error) { return a.ElementFigure(0, i) }

// Facet returns facet i as a polytope.
func (a *Abstract) Facet(i int) (*Abstract, error) { return a.ElementPolytope(a.Rank()-1, i) }
