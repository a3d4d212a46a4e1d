package abstract

import (
	"fmt"
	"slices"
)

// Validate checks the polytope axioms.
// MAIN DESCRIPTION:
//   - Boundedness: exactly one nullitope and one body.
//   - Incidences: Sups is the exact inverse of Subs.
//   - Diamond property: for every pair F < H two ranks apart, exactly two
//     elements G satisfy F < G < H. This implies every element strictly
//     between the nullitope and the facets has at least two subelements and
//     two superelements.
//   - Strong flag-connectivity: the polytope and every section of it are
//     flag-connected.
//
// Implementation:
//   - Stage 1: bounds and inverse scan.
//   - Stage 2: per element H of rank ≥ 1, count for every F two ranks below
//     the number of subs of H above F; all counts must be exactly 2.
//   - Stage 3: flag-connectivity of the polytope, then recursively of every
//     facet and every vertex figure. Every proper section lies in one of
//     them, so the recursion reaches all sections; each visited section is
//     memoized.
//
// Errors:
//   - ErrNotBounded, ErrBrokenInverse, *BrokenDiamondError (ErrBrokenDiamond),
//     ErrDisconnected (wrapped with the failing section).
//
// Complexity:
//   - Stage 2: O(Σ_H Σ_{G<H} |Subs(G)|).
//   - Stage 3: O(Σ over sections of their flag counts · rank).
func (a *Abstract) Validate() error {
	if err := a.checkBounds(); err != nil {
		return err
	}
	if err := a.checkInverse(); err != nil {
		return err
	}
	if err := a.checkDiamonds(); err != nil {
		return err
	}

	return a.checkConnected()
}

func (a *Abstract) checkBounds() error {
	if len(a.ranks) == 0 || len(a.ranks[0]) != 1 || len(a.ranks[len(a.ranks)-1]) != 1 {
		return fmt.Errorf("Validate: counts %v: %w", a.Counts(), ErrNotBounded)
	}

	return nil
}

func (a *Abstract) checkInverse() error {
	for r := 0; r <= a.Rank(); r++ {
		links := 0
		for i, e := range a.ranks[r+1] {
			if !slices.IsSorted(e.Subs) {
				return fmt.Errorf("Validate: rank %d index %d: unsorted subs: %w", r, i, ErrBrokenInverse)
			}
			for _, s := range e.Subs {
				if s < 0 || s >= len(a.ranks[r]) {
					return fmt.Errorf("Validate: rank %d index %d: sub %d: %w", r, i, s, ErrOutOfRange)
				}
				if _, ok := slices.BinarySearch(a.ranks[r][s].Sups, i); !ok {
					return fmt.Errorf("Validate: rank %d index %d: sub %d misses it: %w", r, i, s, ErrBrokenInverse)
				}
				links++
			}
		}
		back := 0
		for _, e := range a.ranks[r] {
			back += len(e.Sups)
		}
		if back != links {
			return fmt.Errorf("Validate: rank %d: %d sub links vs %d sup links: %w", r, links, back, ErrBrokenInverse)
		}
	}

	return nil
}

func (a *Abstract) checkDiamonds() error {
	d := a.Rank()
	for r := 0; r <= d; r++ {
		for i, e := range a.ranks[r+1] {
			if len(e.Subs) == 0 {
				return &BrokenDiamondError{Rank: r, Index: i, Below: -1, Count: 0}
			}
		}
	}
	for r := -1; r < d; r++ {
		for i, e := range a.ranks[r+1] {
			if len(e.Sups) == 0 {
				return &BrokenDiamondError{Rank: r, Index: i, Below: -1, Count: 0}
			}
		}
	}

	for r := 1; r <= d; r++ {
		counts := make(map[int]int)
		for h, e := range a.ranks[r+1] {
			clear(counts)
			for _, g := range e.Subs {
				for _, f := range a.get(r-1, g).Subs {
					counts[f]++
				}
			}
			// deterministic report: smallest offending F
			bad, badCount := -1, 0
			for f, c := range counts {
				if c != 2 && (bad < 0 || f < bad) {
					bad, badCount = f, c
				}
			}
			if bad >= 0 {
				return &BrokenDiamondError{Rank: r, Index: h, Below: bad, Count: badCount}
			}
		}
	}

	return nil
}

func (a *Abstract) checkConnected() error {
	memo := make(map[[4]int]bool)
	var visit func(lo, hi ElementRef) error
	visit = func(lo, hi ElementRef) error {
		key := [4]int{lo.Rank, lo.Index, hi.Rank, hi.Index}
		if memo[key] {
			return nil
		}
		memo[key] = true

		c := chains{a: a, lo: lo, hi: hi}
		if c.length() <= 1 {
			// rank ≤ 1 sections are connected once the diamond property holds
			return nil
		}
		rows := a.interval(lo, hi)
		ok, err := c.connected(rows)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("Validate: section (%d,%d)/(%d,%d): %w",
				hi.Rank, hi.Index, lo.Rank, lo.Index, ErrDisconnected)
		}
		// facets of the section
		for _, f := range rows[len(rows)-2] {
			if err = visit(lo, ElementRef{Rank: hi.Rank - 1, Index: f}); err != nil {
				return err
			}
		}
		// vertex figures of the section
		for _, v := range rows[1] {
			if err = visit(ElementRef{Rank: lo.Rank + 1, Index: v}, hi); err != nil {
				return err
			}
		}

		return nil
	}

	return visit(ElementRef{Rank: -1, Index: 0}, ElementRef{Rank: a.Rank(), Index: 0})
}

// IsValid is Validate() == nil.
func (a *Abstract) IsValid() bool { return a.Validate() == nil }
