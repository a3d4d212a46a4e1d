package abstract

import (
	"fmt"
	"iter"
	"math/big"
	"strconv"
	"strings"
)

// Flag is a maximal chain of elements: Flag[r] is the index of its element of
// rank r, for r = 0..d-1. The nullitope and the body belong to every flag and
// are left implicit.
type Flag []int

// key renders the flag as a map key.
func (f Flag) key() string {
	var sb strings.Builder
	for i, x := range f {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.Itoa(x))
	}

	return sb.String()
}

// chains scopes flag operations to the section hi/lo, so the same code
// serves whole polytopes and their sections. Flags of the section hold the
// elements of ranks lo.Rank+1 .. hi.Rank-1.
type chains struct {
	a      *Abstract
	lo, hi ElementRef
}

func (a *Abstract) whole() chains {
	return chains{a: a, lo: ElementRef{Rank: -1}, hi: ElementRef{Rank: a.Rank()}}
}

// length is the number of elements in a flag of the section.
func (c chains) length() int { return c.hi.Rank - c.lo.Rank - 1 }

// change returns the index of the other element that may replace f[k], or a
// *BrokenDiamondError when the two neighbours of f[k] do not bound exactly
// two elements.
func (c chains) change(f Flag, k int) (int, error) {
	r := c.lo.Rank + 1 + k
	below, above := c.lo.Index, c.hi.Index
	if k > 0 {
		below = f[k-1]
	}
	if k < len(f)-1 {
		above = f[k+1]
	}
	common := intersectSorted(c.a.get(r+1, above).Subs, c.a.get(r-1, below).Sups)
	if len(common) != 2 {
		return 0, &BrokenDiamondError{Rank: r + 1, Index: above, Below: below, Count: len(common)}
	}
	if common[0] == f[k] {
		return common[1], nil
	}

	return common[0], nil
}

// first returns the lexicographically first flag that climbs from lo to hi
// through members (per-rank membership of the section), or nil if none.
func (c chains) first(rows [][]int) Flag {
	inRow := make([]map[int]bool, len(rows))
	for k, row := range rows {
		inRow[k] = make(map[int]bool, len(row))
		for _, e := range row {
			inRow[k][e] = true
		}
	}
	f := make(Flag, c.length())
	cur := c.lo.Index
	for k := range f {
		r := c.lo.Rank + k
		next := -1
		for _, s := range c.a.get(r, cur).Sups {
			if inRow[k+1][s] {
				next = s
				break
			}
		}
		if next < 0 {
			return nil
		}
		f[k], cur = next, next
	}

	return f
}

// count returns the number of flags of the section by dynamic programming
// over chains: cnt(lo) = 1, cnt(G) = Σ cnt(S) over subs S of G inside rows.
func (c chains) count(rows [][]int) *big.Int {
	prev := map[int]*big.Int{c.lo.Index: big.NewInt(1)}
	for k := 1; k < len(rows); k++ {
		r := c.lo.Rank + k
		cur := make(map[int]*big.Int, len(rows[k]))
		for _, e := range rows[k] {
			sum := new(big.Int)
			for _, s := range c.a.get(r, e).Subs {
				if v, ok := prev[s]; ok {
					sum.Add(sum, v)
				}
			}
			cur[e] = sum
		}
		prev = cur
	}
	if v, ok := prev[c.hi.Index]; ok && len(rows) > 0 {
		return v
	}

	return new(big.Int)
}

// connected reports whether every flag of the section is reachable from the
// first one by flag changes.
func (c chains) connected(rows [][]int) (bool, error) {
	if c.length() <= 0 {
		return true, nil
	}
	start := c.first(rows)
	if start == nil {
		return false, nil
	}
	total := c.count(rows)
	seen := map[string]bool{start.key(): true}
	queue := []Flag{start}
	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]
		for k := range f {
			other, err := c.change(f, k)
			if err != nil {
				return false, err
			}
			g := make(Flag, len(f))
			copy(g, f)
			g[k] = other
			if key := g.key(); !seen[key] {
				seen[key] = true
				queue = append(queue, g)
			}
		}
	}

	return total.IsInt64() && total.Int64() == int64(len(seen)), nil
}

// FlagCount returns the number of flags. For the polygon {n} this is 2n, for
// the r-simplex (r+1)!, and for the r-cube 2^r·r!.
//
// Complexity:
//   - Time O(Σ|Subs|) big-integer additions.
func (a *Abstract) FlagCount() *big.Int {
	cnt := []*big.Int{big.NewInt(1)}
	for r := 0; r <= a.Rank(); r++ {
		next := make([]*big.Int, a.ElementCount(r))
		for i := range next {
			next[i] = new(big.Int)
			for _, s := range a.get(r, i).Subs {
				next[i].Add(next[i], cnt[s])
			}
		}
		cnt = next
	}
	total := new(big.Int)
	for _, v := range cnt {
		total.Add(total, v)
	}

	return total
}

// FirstFlag returns the flag obtained by always climbing to the first
// superelement, starting at the nullitope.
func (a *Abstract) FirstFlag() (Flag, error) {
	f := make(Flag, a.Rank())
	cur := 0
	for r := range f {
		sups := a.get(r-1, cur).Sups
		if len(sups) == 0 {
			return nil, &BrokenDiamondError{Rank: r - 1, Index: cur, Below: -1, Count: 0}
		}
		f[r], cur = sups[0], sups[0]
	}

	return f, nil
}

// FlagChange returns the k-adjacent flag of f: the unique other flag that
// differs from f exactly in its rank-k element.
//
// Errors:
//   - ErrOutOfRange for a malformed flag or k outside [0, d).
//   - *BrokenDiamondError when the change is not unique.
func (a *Abstract) FlagChange(f Flag, k int) (Flag, error) {
	if len(f) != a.Rank() || k < 0 || k >= len(f) {
		return nil, fmt.Errorf("FlagChange(%d): %w", k, ErrOutOfRange)
	}
	for r, e := range f {
		if !a.has(r, e) {
			return nil, rangeErrorf("FlagChange", r, e)
		}
	}
	other, err := a.whole().change(f, k)
	if err != nil {
		return nil, err
	}
	g := make(Flag, len(f))
	copy(g, f)
	g[k] = other

	return g, nil
}

// Flags iterates over every flag in lexicographic order of
// (vertex, edge, …) indices. Each yielded Flag is a fresh slice.
//
//	for f := range p.Flags() { ... }
func (a *Abstract) Flags() iter.Seq[Flag] {
	return func(yield func(Flag) bool) {
		d := a.Rank()
		if d < 0 {
			yield(Flag{})
			return
		}
		f := make(Flag, d)
		var walk func(r, below int) bool
		walk = func(r, below int) bool {
			if r == d {
				out := make(Flag, d)
				copy(out, f)

				return yield(out)
			}
			for _, s := range a.get(r-1, below).Sups {
				f[r] = s
				if !walk(r+1, s) {
					return false
				}
			}

			return true
		}
		walk(0, 0)
	}
}

// Orientable reports whether the flags split into two classes such that
// every flag change swaps the class.
//
// Errors:
//   - *BrokenDiamondError when a flag change is not well defined.
func (a *Abstract) Orientable() (bool, error) {
	if a.Rank() < 1 {
		return true, nil
	}
	start, err := a.FirstFlag()
	if err != nil {
		return false, err
	}
	c := a.whole()
	parity := map[string]bool{start.key(): false}
	queue := []Flag{start}
	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]
		pf := parity[f.key()]
		for k := range f {
			other, err := c.change(f, k)
			if err != nil {
				return false, err
			}
			g := make(Flag, len(f))
			copy(g, f)
			g[k] = other
			key := g.key()
			if pg, ok := parity[key]; ok {
				if pg == pf {
					return false, nil
				}

				continue
			}
			parity[key] = !pf
			queue = append(queue, g)
		}
	}

	return true, nil
}
