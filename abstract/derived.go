package abstract

import (
	"fmt"
	"math/bits"
	"slices"
)

// pairRef addresses a comparable pair F ≤ G of elements.
type pairRef struct {
	rf, f, rg, g int
}

// Antiprism returns the antiprism of a, one rank higher.
// MAIN DESCRIPTION:
//   - The proper elements are the pairs F ≤ G of a, of rank
//     rank(F) - rank(G) + d. A vertex of a paired with the body is a base
//     vertex; the nullitope paired with a facet is a vertex of the
//     opposite, dual base.
//   - The subelements of (F, G) are (F', G) for F' a sub of F and (F, G')
//     for G' a sup of G. A fresh body closes the result.
//
// Implementation:
//   - Stage 1: collect the up-set of every element, rank by rank.
//   - Stage 2: enumerate pairs by descending rank(F), then index of F, then
//     ascending rank(G) and index of G, so the base vertices come before the
//     dual vertices and both keep a's order.
//   - Stage 3: fill Subs, add the body, rebuild Sups.
//
// Errors:
//   - ErrInvalidOperand for the nullitope.
//
// Complexity:
//   - Time O(S·(|Subs|+|Sups|)) for S comparable pairs, Space O(S).
func (a *Abstract) Antiprism() (*Abstract, error) {
	d := a.Rank()
	if d < 0 {
		return nil, fmt.Errorf("Antiprism: rank %d: %w", d, ErrInvalidOperand)
	}

	// up[r+1][i][s+1] lists the elements of rank s above (r, i)
	up := make([][][][]int, d+2)
	for r := -1; r <= d; r++ {
		up[r+1] = make([][][]int, a.ElementCount(r))
		for i := range up[r+1] {
			sets := make([][]int, d+2)
			sets[r+1] = []int{i}
			for s := r + 1; s <= d; s++ {
				var next []int
				for _, e := range sets[s] {
					next = append(next, a.get(s-1, e).Sups...)
				}
				slices.Sort(next)
				sets[s+1] = slices.Compact(next)
			}
			up[r+1][i] = sets
		}
	}

	out := &Abstract{ranks: make([]ElementList, d+3)}
	index := make(map[pairRef]int)
	pairs := make([][]pairRef, d+2)
	for rf := d; rf >= -1; rf-- {
		for f := range up[rf+1] {
			for rg := rf; rg <= d; rg++ {
				for _, g := range up[rf+1][f][rg+1] {
					slot := rf - rg + d + 1
					ref := pairRef{rf: rf, f: f, rg: rg, g: g}
					index[ref] = len(pairs[slot])
					pairs[slot] = append(pairs[slot], ref)
				}
			}
		}
	}
	for slot, refs := range pairs {
		list := make(ElementList, len(refs))
		for k, ref := range refs {
			var subs []int
			if ref.rf >= 0 {
				for _, s := range a.get(ref.rf, ref.f).Subs {
					subs = append(subs, index[pairRef{rf: ref.rf - 1, f: s, rg: ref.rg, g: ref.g}])
				}
			}
			if ref.rg < d {
				for _, s := range a.get(ref.rg, ref.g).Sups {
					subs = append(subs, index[pairRef{rf: ref.rf, f: ref.f, rg: ref.rg + 1, g: s}])
				}
			}
			slices.Sort(subs)
			list[k].Subs = subs
		}
		out.ranks[slot] = list
	}
	top := make([]int, len(out.ranks[d+1]))
	for i := range top {
		top[i] = i
	}
	out.ranks[d+2] = ElementList{{Subs: top}}
	out.rebuildSups()

	return out, nil
}

// Omnitruncate returns the omnitruncate of a: its vertices are the flags of
// a, numbered in Flags order, and its k-faces are the orbits of flags under
// the flag changes of a k-subset of ranks.
//
// The face from the orbit of f under ranks J has, for every j in J, the
// orbits under J∖{j} of its flags as subfaces. Faces of one rank are listed
// by ascending rank mask, then by their first flag.
//
// Errors:
//   - ErrInvalidOperand for rank below 1.
//   - *BrokenDiamondError when a flag change is not well defined.
//
// Complexity:
//   - Time O(2ᵈ·|flags|·d), Space O(C(d, d/2)·|flags|).
func (a *Abstract) Omnitruncate() (*Abstract, error) {
	d := a.Rank()
	if d < 1 {
		return nil, fmt.Errorf("Omnitruncate: rank %d: %w", d, ErrInvalidOperand)
	}
	var flags []Flag
	index := make(map[string]int)
	for f := range a.Flags() {
		index[f.key()] = len(flags)
		flags = append(flags, f)
	}
	c := a.whole()

	out := &Abstract{ranks: make([]ElementList, d+2)}
	out.ranks[0] = ElementList{{}}
	out.ranks[1] = make(ElementList, len(flags))
	identity := make([]int, len(flags))
	for i := range flags {
		out.ranks[1][i].Subs = []int{0}
		identity[i] = i
	}

	prev := map[uint][]int{0: identity}
	for k := 1; k < d; k++ {
		cur := make(map[uint][]int)
		var list ElementList
		for mask := uint(1); mask < 1<<d; mask++ {
			if bits.OnesCount(mask) != k {
				continue
			}
			faceOf := make([]int, len(flags))
			for i := range faceOf {
				faceOf[i] = -1
			}
			for s := range flags {
				if faceOf[s] >= 0 {
					continue
				}
				face := len(list)
				orbit := []int{s}
				faceOf[s] = face
				for n := 0; n < len(orbit); n++ {
					f := flags[orbit[n]]
					for j := 0; j < d; j++ {
						if mask&(1<<j) == 0 {
							continue
						}
						other, err := c.change(f, j)
						if err != nil {
							return nil, fmt.Errorf("Omnitruncate: %w", err)
						}
						g := slices.Clone(f)
						g[j] = other
						if m := index[g.key()]; faceOf[m] < 0 {
							faceOf[m] = face
							orbit = append(orbit, m)
						}
					}
				}
				var subs []int
				for j := 0; j < d; j++ {
					if mask&(1<<j) == 0 {
						continue
					}
					below := prev[mask&^(1<<j)]
					for _, m := range orbit {
						subs = append(subs, below[m])
					}
				}
				slices.Sort(subs)
				list = append(list, Element{Subs: slices.Compact(subs)})
			}
			cur[mask] = faceOf
		}
		out.ranks[k+1] = list
		prev = cur
	}
	top := make([]int, len(out.ranks[d]))
	for i := range top {
		top[i] = i
	}
	out.ranks[d+1] = ElementList{{Subs: top}}
	out.rebuildSups()

	return out, nil
}

// Compound returns the components side by side under one nullitope and one
// body. The result is not strongly connected unless there is a single
// component, so Validate rejects it with ErrDisconnected. No components
// yields the nullitope.
//
// Errors:
//   - ErrInvalidOperand when ranks differ, or several components have rank
//     below 1.
func Compound(ps ...*Abstract) (*Abstract, error) {
	switch len(ps) {
	case 0:
		return Nullitope(), nil
	case 1:
		return ps[0].Clone(), nil
	}
	d := ps[0].Rank()
	for _, p := range ps {
		if p.Rank() != d || d < 1 {
			return nil, fmt.Errorf("Compound: ranks %d and %d: %w", d, p.Rank(), ErrInvalidOperand)
		}
	}

	out := &Abstract{ranks: make([]ElementList, d+2)}
	out.ranks[0] = ElementList{{}}
	offsets := make([]int, d+1) // running offsets per slot 1..d
	for _, p := range ps {
		for slot := 1; slot <= d; slot++ {
			for _, e := range p.ranks[slot] {
				subs := []int{0}
				if slot > 1 {
					subs = make([]int, len(e.Subs))
					for k, s := range e.Subs {
						subs[k] = s + offsets[slot-1]
					}
				}
				out.ranks[slot] = append(out.ranks[slot], Element{Subs: subs})
			}
		}
		for slot := 1; slot <= d; slot++ {
			offsets[slot] = len(out.ranks[slot])
		}
	}
	top := make([]int, len(out.ranks[d]))
	for i := range top {
		top[i] = i
	}
	out.ranks[d+1] = ElementList{{Subs: top}}
	out.rebuildSups()

	return out, nil
}
