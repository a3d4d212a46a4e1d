package abstract

import (
	"fmt"
)

// productKind selects which extreme elements take part in a pair product.
//
//	kind      nullitopes  bodies   rank of result
//	pyramid   kept        kept     p + q + 1
//	prism     dropped     kept     p + q
//	tegum     kept        dropped  p + q
//	comb      dropped     dropped  p + q - 1   (plus a new nullitope and body)
type productKind struct {
	name    string
	withMin bool
	withMax bool
}

var (
	kindPyramid = productKind{name: "Duopyramid", withMin: true, withMax: true}
	kindPrism   = productKind{name: "Duoprism", withMin: false, withMax: true}
	kindTegum   = productKind{name: "Duotegum", withMin: true, withMax: false}
	kindComb    = productKind{name: "Duocomb", withMin: false, withMax: false}
)

// product builds the pair product of p and q.
// MAIN DESCRIPTION:
//   - Every kept pair (F, G) of elements of p and q is an element of the
//     result. With internal rank slots a = rank(F)+1 and b = rank(G)+1 the
//     pair lives at slot a+b (pyramid, tegum) or a+b-1 (prism, comb).
//   - The subelements of (F, G) are (F', G) for F' a sub of F and (F, G')
//     for G' a sub of G, as long as those pairs are kept.
//   - Products that drop the nullitopes get a fresh nullitope below the
//     vertex pairs; those that drop the bodies get a fresh body above the
//     facet pairs.
//
// Implementation:
//   - Stage 1: offsets[a][b] gives where the block of pairs (a, b) starts in
//     its result rank; blocks are laid out by ascending a, then F, then G.
//   - Stage 2: fill Subs of every pair; sort.
//   - Stage 3: add the fresh extremes; rebuild Sups.
//
// Complexity:
//   - Time O(Σ pairs · (|Subs F| + |Subs G|)), Space same.
func product(p, q *Abstract, kind productKind) *Abstract {
	pn, qn := len(p.ranks), len(q.ranks) // slots 0..pn-1, 0..qn-1
	aLo, bLo := 0, 0
	aHi, bHi := pn-1, qn-1
	if !kind.withMin {
		aLo, bLo = 1, 1
	}
	if !kind.withMax {
		aHi, bHi = pn-2, qn-2
	}
	shift := 0
	if !kind.withMin {
		shift = 1 // slot of (a, b) is a+b-1, slot 0 is the fresh nullitope
	}

	// slots of the kept pairs range over [aLo+bLo-shift, aHi+bHi-shift]
	lowSlot := aLo + bLo - shift
	highSlot := aHi + bHi - shift
	nSlots := highSlot + 1
	if !kind.withMax {
		nSlots++ // fresh body
	}
	out := &Abstract{ranks: make([]ElementList, nSlots)}

	offsets := make([][]int, pn)
	for a := range offsets {
		offsets[a] = make([]int, qn)
	}
	for s := lowSlot; s <= highSlot; s++ {
		total := 0
		for a := aLo; a <= aHi; a++ {
			b := s + shift - a
			if b < bLo || b > bHi {
				continue
			}
			offsets[a][b] = total
			total += len(p.ranks[a]) * len(q.ranks[b])
		}
		out.ranks[s] = make(ElementList, total)
	}

	for a := aLo; a <= aHi; a++ {
		for b := bLo; b <= bHi; b++ {
			s := a + b - shift
			qc := len(q.ranks[b])
			for i, fe := range p.ranks[a] {
				for j, ge := range q.ranks[b] {
					var subs []int
					if a-1 >= aLo {
						qa := len(q.ranks[b])
						for _, f := range fe.Subs {
							subs = append(subs, offsets[a-1][b]+f*qa+j)
						}
					}
					if b-1 >= bLo {
						qb := len(q.ranks[b-1])
						for _, g := range ge.Subs {
							subs = append(subs, offsets[a][b-1]+i*qb+g)
						}
					}
					if len(subs) == 0 && s > 0 {
						subs = []int{0} // vertex pair above the fresh nullitope
					}
					// P-side block precedes the Q-side block, both ascending
					out.ranks[s][offsets[a][b]+i*qc+j].Subs = subs
				}
			}
		}
	}

	if !kind.withMin {
		out.ranks[0] = ElementList{{}}
	}
	if !kind.withMax {
		top := make([]int, len(out.ranks[highSlot]))
		for i := range top {
			top[i] = i
		}
		out.ranks[nSlots-1] = ElementList{{Subs: top}}
	}
	out.rebuildSups()

	return out
}

// Duopyramid returns the pyramid product (join) of p and q, of rank
// p.Rank()+q.Rank()+1. Elements are pairs of any elements of p and q.
func Duopyramid(p, q *Abstract) *Abstract { return product(p, q, kindPyramid) }

// Duoprism returns the prism (Cartesian) product of p and q, of rank
// p.Rank()+q.Rank().
//
// Errors:
//   - ErrInvalidOperand when either operand is the nullitope.
func Duoprism(p, q *Abstract) (*Abstract, error) {
	if p.Rank() < 0 || q.Rank() < 0 {
		return nil, fmt.Errorf("%s: ranks %d, %d: %w", kindPrism.name, p.Rank(), q.Rank(), ErrInvalidOperand)
	}

	return product(p, q, kindPrism), nil
}

// Duotegum returns the tegum (direct sum) of p and q, of rank
// p.Rank()+q.Rank(): the dual of the prism of the duals.
//
// Errors:
//   - ErrInvalidOperand when either operand is the nullitope.
func Duotegum(p, q *Abstract) (*Abstract, error) {
	if p.Rank() < 0 || q.Rank() < 0 {
		return nil, fmt.Errorf("%s: ranks %d, %d: %w", kindTegum.name, p.Rank(), q.Rank(), ErrInvalidOperand)
	}

	return product(p, q, kindTegum), nil
}

// Duocomb returns the comb (honeycomb) product of p and q, of rank
// p.Rank()+q.Rank()-1 once the fresh nullitope and body are counted.
//
// Errors:
//   - ErrInvalidOperand when either operand has rank below 1.
func Duocomb(p, q *Abstract) (*Abstract, error) {
	if p.Rank() < 1 || q.Rank() < 1 {
		return nil, fmt.Errorf("%s: ranks %d, %d: %w", kindComb.name, p.Rank(), q.Rank(), ErrInvalidOperand)
	}

	return product(p, q, kindComb), nil
}

// Pyramid returns the pyramid over p: one rank higher, one extra apex.
func (a *Abstract) Pyramid() *Abstract { return Duopyramid(a, Point()) }

// Prism returns the prism over p.
func (a *Abstract) Prism() (*Abstract, error) { return Duoprism(a, Dyad()) }

// Tegum returns the tegum (bipyramid) over p.
func (a *Abstract) Tegum() (*Abstract, error) { return Duotegum(a, Dyad()) }

// Multipyramid folds Duopyramid over its operands. No operands yields the
// nullitope, the identity of the pyramid product.
func Multipyramid(ps ...*Abstract) *Abstract {
	out := Nullitope()
	for _, p := range ps {
		out = Duopyramid(out, p)
	}

	return out
}

// Multiprism folds Duoprism over its operands. No operands yields the point.
func Multiprism(ps ...*Abstract) (*Abstract, error) {
	out := Point()
	for _, p := range ps {
		var err error
		if out, err = Duoprism(out, p); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Multitegum folds Duotegum over its operands. No operands yields the point.
func Multitegum(ps ...*Abstract) (*Abstract, error) {
	out := Point()
	for _, p := range ps {
		var err error
		if out, err = Duotegum(out, p); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Multicomb folds Duocomb over its operands, starting from the first. No
// operands yields the nullitope; a single operand is returned as a copy.
func Multicomb(ps ...*Abstract) (*Abstract, error) {
	if len(ps) == 0 {
		return Nullitope(), nil
	}
	out := ps[0].Clone()
	for _, p := range ps[1:] {
		var err error
		if out, err = Duocomb(out, p); err != nil {
			return nil, err
		}
	}

	return out, nil
}
