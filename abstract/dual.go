package abstract

import "fmt"

// Dual returns the dual polytope: the element of rank r becomes an element
// of rank d-1-r, and subelements and superelements trade places.
//
// Because Sups is kept as the exact inverse of Subs, the swap is a relabeling
// and needs no rebuild. Dual(Dual(P)) equals P element for element.
//
// Complexity:
//   - Time O(total incidences), Space O(total incidences).
func (a *Abstract) Dual() *Abstract {
	n := len(a.ranks)
	out := &Abstract{ranks: make([]ElementList, n)}
	for k, l := range a.ranks {
		list := make(ElementList, len(l))
		for i, e := range l {
			c := e.clone()
			list[i] = Element{Subs: c.Sups, Sups: c.Subs}
		}
		out.ranks[n-1-k] = list
	}

	return out
}

// Ditope returns the ditope of a: two copies of a glued along their common
// boundary, as the two facets of a polytope one rank higher.
//
// Errors:
//   - ErrInvalidOperand for the nullitope or an unbounded input.
func (a *Abstract) Ditope() (*Abstract, error) {
	if a.Rank() < 0 || len(a.ranks[len(a.ranks)-1]) != 1 {
		return nil, fmt.Errorf("Ditope: rank %d: %w", a.Rank(), ErrInvalidOperand)
	}
	out := a.Clone()
	d := a.Rank()
	top := out.ranks[d+1]
	twin := Element{Subs: append([]int(nil), top[0].Subs...)}
	for _, s := range twin.Subs {
		out.ranks[d][s].Sups = append(out.ranks[d][s].Sups, 1)
	}
	top = append(top, twin)
	top[0].Sups = []int{0}
	top[1].Sups = []int{0}
	out.ranks[d+1] = top
	out.ranks = append(out.ranks, ElementList{{Subs: []int{0, 1}}})

	return out, nil
}

// Hosotope returns the dual of the ditope of the dual: the polytope with
// two apex vertices joined through every element of a.
func (a *Abstract) Hosotope() (*Abstract, error) {
	di, err := a.Dual().Ditope()
	if err != nil {
		return nil, fmt.Errorf("Hosotope: %w", err)
	}

	return di.Dual(), nil
}
