// SPDX-License-Identifier: MIT

package abstract

import (
	"fmt"
	"slices"
)

// Builder assembles an Abstract bottom-up, one rank at a time.
//
// Every pushed element auto-registers itself as a superelement of each of
// its subelements, so the sub/super relations are mutual inverses at every
// step without a full rebuild. A Builder is single-use: after Build it
// rejects further mutation with ErrBuilderSpent.
//
// Typical use:
//
//	b := abstract.NewBuilder()
//	_ = b.PushMin()
//	_ = b.PushVertices(3)
//	_ = b.Push([][]int{{0, 1}, {1, 2}, {0, 2}})
//	_ = b.PushMax()
//	tri, err := b.Build()
type Builder struct {
	ranks []ElementList
	spent bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// Rank returns the rank of the highest pushed elements (-2 when empty).
func (b *Builder) Rank() int { return len(b.ranks) - 2 }

// Count returns how many elements the highest pushed rank holds.
func (b *Builder) Count() int {
	if len(b.ranks) == 0 {
		return 0
	}

	return len(b.ranks[len(b.ranks)-1])
}

// PushMin pushes the nullitope. It must be the first push.
func (b *Builder) PushMin() error {
	if b.spent {
		return ErrBuilderSpent
	}
	if len(b.ranks) != 0 {
		return fmt.Errorf("PushMin: nullitope must come first: %w", ErrInvalidOperand)
	}
	b.ranks = append(b.ranks, ElementList{{}})

	return nil
}

// PushVertices pushes n vertices, each with the nullitope as its only sub.
func (b *Builder) PushVertices(n int) error {
	subs := make([][]int, n)
	for i := range subs {
		subs[i] = []int{0}
	}

	return b.Push(subs)
}

// Push appends a new rank whose i-th element has subelements subs[i].
// Sub lists are copied, sorted and de-duplicated.
//
// Errors:
//   - ErrBuilderSpent after Build.
//   - ErrInvalidOperand when no rank exists yet.
//   - ErrOutOfRange when a sub index does not exist one rank below.
//
// Complexity:
//   - Time O(Σ|subs[i]| log), Space O(Σ|subs[i]|).
func (b *Builder) Push(subs [][]int) error {
	if b.spent {
		return ErrBuilderSpent
	}
	if len(b.ranks) == 0 {
		return fmt.Errorf("Push: push the nullitope first: %w", ErrInvalidOperand)
	}
	below := b.ranks[len(b.ranks)-1]
	r := len(b.ranks) - 1 // rank of the new elements
	// check everything before mutating, so a failed push leaves no trace
	for i, s := range subs {
		for _, k := range s {
			if k < 0 || k >= len(below) {
				return fmt.Errorf("Push: element %d of rank %d: sub %d: %w", i, r, k, ErrOutOfRange)
			}
		}
	}
	list := make(ElementList, len(subs))
	for i, s := range subs {
		sorted := slices.Clone(s)
		slices.Sort(sorted)
		sorted = slices.Compact(sorted)
		list[i].Subs = sorted
		for _, k := range sorted {
			below[k].Sups = append(below[k].Sups, i)
		}
	}
	b.ranks = append(b.ranks, list)

	return nil
}

// PushMax pushes a single body containing every element of the current top rank.
func (b *Builder) PushMax() error {
	n := b.Count()
	all := make([]int, n)
	for i := range all {
		all[i] = i
	}

	return b.Push([][]int{all})
}

// Build finalizes the polytope. The result is not validated; call
// (*Abstract).Validate when the input is untrusted.
func (b *Builder) Build() (*Abstract, error) {
	if b.spent {
		return nil, ErrBuilderSpent
	}
	if len(b.ranks) == 0 {
		return nil, ErrEmpty
	}
	b.spent = true
	a := &Abstract{ranks: b.ranks}
	b.ranks = nil

	return a, nil
}

// FromSubelements builds a polytope from its nullitope upward: subs[k] lists,
// for every element of rank k, its subelements at rank k-1 (k = 0..d). Rank
// -1 is implicit. It is a shorthand for a Builder driven by literals.
func FromSubelements(subs ...[][]int) (*Abstract, error) {
	b := NewBuilder()
	if err := b.PushMin(); err != nil {
		return nil, err
	}
	for _, s := range subs {
		if err := b.Push(s); err != nil {
			return nil, err
		}
	}

	return b.Build()
}
