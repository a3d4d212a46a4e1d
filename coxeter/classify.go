package coxeter

import (
	"fmt"
	"math/big"
	"slices"
)

// Family names a connected finite Coxeter group type.
type Family string

const (
	FamilyA  Family = "A"
	FamilyB  Family = "B"
	FamilyD  Family = "D"
	FamilyE  Family = "E"
	FamilyF  Family = "F"
	FamilyH  Family = "H"
	FamilyI2 Family = "I2"
)

// Component is one connected component of a diagram with its type.
// Param is m for I2(m) and the rank otherwise.
type Component struct {
	Nodes  []int
	Family Family
	Param  int
}

func (c Component) String() string {
	if c.Family == FamilyI2 {
		return fmt.Sprintf("I2(%d)", c.Param)
	}

	return fmt.Sprintf("%s%d", c.Family, c.Param)
}

// Order returns the order of the component's group.
func (c Component) Order() *big.Int {
	n := int64(c.Param)
	fact := func(k int64) *big.Int { return new(big.Int).MulRange(1, k) }
	switch c.Family {
	case FamilyA:
		return fact(n + 1)
	case FamilyB:
		return new(big.Int).Lsh(fact(n), uint(n))
	case FamilyD:
		return new(big.Int).Lsh(fact(n), uint(n-1))
	case FamilyE:
		return big.NewInt(map[int64]int64{6: 51840, 7: 2903040, 8: 696729600}[n])
	case FamilyF:
		return big.NewInt(1152)
	case FamilyH:
		return big.NewInt(map[int64]int64{3: 120, 4: 14400}[n])
	default:
		return big.NewInt(2 * n)
	}
}

// Classify splits the diagram into connected components and names the
// finite type of each, using the periods of the edge labels.
// MAIN DESCRIPTION:
//   - Paths: all 3s is A_n; a 4 at one end is B_n; 3-4-3 is F4; a 5 at
//     one end with 3s is H3/H4; a single edge m is I2(m).
//   - Trees with one degree-3 node and all labels 3 with arms p ≤ q ≤ r:
//     (1,1,r) is D_{r+3}, (1,2,2..4) is E6..E8.
//   - Anything else (cycles, degree ≥ 4, other labels) is infinite.
//
// Errors:
//   - ErrInfiniteGroup naming the first non-finite component.
func (d *Diagram) Classify() ([]Component, error) {
	var out []Component
	for _, nodes := range d.Components(nil) {
		c, ok := d.classify(nodes)
		if !ok {
			return nil, coxeterErrorf("Classify", fmt.Errorf("component %v: %w", nodes, ErrInfiniteGroup))
		}
		out = append(out, c)
	}

	return out, nil
}

// EstimatedOrder returns the exact group order from the classification.
func (d *Diagram) EstimatedOrder() (*big.Int, error) {
	comps, err := d.Classify()
	if err != nil {
		return nil, err
	}
	out := big.NewInt(1)
	for _, c := range comps {
		out.Mul(out, c.Order())
	}

	return out, nil
}

func (d *Diagram) classify(nodes []int) (Component, bool) {
	n := len(nodes)
	c := Component{Nodes: slices.Clone(nodes), Param: n}
	if n == 1 {
		c.Family = FamilyA

		return c, true
	}
	deg := make(map[int][]int, n)
	edges := 0
	for _, i := range nodes {
		for _, j := range nodes {
			if d.Joined(i, j) {
				deg[i] = append(deg[i], j)
				if i < j {
					edges++
				}
			}
		}
	}
	if edges != n-1 {
		return c, false // cycle
	}
	period := func(i, j int) int { return d.orders[i][j].Period() }

	if n == 2 {
		c.Family, c.Param = FamilyI2, period(nodes[0], nodes[1])
		if c.Param == 3 {
			c.Family, c.Param = FamilyA, 2
		}

		return c, true
	}

	var branch []int
	for _, i := range nodes {
		switch len(deg[i]) {
		case 1, 2:
		case 3:
			branch = append(branch, i)
		default:
			return c, false
		}
	}

	if len(branch) == 0 {
		// path: walk from one end
		var end int
		for _, i := range nodes {
			if len(deg[i]) == 1 {
				end = i

				break
			}
		}
		labels := make([]int, 0, n-1)
		prev, cur := -1, end
		for len(labels) < n-1 {
			for _, j := range deg[cur] {
				if j != prev {
					labels = append(labels, period(cur, j))
					prev, cur = cur, j

					break
				}
			}
		}

		return classifyPath(c, labels)
	}

	if len(branch) > 1 {
		return c, false
	}
	for _, i := range nodes {
		for _, j := range deg[i] {
			if period(i, j) != 3 {
				return c, false
			}
		}
	}
	// arm lengths from the branch node
	var arms []int
	for _, start := range deg[branch[0]] {
		length, prev, cur := 1, branch[0], start
		for len(deg[cur]) == 2 {
			next := deg[cur][0]
			if next == prev {
				next = deg[cur][1]
			}
			prev, cur = cur, next
			length++
		}
		arms = append(arms, length)
	}
	slices.Sort(arms)
	switch {
	case arms[0] == 1 && arms[1] == 1:
		c.Family = FamilyD
	case arms[0] == 1 && arms[1] == 2 && arms[2] <= 4:
		c.Family = FamilyE
	default:
		return c, false
	}

	return c, true
}

// classifyPath names a path diagram from its label sequence.
func classifyPath(c Component, labels []int) (Component, bool) {
	n := len(labels) + 1
	var odd []int // positions of labels other than 3
	for i, m := range labels {
		if m != 3 {
			odd = append(odd, i)
		}
	}
	switch len(odd) {
	case 0:
		c.Family = FamilyA

		return c, true
	case 1:
	default:
		return c, false
	}
	pos, m := odd[0], labels[odd[0]]
	atEnd := pos == 0 || pos == n-2
	switch {
	case m == 4 && atEnd:
		c.Family = FamilyB
	case m == 4 && n == 4 && pos == 1:
		c.Family = FamilyF
	case m == 5 && atEnd && (n == 3 || n == 4):
		c.Family = FamilyH
	default:
		return c, false
	}

	return c, true
}
