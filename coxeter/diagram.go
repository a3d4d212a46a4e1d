package coxeter

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Fraction is an edge label n/d: the mirrors meet at angle dπ/n.
type Fraction struct {
	Num int
	Den int
}

// Int returns the label n/1.
func Int(n int) Fraction { return Fraction{Num: n, Den: 1} }

// Valid reports n > 1, 0 < d < n.
func (f Fraction) Valid() bool { return f.Num > 1 && f.Den > 0 && f.Den < f.Num }

// Value returns n/d.
func (f Fraction) Value() float64 { return float64(f.Num) / float64(f.Den) }

// IsTwo reports whether the label means orthogonal mirrors, i.e. no edge.
func (f Fraction) IsTwo() bool { return f.Num == 2*f.Den }

// Period returns n over gcd(n, d): the order of the product of the two
// reflections.
func (f Fraction) Period() int { return f.Num / gcd(f.Num, f.Den) }

func (f Fraction) String() string {
	if f.Den == 1 {
		return strconv.Itoa(f.Num)
	}

	return fmt.Sprintf("%d/%d", f.Num, f.Den)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}

// Diagram is a Coxeter diagram: n mirrors, a label for every pair, and one
// value per node. A node value v ≠ 0 rings the node: the seed point lies
// at distance |v|/2 from that mirror. Value 0 puts the seed on the mirror.
type Diagram struct {
	values []float64
	orders [][]Fraction // symmetric; IsTwo off the edges, unused on the diagonal
}

// NewDiagram builds a diagram from an n×n label matrix and n node values.
// Zero labels (Fraction{}) mean "no edge", as does any label equal to 2.
//
// Errors:
//   - ErrInvalidDiagram for size mismatches, asymmetric or invalid labels,
//     non-finite values, or an edge between non-consecutive nodes both more
//     than 25 places from either end (no inline form names them).
func NewDiagram(orders [][]Fraction, values []float64) (*Diagram, error) {
	n := len(values)
	if n == 0 {
		return nil, coxeterErrorf("NewDiagram", fmt.Errorf("no nodes: %w", ErrInvalidDiagram))
	}
	if len(orders) != n {
		return nil, coxeterErrorf("NewDiagram", fmt.Errorf("%d label rows for %d nodes: %w", len(orders), n, ErrInvalidDiagram))
	}
	d := newDiagram(values)
	for i, row := range orders {
		if len(row) != n {
			return nil, coxeterErrorf("NewDiagram", fmt.Errorf("label row %d has %d entries: %w", i, len(row), ErrInvalidDiagram))
		}
		for j := i + 1; j < n; j++ {
			a, b := row[j], orders[j][i]
			if a != b {
				return nil, coxeterErrorf("NewDiagram", fmt.Errorf("labels (%d,%d)=%v and (%d,%d)=%v differ: %w",
					i, j, a, j, i, b, ErrInvalidDiagram))
			}
			if a == (Fraction{}) || a.IsTwo() {
				continue
			}
			if !a.Valid() {
				return nil, coxeterErrorf("NewDiagram", fmt.Errorf("label %v between %d and %d: %w", a, i, j, ErrInvalidDiagram))
			}
			d.orders[i][j], d.orders[j][i] = a, a
		}
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, coxeterErrorf("NewDiagram", fmt.Errorf("node %d value %v: %w", i, v, ErrInvalidDiagram))
		}
	}
	if e, ok := d.unnamedEdge(); ok {
		return nil, coxeterErrorf("NewDiagram", fmt.Errorf("edge %d-%d of %d nodes has no inline form: %w", e[0], e[1], n, ErrInvalidDiagram))
	}

	return d, nil
}

// Linear builds the path diagram o-m₀-o-m₁-…-o with integer labels.
func Linear(labels []int, values []float64) (*Diagram, error) {
	if len(values) != len(labels)+1 {
		return nil, coxeterErrorf("Linear", fmt.Errorf("%d labels for %d nodes: %w", len(labels), len(values), ErrInvalidDiagram))
	}
	orders := make([][]Fraction, len(values))
	for i := range orders {
		orders[i] = make([]Fraction, len(values))
	}
	for i, m := range labels {
		orders[i][i+1], orders[i+1][i] = Int(m), Int(m)
	}

	return NewDiagram(orders, values)
}

func newDiagram(values []float64) *Diagram {
	n := len(values)
	d := &Diagram{values: append([]float64(nil), values...), orders: make([][]Fraction, n)}
	for i := range d.orders {
		d.orders[i] = make([]Fraction, n)
		for j := range d.orders[i] {
			d.orders[i][j] = Int(2)
		}
	}

	return d
}

// Rank returns the number of nodes, which is also the dimension of the
// space the mirrors live in and the rank of the Wythoffian.
func (d *Diagram) Rank() int { return len(d.values) }

// Values returns a copy of the node values.
func (d *Diagram) Values() []float64 { return append([]float64(nil), d.values...) }

// Ringed reports whether node i has a non-zero value.
func (d *Diagram) Ringed(i int) bool { return d.values[i] != 0 }

// Order returns the label between nodes i and j; 2 when they are not joined.
func (d *Diagram) Order(i, j int) Fraction { return d.orders[i][j] }

// Joined reports whether nodes i ≠ j share an edge.
func (d *Diagram) Joined(i, j int) bool { return i != j && !d.orders[i][j].IsTwo() }

// Edges returns the joined pairs i < j in lexicographic order.
func (d *Diagram) Edges() [][2]int {
	var out [][2]int
	for i := range d.orders {
		for j := i + 1; j < len(d.orders); j++ {
			if d.Joined(i, j) {
				out = append(out, [2]int{i, j})
			}
		}
	}

	return out
}

// Components returns the connected components of the diagram restricted to
// the nodes in mask (nil means every node), each sorted, ordered by their
// smallest node.
func (d *Diagram) Components(mask []bool) [][]int {
	n := d.Rank()
	in := func(i int) bool { return mask == nil || mask[i] }
	seen := make([]bool, n)
	var out [][]int
	for s := 0; s < n; s++ {
		if seen[s] || !in(s) {
			continue
		}
		comp := []int{s}
		seen[s] = true
		for k := 0; k < len(comp); k++ {
			for j := 0; j < n; j++ {
				if !seen[j] && in(j) && d.Joined(comp[k], j) {
					seen[j] = true
					comp = append(comp, j)
				}
			}
		}
		slices.Sort(comp)
		out = append(out, comp)
	}

	return out
}

// virtualNode names node i of n as a virtual node: "*a" counted from the
// start, else "*-a" counted from the end. Nodes 26 or more away from both
// ends have no name.
func virtualNode(i, n int) (string, bool) {
	switch {
	case i < 26:
		return "*" + string(rune('a'+i)), true
	case n-1-i < 26:
		return "*-" + string(rune('a'+n-1-i)), true
	}

	return "", false
}

// unnamedEdge returns the first edge String cannot write, if any: one
// between non-consecutive nodes that are not both virtual nodes.
func (d *Diagram) unnamedEdge() ([2]int, bool) {
	n := d.Rank()
	for _, e := range d.Edges() {
		if e[1] == e[0]+1 {
			continue
		}
		_, okA := virtualNode(e[0], n)
		_, okB := virtualNode(e[1], n)
		if !okA || !okB {
			return e, true
		}
	}

	return [2]int{}, false
}

// String renders the diagram in inline notation: the nodes in order with
// the labels of consecutive edges between them ("x3o4o", "x3o x"), then
// every other edge between virtual nodes ("x3o3o o *b3*d").
func (d *Diagram) String() string {
	var b strings.Builder
	n := d.Rank()
	for i, v := range d.values {
		if i > 0 {
			if d.Joined(i-1, i) {
				b.WriteString(d.orders[i-1][i].String())
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString(nodeSymbol(v))
	}
	for _, e := range d.Edges() {
		if e[1] == e[0]+1 {
			continue
		}
		from, _ := virtualNode(e[0], n)
		to, _ := virtualNode(e[1], n)
		fmt.Fprintf(&b, " %s%s%s", from, d.orders[e[0]][e[1]], to)
	}

	return b.String()
}
