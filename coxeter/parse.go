package coxeter

import (
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"
)

// nodeLetters maps one-character nodes to values, after Krieger's scheme:
// each value is an edge length produced by reflecting through that mirror.
var nodeLetters = []struct {
	letter byte
	value  float64
}{
	{'o', 0},
	{'x', 1},
	{'q', math.Sqrt2},
	{'f', math.Phi},
	{'v', math.Phi - 1},
	{'h', math.Sqrt(3)},
	{'k', math.Sqrt(2 + math.Sqrt2)},
	{'u', 2},
	{'w', 1 + math.Sqrt2},
	{'F', math.Phi + 1},
	{'e', 1 + math.Sqrt(3)},
	{'Q', 2 * math.Sqrt2},
	{'d', 3},
	{'V', 1 + math.Sqrt(5)},
	{'U', 2 + math.Sqrt2},
	{'X', 1 + 2*math.Sqrt2},
	{'B', 2 + math.Sqrt(5)},
}

func letterValue(c byte) (float64, bool) {
	for _, l := range nodeLetters {
		if l.letter == c {
			return l.value, true
		}
	}

	return 0, false
}

func nodeSymbol(v float64) string {
	for _, l := range nodeLetters {
		if math.Abs(l.value-v) <= 1e-12 {
			return string(l.letter)
		}
	}

	return "(" + strconv.FormatFloat(v, 'g', -1, 64) + ")"
}

// nodeRef points at a node by index, or by offset from the last node for
// virtual nodes written *-a, *-b, ... which can only be resolved at the end.
type nodeRef struct {
	idx int
	neg bool
}

func (r nodeRef) resolve(n int) int {
	if r.neg {
		return n - 1 - r.idx
	}

	return r.idx
}

type pendingEdge struct {
	a, b  nodeRef
	label Fraction
	pos   int
}

type parser struct {
	src   string
	pos   int
	nodes []float64
	queue []pendingEdge
	prev  *nodeRef
	edge  *Fraction
	ePos  int
}

// Parse reads a diagram in inline notation.
// MAIN DESCRIPTION:
//   - A diagram is a sequence of nodes, optionally separated by edge
//     labels; whitespace may appear between tokens. Consecutive nodes with
//     no label between them are not joined.
//   - Nodes: a letter from the value table ('o' unringed, 'x' unit, 'q' √2,
//     'f' φ, ...), a parenthesized number "(1.5)", or a virtual node "*a"
//     ("*-a") naming an earlier-or-later node by position from the start
//     (end). Virtual nodes add no node; they only anchor edges.
//   - Edge labels: an integer n or a fraction n/d with n > 1, 0 < d < n.
//     Label 2 is accepted and means "not joined".
//
// Errors:
//   - *ParseError (ErrInvalidDiagram) for unknown symbols, unbalanced
//     parentheses, bad numbers or labels, an edge at the end, virtual
//     nodes out of range, self-loops and repeated edges.
func Parse(cd string) (*Diagram, error) {
	p := &parser{src: cd}
	for {
		if err := p.node(); err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.pos == len(p.src) {
			break
		}
		if err := p.label(); err != nil {
			return nil, err
		}
	}

	return p.build()
}

// MustParse is Parse for diagrams known to be valid; it panics otherwise.
func MustParse(cd string) *Diagram {
	d, err := Parse(cd)
	if err != nil {
		panic(err)
	}

	return d
}

func (p *parser) fail(pos int, format string, args ...any) error {
	return &ParseError{Pos: pos, Reason: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) node() error {
	p.skipSpace()
	if p.pos == len(p.src) {
		return p.fail(p.pos, "unexpected end, want a node")
	}
	start := p.pos
	cur := nodeRef{idx: len(p.nodes)}
	switch c := p.src[p.pos]; {
	case c == '(':
		end := p.pos + 1
		for end < len(p.src) && p.src[end] != ')' {
			end++
		}
		if end == len(p.src) {
			return p.fail(len(p.src), "unclosed parenthesis opened at %d", start)
		}
		v, err := strconv.ParseFloat(p.src[p.pos+1:end], 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return p.fail(p.pos+1, "bad node value %q", p.src[p.pos+1:end])
		}
		p.nodes = append(p.nodes, v)
		p.pos = end + 1
	case c == '*':
		p.pos++
		if p.pos < len(p.src) && p.src[p.pos] == '-' {
			cur.neg = true
			p.pos++
		}
		if p.pos == len(p.src) {
			return p.fail(p.pos, "unexpected end in virtual node")
		}
		l := p.src[p.pos]
		if l < 'a' || l > 'z' {
			return p.fail(p.pos, "virtual node %q", l)
		}
		cur.idx = int(l - 'a')
		p.pos++
	default:
		v, ok := letterValue(c)
		if !ok {
			r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
			return p.fail(p.pos, "unknown node symbol %q", r)
		}
		p.nodes = append(p.nodes, v)
		p.pos++
	}
	if p.prev != nil && p.edge != nil {
		p.queue = append(p.queue, pendingEdge{a: *p.prev, b: cur, label: *p.edge, pos: p.ePos})
	}
	p.edge = nil
	p.prev = &cur

	return nil
}

func (p *parser) number() (int, error) {
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if start == p.pos {
		return 0, p.fail(start, "expected a number")
	}
	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		return 0, p.fail(start, "bad number %q", p.src[start:p.pos])
	}

	return n, nil
}

// label reads an optional edge label; anything else is left for node.
func (p *parser) label() error {
	if c := p.src[p.pos]; c < '0' || c > '9' {
		return nil
	}
	start := p.pos
	num, err := p.number()
	if err != nil {
		return err
	}
	f := Fraction{Num: num, Den: 1}
	if p.pos < len(p.src) && p.src[p.pos] == '/' {
		p.pos++
		if f.Den, err = p.number(); err != nil {
			return err
		}
	}
	if !f.Valid() {
		return p.fail(start, "invalid edge %v", f)
	}
	p.edge, p.ePos = &f, start

	return nil
}

func (p *parser) build() (*Diagram, error) {
	n := len(p.nodes)
	if n == 0 {
		return nil, p.fail(0, "no nodes")
	}
	if p.edge != nil {
		return nil, p.fail(len(p.src), "edge %v is not followed by a node", *p.edge)
	}
	d := newDiagram(p.nodes)
	for _, e := range p.queue {
		a, b := e.a.resolve(n), e.b.resolve(n)
		if a < 0 || a >= n || b < 0 || b >= n {
			return nil, p.fail(e.pos, "virtual node out of range")
		}
		if a == b {
			return nil, p.fail(e.pos, "node %d joined to itself", a)
		}
		if e.label.IsTwo() {
			continue
		}
		if !d.orders[a][b].IsTwo() {
			return nil, p.fail(e.pos, "repeat edge between %d and %d", min(a, b), max(a, b))
		}
		d.orders[a][b], d.orders[b][a] = e.label, e.label
	}
	if e, ok := d.unnamedEdge(); ok {
		return nil, p.fail(len(p.src), "edge %d-%d of %d nodes has no inline form", e[0], e[1], n)
	}

	return d, nil
}
