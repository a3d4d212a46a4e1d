package polyio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/polytope/abstract"
	"github.com/katalvlaran/polytope/concrete"
	"github.com/katalvlaran/polytope/mesh"
)

// offReader yields the non-empty, comment-stripped lines of an OFF file
// as whitespace-separated fields.
type offReader struct {
	sc   *bufio.Scanner
	line int
}

func (r *offReader) next() ([]string, error) {
	for r.sc.Scan() {
		r.line++
		text := r.sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		if fields := strings.Fields(text); len(fields) > 0 {
			return fields, nil
		}
	}
	if err := r.sc.Err(); err != nil {
		return nil, err
	}

	return nil, &SyntaxError{Line: r.line, Reason: "unexpected end of input"}
}

func (r *offReader) ints(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return nil, &SyntaxError{Line: r.line, Reason: fmt.Sprintf("bad index or count %q", f)}
		}
		out[i] = n
	}

	return out, nil
}

// ReadOFF reads a rank-3 polytope from OFF text. Edges are derived from
// the face cycles in order of first appearance.
// MAIN DESCRIPTION:
//   - Header "OFF", then "V F E", then V lines of three coordinates, then
//     F lines "n i₁ … iₙ". Trailing colour fields on face lines are
//     ignored. '#' starts a comment.
//   - The E count is not trusted; the edge list is rebuilt. The V and F
//     counts only bound the loops, so storage grows with the input.
//
// Errors:
//   - *SyntaxError (ErrSyntax) for malformed input.
//   - abstract and concrete errors when the faces do not close into a
//     polyhedron, wrapped.
func ReadOFF(r io.Reader, opts ...concrete.Option) (*concrete.Polytope, error) {
	in := &offReader{sc: bufio.NewScanner(r)}
	fields, err := in.next()
	if err != nil {
		return nil, polyioErrorf("ReadOFF", err)
	}
	if fields[0] == "OFF" {
		fields = fields[1:]
		if len(fields) == 0 {
			if fields, err = in.next(); err != nil {
				return nil, polyioErrorf("ReadOFF", err)
			}
		}
	}
	if len(fields) < 2 {
		return nil, polyioErrorf("ReadOFF", &SyntaxError{Line: in.line, Reason: "want vertex and face counts"})
	}
	counts, err := in.ints(fields[:2])
	if err != nil {
		return nil, polyioErrorf("ReadOFF", err)
	}
	nv, nf := counts[0], counts[1]

	// the header counts are untrusted: grow with the input instead
	var vertices [][]float64
	for len(vertices) < nv {
		if fields, err = in.next(); err != nil {
			return nil, polyioErrorf("ReadOFF", err)
		}
		if len(fields) < 3 {
			return nil, polyioErrorf("ReadOFF", &SyntaxError{Line: in.line, Reason: "want three coordinates"})
		}
		v := make([]float64, 3)
		for k := range v {
			if v[k], err = strconv.ParseFloat(fields[k], 64); err != nil {
				return nil, polyioErrorf("ReadOFF", &SyntaxError{Line: in.line, Reason: fmt.Sprintf("bad coordinate %q", fields[k])})
			}
		}
		vertices = append(vertices, v)
	}

	edgeOf := make(map[[2]int]int)
	var edges, faces [][]int
	for range nf {
		if fields, err = in.next(); err != nil {
			return nil, polyioErrorf("ReadOFF", err)
		}
		idx, err := in.ints(fields[:1])
		if err != nil {
			return nil, polyioErrorf("ReadOFF", err)
		}
		n := idx[0]
		if n < 3 || len(fields) < n+1 {
			return nil, polyioErrorf("ReadOFF", &SyntaxError{Line: in.line, Reason: fmt.Sprintf("face of %d vertices", n)})
		}
		cyc, err := in.ints(fields[1 : n+1])
		if err != nil {
			return nil, polyioErrorf("ReadOFF", err)
		}
		face := make([]int, n)
		for k, a := range cyc {
			b := cyc[(k+1)%n]
			if a >= nv || b >= nv || a == b {
				return nil, polyioErrorf("ReadOFF", &SyntaxError{Line: in.line, Reason: fmt.Sprintf("bad edge %d-%d", a, b)})
			}
			key := [2]int{min(a, b), max(a, b)}
			e, ok := edgeOf[key]
			if !ok {
				e = len(edges)
				edgeOf[key] = e
				edges = append(edges, []int{key[0], key[1]})
			}
			face[k] = e
		}
		faces = append(faces, face)
	}

	b := abstract.NewBuilder()
	for _, step := range []func() error{
		b.PushMin,
		func() error { return b.PushVertices(nv) },
		func() error { return b.Push(edges) },
		func() error { return b.Push(faces) },
		b.PushMax,
	} {
		if err = step(); err != nil {
			return nil, polyioErrorf("ReadOFF", err)
		}
	}
	abs, err := b.Build()
	if err != nil {
		return nil, polyioErrorf("ReadOFF", err)
	}
	if err = abs.Validate(); err != nil {
		return nil, polyioErrorf("ReadOFF", err)
	}
	p, err := concrete.New(abs, vertices, opts...)
	if err != nil {
		return nil, polyioErrorf("ReadOFF", err)
	}

	return p, nil
}

// WriteOFF writes p as OFF with faces as vertex cycles.
//
// Errors:
//   - ErrUnsupported unless p has rank 3 in three dimensions.
//   - mesh.ErrBrokenFace for faces that are not edge cycles, wrapped.
func WriteOFF(w io.Writer, p *concrete.Polytope) error {
	if p.Rank() != 3 || p.Dimension() != 3 {
		return polyioErrorf("WriteOFF", fmt.Errorf("rank %d in %d dimensions: %w", p.Rank(), p.Dimension(), ErrUnsupported))
	}
	m, err := mesh.Project(p, mesh.WithRank(2))
	if err != nil {
		return polyioErrorf("WriteOFF", err)
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "OFF\n%d %d %d\n", len(m.Vertices), len(m.Batches), len(m.Edges))
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "%s %s %s\n", formatCoord(v[0]), formatCoord(v[1]), formatCoord(v[2]))
	}
	for _, b := range m.Batches {
		cyc := b.Polygons[0].Vertices
		fmt.Fprint(bw, len(cyc))
		for _, v := range cyc {
			fmt.Fprintf(bw, " %d", v)
		}
		fmt.Fprintln(bw)
	}

	return bw.Flush()
}

func formatCoord(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }
