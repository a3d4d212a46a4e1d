package polyio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/polytope/abstract"
	"github.com/katalvlaran/polytope/concrete"
)

// Format names a serialization.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatOFF  Format = "off"
)

// ParseFormat maps a case-insensitive name onto a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatYAML, FormatJSON, FormatOFF:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", polyioErrorf("ParseFormat", fmt.Errorf("%q: %w", s, ErrUnsupported))
	}
}

// Document is the serialized concrete polytope. Elements[k] lists the
// elements of rank k+1, each as its subelement indices at rank k.
type Document struct {
	Rank      int         `yaml:"rank" json:"rank" validate:"gte=-1,lte=64"`
	Dimension int         `yaml:"dimension" json:"dimension" validate:"gte=0"`
	Vertices  [][]float64 `yaml:"vertices" json:"vertices"`
	Elements  [][][]int   `yaml:"elements,omitempty" json:"elements,omitempty" validate:"dive,min=1,dive,min=1,dive,gte=0"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(documentShape, Document{})

	return v
}

// documentShape checks what tags cannot: the number of element ranks and
// the length of every vertex.
func documentShape(sl validator.StructLevel) {
	d := sl.Current().Interface().(Document)
	if len(d.Elements) != max(0, d.Rank-1) {
		sl.ReportError(d.Elements, "Elements", "elements", "rankcount", fmt.Sprint(max(0, d.Rank-1)))
	}
	switch {
	case d.Rank == -1 && len(d.Vertices) != 0:
		sl.ReportError(d.Vertices, "Vertices", "vertices", "empty", "")
	case d.Rank == 0 && len(d.Vertices) != 1:
		sl.ReportError(d.Vertices, "Vertices", "vertices", "len", "1")
	case d.Rank >= 1 && len(d.Vertices) < 2:
		sl.ReportError(d.Vertices, "Vertices", "vertices", "min", "2")
	}
	for _, v := range d.Vertices {
		if len(v) != d.Dimension {
			sl.ReportError(d.Vertices, "Vertices", "vertices", "dimension", fmt.Sprint(d.Dimension))

			break
		}
	}
}

// Validate checks the document's shape. It does not check that the
// elements form a polytope; ToPolytope does.
func (d *Document) Validate() error {
	if err := validate.Struct(d); err != nil {
		return polyioErrorf("Validate", formatValidationError(err))
	}

	return nil
}

// formatValidationError reports the first failed field.
func formatValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return fmt.Errorf("%v: %w", err, ErrInvalidDocument)
	}
	e := errs[0]
	if e.Param() != "" {
		return fmt.Errorf("%s: failed %s=%s: %w", e.Namespace(), e.Tag(), e.Param(), ErrInvalidDocument)
	}

	return fmt.Errorf("%s: failed %s: %w", e.Namespace(), e.Tag(), ErrInvalidDocument)
}

// Decode reads a YAML or JSON document and validates it.
//
// Errors:
//   - ErrUnsupported for FormatOFF or unknown formats (use ReadOFF).
//   - decoder errors, wrapped.
//   - ErrInvalidDocument from Validate.
func Decode(r io.Reader, f Format) (*Document, error) {
	var d Document
	switch f {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&d); err != nil {
			return nil, polyioErrorf("Decode", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return nil, polyioErrorf("Decode", err)
		}
	default:
		return nil, polyioErrorf("Decode", fmt.Errorf("document format %q: %w", f, ErrUnsupported))
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	return &d, nil
}

// Encode writes d as YAML or JSON.
func Encode(w io.Writer, d *Document, f Format) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return polyioErrorf("Encode", err)
		}

		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return polyioErrorf("Encode", err)
		}

		return nil
	default:
		return polyioErrorf("Encode", fmt.Errorf("document format %q: %w", f, ErrUnsupported))
	}
}

// FromPolytope serializes p.
func FromPolytope(p *concrete.Polytope) *Document {
	abs := p.Abstract()
	d := &Document{Rank: p.Rank(), Dimension: p.Dimension(), Vertices: p.Vertices()}
	for r := 1; r < p.Rank(); r++ {
		els, _ := abs.Elements(r) // 1 ≤ r < rank is always in range
		rows := make([][]int, len(els))
		for i, e := range els {
			rows[i] = append([]int(nil), e.Subs...)
		}
		d.Elements = append(d.Elements, rows)
	}

	return d
}

// ToPolytope validates d, builds its incidence structure, checks it is a
// polytope and attaches the coordinates.
//
// Errors:
//   - ErrInvalidDocument from Validate.
//   - abstract errors (ErrOutOfRange, ErrBrokenDiamond, ErrDisconnected)
//     and concrete errors (ErrNaNInf), wrapped.
func ToPolytope(d *Document, opts ...concrete.Option) (*concrete.Polytope, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	b := abstract.NewBuilder()
	steps := []func() error{b.PushMin}
	if d.Rank >= 0 {
		steps = append(steps, func() error { return b.PushVertices(len(d.Vertices)) })
	}
	for _, rows := range d.Elements {
		steps = append(steps, func() error { return b.Push(rows) })
	}
	if d.Rank >= 1 {
		steps = append(steps, b.PushMax)
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, polyioErrorf("ToPolytope", err)
		}
	}
	abs, err := b.Build()
	if err != nil {
		return nil, polyioErrorf("ToPolytope", err)
	}
	if err = abs.Validate(); err != nil {
		return nil, polyioErrorf("ToPolytope", err)
	}
	p, err := concrete.New(abs, d.Vertices, opts...)
	if err != nil {
		return nil, polyioErrorf("ToPolytope", err)
	}

	return p, nil
}
