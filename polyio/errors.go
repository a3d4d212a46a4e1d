package polyio

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDocument indicates a document that fails validation.
	ErrInvalidDocument = errors.New("polyio: invalid document")

	// ErrUnsupported indicates a format that cannot hold the polytope, or
	// an unknown format name.
	ErrUnsupported = errors.New("polyio: unsupported format")

	// ErrSyntax indicates malformed OFF input.
	ErrSyntax = errors.New("polyio: syntax error")
)

// SyntaxError locates an OFF parse failure by 1-based line.
type SyntaxError struct {
	Line   int
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("polyio: line %d: %s", e.Line, e.Reason)
}

// Unwrap lets errors.Is(err, ErrSyntax) match.
func (e *SyntaxError) Unwrap() error { return ErrSyntax }

func polyioErrorf(op string, err error) error {
	return fmt.Errorf("polyio.%s: %w", op, err)
}
