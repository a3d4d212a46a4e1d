// Package coxeter: sentinel error set.
// Parse failures carry their position in *ParseError, which unwraps to
// ErrInvalidDiagram.

package coxeter

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDiagram indicates malformed CD text or an inconsistent
	// programmatic diagram (bad edge label, repeated edge, dangling edge).
	ErrInvalidDiagram = errors.New("coxeter: invalid diagram")

	// ErrInfiniteGroup indicates a diagram outside the finite classification,
	// or one whose mirrors cannot be realized in spherical space.
	ErrInfiniteGroup = errors.New("coxeter: group is not finite")

	// ErrTooLarge indicates the group order exceeds the configured cap.
	ErrTooLarge = errors.New("coxeter: group exceeds the order cap")

	// ErrDegenerateSeed indicates the seed point would give a lower-rank
	// result: no ringed node, a component without rings, or coinciding
	// orbit points.
	ErrDegenerateSeed = errors.New("coxeter: degenerate seed point")
)

// ParseError locates a syntax error in CD text. Pos is a byte offset.
type ParseError struct {
	Pos    int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("coxeter: invalid diagram at position %d: %s", e.Pos, e.Reason)
}

// Unwrap lets errors.Is(err, ErrInvalidDiagram) match.
func (e *ParseError) Unwrap() error { return ErrInvalidDiagram }

// coxeterErrorf tags err with the failing operation.
func coxeterErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
