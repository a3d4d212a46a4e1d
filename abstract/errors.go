// SPDX-License-Identifier: MIT
// Package abstract: sentinel error set.
// All operators return these sentinels (optionally wrapped with rank/index
// context) and tests match them via errors.Is / errors.As. Nothing in this
// package panics on malformed input.

package abstract

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange indicates a rank or element index outside the polytope.
	ErrOutOfRange = errors.New("abstract: rank or index out of range")

	// ErrNotBounded indicates the polytope lacks exactly one minimal
	// (nullitope) or exactly one maximal (body) element.
	ErrNotBounded = errors.New("abstract: polytope needs exactly one nullitope and one body")

	// ErrBrokenInverse indicates the super-element lists are not the exact
	// inverse of the sub-element lists. Builders maintain this incrementally,
	// so seeing it means an internal defect rather than bad input.
	ErrBrokenInverse = errors.New("abstract: sub/super relations are not inverse")

	// ErrBrokenDiamond indicates a violation of the diamond property.
	// The concrete location is carried by *BrokenDiamondError.
	ErrBrokenDiamond = errors.New("abstract: broken diamond")

	// ErrDisconnected indicates that the polytope, or one of its sections,
	// is not flag-connected.
	ErrDisconnected = errors.New("abstract: not strongly flag-connected")

	// ErrInvalidOperand indicates an operator received an input of the wrong
	// rank or shape (e.g. prism with the nullitope, Petrial of a non-polyhedron).
	ErrInvalidOperand = errors.New("abstract: invalid operand")

	// ErrBuilderSpent is returned by Builder methods after Build succeeded.
	ErrBuilderSpent = errors.New("abstract: builder already built")

	// ErrEmpty is returned when building a polytope with no ranks at all.
	ErrEmpty = errors.New("abstract: no ranks")
)

// BrokenDiamondError pinpoints the element at which the diamond property
// fails: the element (Rank, Index), and the element Below it (two ranks
// lower, or -1 when the element simply lacks subs/sups) for which Count
// intermediate elements were found instead of two.
type BrokenDiamondError struct {
	Rank  int
	Index int
	Below int
	Count int
}

func (e *BrokenDiamondError) Error() string {
	if e.Below < 0 {
		return fmt.Sprintf("abstract: broken diamond at rank %d index %d: %d incident elements",
			e.Rank, e.Index, e.Count)
	}

	return fmt.Sprintf("abstract: broken diamond at rank %d index %d: %d elements between it and rank %d index %d",
		e.Rank, e.Index, e.Count, e.Rank-2, e.Below)
}

// Unwrap lets errors.Is(err, ErrBrokenDiamond) match.
func (e *BrokenDiamondError) Unwrap() error { return ErrBrokenDiamond }

// rangeErrorf wraps ErrOutOfRange with the offending coordinates.
func rangeErrorf(method string, rank, index int) error {
	return fmt.Errorf("%s(%d,%d): %w", method, rank, index, ErrOutOfRange)
}
