package mesh

import (
	"errors"
	"fmt"
)

var (
	// ErrRank indicates a polytope of rank below 2, or a batch rank outside
	// [2, rank].
	ErrRank = errors.New("mesh: rank out of range")

	// ErrBrokenFace indicates a 2-face whose edges do not close into a
	// single cycle.
	ErrBrokenFace = errors.New("mesh: face edges do not form a cycle")
)

func meshErrorf(op string, err error) error {
	return fmt.Errorf("mesh.%s: %w", op, err)
}
