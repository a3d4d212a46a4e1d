package coxeter

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/polytope/geometry"
	"github.com/katalvlaran/polytope/matrix"
)

// gramTolerance bounds the Cholesky pivots: Euclidean diagrams have a
// singular Gram matrix and must fail rather than pass by rounding.
const gramTolerance = 1e-9

// Gram returns the matrix G with G[i][i] = 1 and G[i][j] = −cos(dπ/n) for
// the label n/d between i and j (0 when they are not joined).
func (d *Diagram) Gram() *matrix.Dense {
	n := d.Rank()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		for j := range rows[i] {
			switch f := d.orders[i][j]; {
			case i == j:
				rows[i][j] = 1
			case f.IsTwo():
			default:
				rows[i][j] = -math.Cos(math.Pi * float64(f.Den) / float64(f.Num))
			}
		}
	}
	g, _ := matrix.NewDenseFromRows(rows) // rectangular and finite by construction

	return g
}

// Normals returns the unit mirror normals as the rows of a lower-triangular
// matrix L with L·Lᵀ = Gram().
//
// Errors:
//   - ErrInfiniteGroup when the Gram matrix is not positive definite: the
//     mirrors do not fit in spherical space.
func (d *Diagram) Normals() (*matrix.Dense, error) {
	l, err := matrix.Cholesky(d.Gram(), gramTolerance)
	if errors.Is(err, matrix.ErrNotPositiveDefinite) {
		return nil, coxeterErrorf("Normals", fmt.Errorf("%v: %w", err, ErrInfiniteGroup))
	}
	if err != nil {
		return nil, coxeterErrorf("Normals", err)
	}

	return l, nil
}

// Seed returns the point p with nᵢ·p = valueᵢ/2 for every mirror normal nᵢ,
// so reflecting p through mirror i moves it by |valueᵢ|.
func (d *Diagram) Seed() ([]float64, error) {
	l, err := d.Normals()
	if err != nil {
		return nil, err
	}

	return d.seed(l)
}

func (d *Diagram) seed(l *matrix.Dense) ([]float64, error) {
	b := make([]float64, d.Rank())
	for i, v := range d.values {
		b[i] = v / 2
	}
	p, err := matrix.ForwardSubstitute(l, b)
	if err != nil {
		return nil, coxeterErrorf("Seed", err)
	}

	return p, nil
}

// Circumradius returns the distance from the seed to the common point of
// all mirrors, the circumradius of the Wythoffian.
func (d *Diagram) Circumradius() (float64, error) {
	p, err := d.Seed()
	if err != nil {
		return 0, err
	}

	return geometry.Norm(p), nil
}
