package concrete

import (
	"math"

	"github.com/katalvlaran/polytope/geometry"
)

const panicEpsilonInvalid = "concrete: WithEpsilon requires a finite, non-negative epsilon"

// Option configures New.
type Option func(*options)

type options struct {
	eps float64
}

func defaultOptions() options {
	return options{eps: geometry.DefaultEpsilon}
}

// WithEpsilon sets the relative tolerance of every geometric comparison on
// the polytope. The absolute tolerance is eps·max(1, largest |coordinate|).
// Panics on NaN, ±Inf or negative eps: that is a programming error, not
// data.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *options) { o.eps = eps }
}
