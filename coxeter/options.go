package coxeter

import (
	"math"

	"github.com/katalvlaran/polytope/geometry"
)

const (
	// DefaultMaxOrder caps group generation. Every finite group of rank up
	// to 6 fits; E7 and E8 do not.
	DefaultMaxOrder = 1 << 19

	// DefaultWorkers keeps generation on the calling goroutine.
	DefaultWorkers = 1

	// batchSize is the number of frontier elements one worker multiplies
	// per task.
	batchSize = 256

	// keyScale turns eps into the quantization step used to recognize
	// group elements and orbit points: coarse enough to absorb rounding
	// drift, far finer than the gaps between distinct values.
	keyScale = 1e3
)

const (
	panicEpsilonInvalid = "coxeter: WithEpsilon requires a finite epsilon in (0, 1e-4]"
	panicMaxOrder       = "coxeter: WithMaxOrder requires a positive cap"
	panicWorkers        = "coxeter: WithWorkers requires at least one worker"
)

// Option configures Generate and Wythoff.
type Option func(*options)

type options struct {
	eps      float64
	maxOrder int
	workers  int
}

func defaultOptions() options {
	return options{eps: geometry.DefaultEpsilon, maxOrder: DefaultMaxOrder, workers: DefaultWorkers}
}

func collect(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithEpsilon sets the relative tolerance for recognizing equal group
// elements and coinciding orbit points. Panics outside (0, 1e-4].
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || eps <= 0 || eps > 1e-4 {
		panic(panicEpsilonInvalid)
	}

	return func(o *options) { o.eps = eps }
}

// WithMaxOrder caps the number of group elements; larger groups fail with
// ErrTooLarge. Panics for n < 1.
func WithMaxOrder(n int) Option {
	if n < 1 {
		panic(panicMaxOrder)
	}

	return func(o *options) { o.maxOrder = n }
}

// WithWorkers sets how many goroutines multiply frontier batches. The
// result does not depend on it. Panics for n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkers)
	}

	return func(o *options) { o.workers = n }
}
