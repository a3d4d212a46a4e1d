package mesh

const panicRank = "mesh: WithRank requires a rank of at least 2"

// Option configures Project.
type Option func(*options)

type options struct {
	rank int // 0 selects facets, or the body of a polygon
}

// WithRank groups polygons by the elements of rank r instead of by facets.
// Rank 2 gives one batch per face; the polytope's own rank gives a single
// batch. Panics for r < 2.
func WithRank(r int) Option {
	if r < 2 {
		panic(panicRank)
	}

	return func(o *options) { o.rank = r }
}
