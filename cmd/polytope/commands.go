package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/polytope/concrete"
	"github.com/katalvlaran/polytope/coxeter"
	"github.com/katalvlaran/polytope/geometry"
	"github.com/katalvlaran/polytope/mesh"
)

// construct runs fn as op, records it and logs the element counts.
func (a *app) construct(op string, fn func() (*concrete.Polytope, error)) (*concrete.Polytope, error) {
	var p *concrete.Polytope
	err := a.rec.Track(op, func() (err error) {
		p, err = fn()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	counts := elementCounts(p)
	a.rec.SetCounts(counts)
	a.log.Info("constructed", "op", op, "rank", p.Rank(), "counts", counts)

	return p, nil
}

// elementCounts lists the counts of ranks 0..rank-1.
func elementCounts(p *concrete.Polytope) []int {
	var counts []int
	for r := 0; r < p.Rank(); r++ {
		counts = append(counts, p.ElementCount(r))
	}

	return counts
}

func (a *app) buildCmd() *cobra.Command {
	var cd string
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the Wythoffian of a Coxeter diagram",
		Example: `  polytope build --cd "x4o3o"         # cube
  polytope build --cd "x3o3o *b3o"    # demitesseract`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := coxeter.Parse(cd)
			if err != nil {
				return err
			}
			if order, err := d.EstimatedOrder(); err == nil && order.IsInt64() {
				a.rec.GroupOrder.Set(float64(order.Int64()))
			}
			p, err := a.construct("wythoff", func() (*concrete.Polytope, error) {
				return coxeter.Wythoff(cmd.Context(), d, a.cfg.CoxeterOptions()...)
			})
			if err != nil {
				return err
			}

			return a.writePolytope(cmd, p)
		},
	}
	cmd.Flags().StringVar(&cd, "cd", "", "Coxeter diagram in inline notation")
	_ = cmd.MarkFlagRequired("cd")

	return cmd
}

func (a *app) shapeCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:       "shape {polygon|simplex|hypercube|orthoplex}",
		Short:     "Build a unit-edge polygon, simplex, hypercube or orthoplex",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"polygon", "simplex", "hypercube", "orthoplex"},
		RunE: func(cmd *cobra.Command, args []string) error {
			shapes := map[string]func(int) (*concrete.Polytope, error){
				"polygon":   concrete.Polygon,
				"simplex":   concrete.Simplex,
				"hypercube": concrete.Hypercube,
				"orthoplex": concrete.Orthoplex,
			}
			build, ok := shapes[args[0]]
			if !ok {
				return fmt.Errorf("unknown shape %q", args[0])
			}
			p, err := a.construct(args[0], func() (*concrete.Polytope, error) { return build(n) })
			if err != nil {
				return err
			}

			return a.writePolytope(cmd, p)
		},
	}
	cmd.Flags().IntVar(&n, "n", 3, "vertex count for polygons, rank otherwise")

	return cmd
}

func (a *app) dualCmd() *cobra.Command {
	var radius float64
	cmd := &cobra.Command{
		Use:   "dual",
		Short: "Reciprocate the input about a sphere at its gravicenter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.readPolytope(cmd)
			if err != nil {
				return err
			}
			p, err = a.construct("dual", func() (*concrete.Polytope, error) {
				center, err := p.Gravicenter()
				if err != nil {
					return nil, err
				}
				return p.Dual(geometry.Hypersphere{Center: center, Radius: radius})
			})
			if err != nil {
				return err
			}

			return a.writePolytope(cmd, p)
		},
	}
	cmd.Flags().Float64Var(&radius, "radius", 1, "radius of the sphere of reciprocation")

	return cmd
}

func (a *app) petrialCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "petrial",
		Short: "Replace the faces of a polyhedron by its Petrie polygons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.readPolytope(cmd)
			if err != nil {
				return err
			}
			p, err = a.construct("petrial", func() (*concrete.Polytope, error) {
				return p.Petrial(a.cfg.PetrialOptions()...)
			})
			if err != nil {
				return err
			}

			return a.writePolytope(cmd, p)
		},
	}
}

func (a *app) productCmd(op, short string) *cobra.Command {
	ops := map[string]func(*concrete.Polytope, float64) (*concrete.Polytope, error){
		"pyramid": concrete.Pyramid,
		"prism":   concrete.Prism,
		"tegum":   concrete.Tegum,
	}
	var height float64
	cmd := &cobra.Command{
		Use:   op,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.readPolytope(cmd)
			if err != nil {
				return err
			}
			p, err = a.construct(op, func() (*concrete.Polytope, error) { return ops[op](p, height) })
			if err != nil {
				return err
			}

			return a.writePolytope(cmd, p)
		},
	}
	cmd.Flags().Float64Var(&height, "height", 1, "height of the new apex or axis")

	return cmd
}

func (a *app) antiprismCmd() *cobra.Command {
	var height, radius float64
	cmd := &cobra.Command{
		Use:   "antiprism",
		Short: "Antiprism of the input and its dual about the gravicenter",
		Long: `Lifts the input to +height/2 and its dual to -height/2. Without --radius
the sphere of reciprocation has radius sqrt(circumradius·midradius), which
keeps the dual as large as the input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.readPolytope(cmd)
			if err != nil {
				return err
			}
			p, err = a.construct("antiprism", func() (*concrete.Polytope, error) {
				var sphere geometry.Hypersphere
				if radius > 0 {
					center, err := p.Gravicenter()
					if err != nil {
						return nil, err
					}
					sphere = geometry.Hypersphere{Center: center, Radius: radius}
				} else if sphere, err = p.AntiprismSphere(); err != nil {
					return nil, err
				}
				return concrete.Antiprism(p, sphere, height)
			})
			if err != nil {
				return err
			}

			return a.writePolytope(cmd, p)
		},
	}
	cmd.Flags().Float64Var(&height, "height", 1, "distance between the two bases")
	cmd.Flags().Float64Var(&radius, "radius", 0, "radius of the sphere of reciprocation (default: sqrt(circumradius·midradius))")

	return cmd
}

// report summarizes a polytope for the info command.
type report struct {
	Rank         int      `yaml:"rank" json:"rank"`
	Dimension    int      `yaml:"dimension" json:"dimension"`
	Counts       []int    `yaml:"counts" json:"counts"`
	Flags        string   `yaml:"flags" json:"flags"`
	Valid        bool     `yaml:"valid" json:"valid"`
	Orientable   *bool    `yaml:"orientable,omitempty" json:"orientable,omitempty"`
	Degenerate   bool     `yaml:"degenerate" json:"degenerate"`
	Equilateral  bool     `yaml:"equilateral" json:"equilateral"`
	Circumradius *float64 `yaml:"circumradius,omitempty" json:"circumradius,omitempty"`
	Midradius    *float64 `yaml:"midradius,omitempty" json:"midradius,omitempty"`
}

func (a *app) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print element counts, flag count and measures of the input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.readPolytope(cmd)
			if err != nil {
				return err
			}
			abs := p.Abstract()
			rep := report{
				Rank:        p.Rank(),
				Dimension:   p.Dimension(),
				Flags:       abs.FlagCount().String(),
				Valid:       p.Validate() == nil,
				Degenerate:  p.IsDegenerate(),
				Equilateral: p.IsEquilateral(),
				Counts:      elementCounts(p),
			}
			if o, err := abs.Orientable(); err == nil {
				rep.Orientable = &o
			}
			if r, err := p.Circumradius(); err == nil {
				rep.Circumradius = &r
			}
			if m, err := p.Midradius(); err == nil {
				rep.Midradius = &m
			}

			return a.writeValue(cmd, rep)
		},
	}
}

func (a *app) meshCmd() *cobra.Command {
	var rank int
	cmd := &cobra.Command{
		Use:   "mesh",
		Short: "Triangulate the 2-faces of the input, batched per element",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if rank < 0 || rank == 1 {
				return fmt.Errorf("--rank %d: %w", rank, mesh.ErrRank)
			}
			p, err := a.readPolytope(cmd)
			if err != nil {
				return err
			}
			var opts []mesh.Option
			if rank > 0 {
				opts = append(opts, mesh.WithRank(rank))
			}
			var m *mesh.Mesh
			err = a.rec.Track("mesh", func() (err error) {
				m, err = mesh.Project(p, opts...)
				return err
			})
			if err != nil {
				return err
			}

			return a.writeValue(cmd, m)
		},
	}
	cmd.Flags().IntVar(&rank, "rank", 0, "batch by elements of this rank (default: facets)")

	return cmd
}
