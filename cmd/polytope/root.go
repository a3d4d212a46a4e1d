package main

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/polytope/config"
	"github.com/katalvlaran/polytope/internal/metrics"
)

// app carries what every subcommand shares. It is built fresh per root
// command, so tests can run commands side by side.
type app struct {
	cfgPath string
	in, out string
	format  string

	cfg *config.Config
	log logr.Logger
	zap *zap.Logger
	rec *metrics.Recorder
}

func newRootCmd() *cobra.Command {
	a := &app{rec: metrics.NewRecorder(), log: logr.Discard()}
	root := &cobra.Command{
		Use:           "polytope",
		Short:         "Build and transform convex and abstract polytopes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.teardown(cmd)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "YAML configuration file")
	pf.StringVar(&a.in, "in", "", "input polytope file (.yaml, .json or .off); stdin when empty")
	pf.StringVar(&a.out, "out", "", "output file; stdout when empty")
	pf.StringVar(&a.format, "format", "yaml", "output format: yaml, json or off")
	config.RegisterFlags(pf)

	root.AddCommand(
		a.buildCmd(),
		a.shapeCmd(),
		a.dualCmd(),
		a.petrialCmd(),
		a.productCmd("pyramid", "Pyramid over the input polytope"),
		a.productCmd("prism", "Prism over the input polytope"),
		a.productCmd("tegum", "Tegum (bipyramid) over the input polytope"),
		a.antiprismCmd(),
		a.infoCmd(),
		a.meshCmd(),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgPath, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg
	if a.zap, err = newZap(cfg.Log); err != nil {
		return err
	}
	a.log = zapr.NewLogger(a.zap).WithName("polytope")
	cmd.SetContext(logr.NewContext(cmd.Context(), a.log))
	a.log.V(1).Info("configuration loaded", "epsilon", cfg.Epsilon, "workers", cfg.Workers, "maxGroupOrder", cfg.MaxGroupOrder)

	return nil
}

func (a *app) teardown(cmd *cobra.Command) error {
	if a.cfg != nil && a.cfg.Metrics {
		if err := a.rec.Dump(cmd.ErrOrStderr()); err != nil {
			return err
		}
	}
	if a.zap != nil {
		_ = a.zap.Sync() // stderr sync fails on some terminals
	}

	return nil
}

// newZap builds a console (development) or JSON (production) logger at
// the configured level.
func newZap(c config.Log) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewDevelopmentConfig()
	if c.Format == "json" {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}
