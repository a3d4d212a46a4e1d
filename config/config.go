// Package config loads engine settings from a YAML file, POLYTOPE_*
// environment variables and command-line flags, in rising priority.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/polytope/abstract"
	"github.com/katalvlaran/polytope/concrete"
	"github.com/katalvlaran/polytope/coxeter"
	"github.com/katalvlaran/polytope/geometry"
)

// EnvPrefix prefixes environment overrides: POLYTOPE_WORKERS,
// POLYTOPE_LOG_LEVEL, ...
const EnvPrefix = "POLYTOPE"

// ErrInvalidConfig indicates a value outside its allowed range.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds every tunable of the engine and the command line.
type Config struct {
	Epsilon           float64 `mapstructure:"epsilon" validate:"gt=0,lte=0.0001"`
	MaxGroupOrder     int     `mapstructure:"max_group_order" validate:"gte=1"`
	Workers           int     `mapstructure:"workers" validate:"gte=1,lte=1024"`
	RevalidatePetrial bool    `mapstructure:"revalidate_petrial"`
	Metrics           bool    `mapstructure:"metrics"`
	Log               Log     `mapstructure:"log"`
}

// Log selects the logger.
type Log struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

// flag name → config key
var flagKeys = map[string]string{
	"epsilon":            "epsilon",
	"max-group-order":    "max_group_order",
	"workers":            "workers",
	"revalidate-petrial": "revalidate_petrial",
	"metrics":            "metrics",
	"log-level":          "log.level",
	"log-format":         "log.format",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("epsilon", geometry.DefaultEpsilon)
	v.SetDefault("max_group_order", coxeter.DefaultMaxOrder)
	v.SetDefault("workers", coxeter.DefaultWorkers)
	v.SetDefault("revalidate_petrial", false)
	v.SetDefault("metrics", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// RegisterFlags adds the overridable settings to fs. Unset flags leave
// the file, environment and defaults in charge.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Float64("epsilon", geometry.DefaultEpsilon, "relative tolerance for coordinate comparisons")
	fs.Int("max-group-order", coxeter.DefaultMaxOrder, "largest reflection group to generate")
	fs.Int("workers", coxeter.DefaultWorkers, "goroutines used for group generation")
	fs.Bool("revalidate-petrial", false, "validate Petrials before returning them")
	fs.Bool("metrics", false, "print construction metrics to stderr on exit")
	fs.String("log-level", "info", "debug, info, warn or error")
	fs.String("log-format", "console", "console or json")
}

// Load reads path (skipped when empty), then the environment, then the
// flags of fs that were set (fs may be nil), and validates the result.
//
// Errors:
//   - file read and decode errors, wrapped.
//   - ErrInvalidConfig for out-of-range values.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config.Load: reading %s: %w", path, err)
		}
	}
	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("config.Load: binding --%s: %w", name, err)
				}
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Default returns the built-in settings.
func Default() *Config {
	c, _ := Load("", nil) // defaults always validate

	return c
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field against its range.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		e := errs[0]
		return fmt.Errorf("config: %s=%v fails %s %s: %w", e.Namespace(), e.Value(), e.Tag(), e.Param(), ErrInvalidConfig)
	}
	if err != nil {
		return fmt.Errorf("config: %v: %w", err, ErrInvalidConfig)
	}

	return nil
}

// CoxeterOptions returns the group and Wythoff settings.
func (c *Config) CoxeterOptions() []coxeter.Option {
	return []coxeter.Option{
		coxeter.WithEpsilon(c.Epsilon),
		coxeter.WithMaxOrder(c.MaxGroupOrder),
		coxeter.WithWorkers(c.Workers),
	}
}

// ConcreteOptions returns the tolerance for polytopes built from input.
func (c *Config) ConcreteOptions() []concrete.Option {
	return []concrete.Option{concrete.WithEpsilon(c.Epsilon)}
}

// PetrialOptions returns the Petrial validation policy.
func (c *Config) PetrialOptions() []abstract.PetrialOption {
	return []abstract.PetrialOption{abstract.WithRevalidate(c.RevalidatePetrial)}
}
