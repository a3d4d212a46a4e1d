package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/polytope/config"
	"github.com/katalvlaran/polytope/coxeter"
	"github.com/katalvlaran/polytope/geometry"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "polytope.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestDefaults(t *testing.T) {
	c := config.Default()
	require.Equal(t, geometry.DefaultEpsilon, c.Epsilon)
	require.Equal(t, coxeter.DefaultMaxOrder, c.MaxGroupOrder)
	require.Equal(t, 1, c.Workers)
	require.False(t, c.RevalidatePetrial)
	require.Equal(t, config.Log{Level: "info", Format: "console"}, c.Log)
	require.Len(t, c.CoxeterOptions(), 3)
	require.Len(t, c.ConcreteOptions(), 1)
	require.Len(t, c.PetrialOptions(), 1)
}

func TestLoadPriority(t *testing.T) {
	path := writeFile(t, `
epsilon: 1.0e-8
workers: 2
max_group_order: 5000
log:
  level: debug
`)
	c, err := config.Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, 1e-8, c.Epsilon)
	require.Equal(t, 2, c.Workers)
	require.Equal(t, 5000, c.MaxGroupOrder)
	require.Equal(t, "debug", c.Log.Level)
	require.Equal(t, "console", c.Log.Format)

	t.Setenv("POLYTOPE_WORKERS", "3")
	t.Setenv("POLYTOPE_LOG_FORMAT", "json")
	c, err = config.Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, 3, c.Workers)
	require.Equal(t, "json", c.Log.Format)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--workers=4", "--revalidate-petrial"}))
	c, err = config.Load(path, fs)
	require.NoError(t, err)
	require.Equal(t, 4, c.Workers)
	require.True(t, c.RevalidatePetrial)
	require.Equal(t, 5000, c.MaxGroupOrder, "unset flags do not override the file")
}

func TestLoadErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)

	for name, body := range map[string]string{
		"epsilon":   "epsilon: 0.1",
		"workers":   "workers: 0",
		"order":     "max_group_order: -1",
		"log level": "log:\n  level: loud",
	} {
		_, err := config.Load(writeFile(t, body), nil)
		require.ErrorIs(t, err, config.ErrInvalidConfig, name)
	}

	c := config.Default()
	c.Epsilon = 0
	require.ErrorIs(t, c.Validate(), config.ErrInvalidConfig)
}
