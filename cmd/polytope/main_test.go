package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/polytope/config"
	"github.com/katalvlaran/polytope/coxeter"
	"github.com/katalvlaran/polytope/mesh"
	"github.com/katalvlaran/polytope/polyio"
)

// run executes the root command with args and returns its stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args, "--log-level", "error"))
	err := root.Execute()

	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, "", args...)
	require.NoError(t, err)

	return out
}

func info(t *testing.T, path string) report {
	t.Helper()
	var rep report
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "info", "--in", path, "--format", "json")), &rep))

	return rep
}

func TestBuildOFF(t *testing.T) {
	out := mustRun(t, "build", "--cd", "x4o3o", "--format", "off")
	require.True(t, strings.HasPrefix(out, "OFF\n8 6 12\n"), out)
}

func TestBuildYAML(t *testing.T) {
	out := mustRun(t, "build", "--cd", "x3o3o3o")
	doc, err := polyio.Decode(strings.NewReader(out), polyio.FormatYAML)
	require.NoError(t, err)
	require.Equal(t, 4, doc.Rank)
	require.Len(t, doc.Vertices, 5)
}

func TestPipeline(t *testing.T) {
	dir := t.TempDir()
	tet := filepath.Join(dir, "tet.yaml")
	dual := filepath.Join(dir, "dual.json")
	mustRun(t, "build", "--cd", "x3o3o", "--out", tet)
	mustRun(t, "dual", "--in", tet, "--out", dual, "--format", "json")

	rep := info(t, dual)
	require.Equal(t, 3, rep.Rank)
	require.Equal(t, 3, rep.Dimension)
	require.Equal(t, []int{4, 6, 4}, rep.Counts)
	require.Equal(t, "24", rep.Flags)
	require.True(t, rep.Valid)
	require.True(t, rep.Equilateral)
	require.False(t, rep.Degenerate)
	require.NotNil(t, rep.Orientable)
	require.True(t, *rep.Orientable)
	require.NotNil(t, rep.Circumradius)
}

func TestShapesAndProducts(t *testing.T) {
	dir := t.TempDir()
	pent := filepath.Join(dir, "pent.yaml")
	mustRun(t, "shape", "polygon", "--n", "5", "--out", pent)

	tests := []struct {
		op     string
		counts []int
	}{
		{"pyramid", []int{6, 10, 6}},
		{"prism", []int{10, 15, 7}},
		{"tegum", []int{7, 15, 10}},
	}
	for _, tc := range tests {
		t.Run(tc.op, func(t *testing.T) {
			out := filepath.Join(dir, tc.op+".json")
			mustRun(t, tc.op, "--in", pent, "--out", out, "--format", "json")
			require.Equal(t, tc.counts, info(t, out).Counts)
		})
	}

	out := mustRun(t, "shape", "hypercube", "--n", "4", "--format", "json")
	doc, err := polyio.Decode(strings.NewReader(out), polyio.FormatJSON)
	require.NoError(t, err)
	require.Equal(t, 4, doc.Rank)
	require.Len(t, doc.Vertices, 16)
}

func TestAntiprism(t *testing.T) {
	dir := t.TempDir()
	sq := filepath.Join(dir, "square.yaml")
	ap := filepath.Join(dir, "antiprism.json")
	mustRun(t, "shape", "polygon", "--n", "4", "--out", sq)
	mustRun(t, "antiprism", "--in", sq, "--height", "0.8408964152537145", "--out", ap, "--format", "json")

	rep := info(t, ap)
	require.Equal(t, []int{8, 16, 10}, rep.Counts)
	require.True(t, rep.Valid)
	require.True(t, rep.Equilateral)

	rep = info(t, sq)
	require.NotNil(t, rep.Midradius)
	require.InDelta(t, 0.5, *rep.Midradius, 1e-9)
}

func TestStdin(t *testing.T) {
	out, err := run(t, mustRun(t, "shape", "simplex", "--n", "3"), "info", "--format", "json")
	require.NoError(t, err)
	var rep report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Equal(t, []int{4, 6, 4}, rep.Counts)
}

func TestPetrial(t *testing.T) {
	dir := t.TempDir()
	cube := filepath.Join(dir, "cube.off")
	petrial := filepath.Join(dir, "petrial.yaml")
	mustRun(t, "shape", "hypercube", "--n", "3", "--format", "off", "--out", cube)
	mustRun(t, "petrial", "--in", cube, "--out", petrial, "--revalidate-petrial")
	require.Equal(t, []int{8, 12, 4}, info(t, petrial).Counts)
}

func TestMesh(t *testing.T) {
	dir := t.TempDir()
	cube := filepath.Join(dir, "cube.yaml")
	mustRun(t, "build", "--cd", "x4o3o", "--out", cube)

	var m mesh.Mesh
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "mesh", "--in", cube, "--format", "json")), &m))
	require.Equal(t, 2, m.Rank)
	require.Len(t, m.Batches, 6)
	require.Len(t, m.Edges, 12)
	require.Len(t, m.Triangles(), 12)
}

func TestMetricsDump(t *testing.T) {
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{"build", "--cd", "x3o4o", "--metrics", "--log-level", "error"})
	require.NoError(t, root.Execute())
	require.Contains(t, errOut.String(), `polytope_constructions_total{op="wythoff",result="ok"} 1`)
	require.Contains(t, errOut.String(), "polytope_group_order 48")
	require.Contains(t, errOut.String(), `polytope_elements{rank="0"} 6`)
}

func TestErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "", "build")
	require.Error(t, err)

	_, err = run(t, "", "build", "--cd", "x3")
	var perr *coxeter.ParseError
	require.ErrorAs(t, err, &perr)

	_, err = run(t, "", "build", "--cd", "x4o4o")
	require.ErrorIs(t, err, coxeter.ErrInfiniteGroup)

	_, err = run(t, "", "build", "--cd", "x3o3o3o3o", "--max-group-order", "100")
	require.ErrorIs(t, err, coxeter.ErrTooLarge)

	_, err = run(t, "", "shape", "polygon", "--epsilon", "1")
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = run(t, "", "shape", "prism")
	require.Error(t, err)

	_, err = run(t, "", "info", "--in", filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	_, err = run(t, "", "info", "--in", filepath.Join(dir, "cube.txt"))
	require.Error(t, err)

	cube := filepath.Join(dir, "cube.yaml")
	mustRun(t, "shape", "hypercube", "--n", "3", "--out", cube)
	_, err = run(t, "", "mesh", "--in", cube, "--format", "off")
	require.ErrorIs(t, err, polyio.ErrUnsupported)

	_, err = run(t, "", "mesh", "--in", cube, "--rank", "1")
	require.ErrorIs(t, err, mesh.ErrRank)
	_, err = run(t, "", "mesh", "--in", cube, "--rank=-2")
	require.ErrorIs(t, err, mesh.ErrRank)

	_, err = run(t, "", "build", "--cd", "x3o3o3o", "--format", "off")
	require.ErrorIs(t, err, polyio.ErrUnsupported)
}
