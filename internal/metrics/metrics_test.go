package metrics

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	r := NewRecorder()
	r.Observe("wythoff", 10*time.Millisecond, nil)
	r.Observe("wythoff", 20*time.Millisecond, nil)
	r.Observe("dual", time.Millisecond, errors.New("boom"))

	require.Equal(t, 2.0, testutil.ToFloat64(r.Constructions.WithLabelValues("wythoff", ResultOK)))
	require.Equal(t, 1.0, testutil.ToFloat64(r.Constructions.WithLabelValues("dual", ResultError)))
	require.Zero(t, testutil.ToFloat64(r.Constructions.WithLabelValues("dual", ResultOK)))

	h, err := r.Duration.GetMetricWithLabelValues("wythoff")
	require.NoError(t, err)
	var m dto.Metric
	require.NoError(t, h.(prometheus.Histogram).Write(&m))
	require.Equal(t, uint64(2), m.GetHistogram().GetSampleCount())
	require.InDelta(t, 0.03, m.GetHistogram().GetSampleSum(), 1e-9)
}

func TestTrack(t *testing.T) {
	r := NewRecorder()
	want := errors.New("no")
	require.ErrorIs(t, r.Track("prism", func() error { return want }), want)
	require.NoError(t, r.Track("prism", func() error { return nil }))
	require.Equal(t, 1.0, testutil.ToFloat64(r.Constructions.WithLabelValues("prism", ResultError)))
	require.Equal(t, 1.0, testutil.ToFloat64(r.Constructions.WithLabelValues("prism", ResultOK)))
}

func TestCountsAndDump(t *testing.T) {
	r := NewRecorder()
	r.GroupOrder.Set(48)
	r.SetCounts([]int{8, 12, 6})
	r.SetCounts([]int{4, 6})
	require.Equal(t, 2, testutil.CollectAndCount(r.Elements))
	require.Equal(t, 6.0, testutil.ToFloat64(r.Elements.WithLabelValues("1")))
	r.Observe("wythoff", time.Millisecond, nil)

	var buf bytes.Buffer
	require.NoError(t, r.Dump(&buf))
	out := buf.String()
	require.Contains(t, out, "polytope_group_order 48")
	require.Contains(t, out, `polytope_elements{rank="0"} 4`)
	require.Contains(t, out, `polytope_constructions_total{op="wythoff",result="ok"} 1`)
	require.Contains(t, out, "# TYPE polytope_construction_seconds histogram")
}
