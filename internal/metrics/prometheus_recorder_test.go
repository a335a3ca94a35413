package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("process", 150*time.Millisecond)
	pr.ObserveRunDuration(500 * time.Millisecond)
	pr.IncFileResult(ResultWritten)
	pr.IncFileResult(ResultWritten)
	pr.IncFileResult(ResultFailed)
	pr.IncLinkRewrite("page")
	pr.IncRunOutcome(OutcomePartial)

	require.InDelta(t, 2, testutil.ToFloat64(pr.fileResults.WithLabelValues(string(ResultWritten))), 0)
	require.InDelta(t, 1, testutil.ToFloat64(pr.fileResults.WithLabelValues(string(ResultFailed))), 0)
	require.InDelta(t, 1, testutil.ToFloat64(pr.runOutcomes.WithLabelValues(string(OutcomePartial))), 0)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncLinkRewrite("asset")

	path := filepath.Join(t.TempDir(), "docwiki.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), `docwiki_link_rewrites_total{kind="asset"} 1`), string(data))
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("x", time.Second)
	r.ObserveRunDuration(time.Second)
	r.IncFileResult(ResultSkipped)
	r.IncLinkRewrite("page")
	r.IncRunOutcome(OutcomeSuccess)
}
