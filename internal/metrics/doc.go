// Package metrics records sync run metrics.
//
// Components receive a Recorder and default to NoopRecorder, so recording
// never needs a nil check:
//
//	s := syncer.New(cfg)                     // NoopRecorder
//	s = s.WithRecorder(metrics.NewPrometheusRecorder(nil))
//
// PrometheusRecorder keeps its own registry and can write it as a
// node-exporter textfile after a run, which suits a CLI that exits instead
// of serving a scrape endpoint.
package metrics
