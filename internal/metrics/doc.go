// Package metrics records build observations for the content builder.
//
// Components receive a Recorder. NoopRecorder is the default so callers never
// nil-check; PrometheusRecorder is swapped in when `metrics.enabled` is set:
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	svc := build.NewService(build.WithRecorder(rec))
//	http.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics
