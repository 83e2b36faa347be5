// Package metrics provides run metrics for the preprocessor.
//
// # Design
//
// This package implements the Null Object pattern: components hold a Recorder and
// default to NoopRecorder, so no call site needs a nil check.
//
// # Activation
//
// The preprocessor is a batch process that lives for one mdbook invocation, so there
// is nothing to scrape. When a metrics file is configured, the CLI swaps in a
// PrometheusRecorder and writes its registry in the node_exporter textfile format
// once the run ends:
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	p := preprocessor.New(opts).WithRecorder(rec)
//	// ... run ...
//	err := metrics.WriteTextfile(reg, path)
package metrics
