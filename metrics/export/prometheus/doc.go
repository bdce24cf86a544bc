// Package prometheus provides Prometheus collectors for sessionnav metrics.
//
// [NewPrometheusExporter] accepts a [sessionnav.Engine] and exposes an
// [http.Handler] that renders all sessionnav counters and histograms in
// Prometheus text exposition format. Counter names are prefixed
// sessionnav_*_total; the single histogram is
// sessionnav_resolve_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate engine state.
package prometheus
