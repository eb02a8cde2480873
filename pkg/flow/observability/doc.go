// Package observability reports plan runs through slog, OpenTelemetry
// metrics and OpenTelemetry traces.
//
// Logging helpers accept a nil logger and then do nothing. Metrics and
// tracing are reached through the MetricsRecorder and SpanManager
// interfaces; NoopMetrics and NoopSpanManager are used when a plan does not
// enable them.
package observability
