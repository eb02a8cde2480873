package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// scopeName is the instrumentation scope for meters and tracers.
const scopeName = "dsplab/flow"

// MetricsRecorder receives execution measurements from plan runs.
type MetricsRecorder interface {
	// RecordNodeExecution counts one node execution and its latency.
	// A non-nil err also counts as a node error.
	RecordNodeExecution(ctx context.Context, nodeID, kind string, duration time.Duration, err error)

	// RecordPlanRun counts one finished run. Mode is "relax" or "quick".
	RecordPlanRun(ctx context.Context, mode string, success bool, duration time.Duration)

	// RecordPasses records how many relaxation passes a run needed.
	RecordPasses(ctx context.Context, passes int)
}

// instruments holds the OpenTelemetry instruments of one meter.
type instruments struct {
	executions  metric.Int64Counter
	failures    metric.Int64Counter
	nodeLatency metric.Float64Histogram
	runs        metric.Int64Counter
	runLatency  metric.Float64Histogram
	passes      metric.Int64Histogram
}

// globalInstruments is created once, on the global meter provider.
var globalInstruments = sync.OnceValues(func() (*instruments, error) {
	return newInstruments(otel.GetMeterProvider())
})

func newInstruments(mp metric.MeterProvider) (*instruments, error) {
	meter := mp.Meter(scopeName)

	var (
		in   instruments
		errs = make([]error, 6)
	)
	in.executions, errs[0] = meter.Int64Counter("flow.node.executions",
		metric.WithDescription("Executed nodes"))
	in.failures, errs[1] = meter.Int64Counter("flow.node.errors",
		metric.WithDescription("Node executions that returned an error"))
	in.nodeLatency, errs[2] = meter.Float64Histogram("flow.node.latency_ms",
		metric.WithDescription("Time spent in one node execution"),
		metric.WithUnit("ms"))
	in.runs, errs[3] = meter.Int64Counter("flow.plan.runs",
		metric.WithDescription("Finished plan runs"))
	in.runLatency, errs[4] = meter.Float64Histogram("flow.plan.latency_ms",
		metric.WithDescription("Time spent in one plan run"),
		metric.WithUnit("ms"))
	in.passes, errs[5] = meter.Int64Histogram("flow.plan.passes",
		metric.WithDescription("Relaxation passes per run"))

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("create flow instruments: %w", err)
	}
	return &in, nil
}

// NewMetricsRecorder returns a recorder on the global OTel meter provider.
// All recorders it returns share one set of instruments. If the instruments
// cannot be created, the error is logged and a NoopMetrics is returned.
//
// Set the provider first:
//
//	otel.SetMeterProvider(provider)
//	plan := flow.NewPlan(flow.WithMetrics(observability.NewMetricsRecorder()))
func NewMetricsRecorder() MetricsRecorder {
	in, err := globalInstruments()
	if err != nil {
		slog.Warn("metrics disabled", slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return in
}

// NewMetricsRecorderFrom returns a recorder with its own instruments on mp.
func NewMetricsRecorderFrom(mp metric.MeterProvider) (MetricsRecorder, error) {
	in, err := newInstruments(mp)
	if err != nil {
		return nil, err
	}
	return in, nil
}

func milliseconds(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}

func (in *instruments) RecordNodeExecution(ctx context.Context, nodeID, kind string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("node_id", nodeID),
		attribute.String("kind", kind),
	)
	in.executions.Add(ctx, 1, attrs)
	in.nodeLatency.Record(ctx, milliseconds(duration), attrs)
	if err != nil {
		in.failures.Add(ctx, 1, attrs)
	}
}

func (in *instruments) RecordPlanRun(ctx context.Context, mode string, success bool, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("mode", mode),
		attribute.Bool("success", success),
	)
	in.runs.Add(ctx, 1, attrs)
	in.runLatency.Record(ctx, milliseconds(duration), attrs)
}

func (in *instruments) RecordPasses(ctx context.Context, passes int) {
	in.passes.Record(ctx, int64(passes))
}
