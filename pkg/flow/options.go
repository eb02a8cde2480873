package flow

import (
	"log/slog"

	"github.com/randalmurphal/dsplab/pkg/flow/observability"
)

// Option configures a Plan.
type Option func(*Plan)

// WithDescr sets the description of the plan.
func WithDescr(descr string) Option {
	return func(p *Plan) {
		p.descr = descr
	}
}

// WithLogger sets the logger for plan runs.
// Default: slog.Default(). A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Plan) {
		p.logger = logger
	}
}

// WithMetrics enables metrics recording with the given recorder.
// Use observability.NewMetricsRecorder() for OpenTelemetry metrics.
// A nil recorder disables metrics.
//
// Example:
//
//	plan := flow.NewPlan(flow.WithMetrics(observability.NewMetricsRecorder()))
func WithMetrics(recorder observability.MetricsRecorder) Option {
	return func(p *Plan) {
		if recorder == nil {
			recorder = observability.NoopMetrics{}
		}
		p.metrics = recorder
	}
}

// WithTracing enables OpenTelemetry spans for plan runs and node executions.
// Default: false
func WithTracing(enabled bool) Option {
	return func(p *Plan) {
		if enabled {
			p.spans = observability.NewSpanManager()
		} else {
			p.spans = observability.NoopSpanManager{}
		}
	}
}

// WithQuick makes Call use QuickRun instead of Run.
// Quick plans skip readiness checks, hooks and per-node observability.
// Default: false
func WithQuick(quick bool) Option {
	return func(p *Plan) {
		p.quick = quick
	}
}

// runConfig holds configuration for a single plan run.
type runConfig struct {
	runID string
}

// RunOption configures a single run.
type RunOption func(*runConfig)

// WithRunID sets the run identifier used in logs and spans.
// Default: a random UUID.
func WithRunID(id string) RunOption {
	return func(c *runConfig) {
		c.runID = id
	}
}
