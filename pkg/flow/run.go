package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/dsplab/pkg/flow/observability"
)

const (
	modeRelax = "relax"
	modeQuick = "quick"

	opSeed    = "seed"
	opExecute = "execute"
)

// Run executes the plan with values positioned against its inputs and
// returns the results of its outputs in order.
//
// Execution flow:
//  1. Clear the result of every node
//  2. Seed each input node with its value (start hook, execute, stop hook, progress hook)
//  3. Relax: scan nodes in registration order and execute every node whose
//     inputs are all ready; repeat until a full scan executes nothing
//  4. Collect the output results
//
// Nodes whose dependencies never resolve (a cycle, or an input that is not
// reachable from the plan inputs) are left without a result. That is not an
// error; an unresolved output is returned as nil.
//
// Any node error stops the run immediately and no results are returned.
// ctx carries trace spans; it does not interrupt execution.
//
// Example:
//
//	results, err := plan.Run(context.Background(), []any{5.0})
func (p *Plan) Run(ctx context.Context, values []any, opts ...RunOption) (results []any, runErr error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if err := p.checkValues(values); err != nil {
		return nil, err
	}

	cfg := newRunConfig(opts)
	logger := observability.EnrichLogger(p.logger, cfg.runID, modeRelax)
	startTime := time.Now()
	observability.LogRunStart(logger, p.descr, len(values))

	ctx, runSpan := p.spans.StartRunSpan(ctx, p.descr, cfg.runID, modeRelax)
	defer func() {
		p.spans.EndSpanWithError(runSpan, runErr)
	}()

	executed, passes, lastNode, err := p.relax(ctx, logger, values)
	duration := time.Since(startTime)
	p.metrics.RecordPlanRun(ctx, modeRelax, err == nil, duration)
	if err != nil {
		observability.LogRunError(logger, err, duration, lastNode)
		return nil, err
	}
	p.metrics.RecordPasses(ctx, passes)

	unresolved := p.unresolved()
	if len(unresolved) > 0 {
		p.spans.AddSpanEvent(ctx, "nodes_unresolved", attribute.Int("count", len(unresolved)))
	}
	observability.LogUnresolved(logger, unresolved)
	observability.LogRunComplete(logger, duration, executed, passes)
	return p.collect(), nil
}

// relax seeds the inputs and executes ready nodes until a fixed point.
// Returns the number of executed nodes, the number of relaxation passes,
// and the label of the last node attempted.
func (p *Plan) relax(ctx context.Context, logger *slog.Logger, values []any) (executed, passes int, lastNode string, err error) {
	for _, n := range p.nodes {
		n.ClearResult()
	}

	for i, n := range p.inputs {
		lastNode = n.label()
		value := values[i]
		if err := p.step(ctx, logger, n, opSeed, func() error {
			_, err := n.seed(value)
			return err
		}); err != nil {
			return executed, passes, lastNode, err
		}
		executed++
	}
	p.spans.AddSpanEvent(ctx, "inputs_seeded", attribute.Int("count", len(p.inputs)))

	for {
		passes++
		progressed := false
		for _, n := range p.nodes {
			if n.ready || !n.InputsReady() {
				continue
			}
			progressed = true
			lastNode = n.label()
			data := n.inputResults()
			if err := p.step(ctx, logger, n, opExecute, func() error {
				_, err := n.execute(data)
				return err
			}); err != nil {
				return executed, passes, lastNode, err
			}
			executed++
		}
		if !progressed {
			return executed, passes, lastNode, nil
		}
	}
}

// step executes one node with hooks, logging, metrics and tracing.
// The stop and progress hooks only run when the node succeeds.
func (p *Plan) step(ctx context.Context, logger *slog.Logger, n *Node, op string, exec func() error) error {
	nodeID := n.label()
	kind := n.kind.String()

	observability.LogNodeStart(logger, nodeID, kind)
	nodeCtx, nodeSpan := p.spans.StartNodeSpan(ctx, nodeID, kind)
	nodeStart := time.Now()

	n.runStartHook()
	err := exec()
	nodeDuration := time.Since(nodeStart)

	p.metrics.RecordNodeExecution(nodeCtx, nodeID, kind, nodeDuration, err)
	if err != nil {
		err = wrapNodeError(n, op, err)
		p.spans.EndSpanWithError(nodeSpan, err)
		observability.LogNodeError(logger, nodeID, err)
		return err
	}
	p.spans.EndSpanWithError(nodeSpan, nil)

	n.runStopHook()
	if p.progressHook != nil {
		p.progressHook()
	}
	observability.LogNodeComplete(logger, nodeID, nodeDuration)
	return nil
}

// QuickRun executes the plan along its precomputed sequence.
//
// Inputs are seeded, then every node of the sequence executes once in fixed
// order with no readiness checks, no hooks and no per-node logging or
// tracing. It is meant for online loops over acyclic plans; outputs whose
// nodes are not in the sequence are returned as nil.
func (p *Plan) QuickRun(ctx context.Context, values []any) ([]any, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if err := p.checkValues(values); err != nil {
		return nil, err
	}

	startTime := time.Now()
	err := p.runSequence(values)
	p.metrics.RecordPlanRun(ctx, modeQuick, err == nil, time.Since(startTime))
	if err != nil {
		return nil, err
	}
	return p.collect(), nil
}

func (p *Plan) runSequence(values []any) error {
	for _, n := range p.nodes {
		n.ClearResult()
	}
	for i, n := range p.inputs {
		if _, err := n.seed(values[i]); err != nil {
			return wrapNodeError(n, opSeed, err)
		}
	}
	for _, n := range p.sequence {
		if _, err := n.execute(n.inputResults()); err != nil {
			return wrapNodeError(n, opExecute, err)
		}
	}
	return nil
}

// Call runs the plan with args as input values and returns the output
// results as []any. It uses QuickRun for quick plans and Run otherwise.
// Call lets a Plan serve as the worker of a Work in another plan.
func (p *Plan) Call(args ...any) (any, error) {
	var (
		results []any
		err     error
	)
	if p.quick {
		results, err = p.QuickRun(context.Background(), args)
	} else {
		results, err = p.Run(context.Background(), args)
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (p *Plan) checkValues(values []any) error {
	if err := p.Verify(); err != nil {
		return err
	}
	if len(values) != len(p.inputs) {
		return fmt.Errorf("%w: got %d values for %d inputs", ErrValueCount, len(values), len(p.inputs))
	}
	return nil
}

// collect returns the output results in order; unresolved outputs are nil.
func (p *Plan) collect() []any {
	results := make([]any, len(p.outputs))
	for i, n := range p.outputs {
		results[i] = n.result
	}
	return results
}

func (p *Plan) unresolved() []string {
	var ids []string
	for _, n := range p.nodes {
		if !n.ready {
			ids = append(ids, n.label())
		}
	}
	return ids
}

func newRunConfig(opts []RunOption) runConfig {
	cfg := runConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.runID == "" {
		cfg.runID = uuid.New().String()
	}
	return cfg
}

// wrapNodeError adds node context to an execution error.
// Panics already carry the node and are returned unchanged.
func wrapNodeError(n *Node, op string, err error) error {
	var panicErr *PanicError
	if errors.As(err, &panicErr) {
		return err
	}
	return &NodeError{
		NodeID: n.label(),
		Op:     op,
		Err:    err,
	}
}
