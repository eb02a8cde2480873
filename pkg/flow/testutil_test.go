package flow

import (
	"errors"
	"fmt"
)

// Helper workers used across tests

// linear returns a worker computing k*x + b.
func linear(k, b float64) Worker {
	return func(args ...any) (any, error) {
		x, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("linear: want float64, got %T", args[0])
		}
		return k*x + b, nil
	}
}

// identity returns its single argument.
func identity(args ...any) (any, error) {
	return args[0], nil
}

// sum adds float64 or int arguments.
func sum(args ...any) (any, error) {
	var total float64
	for _, a := range args {
		switch v := a.(type) {
		case float64:
			total += v
		case int:
			total += float64(v)
		default:
			return nil, fmt.Errorf("sum: unsupported %T", a)
		}
	}
	return total, nil
}

// makeCountingWorker wraps w and counts its calls.
func makeCountingWorker(w Worker, calls *int) Worker {
	return func(args ...any) (any, error) {
		*calls++
		return w(args...)
	}
}

// makeFailingWorker returns a worker that always fails with err.
func makeFailingWorker(err error) Worker {
	return func(args ...any) (any, error) {
		return nil, err
	}
}

// makePanicWorker returns a worker that panics with value.
func makePanicWorker(value any) Worker {
	return func(args ...any) (any, error) {
		panic(value)
	}
}

var errBoom = errors.New("boom")

// workNode creates an identified WorkNode around worker.
func workNode(id string, worker Worker) *Node {
	n := NewWorkNode(NewWork(id, worker))
	n.SetID(id)
	return n
}

// mustAdd registers node with inputs and panics on error.
func mustAdd(p *Plan, node *Node, inputs ...*Node) {
	if err := p.AddNode(node, inputs...); err != nil {
		panic(err)
	}
}

// quietPlan creates a plan that does not log.
func quietPlan(opts ...Option) *Plan {
	return NewPlan(append([]Option{WithLogger(nil)}, opts...)...)
}
