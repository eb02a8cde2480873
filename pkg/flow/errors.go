package flow

import (
	"errors"
	"fmt"
)

// Sentinel errors for plan structure.
var (
	// ErrNotMember indicates a node is not registered in the plan.
	ErrNotMember = errors.New("node is not a member of the plan")

	// ErrAlreadyMember indicates a node is already registered in a plan.
	ErrAlreadyMember = errors.New("node is already registered in a plan")

	// ErrForeignInput indicates an input references a node outside the plan.
	ErrForeignInput = errors.New("input node is not a member of the plan")

	// ErrNilNode indicates a nil node was passed where a node is required.
	ErrNilNode = errors.New("node cannot be nil")
)

// Sentinel errors for execution.
var (
	// ErrNilContext is returned by Run and QuickRun for a nil context.
	ErrNilContext = errors.New("nil context")

	// ErrNoPlanInputs indicates the plan has no input nodes.
	ErrNoPlanInputs = errors.New("there are no inputs in the plan")

	// ErrNoPlanOutputs indicates the plan has no output nodes.
	ErrNoPlanOutputs = errors.New("there are no outputs in the plan")

	// ErrValueCount indicates the number of values does not match the plan inputs.
	ErrValueCount = errors.New("value count does not match plan inputs")

	// ErrNoWorker indicates a work was called before a worker was set.
	ErrNoWorker = errors.New("work has no worker")

	// ErrNoWork indicates a work or map node has no work assigned.
	ErrNoWork = errors.New("node has no work")

	// ErrNoInputs indicates a node that needs input data received none.
	ErrNoInputs = errors.New("node must have input")

	// ErrNotIterable indicates a map or select node received a non-list value.
	ErrNotIterable = errors.New("value is not iterable")

	// ErrLengthMismatch indicates parallel inputs have different lengths.
	ErrLengthMismatch = errors.New("inputs have different lengths")

	// ErrIndexOutOfRange indicates a select index outside the input bounds.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// NodeError is returned by a run when a node fails.
// Op is "seed" when the node failed on an external value given to the run
// and "execute" when it failed on the results of its inputs.
type NodeError struct {
	NodeID string
	Op     string
	Err    error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("node %s: %s: %v", e.NodeID, e.Op, e.Err)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}

// PanicError is returned when a worker panics. Stack is the goroutine
// stack captured during recovery.
type PanicError struct {
	NodeID string
	Value  any
	Stack  string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("node %s panicked: %v", e.NodeID, e.Value)
}
