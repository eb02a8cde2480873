package flow

import (
	"fmt"
	"log/slog"

	"github.com/randalmurphal/dsplab/pkg/flow/observability"
)

// Plan is a system of linked nodes. It owns its nodes, keeps ordered
// input and output subsets, and executes the nodes in dependency order
// when called.
//
// Use NewPlan to create a plan, then AddNode, SetInputs and SetOutputs to
// wire it:
//
//	a := flow.NewWorkNode(flow.NewWork("scale", scale))
//	b := flow.NewWorkNode(flow.NewWork("shift", shift))
//
//	plan := flow.NewPlan(flow.WithDescr("two steps"))
//	_ = plan.AddNode(a)
//	_ = plan.AddNode(b, a)
//	_ = plan.SetInputs(a)
//	_ = plan.SetOutputs(b)
//
//	results, err := plan.Run(ctx, []any{5.0})
//
// Plan is NOT thread-safe. A plan and its nodes must be used from a single
// goroutine, or guarded by the caller.
type Plan struct {
	descr        string
	nodes        []*Node
	inputs       []*Node
	outputs      []*Node
	sequence     []*Node
	progressHook Hook
	quick        bool

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// NewPlan creates an empty plan.
func NewPlan(opts ...Option) *Plan {
	p := &Plan{
		logger:  slog.Default(),
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Descr returns the description of the plan.
func (p *Plan) Descr() string {
	return p.descr
}

// SetDescr sets the description of the plan.
func (p *Plan) SetDescr(descr string) {
	p.descr = descr
}

// Quick reports whether Call uses QuickRun.
func (p *Plan) Quick() bool {
	return p.quick
}

// SetQuick selects QuickRun (true) or Run (false) for Call.
func (p *Plan) SetQuick(quick bool) {
	p.quick = quick
}

// SetProgressHook sets the hook run after every executed node.
// Pass nil to remove it.
func (p *Plan) SetProgressHook(h Hook) {
	p.progressHook = h
}

// Nodes returns the registered nodes in registration order.
func (p *Plan) Nodes() []*Node {
	return append([]*Node(nil), p.nodes...)
}

// Inputs returns the input nodes in order.
func (p *Plan) Inputs() []*Node {
	return append([]*Node(nil), p.inputs...)
}

// Outputs returns the output nodes in order.
func (p *Plan) Outputs() []*Node {
	return append([]*Node(nil), p.outputs...)
}

// Sequence returns the precomputed execution order used by QuickRun.
// Plan inputs are not part of the sequence.
func (p *Plan) Sequence() []*Node {
	return append([]*Node(nil), p.sequence...)
}

// Has reports whether node is registered in this plan.
func (p *Plan) Has(node *Node) bool {
	return node != nil && node.plan == p
}

// AddNode registers node in the plan.
//
// If inputs are given they replace the node's inputs. Either way every input
// of the node must already be registered in this plan (a node may list
// itself). The execution sequence is recomputed.
func (p *Plan) AddNode(node *Node, inputs ...*Node) error {
	if node == nil {
		return ErrNilNode
	}
	if node.plan != nil {
		return fmt.Errorf("%w: %s", ErrAlreadyMember, node.label())
	}

	wired := node.inputs
	if len(inputs) > 0 {
		wired = inputs
	}
	for _, in := range wired {
		if in == nil {
			return ErrNilNode
		}
		if in != node && in.plan != p {
			return fmt.Errorf("%w: %s", ErrForeignInput, in.label())
		}
	}

	if len(inputs) > 0 {
		node.inputs = append([]*Node(nil), inputs...)
	}
	node.plan = p
	p.nodes = append(p.nodes, node)
	p.detectSequence()
	return nil
}

// RemoveNode unregisters node. The node is scrubbed from the inputs of every
// other node and from the plan's inputs and outputs.
// Returns ErrNotMember if the node is not registered in this plan.
func (p *Plan) RemoveNode(node *Node) error {
	if !p.Has(node) {
		return ErrNotMember
	}

	for _, other := range p.nodes {
		if other != node {
			other.removeInput(node)
		}
	}
	p.nodes = without(p.nodes, node)
	p.inputs = without(p.inputs, node)
	p.outputs = without(p.outputs, node)
	node.plan = nil

	p.detectSequence()
	return nil
}

// SetInputs sets the nodes that receive external values, in call order.
func (p *Plan) SetInputs(nodes ...*Node) error {
	if err := p.checkMembers(nodes); err != nil {
		return err
	}
	p.inputs = append([]*Node(nil), nodes...)
	p.detectSequence()
	return nil
}

// SetOutputs sets the nodes whose results a run returns, in order.
func (p *Plan) SetOutputs(nodes ...*Node) error {
	if err := p.checkMembers(nodes); err != nil {
		return err
	}
	p.outputs = append([]*Node(nil), nodes...)
	return nil
}

// Clear removes all nodes, inputs and outputs.
func (p *Plan) Clear() {
	for _, n := range p.nodes {
		n.plan = nil
	}
	p.nodes = nil
	p.inputs = nil
	p.outputs = nil
	p.sequence = nil
}

// Verify checks the plan can be executed.
// A plan needs at least one input and at least one output.
func (p *Plan) Verify() error {
	if len(p.inputs) == 0 {
		return ErrNoPlanInputs
	}
	if len(p.outputs) == 0 {
		return ErrNoPlanOutputs
	}
	return nil
}

func (p *Plan) checkMembers(nodes []*Node) error {
	for _, n := range nodes {
		if n == nil {
			return ErrNilNode
		}
		if n.plan != p {
			return fmt.Errorf("%w: %s", ErrNotMember, n.label())
		}
	}
	return nil
}

// without returns list with every occurrence of target removed.
func without(list []*Node, target *Node) []*Node {
	out := list[:0]
	for _, n := range list {
		if n != target {
			out = append(out, n)
		}
	}
	for i := len(out); i < len(list); i++ {
		list[i] = nil
	}
	return out
}
