package flow

import (
	"fmt"
	"reflect"
	"runtime/debug"
)

// Kind identifies the execution rule of a node.
type Kind int

const (
	// KindWork applies the node's work to the results of all inputs.
	KindWork Kind = iota

	// KindMap applies the node's work element-wise over list inputs.
	KindMap

	// KindSelect picks one element (or one column) of list inputs.
	KindSelect

	// KindPack collects the results of all inputs into a list.
	KindPack

	// KindPass forwards the result of the first input.
	KindPass
)

// String returns the class name used in plan descriptions.
func (k Kind) String() string {
	switch k {
	case KindWork:
		return "WorkNode"
	case KindMap:
		return "MapNode"
	case KindSelect:
		return "SelectNode"
	case KindPack:
		return "PackNode"
	case KindPass:
		return "PassNode"
	default:
		return "unknown"
	}
}

// HasWork reports whether nodes of this kind carry a Work.
func (k Kind) HasWork() bool {
	return k == KindWork || k == KindMap
}

// ParseKind returns the Kind for a class name.
// An empty name means WorkNode.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "", "WorkNode":
		return KindWork, nil
	case "MapNode":
		return KindMap, nil
	case "SelectNode":
		return KindSelect, nil
	case "PackNode":
		return KindPack, nil
	case "PassNode":
		return KindPass, nil
	default:
		return 0, fmt.Errorf("unsupported node class: %s", name)
	}
}

// Hook is a callback run around node execution or after each executed node.
// Arguments are bound at registration time; see BindHook.
type Hook func()

// BindHook binds args to fn and returns a Hook that calls fn(args...).
//
// Example:
//
//	node.SetStartHook(flow.BindHook(func(args ...any) {
//	    fmt.Println("started", args[0])
//	}, "filter"))
func BindHook(fn func(args ...any), args ...any) Hook {
	if fn == nil {
		return nil
	}
	return func() {
		fn(args...)
	}
}

// Node is a vertex of a Plan. It holds ordered references to its input
// nodes, the cached result of the current run, and an execution rule
// selected by its Kind.
//
// Inputs are back-references only: the Plan that registers a node owns it.
// A Node is not safe for concurrent use.
type Node struct {
	id         string
	kind       Kind
	work       *Work
	index      int
	inputs     []*Node
	result     any
	ready      bool
	resultInfo string
	startHook  Hook
	stopHook   Hook
	plan       *Plan
}

func newNode(kind Kind, inputs []*Node) *Node {
	n := &Node{kind: kind}
	if len(inputs) > 0 {
		n.inputs = append([]*Node(nil), inputs...)
	}
	return n
}

// NewWorkNode creates a node that calls work with the results of its inputs.
func NewWorkNode(work *Work, inputs ...*Node) *Node {
	n := newNode(KindWork, inputs)
	n.work = work
	return n
}

// NewMapNode creates a node that applies work to every element of its
// list inputs. With several inputs the lists are zipped element-wise.
func NewMapNode(work *Work, inputs ...*Node) *Node {
	n := newNode(KindMap, inputs)
	n.work = work
	return n
}

// NewSelectNode creates a node that selects the element at index from its
// single list input, or the column at index from several list inputs.
// Negative indexes count from the end.
func NewSelectNode(index int, inputs ...*Node) *Node {
	n := newNode(KindSelect, inputs)
	n.index = index
	return n
}

// NewPackNode creates a node that packs the results of its inputs into a list.
func NewPackNode(inputs ...*Node) *Node {
	return newNode(KindPack, inputs)
}

// NewPassNode creates a node that passes the result of its first input.
func NewPassNode(inputs ...*Node) *Node {
	return newNode(KindPass, inputs)
}

// ID returns the node identifier, or an empty string if none was set.
func (n *Node) ID() string {
	return n.id
}

// SetID sets the node identifier.
func (n *Node) SetID(id string) {
	n.id = id
}

// Kind returns the execution rule of the node.
func (n *Node) Kind() Kind {
	return n.kind
}

// Work returns the work of a WorkNode or MapNode, or nil.
func (n *Node) Work() *Work {
	return n.work
}

// SetWork sets the work for the node.
func (n *Node) SetWork(work *Work) {
	n.work = work
}

// Index returns the index of a SelectNode.
func (n *Node) Index() int {
	return n.index
}

// Descr returns the work description for work-carrying nodes,
// otherwise the class name.
func (n *Node) Descr() string {
	if n.work != nil {
		return n.work.Descr()
	}
	return n.kind.String()
}

// Inputs returns a copy of the input node list.
func (n *Node) Inputs() []*Node {
	return append([]*Node(nil), n.inputs...)
}

// SetInputs replaces the input node list.
//
// If the node is registered in a Plan, every input must belong to the same
// Plan and the Plan's execution sequence is recomputed.
func (n *Node) SetInputs(inputs ...*Node) error {
	for _, in := range inputs {
		if in == nil {
			return ErrNilNode
		}
		if n.plan != nil && in.plan != n.plan {
			return fmt.Errorf("%w: %s", ErrForeignInput, in.label())
		}
	}
	n.inputs = append([]*Node(nil), inputs...)
	if n.plan != nil {
		n.plan.detectSequence()
	}
	return nil
}

// removeInput drops every reference to target from the inputs.
func (n *Node) removeInput(target *Node) {
	kept := n.inputs[:0]
	for _, in := range n.inputs {
		if in != target {
			kept = append(kept, in)
		}
	}
	for i := len(kept); i < len(n.inputs); i++ {
		n.inputs[i] = nil
	}
	n.inputs = kept
}

// SetStartHook sets the hook run before the node executes.
func (n *Node) SetStartHook(h Hook) {
	n.startHook = h
}

// SetStopHook sets the hook run after the node executes.
func (n *Node) SetStopHook(h Hook) {
	n.stopHook = h
}

func (n *Node) runStartHook() {
	if n.startHook != nil {
		n.startHook()
	}
}

func (n *Node) runStopHook() {
	if n.stopHook != nil {
		n.stopHook()
	}
}

// ResultInfo returns the description of the node's result.
func (n *Node) ResultInfo() string {
	return n.resultInfo
}

// SetResultInfo sets the description of the node's result.
func (n *Node) SetResultInfo(info string) {
	n.resultInfo = info
}

// Result returns the cached result and whether it is set.
// A nil result with ok == true is a valid result.
func (n *Node) Result() (any, bool) {
	return n.result, n.ready
}

// Ready reports whether the node has a result for the current run.
func (n *Node) Ready() bool {
	return n.ready
}

// InputsReady reports whether every input node has a result.
func (n *Node) InputsReady() bool {
	for _, in := range n.inputs {
		if !in.ready {
			return false
		}
	}
	return true
}

// ClearResult drops the cached result.
func (n *Node) ClearResult() {
	n.result = nil
	n.ready = false
}

// Call executes the node's rule with args standing in for the results of
// its inputs. The result is cached and returned.
func (n *Node) Call(args ...any) (any, error) {
	return n.execute(args)
}

// inputResults collects the cached results of the inputs in order.
func (n *Node) inputResults() []any {
	data := make([]any, len(n.inputs))
	for i, in := range n.inputs {
		data[i] = in.result
	}
	return data
}

// seed executes the node with a single external value.
// A PackNode used as a plan input keeps the raw value.
func (n *Node) seed(value any) (any, error) {
	if n.kind == KindPack {
		n.setResult(value)
		return value, nil
	}
	return n.execute([]any{value})
}

// execute runs the variant rule with panic recovery.
// The result is only cached on success, so a result is never partial.
func (n *Node) execute(data []any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &PanicError{
				NodeID: n.label(),
				Value:  r,
				Stack:  string(debug.Stack()),
			}
		}
	}()

	switch n.kind {
	case KindWork:
		result, err = n.callWork(data...)
	case KindMap:
		result, err = n.mapWork(data)
	case KindSelect:
		result, err = n.selectIndex(data)
	case KindPack:
		packed := make([]any, len(data))
		copy(packed, data)
		result = packed
	case KindPass:
		if len(data) == 0 {
			return nil, ErrNoInputs
		}
		result = data[0]
	default:
		return nil, fmt.Errorf("unknown node kind %d", n.kind)
	}
	if err != nil {
		return nil, err
	}

	n.setResult(result)
	return result, nil
}

func (n *Node) setResult(v any) {
	n.result = v
	n.ready = true
}

func (n *Node) callWork(args ...any) (any, error) {
	if n.work == nil {
		return nil, ErrNoWork
	}
	return n.work.Call(args...)
}

func (n *Node) mapWork(data []any) (any, error) {
	switch len(data) {
	case 0:
		return nil, ErrNoInputs
	case 1:
		list, err := toList(data[0])
		if err != nil {
			return nil, err
		}
		out := make([]any, len(list))
		for i, item := range list {
			if out[i], err = n.callWork(item); err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
		}
		return out, nil
	default:
		lists, size, err := toLists(data)
		if err != nil {
			return nil, err
		}
		out := make([]any, size)
		for i := 0; i < size; i++ {
			args := make([]any, len(lists))
			for j, list := range lists {
				args[j] = list[i]
			}
			if out[i], err = n.callWork(args...); err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
		}
		return out, nil
	}
}

func (n *Node) selectIndex(data []any) (any, error) {
	switch len(data) {
	case 0:
		return nil, ErrNoInputs
	case 1:
		list, err := toList(data[0])
		if err != nil {
			return nil, err
		}
		i, err := normalizeIndex(n.index, len(list))
		if err != nil {
			return nil, err
		}
		return list[i], nil
	default:
		lists, size, err := toLists(data)
		if err != nil {
			return nil, err
		}
		i, err := normalizeIndex(n.index, size)
		if err != nil {
			return nil, err
		}
		column := make([]any, len(lists))
		for j, list := range lists {
			column[j] = list[i]
		}
		return column, nil
	}
}

// label returns a name for logs and errors.
func (n *Node) label() string {
	if n.id != "" {
		return n.id
	}
	return n.kind.String()
}

// toList converts a slice or array of any element type to []any.
func toList(v any) ([]any, error) {
	if list, ok := v.([]any); ok {
		return list, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		list := make([]any, rv.Len())
		for i := range list {
			list[i] = rv.Index(i).Interface()
		}
		return list, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrNotIterable, v)
	}
}

// toLists converts parallel list values and checks they have equal length.
func toLists(data []any) ([][]any, int, error) {
	lists := make([][]any, len(data))
	for i, v := range data {
		list, err := toList(v)
		if err != nil {
			return nil, 0, err
		}
		if i > 0 && len(list) != len(lists[0]) {
			return nil, 0, fmt.Errorf("%w: %d and %d", ErrLengthMismatch, len(lists[0]), len(list))
		}
		lists[i] = list
	}
	return lists, len(lists[0]), nil
}

func normalizeIndex(index, size int) (int, error) {
	i := index
	if i < 0 {
		i += size
	}
	if i < 0 || i >= size {
		return 0, fmt.Errorf("%w: %d (length %d)", ErrIndexOutOfRange, index, size)
	}
	return i, nil
}
