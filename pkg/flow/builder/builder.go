package builder

import (
	"fmt"

	"github.com/randalmurphal/dsplab/pkg/flow"
	"github.com/randalmurphal/dsplab/pkg/flow/descr"
	"github.com/randalmurphal/dsplab/pkg/flow/store"
	"github.com/randalmurphal/dsplab/pkg/flow/workers"
)

// Build creates a live plan from a description.
//
// Steps:
//  1. Verify the description
//  2. Create one node per entry; an empty class means WorkNode
//  3. Resolve each worker through reg, filling "$name" placeholders in its
//     params from params
//  4. Register the nodes in declaration order, then wire their inputs
//  5. Set the plan inputs and outputs
//
// opts are applied to the new plan; the description's descr overrides
// WithDescr. On any error no plan is returned.
func Build(d *descr.Plan, reg *workers.Registry, params map[string]any, opts ...flow.Option) (*flow.Plan, error) {
	if err := descr.Verify(d); err != nil {
		return nil, err
	}
	if reg == nil {
		reg = workers.NewRegistry()
	}

	nodes := make(map[string]*flow.Node, len(d.Nodes))
	ordered := make([]*flow.Node, len(d.Nodes))
	for i := range d.Nodes {
		n, err := buildNode(&d.Nodes[i], reg, params)
		if err != nil {
			return nil, err
		}
		nodes[d.Nodes[i].ID] = n
		ordered[i] = n
	}

	plan := flow.NewPlan(opts...)
	if d.Descr != "" {
		plan.SetDescr(d.Descr)
	}
	for _, n := range ordered {
		if err := plan.AddNode(n); err != nil {
			return nil, fmt.Errorf("register node %s: %w", n.ID(), err)
		}
	}
	for i, dn := range d.Nodes {
		if len(dn.Inputs) == 0 {
			continue
		}
		if err := ordered[i].SetInputs(lookup(nodes, dn.Inputs)...); err != nil {
			return nil, fmt.Errorf("wire node %s: %w", dn.ID, err)
		}
	}

	if len(d.Inputs) > 0 {
		if err := plan.SetInputs(lookup(nodes, d.Inputs)...); err != nil {
			return nil, fmt.Errorf("set plan inputs: %w", err)
		}
	}
	if err := plan.SetOutputs(lookup(nodes, d.Outputs)...); err != nil {
		return nil, fmt.Errorf("set plan outputs: %w", err)
	}
	return plan, nil
}

// buildNode creates an unwired node for a verified description entry.
func buildNode(dn *descr.Node, reg *workers.Registry, params map[string]any) (*flow.Node, error) {
	kind, err := flow.ParseKind(dn.Class)
	if err != nil {
		return nil, err
	}

	var n *flow.Node
	switch kind {
	case flow.KindWork, flow.KindMap:
		work, err := buildWork(dn, reg, params)
		if err != nil {
			return nil, err
		}
		if kind == flow.KindMap {
			n = flow.NewMapNode(work)
		} else {
			n = flow.NewWorkNode(work)
		}
	case flow.KindSelect:
		n = flow.NewSelectNode(*dn.Index)
	case flow.KindPack:
		n = flow.NewPackNode()
	case flow.KindPass:
		n = flow.NewPassNode()
	}

	n.SetID(dn.ID)
	n.SetResultInfo(dn.Result)
	return n, nil
}

func buildWork(dn *descr.Node, reg *workers.Registry, params map[string]any) (*flow.Work, error) {
	w := dn.Work.Worker

	resolved, missing := substitute(w.Params, params)
	if len(missing) > 0 {
		return nil, &UndefinedParameterError{Node: dn.ID, Names: missing}
	}

	kind := workers.KindFunction
	if w.Class != "" {
		kind = workers.KindClass
	}
	worker, err := reg.Resolve(kind, w.Name(), resolved)
	if err != nil {
		return nil, fmt.Errorf("node %s: %w", dn.ID, err)
	}

	descrText := dn.Work.Descr
	if descrText == "" {
		descrText = w.Name()
	}
	return flow.NewWork(descrText, worker), nil
}

func lookup(nodes map[string]*flow.Node, ids []string) []*flow.Node {
	out := make([]*flow.Node, len(ids))
	for i, id := range ids {
		out[i] = nodes[id]
	}
	return out
}

// FromMap decodes a description held in generic maps and builds it.
func FromMap(m map[string]any, reg *workers.Registry, params map[string]any, opts ...flow.Option) (*flow.Plan, error) {
	d, err := descr.FromMap(m)
	if err != nil {
		return nil, err
	}
	return Build(d, reg, params, opts...)
}

// FromFile reads a description file and builds it.
// The format follows the extension; see descr.FromFile.
func FromFile(path string, reg *workers.Registry, params map[string]any, opts ...flow.Option) (*flow.Plan, error) {
	d, err := descr.FromFile(path)
	if err != nil {
		return nil, err
	}
	return Build(d, reg, params, opts...)
}

// FromStore loads the description saved under name and builds it.
func FromStore(s store.Store, name string, reg *workers.Registry, params map[string]any, opts ...flow.Option) (*flow.Plan, error) {
	d, err := store.LoadDescr(s, name)
	if err != nil {
		return nil, err
	}
	return Build(d, reg, params, opts...)
}
