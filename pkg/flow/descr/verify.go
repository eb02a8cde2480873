package descr

import (
	"fmt"

	"github.com/randalmurphal/dsplab/pkg/flow"
)

// Verify checks a description and returns the first problem as a *VerifyError.
//
// Checks run in a fixed order:
//  1. Schema: nodes and outputs are non-empty, every node has an id and a
//     known class, every work has a worker naming exactly one of class or
//     function
//  2. Node ids are unique
//  3. Node inputs name existing nodes other than the node itself
//  4. Work is present exactly for WorkNode and MapNode, index exactly for
//     SelectNode
//  5. Plan inputs name existing nodes
//  6. Plan outputs name existing nodes
func Verify(p *Plan) error {
	if p == nil {
		return verifyErr(ErrSchema, "", "description is nil")
	}
	if err := verifySchema(p); err != nil {
		return err
	}

	ids := make(map[string]int, len(p.Nodes))
	for i, n := range p.Nodes {
		if first, dup := ids[n.ID]; dup {
			return verifyErr(ErrDuplicateID, nodePath(i, "id"), "%q already used by nodes[%d]", n.ID, first)
		}
		ids[n.ID] = i
	}

	for i, n := range p.Nodes {
		for j, in := range n.Inputs {
			path := nodePath(i, fmt.Sprintf("inputs[%d]", j))
			if in == n.ID {
				return verifyErr(ErrSelfReference, path, "node %q lists itself", n.ID)
			}
			if _, ok := ids[in]; !ok {
				return verifyErr(ErrUnknownID, path, "no node %q", in)
			}
		}
	}

	for i, n := range p.Nodes {
		if err := verifyClass(i, n); err != nil {
			return err
		}
	}

	for i, id := range p.Inputs {
		if _, ok := ids[id]; !ok {
			return verifyErr(ErrUnknownID, fmt.Sprintf("inputs[%d]", i), "no node %q", id)
		}
	}
	for i, id := range p.Outputs {
		if _, ok := ids[id]; !ok {
			return verifyErr(ErrUnknownID, fmt.Sprintf("outputs[%d]", i), "no node %q", id)
		}
	}
	return nil
}

func verifySchema(p *Plan) error {
	if len(p.Nodes) == 0 {
		return verifyErr(ErrSchema, "nodes", "at least one node is required")
	}
	if len(p.Outputs) == 0 {
		return verifyErr(ErrSchema, "outputs", "at least one output is required")
	}

	for i, n := range p.Nodes {
		if n.ID == "" {
			return verifyErr(ErrSchema, nodePath(i, "id"), "id is required")
		}
		if _, err := flow.ParseKind(n.Class); err != nil {
			return verifyErr(ErrSchema, nodePath(i, "class"), "%v", err)
		}
		for j, in := range n.Inputs {
			if in == "" {
				return verifyErr(ErrSchema, nodePath(i, fmt.Sprintf("inputs[%d]", j)), "empty id")
			}
		}
		if n.Work == nil {
			continue
		}
		w := n.Work.Worker
		if w == nil {
			return verifyErr(ErrSchema, nodePath(i, "work.worker"), "worker is required")
		}
		if (w.Class == "") == (w.Function == "") {
			return verifyErr(ErrSchema, nodePath(i, "work.worker"), "exactly one of class or function is required")
		}
	}
	return nil
}

func verifyClass(i int, n Node) error {
	kind, _ := flow.ParseKind(n.Class)

	switch {
	case kind.HasWork() && n.Work == nil:
		return verifyErr(ErrClassMismatch, nodePath(i, "work"), "%s requires work", kind)
	case !kind.HasWork() && n.Work != nil:
		return verifyErr(ErrClassMismatch, nodePath(i, "work"), "%s takes no work", kind)
	case kind == flow.KindSelect && n.Index == nil:
		return verifyErr(ErrClassMismatch, nodePath(i, "index"), "%s requires index", kind)
	case kind != flow.KindSelect && n.Index != nil:
		return verifyErr(ErrClassMismatch, nodePath(i, "index"), "%s takes no index", kind)
	}
	return nil
}

func nodePath(i int, field string) string {
	return fmt.Sprintf("nodes[%d].%s", i, field)
}
