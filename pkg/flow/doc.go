/*
Package flow provides a small dataflow engine for signal-processing pipelines.

# Overview

A pipeline is declared as a Plan of Nodes wired by data dependencies. Each
node holds references to its input nodes and executes once all of them have
a result. Declaration order does not matter: the plan keeps scanning its
nodes until nothing more can run.

Nodes come in five kinds:
  - WorkNode calls its Work with the results of its inputs
  - MapNode applies its Work element-wise over list inputs
  - SelectNode picks an element (one input) or a column (several inputs)
  - PackNode collects the results of its inputs into a list
  - PassNode forwards the result of its first input

# Basic Usage

	linear := func(k, b float64) flow.Worker {
	    return func(args ...any) (any, error) {
	        return k*args[0].(float64) + b, nil
	    }
	}

	a := flow.NewWorkNode(flow.NewWork("a", linear(1, 1)))
	b := flow.NewWorkNode(flow.NewWork("b", linear(2, 2)))
	c := flow.NewWorkNode(flow.NewWork("c", linear(3, 3)))

	plan := flow.NewPlan()
	_ = plan.AddNode(a)
	_ = plan.AddNode(b, a)
	_ = plan.AddNode(c, b)
	_ = plan.SetInputs(a)
	_ = plan.SetOutputs(c)

	results, err := plan.Run(context.Background(), []any{5.0})
	// results: []any{45.0}

# Fan-out and Fan-in

A node may feed any number of dependents; it still executes once per run.
PackNode joins several branches into one list:

	pack := flow.NewPackNode()
	_ = plan.AddNode(pack, left, right)

# Parallel Channels

Signals often come as equal-length channels. MapNode reuses one Work across
channels and SelectNode picks a channel or a sample column:

	sum := flow.NewMapNode(flow.NewWork("sum", add), ch1, ch2) // [add(ch1[i], ch2[i])...]
	first := flow.NewSelectNode(0, ch1, ch2)                   // [ch1[0], ch2[0]]

# Hooks

Nodes accept start and stop hooks with pre-bound arguments, and plans accept
a progress hook called after every executed node:

	node.SetStartHook(flow.BindHook(report, "started", node.ID()))
	plan.SetProgressHook(func() { done++ })

# Quick Runs

For online loops over acyclic plans, QuickRun executes a precomputed node
order with no readiness checks and no hooks. The order is recomputed on every
structural change. WithQuick(true) makes Call use it.

# Unresolved Nodes

Nodes whose inputs never become ready (a cycle, or a dependency on a node
that nothing seeds) are simply left without a result. Requesting such a node
as an output yields nil rather than an error.

# Thread Safety

Plans and nodes are not safe for concurrent use. Runs are synchronous and
execute every node on the caller's goroutine.
*/
package flow
