// Package workers resolves the worker names used in declarative plans.
//
// A description names either a plain function or a class. Functions are
// flow.Worker values used as registered. Classes are factories that build
// a worker from the parameters given in the description:
//
//	reg := workers.NewRegistry()
//	reg.RegisterFunction("abs", absWorker)
//	reg.RegisterClass("fir", func(p config.Params) (flow.Worker, error) {
//	    taps := p.FloatSlice("b", nil)
//	    if len(taps) == 0 {
//	        return nil, errors.New("fir: b is required")
//	    }
//	    return newFIR(taps), nil
//	})
//
//	w, err := reg.Resolve(workers.KindClass, "fir", map[string]any{"b": []any{0.5, 0.5}})
//
// Functions and classes are separate namespaces, so the same name may be
// registered once as each.
//
// # Thread Safety
//
// All Registry methods are safe for concurrent use.
package workers
