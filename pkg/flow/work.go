package flow

// Worker is the callable a Work delegates to.
// Workers receive the results of the node's inputs positionally.
//
// Example:
//
//	func sum(args ...any) (any, error) {
//	    total := 0.0
//	    for _, a := range args {
//	        total += a.(float64)
//	    }
//	    return total, nil
//	}
type Worker func(args ...any) (any, error)

// Work is data processing that can be done in a variety of ways.
// The actual processing is delegated to a replaceable Worker.
type Work struct {
	descr  string
	worker Worker
}

// NewWork creates a work with the given description and worker.
// The worker may be nil and set later with SetWorker.
func NewWork(descr string, worker Worker) *Work {
	return &Work{descr: descr, worker: worker}
}

// Descr returns the description of the work.
func (w *Work) Descr() string {
	return w.descr
}

// SetDescr sets the description of the work.
func (w *Work) SetDescr(descr string) {
	w.descr = descr
}

// Worker returns the current worker, or nil if none is set.
func (w *Work) Worker() Worker {
	return w.worker
}

// SetWorker replaces the worker.
func (w *Work) SetWorker(worker Worker) {
	w.worker = worker
}

// Call forwards args to the worker and returns its result.
// Returns ErrNoWorker if no worker is set.
func (w *Work) Call(args ...any) (any, error) {
	if w.worker == nil {
		return nil, ErrNoWorker
	}
	return w.worker(args...)
}
