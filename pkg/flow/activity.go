package flow

// Activity is anything that can be called and describe itself.
// Work, Node and Plan are activities, so a Plan can serve as the worker
// of a Work inside another Plan.
type Activity interface {
	// Call invokes the activity with positional arguments.
	Call(args ...any) (any, error)

	// Descr returns a human readable description.
	Descr() string
}

// Compile-time interface checks.
var (
	_ Activity = (*Work)(nil)
	_ Activity = (*Node)(nil)
	_ Activity = (*Plan)(nil)
)
