package descr

import (
	"errors"
	"fmt"
)

// Verification failure kinds. A *VerifyError wraps exactly one of them.
var (
	// ErrSchema means a required key is missing, a key is unknown or a value
	// has the wrong type.
	ErrSchema = errors.New("schema violation")

	// ErrDuplicateID means two nodes share an id.
	ErrDuplicateID = errors.New("duplicate node id")

	// ErrUnknownID means an id reference does not name a node.
	ErrUnknownID = errors.New("unknown node id")

	// ErrSelfReference means a node lists itself as an input.
	ErrSelfReference = errors.New("node is its own input")

	// ErrClassMismatch means a node carries fields its class does not allow,
	// or lacks fields its class requires.
	ErrClassMismatch = errors.New("class mismatch")
)

// VerifyError reports the first problem found in a description.
type VerifyError struct {
	// Path locates the offending value, e.g. "nodes[2].work.worker".
	Path string

	// Message describes the problem.
	Message string

	// Err is the failure kind.
	Err error
}

// Error implements the error interface.
func (e *VerifyError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid plan description: %s", e.Message)
	}
	return fmt.Sprintf("invalid plan description: %s: %s", e.Path, e.Message)
}

// Unwrap returns the failure kind.
func (e *VerifyError) Unwrap() error {
	return e.Err
}

func verifyErr(kind error, path, format string, args ...any) *VerifyError {
	return &VerifyError{
		Path:    path,
		Message: fmt.Sprintf(format, args...),
		Err:     kind,
	}
}
