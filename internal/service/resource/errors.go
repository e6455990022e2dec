package resource

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the target document does not exist. It is
	// an expected outcome, not a failure.
	ErrNotFound = errors.New("resource not found")

	// ErrOperationFailed is matched by every *OperationError.
	ErrOperationFailed = errors.New("operation failed")

	// ErrCreationFailed is matched by *OperationError values raised by Create.
	ErrCreationFailed = errors.New("creation failed")

	// ErrNoReference is wrapped when a reference lookup is requested on a
	// resource that does not declare a reference field.
	ErrNoReference = errors.New("resource has no reference field")
)

// OperationError reports a storage fault during a service operation. Message
// is safe to show to API clients; Err carries the underlying cause for logs.
type OperationError struct {
	Resource string
	Op       Op
	Message  string
	Err      error
}

func (e *OperationError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// Is matches ErrOperationFailed, and ErrCreationFailed for create operations.
func (e *OperationError) Is(target error) bool {
	switch target {
	case ErrOperationFailed:
		return true
	case ErrCreationFailed:
		return e.Op == OpCreate
	}
	return false
}
