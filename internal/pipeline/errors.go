package pipeline

import (
	"fmt"

	"cutter/internal/services"
)

// InvalidPathError reports a path argument that is blank or names the wrong
// kind of filesystem entry. It matches services.ErrValidation.
type InvalidPathError struct {
	Arg    string
	Path   string
	Reason string
}

func (e *InvalidPathError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid %s path: %s", e.Arg, e.Reason)
	}
	return fmt.Sprintf("invalid %s path %q: %s", e.Arg, e.Path, e.Reason)
}

func (e *InvalidPathError) Is(target error) bool {
	return target == services.ErrValidation
}
