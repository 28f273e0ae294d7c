package errors

import (
	"errors"
	"fmt"

	"github.com/dev-tanmaydas/custos/api/model"
)

var (
	// ErrAccessDenied is the sentinel every AccessDeniedError unwraps to.
	ErrAccessDenied = errors.New("access denied")

	// ErrPermissionsNotFound is used by the HTTP layer when a resource has
	// no resolvable permissions document. The evaluation core itself treats
	// absence as "no grants", not as an error.
	ErrPermissionsNotFound = errors.New("permissions document not found")

	ErrBackendUnavailable   = errors.New("permissions backend unavailable")
	ErrInvalidAccessRequest = errors.New("invalid access request")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInternalServer       = errors.New("internal server error")
)

// AccessDeniedError is raised by enforcement code when a required
// capability check fails. It carries the capability and resource id for
// diagnostics; the evaluation core only ever returns booleans.
type AccessDeniedError struct {
	Capability model.Tier
	ResourceID string
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("access denied: %s on resource %s", e.Capability, e.ResourceID)
}

func (e *AccessDeniedError) Unwrap() error {
	return ErrAccessDenied
}
