package dao

import (
	"context"

	"github.com/dev-tanmaydas/custos/api/model"
)

// PermissionDAO resolves a resource id into its permissions document.
// Implementations must be idempotent and safe to call repeatedly for the
// same id; the session cache avoids repeats within one evaluation.
//
// A resource with no document yields (nil, nil). Only genuine backend
// failures return an error, and callers propagate them unchanged.
type PermissionDAO interface {
	FetchPermissions(ctx context.Context, resourceID string) (*model.PermissionsDoc, error)
}

// toStringSlice converts a decoded JSON or driver value into a list of
// actor ids. Anything that is not a list of strings is ignored.
func toStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
