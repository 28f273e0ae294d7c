package ability

import (
	"context"

	"go.uber.org/zap"

	"github.com/dev-tanmaydas/custos/api/dao"
	logger "github.com/dev-tanmaydas/custos/api/logging"
	"github.com/dev-tanmaydas/custos/api/model"
)

// Resolver turns resource ids into the actor lists of their permissions
// documents. It consults the session cache first and falls back to the
// backend DAO, so each distinct resource costs at most one backend fetch
// per session.
type Resolver struct {
	permissionDAO dao.PermissionDAO
	cache         *PermissionsCache
	fields        model.FieldMapping

	// misses remembers ids the backend reported not-found, so repeated
	// tier checks against an absent document still cost one fetch. Only
	// found documents enter the cache itself.
	misses map[string]struct{}
}

func NewResolver(permissionDAO dao.PermissionDAO, cache *PermissionsCache, fields model.FieldMapping) *Resolver {
	return &Resolver{
		permissionDAO: permissionDAO,
		cache:         cache,
		fields:        fields,
		misses:        make(map[string]struct{}),
	}
}

// Cache exposes the session cache, so collaborators already holding a
// materialized document can seed it.
func (r *Resolver) Cache() *PermissionsCache {
	return r.cache
}

// PermissionsDoc resolves the document for a resource id. A resource with
// no document yields (nil, nil): absence is a normal result, not an error.
// Backend failures propagate unchanged.
func (r *Resolver) PermissionsDoc(ctx context.Context, resourceID string) (*model.PermissionsDoc, error) {
	if doc := r.cache.Get(resourceID); doc != nil {
		return doc, nil
	}
	if _, ok := r.misses[resourceID]; ok {
		return nil, nil
	}

	doc, err := r.permissionDAO.FetchPermissions(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		logger.Debug("No permissions document for resource", zap.String("resourceID", resourceID))
		r.misses[resourceID] = struct{}{}
		return nil, nil
	}

	r.cache.Put(resourceID, doc)
	return doc, nil
}

// UsersWithAccess returns the user ids listed at the tier's configured
// user field. Absent document or field means an empty list.
func (r *Resolver) UsersWithAccess(ctx context.Context, resourceID string, tier model.Tier) ([]string, error) {
	doc, err := r.PermissionsDoc(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	return doc.Values(r.fields.UserField(tier)), nil
}

// GroupsWithAccess returns the group ids listed at the tier's configured
// group field.
func (r *Resolver) GroupsWithAccess(ctx context.Context, resourceID string, tier model.Tier) ([]string, error) {
	doc, err := r.PermissionsDoc(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	return doc.Values(r.fields.GroupField(tier)), nil
}
