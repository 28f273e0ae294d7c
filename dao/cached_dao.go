package dao

import (
	"context"

	"go.uber.org/zap"

	"github.com/dev-tanmaydas/custos/api/db"
	logger "github.com/dev-tanmaydas/custos/api/logging"
	"github.com/dev-tanmaydas/custos/api/model"
)

// CachedPermissionDAO is a Redis read-through layer in front of another
// PermissionDAO, sharing resolved documents across sessions. Cache trouble
// never fails a lookup: errors are logged and the call falls through to
// the backend, so only genuine backend failures surface to the evaluator.
type CachedPermissionDAO struct {
	inner PermissionDAO
}

func NewCachedPermissionDAO(inner PermissionDAO) *CachedPermissionDAO {
	return &CachedPermissionDAO{inner: inner}
}

func (d *CachedPermissionDAO) FetchPermissions(ctx context.Context, resourceID string) (*model.PermissionsDoc, error) {
	doc, err := db.GetCachedPermissionsDoc(ctx, resourceID)
	if err != nil {
		logger.Warn("Permissions cache read failed, falling back to backend",
			zap.Error(err),
			zap.String("resourceID", resourceID))
	} else if doc != nil {
		return doc, nil
	}

	doc, err = d.inner.FetchPermissions(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	if err := db.CachePermissionsDoc(ctx, doc); err != nil {
		logger.Warn("Failed to cache permissions document",
			zap.Error(err),
			zap.String("resourceID", resourceID))
	}

	return doc, nil
}
