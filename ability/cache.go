package ability

import (
	"github.com/dev-tanmaydas/custos/api/model"
)

// PermissionsCache memoizes resolved permissions documents for one
// evaluation session, so checking several capabilities against the same
// resource costs one backend fetch. It has no eviction: the session bounds
// it, and it dies with the owning Ability.
//
// The cache is owned by a single session and is not safe for concurrent
// use.
type PermissionsCache struct {
	docs map[string]*model.PermissionsDoc
}

func NewPermissionsCache() *PermissionsCache {
	return &PermissionsCache{
		docs: make(map[string]*model.PermissionsDoc),
	}
}

// Put stores a document under the given resource id, overwriting any
// previous entry.
func (pc *PermissionsCache) Put(resourceID string, doc *model.PermissionsDoc) {
	pc.docs[resourceID] = doc
}

// Get returns the cached document for the resource id, or nil. It never
// falls back to the backend; that is the resolver's job.
func (pc *PermissionsCache) Get(resourceID string) *model.PermissionsDoc {
	return pc.docs[resourceID]
}

// Len reports how many distinct resources the session has touched.
func (pc *PermissionsCache) Len() int {
	return len(pc.docs)
}
