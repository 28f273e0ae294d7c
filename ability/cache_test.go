package ability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dev-tanmaydas/custos/api/model"
)

func TestPermissionsCachePutGet(t *testing.T) {
	cache := NewPermissionsCache()

	assert.Nil(t, cache.Get("doc-1"))
	assert.Zero(t, cache.Len())

	first := &model.PermissionsDoc{ID: "doc-1", Fields: map[string][]string{"read_users": {"u1"}}}
	cache.Put("doc-1", first)
	assert.Same(t, first, cache.Get("doc-1"))
	assert.Equal(t, 1, cache.Len())

	// Put overwrites unconditionally.
	second := &model.PermissionsDoc{ID: "doc-1", Fields: map[string][]string{"read_users": {"u2"}}}
	cache.Put("doc-1", second)
	assert.Same(t, second, cache.Get("doc-1"))
	assert.Equal(t, 1, cache.Len())
}

func TestDeriveGroupsDeduplicates(t *testing.T) {
	subject := &model.Subject{
		Key:        "u1",
		Registered: true,
		Groups:     []string{"registered", "staff", "staff", "public"},
	}
	assert.Equal(t, []string{"public", "registered", "staff"}, deriveGroups(subject))
}
