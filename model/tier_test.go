package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierString(t *testing.T) {
	assert.Equal(t, "discover", TierDiscover.String())
	assert.Equal(t, "read", TierRead.String())
	assert.Equal(t, "download", TierDownload.String())
	assert.Equal(t, "unknown", Tier(42).String())
}

func TestParseTier(t *testing.T) {
	for _, tier := range Tiers() {
		parsed, err := ParseTier(tier.String())
		assert.NoError(t, err)
		assert.Equal(t, tier, parsed)
	}

	_, err := ParseTier("edit")
	assert.Error(t, err)
	_, err = ParseTier("")
	assert.Error(t, err)
}

func TestFieldMappingLookup(t *testing.T) {
	m := DefaultFieldMapping()

	assert.Equal(t, "discover_users", m.UserField(TierDiscover))
	assert.Equal(t, "read_users", m.UserField(TierRead))
	assert.Equal(t, "download_users", m.UserField(TierDownload))
	assert.Equal(t, "discover_groups", m.GroupField(TierDiscover))
	assert.Equal(t, "read_groups", m.GroupField(TierRead))
	assert.Equal(t, "download_groups", m.GroupField(TierDownload))

	assert.Len(t, m.FieldNames(), 6)
}

func TestPermissionsDocValues(t *testing.T) {
	doc := &PermissionsDoc{
		ID:     "doc-1",
		Fields: map[string][]string{"read_users": {"u1", "u2"}},
	}
	assert.Equal(t, []string{"u1", "u2"}, doc.Values("read_users"))
	assert.Nil(t, doc.Values("download_users"))

	var missing *PermissionsDoc
	assert.Nil(t, missing.Values("read_users"))
}

func TestNewGuestSubject(t *testing.T) {
	a := NewGuestSubject()
	b := NewGuestSubject()

	assert.False(t, a.Registered)
	assert.NotEqual(t, a.Key, b.Key)
	assert.Contains(t, a.Key, "guest-")
}
