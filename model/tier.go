package model

import "fmt"

// Tier is one of the three recognized capabilities. Download is the most
// privileged tier, discover the least.
type Tier int

const (
	TierDiscover Tier = iota
	TierRead
	TierDownload
)

// Tiers returns all tiers in ascending order of privilege.
func Tiers() []Tier {
	return []Tier{TierDiscover, TierRead, TierDownload}
}

func (t Tier) String() string {
	switch t {
	case TierDiscover:
		return "discover"
	case TierRead:
		return "read"
	case TierDownload:
		return "download"
	default:
		return "unknown"
	}
}

// ParseTier converts a capability name into a Tier.
func ParseTier(s string) (Tier, error) {
	switch s {
	case "discover":
		return TierDiscover, nil
	case "read":
		return TierRead, nil
	case "download":
		return TierDownload, nil
	default:
		return 0, fmt.Errorf("unknown access tier: %q", s)
	}
}

// FieldMapping names the document fields holding the actor lists for each
// tier. It is static configuration, resolved once at startup and passed
// explicitly into the resolver and evaluator.
type FieldMapping struct {
	DiscoverUsers  string
	DiscoverGroups string
	ReadUsers      string
	ReadGroups     string
	DownloadUsers  string
	DownloadGroups string
}

// DefaultFieldMapping returns the conventional field names used by the
// permissions index.
func DefaultFieldMapping() FieldMapping {
	return FieldMapping{
		DiscoverUsers:  "discover_users",
		DiscoverGroups: "discover_groups",
		ReadUsers:      "read_users",
		ReadGroups:     "read_groups",
		DownloadUsers:  "download_users",
		DownloadGroups: "download_groups",
	}
}

// UserField returns the name of the user-list field for the given tier.
func (m FieldMapping) UserField(t Tier) string {
	switch t {
	case TierDiscover:
		return m.DiscoverUsers
	case TierRead:
		return m.ReadUsers
	case TierDownload:
		return m.DownloadUsers
	default:
		return ""
	}
}

// GroupField returns the name of the group-list field for the given tier.
func (m FieldMapping) GroupField(t Tier) string {
	switch t {
	case TierDiscover:
		return m.DiscoverGroups
	case TierRead:
		return m.ReadGroups
	case TierDownload:
		return m.DownloadGroups
	default:
		return ""
	}
}

// FieldNames returns all six configured field names.
func (m FieldMapping) FieldNames() []string {
	return []string{
		m.DiscoverUsers, m.DiscoverGroups,
		m.ReadUsers, m.ReadGroups,
		m.DownloadUsers, m.DownloadGroups,
	}
}
