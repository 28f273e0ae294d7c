package ability

import (
	"github.com/dev-tanmaydas/custos/api/model"
)

const (
	// GroupPublic is the universal group every subject belongs to,
	// anonymous guests included.
	GroupPublic = "public"
	// GroupRegistered is the group of all persisted, non-anonymous
	// subjects.
	GroupRegistered = "registered"
)

// deriveGroups computes the effective group set for a subject: public
// always, the externally supplied groups if any, and registered for
// persisted identities. The result is deduplicated; order follows first
// occurrence.
func deriveGroups(subject *model.Subject) []string {
	groups := make([]string, 0, len(subject.Groups)+2)
	seen := make(map[string]struct{}, len(subject.Groups)+2)

	add := func(g string) {
		if _, ok := seen[g]; ok {
			return
		}
		seen[g] = struct{}{}
		groups = append(groups, g)
	}

	add(GroupPublic)
	for _, g := range subject.Groups {
		add(g)
	}
	if subject.Registered {
		add(GroupRegistered)
	}

	return groups
}
