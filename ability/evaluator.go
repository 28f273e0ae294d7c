package ability

import (
	"context"

	"github.com/dev-tanmaydas/custos/api/model"
)

// tierRollup lists, for each tier, the tiers whose actor lists it consults
// under the legacy union semantics: download actors imply read, download
// and read actors imply discover. Download is canonical and consults only
// itself.
var tierRollup = map[model.Tier][]model.Tier{
	model.TierDiscover: {model.TierDiscover, model.TierRead, model.TierDownload},
	model.TierRead:     {model.TierRead, model.TierDownload},
	model.TierDownload: {model.TierDownload},
}

// Evaluator applies the tiered access rules against resolved permissions
// documents. legacyUnion selects the compatibility semantics above; with
// it off, every tier consults only its own fields.
type Evaluator struct {
	resolver    *Resolver
	legacyUnion bool
}

func NewEvaluator(resolver *Resolver, legacyUnion bool) *Evaluator {
	return &Evaluator{
		resolver:    resolver,
		legacyUnion: legacyUnion,
	}
}

func (e *Evaluator) tiersFor(tier model.Tier) []model.Tier {
	if e.legacyUnion {
		return tierRollup[tier]
	}
	return []model.Tier{tier}
}

// RollupUsers returns the user ids consulted for the tier, unioned across
// the rollup tiers. Order follows first occurrence.
func (e *Evaluator) RollupUsers(ctx context.Context, resourceID string, tier model.Tier) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	for _, t := range e.tiersFor(tier) {
		users, err := e.resolver.UsersWithAccess(ctx, resourceID, t)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			if _, ok := seen[u]; ok {
				continue
			}
			seen[u] = struct{}{}
			out = append(out, u)
		}
	}
	return out, nil
}

// RollupGroups returns the group ids consulted for the tier, unioned
// across the rollup tiers.
func (e *Evaluator) RollupGroups(ctx context.Context, resourceID string, tier model.Tier) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	for _, t := range e.tiersFor(tier) {
		groups, err := e.resolver.GroupsWithAccess(ctx, resourceID, t)
		if err != nil {
			return nil, err
		}
		for _, g := range groups {
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			out = append(out, g)
		}
	}
	return out, nil
}

// TestAccess reports whether the subject key or any of its groups appear
// in the actor lists consulted for the tier. Empty or absent actor lists
// are a valid "no grant" result.
func (e *Evaluator) TestAccess(ctx context.Context, subjectKey string, subjectGroups []string, resourceID string, tier model.Tier) (bool, error) {
	for _, t := range e.tiersFor(tier) {
		users, err := e.resolver.UsersWithAccess(ctx, resourceID, t)
		if err != nil {
			return false, err
		}
		for _, u := range users {
			if u == subjectKey {
				return true, nil
			}
		}

		groups, err := e.resolver.GroupsWithAccess(ctx, resourceID, t)
		if err != nil {
			return false, err
		}
		for _, g := range groups {
			for _, sg := range subjectGroups {
				if g == sg {
					return true, nil
				}
			}
		}
	}
	return false, nil
}
