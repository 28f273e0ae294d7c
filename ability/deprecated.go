package ability

import (
	"context"

	"go.uber.org/zap"

	logger "github.com/dev-tanmaydas/custos/api/logging"
	"github.com/dev-tanmaydas/custos/api/model"
)

// The legacy rollup accessors bake the tier union into their results under
// the old calling convention. They still answer correctly, and must keep
// doing so until the union semantics are retired, but every call emits a
// deprecation warning. New callers should use UsersWithAccess /
// GroupsWithAccess for raw actor lists.

func warnDeprecated(method, replacement string) {
	logger.Warn("Deprecated Ability method called",
		zap.String("deprecated", method),
		zap.String("use", replacement))
}

// Deprecated: DiscoverUsers returns the discover-tier user list with the
// read and download tiers unioned in. Use UsersWithAccess.
func (a *Ability) DiscoverUsers(ctx context.Context, resourceID string) ([]string, error) {
	warnDeprecated("Ability.DiscoverUsers", "Ability.UsersWithAccess")
	return a.evaluator.RollupUsers(ctx, resourceID, model.TierDiscover)
}

// Deprecated: DiscoverGroups returns the discover-tier group list with the
// read and download tiers unioned in. Use GroupsWithAccess.
func (a *Ability) DiscoverGroups(ctx context.Context, resourceID string) ([]string, error) {
	warnDeprecated("Ability.DiscoverGroups", "Ability.GroupsWithAccess")
	return a.evaluator.RollupGroups(ctx, resourceID, model.TierDiscover)
}

// Deprecated: ReadUsers returns the read-tier user list with the download
// tier unioned in. Use UsersWithAccess.
func (a *Ability) ReadUsers(ctx context.Context, resourceID string) ([]string, error) {
	warnDeprecated("Ability.ReadUsers", "Ability.UsersWithAccess")
	return a.evaluator.RollupUsers(ctx, resourceID, model.TierRead)
}

// Deprecated: ReadGroups returns the read-tier group list with the
// download tier unioned in. Use GroupsWithAccess.
func (a *Ability) ReadGroups(ctx context.Context, resourceID string) ([]string, error) {
	warnDeprecated("Ability.ReadGroups", "Ability.GroupsWithAccess")
	return a.evaluator.RollupGroups(ctx, resourceID, model.TierRead)
}

// Deprecated: DownloadUsers returns the download-tier user list. The
// canonical tier has nothing to union; the method exists for symmetry with
// the old calling convention. Use UsersWithAccess.
func (a *Ability) DownloadUsers(ctx context.Context, resourceID string) ([]string, error) {
	warnDeprecated("Ability.DownloadUsers", "Ability.UsersWithAccess")
	return a.evaluator.RollupUsers(ctx, resourceID, model.TierDownload)
}

// Deprecated: DownloadGroups returns the download-tier group list. Use
// GroupsWithAccess.
func (a *Ability) DownloadGroups(ctx context.Context, resourceID string) ([]string, error) {
	warnDeprecated("Ability.DownloadGroups", "Ability.GroupsWithAccess")
	return a.evaluator.RollupGroups(ctx, resourceID, model.TierDownload)
}
