// Package ability implements the permission evaluation core: one Ability
// per evaluation session, holding the session's subject, its permissions
// cache, and the registered granting rules for the discover, read and
// download tiers.
package ability

import (
	"context"
	"fmt"

	"github.com/dev-tanmaydas/custos/api/dao"
	custos_errors "github.com/dev-tanmaydas/custos/api/errors"
	"github.com/dev-tanmaydas/custos/api/model"
)

// Rule decides one capability for the session. The target is either a
// resource id string or a materialized *model.PermissionsDoc.
type Rule func(ctx context.Context, target any) (bool, error)

// RuleRegistrar appends granting rules to an Ability during construction.
// Registrars run in order; later registrations overwrite earlier ones for
// the same capability.
type RuleRegistrar func(a *Ability)

// Options is the session options bag.
type Options struct {
	// Fields locates the actor lists inside a permissions document.
	Fields model.FieldMapping
	// LegacyTierUnion keeps the compatibility semantics where broader
	// tiers also consult the actor lists of more-privileged tiers.
	LegacyTierUnion bool
}

// DefaultOptions returns the options every current caller depends on:
// conventional field names and the legacy tier union switched on.
func DefaultOptions() Options {
	return Options{
		Fields:          model.DefaultFieldMapping(),
		LegacyTierUnion: true,
	}
}

// Ability aggregates the evaluation state for one session: subject, cache,
// resolver, evaluator and the registered rules. One Ability serves one
// logical request on one goroutine; nothing in it is synchronized.
type Ability struct {
	subject   *model.Subject
	options   Options
	cache     *PermissionsCache
	resolver  *Resolver
	evaluator *Evaluator
	rules     map[string]Rule

	groups        []string
	groupsDerived bool
}

// New constructs an Ability for one evaluation session. A nil subject
// yields an anonymous guest. The three tier rules are registered first;
// any supplied registrars run after them, in order.
func New(subject *model.Subject, permissionDAO dao.PermissionDAO, options Options, registrars ...RuleRegistrar) *Ability {
	if subject == nil {
		subject = model.NewGuestSubject()
	}

	cache := NewPermissionsCache()
	resolver := NewResolver(permissionDAO, cache, options.Fields)

	a := &Ability{
		subject:   subject,
		options:   options,
		cache:     cache,
		resolver:  resolver,
		evaluator: NewEvaluator(resolver, options.LegacyTierUnion),
		rules:     make(map[string]Rule),
	}

	registerTierRules(a)
	for _, register := range registrars {
		register(a)
	}

	return a
}

// registerTierRules installs the granting rule for each of the three
// tiers: resolve the target to a resource id, seeding the cache when the
// target is a materialized document, then test tier membership.
func registerTierRules(a *Ability) {
	for _, tier := range model.Tiers() {
		tier := tier
		a.Register(tier.String(), func(ctx context.Context, target any) (bool, error) {
			resourceID, err := a.resolveTarget(target)
			if err != nil {
				return false, err
			}
			return a.TestAccess(ctx, resourceID, tier)
		})
	}
}

// resolveTarget extracts the resource id from a rule target. A
// materialized document is always inserted into the session cache first,
// so later bare-id checks for the same resource skip the backend.
func (a *Ability) resolveTarget(target any) (string, error) {
	switch t := target.(type) {
	case string:
		return t, nil
	case *model.PermissionsDoc:
		a.cache.Put(t.ID, t)
		return t.ID, nil
	default:
		return "", fmt.Errorf("%w: unsupported target type %T", custos_errors.ErrInvalidAccessRequest, target)
	}
}

// Register installs a granting rule for a capability name.
func (a *Ability) Register(capability string, rule Rule) {
	a.rules[capability] = rule
}

// Can evaluates the registered rule for the capability against the target.
// An unregistered capability is never granted. This is the sole decision
// surface consumed by enforcement code.
func (a *Ability) Can(ctx context.Context, capability string, target any) (bool, error) {
	rule, ok := a.rules[capability]
	if !ok {
		return false, nil
	}
	return rule(ctx, target)
}

// CanDiscover reports whether the subject may discover the target.
func (a *Ability) CanDiscover(ctx context.Context, target any) (bool, error) {
	return a.Can(ctx, model.TierDiscover.String(), target)
}

// CanRead reports whether the subject may read the target.
func (a *Ability) CanRead(ctx context.Context, target any) (bool, error) {
	return a.Can(ctx, model.TierRead.String(), target)
}

// CanDownload reports whether the subject may download the target.
func (a *Ability) CanDownload(ctx context.Context, target any) (bool, error) {
	return a.Can(ctx, model.TierDownload.String(), target)
}

// TestAccess checks the subject against the actor lists consulted for the
// tier on the given resource.
func (a *Ability) TestAccess(ctx context.Context, resourceID string, tier model.Tier) (bool, error) {
	return a.evaluator.TestAccess(ctx, a.subject.Key, a.Groups(), resourceID, tier)
}

// Groups returns the subject's effective group set. It is derived on first
// access and memoized for the session; the subject must not change
// afterwards.
func (a *Ability) Groups() []string {
	if !a.groupsDerived {
		a.groups = deriveGroups(a.subject)
		a.groupsDerived = true
	}
	return a.groups
}

// Subject returns the session's subject.
func (a *Ability) Subject() *model.Subject {
	return a.subject
}

// Options returns the session's options bag.
func (a *Ability) Options() Options {
	return a.options
}

// Cache returns the session cache. Collaborators already holding a
// materialized document may seed it directly.
func (a *Ability) Cache() *PermissionsCache {
	return a.cache
}

// PermissionsDoc resolves the permissions document for a resource id via
// the session cache.
func (a *Ability) PermissionsDoc(ctx context.Context, resourceID string) (*model.PermissionsDoc, error) {
	return a.resolver.PermissionsDoc(ctx, resourceID)
}

// UsersWithAccess returns the raw user list at the tier's own field,
// without the legacy union applied.
func (a *Ability) UsersWithAccess(ctx context.Context, resourceID string, tier model.Tier) ([]string, error) {
	return a.resolver.UsersWithAccess(ctx, resourceID, tier)
}

// GroupsWithAccess returns the raw group list at the tier's own field,
// without the legacy union applied.
func (a *Ability) GroupsWithAccess(ctx context.Context, resourceID string, tier model.Tier) ([]string, error) {
	return a.resolver.GroupsWithAccess(ctx, resourceID, tier)
}
