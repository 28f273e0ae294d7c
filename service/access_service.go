package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dev-tanmaydas/custos/api/ability"
	"github.com/dev-tanmaydas/custos/api/audit"
	"github.com/dev-tanmaydas/custos/api/dao"
	custos_errors "github.com/dev-tanmaydas/custos/api/errors"
	logger "github.com/dev-tanmaydas/custos/api/logging"
	"github.com/dev-tanmaydas/custos/api/model"
	"github.com/dev-tanmaydas/custos/api/util"
)

// IAccessService defines the interface for access decision operations
type IAccessService interface {
	CheckAccess(ctx context.Context, req model.AccessRequest) (*model.AccessDecision, error)
	PermissionsDoc(ctx context.Context, resourceID string) (*model.PermissionsDoc, error)
	UsersWithAccess(ctx context.Context, resourceID string, tier model.Tier) ([]string, error)
	GroupsWithAccess(ctx context.Context, resourceID string, tier model.Tier) ([]string, error)
}

// AccessService orchestrates capability checks: one Ability per request,
// decisions published on the event bus and recorded by the audit service.
type AccessService struct {
	permissionDAO  dao.PermissionDAO
	validationUtil *util.ValidationUtil
	auditService   audit.Service
	eventBus       *util.EventBus
	options        ability.Options
	registrars     []ability.RuleRegistrar
}

var _ IAccessService = &AccessService{}

// NewAccessService creates a new instance of AccessService. Extra rule
// registrars are applied, in order, to every Ability the service builds.
func NewAccessService(permissionDAO dao.PermissionDAO, validationUtil *util.ValidationUtil, auditService audit.Service, eventBus *util.EventBus, options ability.Options, registrars ...ability.RuleRegistrar) *AccessService {
	service := &AccessService{
		permissionDAO:  permissionDAO,
		validationUtil: validationUtil,
		auditService:   auditService,
		eventBus:       eventBus,
		options:        options,
		registrars:     registrars,
	}

	// Set up event subscriptions
	eventBus.Subscribe("access.checked", service.handleAccessChecked)

	return service
}

func (s *AccessService) handleAccessChecked(ctx context.Context, event util.Event) error {
	decision := event.Payload.(*model.AccessDecision)

	if s.auditService == nil {
		return nil
	}
	if err := s.auditService.LogDecision(ctx, audit.AccessLog{
		Timestamp:  decision.EvaluatedAt,
		SubjectKey: decision.SubjectKey,
		Capability: decision.Capability,
		ResourceID: decision.ResourceID,
		Granted:    decision.Granted,
		Groups:     decision.Groups,
	}); err != nil {
		logger.Error("Failed to record access decision",
			zap.Error(err),
			zap.String("resourceID", decision.ResourceID))
		return err
	}
	return nil
}

// newAbility builds the per-request evaluation session.
func (s *AccessService) newAbility(subject *model.Subject) *ability.Ability {
	return ability.New(subject, s.permissionDAO, s.options, s.registrars...)
}

// CheckAccess evaluates one capability request. A nil subject is treated
// as an anonymous guest. Backend failures propagate; a denial is a normal
// decision, not an error.
func (s *AccessService) CheckAccess(ctx context.Context, req model.AccessRequest) (*model.AccessDecision, error) {
	if err := s.validationUtil.ValidateAccessRequest(req); err != nil {
		logger.Warn("Invalid access request",
			zap.Error(err),
			zap.String("capability", req.Capability),
			zap.String("resourceID", req.ResourceID))
		return nil, custos_errors.ErrInvalidAccessRequest
	}

	ab := s.newAbility(req.Subject)
	granted, err := ab.Can(ctx, req.Capability, req.ResourceID)
	if err != nil {
		return nil, err
	}

	decision := &model.AccessDecision{
		Granted:     granted,
		Capability:  req.Capability,
		ResourceID:  req.ResourceID,
		SubjectKey:  ab.Subject().Key,
		Groups:      ab.Groups(),
		EvaluatedAt: time.Now().UTC(),
	}

	logger.Debug("Access checked",
		zap.String("subjectKey", decision.SubjectKey),
		zap.String("capability", decision.Capability),
		zap.String("resourceID", decision.ResourceID),
		zap.Bool("granted", decision.Granted))

	s.eventBus.Publish(ctx, "access.checked", decision)

	return decision, nil
}

// PermissionsDoc returns the raw permissions document for a resource, or
// nil when the resource has none.
func (s *AccessService) PermissionsDoc(ctx context.Context, resourceID string) (*model.PermissionsDoc, error) {
	resolver := ability.NewResolver(s.permissionDAO, ability.NewPermissionsCache(), s.options.Fields)
	return resolver.PermissionsDoc(ctx, resourceID)
}

// UsersWithAccess returns the user ids at the tier's own field, without
// the legacy union applied.
func (s *AccessService) UsersWithAccess(ctx context.Context, resourceID string, tier model.Tier) ([]string, error) {
	resolver := ability.NewResolver(s.permissionDAO, ability.NewPermissionsCache(), s.options.Fields)
	return resolver.UsersWithAccess(ctx, resourceID, tier)
}

// GroupsWithAccess returns the group ids at the tier's own field, without
// the legacy union applied.
func (s *AccessService) GroupsWithAccess(ctx context.Context, resourceID string, tier model.Tier) ([]string, error) {
	resolver := ability.NewResolver(s.permissionDAO, ability.NewPermissionsCache(), s.options.Fields)
	return resolver.GroupsWithAccess(ctx, resourceID, tier)
}
