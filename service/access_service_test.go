package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dev-tanmaydas/custos/api/ability"
	custos_errors "github.com/dev-tanmaydas/custos/api/errors"
	"github.com/dev-tanmaydas/custos/api/model"
	"github.com/dev-tanmaydas/custos/api/service"
	dao_mock "github.com/dev-tanmaydas/custos/api/test/mock"
	"github.com/dev-tanmaydas/custos/api/util"
)

func newService(permissionDAO *dao_mock.MockPermissionDAO) *service.AccessService {
	return service.NewAccessService(
		permissionDAO,
		util.NewValidationUtil(),
		nil,
		util.NewEventBus(),
		ability.DefaultOptions(),
	)
}

func TestCheckAccess_Granted(t *testing.T) {
	permissionDAO := new(dao_mock.MockPermissionDAO)
	permissionDAO.On("FetchPermissions", mock.Anything, "doc-1").
		Return(&model.PermissionsDoc{
			ID:     "doc-1",
			Fields: map[string][]string{"read_groups": {"editors"}},
		}, nil)

	svc := newService(permissionDAO)

	decision, err := svc.CheckAccess(context.Background(), model.AccessRequest{
		Subject:    &model.Subject{Key: "u1", Groups: []string{"editors"}},
		Capability: "read",
		ResourceID: "doc-1",
	})

	assert.NoError(t, err)
	assert.True(t, decision.Granted)
	assert.Equal(t, "read", decision.Capability)
	assert.Equal(t, "doc-1", decision.ResourceID)
	assert.Equal(t, "u1", decision.SubjectKey)
	assert.Equal(t, []string{"public", "editors"}, decision.Groups)
	permissionDAO.AssertNumberOfCalls(t, "FetchPermissions", 1)
}

func TestCheckAccess_DeniedIsNotAnError(t *testing.T) {
	permissionDAO := new(dao_mock.MockPermissionDAO)
	permissionDAO.On("FetchPermissions", mock.Anything, "doc-1").
		Return(nil, nil)

	svc := newService(permissionDAO)

	decision, err := svc.CheckAccess(context.Background(), model.AccessRequest{
		Subject:    &model.Subject{Key: "u1"},
		Capability: "download",
		ResourceID: "doc-1",
	})

	assert.NoError(t, err)
	assert.False(t, decision.Granted)
}

func TestCheckAccess_NilSubjectBecomesGuest(t *testing.T) {
	permissionDAO := new(dao_mock.MockPermissionDAO)
	permissionDAO.On("FetchPermissions", mock.Anything, "doc-1").
		Return(&model.PermissionsDoc{
			ID:     "doc-1",
			Fields: map[string][]string{"discover_groups": {"public"}},
		}, nil)

	svc := newService(permissionDAO)

	decision, err := svc.CheckAccess(context.Background(), model.AccessRequest{
		Capability: "discover",
		ResourceID: "doc-1",
	})

	assert.NoError(t, err)
	assert.True(t, decision.Granted)
	assert.True(t, strings.HasPrefix(decision.SubjectKey, "guest-"))
	assert.Equal(t, []string{"public"}, decision.Groups)
}

func TestCheckAccess_InvalidRequest(t *testing.T) {
	svc := newService(new(dao_mock.MockPermissionDAO))

	cases := []model.AccessRequest{
		{Capability: "read"},                  // no resource
		{Capability: "", ResourceID: "doc-1"}, // no capability
		{Capability: "read", ResourceID: "doc-1", Subject: &model.Subject{}}, // empty key
	}
	for _, req := range cases {
		_, err := svc.CheckAccess(context.Background(), req)
		assert.ErrorIs(t, err, custos_errors.ErrInvalidAccessRequest)
	}
}

func TestCheckAccess_UnknownCapabilityIsDenied(t *testing.T) {
	svc := newService(new(dao_mock.MockPermissionDAO))

	decision, err := svc.CheckAccess(context.Background(), model.AccessRequest{
		Subject:    &model.Subject{Key: "u1"},
		Capability: "edit",
		ResourceID: "doc-1",
	})
	assert.NoError(t, err)
	assert.False(t, decision.Granted)
}

func TestCheckAccess_BackendFailurePropagates(t *testing.T) {
	backendErr := errors.New("connection refused")
	permissionDAO := new(dao_mock.MockPermissionDAO)
	permissionDAO.On("FetchPermissions", mock.Anything, "doc-1").
		Return(nil, backendErr)

	svc := newService(permissionDAO)

	_, err := svc.CheckAccess(context.Background(), model.AccessRequest{
		Subject:    &model.Subject{Key: "u1"},
		Capability: "read",
		ResourceID: "doc-1",
	})
	assert.ErrorIs(t, err, backendErr)
}

func TestUsersAndGroupsWithAccess(t *testing.T) {
	permissionDAO := new(dao_mock.MockPermissionDAO)
	permissionDAO.On("FetchPermissions", mock.Anything, "doc-1").
		Return(&model.PermissionsDoc{
			ID: "doc-1",
			Fields: map[string][]string{
				"read_users":     {"u1"},
				"download_users": {"u2"},
				"read_groups":    {"editors"},
			},
		}, nil)

	svc := newService(permissionDAO)
	ctx := context.Background()

	users, err := svc.UsersWithAccess(ctx, "doc-1", model.TierRead)
	assert.NoError(t, err)
	// Raw actor sets: no union with the download tier.
	assert.Equal(t, []string{"u1"}, users)

	groups, err := svc.GroupsWithAccess(ctx, "doc-1", model.TierRead)
	assert.NoError(t, err)
	assert.Equal(t, []string{"editors"}, groups)

	doc, err := svc.PermissionsDoc(ctx, "doc-1")
	assert.NoError(t, err)
	assert.Equal(t, "doc-1", doc.ID)
}
