package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dev-tanmaydas/custos/api/model"
)

// MockAccessService is a mock implementation of service.IAccessService
type MockAccessService struct {
	mock.Mock
}

func (m *MockAccessService) CheckAccess(ctx context.Context, req model.AccessRequest) (*model.AccessDecision, error) {
	args := m.Called(ctx, req)
	if decision := args.Get(0); decision != nil {
		return decision.(*model.AccessDecision), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccessService) PermissionsDoc(ctx context.Context, resourceID string) (*model.PermissionsDoc, error) {
	args := m.Called(ctx, resourceID)
	if doc := args.Get(0); doc != nil {
		return doc.(*model.PermissionsDoc), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccessService) UsersWithAccess(ctx context.Context, resourceID string, tier model.Tier) ([]string, error) {
	args := m.Called(ctx, resourceID, tier)
	if users := args.Get(0); users != nil {
		return users.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccessService) GroupsWithAccess(ctx context.Context, resourceID string, tier model.Tier) ([]string, error) {
	args := m.Called(ctx, resourceID, tier)
	if groups := args.Get(0); groups != nil {
		return groups.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}
