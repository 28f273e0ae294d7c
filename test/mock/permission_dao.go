package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dev-tanmaydas/custos/api/model"
)

// MockPermissionDAO is a mock implementation of dao.PermissionDAO
type MockPermissionDAO struct {
	mock.Mock
}

func (m *MockPermissionDAO) FetchPermissions(ctx context.Context, resourceID string) (*model.PermissionsDoc, error) {
	args := m.Called(ctx, resourceID)
	if doc := args.Get(0); doc != nil {
		return doc.(*model.PermissionsDoc), args.Error(1)
	}
	return nil, args.Error(1)
}
