package controller

import "github.com/dev-tanmaydas/custos/api/service"

// Controllers aggregates the API controllers for router wiring.
type Controllers struct {
	Access *AccessController
}

func InitializeControllers(accessService service.IAccessService) *Controllers {
	return &Controllers{
		Access: NewAccessController(accessService),
	}
}
