package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dev-tanmaydas/custos/api/controller"
	"github.com/dev-tanmaydas/custos/api/middleware"
	"github.com/dev-tanmaydas/custos/api/model"
	"github.com/dev-tanmaydas/custos/api/service"
)

func SetupRouter(
	controllers *controller.Controllers,
	accessService service.IAccessService,
	rateLimitRequests int,
	rateLimitDuration time.Duration,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimiter(rateLimitRequests, rateLimitDuration))

	api := router.Group("/api/v1")

	controllers.Access.RegisterRoutes(api)

	// A resource's raw permissions are themselves readable only by
	// subjects who can read the resource.
	api.GET("/resources/:id/permissions",
		middleware.RequireCapability(accessService, model.TierRead),
		controllers.Access.GetPermissions)

	return router
}
