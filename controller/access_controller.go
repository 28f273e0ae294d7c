package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	custos_errors "github.com/dev-tanmaydas/custos/api/errors"
	"github.com/dev-tanmaydas/custos/api/model"
	"github.com/dev-tanmaydas/custos/api/service"
	"github.com/dev-tanmaydas/custos/api/util"
)

type AccessController struct {
	accessService service.IAccessService
}

func NewAccessController(accessService service.IAccessService) *AccessController {
	return &AccessController{
		accessService: accessService,
	}
}

// RegisterRoutes registers the API routes for access decisions
func (ac *AccessController) RegisterRoutes(r *gin.RouterGroup) {
	access := r.Group("/access")
	{
		access.POST("/check", ac.CheckAccess)
	}
	resources := r.Group("/resources")
	{
		// The permissions view route is registered by the router behind
		// the read-capability guard.
		resources.GET("/:id/users", ac.GetUsersWithAccess)
		resources.GET("/:id/groups", ac.GetGroupsWithAccess)
	}
}

// CheckAccess endpoint
func (ac *AccessController) CheckAccess(c *gin.Context) {
	var req model.AccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid access request", custos_errors.ErrInvalidAccessRequest)
		return
	}

	decision, err := ac.accessService.CheckAccess(c, req)
	if err != nil {
		switch {
		case errors.Is(err, custos_errors.ErrInvalidAccessRequest):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid access request", err)
		default:
			util.RespondWithError(c, http.StatusBadGateway, "Permissions backend unavailable", err)
		}
		return
	}

	c.JSON(http.StatusOK, decision)
}

// GetPermissions endpoint returns the raw permissions document
func (ac *AccessController) GetPermissions(c *gin.Context) {
	resourceID := c.Param("id")

	doc, err := ac.accessService.PermissionsDoc(c, resourceID)
	if err != nil {
		util.RespondWithError(c, http.StatusBadGateway, "Permissions backend unavailable", err)
		return
	}
	if doc == nil {
		util.RespondWithError(c, http.StatusNotFound, "Permissions document not found", custos_errors.ErrPermissionsNotFound)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// GetUsersWithAccess endpoint returns the user list at one tier's field
func (ac *AccessController) GetUsersWithAccess(c *gin.Context) {
	resourceID := c.Param("id")
	tier, err := model.ParseTier(c.Query("tier"))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid tier", err)
		return
	}

	users, err := ac.accessService.UsersWithAccess(c, resourceID, tier)
	if err != nil {
		util.RespondWithError(c, http.StatusBadGateway, "Permissions backend unavailable", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resource_id": resourceID, "tier": tier.String(), "users": users})
}

// GetGroupsWithAccess endpoint returns the group list at one tier's field
func (ac *AccessController) GetGroupsWithAccess(c *gin.Context) {
	resourceID := c.Param("id")
	tier, err := model.ParseTier(c.Query("tier"))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid tier", err)
		return
	}

	groups, err := ac.accessService.GroupsWithAccess(c, resourceID, tier)
	if err != nil {
		util.RespondWithError(c, http.StatusBadGateway, "Permissions backend unavailable", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resource_id": resourceID, "tier": tier.String(), "groups": groups})
}
