package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	custos_errors "github.com/dev-tanmaydas/custos/api/errors"
	logger "github.com/dev-tanmaydas/custos/api/logging"
	"github.com/dev-tanmaydas/custos/api/model"
	"github.com/dev-tanmaydas/custos/api/service"
	"github.com/dev-tanmaydas/custos/api/util"
)

// SubjectFromHeaders builds the request's subject from the identity
// headers set by the authenticating proxy. No X-User-Id means an anonymous
// guest. Authentication itself happens upstream; this layer only consumes
// the established identity.
func SubjectFromHeaders(c *gin.Context) *model.Subject {
	userID := c.GetHeader("X-User-Id")
	if userID == "" {
		return model.NewGuestSubject()
	}

	subject := &model.Subject{
		Key:        userID,
		Registered: c.GetHeader("X-User-Registered") == "true",
	}
	if raw := c.GetHeader("X-User-Groups"); raw != "" {
		for _, g := range strings.Split(raw, ",") {
			if g = strings.TrimSpace(g); g != "" {
				subject.Groups = append(subject.Groups, g)
			}
		}
	}
	return subject
}

// RequireCapability halts the request with 403 unless the subject holds
// the given capability on the resource named by the :id route parameter.
// The denial payload carries the capability and resource id.
func RequireCapability(accessService service.IAccessService, tier model.Tier) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := SubjectFromHeaders(c)
		resourceID := c.Param("id")

		decision, err := accessService.CheckAccess(c, model.AccessRequest{
			Subject:    subject,
			Capability: tier.String(),
			ResourceID: resourceID,
		})
		if err != nil {
			util.RespondWithError(c, http.StatusBadGateway, "Permissions backend unavailable", err)
			c.Abort()
			return
		}

		if !decision.Granted {
			denied := &custos_errors.AccessDeniedError{Capability: tier, ResourceID: resourceID}
			logger.Warn("Access denied",
				zap.String("subjectKey", subject.Key),
				zap.String("capability", tier.String()),
				zap.String("resourceID", resourceID))
			c.JSON(http.StatusForbidden, gin.H{
				"error":       denied.Error(),
				"capability":  tier.String(),
				"resource_id": resourceID,
			})
			c.Abort()
			return
		}

		util.SetSubject(c, subject)
		c.Next()
	}
}
