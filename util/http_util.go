package util

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	logger "github.com/dev-tanmaydas/custos/api/logging"
	"github.com/dev-tanmaydas/custos/api/model"
)

func RespondWithError(c *gin.Context, code int, message string, err error) {
	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method))
	c.JSON(code, gin.H{"error": message})
}

// SetSubject stores the evaluated subject on the request context for
// downstream handlers.
func SetSubject(c *gin.Context, subject *model.Subject) {
	c.Set("subject", subject)
}

// GetSubjectFromContext returns the subject placed on the request context
// by the enforcement middleware, or nil when none was set.
func GetSubjectFromContext(c *gin.Context) *model.Subject {
	v, exists := c.Get("subject")
	if !exists {
		return nil
	}
	subject, ok := v.(*model.Subject)
	if !ok {
		return nil
	}
	return subject
}
