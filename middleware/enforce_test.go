package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dev-tanmaydas/custos/api/middleware"
	"github.com/dev-tanmaydas/custos/api/model"
	service_mock "github.com/dev-tanmaydas/custos/api/test/mock"
	"github.com/dev-tanmaydas/custos/api/util"
)

func guardedRouter(accessService *service_mock.MockAccessService, tier model.Tier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/resources/:id", middleware.RequireCapability(accessService, tier), func(c *gin.Context) {
		subject := util.GetSubjectFromContext(c)
		c.JSON(http.StatusOK, gin.H{"subject_key": subject.Key})
	})
	return r
}

func TestRequireCapability_Granted(t *testing.T) {
	mockService := new(service_mock.MockAccessService)
	mockService.On("CheckAccess", mock.Anything, mock.MatchedBy(func(req model.AccessRequest) bool {
		return req.Subject.Key == "u1" && req.Capability == "read" && req.ResourceID == "doc-1"
	})).Return(&model.AccessDecision{Granted: true}, nil).Once()

	router := guardedRouter(mockService, model.TierRead)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/resources/doc-1", nil)
	req.Header.Set("X-User-Id", "u1")
	req.Header.Set("X-User-Registered", "true")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"u1"`)
}

func TestRequireCapability_DeniedCarriesCapabilityAndResource(t *testing.T) {
	mockService := new(service_mock.MockAccessService)
	mockService.On("CheckAccess", mock.Anything, mock.Anything).
		Return(&model.AccessDecision{Granted: false}, nil).Once()

	router := guardedRouter(mockService, model.TierDownload)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/resources/doc-1", nil)
	req.Header.Set("X-User-Id", "u1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"download"`)
	assert.Contains(t, w.Body.String(), `"doc-1"`)
}

func TestRequireCapability_AnonymousBecomesGuest(t *testing.T) {
	mockService := new(service_mock.MockAccessService)
	mockService.On("CheckAccess", mock.Anything, mock.MatchedBy(func(req model.AccessRequest) bool {
		return strings.HasPrefix(req.Subject.Key, "guest-") && !req.Subject.Registered
	})).Return(&model.AccessDecision{Granted: true}, nil).Once()

	router := guardedRouter(mockService, model.TierDiscover)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/resources/doc-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestRequireCapability_BackendFailure(t *testing.T) {
	mockService := new(service_mock.MockAccessService)
	mockService.On("CheckAccess", mock.Anything, mock.Anything).
		Return(nil, assert.AnError).Once()

	router := guardedRouter(mockService, model.TierRead)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/resources/doc-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestSubjectFromHeaders_Groups(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request, _ = http.NewRequest("GET", "/", nil)
	c.Request.Header.Set("X-User-Id", "u1")
	c.Request.Header.Set("X-User-Groups", "editors, staff ,,archivists")

	subject := middleware.SubjectFromHeaders(c)
	assert.Equal(t, "u1", subject.Key)
	assert.Equal(t, []string{"editors", "staff", "archivists"}, subject.Groups)
}
