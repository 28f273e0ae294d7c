package controller_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dev-tanmaydas/custos/api/controller"
	custos_errors "github.com/dev-tanmaydas/custos/api/errors"
	"github.com/dev-tanmaydas/custos/api/model"
	service_mock "github.com/dev-tanmaydas/custos/api/test/mock"
)

func setupRouter(accessService *service_mock.MockAccessService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/")
	controller.NewAccessController(accessService).RegisterRoutes(api)
	return r
}

func TestCheckAccess_Endpoint(t *testing.T) {
	mockService := new(service_mock.MockAccessService)
	router := setupRouter(mockService)

	t.Run("Granted", func(t *testing.T) {
		mockService.On("CheckAccess", mock.Anything, mock.MatchedBy(func(req model.AccessRequest) bool {
			return req.Capability == "read" && req.ResourceID == "doc-1"
		})).Return(&model.AccessDecision{
			Granted:     true,
			Capability:  "read",
			ResourceID:  "doc-1",
			SubjectKey:  "u1",
			Groups:      []string{"public", "editors"},
			EvaluatedAt: time.Now().UTC(),
		}, nil).Once()

		body := strings.NewReader(`{"subject":{"key":"u1","groups":["editors"]},"capability":"read","resource_id":"doc-1"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/access/check", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var decision model.AccessDecision
		assert.NoError(t, json.NewDecoder(w.Body).Decode(&decision))
		assert.True(t, decision.Granted)
		assert.Equal(t, "doc-1", decision.ResourceID)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		body := strings.NewReader(`{"capability":`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/access/check", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("InvalidRequest", func(t *testing.T) {
		mockService.On("CheckAccess", mock.Anything, mock.Anything).
			Return(nil, custos_errors.ErrInvalidAccessRequest).Once()

		body := strings.NewReader(`{"capability":"edit","resource_id":"doc-1"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/access/check", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("BackendFailure", func(t *testing.T) {
		mockService.On("CheckAccess", mock.Anything, mock.Anything).
			Return(nil, custos_errors.ErrBackendUnavailable).Once()

		body := strings.NewReader(`{"capability":"read","resource_id":"doc-1"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/access/check", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestGetUsersWithAccess_Endpoint(t *testing.T) {
	mockService := new(service_mock.MockAccessService)
	router := setupRouter(mockService)

	t.Run("Success", func(t *testing.T) {
		mockService.On("UsersWithAccess", mock.Anything, "doc-1", model.TierRead).
			Return([]string{"u1", "u2"}, nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/resources/doc-1/users?tier=read", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"u1"`)
	})

	t.Run("InvalidTier", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/resources/doc-1/users?tier=edit", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetGroupsWithAccess_Endpoint(t *testing.T) {
	mockService := new(service_mock.MockAccessService)
	router := setupRouter(mockService)

	mockService.On("GroupsWithAccess", mock.Anything, "doc-1", model.TierDownload).
		Return([]string{"archivists"}, nil).Once()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/resources/doc-1/groups?tier=download", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"archivists"`)
}

func TestGetPermissions_Handler(t *testing.T) {
	mockService := new(service_mock.MockAccessService)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/resources/:id/permissions", controller.NewAccessController(mockService).GetPermissions)

	t.Run("Found", func(t *testing.T) {
		mockService.On("PermissionsDoc", mock.Anything, "doc-1").
			Return(&model.PermissionsDoc{
				ID:     "doc-1",
				Fields: map[string][]string{"read_groups": {"editors"}},
			}, nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/resources/doc-1/permissions", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"editors"`)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService.On("PermissionsDoc", mock.Anything, "missing").
			Return(nil, nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/resources/missing/permissions", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
