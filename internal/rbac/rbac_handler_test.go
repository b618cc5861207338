package rbac

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrm/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	EnforceFn    func(req domain.EnforceRequest) (bool, error)
	LoadPolicyFn func(ctx context.Context) error
}

func (f *fakeService) LoadPolicy(ctx context.Context) error {
	if f.LoadPolicyFn != nil {
		return f.LoadPolicyFn(ctx)
	}
	return nil
}

func (f *fakeService) Enforce(req domain.EnforceRequest) (bool, error) {
	if f.EnforceFn != nil {
		return f.EnforceFn(req)
	}
	return false, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code string `json:"code"`
	} `json:"error"`
}

func TestHandler_Enforce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{EnforceFn: func(req domain.EnforceRequest) (bool, error) {
		return req.Resource == "project" && req.Action == "read", nil
	}}
	router := gin.New()
	router.POST("/rbac/enforce", NewHandler(svc).Enforce)

	t.Run("allowed", func(t *testing.T) {
		body, _ := json.Marshal(domain.EnforceRequest{EmployeeID: "emp-1", Resource: "project", Action: "read"})
		req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var env envelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		var resp domain.EnforceResponse
		assert.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.True(t, resp.Allowed)
	})

	t.Run("missing employee id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBufferString(`{"resource":"project","action":"read"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Reload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{LoadPolicyFn: func(ctx context.Context) error { return errors.New("db down") }}
	router := gin.New()
	router.POST("/rbac/reload", NewHandler(svc).Reload)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/rbac/reload", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var env envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
}
