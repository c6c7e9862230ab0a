package stats

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtracker-backend/internal/applications"
	"jobtracker-backend/internal/shared/storage"
)

type stubLister struct {
	apps []applications.Application
	err  error
}

func (s stubLister) List(context.Context) ([]applications.Application, error) {
	return s.apps, s.err
}

func newTestRouter(lister ApplicationLister) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := &Handler{
		Apps: lister,
		Now:  func() time.Time { return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC) },
	}
	h.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
	return resp
}

func TestHandlerSummary(t *testing.T) {
	r := newTestRouter(stubLister{apps: []applications.Application{
		app(applications.StatusRejected, "Backend", "2025-05-01"),
		app(applications.StatusApplied, "", "2025-05-02"),
	}})

	resp := get(r, "/api/v1/stats")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var got Summary
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, 1, got.Rejected)
	assert.Equal(t, 1, got.SpecMap[applications.OtherSpecialization])
	assert.Len(t, got.Funnel, len(applications.StageOrder))
}

func TestHandlerCompanies(t *testing.T) {
	r := newTestRouter(stubLister{apps: []applications.Application{
		{Company: "Acme", DateApplied: "2024-01-01"},
	}})

	resp := get(r, "/api/v1/companies")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var got []Company
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.True(t, got[0].CanReapply)
}

func TestHandlerStoreUnavailable(t *testing.T) {
	r := newTestRouter(stubLister{err: storage.Unavailable("applications.list", errors.New("conn refused"))})

	resp := get(r, "/api/v1/stats")
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.Contains(t, resp.Body.String(), "store_unavailable")
}
