package respond

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"jobtracker-backend/internal/shared/storage"
)

func TestFailureMapsErrorKinds(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{name: "store unavailable", err: storage.Unavailable("list", errors.New("dial tcp")), wantCode: http.StatusServiceUnavailable, wantBody: "store_unavailable"},
		{name: "canceled", err: context.Canceled, wantCode: http.StatusRequestTimeout, wantBody: "timeout"},
		{name: "canceled inside store", err: storage.Unavailable("applications.list", context.Canceled), wantCode: http.StatusRequestTimeout, wantBody: "timeout"},
		{name: "deadline inside store", err: storage.Unavailable("goals.get", context.DeadlineExceeded), wantCode: http.StatusRequestTimeout, wantBody: "timeout"},
		{name: "other", err: errors.New("boom"), wantCode: http.StatusInternalServerError, wantBody: "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/x", func(c *gin.Context) { Failure(c, tt.err, "failed") })

			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/x", nil))

			if resp.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, resp.Code)
			}
			var body ErrorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error.Code != tt.wantBody {
				t.Fatalf("expected code %s, got %s", tt.wantBody, body.Error.Code)
			}
		})
	}
}
