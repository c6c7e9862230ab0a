package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"jobtracker-backend/internal/applications"
	googleauth "jobtracker-backend/internal/auth"
	"jobtracker-backend/internal/shared/auth"
	"jobtracker-backend/internal/shared/config"
)

func testDeps(t *testing.T, user, password string) RouterDeps {
	t.Helper()
	gin.SetMode(gin.TestMode)
	signer, err := auth.NewSigner("router-secret", true)
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	cfg := config.Defaults()
	return RouterDeps{
		Config:       cfg,
		Signer:       signer,
		Applications: applications.NewHandler(&applications.Service{Repo: applications.NewMemoryRepo()}),
		Credentials:  googleauth.NewCredentialsService(user, password, signer),
	}
}

func TestRouterOpenInDevWithoutCredentials(t *testing.T) {
	router := NewRouter(testDeps(t, "", ""))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/applications", nil))
	if resp.Code != http.StatusOK || resp.Body.String() != "[]" {
		t.Fatalf("unexpected response %d %s", resp.Code, resp.Body.String())
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))
	if !strings.Contains(resp.Body.String(), `"userId":"local"`) {
		t.Fatalf("expected local user, got %s", resp.Body.String())
	}
}

func TestRouterRequiresTokenWhenCredentialsConfigured(t *testing.T) {
	router := NewRouter(testDeps(t, "maria", "pw"))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/applications", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected public health, got %d", resp.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(`{"username":"maria","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected login 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &login); err != nil {
		t.Fatalf("decode login: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"userId":"user:maria"`) {
		t.Fatalf("unexpected /me response %d %s", resp.Code, resp.Body.String())
	}
}

func TestRouterServesMetrics(t *testing.T) {
	router := NewRouter(testDeps(t, "maria", "pw"))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "jobtracker_http_requests_total") {
		t.Fatalf("expected request counter in exposition")
	}
}

func TestAddr(t *testing.T) {
	cases := map[string]string{"": ":8080", "9000": ":9000", ":7000": ":7000"}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q): expected %q, got %q", in, want, got)
		}
	}
}
