package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	sharedauth "jobtracker-backend/internal/shared/auth"
	"jobtracker-backend/internal/shared/server/respond"
	"jobtracker-backend/internal/shared/telemetry"
)

// CredentialsService logs in the single configured user.
type CredentialsService struct {
	user     string
	password string
	signer   *sharedauth.Signer
}

// NewCredentialsService builds a CredentialsService. Empty credentials
// leave the login route answering auth_not_configured.
func NewCredentialsService(user, password string, signer *sharedauth.Signer) *CredentialsService {
	return &CredentialsService{
		user:     strings.TrimSpace(user),
		password: password,
		signer:   signer,
	}
}

// Configured reports whether a username and password are set.
func (s *CredentialsService) Configured() bool {
	return s != nil && s.user != "" && s.password != ""
}

// RegisterRoutes attaches the login route. Extra handlers (rate limiting)
// run before the login handler.
func (s *CredentialsService) RegisterRoutes(rg *gin.RouterGroup, pre ...gin.HandlerFunc) {
	handlers := append(append([]gin.HandlerFunc{}, pre...), s.login)
	rg.POST("/auth/login", handlers...)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  user   `json:"user"`
}

type user struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (s *CredentialsService) login(c *gin.Context) {
	if !s.Configured() || s.signer == nil {
		respond.Error(c, http.StatusInternalServerError, "auth_not_configured", "credentials login not configured", nil)
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	if !s.matches(req.Username, req.Password) {
		telemetry.Warn("auth.login_failed", map[string]any{
			"client_ip": c.ClientIP(),
		})
		respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "invalid username or password", nil)
		return
	}

	sub := "user:" + s.user
	token, err := s.signer.Sign(sharedauth.Claims{Sub: sub, Name: s.user})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}
	respond.OK(c, loginResponse{Token: token, User: user{ID: sub, Name: s.user}})
}

func (s *CredentialsService) matches(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(s.user)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	return userOK && passOK
}
