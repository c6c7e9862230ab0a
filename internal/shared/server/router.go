package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"jobtracker-backend/internal/applications"
	googleauth "jobtracker-backend/internal/auth"
	"jobtracker-backend/internal/goals"
	"jobtracker-backend/internal/progress"
	"jobtracker-backend/internal/shared/auth"
	"jobtracker-backend/internal/shared/config"
	"jobtracker-backend/internal/shared/metrics"
	"jobtracker-backend/internal/shared/server/middleware"
	"jobtracker-backend/internal/shared/server/respond"
	"jobtracker-backend/internal/stats"
)

const apiPrefix = "/api/v1"

// loginRule allows a short burst of attempts, then one every 6 seconds.
var loginRule = middleware.RateLimitRule{Rate: 1.0 / 6, Burst: 5}

// RouterDeps holds the handlers mounted by NewRouter.
type RouterDeps struct {
	Config       config.Config
	Signer       *auth.Signer
	Applications *applications.Handler
	Goals        *goals.Handler
	Progress     *progress.Handler
	Stats        *stats.Handler
	Credentials  *googleauth.CredentialsService
	GoogleAuth   *googleauth.GoogleService
	LoginLimiter *middleware.RateLimiter
}

// AuthRequired reports whether requests must carry a bearer token. Dev
// environments without any login method configured stay open.
func (d RouterDeps) AuthRequired() bool {
	if !d.Config.IsDevLike() {
		return true
	}
	if d.Credentials != nil && d.Credentials.Configured() {
		return true
	}
	return d.GoogleAuth != nil && d.GoogleAuth.Configured()
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if !deps.Config.IsDevLike() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.AllowedOrigins()),
		middleware.Auth(middleware.AuthOptions{
			Signer:   deps.Signer,
			Required: deps.AuthRequired(),
			PublicPaths: []string{
				apiPrefix + "/health",
				apiPrefix + "/auth/",
				"/metrics",
			},
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group(apiPrefix)
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC().Format(time.RFC3339)})
	})

	if deps.Credentials != nil {
		limiter := deps.LoginLimiter
		if limiter == nil {
			limiter = middleware.NewRateLimiter(nil)
		}
		deps.Credentials.RegisterRoutes(api, middleware.RateLimit(loginRule, limiter))
	}
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	registerMeRoutes(api)

	if deps.Applications != nil {
		deps.Applications.RegisterRoutes(api)
	}
	if deps.Goals != nil {
		deps.Goals.RegisterRoutes(api)
	}
	if deps.Progress != nil {
		deps.Progress.RegisterRoutes(api)
	}
	if deps.Stats != nil {
		deps.Stats.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
