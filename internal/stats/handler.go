package stats

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"jobtracker-backend/internal/applications"
	"jobtracker-backend/internal/shared/server/respond"
)

// ApplicationLister returns every stored application.
type ApplicationLister interface {
	List(ctx context.Context) ([]applications.Application, error)
}

// Handler serves the derived statistics.
type Handler struct {
	Apps ApplicationLister
	Now  func() time.Time
}

// RegisterRoutes attaches statistics routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.summary)
	rg.GET("/companies", h.companies)
}

func (h *Handler) summary(c *gin.Context) {
	apps, err := h.Apps.List(c.Request.Context())
	if err != nil {
		respond.Failure(c, err, "failed to load statistics")
		return
	}
	respond.OK(c, Compute(apps))
}

func (h *Handler) companies(c *gin.Context) {
	apps, err := h.Apps.List(c.Request.Context())
	if err != nil {
		respond.Failure(c, err, "failed to load companies")
		return
	}
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	respond.OK(c, Companies(apps, now().UTC()))
}
