package goals

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobtracker-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches goal routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/goals", h.get)
	rg.PUT("/goals", h.put)
}

func (h *Handler) get(c *gin.Context) {
	g, err := h.Svc.Get(c.Request.Context())
	if err != nil {
		respond.Failure(c, err, "failed to load goals")
		return
	}
	respond.OK(c, g)
}

func (h *Handler) put(c *gin.Context) {
	var req Goals
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "daily_goal and weekly_goal must be integers", nil)
		return
	}
	g, err := h.Svc.Set(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Failure(c, err, "failed to save goals")
		return
	}
	respond.OK(c, g)
}
