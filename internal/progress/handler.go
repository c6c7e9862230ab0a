package progress

import (
	"context"

	"github.com/gin-gonic/gin"

	"jobtracker-backend/internal/goals"
	"jobtracker-backend/internal/shared/server/respond"
)

// GoalsReader returns the current goals, creating the defaults if needed.
type GoalsReader interface {
	Get(ctx context.Context) (goals.Goals, error)
}

// Handler wires HTTP handlers to the reporter and aggregator.
type Handler struct {
	Reporter   *Reporter
	Aggregator *Aggregator
	Goals      GoalsReader
}

// RegisterRoutes attaches progress routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/progress/daily", h.daily)
	rg.GET("/progress/stats", h.stats)
	rg.GET("/progress/weekly", h.weekly)
	rg.POST("/progress/recalculate", h.recalculate)
}

func (h *Handler) daily(c *gin.Context) {
	days, err := h.Reporter.DailyProgress(c.Request.Context(), ParseDays(c.Query("days")))
	if err != nil {
		respond.Failure(c, err, "failed to load daily progress")
		return
	}
	respond.OK(c, days)
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.Reporter.Stats(c.Request.Context())
	if err != nil {
		respond.Failure(c, err, "failed to load progress stats")
		return
	}
	respond.OK(c, stats)
}

func (h *Handler) weekly(c *gin.Context) {
	g, err := h.Goals.Get(c.Request.Context())
	if err != nil {
		respond.Failure(c, err, "failed to load goals")
		return
	}
	weekly, err := h.Reporter.Weekly(c.Request.Context(), g.WeeklyGoal)
	if err != nil {
		respond.Failure(c, err, "failed to load weekly progress")
		return
	}
	respond.OK(c, weekly)
}

func (h *Handler) recalculate(c *gin.Context) {
	n, err := h.Aggregator.RecalculateAll(c.Request.Context())
	if err != nil {
		respond.Failure(c, err, "failed to recalculate progress")
		return
	}
	respond.OK(c, gin.H{"days": n})
}
