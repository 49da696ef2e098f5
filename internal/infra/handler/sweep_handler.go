package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-reminder-dispatch/internal/app"
	"github.com/KasumiMercury/primind-reminder-dispatch/internal/scheduler"
)

type SweepTrigger interface {
	Tick(ctx context.Context) (app.SweepReport, error)
}

// SweepHandler runs a sweep on demand, for deployments driven by an external
// scheduler instead of the in-process ticker.
type SweepHandler struct {
	trigger SweepTrigger
}

func NewSweepHandler(trigger SweepTrigger) *SweepHandler {
	return &SweepHandler{
		trigger: trigger,
	}
}

func (h *SweepHandler) RunSweep(c *gin.Context) {
	report, err := h.trigger.Tick(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, scheduler.ErrSweepInProgress):
			c.JSON(http.StatusConflict, ErrorResponse{
				Error:   "conflict",
				Message: "a sweep is already in progress",
			})
		case errors.Is(err, app.ErrStoreUnavailable), errors.Is(err, scheduler.ErrDriverStopped):
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{
				Error:   "unavailable",
				Message: "sweep could not run, retry later",
			})
		default:
			slog.ErrorContext(c.Request.Context(), "manual sweep failed",
				"error", err,
			)
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "internal_error",
				Message: "an internal error occurred",
			})
		}

		return
	}

	c.JSON(http.StatusOK, FromSweepReport(report))
}

func (h *SweepHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/sweeps", h.RunSweep)
}
