package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/KasumiMercury/primind-reminder-dispatch/internal/app"
)

type ReminderHandler struct {
	useCase app.ReminderUseCase
}

func NewReminderHandler(useCase app.ReminderUseCase) *ReminderHandler {
	return &ReminderHandler{
		useCase: useCase,
	}
}

func (h *ReminderHandler) UpsertReminder(c *gin.Context) {
	slog.InfoContext(c.Request.Context(), "handling upsert reminder request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)

	var req UpsertReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(c.Request.Context(), "request validation failed",
			"error", err,
			"path", c.Request.URL.Path,
		)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Field:   firstInvalidField(err),
		})

		return
	}

	output, err := h.useCase.UpsertReminder(c.Request.Context(), app.UpsertReminderInput{
		UserID:    req.UserID,
		TimeOfDay: req.TimeOfDay,
		Timezone:  req.Timezone,
		Frequency: req.Frequency,
		Active:    req.Active,
	})
	if err != nil {
		h.handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, FromDTO(output))
}

func (h *ReminderHandler) GetReminder(c *gin.Context) {
	userID := c.Param("user_id")

	output, err := h.useCase.GetReminder(c.Request.Context(), app.GetReminderInput{
		UserID: userID,
	})
	if err != nil {
		h.handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, FromDTO(output))
}

// Unsubscribe accepts the token from the query string, a form body or a JSON
// body and answers with an HTML page since it is opened from an email link.
func (h *ReminderHandler) Unsubscribe(c *gin.Context) {
	var req UnsubscribeRequest
	if err := c.ShouldBind(&req); err != nil {
		slog.DebugContext(c.Request.Context(), "unsubscribe body not bound",
			"error", err,
		)
	}

	if req.Token == "" {
		req.Token = c.Query("token")
	}

	if req.Token == "" {
		renderPage(c, http.StatusBadRequest, "Unsubscribe failed", "Missing unsubscribe token.")

		return
	}

	if _, err := h.useCase.Unsubscribe(c.Request.Context(), app.UnsubscribeInput{Token: req.Token}); err != nil {
		if errors.Is(err, app.ErrInvalidUnsubscribeToken) {
			renderPage(c, http.StatusBadRequest, "Unsubscribe failed", "Invalid or expired unsubscribe token.")

			return
		}

		renderPage(c, http.StatusInternalServerError, "Unsubscribe failed",
			"Something went wrong. Please try again later.")

		return
	}

	renderPage(c, http.StatusOK, "You are unsubscribed", "You will no longer receive reminder emails.")
}

func (h *ReminderHandler) handleError(c *gin.Context, err error) {
	var validationErr *app.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: validationErr.Message,
			Field:   validationErr.Field,
		})

		return
	}

	if errors.Is(err, app.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "resource not found",
			Field:   "",
		})

		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "an internal error occurred",
		Field:   "",
	})
}

func firstInvalidField(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		return jsonFieldNames[validationErrs[0].Field()]
	}

	return ""
}

var jsonFieldNames = map[string]string{
	"UserID":    "user_id",
	"TimeOfDay": "time_of_day",
	"Timezone":  "timezone",
	"Frequency": "frequency",
}

func (h *ReminderHandler) RegisterRoutes(router *gin.RouterGroup) {
	reminders := router.Group("/reminders")
	{
		reminders.POST("", h.UpsertReminder)
		reminders.GET("/unsubscribe", h.Unsubscribe)
		reminders.POST("/unsubscribe", h.Unsubscribe)
		reminders.GET("/:user_id", h.GetReminder)
	}
}
