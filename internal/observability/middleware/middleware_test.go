package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-reminder-dispatch/internal/observability/logging"
	"github.com/KasumiMercury/primind-reminder-dispatch/internal/observability/middleware"
)

func setupRouter(seen *context.Context) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(middleware.PanicRecoveryGin())
	router.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:  []string{"/ping"},
		Module:     logging.ModuleReminder,
		JobRoutes:  map[string]string{"/sweeps": "reminder.sweep"},
		TracerName: "test",
	}))

	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	router.GET("/ctx", func(c *gin.Context) {
		*seen = c.Request.Context()
		c.Status(http.StatusNoContent)
	})
	router.POST("/sweeps", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/panic", func(_ *gin.Context) { panic("boom") })

	return router
}

func TestGinRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "valid id is echoed", incoming: "req-123", keep: true},
		{name: "missing id is generated", incoming: "", keep: false},
		{name: "unsafe id is replaced", incoming: "bad id\n", keep: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen context.Context

			router := setupRouter(&seen)

			req := httptest.NewRequest(http.MethodGet, "/ctx", nil)
			if tt.incoming != "" {
				req.Header.Set("x-request-id", tt.incoming)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusNoContent, w.Code)

			got := w.Header().Get("x-request-id")
			if tt.keep {
				assert.Equal(t, tt.incoming, got)
			} else {
				_, err := uuid.Parse(got)
				assert.NoError(t, err)
			}

			require.NotNil(t, seen)
			assert.Equal(t, got, logging.RequestID(seen))
			assert.Equal(t, logging.ModuleReminder, logging.ModuleFrom(seen))
		})
	}
}

func TestGinSkipPaths(t *testing.T) {
	var seen context.Context

	router := setupRouter(&seen)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("x-request-id"))
}

func TestPanicRecoveryGin(t *testing.T) {
	var seen context.Context

	router := setupRouter(&seen)

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal_error","message":"internal server error"}`, w.Body.String())
}
