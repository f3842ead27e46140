// Package v1 provides the HTTP handlers for the chat relay.
package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"godchat/internal/observability"
	"godchat/internal/policy"
	"godchat/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
	policy  *policy.Engine
}

// NewHandler creates a new handler. policyEngine guards the transcript
// endpoint; nil leaves it open (tests, trusted deployments).
func NewHandler(svc *service.Service, policyEngine *policy.Engine) *Handler {
	return &Handler{
		service: svc,
		policy:  policyEngine,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/v1/chat", h.Chat)
	e.GET("/v1/sessions/:session_id/turns", h.GetSessionTurns)

	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(observability.MetricsHandler()))
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}
