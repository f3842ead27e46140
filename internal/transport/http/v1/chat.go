package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"godchat/internal/domain"
)

// errorEnvelope is the failure response body.
type errorEnvelope struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// Chat relays one conversation request through the orchestrator.
// POST /v1/chat
func (h *Handler) Chat(c echo.Context) error {
	var req domain.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorEnvelope{
			Error:  string(domain.ErrInvalidRequest),
			Detail: "invalid request body",
		})
	}

	resp, err := h.service.Chat(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// writeError maps the error taxonomy onto HTTP statuses:
//
//	InvalidRequest                  -> 400
//	UpstreamError                   -> 502
//	GatewayUnavailable              -> 503
//	PersistenceError, EmptyCompletion -> 500
func writeError(c echo.Context, err error) error {
	var de *domain.Error
	if !errors.As(err, &de) {
		return c.JSON(http.StatusInternalServerError, errorEnvelope{
			Error:  "internal_error",
			Detail: err.Error(),
		})
	}

	status := http.StatusInternalServerError
	switch de.Kind {
	case domain.ErrInvalidRequest:
		status = http.StatusBadRequest
	case domain.ErrUpstream:
		status = http.StatusBadGateway
	case domain.ErrGatewayUnavailable:
		status = http.StatusServiceUnavailable
	case domain.ErrPersistence, domain.ErrEmptyCompletion:
		status = http.StatusInternalServerError
	}

	return c.JSON(status, errorEnvelope{
		Error:  string(de.Kind),
		Detail: de.Message,
	})
}
