package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// GetSessionTurns returns a session transcript, oldest-first. The caller
// identity comes from the authentication collaborator in front of this
// service (the X-Caller-Role header here); the policy engine decides access.
// GET /v1/sessions/:session_id/turns
func (h *Handler) GetSessionTurns(c echo.Context) error {
	sessionID := c.Param("session_id")
	limit := 0
	if l := c.QueryParam("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil {
			limit = val
		}
	}

	ctx := c.Request().Context()

	if h.policy != nil {
		decision, err := h.policy.Evaluate(ctx, map[string]interface{}{
			"action":     "history.read",
			"role":       c.Request().Header.Get("X-Caller-Role"),
			"session_id": sessionID,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, errorEnvelope{
				Error:  "policy_error",
				Detail: err.Error(),
			})
		}
		if decision != "allow" {
			return c.JSON(http.StatusForbidden, errorEnvelope{
				Error: "forbidden",
			})
		}
	}

	turns, err := h.service.History(ctx, sessionID, limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"turns": turns,
	})
}
