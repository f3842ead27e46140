package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"godchat/internal/config"
	"godchat/internal/domain"
	"godchat/internal/policy"
	"godchat/internal/service"
	"godchat/internal/store"
)

func newGuardedHandler(t *testing.T) (*Handler, store.Store) {
	t.Helper()
	db, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	require.NoError(t, err)

	cfg := &config.Config{Persona: "persona", HistoryWindow: 10}
	svc := service.New(db, &fakeGateway{}, cfg, nil)
	return NewHandler(svc, engine), db
}

func getTurns(t *testing.T, h *Handler, sessionID, role, query string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/"+sessionID+"/turns"+query, nil)
	if role != "" {
		req.Header.Set("X-Caller-Role", role)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("session_id")
	c.SetParamValues(sessionID)

	require.NoError(t, h.GetSessionTurns(c))
	return rec
}

func TestGetSessionTurnsAllowsAdmin(t *testing.T) {
	h, db := newGuardedHandler(t)

	_, err := db.Append(context.Background(), "s1", domain.RoleUser, "hello")
	require.NoError(t, err)
	_, err = db.Append(context.Background(), "s1", domain.RoleAssistant, "hi")
	require.NoError(t, err)

	rec := getTurns(t, h, "s1", "admin", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Turns []domain.Turn `json:"turns"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Turns, 2)
	assert.Equal(t, "hello", resp.Turns[0].Content)
	assert.Equal(t, "hi", resp.Turns[1].Content)
}

func TestGetSessionTurnsDeniesAnonymous(t *testing.T) {
	h, _ := newGuardedHandler(t)

	rec := getTurns(t, h, "s1", "", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetSessionTurnsDeniesNonAdmin(t *testing.T) {
	h, _ := newGuardedHandler(t)

	rec := getTurns(t, h, "s1", "viewer", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetSessionTurnsLimit(t *testing.T) {
	h, db := newGuardedHandler(t)

	for _, content := range []string{"one", "two", "three"} {
		_, err := db.Append(context.Background(), "s1", domain.RoleUser, content)
		require.NoError(t, err)
	}

	rec := getTurns(t, h, "s1", "admin", "?limit=2")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Turns []domain.Turn `json:"turns"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Turns, 2)
	// The most recent two, still oldest-first.
	assert.Equal(t, "two", resp.Turns[0].Content)
	assert.Equal(t, "three", resp.Turns[1].Content)
}

func TestGetSessionTurnsEmptySession(t *testing.T) {
	h, _ := newGuardedHandler(t)

	rec := getTurns(t, h, "ghost", "admin", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Turns []domain.Turn `json:"turns"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Turns)
}
