package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/triplog/internal/handler"
)

// TestGetHealth_returns200WithOKStatus verifies that GET /healthz returns
// HTTP 200 and a JSON body of {"status":"ok"}.
func TestGetHealth_returns200WithOKStatus(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	rec := serve(handler.Services{}, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "ok", body.Status)
}

// TestRoutes_UnwiredServiceIsNotMounted verifies that a nil service leaves
// its routes unregistered rather than panicking.
func TestRoutes_UnwiredServiceIsNotMounted(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/trips", nil)

	rec := serve(handler.Services{}, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
