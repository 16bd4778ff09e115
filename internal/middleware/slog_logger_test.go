package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/actorvote/internal/middleware"
)

func serveLogged(t *testing.T, h http.HandlerFunc, method, path string) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	req := httptest.NewRequest(method, path, nil)
	// Stand in for chimiddleware.RequestID.
	req = req.WithContext(context.WithValue(req.Context(), chimiddleware.RequestIDKey, "test-req-id"))

	middleware.NewSlogLogger(logger)(h).ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestSlogLogger_logsRequestFields(t *testing.T) {
	entry := serveLogged(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}, http.MethodPost, "/actors")

	require.Equal(t, "INFO", entry["level"])
	require.Equal(t, "POST", entry["method"])
	require.Equal(t, "/actors", entry["path"])
	require.EqualValues(t, http.StatusCreated, entry["status"])
	require.EqualValues(t, 11, entry["bytes"])
	require.Equal(t, "test-req-id", entry["request_id"])
	require.NotNil(t, entry["duration_ms"])
}

// TestSlogLogger_implicitOK covers handlers such as upvote that return 200
// without calling WriteHeader.
func TestSlogLogger_implicitOK(t *testing.T) {
	entry := serveLogged(t, func(http.ResponseWriter, *http.Request) {}, http.MethodPatch, "/actors/x/upvote")

	require.EqualValues(t, http.StatusOK, entry["status"])
}

func TestSlogLogger_serverErrorAtErrorLevel(t *testing.T) {
	entry := serveLogged(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, http.MethodGet, "/rank")

	require.Equal(t, "ERROR", entry["level"])
}
