package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raselahmedweb/innovensky/pkg/logger"
)

func jsonLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestRequestLogging_GeneratesCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter("test", "info", &buf)

	var inCtx string
	h := RequestLogging(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inCtx = logger.CorrelationIDFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/services", nil))

	id := rec.Header().Get(CorrelationHeader)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, inCtx)

	lines := jsonLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "http request", lines[0]["msg"])
	assert.Equal(t, float64(http.StatusTeapot), lines[0]["status"])
	assert.Equal(t, "/services", lines[0]["path"])
}

func TestRequestLogging_ReusesInboundCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	h := RequestLogging(logger.NewWithWriter("test", "info", &buf))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(CorrelationHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(CorrelationHeader))
	assert.Equal(t, "abc-123", jsonLines(t, &buf)[0]["correlation_id"])
}

func TestRequestLogging_ServerErrorsLogAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	h := RequestLogging(logger.NewWithWriter("test", "info", &buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "ERROR", jsonLines(t, &buf)[0]["level"])
}

func TestRequestLogger_StoresEnrichedLogger(t *testing.T) {
	var buf bytes.Buffer
	base := logger.NewWithWriter("test", "info", &buf)

	h := RequestLogging(slog.New(slog.DiscardHandler))(RequestLogger(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context()).InfoContext(r.Context(), "inside handler")
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(CorrelationHeader, "corr-9")
	h.ServeHTTP(httptest.NewRecorder(), req)

	lines := jsonLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "inside handler", lines[0]["msg"])
	assert.Equal(t, "corr-9", lines[0]["correlation_id"])
}
