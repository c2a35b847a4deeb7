package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	h := middleware.RequestID(StructuredLogger(l, "/ping")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fail" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("ok"))
	})))

	t.Run("logs completed request", func(t *testing.T) {
		buf.Reset()
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/content/options", nil))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "Request completed", entry["msg"])
		assert.Equal(t, "INFO", entry["level"])
		assert.EqualValues(t, http.StatusOK, entry["status"])
		assert.NotEmpty(t, entry["req_id"])
	})

	t.Run("server errors log at error level", func(t *testing.T) {
		buf.Reset()
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))
		assert.True(t, strings.Contains(buf.String(), `"level":"ERROR"`))
	})

	t.Run("skipped paths are silent", func(t *testing.T) {
		buf.Reset()
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Empty(t, buf.String())
	})
}
