package log

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(Config{Level: 0}, &buf)

	h := middleware.RequestID(RequestLogger(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("oops"))
	})))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "http request", entry["msg"])
	assert.Equal(t, "/api/admin/stats", entry["path"])
	assert.Equal(t, 500.0, entry["status"])
	assert.Equal(t, 4.0, entry["bytes"])
	assert.NotEmpty(t, entry["request_id"])
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(Config{Level: 0}, &buf)
	l.Debug("hidden")
	assert.Zero(t, buf.Len())

	l = NewWithWriter(Config{Level: -4}, &buf)
	l.Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}
