package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jusunglee/railmap-go/internal/logging"
	"github.com/jusunglee/railmap-go/internal/metrics"
)

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.RequestIDFromContext(r.Context())
	}))

	t.Run("generates an id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/routes", nil))

		id := rec.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, seen)
	})

	t.Run("keeps an upstream id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/routes", nil)
		req.Header.Set(RequestIDHeader, "upstream-1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "upstream-1", rec.Header().Get(RequestIDHeader))
		assert.Equal(t, "upstream-1", seen)
	})
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	logging.Init(logging.Config{Level: "info", Format: "json", Output: &buf})
	t.Cleanup(func() { logging.Init(logging.DefaultConfig()) })

	h := RequestID(AccessLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})))

	req := httptest.NewRequest(http.MethodGet, "/elements?top=30", nil)
	req.Header.Set(RequestIDHeader, "abc")
	h.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Request handled", entry["message"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/elements?top=30", entry["uri"])
	assert.EqualValues(t, http.StatusTeapot, entry["status"])
	assert.EqualValues(t, 15, entry["bytes"])
	assert.Equal(t, "abc", entry["request_id"])
}

func TestPrometheus(t *testing.T) {
	r := mux.NewRouter()
	r.Use(Prometheus)
	r.HandleFunc("/hover/{kind}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}).Methods(http.MethodPost)

	counter := metrics.APIRequestsTotal.WithLabelValues("POST", "/hover/{kind}", "400")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/hover/node", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestResponseWriter(t *testing.T) {
	t.Run("first status wins", func(t *testing.T) {
		rw := wrap(httptest.NewRecorder())
		rw.WriteHeader(http.StatusNotFound)
		rw.WriteHeader(http.StatusOK)

		assert.Equal(t, http.StatusNotFound, rw.status)
	})

	t.Run("implicit ok on write", func(t *testing.T) {
		rw := wrap(httptest.NewRecorder())
		_, err := rw.Write([]byte("hi"))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, rw.status)
		assert.Equal(t, 2, rw.bytes)
	})

	t.Run("wrap is idempotent", func(t *testing.T) {
		rw := wrap(httptest.NewRecorder())
		assert.Same(t, rw, wrap(rw))
	})
}
