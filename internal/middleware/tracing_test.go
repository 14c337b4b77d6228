package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/travelplanner/backend/internal/middleware"
)

func tracedRouter(t *testing.T, status int) (http.Handler, *tracetest.SpanRecorder) {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	r := chi.NewRouter()
	r.Use(middleware.NewTracing(tp.Tracer("test"), propagation.TraceContext{}))
	r.Get("/api/trip/user/{userId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	})
	return r, rec
}

func attr(span sdktrace.ReadOnlySpan, key attribute.Key) attribute.Value {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value
		}
	}
	return attribute.Value{}
}

func TestTracing_NamesSpanByRoutePattern(t *testing.T) {
	h, spans := tracedRouter(t, http.StatusOK)

	req := httptest.NewRequest(http.MethodGet, "/api/trip/user/0d6c1f5e-7a54-4b0a-9d39-0a8b3a7f4c11", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	ended := spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "GET /api/trip/user/{userId}", ended[0].Name())
	assert.Equal(t, "/api/trip/user/{userId}", attr(ended[0], "http.route").AsString())
	assert.EqualValues(t, http.StatusOK, attr(ended[0], "http.response.status_code").AsInt64())
	assert.Equal(t, codes.Unset, ended[0].Status().Code)
}

func TestTracing_ContinuesPropagatedTrace(t *testing.T) {
	h, spans := tracedRouter(t, http.StatusOK)

	req := httptest.NewRequest(http.MethodGet, "/api/trip/user/abc", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	h.ServeHTTP(httptest.NewRecorder(), req)

	ended := spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", ended[0].SpanContext().TraceID().String())
	assert.Equal(t, "00f067aa0ba902b7", ended[0].Parent().SpanID().String())
}

func TestTracing_ServerErrorMarksSpan(t *testing.T) {
	h, spans := tracedRouter(t, http.StatusInternalServerError)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/trip/user/abc", nil))

	ended := spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
}
