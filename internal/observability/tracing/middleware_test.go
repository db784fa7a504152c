package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func installRecorder(t *testing.T) (*tracetest.InMemoryExporter, *sdktrace.TracerProvider) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() {
		otel.SetTracerProvider(sdktrace.NewTracerProvider())
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator())
	})
	return exporter, tp
}

func TestMiddleware_SpanNamedAfterNormalizedRoute(t *testing.T) {
	exporter, tp := installRecorder(t)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/entries/2024-01-01", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name != "GET /api/entries/:date" {
		t.Errorf("span name = %q", spans[0].Name)
	}

	found := map[string]bool{}
	for _, attr := range spans[0].Attributes {
		found[string(attr.Key)] = true
		if attr.Key == "http.status_code" && attr.Value.AsInt64() != 200 {
			t.Errorf("http.status_code = %d", attr.Value.AsInt64())
		}
	}
	for _, key := range []string{"http.method", "http.route", "http.path", "http.status_code"} {
		if !found[key] {
			t.Errorf("attribute %s not found", key)
		}
	}
}

func TestMiddleware_AddsTraceIDToResponse(t *testing.T) {
	installRecorder(t)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	if got := rr.Header().Get("X-Trace-Id"); len(got) != 32 {
		t.Errorf("X-Trace-Id = %q, want 32 hex chars", got)
	}
}

func TestMiddleware_PropagatesTraceContext(t *testing.T) {
	exporter, tp := installRecorder(t)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/api/entries", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if got := spans[0].SpanContext.TraceID().String(); got != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("trace id = %s", got)
	}
}

func TestMiddleware_ErrorAttributeOnlyFor5xx(t *testing.T) {
	tests := []struct {
		status    int
		wantError bool
	}{
		{http.StatusInternalServerError, true},
		{http.StatusNotFound, false},
		{http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			exporter, tp := installRecorder(t)

			handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/entries", nil))
			_ = tp.ForceFlush(context.Background())

			spans := exporter.GetSpans()
			if len(spans) != 1 {
				t.Fatalf("expected 1 span, got %d", len(spans))
			}
			gotError := false
			for _, attr := range spans[0].Attributes {
				if attr.Key == "error" && attr.Value.AsBool() {
					gotError = true
				}
			}
			if gotError != tt.wantError {
				t.Errorf("error attribute = %v, want %v", gotError, tt.wantError)
			}
		})
	}
}

func TestSetup_InstallsProvider(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	shutdown := Setup(sdktrace.NewSimpleSpanProcessor(exporter))
	t.Cleanup(func() {
		otel.SetTracerProvider(sdktrace.NewTracerProvider())
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator())
	})

	_, span := GetTracer().Start(context.Background(), "probe")
	if !span.SpanContext().IsValid() {
		t.Fatal("span context should be valid after Setup")
	}
	span.End()

	if len(exporter.GetSpans()) != 1 {
		t.Fatalf("expected exported span, got %d", len(exporter.GetSpans()))
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown err=%v", err)
	}
}
