package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCorrelation_PropagatesInboundHeader(t *testing.T) {
	var seen string
	handler := Correlation()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CorrelationID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	req.Header.Set(CorrelationHeader, "booking-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen != "booking-123" {
		t.Errorf("expected context to carry booking-123, got %q", seen)
	}
	if got := rec.Header().Get(CorrelationHeader); got != "booking-123" {
		t.Errorf("expected the header echoed on the response, got %q", got)
	}
}

func TestCorrelation_MintsWhenAbsent(t *testing.T) {
	var seen string
	handler := Correlation()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CorrelationID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	if seen == "" {
		t.Error("expected a minted correlation id")
	}
	if rec.Header().Get(CorrelationHeader) != seen {
		t.Error("response header must match the context value")
	}
}

func TestCorrelationID_WithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if got := CorrelationID(req.Context()); got != "" {
		t.Errorf("expected empty id, got %q", got)
	}
}
