package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	apperrors "bookd/pkg/errors"
	"bookd/pkg/middleware"
	"bookd/pkg/model"
)

func TestPostJSON_RetriesOn500ThenSucceeds(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewHttpClient(server.URL, time.Second, 3)
	resp, err := c.PostJSON(context.Background(), "/x", map[string]string{"a": "b"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Errorf("expected 3 attempts, got %d", got)
	}
}

func TestPostJSON_DoesNotRetryOn409(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"Room is not available for the selected dates","code":"CONFLICT"}`))
	}))
	defer server.Close()

	c := NewHttpClient(server.URL, time.Second, 3)
	resp, err := c.PostJSON(context.Background(), "/x", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409, got %d", resp.StatusCode)
	}
	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Errorf("a 409 is definitive, expected 1 attempt, got %d", got)
	}
}

func TestPostJSON_BudgetExhaustionReturnsLastResponse(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := NewHttpClient(server.URL, time.Second, 2)
	resp, err := c.PostJSON(context.Background(), "/x", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", resp.StatusCode)
	}
	if got := atomic.LoadInt32(&attempts); got != 2 {
		t.Errorf("expected 2 attempts, got %d", got)
	}
}

func TestPostJSON_CancelledContextStopsRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewHttpClient(server.URL, time.Second, 5)
	start := time.Now()
	_, err := c.PostJSON(ctx, "/x", nil, nil)
	if err == nil {
		t.Fatal("expected an error after cancellation")
	}
	if time.Since(start) > time.Second {
		t.Error("cancellation must stop retries promptly")
	}
}

func TestPostJSON_AttemptTimeoutIsRetried(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	c := NewHttpClient(server.URL, 50*time.Millisecond, 2)
	_, err := c.PostJSON(context.Background(), "/x", nil, nil)
	if err == nil {
		t.Fatal("expected an error when every attempt times out")
	}
	if got := atomic.LoadInt32(&attempts); got != 2 {
		t.Errorf("expected 2 attempts, got %d", got)
	}
}

func TestHotelClient_PropagatesCorrelationHeader(t *testing.T) {
	var gotHeader, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get(middleware.CorrelationHeader)
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"l1","request_id":"req-A","status":"HELD"}`))
	}))
	defer server.Close()

	c := NewHotelClient(server.URL, time.Second, 1)
	start := model.Today().AddDays(1)
	end := start.AddDays(2)

	if err := c.Hold(context.Background(), "room-7", "req-A", start, end, "booking-abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotHeader != "booking-abc" {
		t.Errorf("expected correlation header booking-abc, got %q", gotHeader)
	}
	if gotPath != "/rooms/room-7/hold" {
		t.Errorf("unexpected path %q", gotPath)
	}
}

func TestHotelClient_ClassifiesConflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"Room is not available for the selected dates","code":"CONFLICT"}`))
	}))
	defer server.Close()

	c := NewHotelClient(server.URL, time.Second, 1)
	err := c.Hold(context.Background(), "room-7", "req-B", model.Today().AddDays(1), model.Today().AddDays(3), "")
	if !apperrors.IsCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestHotelClient_ClassifiesStateError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"Hold already released","code":"INVALID_STATE"}`))
	}))
	defer server.Close()

	c := NewHotelClient(server.URL, time.Second, 1)
	err := c.Confirm(context.Background(), "room-7", "req-A", "")
	if !apperrors.IsCode(err, apperrors.CodeState) {
		t.Fatalf("expected INVALID_STATE, got %v", err)
	}
}

func TestHotelClient_ClassifiesNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Hold not found","code":"NOT_FOUND"}`))
	}))
	defer server.Close()

	c := NewHotelClient(server.URL, time.Second, 1)
	err := c.Release(context.Background(), "room-7", "req-missing", "")
	if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestHotelClient_ListRooms(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rooms" || r.Method != http.MethodGet {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":[{"id":"r1","number":"101","times_booked":3},{"id":"r2","number":"102","times_booked":1}]}`))
	}))
	defer server.Close()

	c := NewHotelClient(server.URL, time.Second, 1)
	rooms, err := c.ListRooms(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rooms) != 2 || rooms[0].ID != "r1" || rooms[1].TimesBooked != 1 {
		t.Errorf("unexpected rooms: %+v", rooms)
	}
}
