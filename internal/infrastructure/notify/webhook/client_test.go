package webhook

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/transfer-market/internal/domain/notification"
	"github.com/riskibarqy/transfer-market/internal/platform/logging"
	"github.com/riskibarqy/transfer-market/internal/platform/resilience"
	"github.com/riskibarqy/transfer-market/internal/usecase"
)

func sampleNotification() notification.Notification {
	return notification.Notification{
		ID:        42,
		UserID:    "demo-manager-1",
		Kind:      notification.KindNegotiationUnblocked,
		Title:     "Negotiation available",
		Message:   "You can make a new offer for Andrés Quintero",
		URL:       "/market/players/203",
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestClientSend_PostsPayload(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer hook-secret" {
			t.Errorf("unexpected authorization: %q", got)
		}
		if got := r.Header.Get("Idempotency-Key"); got != "notification-42" {
			t.Errorf("unexpected idempotency key: %q", got)
		}
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		if err := sonic.Unmarshal(raw, &body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["kind"] != "negotiation_unblocked" || body["user_id"] != "demo-manager-1" {
			t.Errorf("unexpected body: %v", body)
		}
		if body["created_at"] != "2026-03-01T10:00:00Z" {
			t.Errorf("unexpected created_at: %v", body["created_at"])
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client, err := NewClient(ClientConfig{URL: srv.URL + "/hooks/notify", Token: "hook-secret", Logger: logging.NewNop()})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if err := client.Send(t.Context(), sampleNotification()); err != nil {
		t.Fatalf("send: %v", err)
	}
}

func TestClientSend_EachBodyIsOneDocument(t *testing.T) {
	t.Parallel()

	received := make(chan []byte, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		received <- raw
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := NewClient(ClientConfig{URL: srv.URL, Logger: logging.NewNop()})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	long := sampleNotification()
	long.Message = string(bytes.Repeat([]byte("x"), 4096))
	short := sampleNotification()
	short.ID = 43
	short.Message = "ok"

	for _, n := range []notification.Notification{long, short, long, short} {
		if err := client.Send(t.Context(), n); err != nil {
			t.Fatalf("send %d: %v", n.ID, err)
		}
		raw := <-received
		var body map[string]any
		if err := sonic.Unmarshal(bytes.TrimSpace(raw), &body); err != nil {
			t.Fatalf("decode body of %d: %v", n.ID, err)
		}
		if body["message"] != n.Message || body["id"] != float64(n.ID) {
			t.Fatalf("body of %d carries %v", n.ID, body["id"])
		}
	}
}

func TestNewClient_RejectsInvalidURL(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "ftp://example.com", "http://"} {
		if _, err := NewClient(ClientConfig{URL: raw}); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestClientSend_ClientErrorDoesNotTripBreaker(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client, err := NewClient(ClientConfig{
		URL:            srv.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Minute},
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	for i := 0; i < 3; i++ {
		err := client.Send(t.Context(), sampleNotification())
		if err == nil || isCircuitFailure(err) {
			t.Fatalf("expected permanent failure, got %v", err)
		}
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 calls, got %d", calls.Load())
	}
}

func TestClientSend_ServerErrorsOpenBreaker(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, err := NewClient(ClientConfig{
		URL:            srv.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: time.Minute},
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := client.Send(t.Context(), sampleNotification()); !isCircuitFailure(err) {
			t.Fatalf("expected transient failure, got %v", err)
		}
	}
	err = client.Send(t.Context(), sampleNotification())
	if !errors.Is(err, usecase.ErrDependencyUnavailable) || !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected open circuit, got %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", calls.Load())
	}
}

func TestClientSend_ExpiredContext(t *testing.T) {
	t.Parallel()

	client, err := NewClient(ClientConfig{URL: "http://127.0.0.1:1"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	ctx, cancel := context.WithDeadline(t.Context(), time.Now().Add(-time.Second))
	defer cancel()

	if err := client.Send(ctx, sampleNotification()); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
