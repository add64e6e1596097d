package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/transfer-market/internal/usecase"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	return body
}

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(t.Context(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := decodeEnvelope(t, rec)
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantStatus string
	}{
		{name: "invalid input", err: fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput), wantCode: http.StatusBadRequest, wantStatus: "INVALID_ARGUMENT"},
		{name: "not found", err: fmt.Errorf("%w: player=9", usecase.ErrNotFound), wantCode: http.StatusNotFound, wantStatus: "NOT_FOUND"},
		{name: "unauthorized", err: usecase.ErrUnauthorized, wantCode: http.StatusUnauthorized, wantStatus: "UNAUTHENTICATED"},
		{name: "forbidden", err: usecase.ErrForbidden, wantCode: http.StatusForbidden, wantStatus: "PERMISSION_DENIED"},
		{name: "conflict", err: fmt.Errorf("%w: already signed", usecase.ErrConflict), wantCode: http.StatusConflict, wantStatus: "ABORTED"},
		{name: "dependency", err: fmt.Errorf("%w: store down", usecase.ErrDependencyUnavailable), wantCode: http.StatusServiceUnavailable, wantStatus: "UNAVAILABLE"},
		{name: "unknown", err: errors.New("boom"), wantCode: http.StatusInternalServerError, wantStatus: "INTERNAL"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(t.Context(), rec, tc.err)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected status %d, got %d", tc.wantCode, rec.Code)
			}
			body := decodeEnvelope(t, rec)
			errorObj, ok := body["error"].(map[string]any)
			if !ok {
				t.Fatalf("expected error object in response")
			}
			if got, _ := errorObj["status"].(string); got != tc.wantStatus {
				t.Fatalf("expected error status %s, got %v", tc.wantStatus, errorObj["status"])
			}
		})
	}
}

func TestWriteError_CooldownSetsRetryAfter(t *testing.T) {
	rec := httptest.NewRecorder()
	err := fmt.Errorf("submit offer: %w", &usecase.CooldownError{
		PlayerID:  203,
		Until:     time.Now().Add(41 * time.Second),
		Remaining: 40200 * time.Millisecond,
	})
	writeError(t.Context(), rec, err)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "41" {
		t.Fatalf("expected Retry-After=41, got %q", got)
	}

	body := decodeEnvelope(t, rec)
	items := body["error"].(map[string]any)["errors"].([]any)
	item := items[0].(map[string]any)
	if got, _ := item["retryAfterSeconds"].(float64); got != 41 {
		t.Fatalf("expected retryAfterSeconds=41, got %v", item["retryAfterSeconds"])
	}
	if got := item["reason"]; got != "cooldownActive" {
		t.Fatalf("unexpected reason %v", got)
	}
}

func TestWriteError_RemoteRejectionCarriesStoreMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(t.Context(), rec, &usecase.RemoteRejectionError{Operation: "purchase", Code: 3, Message: "transfer window closed"})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	item := body["error"].(map[string]any)["errors"].([]any)[0].(map[string]any)
	if item["message"] != "transfer window closed" {
		t.Fatalf("unexpected message %v", item["message"])
	}
	if got, _ := item["remoteCode"].(float64); got != 3 {
		t.Fatalf("expected remoteCode=3, got %v", item["remoteCode"])
	}
}
