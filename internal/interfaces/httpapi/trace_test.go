package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestShouldTraceRequest(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "/healthz", want: false},
		{path: " /READYZ ", want: false},
		{path: "/livez", want: false},
		{path: "/v1/market/players", want: true},
		{path: "/v1/transfers/incoming", want: true},
		{path: "/docs", want: true},
		{path: "/", want: true},
	}

	for _, tt := range tests {
		if got := shouldTraceRequest(tt.path); got != tt.want {
			t.Fatalf("shouldTraceRequest(%q)=%v want=%v", tt.path, got, tt.want)
		}
	}
}

func TestShouldCreateHTTPAPISpan(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: "httpapi.Handler.SubmitOffer", want: true},
		{in: "httpapi.RequireAuth", want: false},
		{in: "httpapi.writeError", want: false},
	}

	for _, tt := range tests {
		if got := shouldCreateHTTPAPISpan(tt.in); got != tt.want {
			t.Fatalf("shouldCreateHTTPAPISpan(%q)=%v want=%v", tt.in, got, tt.want)
		}
	}
}

func TestStartSpan_WithoutParentIsNoop(t *testing.T) {
	ctx, span := startSpan(t.Context(), "httpapi.Handler.ListMarket")
	defer span.End()

	if span.IsRecording() {
		t.Fatalf("expected a non-recording span without a parent")
	}
	if ctx != t.Context() {
		t.Fatalf("expected the context to be returned unchanged")
	}
}

func TestRequestSpanName(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/players/203", nil)
	if got := requestSpanName("", req); got != "GET /v1/players/203" {
		t.Fatalf("unexpected span name %q", got)
	}

	req.Pattern = "GET /v1/players/{playerID}"
	if got := requestSpanName("", req); got != "GET /v1/players/{playerID}" {
		t.Fatalf("unexpected span name %q", got)
	}
}
