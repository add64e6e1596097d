package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/bytedance/sonic"
)

func TestNewJSON_WritesKeyValuePairs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewJSON(LevelInfo, WithOutput(&buf), WithService("transfer-market")).Named("negotiation")

	logger.With("user_id", "u1").Warn("offer rejected", "player_id", int64(10), "error", errors.New("too low"), "dangling")
	logger.Debug("filtered out")

	var entry map[string]any
	if err := sonic.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("decode log entry %q: %v", buf.String(), err)
	}

	checks := map[string]any{
		"msg":       "offer rejected",
		"level":     "WARN",
		"logger":    "negotiation",
		"service":   "transfer-market",
		"user_id":   "u1",
		"player_id": float64(10),
		"error":     "too low",
	}
	for key, want := range checks {
		if entry[key] != want {
			t.Fatalf("field %s = %v, want %v", key, entry[key], want)
		}
	}
	if _, ok := entry["dangling"]; !ok {
		t.Fatalf("expected dangling key to be kept, got %v", entry)
	}
	if bytes.Count(buf.Bytes(), []byte("\n")) != 1 {
		t.Fatalf("expected debug entry to be filtered, got %s", buf.String())
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if err := logger.Sync(); err != nil {
		t.Fatalf("sync nil logger: %v", err)
	}
}
