package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"
)

func TestIsNotFound(t *testing.T) {
	t.Run("matches wrapped no rows", func(t *testing.T) {
		if !isNotFound(fmt.Errorf("get club: %w", sql.ErrNoRows)) {
			t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		if isNotFound(fakeErr("pq: relation clubs does not exist")) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestNullHelpers(t *testing.T) {
	if nullInt64(0).Valid {
		t.Fatalf("zero id must be NULL")
	}
	if got := nullInt64(7); !got.Valid || got.Int64 != 7 {
		t.Fatalf("unexpected null int64 %+v", got)
	}
	if nullString("").Valid {
		t.Fatalf("empty string must be NULL")
	}
	if nullTimePtr(sql.NullTime{}) != nil {
		t.Fatalf("expected nil time for NULL")
	}

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	if got := nullTimePtr(sql.NullTime{Time: now, Valid: true}); got == nil || !got.Equal(now) {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestResultRowToDomain(t *testing.T) {
	res := resultRow{Code: 1, Message: "insufficient budget"}.toDomain()
	if res.OK() || res.Message != "insufficient budget" {
		t.Fatalf("unexpected result %+v", res)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
