package main

import (
	"strings"
	"testing"
)

func TestParseSteps(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    int
		wantErr bool
	}{
		{name: "default one step", want: 1},
		{name: "explicit", args: []string{" 3 "}, want: 3},
		{name: "zero", args: []string{"0"}, wantErr: true},
		{name: "garbage", args: []string{"all"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseSteps(tc.args)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %v", tc.args)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Fatalf("parseSteps(%v)=%d,%v want %d", tc.args, got, err, tc.want)
			}
		})
	}
}

func TestParseVersionRejectsNegative(t *testing.T) {
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	if v, err := parseVersion("2"); err != nil || v != 2 {
		t.Fatalf("parseVersion(2)=%d,%v", v, err)
	}
}

func TestNormalizeDBURL(t *testing.T) {
	got := normalizeDBURL("postgres://u:p@localhost:5432/transfer_market?sslmode=disable", true)
	if !strings.Contains(got, "disable_prepared_binary_result=yes") {
		t.Fatalf("expected flag in %q", got)
	}
	raw := "postgres://u:p@localhost:5432/transfer_market"
	if got := normalizeDBURL(raw, false); got != raw {
		t.Fatalf("expected url untouched, got %q", got)
	}
}

func TestRunRequiresDBURL(t *testing.T) {
	t.Setenv("DB_URL", "")
	if err := run(t.Context(), []string{"up"}, nil); err == nil || !strings.Contains(err.Error(), "DB_URL") {
		t.Fatalf("expected DB_URL error, got %v", err)
	}
}
