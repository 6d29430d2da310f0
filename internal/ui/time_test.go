package ui

import (
	"testing"
	"time"
)

func TestFormatDurationShort(t *testing.T) {
	cases := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{name: "negative", duration: -time.Minute, want: "0s"},
		{name: "seconds", duration: 45 * time.Second, want: "45s"},
		{name: "minutes", duration: 2*time.Minute + 10*time.Second, want: "2m"},
		{name: "hours", duration: 3*time.Hour + 5*time.Minute, want: "3h"},
		{name: "days", duration: 48 * time.Hour, want: "2d"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FormatDurationShort(tc.duration)
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestFormatTimeAgo(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	if got := FormatTimeAgo(now.Add(-2*time.Minute), now); got != "2m ago" {
		t.Fatalf("expected 2m ago, got %s", got)
	}
	if got := FormatTimeAgo(time.Time{}, now); got != "-" {
		t.Fatalf("expected - for zero time, got %s", got)
	}
}

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("EST", -5*60*60)

	got, err := ParseDate("2025-03-12", loc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := time.Date(2025, time.March, 12, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if FormatDate(got) != "2025-03-12" {
		t.Fatalf("FormatDate round trip = %q", FormatDate(got))
	}

	if _, err := ParseDate("03/12/2025", loc); err == nil {
		t.Fatal("expected error for wrong layout")
	}
}
