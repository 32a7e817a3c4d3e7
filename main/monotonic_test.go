package main

import (
	"testing"
	"time"
)

func TestHumanize(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start.Add(3 * time.Hour)
	m := &monotonic{start: start, now: func() time.Time { return now }}

	if m.Uptime() != 3*time.Hour {
		t.Fatalf("uptime %v", m.Uptime())
	}
	if got := m.HumanizeUptime(); got != "3 hours" {
		t.Fatalf("HumanizeUptime = %q", got)
	}
	if got := m.HumanizeTime(now.Add(-2 * time.Minute)); got != "2 minutes ago" {
		t.Fatalf("HumanizeTime = %q", got)
	}
}
