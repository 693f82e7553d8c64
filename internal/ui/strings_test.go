package ui

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"Paris, France", 0, "Paris, France"},
		{"Paris, France", 20, "Paris, France"},
		{"Paris, France", 6, "Paris…"},
		{"  Lyon  ", 10, "Lyon"},
		{"Oslo", 1, "O"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestTruncateMiddle(t *testing.T) {
	got := truncateMiddle("/home/user/.local/state/nimbus/nimbus.log", 15)
	if len([]rune(got)) != 15 {
		t.Fatalf("truncateMiddle length = %d, want 15 (%q)", len([]rune(got)), got)
	}
	if got[:7] != "/home/u" || got[len(got)-7:] != "bus.log" {
		t.Fatalf("truncateMiddle = %q, want both ends kept", got)
	}
	if got := truncateMiddle("short", 15); got != "short" {
		t.Fatalf("truncateMiddle(short) = %q", got)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("°C", 4); got != "°C  " {
		t.Fatalf("padRight = %q, want %q", got, "°C  ")
	}
	if got := padRight("toolong", 3); got != "toolong" {
		t.Fatalf("padRight = %q, want unchanged", got)
	}
}
