package options

import (
	"strings"
	"testing"
	"time"

	"tableflip.dev/walkjournal/pkg/entry"
)

func TestParseDate(t *testing.T) {
	today := entry.NewDate(2021, time.January, 2)
	tests := []struct {
		in   string
		want entry.Date
	}{
		{"", entry.Date{}},
		{"2020-2-28", entry.NewDate(2020, time.February, 28)},
		{"2021-01-02", entry.NewDate(2021, time.January, 2)},
		{"1/2", entry.NewDate(2021, time.January, 2)},
		{"12/30", entry.NewDate(2020, time.December, 30)},
	}
	for _, tt := range tests {
		got, err := parseDate(tt.in, today)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("%q: expected %s, got %s", tt.in, tt.want, got)
		}
	}
	if _, err := parseDate("yesterday", today); err == nil {
		t.Fatal("expected error for unparseable date")
	}
}

func TestWindowSince(t *testing.T) {
	o := &WindowOptions{}
	since, label, err := o.Since()
	if err != nil || !since.IsZero() || label != "all" {
		t.Fatalf("empty window should be open: %s %s %v", since, label, err)
	}

	o.Last = "2w"
	since, label, err = o.Since()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != "2w" || since != entry.Today().AddDays(-13) {
		t.Fatalf("unexpected window %s %s", since, label)
	}
}

func TestWrap(t *testing.T) {
	out := Wrap("a few   words that will\nbe wrapped", 12)
	for _, line := range strings.Split(out, "\n") {
		if len(line) > 12 {
			t.Fatalf("line too long: %q", line)
		}
	}
	if !strings.HasPrefix(out, "a few words") {
		t.Fatalf("expected whitespace to collapse, got %q", out)
	}
}
