//-------------------------------------------------------------------------
//
// martgen - Star Schema Data Mart Generator
//
// Copyright (c) 2025 - 2026, dmartlab
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"testing"
	"time"
)

func TestFakerDeterministicWithSeed(t *testing.T) {
	fa := NewFaker(12345)
	fb := NewFaker(12345)

	for i := 0; i < 100; i++ {
		if a, b := fa.FirstName(), fb.FirstName(); a != b {
			t.Fatalf("FirstName draw %d differs: %q vs %q", i, a, b)
		}
		if a, b := fa.Int(1, 1000), fb.Int(1, 1000); a != b {
			t.Fatalf("Int draw %d differs: %d vs %d", i, a, b)
		}
		if a, b := fa.Float64(0, 1), fb.Float64(0, 1); a != b {
			t.Fatalf("Float64 draw %d differs: %g vs %g", i, a, b)
		}
	}
}

func TestFakerIntRange(t *testing.T) {
	f := NewFaker(1)
	for i := 0; i < 1000; i++ {
		v := f.Int(1, 5)
		if v < 1 || v > 5 {
			t.Fatalf("Int(1, 5) returned %d", v)
		}
	}
}

func TestFakerDateRange(t *testing.T) {
	f := NewFaker(1)
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 100; i++ {
		d := f.DateRange(start, end)
		if d.Before(start) || d.After(end) {
			t.Fatalf("DateRange returned %v outside [%v, %v]", d, start, end)
		}
	}
}

func TestChoose(t *testing.T) {
	f := NewFaker(1)
	items := []string{"a", "b", "c"}
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		v := Choose(f, items)
		switch v {
		case "a", "b", "c":
			seen[v] = true
		default:
			t.Fatalf("Choose returned %q, not in the slice", v)
		}
	}
	if len(seen) != 3 {
		t.Errorf("Expected all 3 items to be drawn over 1000 picks, saw %v", seen)
	}

	if v := Choose(f, []string(nil)); v != "" {
		t.Errorf("Choose on empty slice should return zero value, got %q", v)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 3, "hel"},
		{"", 5, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}
