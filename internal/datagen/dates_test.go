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

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildDateDimensionThreeDayWindow(t *testing.T) {
	records, err := BuildDateDimension(date(2023, 1, 1), date(2023, 1, 3))
	if err != nil {
		t.Fatalf("BuildDateDimension failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}

	for i, rec := range records {
		want := date(2023, 1, 1+i)
		if !rec.Value.Equal(want) {
			t.Errorf("Record %d: expected date %v, got %v", i, want, rec.Value)
		}
		if rec.ID != int64(i+1) {
			t.Errorf("Record %d: expected key %d, got %d", i, i+1, rec.ID)
		}
	}

	// 2023-01-01 is a Sunday; the 2nd and 3rd are weekdays.
	if !records[0].IsWeekend {
		t.Error("2023-01-01 (Sunday) should be a weekend")
	}
	if records[0].DayOfWeek != 7 {
		t.Errorf("2023-01-01 should have ISO day_of_week 7, got %d", records[0].DayOfWeek)
	}
	if records[1].IsWeekend || records[2].IsWeekend {
		t.Error("2023-01-02 and 2023-01-03 should not be weekends")
	}
	if records[1].DayOfWeek != 1 {
		t.Errorf("2023-01-02 (Monday) should have ISO day_of_week 1, got %d", records[1].DayOfWeek)
	}
}

func TestBuildDateDimensionDerivedFields(t *testing.T) {
	tests := []struct {
		name      string
		value     time.Time
		year      int
		quarter   int
		month     int
		day       int
		dayOfWeek int
		week      int
		weekend   bool
	}{
		{"new year on a sunday", date(2023, 1, 1), 2023, 1, 1, 1, 7, 52, true},
		{"mid q2", date(2023, 5, 17), 2023, 2, 5, 17, 3, 20, false},
		{"q3 boundary", date(2024, 7, 1), 2024, 3, 7, 1, 1, 27, false},
		{"leap day", date(2024, 2, 29), 2024, 1, 2, 29, 4, 9, false},
		{"year end in iso week 1", date(2024, 12, 31), 2024, 4, 12, 31, 2, 1, false},
		{"saturday", date(2024, 12, 28), 2024, 4, 12, 28, 6, 52, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := BuildDateDimension(tt.value, tt.value)
			if err != nil {
				t.Fatalf("BuildDateDimension failed: %v", err)
			}
			if len(records) != 1 {
				t.Fatalf("Expected 1 record, got %d", len(records))
			}
			rec := records[0]
			if rec.Year != tt.year {
				t.Errorf("Year: got %d, want %d", rec.Year, tt.year)
			}
			if rec.Quarter != tt.quarter {
				t.Errorf("Quarter: got %d, want %d", rec.Quarter, tt.quarter)
			}
			if rec.Month != tt.month {
				t.Errorf("Month: got %d, want %d", rec.Month, tt.month)
			}
			if rec.Day != tt.day {
				t.Errorf("Day: got %d, want %d", rec.Day, tt.day)
			}
			if rec.DayOfWeek != tt.dayOfWeek {
				t.Errorf("DayOfWeek: got %d, want %d", rec.DayOfWeek, tt.dayOfWeek)
			}
			if rec.WeekOfYear != tt.week {
				t.Errorf("WeekOfYear: got %d, want %d", rec.WeekOfYear, tt.week)
			}
			if rec.IsWeekend != tt.weekend {
				t.Errorf("IsWeekend: got %v, want %v", rec.IsWeekend, tt.weekend)
			}
		})
	}
}

func TestBuildDateDimensionNoGaps(t *testing.T) {
	records, err := BuildDateDimension(date(2023, 1, 1), date(2023, 12, 31))
	if err != nil {
		t.Fatalf("BuildDateDimension failed: %v", err)
	}
	if len(records) != 365 {
		t.Fatalf("Expected 365 records for 2023, got %d", len(records))
	}

	seen := make(map[string]bool, len(records))
	for i, rec := range records {
		if rec.ID != int64(i+1) {
			t.Fatalf("Record %d: keys must be monotonic from 1, got %d", i, rec.ID)
		}
		if i > 0 {
			prev := records[i-1].Value
			if rec.Value.Sub(prev) != 24*time.Hour {
				t.Fatalf("Gap between %v and %v", prev, rec.Value)
			}
		}
		key := rec.Value.Format("2006-01-02")
		if seen[key] {
			t.Fatalf("Duplicate date %s", key)
		}
		seen[key] = true
	}
}

func TestBuildDateDimensionDeterministic(t *testing.T) {
	a, err := BuildDateDimension(date(2023, 6, 1), date(2023, 6, 30))
	if err != nil {
		t.Fatalf("BuildDateDimension failed: %v", err)
	}
	b, err := BuildDateDimension(date(2023, 6, 1), date(2023, 6, 30))
	if err != nil {
		t.Fatalf("BuildDateDimension failed: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("Length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Record %d differs between runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestBuildDateDimensionRejectsInvertedRange(t *testing.T) {
	_, err := BuildDateDimension(date(2024, 1, 1), date(2023, 1, 1))
	if err == nil {
		t.Fatal("Expected error for start after end")
	}
}
