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
	"fmt"
	"time"

	"github.com/dmartlab/martgen/internal/model"
)

// BuildDateDimension produces exactly one record per calendar day from start
// through end (inclusive), in ascending order with keys 1..n. All derived
// fields are pure functions of the date, so repeated runs with the same
// window produce identical output and the dimension can be reloaded without
// drift.
func BuildDateDimension(start, end time.Time) ([]model.DateRecord, error) {
	start = truncateDay(start)
	end = truncateDay(end)
	if start.After(end) {
		return nil, fmt.Errorf("date dimension start %s is after end %s",
			start.Format(model.DateLayout), end.Format(model.DateLayout))
	}

	n := int(end.Sub(start).Hours()/24) + 1
	records := make([]model.DateRecord, 0, n)

	id := int64(1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		_, week := d.ISOWeek()
		records = append(records, model.DateRecord{
			ID:         id,
			Value:      d,
			Year:       d.Year(),
			Quarter:    (int(d.Month())-1)/3 + 1,
			Month:      int(d.Month()),
			Day:        d.Day(),
			DayOfWeek:  isoDayOfWeek(d),
			WeekOfYear: week,
			IsWeekend:  d.Weekday() == time.Saturday || d.Weekday() == time.Sunday,
		})
		id++
	}
	return records, nil
}

// isoDayOfWeek maps time.Weekday to ISO numbering (Monday=1 .. Sunday=7).
func isoDayOfWeek(d time.Time) int {
	wd := int(d.Weekday())
	if wd == 0 {
		wd = 7
	}
	return wd
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
