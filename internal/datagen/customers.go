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

// SegmentPremium is the customer segment boosted by premium skew.
const SegmentPremium = "Premium"

// Segments customers are assigned to, with their declared distribution.
var segmentTable = mustWeightedTable([]WeightedItem[string]{
	{Item: SegmentPremium, Weight: 0.10},
	{Item: "Standard", Weight: 0.40},
	{Item: "Basic", Weight: 0.40},
	{Item: "VIP", Weight: 0.10},
})

// Segments returns the valid customer segment names.
func Segments() []string {
	return []string{SegmentPremium, "Standard", "Basic", "VIP"}
}

// GenerateCustomers produces count customer records with keys 1..count.
// Registration dates fall in the year before windowStart, so output for a
// fixed seed does not depend on when generation runs, and every record
// registered before the transactions that will reference it.
func GenerateCustomers(count int, windowStart time.Time, f *Faker) ([]model.Customer, error) {
	if count < 1 {
		return nil, fmt.Errorf("customer count must be positive, got %d", count)
	}

	windowStart = truncateDay(windowStart)
	regStart := windowStart.AddDate(-1, 0, 0)

	customers := make([]model.Customer, 0, count)
	for i := 1; i <= count; i++ {
		c, err := sampleCustomer(int64(i), regStart, windowStart, f)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, nil
}

func sampleCustomer(id int64, regStart, regEnd time.Time, f *Faker) (model.Customer, error) {
	for attempt := 0; attempt < maxResampleAttempts; attempt++ {
		reg := truncateDay(f.DateRange(regStart, regEnd))
		// A violating draw is resampled, never silently clamped.
		if reg.After(time.Now()) {
			continue
		}
		return model.Customer{
			ID:               id,
			FirstName:        f.FirstName(),
			LastName:         f.LastName(),
			Email:            f.Email(),
			Phone:            Truncate(f.Phone(), 20),
			City:             f.City(),
			State:            f.State(),
			Country:          "USA",
			Segment:          segmentTable.Sample(f),
			RegistrationDate: reg,
		}, nil
	}
	return model.Customer{}, &InvariantError{Entity: "customer", Attempts: maxResampleAttempts}
}
