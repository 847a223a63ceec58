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
	"math"

	"github.com/dmartlab/martgen/internal/model"
)

// Discount percentages of the gross amount, with their declared
// distribution. Most transactions carry no discount.
var discountTable = mustWeightedTable([]WeightedItem[float64]{
	{Item: 0, Weight: 0.70},
	{Item: 0.05, Weight: 0.15},
	{Item: 0.10, Weight: 0.10},
	{Item: 0.15, Weight: 0.05},
})

// SkewConfig shapes fact sampling away from uniform. A boost multiplies the
// sampling weight of the matching dimension keys; 1.0 (or zero value) keeps
// the draw uniform.
type SkewConfig struct {
	// WeekendBoost favors weekend dates, producing seasonal patterns.
	WeekendBoost float64

	// PremiumBoost favors Premium-segment customers.
	PremiumBoost float64
}

// GenerateTransactions produces count sales fact records with keys 1..count,
// each referencing one generated customer, product, and date. The dimension
// slices must already exist; facts are only ever generated behind that
// barrier. UnitPrice is copied from the sampled product at generation time,
// so later catalog changes do not rewrite history, and TotalAmount is always
// derived from the invariant formula.
func GenerateTransactions(count int, skew SkewConfig, customers []model.Customer,
	products []model.Product, dates []model.DateRecord, f *Faker) ([]model.Transaction, error) {

	if count < 1 {
		return nil, fmt.Errorf("transaction count must be positive, got %d", count)
	}
	if len(customers) == 0 || len(products) == 0 || len(dates) == 0 {
		return nil, fmt.Errorf("cannot generate transactions: customer, product and date key sets must all be non-empty (got %d/%d/%d)",
			len(customers), len(products), len(dates))
	}

	if skew.WeekendBoost <= 0 {
		skew.WeekendBoost = 1
	}
	if skew.PremiumBoost <= 0 {
		skew.PremiumBoost = 1
	}

	customerTable, err := customerKeyTable(customers, skew.PremiumBoost)
	if err != nil {
		return nil, err
	}
	dateTable, err := dateKeyTable(dates, skew.WeekendBoost)
	if err != nil {
		return nil, err
	}

	transactions := make([]model.Transaction, 0, count)
	for i := 1; i <= count; i++ {
		tx, err := sampleTransaction(int64(i), customerTable, dateTable, products, f)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

func sampleTransaction(id int64, customerTable, dateTable *WeightedTable[int64],
	products []model.Product, f *Faker) (model.Transaction, error) {

	for attempt := 0; attempt < maxResampleAttempts; attempt++ {
		product := Choose(f, products)
		quantity := f.Int(1, 5)
		pct := discountTable.Sample(f)

		// Monetary math in integer cents; the invariant
		// total = quantity*unit_price - discount must hold exactly.
		unitCents := int64(math.Round(product.Price * 100))
		grossCents := unitCents * int64(quantity)
		discountCents := int64(math.Round(float64(grossCents) * pct))
		totalCents := grossCents - discountCents

		if discountCents < 0 || discountCents > grossCents || totalCents < 0 {
			continue
		}

		return model.Transaction{
			ID:             id,
			CustomerID:     customerTable.Sample(f),
			ProductID:      product.ID,
			DateID:         dateTable.Sample(f),
			Quantity:       quantity,
			UnitPrice:      float64(unitCents) / 100,
			DiscountAmount: float64(discountCents) / 100,
			TotalAmount:    float64(totalCents) / 100,
		}, nil
	}
	return model.Transaction{}, &InvariantError{Entity: "transaction", Attempts: maxResampleAttempts}
}

func customerKeyTable(customers []model.Customer, premiumBoost float64) (*WeightedTable[int64], error) {
	items := make([]WeightedItem[int64], len(customers))
	for i, c := range customers {
		w := 1.0
		if c.Segment == SegmentPremium {
			w = premiumBoost
		}
		items[i] = WeightedItem[int64]{Item: c.ID, Weight: w}
	}
	return NewWeightedTable(items)
}

func dateKeyTable(dates []model.DateRecord, weekendBoost float64) (*WeightedTable[int64], error) {
	items := make([]WeightedItem[int64], len(dates))
	for i, d := range dates {
		w := 1.0
		if d.IsWeekend {
			w = weekendBoost
		}
		items[i] = WeightedItem[int64]{Item: d.ID, Weight: w}
	}
	return NewWeightedTable(items)
}
